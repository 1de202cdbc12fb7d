package validation

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/chorekeep/chorekeep/internal/constants"
	"github.com/chorekeep/chorekeep/internal/models"
	"github.com/chorekeep/chorekeep/internal/utils"
)

// Code identifies a category of validation failure.
type Code string

const (
	CodeEmptyTitle      Code = "empty_title"
	CodeTitleTooLong    Code = "title_too_long"
	CodeInvalidChars    Code = "invalid_characters"
	CodeInvalidTime     Code = "invalid_time"
	CodeUnknownCategory Code = "unknown_category"
	CodeInvalidDate     Code = "invalid_date"
	CodeInvalidTarget   Code = "invalid_target"
	CodeDuplicateName   Code = "duplicate_name"
)

// Error is a typed validation failure raised synchronously by validator
// routines. Callers match it with errors.As and surface it to the user
// before attempting the mutation.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Validator validates user input before it reaches the model facade.
type Validator struct {
	v *validator.Validate
}

// New creates a Validator.
func New() *Validator {
	return &Validator{v: validator.New()}
}

// ValidateTitle checks a task title: non-empty after trimming, bounded
// length, printable characters only.
func (va *Validator) ValidateTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return newError(CodeEmptyTitle, "title cannot be empty")
	}
	if len([]rune(trimmed)) > constants.MaxTitleLength {
		return newError(CodeTitleTooLong, "title cannot exceed %d characters", constants.MaxTitleLength)
	}
	for _, r := range trimmed {
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) && !unicode.IsSpace(r) &&
			!unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return newError(CodeInvalidChars, "title contains invalid characters")
		}
	}
	return nil
}

// ValidateReminderTime checks an optional HH:MM reminder time string.
func (va *Validator) ValidateReminderTime(timeStr string) error {
	if timeStr == "" {
		return nil
	}
	if !utils.ValidateTimeFormat(timeStr) {
		return newError(CodeInvalidTime, "invalid reminder time %q (expected HH:MM)", timeStr)
	}
	return nil
}

// ValidateCategory checks that an optional category reference points at
// an existing category.
func (va *Validator) ValidateCategory(categoryID *string, categories []models.TaskCategory) error {
	if categoryID == nil {
		return nil
	}
	for _, c := range categories {
		if c.ID == *categoryID {
			return nil
		}
	}
	return newError(CodeUnknownCategory, "category %s does not exist", *categoryID)
}

// ValidateCategoryName checks a new category name against the existing
// collection. Names are unique case-insensitively.
func (va *Validator) ValidateCategoryName(name string, categories []models.TaskCategory) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return newError(CodeEmptyTitle, "category name cannot be empty")
	}
	for _, c := range categories {
		if strings.EqualFold(c.Name, trimmed) {
			return newError(CodeDuplicateName, "category %q already exists", trimmed)
		}
	}
	return nil
}

// ValidateTask runs struct-level checks plus the title, reminder, and
// date rules over a fully constructed task.
func (va *Validator) ValidateTask(task models.Task) error {
	if err := va.v.Struct(task); err != nil {
		return structError(err)
	}
	if err := va.ValidateTitle(task.Title); err != nil {
		return err
	}
	if task.HasReminder {
		if err := va.ValidateReminderTime(task.ReminderTime); err != nil {
			return err
		}
	}
	switch task.Kind {
	case models.TaskKindSpecific:
		if task.SpecificDate == nil {
			return newError(CodeInvalidDate, "a specific task requires a date")
		}
		if _, err := utils.ParseDay(*task.SpecificDate); err != nil {
			return newError(CodeInvalidDate, "invalid task date %q (expected YYYY-MM-DD)", *task.SpecificDate)
		}
	case models.TaskKindDaily:
		if task.SpecificDate != nil {
			return newError(CodeInvalidDate, "a daily task cannot carry a date")
		}
	}
	return nil
}

// ValidateHabit checks a habit definition before it is added or edited.
func (va *Validator) ValidateHabit(habit models.Habit) error {
	if err := va.v.Struct(habit); err != nil {
		return structError(err)
	}
	if err := va.ValidateTitle(habit.Name); err != nil {
		return err
	}
	if habit.Target < 1 {
		return newError(CodeInvalidTarget, "habit target must be at least 1")
	}
	if habit.HasReminder {
		if err := va.ValidateReminderTime(habit.ReminderTime); err != nil {
			return err
		}
	}
	return nil
}

// SanitizeUserName trims, caps, and strips a display name down to letters
// and spaces. An empty result is allowed; the name is optional.
func SanitizeUserName(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	runes := []rune(trimmed)
	if len(runes) > constants.MaxUserNameLength {
		runes = runes[:constants.MaxUserNameLength]
	}
	var b strings.Builder
	for _, r := range runes {
		if unicode.IsLetter(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SanitizeText flattens whitespace in free-form note text.
func SanitizeText(text string) string {
	s := strings.TrimSpace(text)
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\t", " ")
	for strings.Contains(s, "  ") {
		s = strings.ReplaceAll(s, "  ", " ")
	}
	return s
}

// structError maps a validator.v10 failure onto the typed taxonomy.
func structError(err error) error {
	if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		switch fe.Tag() {
		case "required":
			return newError(CodeEmptyTitle, "%s is required", strings.ToLower(fe.Field()))
		case "max":
			return newError(CodeTitleTooLong, "%s cannot exceed %s characters", strings.ToLower(fe.Field()), fe.Param())
		case "gte":
			return newError(CodeInvalidTarget, "%s must be at least %s", strings.ToLower(fe.Field()), fe.Param())
		}
		return newError(CodeInvalidChars, "%s is invalid", strings.ToLower(fe.Field()))
	}
	return err
}
