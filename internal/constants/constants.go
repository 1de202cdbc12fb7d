package constants

const (
	AppName         = "chorekeep"
	Version         = "v0.3.0"
	DefaultDataPath = "~/.config/chorekeep"
	DefaultLogPath  = "logs"

	// DateFormat is the standard day-key format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard reminder time format (HH:MM)
	TimeFormat = "15:04"

	// Document keys for the persistence gateway
	DocTasks        = "tasks"
	DocRecords      = "records"
	DocCategories   = "categories"
	DocGamification = "gamification"
	DocUserData     = "userdata"
	DocHabits       = "habits"
	DocHabitEntries = "habitentries"
	DocHabitStreaks = "habitstreaks"
	DocFocus        = "focus"

	// Point awards
	PointsTaskCompleted     = 5
	PointsAllTasksCompleted = 20
	PointsPerLevel          = 100

	// Validation bounds
	MaxTitleLength    = 100
	MaxUserNameLength = 50
	MaxNoteLength     = 500

	// Notify constants
	NotifyDurationMs     = 5000
	NotifierLockfileName = "chorekeep-notifier.lock"
	TrayAppIdentifier    = "com.chorekeep.tray"
)
