package share

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/chorekeep/chorekeep/internal/models"
)

func TestExportImportRoundTrip(t *testing.T) {
	tasks := []models.Task{
		models.NewDailyTask("Make the bed"),
		models.NewSpecificTask("Dentist", "2026-04-02"),
	}
	exportedAt := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	if err := Export(&buf, tasks, "Ada", exportedAt); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	loaded, err := Import(&buf)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("got %d tasks, want 2", len(loaded))
	}
	if loaded[0].ID != tasks[0].ID || loaded[0].Title != "Make the bed" {
		t.Errorf("task mismatch: %+v", loaded[0])
	}
	if loaded[1].SpecificDate == nil || *loaded[1].SpecificDate != "2026-04-02" {
		t.Errorf("SpecificDate lost: %+v", loaded[1])
	}
}

func TestImportRejectsUnknownVersion(t *testing.T) {
	doc := `{"version": 99, "exportedAt": "2026-03-15T12:00:00Z", "tasks": []}`
	if _, err := Import(strings.NewReader(doc)); err == nil {
		t.Error("unknown version must be rejected")
	}
}

func TestImportRejectsGarbage(t *testing.T) {
	if _, err := Import(strings.NewReader("not json at all")); err == nil {
		t.Error("malformed input must be rejected")
	}
}
