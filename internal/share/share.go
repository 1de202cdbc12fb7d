// Package share encodes task lists into a portable JSON document so
// they can be handed to another install and merged back in.
package share

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/chorekeep/chorekeep/internal/models"
)

// FormatVersion is bumped on incompatible changes to the envelope.
const FormatVersion = 1

// Envelope is the on-wire shape of a shared task list.
type Envelope struct {
	Version    int           `json:"version"`
	ExportedAt time.Time     `json:"exportedAt"`
	ExportedBy string        `json:"exportedBy,omitempty"`
	Tasks      []models.Task `json:"tasks"`
}

// Export writes the tasks as an indented JSON envelope.
func Export(w io.Writer, tasks []models.Task, exportedBy string, now time.Time) error {
	env := Envelope{
		Version:    FormatVersion,
		ExportedAt: now,
		ExportedBy: exportedBy,
		Tasks:      tasks,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(env); err != nil {
		return fmt.Errorf("failed to encode share document: %w", err)
	}
	return nil
}

// Import reads a share envelope and returns its tasks. Unknown versions
// are rejected rather than half-parsed.
func Import(r io.Reader) ([]models.Task, error) {
	var env Envelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode share document: %w", err)
	}
	if env.Version != FormatVersion {
		return nil, fmt.Errorf("unsupported share document version %d", env.Version)
	}
	return env.Tasks, nil
}
