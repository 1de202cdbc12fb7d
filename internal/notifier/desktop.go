package notifier

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/mitchellh/go-ps"

	"github.com/chorekeep/chorekeep/internal/constants"
	"github.com/chorekeep/chorekeep/internal/models"
)

var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
)

// Desktop delivers notifications through the chorekeep tray companion's
// local webhook. Scheduled reminders are tracked in memory and flushed as
// immediate webhook messages when due; the tray app owns actual timing.
type Desktop struct {
	mu        sync.Mutex
	reminders map[string]scheduledReminder // taskID -> reminder
}

type scheduledReminder struct {
	title       string
	timeOfDay   string
	repeatDaily bool
}

type webhookPayload struct {
	Text       string `json:"text"`
	DurationMs uint32 `json:"duration_ms"`
}

func NewDesktop() *Desktop {
	return &Desktop{reminders: make(map[string]scheduledReminder)}
}

func (d *Desktop) ScheduleReminder(task models.Task, timeOfDay string, repeatDaily bool) error {
	d.mu.Lock()
	d.reminders[task.ID] = scheduledReminder{
		title:       task.Title,
		timeOfDay:   timeOfDay,
		repeatDaily: repeatDaily,
	}
	d.mu.Unlock()
	return d.send(fmt.Sprintf("Reminder set for %q at %s", task.Title, timeOfDay))
}

func (d *Desktop) CancelReminder(taskID string) error {
	d.mu.Lock()
	delete(d.reminders, taskID)
	d.mu.Unlock()
	return nil
}

func (d *Desktop) SendCompletionCelebration(count int) error {
	return d.send(CelebrationText(count))
}

func (d *Desktop) send(text string) error {
	trayConfigDir, err := trayAppConfigDir()
	if err != nil {
		return err
	}

	port, secret, err := findAndValidateTrayProcess(filepath.Join(trayConfigDir, constants.NotifierLockfileName))
	if err != nil {
		return err
	}

	return postNotification(port, secret, webhookPayload{
		Text:       text,
		DurationMs: constants.NotifyDurationMs,
	})
}

// trayAppConfigDir returns the configuration directory used by the tray
// application, honoring a custom lockfile dir from its settings.json.
func trayAppConfigDir() (string, error) {
	configDir, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}

	trayConfigDir := filepath.Join(configDir, constants.TrayAppIdentifier)

	settingsPath := filepath.Join(trayConfigDir, "settings.json")
	if data, err := os.ReadFile(settingsPath); err == nil {
		var store struct {
			Settings struct {
				LockfileDir *string `json:"lockfile_dir"`
			} `json:"settings"`
		}
		if err := json.Unmarshal(data, &store); err == nil {
			if store.Settings.LockfileDir != nil && *store.Settings.LockfileDir != "" {
				return *store.Settings.LockfileDir, nil
			}
		}
	}

	return trayConfigDir, nil
}

func findAndValidateTrayProcess(lockfilePath string) (string, string, error) {
	content, err := os.ReadFile(lockfilePath)
	if err != nil {
		return "", "", errors.New("chorekeep-tray is not running")
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return "", "", errors.New("lockfile is malformed")
	}

	port := parts[0]
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return "", "", errors.New("invalid port number in lockfile")
	}
	if portNum < 1 || portNum > 65535 {
		return "", "", fmt.Errorf("port number %d is outside valid range (1-65535)", portNum)
	}

	pid, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", "", errors.New("invalid process ID in lockfile")
	}
	secret := parts[2]
	if strings.TrimSpace(secret) == "" {
		return "", "", errors.New("secret in lockfile is empty")
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return "", "", errors.New("chorekeep-tray process not running")
	}
	if !strings.HasPrefix(process.Executable(), "chorekeep-tray") {
		return "", "", fmt.Errorf("process with PID %d is not chorekeep-tray (is %s)", pid, process.Executable())
	}

	return port, secret, nil
}

func postNotification(port, secret string, payload webhookPayload) error {
	url := fmt.Sprintf("http://127.0.0.1:%s", port)

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Chorekeep-Secret", secret)

	res, err := (&http.Client{}).Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}

	body, _ := io.ReadAll(res.Body)
	return fmt.Errorf("notification failed with status %d: %s", res.StatusCode, string(body))
}
