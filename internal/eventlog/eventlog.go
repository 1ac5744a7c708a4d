// Package eventlog maintains the append-only audit trail of task
// lifecycle transitions. One JSON object per line; entries are never
// rewritten or deleted. The log is advisory: append failures are surfaced
// but never roll back the mutation that produced them.
package eventlog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// FileName is the log file name inside the data directory.
const FileName = "history.jsonl"

// Action identifies the kind of lifecycle transition an entry records.
type Action string

const (
	ActionCreated   Action = "created"
	ActionCompleted Action = "completed"
	ActionDropped   Action = "dropped"
	ActionUpdated   Action = "updated"
	ActionMoved     Action = "moved"
)

// Entry is one audit record.
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Action    Action    `json:"action"`
	TaskID    string    `json:"task_id"`
	Details   string    `json:"details"`
}

// NewEntry stamps a fresh entry for the given transition.
func NewEntry(action Action, taskID, details string) *Entry {
	return &Entry{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Action:    action,
		TaskID:    taskID,
		Details:   details,
	}
}

// Logger appends entries to a JSONL file.
type Logger struct {
	path string
}

// NewLogger returns a logger writing to dir/history.jsonl.
func NewLogger(dir string) *Logger {
	return &Logger{path: filepath.Join(dir, FileName)}
}

// Path returns the log file location.
func (l *Logger) Path() string {
	return l.path
}

// Append writes one entry as a single line, creating the file if needed.
// One write+sync per entry; a partial last line after a crash is an
// accepted bounded risk for this advisory log.
func (l *Logger) Append(e *Entry) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal log entry: %w", err)
	}
	data = append(data, '\n')

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("append log entry: %w", err)
	}
	return f.Sync()
}
