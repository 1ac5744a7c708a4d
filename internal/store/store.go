// Package store owns the durable task collection. All mutations go
// through the Store, which persists the whole collection atomically after
// every change and appends an audit entry for each lifecycle transition.
// The store assumes a single writer for the process lifetime; concurrent
// external processes touching the same data directory are not handled.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/eisenq/eq/internal/debug"
	"github.com/eisenq/eq/internal/eventlog"
	"github.com/eisenq/eq/internal/task"
)

// TasksFileName is the task collection file inside the data directory.
const TasksFileName = "tasks.json"

var (
	// ErrNotFound means a task reference did not resolve.
	ErrNotFound = errors.New("task not found")
	// ErrInvalidState means the operation is not valid for the task's
	// current status (e.g. toggling a dropped task).
	ErrInvalidState = errors.New("invalid task state")
	// ErrAmbiguousRef means an ID prefix matched more than one task.
	// Callers treat it as not found, never as "pick the first match".
	ErrAmbiguousRef = errors.New("ambiguous task reference")
)

// Store is the aggregate root for the task collection and the persisted
// chat transcript. Insertion order of tasks is preserved across save and
// reload.
type Store struct {
	dir   string
	tasks []*task.Task
	log   *eventlog.Logger
}

// Open loads the task collection from dir, or starts empty when no file
// exists yet.
func Open(dir string) (*Store, error) {
	s := &Store{dir: dir, log: eventlog.NewLogger(dir)}

	path := filepath.Join(dir, TasksFileName)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &s.tasks); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return s, nil
}

// Dir returns the data directory backing this store.
func (s *Store) Dir() string {
	return s.dir
}

// Tasks returns the full collection in insertion order. Callers must not
// mutate tasks directly; use store operations.
func (s *Store) Tasks() []*task.Task {
	return s.tasks
}

// Save persists the whole collection atomically. The write is re-attempted
// once before the failure is surfaced.
func (s *Store) Save() error {
	data, err := json.MarshalIndent(s.tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}

	path := filepath.Join(s.dir, TasksFileName)
	if err := writeFileAtomic(path, data); err != nil {
		debug.Logf("eq: first save attempt failed, retrying: %v\n", err)
		if retryErr := writeFileAtomic(path, data); retryErr != nil {
			return fmt.Errorf("persist tasks: %w", retryErr)
		}
	}
	return nil
}

// Add creates a pending task scheduled on day, persists, and logs a
// created entry.
func (s *Store) Add(title string, urgency, importance int, day time.Time) (*task.Task, error) {
	t, err := task.New(title, urgency, importance, day)
	if err != nil {
		return nil, err
	}

	s.tasks = append(s.tasks, t)
	if err := s.Save(); err != nil {
		// Roll back the in-memory append so state never silently runs
		// ahead of disk on a persist failure at creation time.
		s.tasks = s.tasks[:len(s.tasks)-1]
		return nil, err
	}

	s.appendEvent(eventlog.ActionCreated, t.ID, fmt.Sprintf("Created task: %s", t.Title))
	return t, nil
}

// Get returns the task with the exact ID.
func (s *Store) Get(id string) (*task.Task, bool) {
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return nil, false
}

// Complete marks a task completed. Idempotent: completing an already
// completed task is a no-op and does not double-log.
func (s *Store) Complete(id string) error {
	t, ok := s.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if t.Status == task.StatusCompleted {
		return nil
	}
	if t.Status == task.StatusDropped {
		return fmt.Errorf("%w: task %s is dropped", ErrInvalidState, id)
	}

	t.Complete()
	if err := s.Save(); err != nil {
		return err
	}
	s.appendEvent(eventlog.ActionCompleted, id, fmt.Sprintf("Completed task: %s", t.Title))
	return nil
}

// ToggleComplete flips a task between pending and completed. Used by the
// interactive surface; dropped tasks cannot be toggled.
func (s *Store) ToggleComplete(id string) error {
	t, ok := s.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if t.Status == task.StatusDropped {
		return fmt.Errorf("%w: task %s is dropped", ErrInvalidState, id)
	}

	if t.Status == task.StatusCompleted {
		t.UndoComplete()
		if err := s.Save(); err != nil {
			return err
		}
		s.appendEvent(eventlog.ActionUpdated, id, fmt.Sprintf("Undone task: %s", t.Title))
	} else {
		t.Complete()
		if err := s.Save(); err != nil {
			return err
		}
		s.appendEvent(eventlog.ActionCompleted, id, fmt.Sprintf("Completed task: %s", t.Title))
	}
	return nil
}

// DropTask irreversibly removes a task from all views. Dropping an
// already dropped task reports not found, so a task never accumulates a
// second dropped entry.
func (s *Store) DropTask(id string) error {
	t, ok := s.Get(id)
	if !ok || t.Status == task.StatusDropped {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	t.MarkDropped()
	if err := s.Save(); err != nil {
		return err
	}
	s.appendEvent(eventlog.ActionDropped, id, fmt.Sprintf("Dropped task: %s", t.Title))
	return nil
}

// UpdateTask replaces a task's title and priority after validating the
// ranges.
func (s *Store) UpdateTask(id, title string, urgency, importance int) error {
	t, ok := s.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err := task.ValidatePriority(urgency, importance); err != nil {
		return err
	}

	oldDetails := fmt.Sprintf("%s (u%di%d)", t.Title, t.Urgency, t.Importance)
	t.Title = title
	t.Urgency = urgency
	t.Importance = importance
	t.UpdatedAt = time.Now().UTC()

	if err := s.Save(); err != nil {
		return err
	}
	newDetails := fmt.Sprintf("%s (u%di%d)", t.Title, t.Urgency, t.Importance)
	s.appendEvent(eventlog.ActionUpdated, id, fmt.Sprintf("Updated: %s -> %s", oldDetails, newDetails))
	return nil
}

// MoveTo reschedules a task to another day.
func (s *Store) MoveTo(id string, day time.Time) error {
	t, ok := s.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	oldDate := t.Date
	t.Date = day.Format(task.DateLayout)
	t.UpdatedAt = time.Now().UTC()

	if err := s.Save(); err != nil {
		return err
	}
	s.appendEvent(eventlog.ActionMoved, id, fmt.Sprintf("Moved: %s -> %s", oldDate, t.Date))
	return nil
}

// PendingFor returns the pending tasks scheduled on day in score order.
// This flat ordering backs 1-based positional references.
func (s *Store) PendingFor(day time.Time) []*task.Task {
	var out []*task.Task
	for _, t := range s.tasks {
		if t.Status == task.StatusPending && t.ScheduledOn(day) {
			out = append(out, t)
		}
	}
	task.SortByScore(out)
	return out
}

// TasksFor returns the day's non-dropped tasks grouped by quadrant, each
// quadrant score descending, creation time ascending.
func (s *Store) TasksFor(day time.Time) map[task.Quadrant][]*task.Task {
	var visible []*task.Task
	for _, t := range s.tasks {
		if t.Status != task.StatusDropped && t.ScheduledOn(day) {
			visible = append(visible, t)
		}
	}
	return task.GroupByQuadrant(visible)
}

// QuadrantTasks returns the day's non-dropped tasks in one quadrant,
// score ordered. This is the list behind the TUI selection index.
func (s *Store) QuadrantTasks(day time.Time, q task.Quadrant) []*task.Task {
	var out []*task.Task
	for _, t := range s.tasks {
		if t.Status != task.StatusDropped && t.ScheduledOn(day) && t.Quadrant() == q {
			out = append(out, t)
		}
	}
	task.SortByScore(out)
	return out
}

// appendEvent logs a lifecycle transition. Best effort: the log is
// observability, not a source of truth, so failures are reported to the
// debug channel and otherwise swallowed.
func (s *Store) appendEvent(action eventlog.Action, taskID, details string) {
	if err := s.log.Append(eventlog.NewEntry(action, taskID, details)); err != nil {
		debug.Logf("eq: event log append failed: %v\n", err)
	}
}
