// Package task defines the core data structures for the eq task tracker.
package task

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of a task.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusDropped   Status = "dropped"
)

// Quadrant is one of the four Eisenhower matrix cells, derived from a
// task's importance and urgency.
type Quadrant int

const (
	DoFirst Quadrant = iota
	Schedule
	Delegate
	Drop
)

// Quadrants lists all quadrants in display order (left-to-right,
// top-to-bottom in the matrix grid).
var Quadrants = [4]Quadrant{DoFirst, Schedule, Delegate, Drop}

func (q Quadrant) String() string {
	switch q {
	case DoFirst:
		return "DO FIRST"
	case Schedule:
		return "SCHEDULE"
	case Delegate:
		return "DELEGATE"
	case Drop:
		return "DROP"
	default:
		return "UNKNOWN"
	}
}

const (
	// MinPriority and MaxPriority bound both urgency and importance.
	MinPriority = 1
	MaxPriority = 3
)

// ErrInvalidPriority is returned when urgency or importance falls outside
// [MinPriority, MaxPriority]. Lenient parse paths clamp before reaching
// here; only direct numeric edits can trigger it.
var ErrInvalidPriority = errors.New("priority out of range")

// DateLayout is the stored form of a task's scheduled day.
const DateLayout = "2006-01-02"

// Task is a single tracked item. Quadrant and score are derived, never
// stored.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Urgency     int        `json:"urgency"`
	Importance  int        `json:"importance"`
	Status      Status     `json:"status"`
	Date        string     `json:"date"` // scheduled day, YYYY-MM-DD
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// New constructs a pending task scheduled on the given day. Urgency and
// importance must already be in range.
func New(title string, urgency, importance int, day time.Time) (*Task, error) {
	if err := ValidatePriority(urgency, importance); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &Task{
		ID:         uuid.NewString(),
		Title:      title,
		Urgency:    urgency,
		Importance: importance,
		Status:     StatusPending,
		Date:       day.Format(DateLayout),
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// ValidatePriority checks that both axes are in [MinPriority, MaxPriority].
func ValidatePriority(urgency, importance int) error {
	if urgency < MinPriority || urgency > MaxPriority {
		return fmt.Errorf("%w: urgency %d not in [%d,%d]", ErrInvalidPriority, urgency, MinPriority, MaxPriority)
	}
	if importance < MinPriority || importance > MaxPriority {
		return fmt.Errorf("%w: importance %d not in [%d,%d]", ErrInvalidPriority, importance, MinPriority, MaxPriority)
	}
	return nil
}

// Quadrant derives the matrix cell from importance and urgency.
func (t *Task) Quadrant() Quadrant {
	switch {
	case t.Importance >= 2 && t.Urgency >= 2:
		return DoFirst
	case t.Importance >= 2:
		return Schedule
	case t.Urgency >= 2:
		return Delegate
	default:
		return Drop
	}
}

// Score is the ordering key within a quadrant: 3*importance + 2*urgency,
// range [5,15].
func (t *Task) Score() int {
	return t.Importance*3 + t.Urgency*2
}

// ScheduledOn reports whether the task is scheduled on the given day.
func (t *Task) ScheduledOn(day time.Time) bool {
	return t.Date == day.Format(DateLayout)
}

// Complete marks the task completed and stamps CompletedAt.
func (t *Task) Complete() {
	now := time.Now().UTC()
	t.Status = StatusCompleted
	t.CompletedAt = &now
	t.UpdatedAt = now
}

// UndoComplete returns a completed task to pending.
func (t *Task) UndoComplete() {
	t.Status = StatusPending
	t.CompletedAt = nil
	t.UpdatedAt = time.Now().UTC()
}

// MarkDropped removes the task from all views. Dropped tasks are kept for
// audit and never resurface.
func (t *Task) MarkDropped() {
	t.Status = StatusDropped
	t.UpdatedAt = time.Now().UTC()
}
