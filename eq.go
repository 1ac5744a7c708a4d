// Package eq provides a minimal public API for working with an eq task
// store programmatically.
//
// The eq binary under cmd/eq is the primary interface. This package
// exports only the types and functions needed by Go programs that want
// to read or mutate a task collection directly, for example reporting
// scripts running against the same data directory.
package eq

import (
	"github.com/eisenq/eq/internal/config"
	"github.com/eisenq/eq/internal/store"
	"github.com/eisenq/eq/internal/task"
)

// Core types for working with tasks
type (
	Task     = task.Task
	Status   = task.Status
	Quadrant = task.Quadrant
	Store    = store.Store
)

// Status constants
const (
	StatusPending   = task.StatusPending
	StatusCompleted = task.StatusCompleted
	StatusDropped   = task.StatusDropped
)

// Quadrant constants
const (
	DoFirst  = task.DoFirst
	Schedule = task.Schedule
	Delegate = task.Delegate
	Drop     = task.Drop
)

// Open opens the task store in dir. Missing files start an empty store.
func Open(dir string) (*Store, error) {
	return store.Open(dir)
}

// DataDir resolves the default data directory: EQ_DATA_DIR when set,
// otherwise the per-user config directory.
func DataDir() (string, error) {
	return config.DataDir()
}
