package store

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FindTaskID resolves a user-facing reference to a task ID. A reference
// is either a 1-based position in the day's pending score-ordered list,
// or a prefix of a task ID matched uniquely across all tasks. Positional
// references are resolved against a snapshot taken here, never against a
// cached index from an earlier render.
func (s *Store) FindTaskID(ref string, day time.Time) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("%w: empty reference", ErrNotFound)
	}

	// A numeric reference is first tried as a position; out of range it
	// falls through to prefix matching, since an ID prefix can be all
	// digits too.
	if idx, err := strconv.Atoi(ref); err == nil {
		pending := s.PendingFor(day)
		if idx >= 1 && idx <= len(pending) {
			return pending[idx-1].ID, nil
		}
	}

	var match string
	for _, t := range s.tasks {
		if strings.HasPrefix(t.ID, ref) {
			if match != "" {
				return "", fmt.Errorf("%w: prefix %q", ErrAmbiguousRef, ref)
			}
			match = t.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("%w: %s", ErrNotFound, ref)
	}
	return match, nil
}
