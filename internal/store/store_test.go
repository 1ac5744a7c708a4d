package store

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eisenq/eq/internal/eventlog"
	"github.com/eisenq/eq/internal/task"
)

func today() time.Time { return time.Now() }

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	return s
}

// readLog returns the actions appended to the audit log, in order.
func readLog(t *testing.T, dir string) []eventlog.Action {
	t.Helper()
	f, err := os.Open(filepath.Join(dir, eventlog.FileName))
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	defer f.Close()

	var actions []eventlog.Action
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e eventlog.Entry
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &e))
		actions = append(actions, e.Action)
	}
	require.NoError(t, scanner.Err())
	return actions
}

func TestAddPersistsAndLogs(t *testing.T) {
	s := openStore(t)

	tk, err := s.Add("Fix crash", 3, 3, today())
	require.NoError(t, err)
	assert.Equal(t, task.DoFirst, tk.Quadrant())
	assert.Equal(t, 15, tk.Score())

	reloaded, err := Open(s.Dir())
	require.NoError(t, err)
	require.Len(t, reloaded.Tasks(), 1)
	assert.Equal(t, tk.ID, reloaded.Tasks()[0].ID)
	assert.Equal(t, "Fix crash", reloaded.Tasks()[0].Title)

	assert.Equal(t, []eventlog.Action{eventlog.ActionCreated}, readLog(t, s.Dir()))
}

func TestAddRejectsInvalidPriority(t *testing.T) {
	s := openStore(t)
	_, err := s.Add("bad", 0, 5, today())
	assert.ErrorIs(t, err, task.ErrInvalidPriority)
	assert.Empty(t, s.Tasks())
}

func TestRoundTripPreservesOrderAndFields(t *testing.T) {
	s := openStore(t)

	a, err := s.Add("first", 1, 1, today())
	require.NoError(t, err)
	b, err := s.Add("second", 3, 3, today())
	require.NoError(t, err)
	c, err := s.Add("third", 2, 1, today())
	require.NoError(t, err)

	require.NoError(t, s.ToggleComplete(b.ID))
	require.NoError(t, s.DropTask(c.ID))
	require.NoError(t, s.UpdateTask(a.ID, "first edited", 2, 2))
	require.NoError(t, s.MoveTo(a.ID, today().AddDate(0, 0, 1)))

	reloaded, err := Open(s.Dir())
	require.NoError(t, err)
	require.Len(t, reloaded.Tasks(), 3)

	for i, want := range s.Tasks() {
		got := reloaded.Tasks()[i]
		assert.Equal(t, want.ID, got.ID)
		assert.Equal(t, want.Title, got.Title)
		assert.Equal(t, want.Urgency, got.Urgency)
		assert.Equal(t, want.Importance, got.Importance)
		assert.Equal(t, want.Status, got.Status)
		assert.Equal(t, want.Date, got.Date)
		assert.WithinDuration(t, want.CreatedAt, got.CreatedAt, time.Second)
	}
}

func TestCompleteIsIdempotent(t *testing.T) {
	s := openStore(t)
	tk, err := s.Add("ship it", 2, 2, today())
	require.NoError(t, err)

	require.NoError(t, s.Complete(tk.ID))
	require.NoError(t, s.Complete(tk.ID)) // no-op, no double log

	assert.Equal(t,
		[]eventlog.Action{eventlog.ActionCreated, eventlog.ActionCompleted},
		readLog(t, s.Dir()))
}

func TestCompleteNotFound(t *testing.T) {
	s := openStore(t)
	assert.ErrorIs(t, s.Complete("nope"), ErrNotFound)
}

func TestToggleCompleteRoundTrip(t *testing.T) {
	s := openStore(t)
	tk, err := s.Add("laundry", 1, 1, today())
	require.NoError(t, err)

	require.NoError(t, s.ToggleComplete(tk.ID))
	assert.Equal(t, task.StatusCompleted, tk.Status)

	require.NoError(t, s.ToggleComplete(tk.ID))
	assert.Equal(t, task.StatusPending, tk.Status)
	assert.Nil(t, tk.CompletedAt)

	// Exactly Completed then Updated, in that order.
	assert.Equal(t,
		[]eventlog.Action{eventlog.ActionCreated, eventlog.ActionCompleted, eventlog.ActionUpdated},
		readLog(t, s.Dir()))
}

func TestToggleCompleteRejectsDropped(t *testing.T) {
	s := openStore(t)
	tk, err := s.Add("doomed", 1, 1, today())
	require.NoError(t, err)

	require.NoError(t, s.DropTask(tk.ID))
	assert.ErrorIs(t, s.ToggleComplete(tk.ID), ErrInvalidState)
}

func TestDropTwiceReportsNotFound(t *testing.T) {
	s := openStore(t)
	tk, err := s.Add("noise", 1, 1, today())
	require.NoError(t, err)

	require.NoError(t, s.DropTask(tk.ID))
	assert.ErrorIs(t, s.DropTask(tk.ID), ErrNotFound)

	// Never two dropped entries for one task.
	var drops int
	for _, a := range readLog(t, s.Dir()) {
		if a == eventlog.ActionDropped {
			drops++
		}
	}
	assert.Equal(t, 1, drops)
}

func TestDroppedTasksExcludedFromViews(t *testing.T) {
	s := openStore(t)
	keep, err := s.Add("keep", 2, 2, today())
	require.NoError(t, err)
	gone, err := s.Add("gone", 2, 2, today())
	require.NoError(t, err)
	require.NoError(t, s.DropTask(gone.ID))

	groups := s.TasksFor(today())
	require.Len(t, groups[task.DoFirst], 1)
	assert.Equal(t, keep.ID, groups[task.DoFirst][0].ID)

	// Retained in the collection for audit.
	assert.Len(t, s.Tasks(), 2)
}

func TestUpdateTaskValidatesAndLogs(t *testing.T) {
	s := openStore(t)
	tk, err := s.Add("draft", 1, 1, today())
	require.NoError(t, err)

	assert.ErrorIs(t, s.UpdateTask(tk.ID, "draft", 9, 1), task.ErrInvalidPriority)
	assert.Equal(t, 1, tk.Urgency) // unchanged on error

	require.NoError(t, s.UpdateTask(tk.ID, "draft v2", 3, 2))
	assert.Equal(t, "draft v2", tk.Title)
	assert.Equal(t, task.DoFirst, tk.Quadrant())
}

func TestMoveToChangesDay(t *testing.T) {
	s := openStore(t)
	tk, err := s.Add("slip it", 2, 2, today())
	require.NoError(t, err)

	tomorrow := today().AddDate(0, 0, 1)
	require.NoError(t, s.MoveTo(tk.ID, tomorrow))
	assert.True(t, tk.ScheduledOn(tomorrow))

	assert.Empty(t, s.PendingFor(today()))
	assert.Len(t, s.PendingFor(tomorrow), 1)
}

func TestTasksForOrdering(t *testing.T) {
	s := openStore(t)
	low, err := s.Add("low", 2, 2, today()) // score 10
	require.NoError(t, err)
	high, err := s.Add("high", 3, 3, today()) // score 15
	require.NoError(t, err)

	q := s.TasksFor(today())[task.DoFirst]
	require.Len(t, q, 2)
	assert.Equal(t, high.ID, q[0].ID)
	assert.Equal(t, low.ID, q[1].ID)
}

func TestSaveLeavesNoTempResidue(t *testing.T) {
	s := openStore(t)
	_, err := s.Add("tidy", 1, 1, today())
	require.NoError(t, err)

	entries, err := os.ReadDir(s.Dir())
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp-")
	}
}

func TestCrashBetweenWriteAndRenameKeepsOldFile(t *testing.T) {
	s := openStore(t)
	_, err := s.Add("survivor", 2, 3, today())
	require.NoError(t, err)

	// Simulate a crash after the temp write but before the rename: a
	// stray temp file next to the live one. The live file must remain
	// complete and parseable, and loading must ignore the temp.
	stray := filepath.Join(s.Dir(), TasksFileName+".tmp-123")
	require.NoError(t, os.WriteFile(stray, []byte(`[{"id":"partial`), 0o644))

	reloaded, err := Open(s.Dir())
	require.NoError(t, err)
	require.Len(t, reloaded.Tasks(), 1)
	assert.Equal(t, "survivor", reloaded.Tasks()[0].Title)
}

func TestChatTranscriptRoundTrip(t *testing.T) {
	s := openStore(t)

	msgs := []ChatMessage{
		{Role: "user", Text: "plan my day", Timestamp: time.Now().UTC()},
		{Role: "assistant", Text: "start with the DO FIRST quadrant", Timestamp: time.Now().UTC()},
	}
	require.NoError(t, s.SaveChat(msgs))

	got := s.LoadChat()
	require.Len(t, got, 2)
	assert.Equal(t, "user", got[0].Role)
	assert.Equal(t, "plan my day", got[0].Text)

	require.NoError(t, s.ClearChat())
	assert.Empty(t, s.LoadChat())
	require.NoError(t, s.ClearChat()) // idempotent
}
