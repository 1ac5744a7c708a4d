package assist

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eisenq/eq/internal/config"
	"github.com/eisenq/eq/internal/store"
)

func TestNewClientRequiresKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")

	_, err := NewClient(&config.Config{})
	assert.ErrorIs(t, err, ErrNoAPIKey)

	c, err := NewClient(&config.Config{APIKey: "sk-from-config"})
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestPollIsNonBlocking(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	c, err := NewClient(&config.Config{})
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		_, ok := c.Poll()
		assert.False(t, ok)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Poll blocked on empty reply channel")
	}
}

func TestSendDeliversErrorInsteadOfCrashing(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	c, err := NewClient(&config.Config{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // fail fast without touching the network

	c.Send(ctx, []store.ChatMessage{{Role: "user", Text: "hello"}}, "")

	deadline := time.After(5 * time.Second)
	for {
		if r, ok := c.Poll(); ok {
			assert.Error(t, r.Err)
			return
		}
		select {
		case <-deadline:
			t.Fatal("no reply delivered")
		case <-time.After(10 * time.Millisecond):
		}
	}
}
