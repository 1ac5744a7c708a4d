package telemetry

import (
	"context"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureStdout redirects os.Stdout for the duration of fn and returns
// everything written to it.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	orig := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestInitDisabledInstallsNoopProviders(t *testing.T) {
	t.Setenv("EQ_OTEL_ENABLED", "")

	ctx := context.Background()
	require.NoError(t, Init(ctx, "eq-test", "0.0.0"))
	assert.False(t, Enabled())
	Shutdown(ctx)
}

func TestTraceStdoutExporterOffByDefault(t *testing.T) {
	t.Setenv("EQ_OTEL_ENABLED", "true")
	t.Setenv("EQ_OTEL_STDOUT", "")

	ctx := context.Background()
	out := captureStdout(t, func() {
		require.NoError(t, Init(ctx, "eq-test", "0.0.0"))
		_, span := Tracer("").Start(ctx, "startup")
		span.End()
		Shutdown(ctx)
	})

	assert.Empty(t, out)
}

func TestTraceStdoutExporterEnabled(t *testing.T) {
	t.Setenv("EQ_OTEL_ENABLED", "true")
	t.Setenv("EQ_OTEL_STDOUT", "true")

	ctx := context.Background()
	out := captureStdout(t, func() {
		require.NoError(t, Init(ctx, "eq-test", "0.0.0"))
		_, span := Tracer("").Start(ctx, "startup")
		span.End()
		Shutdown(ctx)
	})

	assert.Contains(t, out, "startup")
}
