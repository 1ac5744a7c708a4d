package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataDirEnvOverride(t *testing.T) {
	want := filepath.Join(t.TempDir(), "eqdata")
	t.Setenv(EnvDataDir, want)

	dir, err := DataDir()
	require.NoError(t, err)
	assert.Equal(t, want, dir)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, cfg.Model)
	assert.Equal(t, 1024, cfg.MaxTokens)
	assert.Empty(t, cfg.APIKey)
}

func TestLoadReadsFile(t *testing.T) {
	dir := t.TempDir()
	content := "model: claude-sonnet-4-20250514\napi-key: sk-test\nmax-tokens: 512\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "claude-sonnet-4-20250514", cfg.Model)
	assert.Equal(t, "sk-test", cfg.APIKey)
	assert.Equal(t, 512, cfg.MaxTokens)
}

func TestWriteDefaultDoesNotClobber(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteDefault(dir))

	custom := "model: custom\n"
	path := filepath.Join(dir, configFileName)
	require.NoError(t, os.WriteFile(path, []byte(custom), 0o644))
	require.NoError(t, WriteDefault(dir))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, custom, string(data))
}
