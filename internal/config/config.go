// Package config resolves the eq data directory and loads user settings
// from config.yaml with EQ_* environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// EnvDataDir overrides the data directory location.
	EnvDataDir = "EQ_DATA_DIR"

	appDirName     = "eq"
	configFileName = "config.yaml"

	// DefaultModel is the assistant model used when config.yaml does not
	// name one.
	DefaultModel = "claude-3-5-haiku-latest"
)

// Config holds user-tunable settings. All fields have workable zero-value
// or defaulted behavior; a missing config.yaml is not an error.
type Config struct {
	// Model is the assistant model identifier.
	Model string `yaml:"model" mapstructure:"model"`
	// APIKey is the Anthropic API key. ANTHROPIC_API_KEY takes
	// precedence; chat is disabled when both are empty.
	APIKey string `yaml:"api-key" mapstructure:"api-key"`
	// MaxTokens caps assistant reply length.
	MaxTokens int `yaml:"max-tokens" mapstructure:"max-tokens"`
}

// DataDir resolves and creates the directory holding tasks.json,
// chat.json, history.jsonl and config.yaml. Resolution order: EQ_DATA_DIR,
// then the OS user config directory.
func DataDir() (string, error) {
	if dir := os.Getenv(EnvDataDir); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create data directory: %w", err)
		}
		return dir, nil
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config directory (set %s to override): %w", EnvDataDir, err)
	}
	dir := filepath.Join(base, appDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create data directory: %w", err)
	}
	return dir, nil
}

// Load reads config.yaml from dir. Missing file yields defaults; EQ_MODEL,
// EQ_API_KEY and EQ_MAX_TOKENS override file values.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(filepath.Join(dir, configFileName))
	v.SetConfigType("yaml")
	v.SetEnvPrefix("EQ")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("model", DefaultModel)
	v.SetDefault("api-key", "")
	v.SetDefault("max-tokens", 1024)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read %s: %w", configFileName, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", configFileName, err)
	}
	return &cfg, nil
}

// WriteDefault creates a commented config.yaml in dir when none exists.
func WriteDefault(dir string) error {
	path := filepath.Join(dir, configFileName)
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	defaults := Config{Model: DefaultModel, MaxTokens: 1024}
	data, err := yaml.Marshal(&defaults)
	if err != nil {
		return fmt.Errorf("marshal default config: %w", err)
	}

	header := []byte("# eq configuration. api-key may also come from ANTHROPIC_API_KEY.\n")
	return os.WriteFile(path, append(header, data...), 0o644)
}
