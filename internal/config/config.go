// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ericfisherdev/xbar-pr-status/internal/domain/model"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	GitHubToken string
	SinceDays   *int // nil disables the updated-at cutoff.
	LogLevel    slog.Level
	EmojiFile   string
	Emoji       map[model.DisplayKind]string // Overrides only; defaults live with the renderer.
}

// EmojiEnvVar returns the variable that overrides the glyph for kind,
// e.g. EMOJI_SUCCESS_AND_APPROVED.
func EmojiEnvVar(kind model.DisplayKind) string {
	return "EMOJI_" + strings.ToUpper(string(kind))
}

// Load reads configuration from environment variables and returns a validated Config.
// GITHUB_API_TOKEN is required. Optional variables: SINCE (days),
// XBAR_PR_STATUS_LOG (debug, info, warn, error; default warn),
// XBAR_PR_STATUS_EMOJI_FILE (YAML glyph overrides) and one EMOJI_<KIND>
// per display kind. EMOJI_* variables win over the file.
func Load() (*Config, error) {
	token, ok := os.LookupEnv("GITHUB_API_TOKEN")
	if !ok || token == "" {
		return nil, fmt.Errorf("GITHUB_API_TOKEN is required (create one with the repo and read:user scopes)")
	}

	cfg := &Config{
		GitHubToken: token,
		LogLevel:    slog.LevelWarn,
		Emoji:       map[model.DisplayKind]string{},
	}

	if v, ok := os.LookupEnv("SINCE"); ok && v != "" {
		days, err := ParseSince(v)
		if err != nil {
			return nil, fmt.Errorf("SINCE %w", err)
		}
		cfg.SinceDays = &days
	}

	if v, ok := os.LookupEnv("XBAR_PR_STATUS_LOG"); ok && v != "" {
		level, err := ParseLogLevel(v)
		if err != nil {
			return nil, fmt.Errorf("XBAR_PR_STATUS_LOG %w", err)
		}
		cfg.LogLevel = level
	}

	if v, ok := os.LookupEnv("XBAR_PR_STATUS_EMOJI_FILE"); ok && v != "" {
		cfg.EmojiFile = v
		if err := cfg.ApplyEmojiFile(v); err != nil {
			return nil, fmt.Errorf("XBAR_PR_STATUS_EMOJI_FILE: %w", err)
		}
	}

	for _, kind := range model.DisplayKinds {
		if v, ok := os.LookupEnv(EmojiEnvVar(kind)); ok && v != "" {
			cfg.Emoji[kind] = v
		}
	}

	return cfg, nil
}

// ApplyEmojiFile merges glyph overrides from a YAML file whose keys are the
// snake_case display kinds, e.g. "success_and_approved: 🟢". Unknown keys
// are rejected.
func (c *Config) ApplyEmojiFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read emoji file: %w", err)
	}

	var overrides map[string]string
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return fmt.Errorf("failed to parse emoji file: %w", err)
	}

	known := make(map[model.DisplayKind]bool, len(model.DisplayKinds))
	for _, kind := range model.DisplayKinds {
		known[kind] = true
	}

	for key, glyph := range overrides {
		kind := model.DisplayKind(key)
		if !known[kind] {
			return fmt.Errorf("emoji file %s: unknown status %q", path, key)
		}
		if glyph != "" {
			c.Emoji[kind] = glyph
		}
	}
	return nil
}

// ParseSince validates a day count for the updated-at cutoff.
func ParseSince(v string) (int, error) {
	days, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("has invalid day count %q: %w", v, err)
	}
	if days < 0 {
		return 0, fmt.Errorf("has negative day count %d", days)
	}
	return days, nil
}

// ParseLogLevel accepts the slog level names, case-insensitively.
func ParseLogLevel(v string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(v)); err != nil {
		return 0, fmt.Errorf("has invalid level %q: %w", v, err)
	}
	return level, nil
}
