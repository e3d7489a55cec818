package main

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const defaultWorktreeDir = "~/.local/share/worktrees"

// AppConfig is the user configuration. Values are coerced tolerantly:
// a malformed file or field falls back to defaults instead of failing
// startup.
type AppConfig struct {
	WorktreeDir       string
	SortByActive      bool
	AutoFetchPRs      bool
	MaxUntrackedDiffs int
	MaxDiffChars      int
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		SortByActive:      true,
		AutoFetchPRs:      false,
		MaxUntrackedDiffs: 10,
		MaxDiffChars:      200_000,
	}
}

func defaultConfigPaths() []string {
	configHome := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME"))
	if configHome == "" {
		configHome = expandHome("~/.config")
	}
	return []string{
		filepath.Join(configHome, "wts", "config.yaml"),
		filepath.Join(configHome, "wts", "config.yml"),
	}
}

// LoadConfig reads the first existing config file, or the defaults when
// none exists or the file cannot be parsed.
func LoadConfig(explicitPath string) *AppConfig {
	paths := defaultConfigPaths()
	if strings.TrimSpace(explicitPath) != "" {
		paths = []string{expandHome(explicitPath)}
	}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var raw map[string]any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return defaultConfig()
		}
		return parseConfig(raw)
	}
	return defaultConfig()
}

func parseConfig(raw map[string]any) *AppConfig {
	cfg := defaultConfig()
	if raw == nil {
		return cfg
	}
	if dir, ok := raw["worktree_dir"].(string); ok {
		cfg.WorktreeDir = strings.TrimSpace(dir)
	}
	cfg.SortByActive = coerceBool(raw["sort_by_active"], cfg.SortByActive)
	cfg.AutoFetchPRs = coerceBool(raw["auto_fetch_prs"], cfg.AutoFetchPRs)
	cfg.MaxUntrackedDiffs = coerceInt(raw["max_untracked_diffs"], cfg.MaxUntrackedDiffs)
	cfg.MaxDiffChars = coerceInt(raw["max_diff_chars"], cfg.MaxDiffChars)
	if cfg.MaxUntrackedDiffs < 0 {
		cfg.MaxUntrackedDiffs = 0
	}
	if cfg.MaxDiffChars < 0 {
		cfg.MaxDiffChars = 0
	}
	return cfg
}

func coerceBool(value any, fallback bool) bool {
	switch v := value.(type) {
	case bool:
		return v
	case int:
		return v != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return fallback
}

func coerceInt(value any, fallback int) int {
	switch v := value.(type) {
	case bool:
		return fallback
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		text := strings.TrimSpace(v)
		if text == "" {
			return fallback
		}
		if n, err := strconv.Atoi(text); err == nil {
			return n
		}
	}
	return fallback
}

// normalizeCommandList accepts a scalar or a list of scalars and
// returns the non-empty command strings. Exotic YAML shapes collapse to
// an empty list rather than an error.
func normalizeCommandList(value any) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		text := strings.TrimSpace(v)
		if text == "" {
			return nil
		}
		return []string{text}
	case []any:
		var commands []string
		for _, item := range v {
			if item == nil {
				continue
			}
			text := strings.TrimSpace(stringify(item))
			if text != "" {
				commands = append(commands, text)
			}
		}
		return commands
	}
	return nil
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home := strings.TrimSpace(os.Getenv("HOME"))
		if home != "" {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
