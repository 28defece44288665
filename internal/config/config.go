// Package config provides hierarchical tool configuration for chlog using
// koanf. Values are loaded with priority: environment variables > project
// config (.chlog/config.yml) > user config (~/.config/chlog/config.yml) >
// defaults. Command-line flags override everything and are applied by the
// CLI layer.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Configuration holds the tool-level settings. They pick the inputs of a
// run; everything about the changelog content itself lives in the template
// file these settings point at.
type Configuration struct {
	// TemplatePath is the changelog template file. Default: .chlog.yml.
	TemplatePath string `koanf:"template_path"`
	// GitPath is the repository to read. Default: current directory.
	GitPath string `koanf:"git_path"`
	// Project preselects the project in multi-project repositories, so CI
	// jobs don't need to pass --project on every invocation.
	Project string `koanf:"project"`
	// NoColor disables colored error output.
	NoColor bool `koanf:"no_color"`
}

// LoadOptions configure how configuration is loaded.
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (for tests).
	ProjectConfigPath string
	// UserConfigPath overrides the user config path (for tests).
	UserConfigPath string
}

// Load loads configuration from user, project, and environment sources.
func Load() (*Configuration, error) {
	return LoadWithOptions(LoadOptions{})
}

// LoadWithOptions loads configuration with custom options.
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")

	for key, value := range defaults() {
		k.Set(key, value)
	}

	userPath := opts.UserConfigPath
	if userPath == "" {
		userPath = userConfigPath()
	}
	if err := loadFile(k, userPath, "user"); err != nil {
		return nil, err
	}

	projectPath := opts.ProjectConfigPath
	if projectPath == "" {
		projectPath = filepath.Join(".chlog", "config.yml")
	}
	if err := loadFile(k, projectPath, "project"); err != nil {
		return nil, err
	}

	if err := k.Load(env.Provider("CHLOG_", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading environment config: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// defaults returns the built-in configuration values.
func defaults() map[string]any {
	return map[string]any{
		"template_path": ".chlog.yml",
		"git_path":      "./",
		"project":       "",
		"no_color":      false,
	}
}

// loadFile loads one YAML config file if it exists.
func loadFile(k *koanf.Koanf, path, configType string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("loading %s config %s: %w", configType, path, err)
	}
	return nil
}

// userConfigPath returns the XDG-style user config location.
func userConfigPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "chlog", "config.yml")
}

// envTransform converts environment variable names to config keys.
// Example: CHLOG_TEMPLATE_PATH -> template_path.
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "CHLOG_"))
}
