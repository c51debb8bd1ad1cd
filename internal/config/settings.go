// Package config loads the optional scopefs settings file. Everything in it
// can also be supplied on the command line; flags win over the file.
package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Settings represents the on-disk configuration.
type Settings struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level,omitempty"`

	// AllowedDirectories are roots added in addition to the command-line
	// arguments at startup. A later roots-protocol update replaces both.
	AllowedDirectories []string `yaml:"allowed_directories,omitempty"`

	// DefaultExcludePatterns are glob patterns merged into every
	// directory_tree and search_files call.
	DefaultExcludePatterns []string `yaml:"default_exclude_patterns,omitempty"`
}

// GetDefaultSettings returns the settings used when no file exists.
func GetDefaultSettings() *Settings {
	return &Settings{
		LogLevel: "info",
	}
}

// DefaultSettingsPath returns ~/.scopefs/settings.yaml.
func DefaultSettingsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "resolve home directory")
	}
	return filepath.Join(home, ".scopefs", "settings.yaml"), nil
}

// LoadSettings reads the settings file at path. A missing file is not an
// error; defaults are returned.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return GetDefaultSettings(), nil
		}
		return nil, errors.Wrapf(err, "read settings %s", path)
	}

	settings := GetDefaultSettings()
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, errors.Wrapf(err, "parse settings %s", path)
	}
	return settings, nil
}

// Save writes the settings to path, creating the parent directory if needed.
func (s *Settings) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "marshal settings")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "create settings directory for %s", path)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write settings %s", path)
	}
	return nil
}
