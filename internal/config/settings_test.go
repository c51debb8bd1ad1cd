package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadSettingsMissingFile(t *testing.T) {
	settings, err := LoadSettings(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if settings.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want default info", settings.LogLevel)
	}
	if len(settings.AllowedDirectories) != 0 {
		t.Errorf("AllowedDirectories = %v, want empty", settings.AllowedDirectories)
	}
}

func TestLoadSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := `log_level: debug
allowed_directories:
  - /srv/data
  - /srv/docs
default_exclude_patterns:
  - node_modules
  - "**/*.secret"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to create settings file: %v", err)
	}

	settings, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if settings.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", settings.LogLevel)
	}
	if want := []string{"/srv/data", "/srv/docs"}; !reflect.DeepEqual(settings.AllowedDirectories, want) {
		t.Errorf("AllowedDirectories = %v, want %v", settings.AllowedDirectories, want)
	}
	if want := []string{"node_modules", "**/*.secret"}; !reflect.DeepEqual(settings.DefaultExcludePatterns, want) {
		t.Errorf("DefaultExcludePatterns = %v, want %v", settings.DefaultExcludePatterns, want)
	}
}

func TestLoadSettingsInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("log_level: [unclosed"), 0o644); err != nil {
		t.Fatalf("Failed to create settings file: %v", err)
	}
	if _, err := LoadSettings(path); err == nil {
		t.Fatal("LoadSettings should fail on malformed YAML")
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")
	settings := &Settings{
		LogLevel:               "warn",
		AllowedDirectories:     []string{"/srv/data"},
		DefaultExcludePatterns: []string{".git"},
	}

	if err := settings.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if !reflect.DeepEqual(loaded, settings) {
		t.Errorf("reloaded settings = %+v, want %+v", loaded, settings)
	}
}
