package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectFileName is the per-project config file kept in the project root.
const ProjectFileName = "spicy.yaml"

// ProjectFile returns the config file path of the project rooted at root.
func ProjectFile(root string) string {
	return filepath.Join(root, ProjectFileName)
}

// Load loads configuration with priority:
// defaults < user config < project config < flags.
// An explicit -config file replaces both discovered files.
func Load() (*Config, error) {
	cfg := Default()

	if path := ConfigPath(); path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	} else {
		if path := userConfigFile(); path != "" {
			if err := loadFromFile(cfg, path); err != nil {
				return nil, fmt.Errorf("loading config from %s: %w", path, err)
			}
		}
		if path := projectConfigFile(projectRoot()); path != "" {
			if err := loadProjectFile(cfg, path); err != nil {
				return nil, fmt.Errorf("loading config from %s: %w", path, err)
			}
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// projectRoot is the root named on the command line, or the working directory.
func projectRoot() string {
	if *flagRoot != "" {
		return *flagRoot
	}
	return "."
}

// userConfigFile returns the per-user defaults file if it exists.
func userConfigFile() string {
	return existing(filepath.Join(ConfigDir(), "config.yaml"))
}

// projectConfigFile returns root/spicy.yaml if it exists.
func projectConfigFile(root string) string {
	return existing(ProjectFile(root))
}

func existing(path string) string {
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return path
	}
	return ""
}

// ConfigDir returns the per-user config directory for spicy
// ($XDG_CONFIG_HOME/spicy, ~/Library/Application Support/spicy, %AppData%\spicy).
func ConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".spicy")
	}
	return filepath.Join(dir, "spicy")
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// loadProjectFile merges a project file. The project root is always the
// directory holding the file, whatever root the file itself names, so the
// same project can be used from inside or outside its directory.
func loadProjectFile(cfg *Config, path string) error {
	if err := loadFromFile(cfg, path); err != nil {
		return err
	}
	cfg.Project.Root = filepath.Dir(path)
	return nil
}
