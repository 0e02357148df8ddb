package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/Faultbox/spicy/pkg/landscape"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Project.Root != "." {
		t.Errorf("expected root '.', got %s", cfg.Project.Root)
	}
	if cfg.Project.SampleRadius != 0 {
		t.Errorf("expected no sample landscape by default, got %d", cfg.Project.SampleRadius)
	}

	if cfg.Landscape.CellSize != 64 {
		t.Errorf("expected cell size 64, got %d", cfg.Landscape.CellSize)
	}
	if cfg.Landscape.Scale != 8 || cfg.Landscape.Unit != 69.5 {
		t.Errorf("expected ratio 8/69.5, got %v/%v", cfg.Landscape.Scale, cfg.Landscape.Unit)
	}
	if cfg.Landscape.EdgePolicy != "overwrite" {
		t.Errorf("expected edge policy 'overwrite', got %s", cfg.Landscape.EdgePolicy)
	}

	if cfg.Converter.Path != "" {
		t.Errorf("expected empty converter path, got %s", cfg.Converter.Path)
	}
	if cfg.Converter.Timeout != 5*time.Minute {
		t.Errorf("expected timeout 5m, got %v", cfg.Converter.Timeout)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "spicy.yaml")

	yamlContent := `
project:
  root: "/games/mymod"
  author: "Vivec"
  sample_radius: 2

converter:
  path: "/opt/tes3conv"
  timeout: 30s

landscape:
  cell_size: 32
  scale: 4
  unit: 70
  edge_policy: strict
  edge_tolerance: 0.5

publish:
  bucket: "mods"
  prefix: "builds"

logging:
  level: "debug"
  log_file: "spicy.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Project.Root != "/games/mymod" {
		t.Errorf("expected root /games/mymod, got %s", cfg.Project.Root)
	}
	if cfg.Project.Author != "Vivec" {
		t.Errorf("expected author Vivec, got %s", cfg.Project.Author)
	}
	if cfg.Project.Description != "Data" {
		t.Errorf("expected default description to survive, got %s", cfg.Project.Description)
	}
	if cfg.Project.SampleRadius != 2 {
		t.Errorf("expected sample radius 2, got %d", cfg.Project.SampleRadius)
	}

	if cfg.Converter.Path != "/opt/tes3conv" {
		t.Errorf("expected converter /opt/tes3conv, got %s", cfg.Converter.Path)
	}
	if cfg.Converter.Timeout != 30*time.Second {
		t.Errorf("expected timeout 30s, got %v", cfg.Converter.Timeout)
	}

	if cfg.Landscape.CellSize != 32 || cfg.Landscape.Scale != 4 || cfg.Landscape.Unit != 70 {
		t.Errorf("expected units 32/4/70, got %+v", cfg.Landscape.Units)
	}
	if cfg.Landscape.EdgePolicy != "strict" || cfg.Landscape.EdgeTolerance != 0.5 {
		t.Errorf("expected strict/0.5, got %s/%v", cfg.Landscape.EdgePolicy, cfg.Landscape.EdgeTolerance)
	}

	if cfg.Publish.Bucket != "mods" || cfg.Publish.Region != "us-east-1" {
		t.Errorf("expected bucket mods in us-east-1, got %s in %s", cfg.Publish.Bucket, cfg.Publish.Region)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "spicy.log" {
		t.Errorf("expected log file 'spicy.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
landscape:
  cell_size: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/spicy.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"warn policy", func(c *Config) { c.Landscape.EdgePolicy = "warn" }, true},
		{"unknown policy", func(c *Config) { c.Landscape.EdgePolicy = "loud" }, false},
		{"zero cell size", func(c *Config) { c.Landscape.CellSize = 0 }, false},
		{"negative timeout", func(c *Config) { c.Converter.Timeout = -time.Second }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
			if !tt.ok && err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLandscapeReconciler(t *testing.T) {
	cfg := Default()
	cfg.Landscape.EdgePolicy = "warn"
	cfg.Landscape.EdgeTolerance = 0.25

	r, err := cfg.Landscape.Reconciler()
	if err != nil {
		t.Fatalf("Reconciler failed: %v", err)
	}
	if r.Policy != landscape.EdgeWarn {
		t.Errorf("expected warn policy, got %s", r.Policy)
	}
	if r.Tolerance != 0.25 {
		t.Errorf("expected tolerance 0.25, got %v", r.Tolerance)
	}
	if r.Units != landscape.DefaultUnits() {
		t.Errorf("expected default units, got %+v", r.Units)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestDiscoveredFiles(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := userConfigFile(); runtime.GOOS == "linux" && path != "" {
		t.Errorf("expected no user config, got %s", path)
	}
	if path := projectConfigFile("."); path != "" {
		t.Errorf("expected no project config, got %s", path)
	}

	if err := os.WriteFile(ProjectFileName, []byte("project:\n  author: Vivec\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := projectConfigFile("."); path != ProjectFileName {
		t.Errorf("expected %s, got %q", ProjectFileName, path)
	}

	// A directory with the config file's name is not a config.
	if err := os.MkdirAll(filepath.Join("mod", ProjectFileName), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if path := projectConfigFile("mod"); path != "" {
		t.Errorf("expected directory to be ignored, got %s", path)
	}
}

func TestLoad_ProjectFileUnderRoot(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	root := filepath.Join(tmpDir, "mymod")

	// Written by "new" from outside the project, so it names a relative root.
	saved := Default()
	saved.Project.Root = "mymod"
	saved.Landscape.EdgePolicy = "warn"
	if err := saved.SaveTo(ProjectFile(root)); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	*flagRoot = root
	defer func() { *flagRoot = "" }()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Landscape.EdgePolicy != "warn" {
		t.Errorf("expected edge policy from %s, got %s", ProjectFile(root), cfg.Landscape.EdgePolicy)
	}
	if cfg.Project.Root != root {
		t.Errorf("expected root %s, got %s", root, cfg.Project.Root)
	}
}

func TestLoad_ProjectFileInWorkingDir(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	yamlContent := `
project:
  root: "mymod"
landscape:
  edge_policy: strict
`
	if err := os.WriteFile(ProjectFileName, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Project.Root != "." {
		t.Errorf("expected the file's directory as root, got %s", cfg.Project.Root)
	}
	if cfg.Landscape.EdgePolicy != "strict" {
		t.Errorf("expected edge policy strict, got %s", cfg.Landscape.EdgePolicy)
	}
}

func TestLoad_UserThenProject(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME is only consulted on linux")
	}
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	userFile := filepath.Join(tmpDir, "xdg", "spicy", "config.yaml")
	if err := os.MkdirAll(filepath.Dir(userFile), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	userYAML := "project:\n  author: Vivec\nlandscape:\n  edge_policy: strict\n"
	if err := os.WriteFile(userFile, []byte(userYAML), 0644); err != nil {
		t.Fatalf("failed to write user config: %v", err)
	}

	root := filepath.Join(tmpDir, "mymod")
	if err := os.MkdirAll(root, 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(ProjectFile(root), []byte("landscape:\n  edge_policy: warn\n"), 0644); err != nil {
		t.Fatalf("failed to write project config: %v", err)
	}

	*flagRoot = root
	defer func() { *flagRoot = "" }()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Project.Author != "Vivec" {
		t.Errorf("expected author from user config, got %s", cfg.Project.Author)
	}
	if cfg.Landscape.EdgePolicy != "warn" {
		t.Errorf("expected project config to override user config, got %s", cfg.Landscape.EdgePolicy)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "root flag",
			setup: func() { *flagRoot = "/tmp/mod" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Project.Root != "/tmp/mod" {
					t.Errorf("expected root /tmp/mod, got %s", cfg.Project.Root)
				}
			},
			teardown: func() { *flagRoot = "" },
		},
		{
			name:  "converter flag",
			setup: func() { *flagConverter = "/usr/bin/tes3conv" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Converter.Path != "/usr/bin/tes3conv" {
					t.Errorf("expected converter /usr/bin/tes3conv, got %s", cfg.Converter.Path)
				}
			},
			teardown: func() { *flagConverter = "" },
		},
		{
			name:  "edges flag",
			setup: func() { *flagEdges = "strict" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Landscape.EdgePolicy != "strict" {
					t.Errorf("expected edge policy strict, got %s", cfg.Landscape.EdgePolicy)
				}
			},
			teardown: func() { *flagEdges = "" },
		},
		{
			name:  "sample flag",
			setup: func() { *flagSample = 0 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Project.SampleRadius != 0 {
					t.Errorf("expected sample radius 0, got %d", cfg.Project.SampleRadius)
				}
			},
			teardown: func() { *flagSample = -1 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			cfg.Project.SampleRadius = 3
			applyFlags(cfg)

			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "spicy.yaml")

	yamlContent := `
project:
  root: "/from/file"
landscape:
  edge_policy: warn
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagRoot = "/from/flag"
	defer func() {
		*flagConfig = ""
		*flagRoot = ""
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Project.Root != "/from/flag" {
		t.Errorf("expected root from flag, got %s", cfg.Project.Root)
	}
	if cfg.Landscape.EdgePolicy != "warn" {
		t.Errorf("expected edge policy from file, got %s", cfg.Landscape.EdgePolicy)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "spicy.yaml")

	cfg := Default()
	cfg.Landscape.EdgePolicy = "warn"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if loaded.Landscape.EdgePolicy != "warn" {
		t.Errorf("expected edge policy warn, got %s", loaded.Landscape.EdgePolicy)
	}
	if loaded.Converter.Timeout != 5*time.Minute {
		t.Errorf("expected timeout 5m, got %v", loaded.Converter.Timeout)
	}
}
