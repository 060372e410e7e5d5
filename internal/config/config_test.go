package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Logging.Level != "warn" {
		t.Errorf("expected log level 'warn', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if cfg.Decode.AllowZstd {
		t.Error("expected zstd to be disabled by default")
	}
	if cfg.Decode.Workers != runtime.NumCPU() {
		t.Errorf("expected %d workers, got %d", runtime.NumCPU(), cfg.Decode.Workers)
	}
	if cfg.Decode.SkipMissingTilesets {
		t.Error("expected missing tilesets to fail by default")
	}

	if cfg.Output.Format != FormatText {
		t.Errorf("expected format 'text', got %s", cfg.Output.Format)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "tmxtool.yaml")

	yamlContent := `
logging:
  level: "debug"
  log_file: "tmxtool.log"

decode:
  allow_zstd: true
  workers: 2
  skip_missing_tilesets: true

output:
  format: "yaml"
  show_empty: true
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "tmxtool.log" {
		t.Errorf("expected log file 'tmxtool.log', got %s", cfg.Logging.LogFile)
	}
	if !cfg.Decode.AllowZstd {
		t.Error("expected allow_zstd to be true")
	}
	if cfg.Decode.Workers != 2 {
		t.Errorf("expected 2 workers, got %d", cfg.Decode.Workers)
	}
	if !cfg.Decode.SkipMissingTilesets {
		t.Error("expected skip_missing_tilesets to be true")
	}
	if cfg.Output.Format != FormatYAML {
		t.Errorf("expected format 'yaml', got %s", cfg.Output.Format)
	}
	if !cfg.Output.ShowEmpty {
		t.Error("expected show_empty to be true")
	}
}

func TestLoadFromFilePartial(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "tmxtool.yaml")
	if err := os.WriteFile(configPath, []byte("decode:\n  workers: 3\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Unset keys keep their defaults
	if cfg.Decode.Workers != 3 {
		t.Errorf("expected 3 workers, got %d", cfg.Decode.Workers)
	}
	if cfg.Output.Format != FormatText {
		t.Errorf("expected default format, got %s", cfg.Output.Format)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected default level, got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	invalidYAML := `
decode:
  workers: not a number
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
	if err := loadFromFile(cfg, "/nonexistent/path/tmxtool.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Output.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown format")
	}

	cfg = Default()
	cfg.Decode.Workers = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative workers")
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

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "tmxtool.yaml")
	if err := os.WriteFile(configPath, []byte("output:\n  format: yaml\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find tmxtool.yaml in current directory")
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tmxtool.yaml")

	cfg := Default()
	cfg.Decode.AllowZstd = true
	cfg.Output.Format = FormatYAML
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if !loaded.Decode.AllowZstd || loaded.Output.Format != FormatYAML {
		t.Errorf("saved settings not reloaded: %+v", loaded)
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
			name:  "zstd flag",
			setup: func() { *flagZstd = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Decode.AllowZstd {
					t.Error("expected zstd to be enabled with zstd flag")
				}
			},
			teardown: func() { *flagZstd = false },
		},
		{
			name:  "workers flag",
			setup: func() { *flagWorkers = 7 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Decode.Workers != 7 {
					t.Errorf("expected 7 workers, got %d", cfg.Decode.Workers)
				}
			},
			teardown: func() { *flagWorkers = 0 },
		},
		{
			name:  "skip-missing flag",
			setup: func() { *flagLenient = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Decode.SkipMissingTilesets {
					t.Error("expected skip_missing_tilesets with skip-missing flag")
				}
			},
			teardown: func() { *flagLenient = false },
		},
		{
			name: "format and log file flags",
			setup: func() {
				*flagFormat = FormatYAML
				*flagLogFile = "run.log"
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Output.Format != FormatYAML {
					t.Errorf("expected format yaml, got %s", cfg.Output.Format)
				}
				if cfg.Logging.LogFile != "run.log" {
					t.Errorf("expected log file run.log, got %s", cfg.Logging.LogFile)
				}
			},
			teardown: func() {
				*flagFormat = ""
				*flagLogFile = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "tmxtool.yaml")

	yamlContent := `
decode:
  workers: 4
  allow_zstd: true
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWorkers = 9
	defer func() {
		*flagConfig = ""
		*flagWorkers = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Workers from flag, not file
	if cfg.Decode.Workers != 9 {
		t.Errorf("expected 9 workers from flag, got %d", cfg.Decode.Workers)
	}
	// Zstd from file since no flag override
	if !cfg.Decode.AllowZstd {
		t.Error("expected allow_zstd from file")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "tmxtool.yaml")
	if err := os.WriteFile(configPath, []byte("output:\n  format: html\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected error for unknown output format")
	}
}
