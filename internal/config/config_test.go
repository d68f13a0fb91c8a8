package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"catalogprep/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	workDir := t.TempDir()
	t.Chdir(workDir)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(workDir, "data")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.FeaturesPath() != filepath.Join(wantData, "X_train.csv") {
		t.Fatalf("unexpected features path: %q", cfg.FeaturesPath())
	}
	if cfg.LabelsPath() != filepath.Join(wantData, "Y_train.csv") {
		t.Fatalf("unexpected labels path: %q", cfg.LabelsPath())
	}
	if cfg.Cache.ManifestPath != filepath.Join(cfg.Paths.CacheDir, "manifest.db") {
		t.Fatalf("unexpected manifest path: %q", cfg.Cache.ManifestPath)
	}
	if cfg.Split.TestRatio != 0.2 || cfg.Split.Seed != 66 {
		t.Fatalf("unexpected split defaults: %+v", cfg.Split)
	}
	if cfg.Normalizer.MinTokenLength != 4 {
		t.Fatalf("unexpected min token length: %d", cfg.Normalizer.MinTokenLength)
	}
	if len(cfg.Normalizer.Steps) != len(config.DefaultSteps) {
		t.Fatalf("unexpected default steps: %v", cfg.Normalizer.Steps)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.CacheDir, cfg.Paths.OutputDir, cfg.Paths.LogDir, cfg.Paths.FiguresDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
	if _, err := os.Stat(cfg.Paths.ImageDir); !os.IsNotExist(err) {
		t.Fatalf("expected image dir to be left alone, stat err=%v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "catalogprep.toml")

	type payload struct {
		Paths struct {
			DataDir      string `toml:"data_dir"`
			FeaturesFile string `toml:"features_file"`
		} `toml:"paths"`
		Normalizer struct {
			Steps          []string `toml:"steps"`
			MinTokenLength int      `toml:"min_token_length"`
		} `toml:"normalizer"`
		Split struct {
			TestRatio float64 `toml:"test_ratio"`
			Seed      uint64  `toml:"seed"`
		} `toml:"split"`
	}
	custom := payload{}
	custom.Paths.DataDir = filepath.Join(tempDir, "dataset")
	custom.Paths.FeaturesFile = "features.csv"
	custom.Normalizer.Steps = []string{" Lowercase ", "strip_digits", "lowercase", ""}
	custom.Normalizer.MinTokenLength = 3
	custom.Split.TestRatio = 0.25
	custom.Split.Seed = 7
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.FeaturesPath() != filepath.Join(tempDir, "dataset", "features.csv") {
		t.Fatalf("expected features file under data dir, got %q", cfg.FeaturesPath())
	}
	if got := strings.Join(cfg.Normalizer.Steps, ","); got != "lowercase,strip_digits" {
		t.Fatalf("expected deduplicated steps, got %q", got)
	}
	if cfg.Normalizer.MinTokenLength != 3 {
		t.Fatalf("expected min token length 3, got %d", cfg.Normalizer.MinTokenLength)
	}
	if cfg.Split.TestRatio != 0.25 || cfg.Split.Seed != 7 {
		t.Fatalf("unexpected split: %+v", cfg.Split)
	}
	if cfg.Figures.Style != config.FigureStyleCloud {
		t.Fatalf("expected word clouds by default, got %q", cfg.Figures.Style)
	}
}

func TestEnvVarOverridesDataDir(t *testing.T) {
	envDir := t.TempDir()
	t.Setenv("CATALOGPREP_DATA_DIR", envDir)

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.DataDir != envDir {
		t.Fatalf("expected data dir from env, got %q", cfg.Paths.DataDir)
	}
	if cfg.FeaturesPath() != filepath.Join(envDir, "X_train.csv") {
		t.Fatalf("expected features under env data dir, got %q", cfg.FeaturesPath())
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "catalogprep.toml")
	if err := os.WriteFile(configPath, []byte("[split]\nratio = 0.3\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "strip_markup") {
		t.Fatalf("sample config missing default steps: %s", contents)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if cfg.Split.Seed != 66 {
		t.Fatalf("expected sample seed 66, got %d", cfg.Split.Seed)
	}
	if len(cfg.Normalizer.Steps) != len(config.DefaultSteps) {
		t.Fatalf("expected sample to list default steps, got %v", cfg.Normalizer.Steps)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"zero ratio", func(c *config.Config) { c.Split.TestRatio = 0 }},
		{"ratio of one", func(c *config.Config) { c.Split.TestRatio = 1 }},
		{"negative token length", func(c *config.Config) { c.Normalizer.MinTokenLength = -1 }},
		{"no steps", func(c *config.Config) { c.Normalizer.Steps = nil }},
		{"bad image size", func(c *config.Config) { c.Images.Width = 0 }},
		{"bad image mode", func(c *config.Config) { c.Images.Mode = "RGBA" }},
		{"bad image format", func(c *config.Config) { c.Images.Format = "tiff" }},
		{"bad log level", func(c *config.Config) { c.Logging.Level = "verbose" }},
		{"figures without dir", func(c *config.Config) { c.Paths.FiguresDir = "" }},
		{"bad figure style", func(c *config.Config) { c.Figures.Style = "pie" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}

	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}
