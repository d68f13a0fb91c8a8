package testsupport

import (
	"path/filepath"
	"testing"

	"catalogprep/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Image validation and figures are off unless an option turns them on.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.FeaturesFile = filepath.Join(base, "data", "X_train.csv")
	cfgVal.Paths.LabelsFile = filepath.Join(base, "data", "Y_train.csv")
	cfgVal.Paths.ImageDir = filepath.Join(base, "images")
	cfgVal.Paths.CacheDir = filepath.Join(base, "cache")
	cfgVal.Paths.FiguresDir = filepath.Join(base, "figures")
	cfgVal.Paths.OutputDir = filepath.Join(base, "split")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Cache.ManifestPath = filepath.Join(base, "cache", "manifest.db")
	cfgVal.Images.Validate = false
	cfgVal.Figures.Enabled = false

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return builder.cfg
}

// WithImageValidation enables the image stage against the temp image dir.
func WithImageValidation() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Images.Validate = true
	}
}

// WithFigures enables per-class figure generation.
func WithFigures() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Figures.Enabled = true
	}
}

// WithoutCache disables the artifact cache.
func WithoutCache() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Cache.Enabled = false
	}
}

// WithSteps replaces the enabled normalizer steps.
func WithSteps(steps ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Normalizer.Steps = append([]string(nil), steps...)
	}
}

// WithLanguageDetection toggles the language stage.
func WithLanguageDetection(enabled bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Language.Enabled = enabled
	}
}
