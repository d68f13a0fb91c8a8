package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains input, cache, and output locations.
type Paths struct {
	DataDir      string `toml:"data_dir"`
	FeaturesFile string `toml:"features_file"`
	LabelsFile   string `toml:"labels_file"`
	ImageDir     string `toml:"image_dir"`
	CacheDir     string `toml:"cache_dir"`
	FiguresDir   string `toml:"figures_dir"`
	OutputDir    string `toml:"output_dir"`
	LogDir       string `toml:"log_dir"`
}

// Normalizer contains configuration for the text cleaning pipeline.
type Normalizer struct {
	// Steps lists the enabled rewrite steps by name. Order is fixed by the
	// pipeline; listing a step here only switches it on.
	Steps []string `toml:"steps"`
	// MinTokenLength drops tokens shorter than this many characters. Default: 4
	MinTokenLength int `toml:"min_token_length"`
	// StopwordsFile optionally points at a newline separated list merged into
	// the built-in stopword set.
	StopwordsFile string `toml:"stopwords_file"`
	// StemLanguage is the snowball language used when the stem step is enabled.
	StemLanguage string `toml:"stem_language"`
}

// Language contains configuration for the language report.
type Language struct {
	Enabled bool `toml:"enabled"`
}

// Images contains the expectations checked against every training image.
type Images struct {
	Validate bool   `toml:"validate"`
	Width    int    `toml:"width"`
	Height   int    `toml:"height"`
	Mode     string `toml:"mode"`
	Format   string `toml:"format"`
}

// Figures contains configuration for per-class frequency figures.
type Figures struct {
	Enabled      bool    `toml:"enabled"`
	Style        string  `toml:"style"`
	TopN         int     `toml:"top_n"`
	WidthInches  float64 `toml:"width_inches"`
	HeightInches float64 `toml:"height_inches"`
}

// Figure styles.
const (
	FigureStyleCloud = "cloud"
	FigureStyleBars  = "bars"
)

// Split contains configuration for the train/test partitioning.
type Split struct {
	TestRatio float64 `toml:"test_ratio"`
	Seed      uint64  `toml:"seed"`
}

// Cache contains configuration for the artifact cache.
type Cache struct {
	Enabled      bool   `toml:"enabled"`
	ManifestPath string `toml:"manifest_path"` // Default: <cache_dir>/manifest.db
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for catalogprep.
//
// Configuration sections by subsystem:
//   - Paths: dataset inputs, image directory, cache, figures and split outputs
//   - Normalizer: enabled cleaning steps and token filters
//   - Language: language distribution report
//   - Images: expected image mode, size and format
//   - Figures: per-class chart rendering
//   - Split: test ratio and random seed
//   - Cache: artifact cache manifest
//   - Logging: log format and level
type Config struct {
	Paths      Paths      `toml:"paths"`
	Normalizer Normalizer `toml:"normalizer"`
	Language   Language   `toml:"language"`
	Images     Images     `toml:"images"`
	Figures    Figures    `toml:"figures"`
	Split      Split      `toml:"split"`
	Cache      Cache      `toml:"cache"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/catalogprep/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("catalogprep.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories a pipeline run writes into.
// Input locations (data and image directories) are never created.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.CacheDir, c.Paths.OutputDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if c.Figures.Enabled && strings.TrimSpace(c.Paths.FiguresDir) != "" {
		if err := os.MkdirAll(c.Paths.FiguresDir, 0o755); err != nil {
			return fmt.Errorf("create figures directory %q: %w", c.Paths.FiguresDir, err)
		}
	}
	return nil
}

// FeaturesPath returns the absolute path of the features table.
func (c *Config) FeaturesPath() string {
	return c.Paths.FeaturesFile
}

// LabelsPath returns the absolute path of the labels table.
func (c *Config) LabelsPath() string {
	return c.Paths.LabelsFile
}

// LockPath returns the file used to serialize pipeline runs.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.CacheDir, "catalogprep.lock")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// resolveUnder expands value, joining it onto base first when it is relative
// and does not start with a tilde.
func resolveUnder(base, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	if !filepath.IsAbs(value) && !strings.HasPrefix(value, "~") && base != "" {
		value = filepath.Join(base, value)
	}
	return expandPath(value)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
