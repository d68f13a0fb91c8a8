package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeNormalizer(); err != nil {
		return err
	}
	c.normalizeImages()
	c.normalizeFigures()
	c.normalizeCache()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv("CATALOGPREP_DATA_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.DataDir = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}

	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.FeaturesFile) == "" {
		c.Paths.FeaturesFile = defaultFeaturesFile
	}
	if c.Paths.FeaturesFile, err = resolveUnder(c.Paths.DataDir, c.Paths.FeaturesFile); err != nil {
		return fmt.Errorf("paths.features_file: %w", err)
	}
	if strings.TrimSpace(c.Paths.LabelsFile) == "" {
		c.Paths.LabelsFile = defaultLabelsFile
	}
	if c.Paths.LabelsFile, err = resolveUnder(c.Paths.DataDir, c.Paths.LabelsFile); err != nil {
		return fmt.Errorf("paths.labels_file: %w", err)
	}

	for _, p := range []struct {
		key      string
		value    *string
		fallback string
	}{
		{"paths.image_dir", &c.Paths.ImageDir, defaultImageDir},
		{"paths.cache_dir", &c.Paths.CacheDir, defaultCacheDir},
		{"paths.figures_dir", &c.Paths.FiguresDir, defaultFiguresDir},
		{"paths.output_dir", &c.Paths.OutputDir, defaultOutputDir},
		{"paths.log_dir", &c.Paths.LogDir, defaultLogDir},
	} {
		if strings.TrimSpace(*p.value) == "" {
			*p.value = p.fallback
		}
		if *p.value, err = expandPath(strings.TrimSpace(*p.value)); err != nil {
			return fmt.Errorf("%s: %w", p.key, err)
		}
	}
	return nil
}

func (c *Config) normalizeNormalizer() error {
	steps := make([]string, 0, len(c.Normalizer.Steps))
	seen := make(map[string]struct{}, len(c.Normalizer.Steps))
	for _, step := range c.Normalizer.Steps {
		name := strings.ToLower(strings.TrimSpace(step))
		if name == "" {
			continue
		}
		if _, exists := seen[name]; exists {
			continue
		}
		seen[name] = struct{}{}
		steps = append(steps, name)
	}
	c.Normalizer.Steps = steps

	if c.Normalizer.MinTokenLength == 0 {
		c.Normalizer.MinTokenLength = defaultMinTokenLength
	}
	c.Normalizer.StemLanguage = strings.ToLower(strings.TrimSpace(c.Normalizer.StemLanguage))
	if c.Normalizer.StemLanguage == "" {
		c.Normalizer.StemLanguage = defaultStemLanguage
	}
	if strings.TrimSpace(c.Normalizer.StopwordsFile) != "" {
		var err error
		if c.Normalizer.StopwordsFile, err = expandPath(strings.TrimSpace(c.Normalizer.StopwordsFile)); err != nil {
			return fmt.Errorf("normalizer.stopwords_file: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeImages() {
	c.Images.Mode = strings.ToUpper(strings.TrimSpace(c.Images.Mode))
	if c.Images.Mode == "" {
		c.Images.Mode = defaultImageMode
	}
	c.Images.Format = strings.ToLower(strings.TrimSpace(c.Images.Format))
	switch c.Images.Format {
	case "", "jpg":
		c.Images.Format = defaultImageFormat
	}
}

func (c *Config) normalizeFigures() {
	c.Figures.Style = strings.ToLower(strings.TrimSpace(c.Figures.Style))
	if c.Figures.Style == "" {
		c.Figures.Style = defaultFiguresStyle
	}
	if c.Figures.TopN <= 0 {
		c.Figures.TopN = defaultFiguresTopN
	}
	if c.Figures.WidthInches <= 0 {
		c.Figures.WidthInches = defaultFiguresWidth
	}
	if c.Figures.HeightInches <= 0 {
		c.Figures.HeightInches = defaultFiguresHeight
	}
}

func (c *Config) normalizeCache() {
	c.Cache.ManifestPath = strings.TrimSpace(c.Cache.ManifestPath)
	if c.Cache.ManifestPath == "" {
		c.Cache.ManifestPath = filepath.Join(c.Paths.CacheDir, defaultManifestName)
		return
	}
	if expanded, err := resolveUnder(c.Paths.CacheDir, c.Cache.ManifestPath); err == nil {
		c.Cache.ManifestPath = expanded
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
