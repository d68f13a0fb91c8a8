package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateNormalizer(); err != nil {
		return err
	}
	if err := c.validateImages(); err != nil {
		return err
	}
	if err := c.validateFigures(); err != nil {
		return err
	}
	if err := c.validateSplit(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	for key, value := range map[string]string{
		"paths.features_file": c.Paths.FeaturesFile,
		"paths.labels_file":   c.Paths.LabelsFile,
		"paths.cache_dir":     c.Paths.CacheDir,
		"paths.output_dir":    c.Paths.OutputDir,
	} {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s must be set", key)
		}
	}
	if c.Figures.Enabled && strings.TrimSpace(c.Paths.FiguresDir) == "" {
		return errors.New("paths.figures_dir must be set when figures.enabled is true")
	}
	if c.Images.Validate && strings.TrimSpace(c.Paths.ImageDir) == "" {
		return errors.New("paths.image_dir must be set when images.validate is true")
	}
	return nil
}

func (c *Config) validateNormalizer() error {
	if c.Normalizer.MinTokenLength < 1 {
		return errors.New("normalizer.min_token_length must be positive")
	}
	if len(c.Normalizer.Steps) == 0 {
		return errors.New("normalizer.steps must enable at least one step")
	}
	return nil
}

func (c *Config) validateImages() error {
	if !c.Images.Validate {
		return nil
	}
	if c.Images.Width <= 0 || c.Images.Height <= 0 {
		return errors.New("images.width and images.height must be positive")
	}
	switch c.Images.Mode {
	case "RGB", "L", "CMYK":
	default:
		return fmt.Errorf("images.mode: unsupported value %q (want RGB, L or CMYK)", c.Images.Mode)
	}
	switch c.Images.Format {
	case "jpeg", "png", "gif", "webp":
	default:
		return fmt.Errorf("images.format: unsupported value %q (want jpeg, png, gif or webp)", c.Images.Format)
	}
	return nil
}

func (c *Config) validateFigures() error {
	switch c.Figures.Style {
	case FigureStyleCloud, FigureStyleBars:
		return nil
	default:
		return fmt.Errorf("figures.style: unsupported value %q (want cloud or bars)", c.Figures.Style)
	}
}

func (c *Config) validateSplit() error {
	if c.Split.TestRatio <= 0 || c.Split.TestRatio >= 1 {
		return errors.New("split.test_ratio must be between 0 and 1 (exclusive)")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}
