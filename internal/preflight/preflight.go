package preflight

import (
	"context"
	"strings"

	"catalogprep/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
// Checks are only run when the corresponding feature is enabled.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckFileReadable("Features file", cfg.FeaturesPath()),
		CheckFileReadable("Labels file", cfg.LabelsPath()),
		CheckNormalizer(cfg.Normalizer),
		CheckDirectoryAccess("Cache directory", cfg.Paths.CacheDir),
		CheckDirectoryAccess("Output directory", cfg.Paths.OutputDir),
	}

	if cfg.Images.Validate {
		results = append(results, CheckDirectoryReadable("Image directory", cfg.Paths.ImageDir))
	}
	if cfg.Figures.Enabled {
		results = append(results, CheckDirectoryAccess("Figures directory", cfg.Paths.FiguresDir))
	}
	if path := strings.TrimSpace(cfg.Normalizer.StopwordsFile); path != "" {
		results = append(results, CheckFileReadable("Stopwords file", path))
	}
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
