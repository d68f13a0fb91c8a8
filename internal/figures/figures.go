package figures

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"catalogprep/internal/config"
	"catalogprep/internal/frequency"
	"catalogprep/internal/logging"
	"catalogprep/internal/textutil"
)

// Chart is the data behind one figure.
type Chart struct {
	Label string
	Terms []frequency.TokenCount
}

// Renderer writes a chart image to path.
type Renderer interface {
	Render(chart Chart, path string) error
}

// NewRenderer returns the renderer selected by figures.style.
func NewRenderer(cfg config.Figures) Renderer {
	if cfg.Style == config.FigureStyleBars {
		return NewBarRenderer(cfg)
	}
	return NewCloudRenderer(cfg)
}

// IsEmpty reports whether dir is missing or has no entries.
func IsEmpty(dir string) (bool, error) {
	f, err := os.Open(dir)
	if errors.Is(err, os.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	defer f.Close()
	_, err = f.Readdirnames(1)
	if errors.Is(err, io.EOF) {
		return true, nil
	}
	return false, err
}

// FileName returns the image file name used for label.
func FileName(label string) string {
	return textutil.SanitizeToken(label) + ".png"
}

// Result summarizes a generation pass.
type Result struct {
	Generated int
	Skipped   bool
	Empty     []string
}

// GenerateIfEmpty renders one chart per label of m into dir, but only when
// dir is empty or missing. Labels without tokens are skipped.
func GenerateIfEmpty(ctx context.Context, dir string, m *frequency.Matrix, topN int, r Renderer, logger *slog.Logger) (Result, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	empty, err := IsEmpty(dir)
	if err != nil {
		return Result{}, fmt.Errorf("inspect figures directory: %w", err)
	}
	if !empty {
		logger.Info("figures directory not empty; skipping rendering",
			logging.String(logging.FieldEventType, "figures_skipped"),
			logging.String("figures_dir", dir),
		)
		return Result{Skipped: true}, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create figures directory: %w", err)
	}

	var result Result
	for _, label := range m.Labels() {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		terms := m.Top(label, topN)
		if len(terms) == 0 {
			result.Empty = append(result.Empty, label)
			logger.Debug("class has no tokens; no figure", logging.String("label", label))
			continue
		}
		path := filepath.Join(dir, FileName(label))
		if err := r.Render(Chart{Label: label, Terms: terms}, path); err != nil {
			return result, fmt.Errorf("render figure for class %s: %w", label, err)
		}
		result.Generated++
	}
	return result, nil
}
