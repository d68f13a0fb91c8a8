package imagecheck

import (
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "golang.org/x/image/webp"

	"catalogprep/internal/config"
	"catalogprep/internal/logging"
)

// FileName returns the image file name for a product.
func FileName(imageID, productID string) string {
	return fmt.Sprintf("image_%s_product_%s.jpg", strings.TrimSpace(imageID), strings.TrimSpace(productID))
}

// Exists reports whether the image file for a product is present.
func Exists(dir, imageID, productID string) bool {
	info, err := os.Stat(filepath.Join(dir, FileName(imageID, productID)))
	return err == nil && info.Mode().IsRegular()
}

// Info describes a decoded image header.
type Info struct {
	Path   string
	Width  int
	Height int
	Mode   string
	Format string
}

// Inspect decodes the header of the image at path.
func Inspect(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()
	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return Info{}, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return Info{
		Path:   path,
		Width:  cfg.Width,
		Height: cfg.Height,
		Mode:   modeOf(cfg.ColorModel),
		Format: format,
	}, nil
}

// modeOf names a color model the way imaging tools usually label modes.
func modeOf(model color.Model) string {
	if _, ok := model.(color.Palette); ok {
		return "P"
	}
	switch model {
	case color.YCbCrModel, color.RGBAModel, color.RGBA64Model:
		return "RGB"
	case color.NRGBAModel, color.NRGBA64Model, color.NYCbCrAModel, color.AlphaModel, color.Alpha16Model:
		return "RGBA"
	case color.GrayModel, color.Gray16Model:
		return "L"
	case color.CMYKModel:
		return "CMYK"
	}
	return "unknown"
}

// Expectation is the required image shape.
type Expectation struct {
	Width  int
	Height int
	Mode   string
	Format string
}

// ExpectationFromConfig builds the expectation from the [images] section.
func ExpectationFromConfig(cfg config.Images) Expectation {
	return Expectation{Width: cfg.Width, Height: cfg.Height, Mode: cfg.Mode, Format: cfg.Format}
}

// Issue kinds.
const (
	IssueMode       = "mode"
	IssueSize       = "size"
	IssueFormat     = "format"
	IssueUnreadable = "unreadable"
)

// Issue is one problem found on one file.
type Issue struct {
	File   string
	Kind   string
	Detail string
}

// Check compares info against the expectation.
func (e Expectation) Check(info Info) []Issue {
	name := filepath.Base(info.Path)
	var issues []Issue
	if e.Mode != "" && info.Mode != e.Mode {
		issues = append(issues, Issue{File: name, Kind: IssueMode, Detail: fmt.Sprintf("mode %s, want %s", info.Mode, e.Mode)})
	}
	if (e.Width > 0 && info.Width != e.Width) || (e.Height > 0 && info.Height != e.Height) {
		issues = append(issues, Issue{File: name, Kind: IssueSize, Detail: fmt.Sprintf("size %dx%d, want %dx%d", info.Width, info.Height, e.Width, e.Height)})
	}
	if e.Format != "" && !strings.EqualFold(info.Format, e.Format) {
		issues = append(issues, Issue{File: name, Kind: IssueFormat, Detail: fmt.Sprintf("format %s, want %s", info.Format, e.Format)})
	}
	return issues
}

// Summary is the result of a directory validation.
type Summary struct {
	Checked int
	Issues  []Issue
}

// Valid reports whether no issue was found.
func (s Summary) Valid() bool { return len(s.Issues) == 0 }

// FilesWithIssues counts distinct files carrying at least one issue.
func (s Summary) FilesWithIssues() int {
	seen := make(map[string]struct{}, len(s.Issues))
	for _, issue := range s.Issues {
		seen[issue.File] = struct{}{}
	}
	return len(seen)
}

// ValidateDir inspects every regular file in dir in name order. Each problem
// is logged as a warning and processing continues. Only an unreadable
// directory or a cancelled context returns an error.
func ValidateDir(ctx context.Context, dir string, exp Expectation, logger *slog.Logger) (Summary, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Summary{}, fmt.Errorf("read image directory: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	var summary Summary
	for i, name := range names {
		if i%512 == 0 {
			if err := ctx.Err(); err != nil {
				return summary, err
			}
		}
		summary.Checked++
		info, err := Inspect(filepath.Join(dir, name))
		if err != nil {
			issue := Issue{File: name, Kind: IssueUnreadable, Detail: err.Error()}
			summary.Issues = append(summary.Issues, issue)
			logging.WarnWithContext(logger, "image unreadable", "image_unreadable",
				logging.String("file", name),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "re-download or remove the file"),
				logging.String(logging.FieldImpact, "image skipped"),
			)
			continue
		}
		for _, issue := range exp.Check(info) {
			summary.Issues = append(summary.Issues, issue)
			logging.WarnWithContext(logger, "image does not match expectation", "image_"+issue.Kind+"_mismatch",
				logging.String("file", name),
				logging.String("detail", issue.Detail),
				logging.String(logging.FieldErrorHint, "convert the image before training"),
				logging.String(logging.FieldImpact, "image kept as is"),
			)
		}
	}
	return summary, nil
}
