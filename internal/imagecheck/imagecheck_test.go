package imagecheck

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"catalogprep/internal/config"
	"catalogprep/internal/logging"
	"catalogprep/internal/testsupport"
)

func defaultExpectation() Expectation {
	return ExpectationFromConfig(config.Default().Images)
}

func TestFileNameAndExists(t *testing.T) {
	dir := t.TempDir()
	name := FileName(" 1263597046", "3804725264 ")
	if name != "image_1263597046_product_3804725264.jpg" {
		t.Fatalf("unexpected file name %q", name)
	}
	if Exists(dir, "1263597046", "3804725264") {
		t.Fatal("expected missing image")
	}
	testsupport.WriteJPEG(t, filepath.Join(dir, name), 8, 8, false)
	if !Exists(dir, "1263597046", "3804725264") {
		t.Fatal("expected image to exist")
	}
}

func TestInspect(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name   string
		write  func(path string)
		mode   string
		format string
	}{
		{"rgb jpeg", func(p string) { testsupport.WriteJPEG(t, p, 500, 500, false) }, "RGB", "jpeg"},
		{"gray jpeg", func(p string) { testsupport.WriteJPEG(t, p, 500, 500, true) }, "L", "jpeg"},
		{"png", func(p string) { testsupport.WritePNG(t, p, 500, 500) }, "RGB", "png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name)
			tt.write(path)
			info, err := Inspect(path)
			if err != nil {
				t.Fatalf("Inspect failed: %v", err)
			}
			if info.Width != 500 || info.Height != 500 {
				t.Fatalf("unexpected size %dx%d", info.Width, info.Height)
			}
			if info.Mode != tt.mode || info.Format != tt.format {
				t.Fatalf("got mode=%s format=%s, want %s/%s", info.Mode, info.Format, tt.mode, tt.format)
			}
		})
	}
}

func TestInspectRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.jpg")
	testsupport.WriteFile(t, path, 64)
	if _, err := Inspect(path); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestCheck(t *testing.T) {
	exp := defaultExpectation()
	tests := []struct {
		name  string
		info  Info
		kinds []string
	}{
		{"matching", Info{Path: "a.jpg", Width: 500, Height: 500, Mode: "RGB", Format: "jpeg"}, nil},
		{"wrong size", Info{Path: "b.jpg", Width: 300, Height: 500, Mode: "RGB", Format: "jpeg"}, []string{IssueSize}},
		{"gray png", Info{Path: "c.jpg", Width: 500, Height: 500, Mode: "L", Format: "png"}, []string{IssueMode, IssueFormat}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := exp.Check(tt.info)
			if len(issues) != len(tt.kinds) {
				t.Fatalf("got %+v, want kinds %v", issues, tt.kinds)
			}
			for i, issue := range issues {
				if issue.Kind != tt.kinds[i] {
					t.Fatalf("issue %d kind %s, want %s", i, issue.Kind, tt.kinds[i])
				}
				if issue.File != tt.info.Path {
					t.Fatalf("issue file %q, want %q", issue.File, tt.info.Path)
				}
			}
		})
	}
}

func TestValidateDir(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteJPEG(t, filepath.Join(dir, "a_ok.jpg"), 500, 500, false)
	testsupport.WriteJPEG(t, filepath.Join(dir, "b_gray.jpg"), 500, 500, true)
	testsupport.WriteJPEG(t, filepath.Join(dir, "c_small.jpg"), 120, 80, false)
	testsupport.WriteFile(t, filepath.Join(dir, "d_broken.jpg"), 32)
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}

	summary, err := ValidateDir(context.Background(), dir, defaultExpectation(), logging.NewNop())
	if err != nil {
		t.Fatalf("ValidateDir failed: %v", err)
	}
	if summary.Checked != 4 {
		t.Fatalf("expected 4 files checked, got %d", summary.Checked)
	}
	if summary.Valid() {
		t.Fatal("expected issues")
	}
	if summary.FilesWithIssues() != 3 {
		t.Fatalf("expected 3 files with issues, got %d (%+v)", summary.FilesWithIssues(), summary.Issues)
	}
	kinds := map[string]string{}
	for _, issue := range summary.Issues {
		kinds[issue.File] = issue.Kind
	}
	if kinds["b_gray.jpg"] != IssueMode || kinds["c_small.jpg"] != IssueSize || kinds["d_broken.jpg"] != IssueUnreadable {
		t.Fatalf("unexpected issue kinds: %v", kinds)
	}
}

func TestValidateDirErrors(t *testing.T) {
	if _, err := ValidateDir(context.Background(), filepath.Join(t.TempDir(), "missing"), defaultExpectation(), nil); err == nil {
		t.Fatal("expected error for missing directory")
	}

	dir := t.TempDir()
	testsupport.WriteJPEG(t, filepath.Join(dir, "a.jpg"), 10, 10, false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ValidateDir(ctx, dir, defaultExpectation(), nil); err == nil {
		t.Fatal("expected context error")
	}
}
