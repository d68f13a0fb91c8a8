package preflight

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"catalogprep/internal/config"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if !strings.Contains(result.Detail, "does not exist") {
		t.Fatalf("unexpected detail: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckFileReadable(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "X_train.csv")
	if err := os.WriteFile(f, []byte(",designation\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if r := CheckFileReadable("features", f); !r.Passed {
		t.Fatalf("expected pass, got %s", r.Detail)
	}
	if r := CheckFileReadable("features", dir); r.Passed {
		t.Fatal("expected directory to fail file check")
	}
	if r := CheckFileReadable("features", filepath.Join(dir, "missing.csv")); r.Passed {
		t.Fatal("expected missing file to fail")
	}
}

func TestCheckNormalizer(t *testing.T) {
	cfg := config.Default()
	if r := CheckNormalizer(cfg.Normalizer); !r.Passed {
		t.Fatalf("default normalizer should pass: %s", r.Detail)
	}
	cfg.Normalizer.Steps = []string{"lowercase", "translate"}
	if r := CheckNormalizer(cfg.Normalizer); r.Passed {
		t.Fatal("expected translate step to fail")
	}
	cfg.Normalizer.Steps = []string{"shout"}
	if r := CheckNormalizer(cfg.Normalizer); r.Passed {
		t.Fatal("expected unknown step to fail")
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	if results := RunAll(context.Background(), nil); results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func minimalConfig(t *testing.T) *config.Config {
	t.Helper()
	dataDir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.FeaturesFile = filepath.Join(dataDir, "X_train.csv")
	cfg.Paths.LabelsFile = filepath.Join(dataDir, "Y_train.csv")
	cfg.Paths.CacheDir = t.TempDir()
	cfg.Paths.OutputDir = t.TempDir()
	cfg.Images.Validate = false
	cfg.Figures.Enabled = false
	for _, path := range []string{cfg.Paths.FeaturesFile, cfg.Paths.LabelsFile} {
		if err := os.WriteFile(path, []byte("header\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return &cfg
}

func TestRunAll_MinimalConfig(t *testing.T) {
	cfg := minimalConfig(t)

	results := RunAll(context.Background(), cfg)
	// features + labels + normalizer + cache + output
	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %d", len(results))
	}
	if failed := Failed(results); len(failed) != 0 {
		t.Fatalf("unexpected failures: %+v", failed)
	}
}

func TestRunAll_IncludesOptionalChecks(t *testing.T) {
	cfg := minimalConfig(t)
	cfg.Images.Validate = true
	cfg.Paths.ImageDir = filepath.Join(t.TempDir(), "missing")
	cfg.Figures.Enabled = true
	cfg.Paths.FiguresDir = t.TempDir()
	cfg.Normalizer.StopwordsFile = filepath.Join(t.TempDir(), "extra.txt")

	results := RunAll(context.Background(), cfg)
	names := make(map[string]Result, len(results))
	for _, r := range results {
		names[r.Name] = r
	}
	for _, want := range []string{"Image directory", "Figures directory", "Stopwords file"} {
		if _, ok := names[want]; !ok {
			t.Fatalf("expected %q check in %+v", want, results)
		}
	}
	failed := Failed(results)
	if len(failed) != 2 {
		t.Fatalf("expected image dir and stopwords file to fail, got %+v", failed)
	}
}

func TestRunAll_MissingDataset(t *testing.T) {
	cfg := minimalConfig(t)
	if err := os.Remove(cfg.Paths.LabelsFile); err != nil {
		t.Fatal(err)
	}
	failed := Failed(RunAll(context.Background(), cfg))
	if len(failed) != 1 || failed[0].Name != "Labels file" {
		t.Fatalf("expected labels failure, got %+v", failed)
	}
}
