package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHashFileStable(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.csv")
	b := filepath.Join(dir, "b.csv")
	if err := os.WriteFile(a, []byte("id,text\n1,chat\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, []byte("id,text\n1,chat\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ha, err := HashFile(a)
	if err != nil {
		t.Fatal(err)
	}
	hb, err := HashFile(b)
	if err != nil {
		t.Fatal(err)
	}
	if ha != hb {
		t.Fatalf("identical contents hashed differently: %s vs %s", ha, hb)
	}
	if len(ha) != 64 {
		t.Fatalf("expected hex sha256, got %q", ha)
	}

	if err := os.WriteFile(b, []byte("id,text\n1,chien\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	hb, err = HashFile(b)
	if err != nil {
		t.Fatal(err)
	}
	if ha == hb {
		t.Fatal("expected hash to change with contents")
	}
}

func TestHashFilesOrderSensitive(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	if err := os.WriteFile(a, []byte("one"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, []byte("two"), 0o644); err != nil {
		t.Fatal(err)
	}
	ab, err := HashFiles(a, b)
	if err != nil {
		t.Fatal(err)
	}
	ba, err := HashFiles(b, a)
	if err != nil {
		t.Fatal(err)
	}
	if ab == ba {
		t.Fatal("expected order to affect combined hash")
	}
}

func TestHashFileMissing(t *testing.T) {
	if _, err := HashFile(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "nested", "out.csv")

	if err := WriteFileAtomic(target, []byte("first"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := WriteFileAtomic(target, []byte("second"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "second" {
		t.Fatalf("content mismatch: got %q", got)
	}

	entries, err := os.ReadDir(filepath.Dir(target))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected temp files to be cleaned up, found %d entries", len(entries))
	}
}
