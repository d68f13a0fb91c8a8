package testsupport

import (
	"encoding/csv"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"catalogprep/internal/config"
)

// WriteFile fills the target path with the requested number of bytes using a
// simple repeating pattern. A size <= 0 writes a single byte.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	buf := make([]byte, size)
	for i := range buf {
		buf[i] = 0x42
	}
	writeBytes(t, path, buf)
}

func writeBytes(t testing.TB, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteJPEG writes a w x h colour JPEG. Gray selects a single-channel image.
func WriteJPEG(t testing.TB, path string, w, h int, gray bool) {
	t.Helper()
	var img image.Image
	if gray {
		g := image.NewGray(image.Rect(0, 0, w, h))
		for i := range g.Pix {
			g.Pix[i] = 0x80
		}
		img = g
	} else {
		img = solid(w, h)
	}
	f := create(t, path)
	defer f.Close()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 80}); err != nil {
		t.Fatalf("encode jpeg %s: %v", path, err)
	}
}

// WritePNG writes a w x h opaque PNG.
func WritePNG(t testing.TB, path string, w, h int) {
	t.Helper()
	f := create(t, path)
	defer f.Close()
	if err := png.Encode(f, solid(w, h)); err != nil {
		t.Fatalf("encode png %s: %v", path, err)
	}
}

func solid(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 0x40, A: 0xff})
		}
	}
	return img
}

func create(t testing.TB, path string) *os.File {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	return f
}

// Product is one row of a synthetic dataset.
type Product struct {
	Designation string
	Description string
	ProductID   string
	ImageID     string
	Code        string
}

// WriteDataset writes the features and labels files named by cfg. The row
// index is the position in products.
func WriteDataset(t testing.TB, cfg *config.Config, products []Product) {
	t.Helper()

	features := [][]string{{"", "designation", "description", "productid", "imageid"}}
	labels := [][]string{{"", "prdtypecode"}}
	for i, p := range products {
		idx := strconv.Itoa(i)
		features = append(features, []string{idx, p.Designation, p.Description, p.ProductID, p.ImageID})
		labels = append(labels, []string{idx, p.Code})
	}
	writeCSV(t, cfg.FeaturesPath(), features)
	writeCSV(t, cfg.LabelsPath(), labels)
}

func writeCSV(t testing.TB, path string, rows [][]string) {
	t.Helper()
	f := create(t, path)
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		t.Fatalf("write csv %s: %v", path, err)
	}
}
