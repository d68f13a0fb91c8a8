package figures

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"unicode/utf8"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"

	"catalogprep/internal/config"
	"catalogprep/internal/frequency"
)

const (
	cloudMinFont = 10.0
	cloudMaxFont = 56.0
	// Average glyph advance as a fraction of the font size.
	cloudGlyphWidth = 0.62
	// Spiral growth in points per radian, and angular step in radians.
	cloudSpiralPitch = 1.5
	cloudSpiralStep  = 0.1
	// Share of the canvas left to the words once the title and padding are drawn.
	cloudUsableWidth  = 0.92
	cloudUsableHeight = 0.82
)

var cloudPalette = []color.Color{
	color.RGBA{R: 0x1f, G: 0x4e, B: 0x79, A: 0xff},
	color.RGBA{R: 0x2e, G: 0x86, B: 0x8c, A: 0xff},
	color.RGBA{R: 0x54, G: 0xa2, B: 0x4b, A: 0xff},
	color.RGBA{R: 0xd9, G: 0x8c, B: 0x1e, A: 0xff},
	color.RGBA{R: 0xa4, G: 0x30, B: 0x4a, A: 0xff},
	color.RGBA{R: 0x6b, G: 0x4c, B: 0x9a, A: 0xff},
}

// CloudRenderer draws word clouds with gonum/plot. Font size follows the
// token count and words are placed on a spiral from the centre without
// overlapping.
type CloudRenderer struct {
	Width  vg.Length
	Height vg.Length
}

// NewCloudRenderer sizes the renderer from the [figures] section.
func NewCloudRenderer(cfg config.Figures) *CloudRenderer {
	return &CloudRenderer{
		Width:  vg.Length(cfg.WidthInches) * vg.Inch,
		Height: vg.Length(cfg.HeightInches) * vg.Inch,
	}
}

// Render saves chart as a word cloud; the format follows the path extension.
func (r *CloudRenderer) Render(chart Chart, path string) error {
	if len(chart.Terms) == 0 {
		return errors.New("chart has no terms")
	}
	width := r.Width.Points() * cloudUsableWidth
	height := r.Height.Points() * cloudUsableHeight
	placements := Layout(chart.Terms, width, height)
	if len(placements) == 0 {
		return errors.New("no term fits the canvas")
	}

	xys := make(plotter.XYs, len(placements))
	words := make([]string, len(placements))
	for i, pl := range placements {
		xys[i].X = pl.X
		xys[i].Y = pl.Y
		words[i] = pl.Token
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: words})
	if err != nil {
		return fmt.Errorf("build word cloud: %w", err)
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].Font.Size = vg.Points(placements[i].Size)
		labels.TextStyle[i].Color = cloudPalette[i%len(cloudPalette)]
		labels.TextStyle[i].XAlign = text.XCenter
		labels.TextStyle[i].YAlign = text.YCenter
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Nuage de mots pour la classe %s", chart.Label)
	p.HideAxes()
	p.Add(labels)
	p.X.Min, p.X.Max = -width/2, width/2
	p.Y.Min, p.Y.Max = -height/2, height/2

	if err := p.Save(r.Width, r.Height, path); err != nil {
		return fmt.Errorf("save word cloud: %w", err)
	}
	return nil
}

// Placement is one positioned word. X and Y are the centre of the word in
// points from the canvas centre; Size is the font size in points.
type Placement struct {
	Token string
	Size  float64
	X     float64
	Y     float64
}

type box struct {
	minX, minY, maxX, maxY float64
}

func (b box) overlaps(o box) bool {
	return b.minX < o.maxX && o.minX < b.maxX && b.minY < o.maxY && o.minY < b.maxY
}

func (b box) within(width, height float64) bool {
	return b.minX >= -width/2 && b.maxX <= width/2 && b.minY >= -height/2 && b.maxY <= height/2
}

// Layout places terms, heaviest first, on a width x height canvas measured
// in points. Terms that find no free spot are left out. The result depends
// only on its inputs.
func Layout(terms []frequency.TokenCount, width, height float64) []Placement {
	if len(terms) == 0 || width <= 0 || height <= 0 {
		return nil
	}
	lo, hi := terms[0].Count, terms[0].Count
	for _, term := range terms[1:] {
		lo = min(lo, term.Count)
		hi = max(hi, term.Count)
	}
	limit := math.Hypot(width, height) / 2
	aspect := height / width

	placed := make([]Placement, 0, len(terms))
	boxes := make([]box, 0, len(terms))
	for _, term := range terms {
		size := fontSize(term.Count, lo, hi)
		halfW := size * cloudGlyphWidth * float64(utf8.RuneCountInString(term.Token)) / 2
		halfH := size / 2
		for theta := 0.0; cloudSpiralPitch*theta <= limit; theta += cloudSpiralStep {
			radius := cloudSpiralPitch * theta
			x := radius * math.Cos(theta)
			y := radius * math.Sin(theta) * aspect
			candidate := box{minX: x - halfW, minY: y - halfH, maxX: x + halfW, maxY: y + halfH}
			if !candidate.within(width, height) || collides(candidate, boxes) {
				continue
			}
			placed = append(placed, Placement{Token: term.Token, Size: size, X: x, Y: y})
			boxes = append(boxes, candidate)
			break
		}
	}
	return placed
}

func collides(candidate box, boxes []box) bool {
	for _, b := range boxes {
		if candidate.overlaps(b) {
			return true
		}
	}
	return false
}

// fontSize scales count linearly between the smallest and largest font.
func fontSize(count, lo, hi int) float64 {
	if hi == lo {
		return cloudMaxFont
	}
	ratio := float64(count-lo) / float64(hi-lo)
	return cloudMinFont + ratio*(cloudMaxFont-cloudMinFont)
}
