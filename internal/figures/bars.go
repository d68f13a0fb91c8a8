package figures

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"catalogprep/internal/config"
)

// BarRenderer draws bar charts of the top tokens with gonum/plot.
type BarRenderer struct {
	Width  vg.Length
	Height vg.Length
}

// NewBarRenderer sizes the renderer from the [figures] section.
func NewBarRenderer(cfg config.Figures) *BarRenderer {
	return &BarRenderer{
		Width:  vg.Length(cfg.WidthInches) * vg.Inch,
		Height: vg.Length(cfg.HeightInches) * vg.Inch,
	}
}

// Render saves chart as an image; the format follows the path extension.
func (r *BarRenderer) Render(chart Chart, path string) error {
	if len(chart.Terms) == 0 {
		return errors.New("chart has no terms")
	}
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Mots les plus fréquents pour la classe %s", chart.Label)
	p.Y.Label.Text = "occurrences"

	values := make(plotter.Values, len(chart.Terms))
	names := make([]string, len(chart.Terms))
	for i, term := range chart.Terms {
		values[i] = float64(term.Count)
		names[i] = term.Token
	}
	bars, err := plotter.NewBarChart(values, vg.Points(12))
	if err != nil {
		return fmt.Errorf("build bar chart: %w", err)
	}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(names...)
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.Y.Min = 0

	if err := p.Save(r.Width, r.Height, path); err != nil {
		return fmt.Errorf("save chart: %w", err)
	}
	return nil
}
