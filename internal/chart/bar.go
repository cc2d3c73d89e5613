package chart

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"whd.healthtrends.org/internal/trend"
)

// barRenderer draws grouped bars, one group per year.
type barRenderer struct{}

func (barRenderer) Render(w io.Writer, spec Spec) error {
	if _, _, ok := trend.ValueRange(spec.Rows); !ok {
		return ErrNoData
	}

	p := plot.New()
	p.Title.Text = spec.Title
	p.Y.Label.Text = "Value"
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	barWidth := vg.Points(8)
	barsA, err := newBars(spec.Rows, valueA, colorA, barWidth)
	if err != nil {
		return err
	}
	p.Add(barsA)
	p.Legend.Add(spec.CountryA, barsA)

	if spec.showB() {
		barsB, err := newBars(spec.Rows, valueB, colorB, barWidth)
		if err != nil {
			return err
		}
		barsA.Offset = -barWidth / 2
		barsB.Offset = barWidth / 2
		p.Add(barsB)
		p.Legend.Add(spec.CountryB, barsB)
	}

	years := make([]string, len(spec.Rows))
	for i, r := range spec.Rows {
		years[i] = r.Year
	}
	p.NominalX(years...)
	p.X.Tick.Label.Font.Size = vg.Points(7)

	return writePlot(w, p, spec)
}

// newBars builds one country's bars. Years without a value become zero-height bars
// so both groups stay aligned.
func newBars(rows []trend.AlignedRow, pick func(trend.AlignedRow) *float64, hex string, width vg.Length) (*plotter.BarChart, error) {
	values := make(plotter.Values, len(rows))
	for i, r := range rows {
		if v := pick(r); v != nil {
			values[i] = *v
		}
	}

	bars, err := plotter.NewBarChart(values, width)
	if err != nil {
		return nil, fmt.Errorf("bar chart: %w", err)
	}
	bars.Color = drawing.ColorFromHex(hex)
	bars.LineStyle.Width = vg.Length(0)
	return bars, nil
}

// writePlot encodes p as PNG at the requested size, treating the size as pixels at 96 dpi.
func writePlot(w io.Writer, p *plot.Plot, spec Spec) error {
	width, height := spec.size()
	wt, err := p.WriterTo(vg.Points(float64(width)*0.75), vg.Points(float64(height)*0.75), "png")
	if err != nil {
		return fmt.Errorf("encode plot: %w", err)
	}
	_, err = wt.WriteTo(w)
	return err
}
