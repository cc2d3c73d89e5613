package chart

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"whd.healthtrends.org/internal/trend"
)

var (
	heatStart   = color.RGBA{R: 219, G: 234, B: 254, A: 255}
	heatEnd     = color.RGBA{R: 30, G: 64, B: 175, A: 255}
	heatMissing = color.RGBA{R: 229, G: 231, B: 235, A: 255}
)

const (
	heatTextLight = "white"
	heatTextDark  = "#111827"
)

// HeatColor interpolates from light to dark blue by the position of v within
// [minVal, maxVal]. Missing values and degenerate ranges are gray.
func HeatColor(v *float64, minVal, maxVal float64) color.RGBA {
	if v == nil || !isFinite(minVal) || !isFinite(maxVal) || minVal == maxVal {
		return heatMissing
	}
	t := (*v - minVal) / (maxVal - minVal)
	return color.RGBA{
		R: channel(heatStart.R, heatEnd.R, t),
		G: channel(heatStart.G, heatEnd.G, t),
		B: channel(heatStart.B, heatEnd.B, t),
		A: 255,
	}
}

// HeatCSS is HeatColor as a CSS colour value.
func HeatCSS(v *float64, minVal, maxVal float64) string {
	c := HeatColor(v, minVal, maxVal)
	if c == heatMissing {
		return "#" + missingHex
	}
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// HeatTextDark reports whether a cell label should be dark. Labels switch to
// white only above 60% of the range.
func HeatTextDark(v *float64, minVal, maxVal float64) bool {
	if v == nil {
		return true
	}
	return !(*v > minVal+(maxVal-minVal)*0.6)
}

func channel(from, to uint8, t float64) uint8 {
	x := math.Floor(float64(from) + (float64(to)-float64(from))*t + 0.5)
	return uint8(math.Max(0, math.Min(255, x)))
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// HeatCell is one year of a heat strip, ready for display.
type HeatCell struct {
	Year       string   `json:"year"`
	Value      *float64 `json:"value"`
	Label      string   `json:"label"`
	Background string   `json:"background"`
	Text       string   `json:"text"`
}

// HeatRow is the strip of one country.
type HeatRow struct {
	Country string     `json:"country"`
	Cells   []HeatCell `json:"cells"`
}

// HeatStrips builds one strip per country, both scaled to the shared value range.
func HeatStrips(spec Spec) []HeatRow {
	minVal, maxVal, _ := trend.ValueRange(spec.Rows)

	strips := []HeatRow{heatRow(spec.CountryA, spec.Rows, valueA, minVal, maxVal)}
	if spec.showB() {
		strips = append(strips, heatRow(spec.CountryB, spec.Rows, valueB, minVal, maxVal))
	}
	return strips
}

func heatRow(country string, rows []trend.AlignedRow, pick func(trend.AlignedRow) *float64, minVal, maxVal float64) HeatRow {
	cells := make([]HeatCell, len(rows))
	for i, r := range rows {
		v := pick(r)
		cell := HeatCell{
			Year:       r.Year,
			Value:      v,
			Label:      "-",
			Background: HeatCSS(v, minVal, maxVal),
			Text:       heatTextDark,
		}
		if v != nil {
			cell.Label = trend.OneDecimal(*v)
		}
		if !HeatTextDark(v, minVal, maxVal) {
			cell.Text = heatTextLight
		}
		cells[i] = cell
	}
	return HeatRow{Country: country, Cells: cells}
}

// heatStripRenderer draws the strips as coloured cells, first country on top.
type heatStripRenderer struct{}

func (heatStripRenderer) Render(w io.Writer, spec Spec) error {
	minVal, maxVal, ok := trend.ValueRange(spec.Rows)
	if !ok {
		return ErrNoData
	}

	p := plot.New()
	p.Title.Text = spec.Title

	strips := HeatStrips(spec)
	names := make([]string, len(strips))
	for j, strip := range strips {
		y := float64(len(strips) - 1 - j)
		names[len(strips)-1-j] = strip.Country

		labels := plotter.XYLabels{}
		for i, cell := range strip.Cells {
			x := float64(i)
			poly, err := plotter.NewPolygon(plotter.XYs{
				{X: x - 0.45, Y: y - 0.4},
				{X: x + 0.45, Y: y - 0.4},
				{X: x + 0.45, Y: y + 0.4},
				{X: x - 0.45, Y: y + 0.4},
			})
			if err != nil {
				return fmt.Errorf("heat cell: %w", err)
			}
			poly.Color = HeatColor(cell.Value, minVal, maxVal)
			poly.LineStyle.Width = 0
			p.Add(poly)

			labels.XYs = append(labels.XYs, plotter.XY{X: x, Y: y})
			labels.Labels = append(labels.Labels, cell.Label)
		}

		l, err := plotter.NewLabels(labels)
		if err != nil {
			return fmt.Errorf("heat labels: %w", err)
		}
		for i, cell := range strip.Cells {
			l.TextStyle[i].Color = drawing.ColorFromHex("111827")
			if cell.Text == heatTextLight {
				l.TextStyle[i].Color = color.White
			}
			l.TextStyle[i].Font.Size = vg.Points(6)
			l.TextStyle[i].XAlign = draw.XCenter
			l.TextStyle[i].YAlign = draw.YCenter
		}
		p.Add(l)
	}

	years := make([]string, len(spec.Rows))
	for i, r := range spec.Rows {
		years[i] = r.Year
	}
	p.NominalX(years...)
	p.NominalY(names...)
	p.X.Tick.Label.Font.Size = vg.Points(7)

	return writePlot(w, p, spec)
}
