package chart

import (
	"io"
	"math"
	"strconv"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"whd.healthtrends.org/internal/trend"
)

// lineRenderer draws one line per country. With fill set the area under each
// line is shaded, which is the Area view.
type lineRenderer struct {
	fill bool
}

func (r lineRenderer) Render(w io.Writer, spec Spec) error {
	minVal, maxVal, ok := trend.ValueRange(spec.Rows)
	if !ok {
		return ErrNoData
	}

	series := []gochart.Series{r.series(spec.CountryA, spec.Rows, valueA, colorA, fillA, false)}
	if spec.showB() {
		series = append(series, r.series(spec.CountryB, spec.Rows, valueB, colorB, fillB, !r.fill))
	}

	if r.fill {
		minVal = math.Min(minVal, 0)
	}
	firstYear, lastYear := yearBounds(spec.Rows)

	width, height := spec.size()
	graph := gochart.Chart{
		Title:  spec.Title,
		Width:  width,
		Height: height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: gochart.XAxis{
			Name:           "Year",
			Range:          padRange(firstYear, lastYear),
			ValueFormatter: yearFormatter,
		},
		YAxis: gochart.YAxis{
			Range: padRange(minVal, maxVal),
		},
		Series: series,
	}
	graph.Elements = []gochart.Renderable{gochart.Legend(&graph)}

	return graph.Render(gochart.PNG, w)
}

func (r lineRenderer) series(name string, rows []trend.AlignedRow, pick func(trend.AlignedRow) *float64, stroke, fill string, dashed bool) gochart.ContinuousSeries {
	s := gochart.ContinuousSeries{
		Name: name,
		Style: gochart.Style{
			StrokeColor: drawing.ColorFromHex(stroke),
			StrokeWidth: 2,
			DotColor:    drawing.ColorFromHex(stroke),
			DotWidth:    2.5,
		},
	}
	if dashed {
		s.Style.StrokeDashArray = []float64{4, 4}
		s.Style.DotWidth = 0
	}
	if r.fill {
		s.Style.FillColor = drawing.ColorFromHex(fill).WithAlpha(fillAlpha)
	}

	// Missing years are skipped so the line connects across gaps.
	for _, row := range rows {
		v := pick(row)
		if v == nil {
			continue
		}
		year, err := strconv.Atoi(row.Year)
		if err != nil {
			continue
		}
		s.XValues = append(s.XValues, float64(year))
		s.YValues = append(s.YValues, *v)
	}
	return s
}

func valueA(r trend.AlignedRow) *float64 { return r.ValueA }
func valueB(r trend.AlignedRow) *float64 { return r.ValueB }

func yearBounds(rows []trend.AlignedRow) (float64, float64) {
	first, last := math.Inf(1), math.Inf(-1)
	for _, r := range rows {
		year, err := strconv.Atoi(r.Year)
		if err != nil {
			continue
		}
		first = math.Min(first, float64(year))
		last = math.Max(last, float64(year))
	}
	if math.IsInf(first, 1) {
		return trend.FirstYear, trend.LastYear
	}
	return first, last
}

// padRange widens a degenerate range; go-chart refuses to draw a zero-width axis.
func padRange(lo, hi float64) *gochart.ContinuousRange {
	if hi-lo < 1e-9 {
		lo, hi = lo-1, hi+1
	}
	return &gochart.ContinuousRange{Min: lo, Max: hi}
}

func yearFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return strconv.Itoa(int(math.Round(f)))
	}
	return ""
}
