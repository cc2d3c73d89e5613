// Package chart draws the dashboard views of an aligned two-country series as
// PNG images. Each Kind has its own Renderer.
package chart

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"whd.healthtrends.org/internal/trend"
)

var (
	ErrNoData      = errors.New("chart: no data to draw")
	ErrUnknownKind = errors.New("chart: unknown chart kind")
)

// Kind selects how a series is drawn.
type Kind int

const (
	Line Kind = iota
	Bar
	Area
	HeatStrip
)

func (k Kind) String() string {
	switch k {
	case Line:
		return "line"
	case Bar:
		return "bar"
	case Area:
		return "area"
	case HeatStrip:
		return "heatmap"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind accepts the names used by the dashboard. An empty name is Line.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "line":
		return Line, nil
	case "bar":
		return Bar, nil
	case "area":
		return Area, nil
	case "heatmap", "heatstrip", "heat":
		return HeatStrip, nil
	}
	return Line, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Spec is what a renderer draws: the aligned rows of up to two countries.
type Spec struct {
	Title    string
	CountryA string
	CountryB string
	Rows     []trend.AlignedRow
	Width    int
	Height   int
}

const (
	defaultWidth  = 960
	defaultHeight = 360
)

func (s Spec) size() (int, int) {
	w, h := s.Width, s.Height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}

// showB reports whether the second country has anything to draw.
func (s Spec) showB() bool {
	if s.CountryB == "" {
		return false
	}
	for _, r := range s.Rows {
		if r.ValueB != nil {
			return true
		}
	}
	return false
}

// Renderer writes one chart image to w.
type Renderer interface {
	Render(w io.Writer, spec Spec) error
}

// New returns the renderer for kind.
func New(kind Kind) (Renderer, error) {
	switch kind {
	case Line:
		return lineRenderer{}, nil
	case Area:
		return lineRenderer{fill: true}, nil
	case Bar:
		return barRenderer{}, nil
	case HeatStrip:
		return heatStripRenderer{}, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
}

// Render is a shortcut for New(kind) followed by Render.
func Render(w io.Writer, kind Kind, spec Spec) error {
	r, err := New(kind)
	if err != nil {
		return err
	}
	return r.Render(w, spec)
}

// Series colours used by the dashboard.
const (
	colorA     = "1b4965"
	colorB     = "e11d48"
	fillA      = "93c5fd"
	fillB      = "fecaca"
	fillAlpha  = 153
	missingHex = "e5e7eb"
)
