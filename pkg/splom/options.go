package splom

import (
	"strings"

	"github.com/pkg/errors"
)

// Diagonal selects what the tiles on the main diagonal show.
type Diagonal int

const (
	DiagScatter Diagonal = iota
	DiagHistogram
	DiagBox
)

var diagNames = map[Diagonal]string{
	DiagScatter:   "scatter",
	DiagHistogram: "histogram",
	DiagBox:       "box",
}

func (d Diagonal) String() string { return diagNames[d] }

// Set implements flag.Value.
func (d *Diagonal) Set(s string) error {
	v, err := ParseDiagonal(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// ParseDiagonal accepts scatter, histogram or box. The empty string is scatter.
func ParseDiagonal(s string) (Diagonal, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DiagScatter, nil
	}
	for d, name := range diagNames {
		if name == s {
			return d, nil
		}
	}
	return DiagScatter, errors.Errorf("diagonal must be one of scatter, histogram, box; got %q", s)
}

const (
	DefaultTitle  = "Scatterplot Matrix"
	DefaultWidth  = 800
	DefaultHeight = 800
	DefaultBins   = 10
	DefaultRadius = 2.5
)

type Options struct {
	Title string
	// Width and Height are in CSS pixels.
	Width  int
	Height int

	Diagonal Diagonal
	// Group names a column whose values colour the points. It is not plotted.
	Group string
	Bins  int
	// Radius of a scatter marker in points.
	Radius float64
}

func DefaultOptions() Options {
	return Options{
		Title:  DefaultTitle,
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Bins:   DefaultBins,
		Radius: DefaultRadius,
	}
}

func (o Options) validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return errors.Errorf("figure size must be positive, got %dx%d", o.Width, o.Height)
	}
	if o.Bins <= 0 {
		return errors.Errorf("histogram bins must be positive, got %d", o.Bins)
	}
	if o.Radius <= 0 {
		return errors.Errorf("marker radius must be positive, got %g", o.Radius)
	}
	if _, ok := diagNames[o.Diagonal]; !ok {
		return errors.Errorf("unknown diagonal %d", int(o.Diagonal))
	}
	return nil
}
