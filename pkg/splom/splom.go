// Package splom builds scatterplot matrices with gonum/plot.
//
// An N-column table gives an N×N grid of tiles. Tile (i, j) plots column j on
// the X axis against column i on the Y axis. Tiles on the main diagonal are
// drawn according to Options.Diagonal.
package splom

import (
	"image/color"
	"io"
	"math"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgsvg"

	"scatter-go/pkg/table"
)

var ErrNoColumns = errors.New("no columns to plot")

type Figure struct {
	Title   string
	Columns []string
	// Groups holds the distinct group values in first-seen order, or nil.
	Groups []string
	Width  int
	Height int

	tiles [][]*plot.Plot
}

type series struct {
	name   string
	colour color.Color
	rows   []int
}

// New builds the figure for every column of t except the group column.
// Text columns are drawn on category axes, one tick per distinct value.
func New(t *table.Table, opts Options) (*Figure, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	var columns []string
	for _, name := range t.Names() {
		if name != opts.Group {
			columns = append(columns, name)
		}
	}
	if len(columns) == 0 {
		return nil, ErrNoColumns
	}

	data := make([][]float64, len(columns))
	categories := make([][]string, len(columns))
	for i, name := range columns {
		vs, cats, err := t.Categorical(name)
		if err != nil {
			return nil, err
		}
		data[i], categories[i] = vs, cats
	}

	groups, err := groupRows(t, opts.Group)
	if err != nil {
		return nil, err
	}

	fig := &Figure{
		Title:   opts.Title,
		Columns: columns,
		Width:   opts.Width,
		Height:  opts.Height,
	}
	if opts.Group != "" {
		for _, g := range groups {
			fig.Groups = append(fig.Groups, g.name)
		}
	}

	n := len(columns)
	fig.tiles = make([][]*plot.Plot, n)
	for i := 0; i < n; i++ {
		fig.tiles[i] = make([]*plot.Plot, n)
		for j := 0; j < n; j++ {
			p := plot.New()
			if i == j {
				err = diagonalTile(p, data[i], columns[i], categories[i], groups, opts)
			} else {
				err = scatterTile(p, data[j], data[i], groups, opts.Radius)
			}
			if err != nil {
				return nil, errors.Wrapf(err, "tile %s/%s", columns[i], columns[j])
			}

			if categories[j] != nil && !(i == j && opts.Diagonal == DiagBox) {
				categoryAxis(&p.X, categories[j])
			}
			if categories[i] != nil && !(i == j && opts.Diagonal == DiagHistogram) {
				categoryAxis(&p.Y, categories[i])
			}

			unitRange(&p.X)
			unitRange(&p.Y)

			if i == n-1 {
				p.X.Label.Text = columns[j]
			}
			if j == 0 {
				p.Y.Label.Text = columns[i]
			}
			fig.tiles[i][j] = p
		}
	}

	if opts.Group != "" {
		legend := fig.tiles[0][n-1]
		legend.Legend.Top = true
		for _, g := range groups {
			s, err := plotter.NewScatter(plotter.XYs{})
			if err != nil {
				return nil, err
			}
			s.GlyphStyle.Color = g.colour
			s.GlyphStyle.Shape = draw.CircleGlyph{}
			s.GlyphStyle.Radius = vg.Points(opts.Radius)
			legend.Legend.Add(g.name, s)
		}
	}

	log.Debugf("Built %dx%d scatterplot matrix (%s diagonal, %d groups)", n, n, opts.Diagonal, len(fig.Groups))
	return fig, nil
}

// Tile returns the plot at row i, column j.
func (f *Figure) Tile(i, j int) *plot.Plot { return f.tiles[i][j] }

func (f *Figure) Size() int { return len(f.tiles) }

// WriteSVG renders the whole grid as a single SVG document.
func (f *Figure) WriteSVG(w io.Writer) error {
	width, height := pixels(f.Width), pixels(f.Height)
	c := vgsvg.New(width, height)
	dc := draw.New(c)

	n := len(f.tiles)
	tiles := draw.Tiles{
		Rows:      n,
		Cols:      n,
		PadX:      vg.Millimeter,
		PadY:      vg.Millimeter,
		PadTop:    vg.Points(4),
		PadBottom: vg.Points(4),
		PadLeft:   vg.Points(4),
		PadRight:  vg.Points(4),
	}

	canvases := plot.Align(f.tiles, tiles, dc)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			f.tiles[i][j].Draw(canvases[i][j])
		}
	}

	if _, err := c.WriteTo(w); err != nil {
		return errors.Wrap(err, "write svg")
	}
	return nil
}

// pixels converts CSS pixels (96 per inch) to vg lengths.
func pixels(px int) vg.Length {
	return vg.Length(px) * vg.Inch / 96
}

func groupRows(t *table.Table, group string) ([]series, error) {
	if group == "" {
		all := make([]int, t.Rows())
		for i := range all {
			all[i] = i
		}
		return []series{{colour: plotutil.Color(0), rows: all}}, nil
	}

	labels, err := t.Labels(group)
	if err != nil {
		return nil, errors.Wrap(err, "group column")
	}

	index := make(map[string]int)
	var out []series
	for row, label := range labels {
		k, ok := index[label]
		if !ok {
			k = len(out)
			index[label] = k
			out = append(out, series{name: label, colour: plotutil.Color(k)})
		}
		out[k].rows = append(out[k].rows, row)
	}
	return out, nil
}

// pairs collects (x, y) for rows where both are finite.
func pairs(xs, ys []float64, rows []int) plotter.XYs {
	pts := make(plotter.XYs, 0, len(rows))
	for _, r := range rows {
		x, y := xs[r], ys[r]
		if !finite(x) || !finite(y) {
			continue
		}
		pts = append(pts, plotter.XY{X: x, Y: y})
	}
	return pts
}

func values(vs []float64, rows []int) plotter.Values {
	out := make(plotter.Values, 0, len(rows))
	for _, r := range rows {
		if finite(vs[r]) {
			out = append(out, vs[r])
		}
	}
	return out
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func scatterTile(p *plot.Plot, xs, ys []float64, groups []series, radius float64) error {
	for _, g := range groups {
		pts := pairs(xs, ys, g.rows)
		if len(pts) == 0 {
			continue
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		s.GlyphStyle.Color = g.colour
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Radius = vg.Points(radius)
		p.Add(s)
	}
	return nil
}

func diagonalTile(p *plot.Plot, vs []float64, name string, cats []string, groups []series, opts Options) error {
	switch opts.Diagonal {
	case DiagHistogram:
		bins := opts.Bins
		if cats != nil {
			bins = len(cats)
		}
		for _, g := range groups {
			v := values(vs, g.rows)
			if len(v) == 0 {
				continue
			}
			h, err := plotter.NewHist(v, bins)
			if err != nil {
				return err
			}
			h.FillColor = translucent(g.colour)
			h.LineStyle.Width = vg.Points(0.5)
			p.Add(h)
		}
		return nil

	case DiagBox:
		var names []string
		width := vg.Points(20)
		for _, g := range groups {
			v := values(vs, g.rows)
			if len(v) == 0 {
				continue
			}
			b, err := plotter.NewBoxPlot(width, float64(len(names)), v)
			if err != nil {
				return err
			}
			b.FillColor = translucent(g.colour)
			p.Add(b)
			label := g.name
			if label == "" {
				label = name
			}
			names = append(names, label)
		}
		if len(names) > 0 {
			p.NominalX(names...)
		}
		return nil
	}

	return scatterTile(p, vs, vs, groups, opts.Radius)
}

// unitRange gives an axis with no data a [0, 1] range to draw.
func unitRange(a *plot.Axis) {
	if a.Min > a.Max {
		a.Min, a.Max = 0, 1
	}
}

// categoryAxis labels positions 0..k-1 with the category names and pads the
// range by half a step so the outermost categories sit inside the tile.
func categoryAxis(a *plot.Axis, categories []string) {
	ticks := make([]plot.Tick, len(categories))
	for k, c := range categories {
		ticks[k] = plot.Tick{Value: float64(k), Label: c}
	}
	a.Tick.Marker = plot.ConstantTicks(ticks)
	a.Min = -0.5
	a.Max = float64(len(categories)) - 0.5
}

func translucent(c color.Color) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = 0x99
	return n
}
