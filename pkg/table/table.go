// Package table loads delimited text files into a column-typed table.
package table

import (
	"bytes"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	cmdUtils "scatter-go/pkg/cmd-utils"
)

var (
	ErrEmpty      = errors.New("no data rows")
	ErrNoColumn   = errors.New("no such column")
	ErrNotNumeric = errors.New("column is not numeric")
)

type Kind int

const (
	Text Kind = iota
	Numeric
)

func (k Kind) String() string {
	if k == Numeric {
		return "numeric"
	}
	return "text"
}

type LoadOptions struct {
	Delimiter rune
	NoHeader  bool
	// Missing lists the cell values read as missing. Empty cells are always missing.
	Missing []string
}

// DefaultMissing matches what gota treats as NaN out of the box.
var DefaultMissing = []string{"NA", "NaN", "<nil>"}

type Table struct {
	df     dataframe.DataFrame
	source string
}

// Load parses CSV from r. Column types are detected from the values; see Kind.
func Load(r io.Reader, opts LoadOptions) (*Table, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read csv")
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, ErrEmpty
	}
	if !opts.NoHeader && !bytes.ContainsRune(trimmed, '\n') {
		return nil, ErrEmpty
	}

	loadOpts := []dataframe.LoadOption{
		dataframe.HasHeader(!opts.NoHeader),
		dataframe.DetectTypes(true),
	}
	if opts.Delimiter != 0 {
		loadOpts = append(loadOpts, dataframe.WithDelimiter(opts.Delimiter))
	}
	missing := opts.Missing
	if missing == nil {
		missing = DefaultMissing
	}
	loadOpts = append(loadOpts, dataframe.NaNValues(missing))

	df := dataframe.ReadCSV(bytes.NewReader(raw), loadOpts...)
	if df.Err != nil {
		if strings.Contains(df.Err.Error(), "empty DataFrame") {
			return nil, ErrEmpty
		}
		return nil, errors.Wrap(df.Err, "parse csv")
	}
	if df.Nrow() == 0 {
		return nil, ErrEmpty
	}

	t := &Table{df: df}
	log.Debugf("Loaded %d rows, %d columns", df.Nrow(), df.Ncol())
	if log.IsLevelEnabled(log.TraceLevel) {
		log.Traceln(df.Describe())
	}
	return t, nil
}

// LoadFile loads the CSV at path; "-" reads stdin.
func LoadFile(path string, opts LoadOptions) (*Table, error) {
	src, err := cmdUtils.OpenSource(path)
	if err != nil {
		return nil, err
	}
	defer cmdUtils.SafeClose(src)

	t, err := Load(src, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	t.source = path
	return t, nil
}

// Source is the path the table was loaded from, if any.
func (t *Table) Source() string { return t.source }

func (t *Table) Names() []string { return t.df.Names() }

func (t *Table) Rows() int { return t.df.Nrow() }

func (t *Table) Has(name string) bool {
	for _, n := range t.df.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// Kind reports how a column is plotted. Int, Float and Bool columns are
// numeric, as is a column whose every cell is missing.
func (t *Table) Kind(name string) (Kind, error) {
	if !t.Has(name) {
		return Text, errors.Wrap(ErrNoColumn, name)
	}
	col := t.df.Col(name)
	switch col.Type() {
	case series.Int, series.Float, series.Bool:
		return Numeric, nil
	}
	if allMissing(col) {
		return Numeric, nil
	}
	return Text, nil
}

// NumericColumns returns the names of numeric columns in table order.
func (t *Table) NumericColumns() []string {
	var out []string
	for _, name := range t.df.Names() {
		if k, _ := t.Kind(name); k == Numeric {
			out = append(out, name)
		}
	}
	return out
}

// Numeric returns the values of a numeric column. Missing cells are NaN and
// booleans are 0 or 1.
func (t *Table) Numeric(name string) ([]float64, error) {
	k, err := t.Kind(name)
	if err != nil {
		return nil, err
	}
	if k != Numeric {
		return nil, errors.Wrap(ErrNotNumeric, name)
	}
	col := t.df.Col(name)
	if col.Type() == series.String {
		out := make([]float64, col.Len())
		for i := range out {
			out[i] = math.NaN()
		}
		return out, nil
	}
	return col.Float(), nil
}

// Categorical maps a text column onto positions 0..k-1, one per distinct
// value in first-seen order. Missing cells are NaN. Numeric columns come back
// unchanged with nil categories.
func (t *Table) Categorical(name string) ([]float64, []string, error) {
	k, err := t.Kind(name)
	if err != nil {
		return nil, nil, err
	}
	if k == Numeric {
		vs, err := t.Numeric(name)
		return vs, nil, err
	}

	col := t.df.Col(name)
	missing := col.IsNaN()
	index := make(map[string]int)
	var categories []string
	out := make([]float64, col.Len())
	for i, rec := range col.Records() {
		if missing[i] || rec == "" {
			out[i] = math.NaN()
			continue
		}
		pos, ok := index[rec]
		if !ok {
			pos = len(categories)
			index[rec] = pos
			categories = append(categories, rec)
		}
		out[i] = float64(pos)
	}
	return out, categories, nil
}

// Labels returns a column's values as strings, whatever its kind. Floats are
// printed in their shortest form.
func (t *Table) Labels(name string) ([]string, error) {
	if !t.Has(name) {
		return nil, errors.Wrap(ErrNoColumn, name)
	}
	col := t.df.Col(name)
	if col.Type() != series.Float {
		return col.Records(), nil
	}
	vs := col.Float()
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return out, nil
}

func allMissing(col series.Series) bool {
	missing := col.IsNaN()
	for i, rec := range col.Records() {
		if !missing[i] && rec != "" {
			return false
		}
	}
	return true
}

// Select returns a table holding only the named columns, in the given order.
func (t *Table) Select(names ...string) (*Table, error) {
	for _, name := range names {
		if !t.Has(name) {
			return nil, errors.Wrap(ErrNoColumn, name)
		}
	}
	df := t.df.Select(names)
	if df.Err != nil {
		return nil, errors.Wrap(df.Err, "select")
	}
	return &Table{df: df, source: t.source}, nil
}
