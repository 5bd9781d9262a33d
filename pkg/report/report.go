// Package report wraps a rendered scatterplot matrix in a standalone HTML page.
package report

import (
	"bytes"
	_ "embed"
	"hash/fnv"
	"html/template"
	"io"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/yelinaung/go-haikunator"

	cmdUtils "scatter-go/pkg/cmd-utils"
	"scatter-go/pkg/splom"
)

//go:embed templates/page.html
var pageTemplate string

var page = template.Must(template.New("page").Parse(pageTemplate))

var render = Write

// Meta describes where the plotted data came from.
type Meta struct {
	Source string
	Rows   int
	Group  string
}

type pageData struct {
	Title   string
	ID      string
	Width   int
	Height  int
	SVG     template.HTML
	Source  string
	Rows    int
	Columns []string
	Group   string
	Groups  []string
}

// OutputName appends ".html" unless name already ends in .html or .htm.
func OutputName(name string) string {
	if name == cmdUtils.Stdio {
		return name
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm":
		return name
	}
	return name + ".html"
}

// DefaultName derives the output file from the input: data/scores.csv gives
// scores-scatter.html in the working directory.
func DefaultName(input string) string {
	if input == cmdUtils.Stdio || input == "" {
		return "stdin-scatter.html"
	}
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base)) + "-scatter.html"
}

// Write renders the page for fig to w.
func Write(w io.Writer, fig *splom.Figure, meta Meta) error {
	var svg bytes.Buffer
	if err := fig.WriteSVG(&svg); err != nil {
		return err
	}

	// Drop the XML prolog; the svg element is inlined into the page.
	body := svg.Bytes()
	if i := bytes.Index(body, []byte("<svg")); i > 0 {
		body = body[i:]
	}

	data := pageData{
		Title:   fig.Title,
		ID:      elementID(body),
		Width:   fig.Width,
		Height:  fig.Height,
		SVG:     template.HTML(body),
		Source:  meta.Source,
		Rows:    meta.Rows,
		Columns: fig.Columns,
		Group:   meta.Group,
		Groups:  fig.Groups,
	}

	if err := page.Execute(w, data); err != nil {
		return errors.Wrap(err, "render page")
	}
	return nil
}

// WriteFile writes the page to path ("-" for stdout) and returns its file:// URL.
// The URL is empty for stdout.
// Nothing is created or truncated unless the page renders.
func WriteFile(path string, fig *splom.Figure, meta Meta) (string, error) {
	var buf bytes.Buffer
	if err := render(&buf, fig, meta); err != nil {
		return "", errors.Wrapf(err, "render %s", path)
	}

	sink, err := cmdUtils.OpenSink(path)
	if err != nil {
		return "", err
	}

	if _, err := buf.WriteTo(sink); err != nil {
		cmdUtils.SafeClose(sink)
		return "", errors.Wrapf(err, "write %s", path)
	}
	if err := sink.Close(); err != nil {
		return "", errors.Wrapf(err, "close %s", path)
	}

	if path == cmdUtils.Stdio {
		return "", nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrap(err, "resolve output path")
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	log.Debugln("Wrote", abs)
	return u.String(), nil
}

// elementID names the figure element after the rendered content, so the same
// input always produces the same page.
func elementID(content []byte) string {
	h := fnv.New64a()
	h.Write(content)
	return "splom-" + haikunator.New(int64(h.Sum64())).Haikunate()
}
