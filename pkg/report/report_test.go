package report

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scatter-go/pkg/splom"
	"scatter-go/pkg/table"
)

func TestOutputName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "scores-scatter", want: "scores-scatter.html"},
		{input: "out.html", want: "out.html"},
		{input: "OUT.HTM", want: "OUT.HTM"},
		{input: "plot.v2", want: "plot.v2.html"},
		{input: "-", want: "-"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := OutputName(tt.input); got != tt.want {
				t.Errorf("OutputName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDefaultName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "scores.csv", want: "scores-scatter.html"},
		{input: "data/iris.tsv", want: "iris-scatter.html"},
		{input: "/tmp/runs/2024.scores.csv", want: "2024.scores-scatter.html"},
		{input: "noext", want: "noext-scatter.html"},
		{input: "-", want: "stdin-scatter.html"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := DefaultName(tt.input); got != tt.want {
				t.Errorf("DefaultName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func figure(t *testing.T) *splom.Figure {
	t.Helper()
	tbl, err := table.Load(strings.NewReader("math,reading,class\n72,72,a\n69,90,b\n90,95,a\n"), table.LoadOptions{})
	if err != nil {
		t.Fatalf("table.Load() error = %v", err)
	}
	opts := splom.DefaultOptions()
	opts.Title = "Scores <2024>"
	opts.Group = "class"
	fig, err := splom.New(tbl, opts)
	if err != nil {
		t.Fatalf("splom.New() error = %v", err)
	}
	return fig
}

func TestWrite(t *testing.T) {
	fig := figure(t)

	var buf bytes.Buffer
	if err := Write(&buf, fig, Meta{Source: "scores.csv", Rows: 3, Group: "class"}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Scores &lt;2024&gt;</title>",
		`id="splom-`,
		"<svg",
		"<code>scores.csv</code>",
		"3 rows",
		"<code>math</code>, <code>reading</code>",
		"grouped by <code>class</code> (2 groups)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("page is missing %q", want)
		}
	}
	if strings.Contains(out, "<?xml") {
		t.Error("page still contains the svg xml prolog")
	}
}

func TestWriteIsDeterministic(t *testing.T) {
	var a, b bytes.Buffer
	if err := Write(&a, figure(t), Meta{Rows: 3}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := Write(&b, figure(t), Meta{Rows: 3}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("two renders of the same data differ")
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores-scatter.html")

	u, err := WriteFile(path, figure(t), Meta{Rows: 3})
	if err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if !strings.HasPrefix(u, "file://") || !strings.HasSuffix(u, "/scores-scatter.html") {
		t.Errorf("WriteFile() url = %q", u)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !bytes.Contains(data, []byte("<svg")) {
		t.Error("written file has no svg")
	}
}

func TestWriteFileBadDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.html")
	if _, err := WriteFile(path, figure(t), Meta{}); err == nil {
		t.Error("WriteFile() into a missing directory returned no error")
	}
}

func TestWriteFileRenderFailureKeepsOldPage(t *testing.T) {
	old := render
	render = func(w io.Writer, _ *splom.Figure, _ Meta) error {
		io.WriteString(w, "<!DOCTYPE html><half")
		return errors.New("render failed")
	}
	t.Cleanup(func() { render = old })

	dir := t.TempDir()
	existing := filepath.Join(dir, "scores-scatter.html")
	if err := os.WriteFile(existing, []byte("previous page"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := WriteFile(existing, figure(t), Meta{}); err == nil {
		t.Fatal("WriteFile() returned no error")
	}
	data, err := os.ReadFile(existing)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "previous page" {
		t.Errorf("existing page was overwritten with %q", data)
	}

	fresh := filepath.Join(dir, "new.html")
	if _, err := WriteFile(fresh, figure(t), Meta{}); err == nil {
		t.Fatal("WriteFile() returned no error")
	}
	if _, err := os.Stat(fresh); !os.IsNotExist(err) {
		t.Errorf("Stat(%s) error = %v, want not-exist", fresh, err)
	}
}
