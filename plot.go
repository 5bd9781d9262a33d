package main

import (
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"scatter-go/pkg/browser"
	cmdUtils "scatter-go/pkg/cmd-utils"
	"scatter-go/pkg/config"
	"scatter-go/pkg/report"
	"scatter-go/pkg/splom"
	"scatter-go/pkg/table"
)

type cliFlags struct {
	output string
	title  string
	width  int
	height int
	diag   string
	group  string
	bins   int
	cols   string
	delim  string
	noOpen bool
}

// job is one input file turned into one page.
type job struct {
	input   string
	output  string
	load    table.LoadOptions
	columns []string
	opts    splom.Options
	open    bool
}

// newJob merges defaults, the optional config file and the flags, in that
// order. Only flags present in set override the file.
func newJob(input, configPath string, f cliFlags, set map[string]bool) (*job, error) {
	cfg := &config.Config{}
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return nil, err
		}
	}

	j := &job{
		input: input,
		opts:  splom.DefaultOptions(),
		open:  true,
	}

	if cfg.Title != "" {
		j.opts.Title = cfg.Title
	}
	if cfg.Width != 0 {
		j.opts.Width = cfg.Width
	}
	if cfg.Height != 0 {
		j.opts.Height = cfg.Height
	}
	if cfg.Bins != 0 {
		j.opts.Bins = cfg.Bins
	}
	j.opts.Group = cfg.Group
	j.columns = cfg.Columns
	j.output = cfg.Output
	j.load.Delimiter = cfg.DelimiterRune()
	if cfg.Open != nil {
		j.open = *cfg.Open
	}
	diag := cfg.Diagonal

	if set["title"] {
		j.opts.Title = f.title
	}
	if set["width"] {
		j.opts.Width = f.width
	}
	if set["height"] {
		j.opts.Height = f.height
	}
	if set["bins"] {
		j.opts.Bins = f.bins
	}
	if set["group"] {
		j.opts.Group = f.group
	}
	if set["cols"] {
		j.columns = splitList(f.cols)
	}
	if set["o"] {
		j.output = f.output
	}
	if set["delim"] {
		r, size := utf8.DecodeRuneInString(f.delim)
		if size == 0 || size != len(f.delim) {
			return nil, errors.Errorf("delimiter must be a single character, got %q", f.delim)
		}
		j.load.Delimiter = r
	}
	if set["no-open"] {
		j.open = !f.noOpen
	}
	if set["diag"] {
		diag = f.diag
	}

	var err error
	if j.opts.Diagonal, err = splom.ParseDiagonal(diag); err != nil {
		return nil, err
	}

	if j.output == "" {
		j.output = report.DefaultName(input)
	}
	j.output = report.OutputName(j.output)
	if j.output == cmdUtils.Stdio {
		j.open = false
	}

	return j, nil
}

// run loads the table, builds the figure, writes the page and opens it.
// It returns the page's file:// URL, empty when writing to stdout.
func (j *job) run() (string, error) {
	t, err := table.LoadFile(j.input, j.load)
	if err != nil {
		return "", err
	}

	if len(j.columns) > 0 {
		cols := j.columns
		if j.opts.Group != "" && !contains(cols, j.opts.Group) {
			cols = append(append([]string{}, cols...), j.opts.Group)
		}
		if t, err = t.Select(cols...); err != nil {
			return "", err
		}
	}

	fig, err := splom.New(t, j.opts)
	if err != nil {
		return "", errors.Wrapf(err, "plot %s", j.input)
	}

	log.Debugf("Writing %s", j.output)
	url, err := report.WriteFile(j.output, fig, report.Meta{
		Source: t.Source(),
		Rows:   t.Rows(),
		Group:  j.opts.Group,
	})
	if err != nil {
		return "", err
	}

	if j.open {
		if err := browser.Open(url); err != nil {
			cmdUtils.LogError("could not open browser: ", err)
		}
	}
	return url, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
