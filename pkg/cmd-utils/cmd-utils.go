package cmdUtils

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Stdio is the path that selects stdin for sources and stdout for sinks.
const Stdio = "-"

var (
	errPrefix   string = "ERR"
	fatalPrefix string = "FATAL"
)

const (
	yellow = "\033[33m"
	red    = "\033[31m"
	reset  = "\033[0m"
)

var stderr io.Writer = os.Stderr

func LogError(reason string, err error) {
	// Print in yellow
	fmt.Fprintf(stderr, "%s%s%s %s%s\n", yellow, errPrefix, reset, reason, err)
}

func LogFatalError(reason string, err error) {
	// Print in red
	fmt.Fprintf(stderr, "%s%s%s %s%s\n", red, fatalPrefix, reset, reason, err)
	os.Exit(1)
}

// OpenSource opens path for reading, or returns stdin for "-".
func OpenSource(path string) (io.ReadCloser, error) {
	if path == Stdio {
		return io.NopCloser(os.Stdin), nil
	}

	reader, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}

	return reader, nil
}

// OpenSink creates (truncating) path for writing, or returns stdout for "-".
// Closing the stdout sink is a no-op.
func OpenSink(path string) (io.WriteCloser, error) {
	if path == Stdio {
		return nopWriteCloser{os.Stdout}, nil
	}

	writer, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "create %s", path)
	}

	return writer, nil
}

// SafeClose closes c and logs a failure instead of returning it.
func SafeClose(c io.Closer) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		log.Warnln("failed to close file:", err)
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
