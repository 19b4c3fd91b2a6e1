// Package trace builds the diagnostic sink used by the parser and the
// interpreter to report what they are doing.
//
// The sink is an ordinary logrus.FieldLogger passed to each component;
// there is no process-wide toggle. Tracing off means a logger that drops
// everything, so call sites never check a flag.
package trace

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// DefaultFile is the log file written when tracing is enabled.
const DefaultFile = "log.txt"

// Options configures a tracing logger.
type Options struct {
	// Console receives trace lines as they are produced (usually stderr).
	// Nil disables console output.
	Console io.Writer

	// File is the path of the log file. Empty disables file output.
	File string
}

// Discard returns a logger that drops every entry.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.InfoLevel)
	return l
}

// OrDiscard returns l, or a discarding logger if l is nil.
func OrDiscard(l logrus.FieldLogger) logrus.FieldLogger {
	if l == nil {
		return Discard()
	}
	return l
}

// New returns a Debug-level logger writing to the console and the log file
// named in opts. The returned closer releases the file and must be called
// once tracing is done.
//
// Tracing never stops a program: if the file cannot be created, one
// warning goes to the console and tracing continues there alone.
func New(opts Options) (*logrus.Logger, io.Closer) {
	var sinks []io.Writer
	if opts.Console != nil {
		sinks = append(sinks, opts.Console)
	}

	var closer io.Closer = nopCloser{}
	var fileErr error
	if opts.File != "" {
		if f, err := os.Create(opts.File); err != nil {
			fileErr = errors.Wrapf(err, "cannot open log file %s", opts.File)
		} else {
			sinks = append(sinks, f)
			closer = f
		}
	}

	l := logrus.New()
	l.SetOutput(io.MultiWriter(sinks...))
	l.SetLevel(logrus.DebugLevel)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    true,
	})
	if fileErr != nil {
		l.WithError(fileErr).Warn("tracing to console only")
	}
	return l, closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
