// Package logging is a thin wrapper around the stdlib log package,
// giving cmd/deepluna leveled stderr output (§A.2). Core packages are
// error-returning and do not use this logger; the one exception to
// their silence is tldb, which notes ignored translation updates
// through the stdlib log package.
package logging

import (
	"log"
	"os"
)

// Logger writes leveled, prefixed lines to stderr.
type Logger struct {
	l *log.Logger
}

// New returns a Logger writing to os.Stderr with no timestamp, matching
// the plain fmt.Fprintf(os.Stderr, ...) texture of the teacher's
// simpler CLI tools.
func New() *Logger {
	return &Logger{l: log.New(os.Stderr, "", 0)}
}

func (lg *Logger) Info(format string, args ...any) {
	lg.l.Printf("[info] "+format, args...)
}

func (lg *Logger) Warn(format string, args ...any) {
	lg.l.Printf("[warn] "+format, args...)
}

func (lg *Logger) Error(format string, args ...any) {
	lg.l.Printf("[error] "+format, args...)
}
