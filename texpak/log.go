package texpak

import "fmt"

// Logger receives diagnostic messages from the pipeline. Implementations
// must be safe for concurrent use.
type Logger interface {
	Log(msg string)
}

type nopLogger struct{}

func (nopLogger) Log(string) {}

// NopLogger returns a Logger that discards everything. It is the
// default when Options.Logger is nil.
func NopLogger() Logger {
	return nopLogger{}
}

func logf(l Logger, format string, args ...any) {
	if l == nil {
		return
	}
	l.Log(fmt.Sprintf(format, args...))
}
