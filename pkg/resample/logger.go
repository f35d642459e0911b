package resample

import (
	"log/slog"
	"sync/atomic"
)

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(slog.DiscardHandler))
}

// SetLogger sets the logger used by the package. By default nothing is
// logged. Pass nil to restore the silent default. Safe for concurrent use.
//
// Records are emitted once per call at [slog.LevelDebug], never from inside
// the per-pixel loop (unless built with the fxtrace tag).
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	loggerPtr.Store(l)
}

// Logger returns the current package logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
