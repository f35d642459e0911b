package cli

import (
	"io"
	"log/slog"

	"github.com/Fepozopo/fxresize/pkg/resample"
)

// logger carries debug diagnostics. Silent unless -v or FXRESIZE_DEBUG=1.
var logger = slog.New(slog.DiscardHandler)

func setupLogging(w io.Writer, debug bool) {
	if !debug {
		logger = slog.New(slog.DiscardHandler)
		resample.SetLogger(nil)
		return
	}
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	resample.SetLogger(logger.With("pkg", "resample"))
}
