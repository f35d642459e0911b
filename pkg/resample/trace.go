//go:build fxtrace

package resample

import (
	"log/slog"

	"github.com/Fepozopo/fxresize/pkg/fixed"
)

const traceEnabled = true

func tracePixel(row, col int, y, x tap, v fixed.Fixed) {
	Logger().Debug("pixel",
		slog.Int("row", row), slog.Int("col", col),
		slog.Int("iY", y.lo), slog.Int("iYN", y.hi), slog.String("factY", y.frac.String()),
		slog.Int("iX", x.lo), slog.Int("iXN", x.hi), slog.String("factX", x.frac.String()),
		slog.String("value", v.String()))
}
