//go:build !fxtrace

package resample

import "github.com/Fepozopo/fxresize/pkg/fixed"

const traceEnabled = false

func tracePixel(int, int, tap, tap, fixed.Fixed) {}
