package resample

import (
	"log/slog"

	"github.com/Fepozopo/fxresize/pkg/fixed"
)

// Horizontal scales only the columns of src to cols, keeping the row count.
// Each sample is the linear blend of its two horizontal neighbours. It panics
// under the same conditions as Resample.
func Horizontal(src *Grid, cols int, scaleX fixed.Fixed, opts *Options) *Grid {
	if err := validate(src, 1, cols); err != nil {
		panic(err)
	}
	if scaleX == 0 {
		panic(ErrScaleInvalid)
	}
	o := opts.orDefault()
	Logger().Debug("horizontal",
		slog.Int("srcCols", src.Cols), slog.Int("cols", cols),
		slog.String("scaleX", scaleX.String()), slog.Int("workers", o.Workers))

	dst := NewGrid(src.Rows, cols)
	xs := taps(cols, src.Cols, scaleX, o.Align)
	err := inBands(src.Rows, o.Workers, func(r0, r1 int) {
		for row := r0; row < r1; row++ {
			in, out := src.Row(row), dst.Row(row)
			for col, x := range xs {
				v := lerp(fixed.FromInt(int(in[x.lo])), fixed.FromInt(int(in[x.hi])), x.frac)
				out[col] = store(v, o.Overflow)
			}
		}
	})
	if err != nil {
		panic(err)
	}
	return dst
}

// ResizeWidth is the checked form of Horizontal.
func ResizeWidth(src *Grid, cols int, opts *Options) (*Grid, error) {
	if err := validate(src, 1, cols); err != nil {
		return nil, err
	}
	return Horizontal(src, cols, fixed.Ratio(src.Cols, cols), opts), nil
}
