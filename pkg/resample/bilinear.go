// Package resample scales 8 bit grayscale grids with bilinear interpolation
// using only 16.16 fixed-point integer arithmetic in the sweep.
//
// The caller (the "host") computes the two scale factors once, usually with
// fixed.Ratio, and every destination sample is then produced with integer
// adds, shifts, masks and fixed.Mul. Resize does the host part for you.
//
// Example:
//
//	// Double the width, keep the height.
//	out, err := resample.Resize(src, src.Rows, src.Cols*2, nil)
package resample

import (
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/Fepozopo/fxresize/pkg/fixed"
)

// Overflow selects how a blended value that does not fit in 8 bits is stored.
type Overflow int

const (
	// Wrap keeps the low 8 bits of the integer part.
	Wrap Overflow = iota
	// Saturate clips to 255.
	Saturate
)

func (o Overflow) String() string {
	switch o {
	case Wrap:
		return "wrap"
	case Saturate:
		return "saturate"
	}
	return "unknown"
}

// Align selects how a destination index is projected into source space.
type Align int

const (
	// Corner maps destination index i to source coordinate i*scale, so the
	// first row and column always sample the source origin exactly.
	Corner Align = iota
	// Center maps pixel centres onto pixel centres:
	// (i+0.5)*scale - 0.5, clamped at zero. Downscaling then blends
	// neighbours instead of picking the top-left one.
	Center
)

func (a Align) String() string {
	switch a {
	case Corner:
		return "corner"
	case Center:
		return "center"
	}
	return "unknown"
}

// Options are the resampling parameters. A nil *Options means the defaults:
// corner alignment, wrapping overflow, a single worker.
type Options struct {
	Overflow Overflow
	Align    Align
	// Workers is the number of row bands processed in parallel.
	// Values below 2 run the sweep on the calling goroutine.
	Workers int
}

func (o *Options) orDefault() Options {
	if o == nil {
		return Options{}
	}
	return *o
}

// tap is a projected coordinate: the two clamped neighbour indices and the
// weight of the second one.
type tap struct {
	lo, hi int
	frac   fixed.Fixed
}

const half = fixed.One >> 1

// project maps destination index i onto the source axis. limit is the
// largest valid fixed-point coordinate on that axis; lo and hi are clamped
// against it independently so lookups at the far edge reuse the last row or
// column.
func project(i int, scale, limit fixed.Fixed, align Align) tap {
	var t fixed.Fixed
	switch align {
	case Center:
		t = fixed.Mul(fixed.FromInt(i)+half, scale)
		if t < half {
			t = 0
		} else {
			t -= half
		}
	default:
		t = fixed.Mul(fixed.FromInt(i), scale)
	}
	lo := t.Floor()
	hi := lo + fixed.One
	if lo > limit {
		lo = limit
	}
	if hi > limit {
		hi = limit
	}
	return tap{lo: lo.Int(), hi: hi.Int(), frac: t.Frac()}
}

// taps projects every index in [0, n) onto an axis of the given extent.
func taps(n, extent int, scale fixed.Fixed, align Align) []tap {
	limit := fixed.FromInt(extent) - fixed.One
	out := make([]tap, n)
	for i := range out {
		out[i] = project(i, scale, limit, align)
	}
	return out
}

// lerp blends a and b: (1-f)*a + f*b.
func lerp(a, b, f fixed.Fixed) fixed.Fixed {
	return fixed.Mul(fixed.One-f, a) + fixed.Mul(f, b)
}

// store turns a blended value into a sample.
func store(v fixed.Fixed, o Overflow) uint8 {
	n := uint32(v >> fixed.FracBits)
	if o == Saturate && n > 0xFF {
		return 0xFF
	}
	return uint8(n & 0xFF)
}

func validate(src *Grid, rows, cols int) error {
	if src.Empty() {
		return ErrSourceEmpty
	}
	if rows <= 0 || cols <= 0 {
		return ErrTargetSizeInvalid
	}
	if src.Rows > fixed.MaxWhole || src.Cols > fixed.MaxWhole || rows > fixed.MaxWhole || cols > fixed.MaxWhole {
		return ErrOutOfRange
	}
	return nil
}

// Resample scales src to rows x cols. scaleY and scaleX are the ratios
// source extent / destination extent for each axis, already in fixed point.
//
// Every destination sample is the bilinear blend of the four source samples
// around its projected coordinate, blended horizontally first and then
// vertically. src is only read; the returned grid is newly allocated.
//
// Resample panics with an Error if src is empty, the destination size is not
// positive, a dimension exceeds fixed.MaxWhole or a scale factor is zero.
// Use Resize for a checked variant that computes the scale factors itself.
func Resample(src *Grid, rows, cols int, scaleY, scaleX fixed.Fixed, opts *Options) *Grid {
	if err := validate(src, rows, cols); err != nil {
		panic(err)
	}
	if scaleY == 0 || scaleX == 0 {
		panic(ErrScaleInvalid)
	}
	o := opts.orDefault()
	Logger().Debug("resample",
		slog.Int("srcRows", src.Rows), slog.Int("srcCols", src.Cols),
		slog.Int("rows", rows), slog.Int("cols", cols),
		slog.String("scaleY", scaleY.String()), slog.String("scaleX", scaleX.String()),
		slog.String("align", o.Align.String()), slog.String("overflow", o.Overflow.String()),
		slog.Int("workers", o.Workers))

	s := &sweep{
		src:      src,
		dst:      NewGrid(rows, cols),
		xs:       taps(cols, src.Cols, scaleX, o.Align),
		ys:       taps(rows, src.Rows, scaleY, o.Align),
		overflow: o.Overflow,
	}
	if err := inBands(rows, o.Workers, s.rows); err != nil {
		panic(err)
	}
	return s.dst
}

// Resize scales src to rows x cols, computing the scale factors from the
// grid extents. Unlike Resample it reports bad input as an error.
func Resize(src *Grid, rows, cols int, opts *Options) (*Grid, error) {
	if err := validate(src, rows, cols); err != nil {
		return nil, err
	}
	return Resample(src, rows, cols, fixed.Ratio(src.Rows, rows), fixed.Ratio(src.Cols, cols), opts), nil
}

type sweep struct {
	src, dst *Grid
	xs, ys   []tap
	overflow Overflow
}

// rows fills destination rows [r0, r1).
func (s *sweep) rows(r0, r1 int) {
	for row := r0; row < r1; row++ {
		y := s.ys[row]
		top := s.src.Row(y.lo)
		bottom := s.src.Row(y.hi)
		out := s.dst.Row(row)
		for col, x := range s.xs {
			a := fixed.FromInt(int(top[x.lo]))
			b := fixed.FromInt(int(top[x.hi]))
			c := fixed.FromInt(int(bottom[x.lo]))
			d := fixed.FromInt(int(bottom[x.hi]))
			v := lerp(lerp(a, b, x.frac), lerp(c, d, x.frac), y.frac)
			out[col] = store(v, s.overflow)
			if traceEnabled {
				tracePixel(row, col, y, x, v)
			}
		}
	}
}

// bandPanic carries a panic raised inside a worker goroutine back to the
// caller.
type bandPanic struct {
	rows  [2]int
	value any
}

func (p bandPanic) Error() string {
	return fmt.Sprintf("resample: rows [%d, %d) panicked: %v", p.rows[0], p.rows[1], p.value)
}

// inBands calls fn over [0, n) split into disjoint row bands, one per
// worker. Each row is handled by exactly one call. A panic in a band is
// returned as an error once every band has finished; the serial path lets it
// propagate directly.
func inBands(n, workers int, fn func(r0, r1 int)) error {
	if workers < 2 || n < 2 {
		fn(0, n)
		return nil
	}
	workers = min(workers, n)
	band := (n + workers - 1) / workers
	var g errgroup.Group
	g.SetLimit(workers)
	for r0 := 0; r0 < n; r0 += band {
		r1 := min(r0+band, n)
		g.Go(func() (err error) {
			defer func() {
				if v := recover(); v != nil {
					err = bandPanic{rows: [2]int{r0, r1}, value: v}
				}
			}()
			fn(r0, r1)
			return nil
		})
	}
	return g.Wait()
}
