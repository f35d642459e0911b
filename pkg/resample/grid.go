package resample

import (
	"image"

	"golang.org/x/image/draw"
)

// Grid is a single channel 8 bit image stored row-major in Pix, with no
// padding between rows.
type Grid struct {
	Rows int
	Cols int
	Pix  []uint8
}

// NewGrid returns a zeroed rows x cols grid.
func NewGrid(rows, cols int) *Grid {
	return &Grid{Rows: rows, Cols: cols, Pix: make([]uint8, rows*cols)}
}

// At returns the sample at (row, col). It panics if the index is outside the grid.
func (g *Grid) At(row, col int) uint8 {
	return g.Pix[row*g.Cols+col]
}

// Set writes the sample at (row, col).
func (g *Grid) Set(row, col int, v uint8) {
	g.Pix[row*g.Cols+col] = v
}

// Row returns the samples of one row. The slice aliases g.Pix.
func (g *Grid) Row(row int) []uint8 {
	return g.Pix[row*g.Cols : (row+1)*g.Cols]
}

// Empty reports whether g has no samples to read.
func (g *Grid) Empty() bool {
	return g == nil || g.Rows <= 0 || g.Cols <= 0 || len(g.Pix) < g.Rows*g.Cols
}

// Clone returns a copy of g.
func (g *Grid) Clone() *Grid {
	if g == nil {
		return nil
	}
	out := NewGrid(g.Rows, g.Cols)
	copy(out.Pix, g.Pix)
	return out
}

// FromImage converts any image.Image to a Grid using the luma of each pixel.
func FromImage(src image.Image) *Grid {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	gray, ok := src.(*image.Gray)
	if !ok {
		gray = image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(gray, gray.Bounds(), src, b.Min, draw.Src)
		b = gray.Bounds()
	}
	out := NewGrid(b.Dy(), b.Dx())
	for y := 0; y < out.Rows; y++ {
		i := gray.PixOffset(b.Min.X, b.Min.Y+y)
		copy(out.Row(y), gray.Pix[i:i+out.Cols])
	}
	return out
}

// Image returns g as an *image.Gray anchored at the origin. The pixels are copied.
func (g *Grid) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, g.Cols, g.Rows))
	for y := 0; y < g.Rows; y++ {
		copy(img.Pix[y*img.Stride:], g.Row(y))
	}
	return img
}
