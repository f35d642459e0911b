package resample

// TargetSize resolves a requested width and height against a source of
// srcCols x srcRows. A zero width or height preserves the aspect ratio; if
// both are zero the source size is returned unchanged.
func TargetSize(srcRows, srcCols, width, height int) (rows, cols int) {
	if width == 0 && height == 0 {
		return srcRows, srcCols
	}
	cols, rows = width, height
	if cols == 0 && srcRows > 0 {
		cols = int((float64(srcCols) * float64(rows)) / float64(srcRows))
	}
	if rows == 0 && srcCols > 0 {
		rows = int((float64(srcRows) * float64(cols)) / float64(srcCols))
	}
	return max(rows, 1), max(cols, 1)
}
