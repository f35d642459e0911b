package resample

// Histogram counts how many samples of g take each of the 256 values.
func Histogram(g *Grid) [256]int {
	var h [256]int
	if g.Empty() {
		return h
	}
	for _, v := range g.Pix[:g.Rows*g.Cols] {
		h[v]++
	}
	return h
}

// Stats summarises the samples of a grid.
type Stats struct {
	Min, Max uint8
	Mean     float64
}

// Summarize returns the minimum, maximum and mean sample of g. An empty
// grid gives the zero Stats.
func Summarize(g *Grid) Stats {
	h := Histogram(g)
	var s Stats
	n, sum := 0, 0
	first := true
	for v, c := range h {
		if c == 0 {
			continue
		}
		if first {
			s.Min = uint8(v)
			first = false
		}
		s.Max = uint8(v)
		n += c
		sum += v * c
	}
	if n > 0 {
		s.Mean = float64(sum) / float64(n)
	}
	return s
}
