package raster

import "fmt"

// Levels is the number of intensity levels of an 8-bit channel.
const Levels = 256

// Histogram counts pixels per intensity level; index = level 0-255.
type Histogram [Levels]int

// Total returns the number of pixels counted.
func (h *Histogram) Total() int {
	n := 0
	for _, c := range h {
		n += c
	}
	return n
}

// CDF returns the cumulative distribution: cdf[v] = count of levels <= v.
func (h *Histogram) CDF() [Levels]int {
	var cdf [Levels]int
	run := 0
	for v, c := range h {
		run += c
		cdf[v] = run
	}
	return cdf
}

// Peak returns the most populated level and its count. Ties resolve to the
// lowest level; an empty histogram returns (0, 0).
func (h *Histogram) Peak() (level, count int) {
	for v, c := range h {
		if c > count {
			level, count = v, c
		}
	}
	return level, count
}

// Bounds returns the lowest and highest levels with a non-zero count.
// ok is false for an empty histogram.
func (h *Histogram) Bounds() (lo, hi int, ok bool) {
	lo, hi = -1, -1
	for v, c := range h {
		if c == 0 {
			continue
		}
		if lo < 0 {
			lo = v
		}
		hi = v
	}
	if lo < 0 {
		return 0, 0, false
	}
	return lo, hi, true
}

// Mean returns the average intensity, or 0 when empty.
func (h *Histogram) Mean() float64 {
	total, sum := 0, 0
	for v, c := range h {
		total += c
		sum += v * c
	}
	if total == 0 {
		return 0
	}
	return float64(sum) / float64(total)
}

// ValidateBinary checks that every color channel of g is 0 or 255. Alpha is
// not inspected. Morphological operators assume this holds; they do not call
// it themselves.
func ValidateBinary(g *Grid) error {
	for i, p := range g.Pix {
		if !binaryChannel(p.R) || !binaryChannel(p.G) || !binaryChannel(p.B) {
			return &OpError{
				Op:     "validate_binary",
				Err:    ErrNotBinaryImage,
				Detail: fmt.Sprintf("pixel (%d,%d) is (%d,%d,%d)", i%g.Width, i/g.Width, p.R, p.G, p.B),
			}
		}
	}
	return nil
}

func binaryChannel(v uint8) bool {
	return v == 0 || v == 255
}
