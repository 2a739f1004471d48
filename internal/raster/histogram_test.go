package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistogramStats(t *testing.T) {
	var h Histogram
	h[10] = 2
	h[20] = 6
	h[30] = 2

	assert.Equal(t, 10, h.Total())

	level, count := h.Peak()
	assert.Equal(t, 20, level)
	assert.Equal(t, 6, count)

	lo, hi, ok := h.Bounds()
	assert.True(t, ok)
	assert.Equal(t, 10, lo)
	assert.Equal(t, 30, hi)

	assert.InDelta(t, 20.0, h.Mean(), 1e-9)

	cdf := h.CDF()
	assert.Equal(t, 0, cdf[9])
	assert.Equal(t, 2, cdf[10])
	assert.Equal(t, 8, cdf[25])
	assert.Equal(t, 10, cdf[255])
}

func TestHistogramEmpty(t *testing.T) {
	var h Histogram
	_, _, ok := h.Bounds()
	assert.False(t, ok)
	assert.Zero(t, h.Mean())
	level, count := h.Peak()
	assert.Zero(t, level)
	assert.Zero(t, count)
}

func TestValidateBinary(t *testing.T) {
	g := Filled(3, 3, Black)
	g.Set(1, 1, White)
	g.Set(2, 2, Pixel{255, 0, 255, 17})
	assert.NoError(t, ValidateBinary(g))

	g.Set(0, 2, Pixel{255, 128, 0, 255})
	err := ValidateBinary(g)
	assert.ErrorIs(t, err, ErrNotBinaryImage)
	assert.Contains(t, err.Error(), "(0,2)")

	assert.NoError(t, ValidateBinary(New(0, 0)))
}
