package raster

import (
	"math"

	"github.com/samber/lo"
)

// ClampInt saturates v into [0, 255].
func ClampInt(v int) uint8 {
	return uint8(lo.Clamp(v, 0, 255))
}

// ClampFloat rounds v half away from zero and saturates it into [0, 255].
// NaN maps to 0.
func ClampFloat(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(lo.Clamp(math.Round(v), 0, 255))
}

// Intensity is the grayscale level of p: round((R+G+B)/3). Alpha is ignored.
func Intensity(p Pixel) uint8 {
	return ClampFloat(float64(int(p.R)+int(p.G)+int(p.B)) / 3)
}

// Gray returns a pixel with all color channels set to v and the given alpha.
func Gray(v, alpha uint8) Pixel {
	return Pixel{v, v, v, alpha}
}

// IsSet reports whether any color channel of p is non-zero. Binary images
// use this as their foreground test.
func IsSet(p Pixel) bool {
	return p.R != 0 || p.G != 0 || p.B != 0
}
