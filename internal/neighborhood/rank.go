package neighborhood

import (
	"slices"

	"github.com/ironsheep/image-editor-mcp/internal/raster"
)

// MaxOrder is the highest rank accepted by Order.
const MaxOrder = 8

// Mean replaces each interior pixel with the truncated mean of its 3×3
// neighborhood, per color channel.
func Mean(g *raster.Grid) *raster.Grid {
	return window3(g, func(s *samples) uint8 {
		sum := 0
		for _, v := range s {
			sum += int(v)
		}
		return uint8(sum / len(s))
	})
}

// Min replaces each interior pixel with the minimum of its 3×3 neighborhood.
func Min(g *raster.Grid) *raster.Grid {
	return window3(g, func(s *samples) uint8 {
		return slices.Min(s[:])
	})
}

// Max replaces each interior pixel with the maximum of its 3×3 neighborhood.
func Max(g *raster.Grid) *raster.Grid {
	return window3(g, func(s *samples) uint8 {
		return slices.Max(s[:])
	})
}

// Median replaces each interior pixel with the median of its 3×3
// neighborhood, per color channel.
func Median(g *raster.Grid) *raster.Grid {
	return window3(g, rank(center))
}

// Order generalizes Median: each channel takes the sample at position order
// (0 = minimum, 8 = maximum) of the sorted 3×3 neighborhood.
func Order(g *raster.Grid, order int) (*raster.Grid, error) {
	if order < 0 || order > MaxOrder {
		return nil, raster.InvalidParameter("order_filter", "order %d outside [0,%d]", order, MaxOrder)
	}
	return window3(g, rank(order)), nil
}

func rank(k int) func(s *samples) uint8 {
	return func(s *samples) uint8 {
		sorted := *s
		slices.Sort(sorted[:])
		return sorted[k]
	}
}

// ConservativeSmoothing clamps each interior channel value into the range
// spanned by its eight neighbors, leaving values already inside unchanged.
func ConservativeSmoothing(g *raster.Grid) *raster.Grid {
	return window3(g, func(s *samples) uint8 {
		lo, hi := uint8(255), uint8(0)
		for i, v := range s {
			if i == center {
				continue
			}
			lo = min(lo, v)
			hi = max(hi, v)
		}
		switch c := s[center]; {
		case c > hi:
			return hi
		case c < lo:
			return lo
		default:
			return c
		}
	})
}
