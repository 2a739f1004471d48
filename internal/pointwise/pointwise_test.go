package pointwise

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-editor-mcp/internal/raster"
)

// randomGrid fills a grid with deterministic pseudo-random pixels.
func randomGrid(seed int64, w, h int) *raster.Grid {
	rng := rand.New(rand.NewSource(seed))
	g := raster.New(w, h)
	for i := range g.Pix {
		g.Pix[i] = raster.Pixel{
			R: uint8(rng.Intn(256)),
			G: uint8(rng.Intn(256)),
			B: uint8(rng.Intn(256)),
			A: uint8(rng.Intn(256)),
		}
	}
	return g
}

func px(r, g, b, a uint8) raster.Pixel {
	return raster.Pixel{R: r, G: g, B: b, A: a}
}

func single(p raster.Pixel) *raster.Grid {
	return raster.Filled(1, 1, p)
}

func TestAdd_Saturates(t *testing.T) {
	a := single(px(200, 0, 0, 0))
	b := single(px(100, 0, 0, 0))

	got, err := Add(a, b)
	require.NoError(t, err)
	assert.Equal(t, px(255, 0, 0, 0), got.At(0, 0))

	got, err = Add(single(px(1, 2, 3, 10)), single(px(4, 5, 6, 20)))
	require.NoError(t, err)
	assert.Equal(t, px(5, 7, 9, 30), got.At(0, 0))

	got, err = Add(single(px(0, 0, 0, 200)), single(px(0, 0, 0, 100)))
	require.NoError(t, err)
	assert.Equal(t, uint8(255), got.At(0, 0).A)
}

func TestAdd_Commutative(t *testing.T) {
	a := randomGrid(1, 17, 9)
	b := randomGrid(2, 17, 9)

	ab, err := Add(a, b)
	require.NoError(t, err)
	ba, err := Add(b, a)
	require.NoError(t, err)
	assert.True(t, ab.Equal(ba))
}

func TestSubtract_SaturatesAtZero(t *testing.T) {
	a := single(px(10, 200, 50, 7))
	b := single(px(20, 100, 50, 9))

	got, err := Subtract(a, b)
	require.NoError(t, err)
	assert.Equal(t, px(0, 100, 0, 255), got.At(0, 0))
}

func TestAbsoluteDifference(t *testing.T) {
	a := single(px(10, 200, 50, 7))
	b := single(px(20, 100, 50, 9))

	got, err := AbsoluteDifference(a, b)
	require.NoError(t, err)
	assert.Equal(t, px(10, 100, 0, 255), got.At(0, 0))

	swapped, err := AbsoluteDifference(b, a)
	require.NoError(t, err)
	assert.True(t, got.Equal(swapped))
}

func TestAverage(t *testing.T) {
	a := single(px(200, 10, 0, 255))
	b := single(px(200, 21, 0, 101))

	got, err := Average(a, b)
	require.NoError(t, err)
	// 200+200 saturates to 255 before halving.
	assert.Equal(t, px(127, 15, 0, 127), got.At(0, 0))
}

func TestBlend(t *testing.T) {
	a := single(px(200, 100, 0, 255))
	b := single(px(0, 50, 100, 55))

	tests := []struct {
		name  string
		ratio float64
		want  raster.Pixel
	}{
		{"all a", 1, px(200, 100, 0, 255)},
		{"all b", 0, px(0, 50, 100, 55)},
		{"quarter", 0.25, px(50, 63, 75, 105)},
		{"clamped high", 3, px(200, 100, 0, 255)},
		{"clamped low", -1, px(0, 50, 100, 55)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Blend(a, b, tt.ratio)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.At(0, 0))
		})
	}
}

func TestTwoGridOps_DimensionMismatch(t *testing.T) {
	a := raster.New(3, 2)
	b := raster.New(2, 3)

	ops := map[string]func(a, b *raster.Grid) (*raster.Grid, error){
		"add":        Add,
		"subtract":   Subtract,
		"difference": AbsoluteDifference,
		"average":    Average,
		"blend":      func(a, b *raster.Grid) (*raster.Grid, error) { return Blend(a, b, 0.5) },
	}
	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			got, err := op(a, b)
			assert.Nil(t, got)
			assert.ErrorIs(t, err, raster.ErrDimensionMismatch)
			assert.Equal(t, name, raster.OpName(err))
		})
	}
}

func TestBlend_NaNRatio(t *testing.T) {
	a := raster.New(1, 1)
	_, err := Blend(a, a, math.NaN())
	assert.ErrorIs(t, err, raster.ErrInvalidParameter)
}

func TestScalarOps(t *testing.T) {
	g := single(px(100, 200, 3, 42))

	assert.Equal(t, px(150, 250, 53, 42), AddValue(g, 50).At(0, 0))
	assert.Equal(t, px(255, 255, 255, 42), AddValue(g, 1000).At(0, 0))
	assert.Equal(t, px(50, 150, 0, 42), SubtractValue(g, 50).At(0, 0))
	assert.Equal(t, px(150, 255, 5, 42), Multiply(g, 1.5).At(0, 0))
	assert.Equal(t, px(0, 0, 0, 42), Multiply(g, -2).At(0, 0))

	div, err := Divide(g, 4)
	require.NoError(t, err)
	assert.Equal(t, px(25, 50, 1, 42), div.At(0, 0))
}

func TestDivide_ByZero(t *testing.T) {
	for _, g := range []*raster.Grid{raster.New(0, 0), randomGrid(3, 4, 4)} {
		got, err := Divide(g, 0)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, raster.ErrDivisionByZero)
	}
}

func TestGrayscale(t *testing.T) {
	g := single(px(255, 0, 1, 9))
	assert.Equal(t, px(85, 85, 85, 9), Grayscale(g).At(0, 0))
}

func TestNegative_Involution(t *testing.T) {
	g := randomGrid(4, 13, 7)
	neg := Negative(g)
	assert.Equal(t, px(255 - g.Pix[0].R, 255 - g.Pix[0].G, 255 - g.Pix[0].B, g.Pix[0].A), neg.Pix[0])
	assert.True(t, Negative(neg).Equal(g))
}

func TestFlips(t *testing.T) {
	g, err := raster.FromRows([][]raster.Pixel{
		{px(1, 0, 0, 1), px(2, 0, 0, 2), px(3, 0, 0, 3)},
		{px(4, 0, 0, 4), px(5, 0, 0, 5), px(6, 0, 0, 6)},
	})
	require.NoError(t, err)

	lr := FlipLeftToRight(g)
	assert.Equal(t, px(3, 0, 0, 3), lr.At(0, 0))
	assert.Equal(t, px(4, 0, 0, 4), lr.At(2, 1))

	tb := FlipTopToBottom(g)
	assert.Equal(t, px(4, 0, 0, 4), tb.At(0, 0))
	assert.Equal(t, px(3, 0, 0, 3), tb.At(2, 1))
}

func TestFlips_Involution(t *testing.T) {
	g := randomGrid(5, 11, 6)
	assert.True(t, FlipLeftToRight(FlipLeftToRight(g)).Equal(g))
	assert.True(t, FlipTopToBottom(FlipTopToBottom(g)).Equal(g))
}

func TestThreshold(t *testing.T) {
	g, err := raster.FromRows([][]raster.Pixel{
		{px(127, 127, 127, 10), px(128, 128, 128, 20), px(255, 0, 125, 30)},
	})
	require.NoError(t, err)

	got := Threshold(g, DefaultThresholdLevel)
	assert.Equal(t, px(0, 0, 0, 10), got.At(0, 0))
	assert.Equal(t, px(255, 255, 255, 20), got.At(1, 0))
	assert.Equal(t, px(0, 0, 0, 30), got.At(2, 0))
	assert.NoError(t, raster.ValidateBinary(got))

	assert.Equal(t, px(255, 255, 255, 10), Threshold(g, 0).At(0, 0))
}

func TestHistogram_SinglePeak(t *testing.T) {
	g := raster.Filled(6, 4, px(128, 128, 128, 255))
	h := Histogram(g)

	for v, c := range h {
		if v == 128 {
			assert.Equal(t, 24, c)
			continue
		}
		assert.Zero(t, c, "bin %d", v)
	}
}

func TestHistogram_SumsToPixelCount(t *testing.T) {
	g := randomGrid(6, 19, 23)
	h := Histogram(g)
	assert.Equal(t, g.Len(), h.Total())
}

func TestEqualize(t *testing.T) {
	// Two levels, half the pixels each.
	g := raster.Filled(4, 2, px(10, 10, 10, 200))
	for x := 0; x < 4; x++ {
		g.Set(x, 1, px(20, 20, 20, 200))
	}

	eq := Equalize(g)
	assert.Equal(t, 4, eq.Before[10])
	assert.Equal(t, 4, eq.Before[20])

	// cdf(10)=4 -> round(255*4/8)=128, cdf(20)=8 -> 255.
	assert.Equal(t, px(128, 128, 128, 200), eq.Grid.At(0, 0))
	assert.Equal(t, px(255, 255, 255, 200), eq.Grid.At(3, 1))
	assert.Equal(t, 4, eq.After[128])
	assert.Equal(t, 4, eq.After[255])
	assert.Equal(t, g.Len(), eq.After.Total())
}

func TestEqualize_Monotonic(t *testing.T) {
	g := randomGrid(7, 16, 16)
	eq := Equalize(g)
	gray := Grayscale(g)
	for i := range gray.Pix {
		for j := range gray.Pix {
			if gray.Pix[i].R < gray.Pix[j].R {
				assert.LessOrEqual(t, eq.Grid.Pix[i].R, eq.Grid.Pix[j].R)
			}
		}
	}
}

func TestEmptyGrid(t *testing.T) {
	e := raster.New(0, 0)

	for name, got := range map[string]*raster.Grid{
		"grayscale": Grayscale(e),
		"negative":  Negative(e),
		"threshold": Threshold(e, 10),
		"flip_lr":   FlipLeftToRight(e),
		"flip_tb":   FlipTopToBottom(e),
		"add_value": AddValue(e, 3),
		"sub_value": SubtractValue(e, 3),
		"multiply":  Multiply(e, 3),
		"equalize":  Equalize(e).Grid,
	} {
		assert.True(t, got.Empty(), name)
		assert.Zero(t, got.Width, name)
		assert.Zero(t, got.Height, name)
	}

	sum, err := Add(e, e)
	require.NoError(t, err)
	assert.True(t, sum.Empty())

	div, err := Divide(e, 2)
	require.NoError(t, err)
	assert.True(t, div.Empty())

	h := Histogram(e)
	assert.Zero(t, h.Total())
}

func TestInputsNotMutated(t *testing.T) {
	a := randomGrid(8, 5, 5)
	b := randomGrid(9, 5, 5)
	ac, bc := a.Clone(), b.Clone()

	_, _ = Add(a, b)
	_, _ = Blend(a, b, 0.3)
	_ = Negative(a)
	_ = FlipLeftToRight(a)
	_ = Equalize(a)

	assert.True(t, a.Equal(ac))
	assert.True(t, b.Equal(bc))
}
