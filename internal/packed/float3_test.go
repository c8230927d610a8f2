package packed

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloat3PKSpecials(t *testing.T) {
	inf := float32(math.Inf(1))
	nan := float32(math.NaN())

	tests := []struct {
		name   string
		in     float32
		wantXY uint32
		wantZ  uint32
	}{
		{"one", 1, 0x3C0, 0x1E0},
		{"zero", 0, 0, 0},
		{"negative", -1, 0, 0},
		{"negative infinity", -inf, 0, 0},
		{"positive infinity", inf, 0x7C0, 0x3E0},
		{"nan", nan, 0x7FF, 0x3FF},
		{"overflow saturates", 1e10, 0x7BF, 0x3DF},
		{"below smallest denormal", 1e-9, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFloat3PK(tt.in, tt.in, tt.in)
			assert.Equal(t, tt.wantXY, f.X())
			assert.Equal(t, tt.wantXY, f.Y())
			assert.Equal(t, tt.wantZ, f.Z())
		})
	}
}

func TestFloat3PKDecode(t *testing.T) {
	f := NewFloat3PK(1, 2, 0.5)
	assert.Equal(t, Vector4{X: 1, Y: 2, Z: 0.5}, f.ToVector())

	assert.Equal(t, uint32(15), f.XE())
	assert.Equal(t, uint32(0), f.XM())
	assert.Equal(t, uint32(16), f.YE())
	assert.Equal(t, uint32(14), f.ZE())
	assert.Equal(t, uint32(0), f.ZM())

	top := Float3PK(0x7BF | 0x7BF<<11 | 0x3DF<<22).ToVector()
	assert.Equal(t, float32(65024), top.X)
	assert.Equal(t, float32(65024), top.Y)
	assert.Equal(t, float32(64512), top.Z)

	specials := Float3PK(0x7C0 | 0x7C1<<11).ToVector()
	assert.True(t, math.IsInf(float64(specials.X), 1))
	assert.True(t, math.IsNaN(float64(specials.Y)))
	assert.Equal(t, float32(0), specials.Z)

	denorm := Float3PK(1 | 1<<22).ToVector()
	assert.Equal(t, float32(math.Ldexp(1, -20)), denorm.X)
	assert.Equal(t, float32(math.Ldexp(1, -19)), denorm.Z)
}

func TestFloat3PKRoundTripExhaustive(t *testing.T) {
	for p := uint32(0); p < 0x7C0; p++ {
		v := unpackSmallFloat(p, pkMantXY)
		require.Equal(t, p, packSmallFloat(v, pkMantXY), "xy pattern %#x (%g)", p, v)
	}
	for p := uint32(0); p < 0x3E0; p++ {
		v := unpackSmallFloat(p, pkMantZ)
		require.Equal(t, p, packSmallFloat(v, pkMantZ), "z pattern %#x (%g)", p, v)
	}
}

func TestFloat3PKRoundsToNearestEven(t *testing.T) {
	// 1 + 1/128 is halfway between 1 and 1 + 1/64.
	assert.Equal(t, uint32(0x3C0), packSmallFloat(1+1.0/128, pkMantXY))
	assert.Equal(t, uint32(0x3C2), packSmallFloat(1+3.0/128, pkMantXY))
	assert.Equal(t, uint32(0x3C1), packSmallFloat(1+1.0/64+1.0/512, pkMantXY))
}

func TestFloat3PKSetters(t *testing.T) {
	f := NewFloat3PK(1, 1, 1)
	f.SetY(0)
	assert.Equal(t, uint32(0x3C0), f.X())
	assert.Equal(t, uint32(0), f.Y())
	assert.Equal(t, uint32(0x1E0), f.Z())
	f.SetZ(0x3FF)
	assert.Equal(t, uint32(0x3C0), f.X())
	assert.Equal(t, uint32(0x3FF), f.Z())
	f.SetX(0)
	assert.Equal(t, Float3PK(0x3FF<<22), f)
}

func TestFloat3SE(t *testing.T) {
	zero := NewFloat3SE(0, 0, 0)
	assert.Equal(t, Float3SE(0), zero)
	assert.Equal(t, Vector4{W: 1}, zero.ToVector())

	one := NewFloat3SE(1, 1, 1)
	assert.Equal(t, uint32(16), one.E())
	assert.Equal(t, uint32(256), one.XM())
	assert.Equal(t, Vector4{X: 1, Y: 1, Z: 1, W: 1}, one.ToVector())

	mixed := NewFloat3SE(0.25, 0.5, 0.75)
	assert.Equal(t, Vector4{X: 0.25, Y: 0.5, Z: 0.75, W: 1}, mixed.ToVector())

	big := NewFloat3SE(1e9, 0, 0)
	assert.Equal(t, uint32(31), big.E())
	assert.Equal(t, uint32(511), big.XM())
	assert.Equal(t, float32(65408), big.ToVector().X)

	neg := NewFloat3SE(-4, float32(math.NaN()), 2)
	assert.Equal(t, uint32(0), neg.XM())
	assert.Equal(t, uint32(0), neg.YM())
	assert.Equal(t, float32(2), neg.ToVector().Z)
}

func TestFloat3SESharedExponentPrecision(t *testing.T) {
	// The small component loses bits to the shared exponent.
	f := NewFloat3SE(1000, 1, 0)
	v := f.ToVector()
	assert.InDelta(t, 1000, v.X, 1)
	assert.InDelta(t, 1, v.Y, 2)
	assert.LessOrEqual(t, f.XM(), uint32(511))
}

func TestFloat3SESetters(t *testing.T) {
	var f Float3SE
	f.SetE(15)
	f.SetXM(256)
	f.SetZM(511)
	assert.Equal(t, uint32(15), f.E())
	assert.Equal(t, uint32(256), f.XM())
	assert.Equal(t, uint32(0), f.YM())
	assert.Equal(t, uint32(511), f.ZM())
	assert.Equal(t, float32(0.5), f.ToVector().X)
}
