package packed

import "math"

// Half is an IEEE 754 binary16 value.
type Half uint16

// Half bit patterns used by the codec.
const (
	HalfPositiveInfinity Half = 0x7C00
	HalfNegativeInfinity Half = 0xFC00
	HalfMax              Half = 0x7BFF
)

// HalfFromFloat32 converts f to binary16 with round-to-nearest-even.
// Magnitudes of 2^16 and above become infinity, magnitudes of 2^-25 and
// below become signed zero, and NaN keeps the top of its payload with the
// quiet bit set.
func HalfFromFloat32(f float32) Half {
	i := math.Float32bits(f)
	sign := (i & 0x80000000) >> 16
	i &= 0x7FFFFFFF

	var r uint32
	switch {
	case i >= 0x47800000:
		r = 0x7C00
		if i > 0x7F800000 {
			r |= 0x200 | (i>>13)&0x3FF
		}
	case i <= 0x33000000:
		r = 0
	case i < 0x38800000:
		// Below the smallest normal: shift the mantissa, implicit bit
		// included, into denormal position and round with a sticky bit.
		shift := 125 - i>>23
		i = 0x800000 | i&0x7FFFFF
		r = i >> (shift + 1)
		var sticky uint32
		if i&(uint32(1)<<shift-1) != 0 {
			sticky = 1
		}
		r += (r | sticky) & (i >> shift & 1)
	default:
		// Rebias 127 -> 15, then round on the 13 dropped bits.
		i += 0xC8000000
		r = (i + 0x0FFF + (i>>13)&1) >> 13 & 0x7FFF
	}
	return Half(r | sign)
}

// Float32 converts h to float32. The conversion is exact.
func (h Half) Float32() float32 {
	sign := uint32(h&0x8000) << 16
	exp := int32(h>>10) & 0x1F
	mant := uint32(h) & 0x3FF

	switch {
	case exp == 0x1F:
		return math.Float32frombits(sign | 0x7F800000 | mant<<13)
	case exp != 0:
	case mant != 0:
		// Denormal: normalize until the implicit bit appears.
		exp = 1
		for {
			exp--
			mant <<= 1
			if mant&0x400 != 0 {
				break
			}
		}
		mant &= 0x3FF
	default:
		return math.Float32frombits(sign)
	}
	return math.Float32frombits(sign | uint32(exp+112)<<23 | mant<<13)
}

// IsNaN reports whether h is a NaN pattern.
func (h Half) IsNaN() bool {
	return h&0x7C00 == 0x7C00 && h&0x3FF != 0
}

// IsInf reports whether h is an infinity with the given sign, following
// math.IsInf.
func (h Half) IsInf(sign int) bool {
	return sign >= 0 && h == HalfPositiveInfinity || sign <= 0 && h == HalfNegativeInfinity
}

// HalfsFromFloat32s converts src into dst, which must be at least as long.
func HalfsFromFloat32s(dst []Half, src []float32) {
	for i, f := range src {
		dst[i] = HalfFromFloat32(f)
	}
}

// Float32sFromHalfs converts src into dst, which must be at least as long.
func Float32sFromHalfs(dst []float32, src []Half) {
	for i, h := range src {
		dst[i] = h.Float32()
	}
}

// Half2 packs two half-precision lanes.
type Half2 struct {
	X, Y Half
}

func NewHalf2(x, y float32) Half2 {
	return Half2{X: HalfFromFloat32(x), Y: HalfFromFloat32(y)}
}

func Half2FromVector(v Vector4) Half2 {
	return NewHalf2(v.X, v.Y)
}

func Half2FromSlice(s []float32) (Half2, error) {
	v, err := vectorFromSlice("Half2", s, 2)
	if err != nil {
		return Half2{}, err
	}
	return Half2FromVector(v), nil
}

func Half2FromUint32(u uint32) Half2 {
	return Half2{X: Half(u), Y: Half(u >> 16)}
}

func (h Half2) Uint32() uint32 {
	return uint32(h.X) | uint32(h.Y)<<16
}

func (h Half2) ToVector() Vector4 {
	return Vector4{X: h.X.Float32(), Y: h.Y.Float32()}
}

// Half4 packs four half-precision lanes.
type Half4 struct {
	X, Y, Z, W Half
}

func NewHalf4(x, y, z, w float32) Half4 {
	return Half4{
		X: HalfFromFloat32(x),
		Y: HalfFromFloat32(y),
		Z: HalfFromFloat32(z),
		W: HalfFromFloat32(w),
	}
}

func Half4FromVector(v Vector4) Half4 {
	return NewHalf4(v.X, v.Y, v.Z, v.W)
}

func Half4FromSlice(s []float32) (Half4, error) {
	v, err := vectorFromSlice("Half4", s, 4)
	if err != nil {
		return Half4{}, err
	}
	return Half4FromVector(v), nil
}

func Half4FromUint64(u uint64) Half4 {
	return Half4{X: Half(u), Y: Half(u >> 16), Z: Half(u >> 32), W: Half(u >> 48)}
}

func (h Half4) Uint64() uint64 {
	return uint64(h.X) | uint64(h.Y)<<16 | uint64(h.Z)<<32 | uint64(h.W)<<48
}

func (h Half4) ToVector() Vector4 {
	return Vector4{X: h.X.Float32(), Y: h.Y.Float32(), Z: h.Z.Float32(), W: h.W.Float32()}
}
