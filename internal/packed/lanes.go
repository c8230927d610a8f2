package packed

import "math"

// Lane maxima for the integer formats.
const (
	byteMax   = 127
	ubyteMax  = 255
	shortMax  = 32767
	ushortMax = 65535

	dec10Max  = 511
	udec10Max = 1023
	udec2Max  = 3
)

// clamp limits v to [lo, hi]. NaN maps to lo.
func clamp(v, lo, hi float32) float32 {
	if !(v > lo) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func saturate(v float32) float32 {
	return clamp(v, 0, 1)
}

// roundEven rounds half to even, like the reference vector round.
func roundEven(v float32) float32 {
	return float32(math.RoundToEven(float64(v)))
}

// snorm quantizes v to a signed normalized lane in [-limit, limit].
func snorm(v, limit float32) int32 {
	return int32(roundEven(clamp(v, -1, 1) * limit))
}

// snormf expands a signed normalized lane. The most negative two's
// complement value decodes to exactly -1.
func snormf(lane int32, limit float32) float32 {
	return max(float32(lane)/limit, -1)
}

// unorm quantizes v to an unsigned normalized lane with add-then-truncate
// rounding. The explicit conversion keeps the multiply from being fused.
func unorm(v, limit float32) uint32 {
	return uint32(float32(saturate(v)*limit) + 0.5)
}

func unormf(lane uint32, limit float32) float32 {
	return float32(lane) / limit
}

// sint quantizes v to a signed integer lane in [-limit, limit].
func sint(v, limit float32) int32 {
	return int32(roundEven(clamp(v, -limit, limit)))
}

// uintq quantizes v to an unsigned integer lane in [0, limit].
func uintq(v, limit float32) uint32 {
	return uint32(roundEven(clamp(v, 0, limit)))
}

// field extracts width bits of w starting at shift.
func field(w uint32, shift, width uint) uint32 {
	return w >> shift & (uint32(1)<<width - 1)
}

// sfield extracts a sign-extended two's complement field.
func sfield(w uint32, shift, width uint) int32 {
	return int32(w<<(32-shift-width)) >> (32 - width)
}

// setField replaces one field, leaving every other bit of w untouched.
func setField(w, v uint32, shift, width uint) uint32 {
	mask := uint32(1)<<width - 1
	return w&^(mask<<shift) | (v&mask)<<shift
}
