package simd

import "github.com/23skdu/longbow-packvec/internal/packed"

// EncodeHalfs converts src to binary16 bit patterns in dst.
// dst must be at least len(src) long.
func EncodeHalfs(dst []uint16, src []float32) {
	dst = dst[:len(src)]
	// Unrolled loop for better pipelining
	i := 0
	for ; i <= len(src)-4; i += 4 {
		dst[i] = uint16(packed.HalfFromFloat32(src[i]))
		dst[i+1] = uint16(packed.HalfFromFloat32(src[i+1]))
		dst[i+2] = uint16(packed.HalfFromFloat32(src[i+2]))
		dst[i+3] = uint16(packed.HalfFromFloat32(src[i+3]))
	}
	// Handle remainder
	for ; i < len(src); i++ {
		dst[i] = uint16(packed.HalfFromFloat32(src[i]))
	}
}

// DecodeHalfs expands binary16 bit patterns in src into dst.
func DecodeHalfs(dst []float32, src []uint16) {
	dst = dst[:len(src)]
	i := 0
	for ; i <= len(src)-4; i += 4 {
		dst[i] = packed.Half(src[i]).Float32()
		dst[i+1] = packed.Half(src[i+1]).Float32()
		dst[i+2] = packed.Half(src[i+2]).Float32()
		dst[i+3] = packed.Half(src[i+3]).Float32()
	}
	for ; i < len(src); i++ {
		dst[i] = packed.Half(src[i]).Float32()
	}
}

func clamp(v, lo, hi float32) float32 {
	if !(v > lo) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp limits every element of dst to [lo, hi] in place. NaN becomes lo.
func Clamp(dst []float32, lo, hi float32) {
	i := 0
	for ; i <= len(dst)-4; i += 4 {
		dst[i] = clamp(dst[i], lo, hi)
		dst[i+1] = clamp(dst[i+1], lo, hi)
		dst[i+2] = clamp(dst[i+2], lo, hi)
		dst[i+3] = clamp(dst[i+3], lo, hi)
	}
	for ; i < len(dst); i++ {
		dst[i] = clamp(dst[i], lo, hi)
	}
}

// Saturate clamps dst to [0, 1] in place.
func Saturate(dst []float32) {
	Clamp(dst, 0, 1)
}

// MaxAbs returns the largest magnitude in src, ignoring NaN.
// An empty slice returns 0.
func MaxAbs(src []float32) float32 {
	var m0, m1, m2, m3 float32
	i := 0
	for ; i <= len(src)-4; i += 4 {
		m0 = maxAbs(m0, src[i])
		m1 = maxAbs(m1, src[i+1])
		m2 = maxAbs(m2, src[i+2])
		m3 = maxAbs(m3, src[i+3])
	}
	for ; i < len(src); i++ {
		m0 = maxAbs(m0, src[i])
	}
	return max(m0, m1, m2, m3)
}

func maxAbs(m, v float32) float32 {
	if v < 0 {
		v = -v
	}
	if v > m {
		return v
	}
	return m
}
