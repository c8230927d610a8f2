package packed

import "math"

// Float3PK packs three unsigned reduced-precision floats (R11G11B10_FLOAT):
// X and Y have a 6-bit mantissa, Z a 5-bit mantissa, all with a 5-bit
// exponent and no sign bit.
type Float3PK uint32

const (
	pkMantXY = 6
	pkMantZ  = 5
)

func NewFloat3PK(x, y, z float32) Float3PK {
	return Float3PK(packSmallFloat(x, pkMantXY) |
		packSmallFloat(y, pkMantXY)<<11 |
		packSmallFloat(z, pkMantZ)<<22)
}

func Float3PKFromVector(v Vector4) Float3PK {
	return NewFloat3PK(v.X, v.Y, v.Z)
}

func Float3PKFromSlice(s []float32) (Float3PK, error) {
	v, err := vectorFromSlice("Float3PK", s, 3)
	if err != nil {
		return 0, err
	}
	return Float3PKFromVector(v), nil
}

// Raw channel accessors.
func (f Float3PK) X() uint32 { return field(uint32(f), 0, 11) }
func (f Float3PK) Y() uint32 { return field(uint32(f), 11, 11) }
func (f Float3PK) Z() uint32 { return field(uint32(f), 22, 10) }

func (f Float3PK) XM() uint32 { return field(uint32(f), 0, 6) }
func (f Float3PK) XE() uint32 { return field(uint32(f), 6, 5) }
func (f Float3PK) YM() uint32 { return field(uint32(f), 11, 6) }
func (f Float3PK) YE() uint32 { return field(uint32(f), 17, 5) }
func (f Float3PK) ZM() uint32 { return field(uint32(f), 22, 5) }
func (f Float3PK) ZE() uint32 { return field(uint32(f), 27, 5) }

func (f *Float3PK) SetX(x uint32) { *f = Float3PK(setField(uint32(*f), x, 0, 11)) }
func (f *Float3PK) SetY(y uint32) { *f = Float3PK(setField(uint32(*f), y, 11, 11)) }
func (f *Float3PK) SetZ(z uint32) { *f = Float3PK(setField(uint32(*f), z, 22, 10)) }

func (f Float3PK) ToVector() Vector4 {
	return Vector4{
		X: unpackSmallFloat(f.X(), pkMantXY),
		Y: unpackSmallFloat(f.Y(), pkMantXY),
		Z: unpackSmallFloat(f.Z(), pkMantZ),
	}
}

// packSmallFloat encodes f as an unsigned float with a 5-bit exponent and
// an mbits-wide mantissa. Negative values and -Inf clamp to zero, finite
// values above the largest representable saturate to it, and NaN becomes
// the all-ones pattern.
func packSmallFloat(f float32, mbits uint) uint32 {
	shift := 23 - mbits
	mmask := uint32(1)<<mbits - 1
	inf := uint32(0x1F) << mbits

	i := math.Float32bits(f)
	sign := i & 0x80000000
	i &= 0x7FFFFFFF

	switch {
	case i&0x7F800000 == 0x7F800000:
		if i&0x7FFFFF != 0 {
			return inf | mmask
		}
		if sign != 0 {
			return 0
		}
		return inf
	case sign != 0 || i < (113-uint32(mbits))<<23:
		// Negative, or below the smallest denormal.
		return 0
	case i > 0x47000000|mmask<<shift:
		return inf - 1
	case i < 0x38800000:
		i = (0x800000 | i&0x7FFFFF) >> (113 - i>>23)
	default:
		i += 0xC8000000
	}
	return (i + (uint32(1)<<(shift-1) - 1) + (i>>shift)&1) >> shift & (inf | mmask)
}

func unpackSmallFloat(v uint32, mbits uint) float32 {
	mmask := uint32(1)<<mbits - 1
	mant := v & mmask
	exp := int32(v>>mbits) & 0x1F

	switch {
	case exp == 0x1F:
		return math.Float32frombits(0x7F800000 | mant<<(23-mbits))
	case exp != 0:
	case mant != 0:
		exp = 1
		for {
			exp--
			mant <<= 1
			if mant&^mmask != 0 {
				break
			}
		}
		mant &= mmask
	default:
		return 0
	}
	return math.Float32frombits(uint32(exp+112)<<23 | mant<<(23-mbits))
}
