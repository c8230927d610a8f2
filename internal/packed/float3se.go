package packed

import "math"

// Float3SE packs three 9-bit mantissas sharing one 5-bit exponent
// (R9G9B9E5_SHAREDEXP). Components are unsigned.
type Float3SE uint32

const (
	// Largest encodable component, 511 * 2^(31-15-9).
	maxF9 = float32(0x1FF << 7)
	// Smallest exponent the encoder will pick.
	minF9 = float32(1.0 / (1 << 16))
)

func NewFloat3SE(x, y, z float32) Float3SE {
	x = clamp(x, 0, maxF9)
	y = clamp(y, 0, maxF9)
	z = clamp(z, 0, maxF9)

	maxColor := max(x, y, z, minF9)

	// Round the largest component to 9 significant bits so its mantissa
	// never overflows, then derive the shared exponent from it.
	bits := math.Float32bits(maxColor) + 0x4000
	exp := bits >> 23
	scale := math.Float32frombits(0x83000000 - exp<<23)

	xm := uint32(roundEven(x * scale))
	ym := uint32(roundEven(y * scale))
	zm := uint32(roundEven(z * scale))
	return Float3SE(xm | ym<<9 | zm<<18 | (exp-0x6F)<<27)
}

func Float3SEFromVector(v Vector4) Float3SE {
	return NewFloat3SE(v.X, v.Y, v.Z)
}

func Float3SEFromSlice(s []float32) (Float3SE, error) {
	v, err := vectorFromSlice("Float3SE", s, 3)
	if err != nil {
		return 0, err
	}
	return Float3SEFromVector(v), nil
}

func (f Float3SE) XM() uint32 { return field(uint32(f), 0, 9) }
func (f Float3SE) YM() uint32 { return field(uint32(f), 9, 9) }
func (f Float3SE) ZM() uint32 { return field(uint32(f), 18, 9) }
func (f Float3SE) E() uint32  { return field(uint32(f), 27, 5) }

func (f *Float3SE) SetXM(m uint32) { *f = Float3SE(setField(uint32(*f), m, 0, 9)) }
func (f *Float3SE) SetYM(m uint32) { *f = Float3SE(setField(uint32(*f), m, 9, 9)) }
func (f *Float3SE) SetZM(m uint32) { *f = Float3SE(setField(uint32(*f), m, 18, 9)) }
func (f *Float3SE) SetE(e uint32)  { *f = Float3SE(setField(uint32(*f), e, 27, 5)) }

// ToVector expands the mantissas by 2^(E-24). W is always 1.
func (f Float3SE) ToVector() Vector4 {
	scale := math.Float32frombits(0x33800000 + f.E()<<23)
	return Vector4{
		X: scale * float32(f.XM()),
		Y: scale * float32(f.YM()),
		Z: scale * float32(f.ZM()),
		W: 1,
	}
}
