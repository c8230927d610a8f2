package packed

// U555 packs three 5-bit unsigned integer lanes and a 1-bit W
// (B5G5R5A1 bit layout, X lowest).
type U555 uint16

func NewU555(x, y, z, w float32) U555 {
	return U555(uintq(x, 31) | uintq(y, 31)<<5 | uintq(z, 31)<<10 | uintq(w, 1)<<15)
}

func U555FromVector(v Vector4) U555 {
	return NewU555(v.X, v.Y, v.Z, v.W)
}

func U555FromSlice(s []float32) (U555, error) {
	v, err := vectorFromSlice("U555", s, 4)
	if err != nil {
		return 0, err
	}
	return U555FromVector(v), nil
}

func (u U555) X() uint32 { return field(uint32(u), 0, 5) }
func (u U555) Y() uint32 { return field(uint32(u), 5, 5) }
func (u U555) Z() uint32 { return field(uint32(u), 10, 5) }
func (u U555) W() uint32 { return field(uint32(u), 15, 1) }

func (u *U555) SetX(x uint32) { *u = U555(setField(uint32(*u), x, 0, 5)) }
func (u *U555) SetY(y uint32) { *u = U555(setField(uint32(*u), y, 5, 5)) }
func (u *U555) SetZ(z uint32) { *u = U555(setField(uint32(*u), z, 10, 5)) }
func (u *U555) SetW(w uint32) { *u = U555(setField(uint32(*u), w, 15, 1)) }

func (u U555) ToVector() Vector4 {
	return Vector4{X: float32(u.X()), Y: float32(u.Y()), Z: float32(u.Z()), W: float32(u.W())}
}

// U565 packs 5:6:5 unsigned integer lanes.
type U565 uint16

func NewU565(x, y, z float32) U565 {
	return U565(uintq(x, 31) | uintq(y, 63)<<5 | uintq(z, 31)<<11)
}

func U565FromVector(v Vector4) U565 {
	return NewU565(v.X, v.Y, v.Z)
}

func U565FromSlice(s []float32) (U565, error) {
	v, err := vectorFromSlice("U565", s, 3)
	if err != nil {
		return 0, err
	}
	return U565FromVector(v), nil
}

func (u U565) X() uint32 { return field(uint32(u), 0, 5) }
func (u U565) Y() uint32 { return field(uint32(u), 5, 6) }
func (u U565) Z() uint32 { return field(uint32(u), 11, 5) }

func (u *U565) SetX(x uint32) { *u = U565(setField(uint32(*u), x, 0, 5)) }
func (u *U565) SetY(y uint32) { *u = U565(setField(uint32(*u), y, 5, 6)) }
func (u *U565) SetZ(z uint32) { *u = U565(setField(uint32(*u), z, 11, 5)) }

func (u U565) ToVector() Vector4 {
	return Vector4{X: float32(u.X()), Y: float32(u.Y()), Z: float32(u.Z())}
}

// UNibble4 packs four 4-bit unsigned integer lanes.
type UNibble4 uint16

func NewUNibble4(x, y, z, w float32) UNibble4 {
	return UNibble4(uintq(x, 15) | uintq(y, 15)<<4 | uintq(z, 15)<<8 | uintq(w, 15)<<12)
}

func UNibble4FromVector(v Vector4) UNibble4 {
	return NewUNibble4(v.X, v.Y, v.Z, v.W)
}

func UNibble4FromSlice(s []float32) (UNibble4, error) {
	v, err := vectorFromSlice("UNibble4", s, 4)
	if err != nil {
		return 0, err
	}
	return UNibble4FromVector(v), nil
}

func (u UNibble4) X() uint32 { return field(uint32(u), 0, 4) }
func (u UNibble4) Y() uint32 { return field(uint32(u), 4, 4) }
func (u UNibble4) Z() uint32 { return field(uint32(u), 8, 4) }
func (u UNibble4) W() uint32 { return field(uint32(u), 12, 4) }

func (u *UNibble4) SetX(x uint32) { *u = UNibble4(setField(uint32(*u), x, 0, 4)) }
func (u *UNibble4) SetY(y uint32) { *u = UNibble4(setField(uint32(*u), y, 4, 4)) }
func (u *UNibble4) SetZ(z uint32) { *u = UNibble4(setField(uint32(*u), z, 8, 4)) }
func (u *UNibble4) SetW(w uint32) { *u = UNibble4(setField(uint32(*u), w, 12, 4)) }

func (u UNibble4) ToVector() Vector4 {
	return Vector4{X: float32(u.X()), Y: float32(u.Y()), Z: float32(u.Z()), W: float32(u.W())}
}

// Color is a 32-bit BGRA (D3DCOLOR) value. Vector conversions use RGBA
// component order: X is red, W is alpha.
type Color uint32

func NewColor(r, g, b, a float32) Color {
	return Color(unorm(b, ubyteMax) | unorm(g, ubyteMax)<<8 | unorm(r, ubyteMax)<<16 | unorm(a, ubyteMax)<<24)
}

func ColorFromVector(v Vector4) Color {
	return NewColor(v.X, v.Y, v.Z, v.W)
}

func ColorFromSlice(s []float32) (Color, error) {
	v, err := vectorFromSlice("Color", s, 4)
	if err != nil {
		return 0, err
	}
	return ColorFromVector(v), nil
}

func (c Color) B() uint8 { return uint8(c) }
func (c Color) G() uint8 { return uint8(c >> 8) }
func (c Color) R() uint8 { return uint8(c >> 16) }
func (c Color) A() uint8 { return uint8(c >> 24) }

func (c *Color) SetB(b uint8) { *c = Color(setField(uint32(*c), uint32(b), 0, 8)) }
func (c *Color) SetG(g uint8) { *c = Color(setField(uint32(*c), uint32(g), 8, 8)) }
func (c *Color) SetR(r uint8) { *c = Color(setField(uint32(*c), uint32(r), 16, 8)) }
func (c *Color) SetA(a uint8) { *c = Color(setField(uint32(*c), uint32(a), 24, 8)) }

func (c Color) ToVector() Vector4 {
	return Vector4{
		X: unormf(uint32(c.R()), ubyteMax),
		Y: unormf(uint32(c.G()), ubyteMax),
		Z: unormf(uint32(c.B()), ubyteMax),
		W: unormf(uint32(c.A()), ubyteMax),
	}
}
