package packed

// 10:10:10:2 layout, X in the low bits.
const (
	decShiftX = 0
	decShiftY = 10
	decShiftZ = 20
	decShiftW = 30
	decWidth  = 10
	decWidthW = 2
)

func packDec(x, y, z, w uint32) uint32 {
	return x&0x3FF | (y&0x3FF)<<decShiftY | (z&0x3FF)<<decShiftZ | (w&0x3)<<decShiftW
}

// decU holds the accessors shared by the 10:10:10:2 formats with unsigned lanes.
type decU uint32

func (d decU) X() uint32 { return field(uint32(d), decShiftX, decWidth) }
func (d decU) Y() uint32 { return field(uint32(d), decShiftY, decWidth) }
func (d decU) Z() uint32 { return field(uint32(d), decShiftZ, decWidth) }
func (d decU) W() uint32 { return field(uint32(d), decShiftW, decWidthW) }

// UDecN4 packs three 10-bit and one 2-bit unsigned normalized lanes
// (R10G10B10A2_UNORM).
type UDecN4 uint32

func NewUDecN4(x, y, z, w float32) UDecN4 {
	return UDecN4(packDec(unorm(x, udec10Max), unorm(y, udec10Max), unorm(z, udec10Max), unorm(w, udec2Max)))
}

func UDecN4FromVector(v Vector4) UDecN4 {
	return NewUDecN4(v.X, v.Y, v.Z, v.W)
}

func UDecN4FromSlice(s []float32) (UDecN4, error) {
	v, err := vectorFromSlice("UDecN4", s, 4)
	if err != nil {
		return 0, err
	}
	return UDecN4FromVector(v), nil
}

func (u UDecN4) X() uint32 { return decU(u).X() }
func (u UDecN4) Y() uint32 { return decU(u).Y() }
func (u UDecN4) Z() uint32 { return decU(u).Z() }
func (u UDecN4) W() uint32 { return decU(u).W() }

func (u *UDecN4) SetX(x uint32) { *u = UDecN4(setField(uint32(*u), x, decShiftX, decWidth)) }
func (u *UDecN4) SetY(y uint32) { *u = UDecN4(setField(uint32(*u), y, decShiftY, decWidth)) }
func (u *UDecN4) SetZ(z uint32) { *u = UDecN4(setField(uint32(*u), z, decShiftZ, decWidth)) }
func (u *UDecN4) SetW(w uint32) { *u = UDecN4(setField(uint32(*u), w, decShiftW, decWidthW)) }

func (u UDecN4) ToVector() Vector4 {
	return Vector4{
		X: unormf(u.X(), udec10Max),
		Y: unormf(u.Y(), udec10Max),
		Z: unormf(u.Z(), udec10Max),
		W: unormf(u.W(), udec2Max),
	}
}

// XR (extended range) bias for UDecN4XR: stored = v*510 + 384.
const (
	xrScale = 510
	xrBias  = 384
)

// UDecN4XR is the R10G10B10_XR_BIAS_A2 display format: RGB carry a
// fixed-point bias covering roughly [-0.7529, 1.2529], W is unsigned
// normalized.
type UDecN4XR uint32

func NewUDecN4XR(x, y, z, w float32) UDecN4XR {
	return UDecN4XR(packDec(xr(x), xr(y), xr(z), unorm(w, udec2Max)))
}

func xr(v float32) uint32 {
	return uint32(clamp(float32(v*xrScale)+xrBias, 0, udec10Max) + 0.5)
}

func xrf(lane uint32) float32 {
	return (float32(lane) - xrBias) / xrScale
}

func UDecN4XRFromVector(v Vector4) UDecN4XR {
	return NewUDecN4XR(v.X, v.Y, v.Z, v.W)
}

func UDecN4XRFromSlice(s []float32) (UDecN4XR, error) {
	v, err := vectorFromSlice("UDecN4XR", s, 4)
	if err != nil {
		return 0, err
	}
	return UDecN4XRFromVector(v), nil
}

func (u UDecN4XR) X() uint32 { return decU(u).X() }
func (u UDecN4XR) Y() uint32 { return decU(u).Y() }
func (u UDecN4XR) Z() uint32 { return decU(u).Z() }
func (u UDecN4XR) W() uint32 { return decU(u).W() }

func (u *UDecN4XR) SetX(x uint32) { *u = UDecN4XR(setField(uint32(*u), x, decShiftX, decWidth)) }
func (u *UDecN4XR) SetY(y uint32) { *u = UDecN4XR(setField(uint32(*u), y, decShiftY, decWidth)) }
func (u *UDecN4XR) SetZ(z uint32) { *u = UDecN4XR(setField(uint32(*u), z, decShiftZ, decWidth)) }
func (u *UDecN4XR) SetW(w uint32) { *u = UDecN4XR(setField(uint32(*u), w, decShiftW, decWidthW)) }

func (u UDecN4XR) ToVector() Vector4 {
	return Vector4{X: xrf(u.X()), Y: xrf(u.Y()), Z: xrf(u.Z()), W: unormf(u.W(), udec2Max)}
}

// UDec4 packs three 10-bit and one 2-bit unsigned integer lanes.
type UDec4 uint32

func NewUDec4(x, y, z, w float32) UDec4 {
	return UDec4(packDec(uintq(x, udec10Max), uintq(y, udec10Max), uintq(z, udec10Max), uintq(w, udec2Max)))
}

func UDec4FromVector(v Vector4) UDec4 {
	return NewUDec4(v.X, v.Y, v.Z, v.W)
}

func UDec4FromSlice(s []float32) (UDec4, error) {
	v, err := vectorFromSlice("UDec4", s, 4)
	if err != nil {
		return 0, err
	}
	return UDec4FromVector(v), nil
}

func (u UDec4) X() uint32 { return decU(u).X() }
func (u UDec4) Y() uint32 { return decU(u).Y() }
func (u UDec4) Z() uint32 { return decU(u).Z() }
func (u UDec4) W() uint32 { return decU(u).W() }

func (u *UDec4) SetX(x uint32) { *u = UDec4(setField(uint32(*u), x, decShiftX, decWidth)) }
func (u *UDec4) SetY(y uint32) { *u = UDec4(setField(uint32(*u), y, decShiftY, decWidth)) }
func (u *UDec4) SetZ(z uint32) { *u = UDec4(setField(uint32(*u), z, decShiftZ, decWidth)) }
func (u *UDec4) SetW(w uint32) { *u = UDec4(setField(uint32(*u), w, decShiftW, decWidthW)) }

func (u UDec4) ToVector() Vector4 {
	return Vector4{X: float32(u.X()), Y: float32(u.Y()), Z: float32(u.Z()), W: float32(u.W())}
}

// DecN4 packs three 10-bit and one 2-bit signed normalized lanes.
// The most negative value of each lane decodes to -1.
type DecN4 uint32

func NewDecN4(x, y, z, w float32) DecN4 {
	return DecN4(packDec(
		uint32(snorm(x, dec10Max)),
		uint32(snorm(y, dec10Max)),
		uint32(snorm(z, dec10Max)),
		uint32(snorm(w, 1)),
	))
}

func DecN4FromVector(v Vector4) DecN4 {
	return NewDecN4(v.X, v.Y, v.Z, v.W)
}

func DecN4FromSlice(s []float32) (DecN4, error) {
	v, err := vectorFromSlice("DecN4", s, 4)
	if err != nil {
		return 0, err
	}
	return DecN4FromVector(v), nil
}

func (d DecN4) X() int32 { return sfield(uint32(d), decShiftX, decWidth) }
func (d DecN4) Y() int32 { return sfield(uint32(d), decShiftY, decWidth) }
func (d DecN4) Z() int32 { return sfield(uint32(d), decShiftZ, decWidth) }
func (d DecN4) W() int32 { return sfield(uint32(d), decShiftW, decWidthW) }

func (d *DecN4) SetX(x int32) { *d = DecN4(setField(uint32(*d), uint32(x), decShiftX, decWidth)) }
func (d *DecN4) SetY(y int32) { *d = DecN4(setField(uint32(*d), uint32(y), decShiftY, decWidth)) }
func (d *DecN4) SetZ(z int32) { *d = DecN4(setField(uint32(*d), uint32(z), decShiftZ, decWidth)) }
func (d *DecN4) SetW(w int32) { *d = DecN4(setField(uint32(*d), uint32(w), decShiftW, decWidthW)) }

func (d DecN4) ToVector() Vector4 {
	return Vector4{
		X: snormf(d.X(), dec10Max),
		Y: snormf(d.Y(), dec10Max),
		Z: snormf(d.Z(), dec10Max),
		W: snormf(d.W(), 1),
	}
}

// Dec4 packs three 10-bit and one 2-bit signed integer lanes.
type Dec4 uint32

func NewDec4(x, y, z, w float32) Dec4 {
	return Dec4(packDec(
		uint32(sint(x, dec10Max)),
		uint32(sint(y, dec10Max)),
		uint32(sint(z, dec10Max)),
		uint32(sint(w, 1)),
	))
}

func Dec4FromVector(v Vector4) Dec4 {
	return NewDec4(v.X, v.Y, v.Z, v.W)
}

func Dec4FromSlice(s []float32) (Dec4, error) {
	v, err := vectorFromSlice("Dec4", s, 4)
	if err != nil {
		return 0, err
	}
	return Dec4FromVector(v), nil
}

func (d Dec4) X() int32 { return sfield(uint32(d), decShiftX, decWidth) }
func (d Dec4) Y() int32 { return sfield(uint32(d), decShiftY, decWidth) }
func (d Dec4) Z() int32 { return sfield(uint32(d), decShiftZ, decWidth) }
func (d Dec4) W() int32 { return sfield(uint32(d), decShiftW, decWidthW) }

func (d *Dec4) SetX(x int32) { *d = Dec4(setField(uint32(*d), uint32(x), decShiftX, decWidth)) }
func (d *Dec4) SetY(y int32) { *d = Dec4(setField(uint32(*d), uint32(y), decShiftY, decWidth)) }
func (d *Dec4) SetZ(z int32) { *d = Dec4(setField(uint32(*d), uint32(z), decShiftZ, decWidth)) }
func (d *Dec4) SetW(w int32) { *d = Dec4(setField(uint32(*d), uint32(w), decShiftW, decWidthW)) }

func (d Dec4) ToVector() Vector4 {
	return Vector4{X: float32(d.X()), Y: float32(d.Y()), Z: float32(d.Z()), W: float32(d.W())}
}

// XDecN4 packs three signed normalized 10-bit lanes and an unsigned
// normalized 2-bit W.
type XDecN4 uint32

func NewXDecN4(x, y, z, w float32) XDecN4 {
	return XDecN4(packDec(
		uint32(snorm(x, dec10Max)),
		uint32(snorm(y, dec10Max)),
		uint32(snorm(z, dec10Max)),
		unorm(w, udec2Max),
	))
}

func XDecN4FromVector(v Vector4) XDecN4 {
	return NewXDecN4(v.X, v.Y, v.Z, v.W)
}

func XDecN4FromSlice(s []float32) (XDecN4, error) {
	v, err := vectorFromSlice("XDecN4", s, 4)
	if err != nil {
		return 0, err
	}
	return XDecN4FromVector(v), nil
}

func (d XDecN4) X() int32  { return sfield(uint32(d), decShiftX, decWidth) }
func (d XDecN4) Y() int32  { return sfield(uint32(d), decShiftY, decWidth) }
func (d XDecN4) Z() int32  { return sfield(uint32(d), decShiftZ, decWidth) }
func (d XDecN4) W() uint32 { return field(uint32(d), decShiftW, decWidthW) }

func (d *XDecN4) SetX(x int32)  { *d = XDecN4(setField(uint32(*d), uint32(x), decShiftX, decWidth)) }
func (d *XDecN4) SetY(y int32)  { *d = XDecN4(setField(uint32(*d), uint32(y), decShiftY, decWidth)) }
func (d *XDecN4) SetZ(z int32)  { *d = XDecN4(setField(uint32(*d), uint32(z), decShiftZ, decWidth)) }
func (d *XDecN4) SetW(w uint32) { *d = XDecN4(setField(uint32(*d), w, decShiftW, decWidthW)) }

func (d XDecN4) ToVector() Vector4 {
	return Vector4{
		X: snormf(d.X(), dec10Max),
		Y: snormf(d.Y(), dec10Max),
		Z: snormf(d.Z(), dec10Max),
		W: unormf(d.W(), udec2Max),
	}
}

// XDec4 packs three signed 10-bit integer lanes and an unsigned 2-bit W.
type XDec4 uint32

func NewXDec4(x, y, z, w float32) XDec4 {
	return XDec4(packDec(
		uint32(sint(x, dec10Max)),
		uint32(sint(y, dec10Max)),
		uint32(sint(z, dec10Max)),
		uintq(w, udec2Max),
	))
}

func XDec4FromVector(v Vector4) XDec4 {
	return NewXDec4(v.X, v.Y, v.Z, v.W)
}

func XDec4FromSlice(s []float32) (XDec4, error) {
	v, err := vectorFromSlice("XDec4", s, 4)
	if err != nil {
		return 0, err
	}
	return XDec4FromVector(v), nil
}

func (d XDec4) X() int32  { return sfield(uint32(d), decShiftX, decWidth) }
func (d XDec4) Y() int32  { return sfield(uint32(d), decShiftY, decWidth) }
func (d XDec4) Z() int32  { return sfield(uint32(d), decShiftZ, decWidth) }
func (d XDec4) W() uint32 { return field(uint32(d), decShiftW, decWidthW) }

func (d *XDec4) SetX(x int32)  { *d = XDec4(setField(uint32(*d), uint32(x), decShiftX, decWidth)) }
func (d *XDec4) SetY(y int32)  { *d = XDec4(setField(uint32(*d), uint32(y), decShiftY, decWidth)) }
func (d *XDec4) SetZ(z int32)  { *d = XDec4(setField(uint32(*d), uint32(z), decShiftZ, decWidth)) }
func (d *XDec4) SetW(w uint32) { *d = XDec4(setField(uint32(*d), w, decShiftW, decWidthW)) }

func (d XDec4) ToVector() Vector4 {
	return Vector4{X: float32(d.X()), Y: float32(d.Y()), Z: float32(d.Z()), W: float32(d.W())}
}
