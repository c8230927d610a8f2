package packed

// Byte2 holds two signed 8-bit integer lanes in [-127, 127].
type Byte2 struct {
	X, Y int8
}

func NewByte2(x, y float32) Byte2 {
	return Byte2{X: int8(sint(x, byteMax)), Y: int8(sint(y, byteMax))}
}

func Byte2FromVector(v Vector4) Byte2 {
	return NewByte2(v.X, v.Y)
}

func Byte2FromSlice(s []float32) (Byte2, error) {
	v, err := vectorFromSlice("Byte2", s, 2)
	if err != nil {
		return Byte2{}, err
	}
	return Byte2FromVector(v), nil
}

func Byte2FromUint16(u uint16) Byte2 {
	return Byte2{X: int8(u), Y: int8(u >> 8)}
}

func (b Byte2) Uint16() uint16 {
	return uint16(uint8(b.X)) | uint16(uint8(b.Y))<<8
}

func (b Byte2) ToVector() Vector4 {
	return Vector4{X: float32(b.X), Y: float32(b.Y)}
}

// ByteN2 holds two signed normalized 8-bit lanes.
type ByteN2 struct {
	X, Y int8
}

func NewByteN2(x, y float32) ByteN2 {
	return ByteN2{X: int8(snorm(x, byteMax)), Y: int8(snorm(y, byteMax))}
}

func ByteN2FromVector(v Vector4) ByteN2 {
	return NewByteN2(v.X, v.Y)
}

func ByteN2FromSlice(s []float32) (ByteN2, error) {
	v, err := vectorFromSlice("ByteN2", s, 2)
	if err != nil {
		return ByteN2{}, err
	}
	return ByteN2FromVector(v), nil
}

func ByteN2FromUint16(u uint16) ByteN2 {
	return ByteN2{X: int8(u), Y: int8(u >> 8)}
}

func (b ByteN2) Uint16() uint16 {
	return uint16(uint8(b.X)) | uint16(uint8(b.Y))<<8
}

func (b ByteN2) ToVector() Vector4 {
	return Vector4{X: snormf(int32(b.X), byteMax), Y: snormf(int32(b.Y), byteMax)}
}

// UByte2 holds two unsigned 8-bit integer lanes.
type UByte2 struct {
	X, Y uint8
}

func NewUByte2(x, y float32) UByte2 {
	return UByte2{X: uint8(uintq(x, ubyteMax)), Y: uint8(uintq(y, ubyteMax))}
}

func UByte2FromVector(v Vector4) UByte2 {
	return NewUByte2(v.X, v.Y)
}

func UByte2FromSlice(s []float32) (UByte2, error) {
	v, err := vectorFromSlice("UByte2", s, 2)
	if err != nil {
		return UByte2{}, err
	}
	return UByte2FromVector(v), nil
}

func UByte2FromUint16(u uint16) UByte2 {
	return UByte2{X: uint8(u), Y: uint8(u >> 8)}
}

func (b UByte2) Uint16() uint16 {
	return uint16(b.X) | uint16(b.Y)<<8
}

func (b UByte2) ToVector() Vector4 {
	return Vector4{X: float32(b.X), Y: float32(b.Y)}
}

// UByteN2 holds two unsigned normalized 8-bit lanes.
type UByteN2 struct {
	X, Y uint8
}

func NewUByteN2(x, y float32) UByteN2 {
	return UByteN2{X: uint8(unorm(x, ubyteMax)), Y: uint8(unorm(y, ubyteMax))}
}

func UByteN2FromVector(v Vector4) UByteN2 {
	return NewUByteN2(v.X, v.Y)
}

func UByteN2FromSlice(s []float32) (UByteN2, error) {
	v, err := vectorFromSlice("UByteN2", s, 2)
	if err != nil {
		return UByteN2{}, err
	}
	return UByteN2FromVector(v), nil
}

func UByteN2FromUint16(u uint16) UByteN2 {
	return UByteN2{X: uint8(u), Y: uint8(u >> 8)}
}

func (b UByteN2) Uint16() uint16 {
	return uint16(b.X) | uint16(b.Y)<<8
}

func (b UByteN2) ToVector() Vector4 {
	return Vector4{X: unormf(uint32(b.X), ubyteMax), Y: unormf(uint32(b.Y), ubyteMax)}
}

// Byte4 holds four signed 8-bit integer lanes in [-127, 127].
type Byte4 struct {
	X, Y, Z, W int8
}

func NewByte4(x, y, z, w float32) Byte4 {
	return Byte4{
		X: int8(sint(x, byteMax)),
		Y: int8(sint(y, byteMax)),
		Z: int8(sint(z, byteMax)),
		W: int8(sint(w, byteMax)),
	}
}

func Byte4FromVector(v Vector4) Byte4 {
	return NewByte4(v.X, v.Y, v.Z, v.W)
}

func Byte4FromSlice(s []float32) (Byte4, error) {
	v, err := vectorFromSlice("Byte4", s, 4)
	if err != nil {
		return Byte4{}, err
	}
	return Byte4FromVector(v), nil
}

func Byte4FromUint32(u uint32) Byte4 {
	return Byte4{X: int8(u), Y: int8(u >> 8), Z: int8(u >> 16), W: int8(u >> 24)}
}

func (b Byte4) Uint32() uint32 {
	return pack8x4(uint8(b.X), uint8(b.Y), uint8(b.Z), uint8(b.W))
}

func (b Byte4) ToVector() Vector4 {
	return Vector4{X: float32(b.X), Y: float32(b.Y), Z: float32(b.Z), W: float32(b.W)}
}

// ByteN4 holds four signed normalized 8-bit lanes. -128 decodes to -1.
type ByteN4 struct {
	X, Y, Z, W int8
}

func NewByteN4(x, y, z, w float32) ByteN4 {
	return ByteN4{
		X: int8(snorm(x, byteMax)),
		Y: int8(snorm(y, byteMax)),
		Z: int8(snorm(z, byteMax)),
		W: int8(snorm(w, byteMax)),
	}
}

func ByteN4FromVector(v Vector4) ByteN4 {
	return NewByteN4(v.X, v.Y, v.Z, v.W)
}

func ByteN4FromSlice(s []float32) (ByteN4, error) {
	v, err := vectorFromSlice("ByteN4", s, 4)
	if err != nil {
		return ByteN4{}, err
	}
	return ByteN4FromVector(v), nil
}

func ByteN4FromUint32(u uint32) ByteN4 {
	return ByteN4{X: int8(u), Y: int8(u >> 8), Z: int8(u >> 16), W: int8(u >> 24)}
}

func (b ByteN4) Uint32() uint32 {
	return pack8x4(uint8(b.X), uint8(b.Y), uint8(b.Z), uint8(b.W))
}

func (b ByteN4) ToVector() Vector4 {
	return Vector4{
		X: snormf(int32(b.X), byteMax),
		Y: snormf(int32(b.Y), byteMax),
		Z: snormf(int32(b.Z), byteMax),
		W: snormf(int32(b.W), byteMax),
	}
}

// UByte4 holds four unsigned 8-bit integer lanes.
type UByte4 struct {
	X, Y, Z, W uint8
}

func NewUByte4(x, y, z, w float32) UByte4 {
	return UByte4{
		X: uint8(uintq(x, ubyteMax)),
		Y: uint8(uintq(y, ubyteMax)),
		Z: uint8(uintq(z, ubyteMax)),
		W: uint8(uintq(w, ubyteMax)),
	}
}

func UByte4FromVector(v Vector4) UByte4 {
	return NewUByte4(v.X, v.Y, v.Z, v.W)
}

func UByte4FromSlice(s []float32) (UByte4, error) {
	v, err := vectorFromSlice("UByte4", s, 4)
	if err != nil {
		return UByte4{}, err
	}
	return UByte4FromVector(v), nil
}

func UByte4FromUint32(u uint32) UByte4 {
	return UByte4{X: uint8(u), Y: uint8(u >> 8), Z: uint8(u >> 16), W: uint8(u >> 24)}
}

func (b UByte4) Uint32() uint32 {
	return pack8x4(b.X, b.Y, b.Z, b.W)
}

func (b UByte4) ToVector() Vector4 {
	return Vector4{X: float32(b.X), Y: float32(b.Y), Z: float32(b.Z), W: float32(b.W)}
}

// UByteN4 holds four unsigned normalized 8-bit lanes, RGBA order.
type UByteN4 struct {
	X, Y, Z, W uint8
}

func NewUByteN4(x, y, z, w float32) UByteN4 {
	return UByteN4{
		X: uint8(unorm(x, ubyteMax)),
		Y: uint8(unorm(y, ubyteMax)),
		Z: uint8(unorm(z, ubyteMax)),
		W: uint8(unorm(w, ubyteMax)),
	}
}

func UByteN4FromVector(v Vector4) UByteN4 {
	return NewUByteN4(v.X, v.Y, v.Z, v.W)
}

func UByteN4FromSlice(s []float32) (UByteN4, error) {
	v, err := vectorFromSlice("UByteN4", s, 4)
	if err != nil {
		return UByteN4{}, err
	}
	return UByteN4FromVector(v), nil
}

func UByteN4FromUint32(u uint32) UByteN4 {
	return UByteN4{X: uint8(u), Y: uint8(u >> 8), Z: uint8(u >> 16), W: uint8(u >> 24)}
}

func (b UByteN4) Uint32() uint32 {
	return pack8x4(b.X, b.Y, b.Z, b.W)
}

func (b UByteN4) ToVector() Vector4 {
	return Vector4{
		X: unormf(uint32(b.X), ubyteMax),
		Y: unormf(uint32(b.Y), ubyteMax),
		Z: unormf(uint32(b.Z), ubyteMax),
		W: unormf(uint32(b.W), ubyteMax),
	}
}

func pack8x4(x, y, z, w uint8) uint32 {
	return uint32(x) | uint32(y)<<8 | uint32(z)<<16 | uint32(w)<<24
}
