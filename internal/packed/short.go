package packed

// Short2 holds two signed 16-bit integer lanes in [-32767, 32767].
type Short2 struct {
	X, Y int16
}

func NewShort2(x, y float32) Short2 {
	return Short2{X: int16(sint(x, shortMax)), Y: int16(sint(y, shortMax))}
}

func Short2FromVector(v Vector4) Short2 {
	return NewShort2(v.X, v.Y)
}

func Short2FromSlice(s []float32) (Short2, error) {
	v, err := vectorFromSlice("Short2", s, 2)
	if err != nil {
		return Short2{}, err
	}
	return Short2FromVector(v), nil
}

func Short2FromUint32(u uint32) Short2 {
	return Short2{X: int16(u), Y: int16(u >> 16)}
}

func (s Short2) Uint32() uint32 {
	return uint32(uint16(s.X)) | uint32(uint16(s.Y))<<16
}

func (s Short2) ToVector() Vector4 {
	return Vector4{X: float32(s.X), Y: float32(s.Y)}
}

// ShortN2 holds two signed normalized 16-bit lanes. -32768 decodes to -1.
type ShortN2 struct {
	X, Y int16
}

func NewShortN2(x, y float32) ShortN2 {
	return ShortN2{X: int16(snorm(x, shortMax)), Y: int16(snorm(y, shortMax))}
}

func ShortN2FromVector(v Vector4) ShortN2 {
	return NewShortN2(v.X, v.Y)
}

func ShortN2FromSlice(s []float32) (ShortN2, error) {
	v, err := vectorFromSlice("ShortN2", s, 2)
	if err != nil {
		return ShortN2{}, err
	}
	return ShortN2FromVector(v), nil
}

func ShortN2FromUint32(u uint32) ShortN2 {
	return ShortN2{X: int16(u), Y: int16(u >> 16)}
}

func (s ShortN2) Uint32() uint32 {
	return uint32(uint16(s.X)) | uint32(uint16(s.Y))<<16
}

func (s ShortN2) ToVector() Vector4 {
	return Vector4{X: snormf(int32(s.X), shortMax), Y: snormf(int32(s.Y), shortMax)}
}

// UShort2 holds two unsigned 16-bit integer lanes.
type UShort2 struct {
	X, Y uint16
}

func NewUShort2(x, y float32) UShort2 {
	return UShort2{X: uint16(uintq(x, ushortMax)), Y: uint16(uintq(y, ushortMax))}
}

func UShort2FromVector(v Vector4) UShort2 {
	return NewUShort2(v.X, v.Y)
}

func UShort2FromSlice(s []float32) (UShort2, error) {
	v, err := vectorFromSlice("UShort2", s, 2)
	if err != nil {
		return UShort2{}, err
	}
	return UShort2FromVector(v), nil
}

func UShort2FromUint32(u uint32) UShort2 {
	return UShort2{X: uint16(u), Y: uint16(u >> 16)}
}

func (s UShort2) Uint32() uint32 {
	return uint32(s.X) | uint32(s.Y)<<16
}

func (s UShort2) ToVector() Vector4 {
	return Vector4{X: float32(s.X), Y: float32(s.Y)}
}

// UShortN2 holds two unsigned normalized 16-bit lanes.
type UShortN2 struct {
	X, Y uint16
}

func NewUShortN2(x, y float32) UShortN2 {
	return UShortN2{X: uint16(unorm(x, ushortMax)), Y: uint16(unorm(y, ushortMax))}
}

func UShortN2FromVector(v Vector4) UShortN2 {
	return NewUShortN2(v.X, v.Y)
}

func UShortN2FromSlice(s []float32) (UShortN2, error) {
	v, err := vectorFromSlice("UShortN2", s, 2)
	if err != nil {
		return UShortN2{}, err
	}
	return UShortN2FromVector(v), nil
}

func UShortN2FromUint32(u uint32) UShortN2 {
	return UShortN2{X: uint16(u), Y: uint16(u >> 16)}
}

func (s UShortN2) Uint32() uint32 {
	return uint32(s.X) | uint32(s.Y)<<16
}

func (s UShortN2) ToVector() Vector4 {
	return Vector4{X: unormf(uint32(s.X), ushortMax), Y: unormf(uint32(s.Y), ushortMax)}
}

// Short4 holds four signed 16-bit integer lanes in [-32767, 32767].
type Short4 struct {
	X, Y, Z, W int16
}

func NewShort4(x, y, z, w float32) Short4 {
	return Short4{
		X: int16(sint(x, shortMax)),
		Y: int16(sint(y, shortMax)),
		Z: int16(sint(z, shortMax)),
		W: int16(sint(w, shortMax)),
	}
}

func Short4FromVector(v Vector4) Short4 {
	return NewShort4(v.X, v.Y, v.Z, v.W)
}

func Short4FromSlice(s []float32) (Short4, error) {
	v, err := vectorFromSlice("Short4", s, 4)
	if err != nil {
		return Short4{}, err
	}
	return Short4FromVector(v), nil
}

func Short4FromUint64(u uint64) Short4 {
	return Short4{X: int16(u), Y: int16(u >> 16), Z: int16(u >> 32), W: int16(u >> 48)}
}

func (s Short4) Uint64() uint64 {
	return pack16x4(uint16(s.X), uint16(s.Y), uint16(s.Z), uint16(s.W))
}

func (s Short4) ToVector() Vector4 {
	return Vector4{X: float32(s.X), Y: float32(s.Y), Z: float32(s.Z), W: float32(s.W)}
}

// ShortN4 holds four signed normalized 16-bit lanes.
type ShortN4 struct {
	X, Y, Z, W int16
}

func NewShortN4(x, y, z, w float32) ShortN4 {
	return ShortN4{
		X: int16(snorm(x, shortMax)),
		Y: int16(snorm(y, shortMax)),
		Z: int16(snorm(z, shortMax)),
		W: int16(snorm(w, shortMax)),
	}
}

func ShortN4FromVector(v Vector4) ShortN4 {
	return NewShortN4(v.X, v.Y, v.Z, v.W)
}

func ShortN4FromSlice(s []float32) (ShortN4, error) {
	v, err := vectorFromSlice("ShortN4", s, 4)
	if err != nil {
		return ShortN4{}, err
	}
	return ShortN4FromVector(v), nil
}

func ShortN4FromUint64(u uint64) ShortN4 {
	return ShortN4{X: int16(u), Y: int16(u >> 16), Z: int16(u >> 32), W: int16(u >> 48)}
}

func (s ShortN4) Uint64() uint64 {
	return pack16x4(uint16(s.X), uint16(s.Y), uint16(s.Z), uint16(s.W))
}

func (s ShortN4) ToVector() Vector4 {
	return Vector4{
		X: snormf(int32(s.X), shortMax),
		Y: snormf(int32(s.Y), shortMax),
		Z: snormf(int32(s.Z), shortMax),
		W: snormf(int32(s.W), shortMax),
	}
}

// UShort4 holds four unsigned 16-bit integer lanes.
type UShort4 struct {
	X, Y, Z, W uint16
}

func NewUShort4(x, y, z, w float32) UShort4 {
	return UShort4{
		X: uint16(uintq(x, ushortMax)),
		Y: uint16(uintq(y, ushortMax)),
		Z: uint16(uintq(z, ushortMax)),
		W: uint16(uintq(w, ushortMax)),
	}
}

func UShort4FromVector(v Vector4) UShort4 {
	return NewUShort4(v.X, v.Y, v.Z, v.W)
}

func UShort4FromSlice(s []float32) (UShort4, error) {
	v, err := vectorFromSlice("UShort4", s, 4)
	if err != nil {
		return UShort4{}, err
	}
	return UShort4FromVector(v), nil
}

func UShort4FromUint64(u uint64) UShort4 {
	return UShort4{X: uint16(u), Y: uint16(u >> 16), Z: uint16(u >> 32), W: uint16(u >> 48)}
}

func (s UShort4) Uint64() uint64 {
	return pack16x4(s.X, s.Y, s.Z, s.W)
}

func (s UShort4) ToVector() Vector4 {
	return Vector4{X: float32(s.X), Y: float32(s.Y), Z: float32(s.Z), W: float32(s.W)}
}

// UShortN4 holds four unsigned normalized 16-bit lanes.
type UShortN4 struct {
	X, Y, Z, W uint16
}

func NewUShortN4(x, y, z, w float32) UShortN4 {
	return UShortN4{
		X: uint16(unorm(x, ushortMax)),
		Y: uint16(unorm(y, ushortMax)),
		Z: uint16(unorm(z, ushortMax)),
		W: uint16(unorm(w, ushortMax)),
	}
}

func UShortN4FromVector(v Vector4) UShortN4 {
	return NewUShortN4(v.X, v.Y, v.Z, v.W)
}

func UShortN4FromSlice(s []float32) (UShortN4, error) {
	v, err := vectorFromSlice("UShortN4", s, 4)
	if err != nil {
		return UShortN4{}, err
	}
	return UShortN4FromVector(v), nil
}

func UShortN4FromUint64(u uint64) UShortN4 {
	return UShortN4{X: uint16(u), Y: uint16(u >> 16), Z: uint16(u >> 32), W: uint16(u >> 48)}
}

func (s UShortN4) Uint64() uint64 {
	return pack16x4(s.X, s.Y, s.Z, s.W)
}

func (s UShortN4) ToVector() Vector4 {
	return Vector4{
		X: unormf(uint32(s.X), ushortMax),
		Y: unormf(uint32(s.Y), ushortMax),
		Z: unormf(uint32(s.Z), ushortMax),
		W: unormf(uint32(s.W), ushortMax),
	}
}

func pack16x4(x, y, z, w uint16) uint64 {
	return uint64(x) | uint64(y)<<16 | uint64(z)<<32 | uint64(w)<<48
}
