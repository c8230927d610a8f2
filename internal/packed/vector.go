package packed

// Vector4 is the full-precision side of every conversion.
// Formats with fewer than four lanes ignore the trailing components on
// encode and leave them zero on decode.
type Vector4 struct {
	X, Y, Z, W float32
}

// NewVector4 returns a Vector4 from its components.
func NewVector4(x, y, z, w float32) Vector4 {
	return Vector4{X: x, Y: y, Z: z, W: w}
}

// Slice returns the first n components, n in [0, 4].
func (v Vector4) Slice(n int) []float32 {
	all := [4]float32{v.X, v.Y, v.Z, v.W}
	return append([]float32(nil), all[:n]...)
}

// Vector4FromSlice copies up to four components from s.
func Vector4FromSlice(s []float32) Vector4 {
	var all [4]float32
	copy(all[:], s)
	return Vector4{X: all[0], Y: all[1], Z: all[2], W: all[3]}
}

// vectorFromSlice validates the component count before any packing happens.
func vectorFromSlice(typ string, s []float32, n int) (Vector4, error) {
	if err := checkLen(typ, len(s), n); err != nil {
		return Vector4{}, err
	}
	return Vector4FromSlice(s), nil
}
