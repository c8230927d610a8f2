// Package packed converts between full-precision float vectors and the
// compact bit-packed formats consumed by GPU vertex and texture pipelines.
//
// Every format is a small value type holding one packed word. Conversions
// are explicit: XxxFromVector quantizes a Vector4 and ToVector expands it
// again. Packed words use the canonical little-endian lane order, X in the
// lowest bits.
//
// No conversion fails. Inputs outside a lane's range are clamped or
// saturated; only slice constructors validate their argument length.
//
//	c := packed.NewUByteN4(1, 0.5, 0, 1)
//	word := c.Uint32()                 // 0xFF0080FF
//	v := packed.UByteN4FromUint32(word).ToVector()
package packed
