package packed

import (
	"encoding/binary"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// Codec encodes one vector into a fixed number of little-endian bytes.
type Codec interface {
	// Name is the canonical lower-case format name.
	Name() string
	// Size is the number of bytes per packed element.
	Size() int
	// Components is the number of vector components the format carries.
	Components() int
	// Encode packs v into dst[:Size()].
	Encode(dst []byte, v Vector4)
	// Decode expands src[:Size()].
	Decode(src []byte) Vector4
}

type codec struct {
	name       string
	size       int
	components int
	encode     func(dst []byte, v Vector4)
	decode     func(src []byte) Vector4
}

func (c *codec) Name() string                 { return c.name }
func (c *codec) Size() int                    { return c.size }
func (c *codec) Components() int              { return c.components }
func (c *codec) Encode(dst []byte, v Vector4) { c.encode(dst, v) }
func (c *codec) Decode(src []byte) Vector4    { return c.decode(src) }

func word16[T any](name string, n int, from func(Vector4) T, pack func(T) uint16, unpack func(uint16) T, to func(T) Vector4) *codec {
	return &codec{
		name:       name,
		size:       2,
		components: n,
		encode:     func(dst []byte, v Vector4) { binary.LittleEndian.PutUint16(dst, pack(from(v))) },
		decode:     func(src []byte) Vector4 { return to(unpack(binary.LittleEndian.Uint16(src))) },
	}
}

func word32[T any](name string, n int, from func(Vector4) T, pack func(T) uint32, unpack func(uint32) T, to func(T) Vector4) *codec {
	return &codec{
		name:       name,
		size:       4,
		components: n,
		encode:     func(dst []byte, v Vector4) { binary.LittleEndian.PutUint32(dst, pack(from(v))) },
		decode:     func(src []byte) Vector4 { return to(unpack(binary.LittleEndian.Uint32(src))) },
	}
}

func word64[T any](name string, n int, from func(Vector4) T, pack func(T) uint64, unpack func(uint64) T, to func(T) Vector4) *codec {
	return &codec{
		name:       name,
		size:       8,
		components: n,
		encode:     func(dst []byte, v Vector4) { binary.LittleEndian.PutUint64(dst, pack(from(v))) },
		decode:     func(src []byte) Vector4 { return to(unpack(binary.LittleEndian.Uint64(src))) },
	}
}

// bits16 and bits32 adapt the packed-word types whose underlying type is
// the word itself.
func bits16[T ~uint16](name string, n int, from func(Vector4) T, to func(T) Vector4) *codec {
	return word16(name, n, from, func(t T) uint16 { return uint16(t) }, func(u uint16) T { return T(u) }, to)
}

func bits32[T ~uint32](name string, n int, from func(Vector4) T, to func(T) Vector4) *codec {
	return word32(name, n, from, func(t T) uint32 { return uint32(t) }, func(u uint32) T { return T(u) }, to)
}

var registry = func() map[string]Codec {
	all := []*codec{
		bits16("half", 1,
			func(v Vector4) Half { return HalfFromFloat32(v.X) },
			func(h Half) Vector4 { return Vector4{X: h.Float32()} }),
		word32("half2", 2, Half2FromVector, Half2.Uint32, Half2FromUint32, Half2.ToVector),
		word64("half4", 4, Half4FromVector, Half4.Uint64, Half4FromUint64, Half4.ToVector),

		word16("byte2", 2, Byte2FromVector, Byte2.Uint16, Byte2FromUint16, Byte2.ToVector),
		word16("byten2", 2, ByteN2FromVector, ByteN2.Uint16, ByteN2FromUint16, ByteN2.ToVector),
		word16("ubyte2", 2, UByte2FromVector, UByte2.Uint16, UByte2FromUint16, UByte2.ToVector),
		word16("ubyten2", 2, UByteN2FromVector, UByteN2.Uint16, UByteN2FromUint16, UByteN2.ToVector),
		word32("byte4", 4, Byte4FromVector, Byte4.Uint32, Byte4FromUint32, Byte4.ToVector),
		word32("byten4", 4, ByteN4FromVector, ByteN4.Uint32, ByteN4FromUint32, ByteN4.ToVector),
		word32("ubyte4", 4, UByte4FromVector, UByte4.Uint32, UByte4FromUint32, UByte4.ToVector),
		word32("ubyten4", 4, UByteN4FromVector, UByteN4.Uint32, UByteN4FromUint32, UByteN4.ToVector),

		word32("short2", 2, Short2FromVector, Short2.Uint32, Short2FromUint32, Short2.ToVector),
		word32("shortn2", 2, ShortN2FromVector, ShortN2.Uint32, ShortN2FromUint32, ShortN2.ToVector),
		word32("ushort2", 2, UShort2FromVector, UShort2.Uint32, UShort2FromUint32, UShort2.ToVector),
		word32("ushortn2", 2, UShortN2FromVector, UShortN2.Uint32, UShortN2FromUint32, UShortN2.ToVector),
		word64("short4", 4, Short4FromVector, Short4.Uint64, Short4FromUint64, Short4.ToVector),
		word64("shortn4", 4, ShortN4FromVector, ShortN4.Uint64, ShortN4FromUint64, ShortN4.ToVector),
		word64("ushort4", 4, UShort4FromVector, UShort4.Uint64, UShort4FromUint64, UShort4.ToVector),
		word64("ushortn4", 4, UShortN4FromVector, UShortN4.Uint64, UShortN4FromUint64, UShortN4.ToVector),

		bits16("u555", 4, U555FromVector, U555.ToVector),
		bits16("u565", 3, U565FromVector, U565.ToVector),
		bits16("unibble4", 4, UNibble4FromVector, UNibble4.ToVector),
		bits32("color", 4, ColorFromVector, Color.ToVector),

		bits32("udecn4", 4, UDecN4FromVector, UDecN4.ToVector),
		bits32("udecn4xr", 4, UDecN4XRFromVector, UDecN4XR.ToVector),
		bits32("udec4", 4, UDec4FromVector, UDec4.ToVector),
		bits32("decn4", 4, DecN4FromVector, DecN4.ToVector),
		bits32("dec4", 4, Dec4FromVector, Dec4.ToVector),
		bits32("xdecn4", 4, XDecN4FromVector, XDecN4.ToVector),
		bits32("xdec4", 4, XDec4FromVector, XDec4.ToVector),

		bits32("float3pk", 3, Float3PKFromVector, Float3PK.ToVector),
		bits32("float3se", 3, Float3SEFromVector, Float3SE.ToVector),
	}
	m := make(map[string]Codec, len(all))
	for _, c := range all {
		m[c.name] = c
	}
	return m
}()

var nameSeparators = strings.NewReplacer("_", "", "-", "", " ", "")

// Lookup returns the codec for a format name. Matching ignores case,
// underscores, dashes and spaces, so "UByteN4", "ubyte_n4" and "ubyten4"
// are the same format.
func Lookup(name string) (Codec, error) {
	key := nameSeparators.Replace(cases.Fold().String(name))
	c, ok := registry[key]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownFormat)
	}
	return c, nil
}

// MustLookup is Lookup for names known at compile time.
func MustLookup(name string) Codec {
	c, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return c
}

// Formats returns every registered codec sorted by name.
func Formats() []Codec {
	out := make([]Codec, 0, len(registry))
	for _, c := range registry {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}
