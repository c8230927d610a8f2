package packed

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	for _, name := range []string{"ubyten4", "UByteN4", "ubyte_n4", "UBYTE-N4", " ubyte n4"} {
		c, err := Lookup(name)
		require.NoError(t, err, name)
		assert.Equal(t, "ubyten4", c.Name())
	}

	_, err := Lookup("float7")
	assert.ErrorIs(t, err, ErrUnknownFormat)
	assert.Contains(t, err.Error(), "float7")

	assert.Panics(t, func() { MustLookup("nope") })
	assert.NotPanics(t, func() { MustLookup("Half4") })
}

func TestFormatsSorted(t *testing.T) {
	all := Formats()
	require.Len(t, all, 32)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].Name(), all[i].Name())
	}
}

func TestCodecSizes(t *testing.T) {
	want := map[string][2]int{
		"half":     {2, 1},
		"half2":    {4, 2},
		"half4":    {8, 4},
		"byten2":   {2, 2},
		"ubyten4":  {4, 4},
		"short2":   {4, 2},
		"ushortn4": {8, 4},
		"u565":     {2, 3},
		"unibble4": {2, 4},
		"color":    {4, 4},
		"xdecn4":   {4, 4},
		"float3pk": {4, 3},
		"float3se": {4, 3},
	}
	for name, sz := range want {
		c := MustLookup(name)
		assert.Equal(t, sz[0], c.Size(), name)
		assert.Equal(t, sz[1], c.Components(), name)
	}
}

func TestCodecLittleEndian(t *testing.T) {
	buf := make([]byte, 4)
	MustLookup("ubyten4").Encode(buf, NewVector4(1, 0.5, 0, 1))
	assert.Equal(t, []byte{0xFF, 0x80, 0x00, 0xFF}, buf)

	buf = make([]byte, 8)
	MustLookup("ushort4").Encode(buf, NewVector4(1, 2, 0x1234, 4))
	assert.Equal(t, []byte{1, 0, 2, 0, 0x34, 0x12, 4, 0}, buf)

	buf = make([]byte, 2)
	MustLookup("half").Encode(buf, Vector4{X: 1})
	assert.Equal(t, []byte{0x00, 0x3C}, buf)
}

func TestCodecEncodeStaysInBounds(t *testing.T) {
	for _, c := range Formats() {
		buf := make([]byte, c.Size()+4)
		for i := range buf {
			buf[i] = 0xAA
		}
		c.Encode(buf, NewVector4(0.5, 0.25, 0.125, 1))
		assert.Equal(t, []byte{0xAA, 0xAA, 0xAA, 0xAA}, buf[c.Size():], c.Name())
	}
}

func TestCodecRoundTrip(t *testing.T) {
	unit := NewVector4(0.25, 0.5, 0.75, 1)
	signed := NewVector4(0.25, -0.5, 0.75, -1)
	ints := NewVector4(1, 2, 3, 1)

	tests := []struct {
		name string
		in   Vector4
		tol  float64
	}{
		{"half", signed, 0},
		{"half2", signed, 0},
		{"half4", signed, 0},
		{"byte2", ints, 0},
		{"byten2", signed, 0.5 / 127},
		{"ubyte2", ints, 0},
		{"ubyten2", unit, 0.5 / 255},
		{"byte4", ints, 0},
		{"byten4", signed, 0.5 / 127},
		{"ubyte4", ints, 0},
		{"ubyten4", unit, 0.5 / 255},
		{"short2", ints, 0},
		{"shortn2", signed, 0.5 / 32767},
		{"ushort2", ints, 0},
		{"ushortn2", unit, 0.5 / 65535},
		{"short4", ints, 0},
		{"shortn4", signed, 0.5 / 32767},
		{"ushort4", ints, 0},
		{"ushortn4", unit, 0.5 / 65535},
		{"u555", ints, 0},
		{"u565", ints, 0},
		{"unibble4", ints, 0},
		{"color", unit, 0.5 / 255},
		{"udecn4", unit, 0.5 / 1023},
		{"udecn4xr", unit, 0.5 / 510},
		{"udec4", ints, 0},
		{"decn4", signed, 0.5 / 511},
		{"dec4", ints, 0},
		{"xdecn4", NewVector4(0.25, -0.5, 0.75, 1), 0.5 / 511},
		{"xdec4", ints, 0},
		{"float3pk", unit, 0},
		{"float3se", unit, 0},
	}
	require.Len(t, tests, len(Formats()))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := MustLookup(tt.name)
			buf := make([]byte, c.Size())
			c.Encode(buf, tt.in)
			got := c.Decode(buf)

			n := c.Components()
			opt := cmpopts.EquateApprox(0, tt.tol+1e-7)
			if diff := cmp.Diff(tt.in.Slice(n), got.Slice(n), opt); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}

			again := make([]byte, c.Size())
			c.Encode(again, got)
			assert.Equal(t, buf, again, "decode then encode is stable")
		})
	}
}

func BenchmarkCodecEncode(b *testing.B) {
	c := MustLookup("ubyten4")
	buf := make([]byte, c.Size())
	v := NewVector4(0.1, 0.2, 0.3, 0.4)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Encode(buf, v)
	}
}
