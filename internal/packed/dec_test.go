package packed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecSignExtension(t *testing.T) {
	d := DecN4(0x3FF | 0x1FF<<10 | 0x200<<20 | 3<<30)
	assert.Equal(t, int32(-1), d.X())
	assert.Equal(t, int32(511), d.Y())
	assert.Equal(t, int32(-512), d.Z())
	assert.Equal(t, int32(-1), d.W())

	x := XDec4(0x3FF | 3<<30)
	assert.Equal(t, int32(-1), x.X())
	assert.Equal(t, uint32(3), x.W(), "W of the X formats is unsigned")
}

func TestDecSettersAreIndependent(t *testing.T) {
	var d Dec4
	d.SetX(-5)
	d.SetY(200)
	d.SetZ(-511)
	d.SetW(-1)
	assert.Equal(t, int32(-5), d.X())
	assert.Equal(t, int32(200), d.Y())
	assert.Equal(t, int32(-511), d.Z())
	assert.Equal(t, int32(-1), d.W())

	d.SetY(0)
	assert.Equal(t, int32(-5), d.X())
	assert.Equal(t, int32(0), d.Y())
	assert.Equal(t, int32(-511), d.Z())
	assert.Equal(t, int32(-1), d.W())

	u := UDecN4(0xFFFFFFFF)
	u.SetZ(0)
	assert.Equal(t, uint32(1023), u.X())
	assert.Equal(t, uint32(1023), u.Y())
	assert.Equal(t, uint32(0), u.Z())
	assert.Equal(t, uint32(3), u.W())

	u.SetX(0x7FF)
	assert.Equal(t, uint32(0x3FF), u.X(), "setter masks to the field width")
	assert.Equal(t, uint32(1023), u.Y())
}

func TestDecConstructors(t *testing.T) {
	assert.Equal(t, UDecN4(0xFFFFFFFF), NewUDecN4(1, 1, 1, 1))
	assert.Equal(t, UDecN4(0), NewUDecN4(-1, -1, -1, -1))

	d := NewDec4(-600, 600, 3, -2)
	assert.Equal(t, Vector4{X: -511, Y: 511, Z: 3, W: -1}, d.ToVector())

	u := NewUDec4(2000, 7.5, 0, 9)
	assert.Equal(t, Vector4{X: 1023, Y: 8, Z: 0, W: 3}, u.ToVector())

	x := NewXDec4(-3, 4, 511, 2)
	assert.Equal(t, Vector4{X: -3, Y: 4, Z: 511, W: 2}, x.ToVector())

	n := NewDecN4(1, -1, 0, 1)
	assert.Equal(t, int32(511), n.X())
	assert.Equal(t, int32(-511), n.Y())
	assert.Equal(t, int32(1), n.W())
	assert.Equal(t, Vector4{X: 1, Y: -1, Z: 0, W: 1}, n.ToVector())

	xn := NewXDecN4(0.5, -0.5, 1, 1)
	assert.Equal(t, uint32(3), xn.W())
	got := xn.ToVector()
	assert.InDelta(t, 0.5, got.X, 1.0/511)
	assert.InDelta(t, -0.5, got.Y, 1.0/511)
	assert.Equal(t, float32(1), got.Z)
	assert.Equal(t, float32(1), got.W)
}

func TestUDecN4XR(t *testing.T) {
	u := NewUDecN4XR(0, 1, -1, 1)
	assert.Equal(t, uint32(384), u.X())
	assert.Equal(t, uint32(894), u.Y())
	assert.Equal(t, uint32(0), u.Z(), "below the XR range clamps to zero")
	assert.Equal(t, uint32(3), u.W())

	v := u.ToVector()
	assert.Equal(t, float32(0), v.X)
	assert.Equal(t, float32(1), v.Y)
	assert.InDelta(t, -384.0/510, v.Z, 1e-6)
	assert.Equal(t, float32(1), v.W)

	hi := NewUDecN4XR(2, 0, 0, 0)
	assert.Equal(t, uint32(1023), hi.X())
	assert.InDelta(t, 639.0/510, hi.ToVector().X, 1e-6)

	var s UDecN4XR
	s.SetY(512)
	s.SetW(1)
	assert.Equal(t, uint32(0), s.X())
	assert.Equal(t, uint32(512), s.Y())
	assert.Equal(t, uint32(1), s.W())
}

func TestSmallFormats(t *testing.T) {
	assert.Equal(t, U555(0x8001), NewU555(1, 0, 0, 1))
	assert.Equal(t, U555(0xFFFF), NewU555(40, 40, 40, 5))
	assert.Equal(t, U565(0x1841), NewU565(1, 2, 3))
	assert.Equal(t, U565(0xFFFF), NewU565(31, 63, 31))
	assert.Equal(t, Vector4{X: 31, Y: 63, Z: 31}, U565(0xFFFF).ToVector())
	assert.Equal(t, UNibble4(0x4321), NewUNibble4(1, 2, 3, 4))
	assert.Equal(t, Vector4{X: 1, Y: 2, Z: 3, W: 4}, UNibble4(0x4321).ToVector())

	u := U555(0)
	u.SetZ(31)
	u.SetW(1)
	assert.Equal(t, Vector4{Z: 31, W: 1}, u.ToVector())

	r := U565(0xFFFF)
	r.SetY(0)
	assert.Equal(t, uint32(31), r.X())
	assert.Equal(t, uint32(0), r.Y())
	assert.Equal(t, uint32(31), r.Z())

	n := UNibble4(0)
	n.SetW(15)
	n.SetX(0x1F)
	assert.Equal(t, UNibble4(0xF00F), n)
}

func TestColor(t *testing.T) {
	c := NewColor(1, 0.5, 0, 1)
	assert.Equal(t, Color(0xFFFF8000), c)
	assert.Equal(t, uint8(255), c.R())
	assert.Equal(t, uint8(128), c.G())
	assert.Equal(t, uint8(0), c.B())
	assert.Equal(t, uint8(255), c.A())

	c.SetB(0x11)
	c.SetA(0x22)
	assert.Equal(t, Color(0x22FF8011), c)

	v := Color(0xFF00FF00).ToVector()
	assert.Equal(t, Vector4{X: 0, Y: 1, Z: 0, W: 1}, v)
	assert.Equal(t, ColorFromVector(v), Color(0xFF00FF00))
}
