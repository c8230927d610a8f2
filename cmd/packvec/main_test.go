package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/23skdu/longbow-packvec/internal/packed"
	"github.com/23skdu/longbow-packvec/internal/vertexbuf"
)

func setFlag[T any](t *testing.T, p *T, v T) {
	t.Helper()
	old := *p
	*p = v
	t.Cleanup(func() { *p = old })
}

func TestBatchPackUnpack(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.f32")
	dst := filepath.Join(dir, "out.bin")
	back := filepath.Join(dir, "back.f32")

	values := []float32{1, 0.5, 0, 1, 0.25, 0.75, 1, 0}
	require.NoError(t, vertexbuf.WriteFloat32File(src, values))

	codec := packed.MustLookup("ushortn4")
	setFlag(t, inPath, src)
	setFlag(t, outPath, dst)
	setFlag(t, report, true)
	require.NoError(t, runPack(context.Background(), codec))

	buf, err := vertexbuf.LoadPackedFile(dst)
	require.NoError(t, err)
	assert.Len(t, buf, 16)

	setFlag(t, inPath, dst)
	setFlag(t, outPath, back)
	require.NoError(t, runUnpack(context.Background(), codec))

	got, err := vertexbuf.LoadFile(back)
	require.NoError(t, err)
	require.Len(t, got, len(values))
	for i := range values {
		assert.InDelta(t, values[i], got[i], 1.0/65535)
	}
}

func TestBatchPackSyntheticSaturated(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "out.bin")
	codec := packed.MustLookup("ubyten4")
	setFlag(t, inPath, "")
	setFlag(t, synthetic, 100)
	setFlag(t, saturate, true)
	setFlag(t, outPath, dst)
	require.NoError(t, runPack(context.Background(), codec))

	buf, err := vertexbuf.LoadPackedFile(dst)
	require.NoError(t, err)
	assert.Len(t, buf, 400)
}

func TestGenerateVectors(t *testing.T) {
	v := generateVectors(5, 3)
	require.Len(t, v, 15)
	for _, x := range v {
		assert.LessOrEqual(t, x, float32(1))
		assert.GreaterOrEqual(t, x, float32(-1))
	}
	assert.Equal(t, v, generateVectors(5, 3))
}
