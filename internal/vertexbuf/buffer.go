// Package vertexbuf converts flat float32 arrays to and from packed vertex
// buffers of a single format.
package vertexbuf

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/23skdu/longbow-packvec/internal/packed"
	"github.com/23skdu/longbow-packvec/internal/simd"
)

// Elements per worker chunk in PackParallel.
const chunkElements = 1 << 14

// Count returns the number of packed elements src holds for c, or an
// error wrapping packed.ErrInvalidLength when src is not a whole number
// of vectors.
func Count(c packed.Codec, src []float32) (int, error) {
	n := c.Components()
	if len(src)%n != 0 {
		return 0, fmt.Errorf("%s: %d values is not a multiple of %d components: %w",
			c.Name(), len(src), n, packed.ErrInvalidLength)
	}
	return len(src) / n, nil
}

// Pack encodes src, a flat array of c.Components()-wide vectors, into a
// buffer of Count*c.Size() bytes.
func Pack(c packed.Codec, src []float32) ([]byte, error) {
	count, err := Count(c, src)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	dst := make([]byte, count*c.Size())
	packRange(c, dst, src)
	observe(c.Name(), "pack", count, start)
	return dst, nil
}

// PackParallel is Pack split across at most workers goroutines.
func PackParallel(ctx context.Context, c packed.Codec, src []float32, workers int) ([]byte, error) {
	count, err := Count(c, src)
	if err != nil {
		return nil, err
	}
	if workers <= 1 || count <= chunkElements {
		return Pack(c, src)
	}

	start := time.Now()
	n, size := c.Components(), c.Size()
	dst := make([]byte, count*size)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for lo := 0; lo < count; lo += chunkElements {
		hi := min(lo+chunkElements, count)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			packRange(c, dst[lo*size:hi*size], src[lo*n:hi*n])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	observe(c.Name(), "pack", count, start)
	return dst, nil
}

func packRange(c packed.Codec, dst []byte, src []float32) {
	if c.Name() == "half" {
		halfs := make([]uint16, len(src))
		simd.EncodeHalfs(halfs, src)
		for i, h := range halfs {
			binary.LittleEndian.PutUint16(dst[i*2:], h)
		}
		return
	}

	n, size := c.Components(), c.Size()
	for i, off := 0, 0; i < len(src); i, off = i+n, off+size {
		c.Encode(dst[off:], packed.Vector4FromSlice(src[i:i+n]))
	}
}

// Unpack decodes a packed buffer back to a flat float32 array with
// c.Components() values per element.
func Unpack(c packed.Codec, src []byte) ([]float32, error) {
	size := c.Size()
	if len(src)%size != 0 {
		return nil, fmt.Errorf("%s: %d bytes is not a multiple of element size %d: %w",
			c.Name(), len(src), size, packed.ErrInvalidLength)
	}
	start := time.Now()
	count := len(src) / size
	n := c.Components()
	dst := make([]float32, 0, count*n)

	if c.Name() == "half" {
		halfs := make([]uint16, count)
		for i := range halfs {
			halfs[i] = binary.LittleEndian.Uint16(src[i*2:])
		}
		dst = dst[:count]
		simd.DecodeHalfs(dst, halfs)
		observe(c.Name(), "unpack", count, start)
		return dst, nil
	}

	for off := 0; off < len(src); off += size {
		v := c.Decode(src[off:])
		switch n {
		case 1:
			dst = append(dst, v.X)
		case 2:
			dst = append(dst, v.X, v.Y)
		case 3:
			dst = append(dst, v.X, v.Y, v.Z)
		default:
			dst = append(dst, v.X, v.Y, v.Z, v.W)
		}
	}
	observe(c.Name(), "unpack", count, start)
	return dst, nil
}
