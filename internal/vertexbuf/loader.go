package vertexbuf

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
)

// ReadFloat32s reads little-endian float32 values until EOF.
func ReadFloat32s(r io.Reader) ([]float32, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("float32 stream has %d trailing bytes", len(raw)%4)
	}
	out := make([]float32, len(raw)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return out, nil
}

// WriteFloat32s writes values as little-endian float32.
func WriteFloat32s(w io.Writer, values []float32) error {
	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, values); err != nil {
		return err
	}
	return bw.Flush()
}

// LoadFile reads a raw little-endian float32 file.
func LoadFile(path string) ([]float32, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	values, err := ReadFloat32s(bufio.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return values, nil
}

// LoadPackedFile reads a packed buffer from disk.
func LoadPackedFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile writes a packed buffer to path, replacing any existing file.
func WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

// WriteFloat32File writes values to path as raw little-endian float32.
func WriteFloat32File(path string, values []float32) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteFloat32s(file, values); err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return file.Close()
}
