package client

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/23skdu/longbow-packvec/internal/packed"
)

// Column and metadata names shared by the HTTP and Flight surfaces.
const (
	PackedColumn = "packed"
	VectorColumn = "vector"

	FormatKey     = "packvec.format"
	ComponentsKey = "packvec.components"
)

// ErrMissingColumn reports a record without the expected column.
var ErrMissingColumn = errors.New("record has no usable column")

// RecordBatchBuilder creates Arrow RecordBatches from packed buffers and
// float vectors.
type RecordBatchBuilder struct {
	mem memory.Allocator
}

// NewRecordBatchBuilder creates a new builder.
func NewRecordBatchBuilder(mem memory.Allocator) *RecordBatchBuilder {
	return &RecordBatchBuilder{mem: mem}
}

// BuildPacked wraps a packed buffer in a record with one
// fixed_size_binary column, one row per element. The format name travels
// in the schema metadata.
func (b *RecordBatchBuilder) BuildPacked(format string, data []byte) (arrow.RecordBatch, error) {
	c, err := packed.Lookup(format)
	if err != nil {
		return nil, err
	}
	size := c.Size()
	if len(data)%size != 0 {
		return nil, fmt.Errorf("%s: %d bytes is not a multiple of element size %d: %w",
			c.Name(), len(data), size, packed.ErrInvalidLength)
	}
	numRows := len(data) / size

	md := arrow.NewMetadata(
		[]string{FormatKey, ComponentsKey},
		[]string{c.Name(), strconv.Itoa(c.Components())},
	)
	schema := arrow.NewSchema(
		[]arrow.Field{
			{Name: PackedColumn, Type: &arrow.FixedSizeBinaryType{ByteWidth: size}},
		},
		&md,
	)

	builder := array.NewFixedSizeBinaryBuilder(b.mem, &arrow.FixedSizeBinaryType{ByteWidth: size})
	defer builder.Release()
	builder.Reserve(numRows)
	for off := 0; off < len(data); off += size {
		builder.Append(data[off : off+size])
	}

	cols := []arrow.Array{builder.NewArray()}
	defer cols[0].Release()

	return array.NewRecordBatch(schema, cols, int64(numRows)), nil
}

// BuildVectors converts a flat float32 array into a record with one
// fixed_size_list<float32> column of the given width.
func (b *RecordBatchBuilder) BuildVectors(vectors []float32, components int) (arrow.RecordBatch, error) {
	if components <= 0 || len(vectors)%components != 0 {
		return nil, fmt.Errorf("%d values is not a multiple of %d components: %w",
			len(vectors), components, packed.ErrInvalidLength)
	}
	numRows := len(vectors) / components

	listType := arrow.FixedSizeListOf(int32(components), arrow.PrimitiveTypes.Float32)
	schema := arrow.NewSchema(
		[]arrow.Field{
			{Name: VectorColumn, Type: listType},
		},
		nil,
	)

	listBuilder := array.NewFixedSizeListBuilder(b.mem, int32(components), arrow.PrimitiveTypes.Float32)
	defer listBuilder.Release()

	valueBuilder := listBuilder.ValueBuilder().(*array.Float32Builder)
	for off := 0; off < len(vectors); off += components {
		listBuilder.Append(true)
		valueBuilder.AppendValues(vectors[off:off+components], nil)
	}

	cols := []arrow.Array{listBuilder.NewArray()}
	defer cols[0].Release()

	return array.NewRecordBatch(schema, cols, int64(numRows)), nil
}

// DecodePacked reverses BuildPacked, returning the format name and the
// concatenated packed bytes.
func DecodePacked(rec arrow.RecordBatch) (string, []byte, error) {
	idx := rec.Schema().FieldIndices(PackedColumn)
	if len(idx) == 0 {
		return "", nil, fmt.Errorf("%s: %w", PackedColumn, ErrMissingColumn)
	}
	col, ok := rec.Column(idx[0]).(*array.FixedSizeBinary)
	if !ok {
		return "", nil, fmt.Errorf("%s is %s: %w", PackedColumn, rec.Column(idx[0]).DataType(), ErrMissingColumn)
	}

	md := rec.Schema().Metadata()
	i := md.FindKey(FormatKey)
	if i < 0 {
		return "", nil, fmt.Errorf("schema metadata has no %s", FormatKey)
	}
	c, err := packed.Lookup(md.Values()[i])
	if err != nil {
		return "", nil, err
	}
	if width := col.DataType().(*arrow.FixedSizeBinaryType).ByteWidth; width != c.Size() {
		return "", nil, fmt.Errorf("%s: column width %d, want %d: %w", c.Name(), width, c.Size(), packed.ErrInvalidLength)
	}

	data := make([]byte, 0, col.Len()*c.Size())
	for row := 0; row < col.Len(); row++ {
		data = append(data, col.Value(row)...)
	}
	return c.Name(), data, nil
}

// ReadVectors flattens the vector column of rec. It accepts the
// fixed_size_list column BuildVectors writes as well as a variable list
// whose rows all have the same width.
func ReadVectors(rec arrow.RecordBatch) ([]float32, int, error) {
	idx := rec.Schema().FieldIndices(VectorColumn)
	if len(idx) == 0 {
		return nil, 0, fmt.Errorf("%s: %w", VectorColumn, ErrMissingColumn)
	}

	switch col := rec.Column(idx[0]).(type) {
	case *array.FixedSizeList:
		values, ok := col.ListValues().(*array.Float32)
		if !ok {
			return nil, 0, fmt.Errorf("%s values are %s: %w", VectorColumn, col.ListValues().DataType(), ErrMissingColumn)
		}
		width := int(col.DataType().(*arrow.FixedSizeListType).Len())
		start := col.Offset() * width
		out := make([]float32, col.Len()*width)
		copy(out, values.Float32Values()[start:start+len(out)])
		return out, width, nil

	case *array.List:
		values, ok := col.ListValues().(*array.Float32)
		if !ok {
			return nil, 0, fmt.Errorf("%s values are %s: %w", VectorColumn, col.ListValues().DataType(), ErrMissingColumn)
		}
		width := -1
		var out []float32
		for row := 0; row < col.Len(); row++ {
			lo, hi := col.ValueOffsets(row)
			if width < 0 {
				width = int(hi - lo)
			} else if int(hi-lo) != width {
				return nil, 0, fmt.Errorf("row %d has %d components, want %d: %w", row, hi-lo, width, packed.ErrInvalidLength)
			}
			out = append(out, values.Float32Values()[lo:hi]...)
		}
		return out, max(width, 0), nil

	default:
		return nil, 0, fmt.Errorf("%s is %s: %w", VectorColumn, col.DataType(), ErrMissingColumn)
	}
}
