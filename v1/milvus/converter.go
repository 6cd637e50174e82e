package milvus

import (
	"fmt"

	"github.com/milvus-io/milvus/client/v2/column"

	"github.com/semantic-retrieval/std/v1/datastore"
)

// chunkValues derives one positional value row for a chunk, aligned to
// insertFields order. When a required field is absent the whole chunk is
// rejected: the second return value names the missing field and ok is
// false. Optional fields fall back to their declared defaults.
func chunkValues(c datastore.DocumentChunk) (row []any, missing string, ok bool) {
	fields := insertFields()
	row = make([]any, 0, len(fields))
	for _, f := range fields {
		v, present := f.extract(c)
		if !present {
			if f.required() {
				return nil, f.name, false
			}
			v = f.defaultValue
		}
		row = append(row, v)
	}
	return row, "", true
}

// columnBuffer accumulates values for a single schema field across chunks.
// Values arrive row-wise via chunkValues and are transposed here into the
// column-oriented shape the store's insert call expects.
type columnBuffer struct {
	spec fieldSpec
	strs []string
	ints []int64
	vecs [][]float32
}

func newColumnBuffers() []*columnBuffer {
	fields := insertFields()
	buffers := make([]*columnBuffer, len(fields))
	for i, f := range fields {
		buffers[i] = &columnBuffer{spec: f}
	}
	return buffers
}

// push appends one value. The value always comes out of chunkValues for the
// same field, so a type mismatch is a programming error, not input error.
func (b *columnBuffer) push(v any) error {
	switch x := v.(type) {
	case string:
		b.strs = append(b.strs, x)
	case int64:
		b.ints = append(b.ints, x)
	case []float32:
		b.vecs = append(b.vecs, x)
	default:
		return fmt.Errorf("milvus: field %q: unsupported value type %T", b.spec.name, v)
	}
	return nil
}

func (b *columnBuffer) rows() int {
	switch {
	case b.strs != nil:
		return len(b.strs)
	case b.ints != nil:
		return len(b.ints)
	default:
		return len(b.vecs)
	}
}

// column materializes the [from:to) slice of the buffer as a typed Milvus
// column, with the embedding dimension applied to vector fields.
func (b *columnBuffer) column(from, to, dim int) column.Column {
	switch {
	case b.strs != nil:
		return column.NewColumnVarChar(b.spec.name, b.strs[from:to])
	case b.ints != nil:
		return column.NewColumnInt64(b.spec.name, b.ints[from:to])
	default:
		return column.NewColumnFloatVector(b.spec.name, dim, b.vecs[from:to])
	}
}
