package milvus

import (
	"fmt"

	"github.com/milvus-io/milvus/client/v2/entity"

	"github.com/semantic-retrieval/std/v1/datastore"
)

// Field names of the collection. pk is generated by Milvus and never leaves
// this package.
const (
	fieldPK         = "pk"
	fieldEmbedding  = "embedding"
	fieldText       = "text"
	fieldDocumentID = "document_id"
	fieldSourceID   = "source_id"
	fieldChunkID    = "id"
	fieldSource     = "source"
	fieldURL        = "url"
	fieldCreatedAt  = "created_at"
	fieldAuthor     = "author"
)

const (
	defaultEmbeddingDim = 384
	defaultSearchEF     = 10
	maxVarCharLength    = "65535"

	// upsertBatchSize is the number of rows per insert call.
	upsertBatchSize = 100

	// absentCreatedAt is stored when a chunk carries no creation time.
	absentCreatedAt = int64(-1)
)

// fieldSpec declares one collection field: its Milvus type, the default
// used when a chunk has no value for it, and the typed extractor pulling
// the value out of a chunk. A nil defaultValue marks the field required;
// chunks missing a required field are skipped entirely (no partial row).
type fieldSpec struct {
	name       string
	dataType   entity.FieldType
	primaryKey bool
	autoID     bool

	defaultValue any

	// extract returns the chunk's value for this field and whether it is
	// present. nil for the auto-id primary key, which callers never supply.
	extract func(datastore.DocumentChunk) (any, bool)
}

func (f fieldSpec) required() bool { return !f.primaryKey && f.defaultValue == nil }

// collectionFields is the schema registry. Order is significant: it defines
// the positional alignment between columnar insert batches and declared
// fields. insertFields (everything but pk) and outputFields (everything but
// pk and embedding) are cut from it, so the three views can never drift
// apart.
func collectionFields() []fieldSpec {
	varchar := func(name string, get func(datastore.DocumentChunk) string) fieldSpec {
		return fieldSpec{
			name:         name,
			dataType:     entity.FieldTypeVarChar,
			defaultValue: "",
			extract: func(c datastore.DocumentChunk) (any, bool) {
				v := get(c)
				return v, v != ""
			},
		}
	}

	return []fieldSpec{
		{name: fieldPK, dataType: entity.FieldTypeInt64, primaryKey: true, autoID: true},
		{
			name:     fieldEmbedding,
			dataType: entity.FieldTypeFloatVector,
			extract: func(c datastore.DocumentChunk) (any, bool) {
				return c.Embedding, len(c.Embedding) > 0
			},
		},
		{
			name:     fieldText,
			dataType: entity.FieldTypeVarChar,
			extract: func(c datastore.DocumentChunk) (any, bool) {
				return c.Text, c.Text != ""
			},
		},
		varchar(fieldDocumentID, func(c datastore.DocumentChunk) string { return c.Metadata.DocumentID }),
		varchar(fieldSourceID, func(c datastore.DocumentChunk) string { return c.Metadata.SourceID }),
		varchar(fieldChunkID, func(c datastore.DocumentChunk) string { return c.ID }),
		varchar(fieldSource, func(c datastore.DocumentChunk) string { return string(c.Metadata.Source) }),
		varchar(fieldURL, func(c datastore.DocumentChunk) string { return c.Metadata.URL }),
		{
			name:         fieldCreatedAt,
			dataType:     entity.FieldTypeInt64,
			defaultValue: absentCreatedAt,
			extract: func(c datastore.DocumentChunk) (any, bool) {
				if c.Metadata.CreatedAt == nil {
					return absentCreatedAt, false
				}
				return c.Metadata.CreatedAt.Unix(), true
			},
		},
		varchar(fieldAuthor, func(c datastore.DocumentChunk) string { return c.Metadata.Author }),
	}
}

// insertFields are the fields callers supply values for, in registry order.
func insertFields() []fieldSpec {
	return collectionFields()[1:]
}

// outputFields are the fields requested back on search and lookup queries.
// The embedding is never re-fetched and the primary key stays internal.
func outputFields() []string {
	fields := collectionFields()[2:]
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.name
	}
	return names
}

// collectionSchema builds the Milvus schema declaration for the registry.
func collectionSchema(collection string, dim int) *entity.Schema {
	fields := make([]*entity.Field, 0, len(collectionFields()))
	for _, f := range collectionFields() {
		field := &entity.Field{
			Name:       f.name,
			DataType:   f.dataType,
			PrimaryKey: f.primaryKey,
			AutoID:     f.autoID,
		}
		switch f.dataType {
		case entity.FieldTypeVarChar:
			field.TypeParams = map[string]string{"max_length": maxVarCharLength}
		case entity.FieldTypeFloatVector:
			field.TypeParams = map[string]string{"dim": fmt.Sprintf("%d", dim)}
		}
		fields = append(fields, field)
	}
	return &entity.Schema{
		CollectionName: collection,
		Description:    "Document chunks with embeddings for semantic retrieval",
		Fields:         fields,
	}
}
