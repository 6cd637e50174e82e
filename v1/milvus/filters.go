package milvus

import (
	"fmt"
	"strings"

	"github.com/semantic-retrieval/std/v1/datastore"
)

// filterExpr compiles a metadata filter into the Milvus boolean expression
// language. Every set field contributes exactly one predicate; predicates
// are ANDed. The empty filter compiles to the empty string, which callers
// must treat as "no filter", never "match nothing".
//
// The date bounds compare against the stored unix timestamp, the source
// enum against its string value, and everything else is a quoted string
// equality. The filter struct is closed: there is no way to smuggle an
// undeclared field into the expression.
func filterExpr(f *datastore.DocumentMetadataFilter) string {
	if f == nil {
		return ""
	}

	var preds []string
	if f.DocumentID != "" {
		preds = append(preds, equals(fieldDocumentID, f.DocumentID))
	}
	if f.Source != "" {
		preds = append(preds, equals(fieldSource, string(f.Source)))
	}
	if f.SourceID != "" {
		preds = append(preds, equals(fieldSourceID, f.SourceID))
	}
	if f.Author != "" {
		preds = append(preds, equals(fieldAuthor, f.Author))
	}
	if f.StartDate != nil {
		preds = append(preds, fmt.Sprintf("(%s >= %d)", fieldCreatedAt, f.StartDate.Unix()))
	}
	if f.EndDate != nil {
		preds = append(preds, fmt.Sprintf("(%s <= %d)", fieldCreatedAt, f.EndDate.Unix()))
	}

	return strings.Join(preds, " and ")
}

func equals(field, value string) string {
	return fmt.Sprintf("(%s == %q)", field, value)
}

// documentIDsExpr builds the IN-predicate used to resolve document ids to
// primary keys before deletion.
func documentIDsExpr(ids []string) string {
	quoted := make([]string, len(ids))
	for i, id := range ids {
		quoted[i] = fmt.Sprintf("%q", id)
	}
	return fmt.Sprintf("%s in [%s]", fieldDocumentID, strings.Join(quoted, ","))
}

// primaryKeysExpr builds the pk IN-predicate for a delete call.
func primaryKeysExpr(pks []int64) string {
	parts := make([]string, len(pks))
	for i, pk := range pks {
		parts[i] = fmt.Sprintf("%d", pk)
	}
	return fmt.Sprintf("%s in [%s]", fieldPK, strings.Join(parts, ","))
}
