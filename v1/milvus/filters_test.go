package milvus

import (
	"testing"
	"time"

	"github.com/semantic-retrieval/std/v1/datastore"
)

func TestFilterExpr_NilFilter(t *testing.T) {
	if expr := filterExpr(nil); expr != "" {
		t.Errorf("expected empty expression, got %q", expr)
	}
}

func TestFilterExpr_EmptyFilter(t *testing.T) {
	if expr := filterExpr(&datastore.DocumentMetadataFilter{}); expr != "" {
		t.Errorf("expected empty expression, got %q", expr)
	}
}

func TestFilterExpr_SingleField(t *testing.T) {
	f := &datastore.DocumentMetadataFilter{DocumentID: "doc-1"}
	expr := filterExpr(f)
	want := `(document_id == "doc-1")`
	if expr != want {
		t.Errorf("expected %q, got %q", want, expr)
	}
}

func TestFilterExpr_SourceAndAuthor(t *testing.T) {
	f := &datastore.DocumentMetadataFilter{
		Source: datastore.SourceEmail,
		Author: "alice",
	}
	expr := filterExpr(f)
	want := `(source == "email") and (author == "alice")`
	if expr != want {
		t.Errorf("expected %q, got %q", want, expr)
	}
}

func TestFilterExpr_DateRange(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)
	f := &datastore.DocumentMetadataFilter{
		StartDate: &start,
		EndDate:   &end,
	}
	expr := filterExpr(f)
	want := "(created_at >= 1672531200) and (created_at <= 1703980800)"
	if expr != want {
		t.Errorf("expected %q, got %q", want, expr)
	}
}

func TestFilterExpr_AllFields(t *testing.T) {
	start := time.Unix(100, 0)
	f := &datastore.DocumentMetadataFilter{
		DocumentID: "doc-1",
		Source:     datastore.SourceFile,
		SourceID:   "src-9",
		Author:     "bob",
		StartDate:  &start,
	}
	expr := filterExpr(f)
	want := `(document_id == "doc-1") and (source == "file") and (source_id == "src-9") and (author == "bob") and (created_at >= 100)`
	if expr != want {
		t.Errorf("expected %q, got %q", want, expr)
	}
}

func TestDocumentIDsExpr(t *testing.T) {
	expr := documentIDsExpr([]string{"a", "b"})
	want := `document_id in ["a","b"]`
	if expr != want {
		t.Errorf("expected %q, got %q", want, expr)
	}
}

func TestPrimaryKeysExpr(t *testing.T) {
	expr := primaryKeysExpr([]int64{7, 42})
	want := "pk in [7,42]"
	if expr != want {
		t.Errorf("expected %q, got %q", want, expr)
	}
}
