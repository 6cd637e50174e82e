package api

import (
	"github.com/semantic-retrieval/std/v1/datastore"
)

// UpsertRequest carries the documents to index. Documents without an id
// get one assigned; the response reports the final ids.
type UpsertRequest struct {
	Documents []datastore.Document `json:"documents"`
}

type UpsertResponse struct {
	IDs []string `json:"ids"`
}

// Query is one similarity search: natural-language text, an optional
// metadata filter and the number of results wanted.
type Query struct {
	Query  string                            `json:"query"`
	Filter *datastore.DocumentMetadataFilter `json:"filter,omitempty"`
	TopK   int                               `json:"top_k,omitempty"`
}

type QueryRequest struct {
	Queries []Query `json:"queries"`
}

type QueryResponse struct {
	Results []datastore.QueryResult `json:"results"`
}

// DeleteRequest selects chunks by document ids, metadata filter, or
// everything at once. At least one selector must be set.
type DeleteRequest struct {
	IDs       []string                          `json:"ids,omitempty"`
	Filter    *datastore.DocumentMetadataFilter `json:"filter,omitempty"`
	DeleteAll bool                              `json:"delete_all,omitempty"`
}

type DeleteResponse struct {
	Success bool `json:"success"`
}

type errorResponse struct {
	Error string `json:"error"`
}
