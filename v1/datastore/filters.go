package datastore

import "time"

// DocumentMetadataFilter restricts a query or delete to chunks whose
// metadata matches every set field. A zero-value field means "no constraint
// on this field"; the zero filter matches everything.
//
// The filter language is deliberately conjunctive: no OR, no negation, and
// date ranges only on CreatedAt. Adapters compile this into their native
// filter syntax.
type DocumentMetadataFilter struct {
	DocumentID string     `json:"document_id,omitempty"`
	Source     Source     `json:"source,omitempty"`
	SourceID   string     `json:"source_id,omitempty"`
	Author     string     `json:"author,omitempty"`
	StartDate  *time.Time `json:"start_date,omitempty"`
	EndDate    *time.Time `json:"end_date,omitempty"`
}

// IsZero reports whether no field of the filter is set.
func (f *DocumentMetadataFilter) IsZero() bool {
	if f == nil {
		return true
	}
	return f.DocumentID == "" && f.Source == "" && f.SourceID == "" &&
		f.Author == "" && f.StartDate == nil && f.EndDate == nil
}

// DeleteRequest selects what to remove. The three selectors are independent
// paths: DeleteAll short-circuits the other two, otherwise both IDs and
// Filter are applied when given.
type DeleteRequest struct {
	// IDs are document ids; every chunk belonging to a listed document is
	// removed.
	IDs []string `json:"ids,omitempty"`
	// Filter removes every chunk matching the compiled filter expression.
	Filter *DocumentMetadataFilter `json:"filter,omitempty"`
	// DeleteAll drops and recreates the underlying collection.
	DeleteAll bool `json:"delete_all,omitempty"`
}
