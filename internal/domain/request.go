package domain

// Filter operators supported by the default filter strategy.
const (
	FilterEquals = "eq"
	FilterLike   = "like"
)

// Filter is a single field/operator/value clause in a list request.
// An empty Op is treated as FilterEquals.
type Filter struct {
	Field string `json:"field"`
	Op    string `json:"op"`
	Value string `json:"value"`
}

// ListRequest holds the query parameters for a list operation: an offset
// window, an optional sort field, and an ordered filter list.
//
// A PageSize of 0 means "no limit". Negative values are clamped to 0 by
// Normalized.
type ListRequest struct {
	StartIndex     int      `json:"start_index"`
	PageSize       int      `json:"page_size"`
	SortField      string   `json:"sort_field"`
	SortDescending bool     `json:"sort_descending"`
	Filters        []Filter `json:"filters,omitempty"`
}

// Normalized returns a copy of the request with StartIndex and PageSize
// clamped to be non-negative.
func (r ListRequest) Normalized() ListRequest {
	if r.StartIndex < 0 {
		r.StartIndex = 0
	}
	if r.PageSize < 0 {
		r.PageSize = 0
	}
	return r
}

// ItemRequest identifies a single record by its UID.
type ItemRequest struct {
	UID string `json:"uid"`
}
