package store

const (
	defaultCurrentPage = 1
	defaultPerPage     = 10
)

// Pagination is the paging block shown next to a list.
type Pagination struct {
	Total       int `json:"total"`
	Pages       int `json:"pages"`
	CurrentPage int `json:"currentPage"`
	PerPage     int `json:"perPage"`
}

// DefaultPagination is the state before the first fetch and after a failed one.
func DefaultPagination() Pagination {
	return Pagination{CurrentPage: defaultCurrentPage, PerPage: defaultPerPage}
}

// Meta is the paging part of every list envelope returned by the API.
type Meta struct {
	Total       int `json:"total"`
	Pages       int `json:"pages"`
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
}

// Pagination converts the envelope block, substituting defaults for missing values.
func (m Meta) Pagination() Pagination {
	p := Pagination{Total: m.Total, Pages: m.Pages, CurrentPage: m.CurrentPage, PerPage: m.PerPage}
	if p.CurrentPage == 0 {
		p.CurrentPage = defaultCurrentPage
	}
	if p.PerPage == 0 {
		p.PerPage = defaultPerPage
	}
	return p
}

// Snapshot is a point-in-time copy of a list's state.
type Snapshot[V any] struct {
	Items      []V        `json:"items"`
	Loading    bool       `json:"loading"`
	Error      string     `json:"error,omitempty"`
	Pagination Pagination `json:"pagination"`
}

// RecordID picks the identifier of a backend record, preferring _id over id.
func RecordID(mongoID, id string) string {
	if mongoID != "" {
		return mongoID
	}
	return id
}
