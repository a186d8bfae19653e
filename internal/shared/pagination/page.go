package pagination

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// Query selects a 1-based page of a listing.
type Query struct {
	Page    int
	PerPage int
}

// Normalize clamps the query to sane bounds.
func (q Query) Normalize() Query {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = DefaultPerPage
	}
	if q.PerPage > MaxPerPage {
		q.PerPage = MaxPerPage
	}
	return q
}

// Offset is the number of rows to skip for the normalized query.
func (q Query) Offset() int {
	q = q.Normalize()
	return (q.Page - 1) * q.PerPage
}

// Limit is the page size for the normalized query.
func (q Query) Limit() int {
	return q.Normalize().PerPage
}

// Page is one slice of a listing plus the total row count.
type Page[T any] struct {
	Items   []T
	Page    int
	PerPage int
	Total   int64
}

// NewPage assembles a page for the normalized query.
func NewPage[T any](items []T, q Query, total int64) Page[T] {
	q = q.Normalize()
	return Page[T]{Items: items, Page: q.Page, PerPage: q.PerPage, Total: total}
}

// LastPage is the highest page number holding rows, at least 1.
func (p Page[T]) LastPage() int {
	if p.PerPage <= 0 || p.Total == 0 {
		return 1
	}
	return int((p.Total + int64(p.PerPage) - 1) / int64(p.PerPage))
}
