package gomitasserver

import "github.com/Apurer/gomitas-api/internal/shared/pagination"

// PageResponse is a paginated listing.
type PageResponse[T any] struct {
	Items    []T   `json:"items"`
	Page     int   `json:"page"`
	PerPage  int   `json:"perPage"`
	Total    int64 `json:"total"`
	LastPage int   `json:"lastPage"`
}

func newPageResponse[S, T any](page pagination.Page[S], convert func(S) T) PageResponse[T] {
	items := make([]T, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, convert(item))
	}
	return PageResponse[T]{
		Items:    items,
		Page:     page.Page,
		PerPage:  page.PerPage,
		Total:    page.Total,
		LastPage: page.LastPage(),
	}
}
