package types

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// PageRequest is a normalized page/limit pair. Build it with NewPage so the
// defaults apply uniformly.
type PageRequest struct {
	Page  int
	Limit int
}

func NewPage(page, limit int) PageRequest {
	if page <= 0 {
		page = DefaultPage
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return PageRequest{Page: page, Limit: limit}
}

func (p PageRequest) Skip() int64 {
	return int64(p.Page-1) * int64(p.Limit)
}

type PageMeta struct {
	TotalItems   int64 `json:"totalItems"`
	ItemCount    int   `json:"itemCount"`
	ItemsPerPage int   `json:"itemsPerPage"`
	TotalPages   int64 `json:"totalPages"`
	CurrentPage  int   `json:"currentPage"`
}

type Paginated[T any] struct {
	Items []T      `json:"items"`
	Meta  PageMeta `json:"meta"`
}

// NewPaginated wraps a result page in the {items, meta} envelope. Items is
// never nil so it serializes as an empty array.
func NewPaginated[T any](items []T, total int64, p PageRequest) *Paginated[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := total / int64(p.Limit)
	if total%int64(p.Limit) != 0 {
		totalPages++
	}
	return &Paginated[T]{
		Items: items,
		Meta: PageMeta{
			TotalItems:   total,
			ItemCount:    len(items),
			ItemsPerPage: p.Limit,
			TotalPages:   totalPages,
			CurrentPage:  p.Page,
		},
	}
}
