package dto

// Page is the paginated list envelope used by the course and resource listings.
type Page[T any] struct {
	TotalCount  int `json:"totalCount"`
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	Data        []T `json:"data"`
}

// Paginate slices items for a 1-based page. A negative limit returns every
// item in a single page; a zero limit falls back to defaultLimit.
func Paginate[T any](items []T, page, limit, defaultLimit int) Page[T] {
	if page < 1 {
		page = 1
	}
	if limit == 0 {
		limit = defaultLimit
	}
	total := len(items)

	if limit < 0 {
		data := make([]T, total)
		copy(data, items)
		pages := 0
		if total > 0 {
			pages = 1
		}
		return Page[T]{TotalCount: total, CurrentPage: 1, TotalPages: pages, Data: data}
	}

	// Pages past the end are clamped before multiplying so huge page
	// numbers cannot overflow the offset.
	start := total
	if page-1 <= total/limit {
		start = min((page-1)*limit, total)
	}
	end := total
	if limit < total-start {
		end = start + limit
	}
	data := make([]T, end-start)
	copy(data, items[start:end])

	return Page[T]{
		TotalCount:  total,
		CurrentPage: page,
		TotalPages:  TotalPages(total, limit),
		Data:        data,
	}
}

// TotalPages is ceil(total/limit) for a positive limit.
func TotalPages(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return (total-1)/limit + 1
}
