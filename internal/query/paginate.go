package query

// Pagination selects a 1-based page of sorted results.
// A PageSize of zero disables pagination.
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

// Normalize clamps Page to >= 1 and PageSize to >= 0.
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 0 {
		p.PageSize = 0
	}
	return p
}

// Page is one slice of a result set.
type Page[T any] struct {
	Items []T

	// Total is the number of items before slicing.
	Total int

	// TotalPages is 1 when pagination is disabled and the result is non-empty.
	TotalPages int
}

// Paginate slices items to the requested page.
//
// Behavior:
//   - nil pagination or PageSize 0 returns every item
//   - Pages past the end are empty, never nil, however large the page number
//   - The returned slice has its capacity capped, so appends never write into items
func Paginate[T any](items []T, p *Pagination) Page[T] {
	total := len(items)
	if p == nil || p.PageSize <= 0 {
		pages := 0
		if total > 0 {
			pages = 1
		}
		return Page[T]{Items: items, Total: total, TotalPages: pages}
	}

	np := p.Normalize()
	pages := total / np.PageSize
	if total%np.PageSize != 0 {
		pages++
	}

	if total == 0 || np.Page > pages {
		return Page[T]{Items: []T{}, Total: total, TotalPages: pages}
	}
	start := (np.Page - 1) * np.PageSize
	end := min(start+np.PageSize, total)

	return Page[T]{
		Items:      items[start:end:end],
		Total:      total,
		TotalPages: pages,
	}
}
