package domain

// Page is a single window over a listing query. Page indices are 1-based;
// NextPage and PrevPage are 0 when no such page exists.
type Page[T any] struct {
	TotalPages int
	PerPage    int
	CurPage    int
	NextPage   int
	PrevPage   int
	Items      []T
}

// NewPage computes the pagination window for a listing query. Every listing
// in the service shares this one routine.
func NewPage[T any](items []T, total int64, page, perPage int) Page[T] {
	if page < 1 {
		page = 1
	}

	totalPages := 0
	if perPage > 0 {
		totalPages = int((total + int64(perPage) - 1) / int64(perPage))
	}

	nextPage := 0
	if page < totalPages {
		nextPage = page + 1
	}

	prevPage := 0
	if page > 1 {
		prevPage = page - 1
	}

	return Page[T]{
		TotalPages: totalPages,
		PerPage:    perPage,
		CurPage:    page,
		NextPage:   nextPage,
		PrevPage:   prevPage,
		Items:      items,
	}
}
