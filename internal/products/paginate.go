package products

// Page is the window of a result list selected by a page request. Prev and
// Next wrap around: the page before the first is the last one.
type Page struct {
	Number     int
	TotalPages int
	Prev       int
	Next       int
	Offset     int
	Limit      int
}

// Paginate clamps page into [1, totalPages] and computes the slice bounds for
// count items. An empty list has zero pages and every link points at page 1.
func Paginate(count, page, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if count < 0 {
		count = 0
	}

	totalPages := (count + pageSize - 1) / pageSize
	if totalPages == 0 {
		return Page{Number: 1, Prev: 1, Next: 1, Limit: pageSize}
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	p := Page{
		Number:     page,
		TotalPages: totalPages,
		Prev:       page - 1,
		Next:       page + 1,
		Offset:     (page - 1) * pageSize,
		Limit:      pageSize,
	}
	if p.Prev < 1 {
		p.Prev = totalPages
	}
	if p.Next > totalPages {
		p.Next = 1
	}
	return p
}

// Bounds returns the half-open slice range of the page inside count items.
func (p Page) Bounds(count int) (int, int) {
	start := p.Offset
	if start > count {
		start = count
	}
	end := start + p.Limit
	if end > count {
		end = count
	}
	return start, end
}
