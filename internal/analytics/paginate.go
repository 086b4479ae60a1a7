package analytics

// Page is one slice of a view plus totals for the whole view.
type Page struct {
	Items      View
	Number     int
	Size       int
	TotalCount int
	TotalPages int
}

// Paginate returns the 1-based page of the given size. Pages past the end
// are empty.
func Paginate(v View, page, size int) (Page, error) {
	if size <= 0 {
		return Page{}, ErrInvalidPageSize
	}
	if page <= 0 {
		return Page{}, ErrInvalidPage
	}
	total := v.Len()
	out := Page{
		Number:     page,
		Size:       size,
		TotalCount: total,
		TotalPages: total / size,
	}
	if total%size != 0 {
		out.TotalPages++
	}
	if page > out.TotalPages {
		out.Items = v.Slice(total, total)
		return out, nil
	}
	start := (page - 1) * size
	out.Items = v.Slice(start, start+size)
	return out, nil
}
