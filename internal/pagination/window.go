package pagination

const maxVisiblePages = 5

// Window is the slice of page numbers a pager renders, centered on the
// current page, plus the first/last shortcuts and ellipsis markers.
type Window struct {
	Pages            []int
	ShowFirst        bool
	LeadingEllipsis  bool
	ShowLast         bool
	TrailingEllipsis bool
}

// ComputeWindow centers a window of at most maxVisible page numbers on
// currentPage. A single page (or less) yields an empty window: no pager
// is rendered at all.
func ComputeWindow(currentPage, totalPages int) Window {
	return computeWindow(currentPage, totalPages, maxVisiblePages)
}

func computeWindow(currentPage, totalPages, maxVisible int) Window {

	if totalPages <= 1 {
		return Window{}
	}

	start := currentPage - maxVisible/2
	if start < 1 {
		start = 1
	}

	end := start + maxVisible - 1
	if end > totalPages {
		end = totalPages
		// the window hit the ceiling, shift it back left
		start = end - maxVisible + 1
		if start < 1 {
			start = 1
		}
	}

	pages := make([]int, 0, end-start+1)
	for page := start; page <= end; page++ {
		pages = append(pages, page)
	}

	return Window{
		Pages:            pages,
		ShowFirst:        start > 1,
		LeadingEllipsis:  start > 2,
		ShowLast:         end < totalPages,
		TrailingEllipsis: end < totalPages-1,
	}
}
