package pagination

// PageSizes are the page sizes the backend list endpoints offer.
var PageSizes = []int{5, 10, 20, 30, 50}

const DefaultPageSize = 10

type State struct {
	CurrentPage int
	TotalPages  int
	TotalCount  int
	PageSize    int
}

// NewState derives TotalPages from the count and clamps the page so that
// 1 <= CurrentPage <= TotalPages always holds.
func NewState(totalCount, pageSize, currentPage int) State {

	pageSize = NearestPageSize(pageSize)

	totalPages := (totalCount + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if currentPage < 1 {
		currentPage = 1
	}
	if currentPage > totalPages {
		currentPage = totalPages
	}

	return State{
		CurrentPage: currentPage,
		TotalPages:  totalPages,
		TotalCount:  totalCount,
		PageSize:    pageSize,
	}
}

func (s State) HasPrev() bool {
	return s.CurrentPage > 1
}

func (s State) HasNext() bool {
	return s.CurrentPage < s.TotalPages
}

// NearestPageSize snaps an arbitrary size to the closest offered option.
func NearestPageSize(size int) int {
	nearest := PageSizes[0]
	for _, offered := range PageSizes {
		if abs(offered-size) < abs(nearest-size) {
			nearest = offered
		}
	}
	return nearest
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
