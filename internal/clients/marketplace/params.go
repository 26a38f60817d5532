package marketplace

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/domain/models"
	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/pagination"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

var ErrInvalidPageSize = errors.New("page size is not offered by the backend")

// ListParameters is the query-side of the list endpoints. Empty string
// filter values mean "no constraint" and are omitted from the query.
type ListParameters struct {
	Search       string
	Status       string
	Priority     string
	Ordering     string
	Experience   string
	Localisation string
	Page         int
	PageSize     int
}

func ListParametersFrom(filters models.Filters, page, pageSize int) ListParameters {
	return ListParameters{
		Search:       filters.Search,
		Status:       filters.Status,
		Priority:     filters.Priority,
		Ordering:     filters.Ordering,
		Experience:   filters.Experience,
		Localisation: filters.Localisation,
		Page:         page,
		PageSize:     pageSize,
	}
}

func (p ListParameters) Validate() error {

	if p.Page < 1 {
		return fmt.Errorf("page must be positive")
	}

	if !lo.Contains(pagination.PageSizes, p.PageSize) {
		return ErrInvalidPageSize
	}

	return nil
}

func (p ListParameters) ToURLValues() url.Values {

	params := url.Values{}
	params.Add("page", strconv.Itoa(p.Page))
	params.Add("page_size", strconv.Itoa(p.PageSize))

	filters := map[string]string{
		"search":       p.Search,
		"status":       p.Status,
		"priority":     p.Priority,
		"ordering":     p.Ordering,
		"experience":   p.Experience,
		"localisation": p.Localisation,
	}

	for key, value := range filters {
		if value != "" {
			params.Add(key, value)
		}
	}

	return params
}
