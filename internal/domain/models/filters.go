package models

import "fmt"

const (
	FilterSearch       = "search"
	FilterStatus       = "status"
	FilterPriority     = "priority"
	FilterOrdering     = "ordering"
	FilterExperience   = "experience"
	FilterLocalisation = "localisation"
)

// Filters holds the list-page filter state. An empty value means
// "no constraint" and the key is omitted from the request.
type Filters struct {
	Search       string
	Status       string
	Priority     string
	Ordering     string
	Experience   string
	Localisation string
}

func DefaultFilters() Filters {
	return Filters{Ordering: "-created_at"}
}

// Set updates exactly one key and leaves the others untouched.
func (f *Filters) Set(key, value string) error {
	switch key {
	case FilterSearch:
		f.Search = value
	case FilterStatus:
		f.Status = value
	case FilterPriority:
		f.Priority = value
	case FilterOrdering:
		f.Ordering = value
	case FilterExperience:
		f.Experience = value
	case FilterLocalisation:
		f.Localisation = value
	default:
		return fmt.Errorf("unknown filter key: %v", key)
	}
	return nil
}

func (f *Filters) Reset() {
	*f = DefaultFilters()
}

func (f Filters) IsEmpty() bool {
	return f == DefaultFilters()
}
