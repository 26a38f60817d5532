package entities

import (
	"regexp"
	"strings"
)

type Country struct {
	ID             string
	Name           string
	NormalizedName string
}

func NewCountry(id, name string) Country {
	return Country{
		ID:             id,
		Name:           name,
		NormalizedName: NormalizeName(name),
	}
}

type Region struct {
	ID             string
	CountryID      string
	Name           string
	NormalizedName string
}

func NewRegion(id, countryID, name string) Region {
	return Region{
		ID:             id,
		CountryID:      countryID,
		Name:           name,
		NormalizedName: NormalizeName(name),
	}
}

var accentReplacer = strings.NewReplacer(
	"é", "e", "è", "e", "ê", "e", "ë", "e",
	"à", "a", "â", "a",
	"î", "i", "ï", "i",
	"ô", "o", "ö", "o",
	"ù", "u", "û", "u", "ü", "u",
	"ç", "c",
)

var nonWordPattern = regexp.MustCompile(`[^\w]+`)

// NormalizeName folds accents and punctuation so "Bénin" and "benin"
// resolve to the same row.
func NormalizeName(name string) string {
	str := strings.ToLower(name)
	str = accentReplacer.Replace(str)
	return nonWordPattern.ReplaceAllString(str, "")
}
