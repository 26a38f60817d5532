package marketplace

import (
	"testing"

	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/domain/models"
	"github.com/stretchr/testify/assert"
)

func Test_ListParameters_Validate_ShouldRejectBadValues(t *testing.T) {

	assert := assert.New(t)

	assert.Error(ListParameters{Page: 0, PageSize: 10}.Validate())
	assert.ErrorIs(ListParameters{Page: 1, PageSize: 7}.Validate(), ErrInvalidPageSize)
	assert.NoError(ListParameters{Page: 1, PageSize: 10}.Validate())
}

func Test_ListParameters_ToURLValues_ShouldOmitEmptyFilters(t *testing.T) {

	assert := assert.New(t)

	values := ListParameters{Search: "python", Status: "pending", Page: 2, PageSize: 20}.ToURLValues()

	assert.Equal("2", values.Get("page"))
	assert.Equal("20", values.Get("page_size"))
	assert.Equal("python", values.Get("search"))
	assert.Equal("pending", values.Get("status"))

	for _, omitted := range []string{"priority", "ordering", "experience", "localisation"} {
		assert.NotContains(values, omitted)
	}
}

func Test_ListParametersFrom_ShouldCarryEveryFilter(t *testing.T) {

	assert := assert.New(t)

	filters := models.Filters{
		Search:       "golang",
		Status:       "shortlisted",
		Priority:     "HIGH",
		Ordering:     "-created_at",
		Localisation: "12",
	}

	params := ListParametersFrom(filters, 3, 20)

	assert.Equal("golang", params.Search)
	assert.Equal("shortlisted", params.Status)
	assert.Equal("HIGH", params.Priority)
	assert.Equal("-created_at", params.Ordering)
	assert.Equal("12", params.Localisation)
	assert.Equal(3, params.Page)
	assert.Equal(20, params.PageSize)
}
