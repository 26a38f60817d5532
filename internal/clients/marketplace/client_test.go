package marketplace

import (
	"bytes"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockHTTPClient struct {
	mock.Mock
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	return args.Get(0).(*http.Response), args.Error(1)
}

func jsonResponse(statusCode int, body string) (*http.Response, error) {
	return &http.Response{
		StatusCode: statusCode,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}, nil
}

func getApplicationsMock() (*http.Response, error) {
	file, err := os.ReadFile("testdata/get_applications.json")

	return &http.Response{
		StatusCode: 200,
		Body:       io.NopCloser(bytes.NewBuffer(file)),
	}, err
}

func Test_Client_GetApplications_ShouldBeSuccessful(t *testing.T) {

	assert := assert.New(t)

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.URL.String() == "http://localhost:8000/api/applications/job/?"+
			"ordering=-created_at&page=1&page_size=10&search=python"
	})).Return(getApplicationsMock())

	client := NewClient("")
	client.SetHTTPClient(mockClient)

	page, err := client.GetApplications(models.OfferJob, ListParameters{
		Search:   "python",
		Ordering: "-created_at",
		Page:     1,
		PageSize: 10,
	})
	assert.NoError(err)

	assert.Equal(27, page.TotalCount)
	assert.Len(page.Applications, 2)

	assert.Equal("101", page.Applications[0].ID)
	assert.Equal("Aline Dossou", page.Applications[0].DisplayName)
	assert.Equal("Sélectionnée", page.Applications[0].StatusLabel)
	assert.Equal("http://localhost:8000/media/cv/aline.pdf", page.Applications[0].CVURL)

	assert.Equal("kokou88", page.Applications[1].DisplayName)
	assert.False(page.Applications[1].HasCV)
	assert.Zero(page.Applications[1].Compatibility.Total)
}

func Test_Client_GetApplicationsByOffer_ShouldScopeURLToOffer(t *testing.T) {

	assert := assert.New(t)

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.URL.Path == "/api/applications/consultation/by-offer/42/"
	})).Return(jsonResponse(200, `{"results": [], "count": 0}`))

	client := NewClient("")
	client.SetHTTPClient(mockClient)

	page, err := client.GetApplicationsByOffer(models.OfferConsultation, "42", ListParameters{Page: 1, PageSize: 10})
	assert.NoError(err)
	assert.Zero(page.TotalCount)
	assert.Empty(page.Applications)
}

func Test_Client_GetApplications_InvalidParameters_ShouldNotSendRequest(t *testing.T) {

	client := NewClient("")
	client.SetHTTPClient(&mockHTTPClient{})

	_, err := client.GetApplications(models.OfferJob, ListParameters{Page: 1, PageSize: 7})

	assert.ErrorIs(t, err, ErrInvalidPageSize)
}

func Test_Client_ShouldSendBearerToken(t *testing.T) {

	assert := assert.New(t)

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.Header.Get("Authorization") == "Bearer secret-token"
	})).Return(jsonResponse(200, `[]`))

	client := NewClient("")
	client.SetHTTPClient(mockClient)
	client.SetToken("secret-token")

	_, err := client.GetApplications(models.OfferJob, ListParameters{Page: 1, PageSize: 10})
	assert.NoError(err)
}

func Test_Client_ErrorField_ShouldBeExtracted(t *testing.T) {

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.Anything).
		Return(jsonResponse(403, `{"error": "Vous n'êtes pas autorisé à consulter ces candidatures"}`))

	client := NewClient("")
	client.SetHTTPClient(mockClient)

	_, err := client.GetApplications(models.OfferJob, ListParameters{Page: 1, PageSize: 10})

	assert.ErrorContains(t, err, "status 403")
	assert.ErrorContains(t, err, "Vous n'êtes pas autorisé")
}

func Test_Client_DetailsField_ShouldBeFlattenedSorted(t *testing.T) {

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.Anything).
		Return(jsonResponse(400, `{"details": {"status": "invalide", "notes": "trop long"}}`))

	client := NewClient("")
	client.SetHTTPClient(mockClient)

	_, err := client.GetApplications(models.OfferJob, ListParameters{Page: 1, PageSize: 10})

	assert.ErrorContains(t, err, "notes: trop long; status: invalide")
}

func Test_Client_UnstructuredErrorBody_ShouldBeReportedRaw(t *testing.T) {

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.Anything).Return(jsonResponse(500, `Internal Server Error`))

	client := NewClient("")
	client.SetHTTPClient(mockClient)

	_, err := client.GetApplications(models.OfferJob, ListParameters{Page: 1, PageSize: 10})

	assert.ErrorContains(t, err, "status 500")
	assert.ErrorContains(t, err, "Internal Server Error")
}
