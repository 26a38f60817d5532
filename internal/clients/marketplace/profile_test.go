package marketplace

import (
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func decodeMultipartForm(req *http.Request) *multipart.Form {

	body, err := req.GetBody()
	if err != nil {
		return nil
	}
	defer body.Close()

	_, params, err := mime.ParseMediaType(req.Header.Get("Content-Type"))
	if err != nil {
		return nil
	}

	form, err := multipart.NewReader(body, params["boundary"]).ReadForm(1 << 20)
	if err != nil {
		return nil
	}
	return form
}

func Test_GetProviderProfile_ShouldDecodeProfile(t *testing.T) {

	assert := assert.New(t)

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.Method == "GET" && req.URL.Path == "/api/auth/profile/provider/"
	})).Return(jsonResponse(200, `{
		"id": 3,
		"first_name": "Aline",
		"last_name": "Dossou",
		"email": "aline@destinyjobs.bj",
		"organization_name": "DestinyJobs",
		"website": "https://destinyjobs.bj"
	}`))

	client := NewClient("")
	client.SetHTTPClient(mockClient)

	profile, err := client.GetProviderProfile()
	assert.NoError(err)
	assert.Equal("Aline", profile.FirstName)
	assert.Equal("DestinyJobs", profile.OrganizationName)
	assert.Equal("https://destinyjobs.bj", profile.Website)
}

func Test_UpdateProviderProfile_ShouldSendMultipartFieldsAndFiles(t *testing.T) {

	assert := assert.New(t)

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		form := decodeMultipartForm(req)
		if form == nil || len(form.File["cv"]) != 1 {
			return false
		}
		file, err := form.File["cv"][0].Open()
		if err != nil {
			return false
		}
		defer file.Close()
		content, _ := io.ReadAll(file)

		return req.Method == "PUT" &&
			req.URL.Path == "/api/auth/profile/provider/" &&
			form.Value["organization_name"][0] == "DestinyJobs" &&
			form.File["cv"][0].Filename == "cv.pdf" &&
			string(content) == "%PDF-fake"
	})).Return(jsonResponse(200, `{}`))

	client := NewClient("")
	client.SetHTTPClient(mockClient)

	err := client.UpdateProviderProfile(
		map[string]string{"organization_name": "DestinyJobs"},
		[]FileUpload{{FieldName: "cv", FileName: "cv.pdf", Content: []byte("%PDF-fake")}},
		nil,
	)
	assert.NoError(err)
	mockClient.AssertNumberOfCalls(t, "Do", 1)
}

func Test_UpdateProviderProfile_Removal_ShouldSendEmptyField(t *testing.T) {

	// the backend has no delete verb for uploads: an empty field removes one
	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		form := decodeMultipartForm(req)
		if form == nil {
			return false
		}
		values, present := form.Value["portfolio"]
		return present && len(values) == 1 && values[0] == ""
	})).Return(jsonResponse(200, `{}`))

	client := NewClient("")
	client.SetHTTPClient(mockClient)

	assert.NoError(t, client.UpdateProviderProfile(nil, nil, []string{"portfolio"}))
}

func Test_UpdateLocation_ShouldSendCountryAndRegion(t *testing.T) {

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		payload := decodeStatusBody(req)
		return req.Method == "PUT" &&
			req.URL.Path == "/api/auth/profile/location/" &&
			payload["country"] == "1" &&
			payload["region"] == "9"
	})).Return(jsonResponse(200, `{}`))

	client := NewClient("")
	client.SetHTTPClient(mockClient)

	assert.NoError(t, client.UpdateLocation("1", "9"))
}

func Test_GetSessions_ShouldDecodeEnvelope(t *testing.T) {

	assert := assert.New(t)

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.URL.Path == "/api/auth/sessions/"
	})).Return(jsonResponse(200, `{"results": [
		{"id": 1, "device": "Firefox / Linux", "current": true},
		{"id": 2, "device": "Chrome / Android", "current": false}
	], "count": 2}`))

	client := NewClient("")
	client.SetHTTPClient(mockClient)

	sessions, err := client.GetSessions()
	assert.NoError(err)
	assert.Len(sessions, 2)
	assert.Equal("Firefox / Linux", sessions[0].Device)
	assert.True(sessions[0].Current)
}

func Test_RevokeSession_ShouldPostToRevokeURL(t *testing.T) {

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.Method == "POST" && req.URL.Path == "/api/auth/sessions/2/revoke/"
	})).Return(jsonResponse(200, `{}`))

	client := NewClient("")
	client.SetHTTPClient(mockClient)

	assert.NoError(t, client.RevokeSession("2"))
}

func Test_ChangePassword_ShouldSendBothPasswords(t *testing.T) {

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		payload := decodeStatusBody(req)
		return payload["old_password"] == "ancien" && payload["new_password"] == "nouveau"
	})).Return(jsonResponse(200, `{}`))

	client := NewClient("")
	client.SetHTTPClient(mockClient)

	assert.NoError(t, client.ChangePassword("ancien", "nouveau"))
}
