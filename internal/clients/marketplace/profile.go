package marketplace

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
)

type Profile struct {
	ID        json.Number `json:"id"`
	Username  string      `json:"username"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone"`
	Image     string      `json:"image"`
	Role      string      `json:"role"`
}

type ProviderProfile struct {
	Profile
	OrganizationName string `json:"organization_name"`
	OrganizationLogo string `json:"organization_logo"`
	Website          string `json:"website"`
	About            string `json:"about"`
	CV               string `json:"cv"`
	Portfolio        string `json:"portfolio"`
}

type Country struct {
	ID   json.Number `json:"id"`
	Name string      `json:"nom"`
}

type Region struct {
	ID   json.Number `json:"id"`
	Name string      `json:"nom"`
}

type Session struct {
	ID        json.Number `json:"id"`
	Device    string      `json:"device"`
	IPAddress string      `json:"ip_address"`
	Current   bool        `json:"current"`
	LastSeen  LenientTime `json:"last_activity"`
}

// FileUpload is one multipart file part of a profile update.
type FileUpload struct {
	FieldName string
	FileName  string
	Content   []byte
}

func (c *Client) GetProfile() (Profile, error) {

	body, err := c.sendRequest("GET", c.baseURL+"/api/auth/profile/", nil, "")
	if err != nil {
		return Profile{}, err
	}

	var profile Profile
	if err := json.Unmarshal(body, &profile); err != nil {
		return Profile{}, fmt.Errorf("error decoding JSON response: %v", err)
	}
	return profile, nil
}

func (c *Client) GetProviderProfile() (ProviderProfile, error) {

	body, err := c.sendRequest("GET", c.baseURL+"/api/auth/profile/provider/", nil, "")
	if err != nil {
		return ProviderProfile{}, err
	}

	var profile ProviderProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		return ProviderProfile{}, fmt.Errorf("error decoding JSON response: %v", err)
	}
	return profile, nil
}

// UpdateProviderProfile sends a multipart PUT. Fields named in removals
// are sent as empty strings: the backend has no dedicated delete verb for
// uploaded files and treats an empty value as a deletion.
func (c *Client) UpdateProviderProfile(fields map[string]string, files []FileUpload, removals []string) error {

	var buffer bytes.Buffer
	writer := multipart.NewWriter(&buffer)

	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return fmt.Errorf("error writing field %v: %v", name, err)
		}
	}

	for _, removal := range removals {
		if err := writer.WriteField(removal, ""); err != nil {
			return fmt.Errorf("error writing removal %v: %v", removal, err)
		}
	}

	for _, file := range files {
		part, err := writer.CreateFormFile(file.FieldName, file.FileName)
		if err != nil {
			return fmt.Errorf("error creating file part %v: %v", file.FieldName, err)
		}
		if _, err = part.Write(file.Content); err != nil {
			return fmt.Errorf("error writing file part %v: %v", file.FieldName, err)
		}
	}

	if err := writer.Close(); err != nil {
		return err
	}

	_, err := c.sendRequest("PUT", c.baseURL+"/api/auth/profile/provider/", &buffer, writer.FormDataContentType())
	return err
}

func (c *Client) UpdateLocation(countryID, regionID string) error {
	payload := map[string]string{"country": countryID, "region": regionID}
	_, err := c.sendJSON("PUT", c.baseURL+"/api/auth/profile/location/", payload)
	return err
}

func (c *Client) GetCountries() ([]Country, error) {

	body, err := c.sendRequest("GET", c.baseURL+"/api/auth/countries/", nil, "")
	if err != nil {
		return nil, err
	}

	var countries []Country
	for _, raw := range decodeEnvelope(body).Results {
		var country Country
		if err := json.Unmarshal(raw, &country); err != nil {
			return nil, fmt.Errorf("error decoding JSON response: %v", err)
		}
		countries = append(countries, country)
	}
	return countries, nil
}

func (c *Client) GetRegions(countryID string) ([]Region, error) {

	apiURL := fmt.Sprintf("%v/api/auth/countries/%v/regions/", c.baseURL, countryID)
	body, err := c.sendRequest("GET", apiURL, nil, "")
	if err != nil {
		return nil, err
	}

	var regions []Region
	for _, raw := range decodeEnvelope(body).Results {
		var region Region
		if err := json.Unmarshal(raw, &region); err != nil {
			return nil, fmt.Errorf("error decoding JSON response: %v", err)
		}
		regions = append(regions, region)
	}
	return regions, nil
}

func (c *Client) GetSessions() ([]Session, error) {

	body, err := c.sendRequest("GET", c.baseURL+"/api/auth/sessions/", nil, "")
	if err != nil {
		return nil, err
	}

	var sessions []Session
	for _, raw := range decodeEnvelope(body).Results {
		var session Session
		if err := json.Unmarshal(raw, &session); err != nil {
			return nil, fmt.Errorf("error decoding JSON response: %v", err)
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

func (c *Client) RevokeSession(sessionID string) error {
	apiURL := fmt.Sprintf("%v/api/auth/sessions/%v/revoke/", c.baseURL, sessionID)
	_, err := c.sendJSON("POST", apiURL, map[string]string{})
	return err
}

func (c *Client) ChangePassword(oldPassword, newPassword string) error {
	payload := map[string]string{"old_password": oldPassword, "new_password": newPassword}
	_, err := c.sendJSON("POST", c.baseURL+"/api/auth/password/change/", payload)
	return err
}
