package marketplace

import (
	"encoding/json"
	"fmt"

	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/domain/models"
)

// Wire statuses the status-update endpoint expects. The backend uses
// upper-cased synonyms of the display statuses.
const (
	wireStatusPending     = "PENDING"
	wireStatusViewed      = "VIEWED"
	wireStatusShortlisted = "SHORTLISTED"
	wireStatusInterview   = "INTERVIEW"
	wireStatusRejected    = "REJECTED"
	wireStatusAccepted    = "ACCEPTED"
)

// UpdateApplicationStatus issues exactly one PUT per invocation. There is
// no retry and no local mutation: callers re-fetch the list after success.
func (c *Client) UpdateApplicationStatus(applicationID string, status string, notes string) error {

	apiURL := fmt.Sprintf("%v/api/applications/status/update/%v/", c.baseURL, applicationID)

	payload := map[string]string{"status": status, "notes": notes}
	_, err := c.sendJSON("PUT", apiURL, payload)
	return err
}

// AcceptApplication moves a candidature forward in the process, which on
// the backend side is the SHORTLISTED status.
func (c *Client) AcceptApplication(applicationID string, notes string) error {
	if notes == "" {
		notes = "Candidature acceptée pour la suite du processus"
	}
	return c.UpdateApplicationStatus(applicationID, wireStatusShortlisted, notes)
}

func (c *Client) RejectApplication(applicationID string, notes string) error {
	if notes == "" {
		notes = "Candidature non retenue"
	}
	return c.UpdateApplicationStatus(applicationID, wireStatusRejected, notes)
}

func (c *Client) ShortlistApplication(applicationID string, notes string) error {
	if notes == "" {
		notes = "Candidature présélectionnée"
	}
	return c.UpdateApplicationStatus(applicationID, wireStatusShortlisted, notes)
}

func (c *Client) ScheduleInterview(applicationID string, notes string) error {
	if notes == "" {
		notes = "Entretien planifié avec le candidat"
	}
	return c.UpdateApplicationStatus(applicationID, wireStatusInterview, notes)
}

func (c *Client) HoldApplication(applicationID string, notes string) error {
	if notes == "" {
		notes = "Candidature mise en attente"
	}
	return c.UpdateApplicationStatus(applicationID, wireStatusPending, notes)
}

func (c *Client) MarkApplicationViewed(applicationID string, notes string) error {
	if notes == "" {
		notes = "Candidature consultée"
	}
	return c.UpdateApplicationStatus(applicationID, wireStatusViewed, notes)
}

// HireApplication is the terminal positive transition.
func (c *Client) HireApplication(applicationID string, notes string) error {
	if notes == "" {
		notes = "Candidature retenue, félicitations au candidat"
	}
	return c.UpdateApplicationStatus(applicationID, wireStatusAccepted, notes)
}

// AnalyzeCompatibility asks the backend to run (or return) the AI match
// score for an application. The score is opaque to this client.
func (c *Client) AnalyzeCompatibility(applicationID string, offerID string, offerType models.OfferType) (models.CompatibilityScore, error) {

	apiURL := c.baseURL + "/api/applications/ai/analyze-compatibility/"

	payload := map[string]string{
		"application_id": applicationID,
		"offer_id":       offerID,
		"offer_type":     string(offerType),
	}

	body, err := c.sendJSON("POST", apiURL, payload)
	if err != nil {
		return models.CompatibilityScore{}, err
	}

	var analysis aiAnalysisPayload
	if err := json.Unmarshal(body, &analysis); err != nil {
		return models.CompatibilityScore{}, fmt.Errorf("error decoding JSON response: %v", err)
	}

	return models.CompatibilityScore{
		Total:      analysis.CompatibilityScore,
		Skills:     analysis.SkillsScore,
		Experience: analysis.ExperienceScore,
		Location:   analysis.LocationScore,
		Education:  analysis.EducationScore,
	}, nil
}
