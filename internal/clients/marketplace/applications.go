package marketplace

import (
	"encoding/json"
	"fmt"

	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/domain/models"
	"github.com/samber/lo"
)

// ApplicationPage is one page of normalized candidatures plus the total
// count the backend reported for the whole result set.
type ApplicationPage struct {
	Applications []models.Application
	TotalCount   int
}

func (c *Client) GetApplications(offerType models.OfferType, params ListParameters) (ApplicationPage, error) {

	if err := params.Validate(); err != nil {
		return ApplicationPage{}, fmt.Errorf("invalid parameters: %w", err)
	}

	apiURL := fmt.Sprintf("%v/api/applications/%v/", c.baseURL, offerType)
	return c.getApplicationPage(apiURL, offerType, params)
}

func (c *Client) GetApplicationsByOffer(offerType models.OfferType, offerID string, params ListParameters) (ApplicationPage, error) {

	if err := params.Validate(); err != nil {
		return ApplicationPage{}, fmt.Errorf("invalid parameters: %w", err)
	}

	apiURL := fmt.Sprintf("%v/api/applications/%v/by-offer/%v/", c.baseURL, offerType, offerID)
	return c.getApplicationPage(apiURL, offerType, params)
}

func (c *Client) getApplicationPage(apiURL string, offerType models.OfferType, params ListParameters) (ApplicationPage, error) {

	body, err := c.sendRequest("GET", apiURL+"?"+params.ToURLValues().Encode(), nil, "")
	if err != nil {
		return ApplicationPage{}, err
	}

	envelope := decodeEnvelope(body)

	applications := lo.Map(envelope.Results, func(raw json.RawMessage, _ int) models.Application {
		return normalizeApplication(raw, offerType, c.baseURL)
	})

	return ApplicationPage{Applications: applications, TotalCount: envelope.Count}, nil
}
