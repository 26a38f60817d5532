package marketplace

import (
	"encoding/json"
	"strings"
	"time"
	"unicode"

	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/domain/models"
	"github.com/samber/lo"
)

const missingValue = "non spécifié"

type applicantPayload struct {
	ID        json.Number `json:"id"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone"`
	Image     string      `json:"image"`
}

type candidateProfilePayload struct {
	CV           string `json:"cv"`
	Image        string `json:"image"`
	Localisation string `json:"localisation"`
}

type offerPayload struct {
	ID    json.Number `json:"id"`
	Title string      `json:"title"`
}

type aiAnalysisPayload struct {
	CompatibilityScore float64 `json:"compatibility_score"`
	SkillsScore        float64 `json:"skills_score"`
	ExperienceScore    float64 `json:"experience_score"`
	LocationScore      float64 `json:"location_score"`
	EducationScore     float64 `json:"education_score"`
}

type applicationPayload struct {
	ID                json.Number              `json:"id"`
	Status            string                   `json:"status"`
	Priority          string                   `json:"priority"`
	MotivationLetter  string                   `json:"motivation_letter"`
	CreatedAt         LenientTime              `json:"created_at"`
	Applicant         *applicantPayload        `json:"applicant"`
	CandidateProfile  *candidateProfilePayload `json:"candidate_profile"`
	JobOffer          *offerPayload            `json:"job_offer"`
	ConsultationOffer *offerPayload            `json:"consultation_offer"`
	FundingOffer      *offerPayload            `json:"funding_offer"`
	AiAnalysis        *aiAnalysisPayload       `json:"ai_analysis"`
}

// LenientTime swallows the timestamp formats Django mixes and never
// fails the whole record over an unparseable date.
type LenientTime struct {
	time.Time
}

var timeLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

func (t *LenientTime) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return nil
	}

	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, str); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return nil
}

// normalizeApplication flattens one raw record into the display record
// all pages share. Null or unreadable input yields a fully populated
// placeholder rather than propagating nil downstream.
func normalizeApplication(raw json.RawMessage, offerType models.OfferType, mediaOrigin string) models.Application {

	var payload applicationPayload
	if err := json.Unmarshal(raw, &payload); err != nil || string(raw) == "null" {
		return placeholderApplication(offerType)
	}

	applicant := payload.Applicant
	if applicant == nil {
		applicant = &applicantPayload{}
	}

	offer := lo.FirstOrEmpty(lo.Compact([]*offerPayload{
		payload.JobOffer, payload.ConsultationOffer, payload.FundingOffer,
	}))
	if offer == nil {
		offer = &offerPayload{Title: missingValue}
	}

	application := models.Application{
		ID:               payload.ID.String(),
		ApplicantID:      applicant.ID.String(),
		DisplayName:      displayName(applicant.FirstName, applicant.LastName, applicant.Username),
		Initials:         initials(applicant.FirstName, applicant.LastName, applicant.Username),
		Email:            applicant.Email,
		Phone:            applicant.Phone,
		AvatarURL:        ResolveMediaURL(applicant.Image, mediaOrigin),
		OfferID:          offer.ID.String(),
		OfferTitle:       offer.Title,
		OfferType:        offerType,
		Status:           models.Status(strings.ToLower(payload.Status)),
		StatusLabel:      models.StatusLabel(payload.Status),
		Priority:         models.Priority(strings.ToUpper(payload.Priority)),
		MotivationLetter: payload.MotivationLetter,
		CreatedAt:        payload.CreatedAt.Time,
	}

	application.HasMotivationLetter = payload.MotivationLetter != ""

	if payload.CandidateProfile != nil {
		application.HasCV = payload.CandidateProfile.CV != ""
		application.CVURL = ResolveMediaURL(payload.CandidateProfile.CV, mediaOrigin)
		if application.AvatarURL == "" {
			application.AvatarURL = ResolveMediaURL(payload.CandidateProfile.Image, mediaOrigin)
		}
	}

	if payload.AiAnalysis != nil {
		application.Compatibility = models.CompatibilityScore{
			Total:      payload.AiAnalysis.CompatibilityScore,
			Skills:     payload.AiAnalysis.SkillsScore,
			Experience: payload.AiAnalysis.ExperienceScore,
			Location:   payload.AiAnalysis.LocationScore,
			Education:  payload.AiAnalysis.EducationScore,
		}
	}

	return application
}

func placeholderApplication(offerType models.OfferType) models.Application {
	return models.Application{
		ID:          "unknown",
		DisplayName: "Utilisateur",
		Initials:    "?",
		OfferTitle:  missingValue,
		OfferType:   offerType,
		StatusLabel: models.UnknownLabel,
	}
}

func displayName(firstName, lastName, username string) string {

	name := strings.TrimSpace(strings.TrimSpace(firstName) + " " + strings.TrimSpace(lastName))
	if name != "" {
		return name
	}
	if username != "" {
		return username
	}
	return "Utilisateur"
}

func initials(firstName, lastName, username string) string {

	var letters []rune
	for _, part := range []string{firstName, lastName} {
		part = strings.TrimSpace(part)
		if part != "" {
			letters = append(letters, unicode.ToUpper([]rune(part)[0]))
		}
	}

	if len(letters) == 0 {
		if username = strings.TrimSpace(username); username != "" {
			letters = append(letters, unicode.ToUpper([]rune(username)[0]))
		}
	}

	if len(letters) == 0 {
		return "?"
	}
	return string(letters)
}

// ResolveMediaURL rewrites backend-relative /media paths to absolute URLs;
// anything already absolute (or empty) passes through unchanged.
func ResolveMediaURL(url, mediaOrigin string) string {
	if strings.HasPrefix(url, "/media") {
		return strings.TrimSuffix(mediaOrigin, "/") + url
	}
	return url
}
