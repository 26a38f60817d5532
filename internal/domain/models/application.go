package models

import (
	"errors"
	"strings"
	"time"
)

type Status string

const (
	StatusPending     Status = "pending"
	StatusViewed      Status = "viewed"
	StatusShortlisted Status = "shortlisted"
	StatusInterview   Status = "interview"
	StatusRejected    Status = "rejected"
	StatusAccepted    Status = "accepted"
)

// ToStatus matches case-insensitively, the backend mixes casings
// ("SHORTLISTED" and "shortlisted" are the same status).
func ToStatus(s string) (Status, error) {
	switch Status(strings.ToLower(s)) {
	case StatusPending:
		return StatusPending, nil
	case StatusViewed:
		return StatusViewed, nil
	case StatusShortlisted:
		return StatusShortlisted, nil
	case StatusInterview:
		return StatusInterview, nil
	case StatusRejected:
		return StatusRejected, nil
	case StatusAccepted:
		return StatusAccepted, nil
	default:
		return "", errors.New("invalid status")
	}
}

var statusLabels = map[Status]string{
	StatusPending:     "En attente",
	StatusViewed:      "Consultée",
	StatusShortlisted: "Sélectionnée",
	StatusInterview:   "Entretien",
	StatusRejected:    "Refusée",
	StatusAccepted:    "Acceptée",
}

const UnknownLabel = "Inconnu"

func StatusLabel(s string) string {
	status, err := ToStatus(s)
	if err != nil {
		return UnknownLabel
	}
	return statusLabels[status]
}

type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityNormal Priority = "NORMAL"
	PriorityLow    Priority = "LOW"
)

var priorityLabels = map[Priority]string{
	PriorityHigh:   "Haute",
	PriorityNormal: "Normale",
	PriorityLow:    "Basse",
}

func PriorityLabel(p string) string {
	if label, ok := priorityLabels[Priority(strings.ToUpper(p))]; ok {
		return label
	}
	return UnknownLabel
}

type OfferType string

const (
	OfferJob          OfferType = "job"
	OfferConsultation OfferType = "consultation"
	OfferFunding      OfferType = "funding"
)

func ToOfferType(s string) (OfferType, error) {
	switch OfferType(strings.ToLower(s)) {
	case OfferJob:
		return OfferJob, nil
	case OfferConsultation:
		return OfferConsultation, nil
	case OfferFunding:
		return OfferFunding, nil
	default:
		return "", errors.New("invalid offer type")
	}
}

// CompatibilityScore is computed by an external AI service and treated
// as opaque here. Zero means "not analyzed yet".
type CompatibilityScore struct {
	Total      float64
	Skills     float64
	Experience float64
	Location   float64
	Education  float64
}

// Application is the flat display record every list page works with,
// whatever nesting the backend returned it in.
type Application struct {
	ID                  string
	ApplicantID         string
	DisplayName         string
	Initials            string
	Email               string
	Phone               string
	AvatarURL           string
	OfferID             string
	OfferTitle          string
	OfferType           OfferType
	Status              Status
	StatusLabel         string
	Priority            Priority
	HasCV               bool
	CVURL               string
	HasMotivationLetter bool
	MotivationLetter    string
	Compatibility       CompatibilityScore
	CreatedAt           time.Time
}
