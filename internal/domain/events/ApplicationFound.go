package events

import "github.com/Billa1818/destinyjobs-recruiter-bot/internal/domain/models"

var ApplicationFoundTopic = "ApplicationFoundEvent"

type ApplicationFound struct {
	Watch       models.Watch
	Application models.Application
}
