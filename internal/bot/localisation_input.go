package bot

import (
	"context"

	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/logger"
	log "github.com/sirupsen/logrus"
)

const skipChoice = "Ne pas préciser"

type localisationInput struct {
	chatID    int64
	onFinish  func(localisation string)
	countries countryRepository
}

func newLocalisationInput(chatID int64, countryRepo countryRepository, onFinish func(localisation string)) *localisationInput {
	return &localisationInput{chatID: chatID, countries: countryRepo, onFinish: onFinish}
}

func (a *localisationInput) InitMessage() botApi.Chattable {
	msg := botApi.NewMessage(a.chatID, "Indiquez la localisation (pays ou région) des candidatures.")
	msg.ReplyMarkup = localisationKeyboard()
	return msg
}

func (a *localisationInput) HandleInput(input string) botApi.Chattable {

	if input == skipChoice {
		a.onFinish("")
		return nil
	}

	id, err := a.countries.GetIdByName(context.Background(), input)
	if err == nil && id == "" {
		id, err = a.countries.GetRegionIdByName(context.Background(), input)
	}
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Error(err)
		return botApi.NewMessage(a.chatID, "Erreur interne.")
	}
	if id == "" {
		return botApi.NewMessage(a.chatID, "Localisation introuvable.")
	}

	a.onFinish(id)
	return nil
}

func localisationKeyboard() botApi.ReplyKeyboardMarkup {
	return botApi.NewReplyKeyboard(
		botApi.NewKeyboardButtonRow(
			botApi.NewKeyboardButton("Cotonou"),
			botApi.NewKeyboardButton("Porto-Novo"),
		),
		botApi.NewKeyboardButtonRow(
			botApi.NewKeyboardButton("Parakou"),
			botApi.NewKeyboardButton("Abomey-Calavi"),
		),
		botApi.NewKeyboardButtonRow(
			botApi.NewKeyboardButton(skipChoice),
		),
	)
}
