package bot

import (
	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/domain/models"
)

type offerTypeChoice string

const (
	choiceJob          offerTypeChoice = "Offre d'emploi"
	choiceConsultation offerTypeChoice = "Consultation"
	choiceFunding      offerTypeChoice = "Financement"
)

type offerTypeInput struct {
	chatID   int64
	onFinish func(offerType models.OfferType)
}

func newOfferTypeInput(chatID int64, onFinish func(offerType models.OfferType)) *offerTypeInput {
	return &offerTypeInput{chatID: chatID, onFinish: onFinish}
}

func (a *offerTypeInput) InitMessage() botApi.Chattable {
	msg := botApi.NewMessage(a.chatID, "Choisissez le type d'offre.")
	msg.ReplyMarkup = offerTypeKeyboard()
	return msg
}

func (a *offerTypeInput) HandleInput(input string) botApi.Chattable {

	var offerType models.OfferType

	switch offerTypeChoice(input) {
	case choiceJob:
		offerType = models.OfferJob
	case choiceConsultation:
		offerType = models.OfferConsultation
	case choiceFunding:
		offerType = models.OfferFunding
	default:
		return botApi.NewMessage(a.chatID, "Choix invalide.")
	}

	a.onFinish(offerType)
	return nil
}

func offerTypeKeyboard() botApi.ReplyKeyboardMarkup {
	return botApi.NewReplyKeyboard(
		botApi.NewKeyboardButtonRow(
			botApi.NewKeyboardButton(string(choiceJob)),
			botApi.NewKeyboardButton(string(choiceConsultation)),
		),
		botApi.NewKeyboardButtonRow(
			botApi.NewKeyboardButton(string(choiceFunding)),
		))
}
