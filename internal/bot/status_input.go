package bot

import (
	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/domain/models"
)

const anyChoice = "Toutes"

type statusInput struct {
	chatID   int64
	onFinish func(status string)
}

func newStatusInput(chatID int64, onFinish func(status string)) *statusInput {
	return &statusInput{chatID: chatID, onFinish: onFinish}
}

func (a *statusInput) InitMessage() botApi.Chattable {
	msg := botApi.NewMessage(a.chatID, "Choisissez le statut des candidatures à suivre.")
	msg.ReplyMarkup = statusKeyboard()
	return msg
}

func (a *statusInput) HandleInput(input string) botApi.Chattable {

	if input == anyChoice {
		a.onFinish("")
		return nil
	}

	status, ok := statusByLabel(input)
	if !ok {
		return botApi.NewMessage(a.chatID, "Choix invalide.")
	}

	a.onFinish(string(status))
	return nil
}

func statusByLabel(label string) (models.Status, bool) {
	for _, status := range []models.Status{
		models.StatusPending, models.StatusViewed, models.StatusShortlisted,
		models.StatusInterview, models.StatusRejected, models.StatusAccepted,
	} {
		if models.StatusLabel(string(status)) == label {
			return status, true
		}
	}
	return "", false
}

func statusKeyboard() botApi.ReplyKeyboardMarkup {
	return botApi.NewReplyKeyboard(
		botApi.NewKeyboardButtonRow(
			botApi.NewKeyboardButton(models.StatusLabel(string(models.StatusPending))),
			botApi.NewKeyboardButton(models.StatusLabel(string(models.StatusViewed))),
		),
		botApi.NewKeyboardButtonRow(
			botApi.NewKeyboardButton(models.StatusLabel(string(models.StatusShortlisted))),
			botApi.NewKeyboardButton(models.StatusLabel(string(models.StatusInterview))),
		),
		botApi.NewKeyboardButtonRow(
			botApi.NewKeyboardButton(models.StatusLabel(string(models.StatusRejected))),
			botApi.NewKeyboardButton(models.StatusLabel(string(models.StatusAccepted))),
		),
		botApi.NewKeyboardButtonRow(
			botApi.NewKeyboardButton(anyChoice),
		))
}
