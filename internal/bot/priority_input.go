package bot

import (
	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/domain/models"
)

type priorityInput struct {
	chatID   int64
	onFinish func(priority string)
}

func newPriorityInput(chatID int64, onFinish func(priority string)) *priorityInput {
	return &priorityInput{chatID: chatID, onFinish: onFinish}
}

func (a *priorityInput) InitMessage() botApi.Chattable {
	msg := botApi.NewMessage(a.chatID, "Choisissez la priorité des candidatures à suivre.")
	msg.ReplyMarkup = priorityKeyboard()
	return msg
}

func (a *priorityInput) HandleInput(input string) botApi.Chattable {

	switch input {
	case "Haute":
		a.onFinish(string(models.PriorityHigh))
	case "Normale":
		a.onFinish(string(models.PriorityNormal))
	case "Basse":
		a.onFinish(string(models.PriorityLow))
	case anyChoice:
		a.onFinish("")
	default:
		return botApi.NewMessage(a.chatID, "Choix invalide.")
	}
	return nil
}

func priorityKeyboard() botApi.ReplyKeyboardMarkup {
	return botApi.NewReplyKeyboard(
		botApi.NewKeyboardButtonRow(
			botApi.NewKeyboardButton("Haute"),
			botApi.NewKeyboardButton("Normale"),
			botApi.NewKeyboardButton("Basse"),
		),
		botApi.NewKeyboardButtonRow(
			botApi.NewKeyboardButton(anyChoice),
		))
}
