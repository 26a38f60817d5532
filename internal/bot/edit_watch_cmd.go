package bot

import (
	"context"
	"strconv"

	"github.com/asaskevich/EventBus"
	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/domain/models"
	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/logger"
	log "github.com/sirupsen/logrus"
)

const editWatchCommandName = "Modifier une veille"

const (
	inputWatchStep = iota
	inputFieldToEditStep
	inputFieldValueStep
)

type editWatchCommand struct {
	api                  apiInterface
	chatID               int64
	bus                  EventBus.Bus
	watches              watchRepository
	curInput             inputHandler
	curStep              int
	watch                *models.Watch
	finishCallback       func()
	finalMessageKeyboard *botApi.ReplyKeyboardMarkup
}

func newEditWatchCommand(api apiInterface, chatID int64, bus EventBus.Bus, watchRepo watchRepository) (*editWatchCommand, error) {

	cmd := editWatchCommand{api: api, chatID: chatID, bus: bus, watches: watchRepo, curStep: inputWatchStep}
	input, err := newWatchInput(chatID, watchRepo, func(w *models.Watch) {
		cmd.watch = w
		cmd.curStep = inputFieldToEditStep
	})
	if err != nil {
		return nil, err
	}
	cmd.curInput = input
	return &cmd, nil
}

func (c *editWatchCommand) WithFinishCallback(callback func()) {
	c.finishCallback = callback
}

func (c *editWatchCommand) WithKeyboardOnFinalMessage(keyboard botApi.ReplyKeyboardMarkup) {
	c.finalMessageKeyboard = &keyboard
}

func (c *editWatchCommand) Run() {
	_, _ = sendWithLogError(c.api, c.curInput.InitMessage())
}

func (c *editWatchCommand) OnUserInput(input string) {

	previousStep := c.curStep
	msg := c.curInput.HandleInput(input)

	if c.curStep == previousStep {
		_, _ = sendWithLogError(c.api, msg)
	}

	if c.curStep == inputFieldToEditStep {
		c.curInput = newFieldToEditInput(c.chatID, func(input string) {
			c.createWatchEditHandler(input)
			c.curStep = inputFieldValueStep
		})
		_, _ = sendWithLogError(c.api, c.curInput.InitMessage())
	}

	if c.curStep == inputFieldValueStep {
		_, _ = sendWithLogError(c.api, c.curInput.InitMessage())
	}
}

func (c *editWatchCommand) createWatchEditHandler(id string) {
	switch id {
	case "0":
		c.curInput = newSearchTextInput(c.chatID, func(input string) {
			c.watch.Search = input
			c.editWatch()
			c.curStep = inputFieldToEditStep
		})
	case "1":
		c.curInput = newStatusInput(c.chatID, func(input string) {
			c.watch.Status = input
			c.editWatch()
			c.curStep = inputFieldToEditStep
		})
	case "2":
		c.curInput = newPriorityInput(c.chatID, func(input string) {
			c.watch.Priority = input
			c.editWatch()
			c.curStep = inputFieldToEditStep
		})
	default:
		log.Errorf("editWatchCommand: wrong watch edit handler id")
	}
}

func (c *editWatchCommand) editWatch() {
	if err := c.watches.Update(context.Background(), *c.watch); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Error(err)
		_, _ = sendWithLogError(c.api, botApi.NewMessage(c.chatID, "Erreur interne !"))
		return
	}

	_, _ = sendWithLogError(c.api, botApi.NewMessage(c.chatID, "Veille mise à jour avec succès !"))
}

func newFieldToEditInput(chatID int64, onFinish func(input string)) *textInput {
	input := newTextInput(chatID, "0 - modifier les mots-clés\n1 - modifier le statut suivi\n"+
		"2 - modifier la priorité suivie.", onFinish)
	input.AddValidation(validation{
		function: func(input string) bool {
			digit, err := strconv.Atoi(input)
			return err == nil && digit >= 0 && digit <= 2
		},
		errorMessage: "Envoyez un chiffre entre 0 et 2",
	})
	return input
}
