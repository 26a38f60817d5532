package bot

import (
	"context"

	"github.com/asaskevich/EventBus"
	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/domain/events"
	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/domain/models"
	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/logger"
	log "github.com/sirupsen/logrus"
)

const removeWatchCommandName = "Supprimer une veille"

type removeWatchCommand struct {
	api                  apiInterface
	chatID               int64
	bus                  EventBus.Bus
	watches              watchRepository
	input                inputHandler
	watchID              int
	watchInputFinished   bool
	finishCallback       func()
	finalMessageKeyboard *botApi.ReplyKeyboardMarkup
}

func newRemoveWatchCommand(api apiInterface, chatID int64, bus EventBus.Bus, watchRepo watchRepository) (*removeWatchCommand, error) {

	cmd := removeWatchCommand{api: api, chatID: chatID, bus: bus, watches: watchRepo}
	input, err := newWatchInput(chatID, watchRepo, func(w *models.Watch) {
		cmd.watchID = w.ID
		cmd.watchInputFinished = true
	})
	if err != nil {
		return nil, err
	}
	cmd.input = input
	return &cmd, nil
}

func (c *removeWatchCommand) WithFinishCallback(callback func()) {
	c.finishCallback = callback
}

func (c *removeWatchCommand) WithKeyboardOnFinalMessage(keyboard botApi.ReplyKeyboardMarkup) {
	c.finalMessageKeyboard = &keyboard
}

func (c *removeWatchCommand) Run() {
	_, _ = sendWithLogError(c.api, c.input.InitMessage())
}

func (c *removeWatchCommand) OnUserInput(input string) {

	msg := c.input.HandleInput(input)

	if !c.watchInputFinished {
		_, _ = sendWithLogError(c.api, msg)
		return
	}

	c.removeWatch(c.watchID)

	if c.finishCallback != nil {
		c.finishCallback()
	}
}

func (c *removeWatchCommand) removeWatch(watchID int) {

	msg := botApi.NewMessage(c.chatID, "")
	if c.finalMessageKeyboard != nil {
		msg.ReplyMarkup = c.finalMessageKeyboard
	}

	if err := c.watches.Remove(context.Background(), watchID); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Error(err)
		msg.Text = "Erreur interne !"
		_, _ = sendWithLogError(c.api, msg)
		return
	}

	c.bus.Publish(events.WatchDeletedTopic, events.WatchDeleted{WatchID: watchID})
	msg.Text = "Veille supprimée avec succès !"
	_, _ = sendWithLogError(c.api, msg)
}
