package bot

import (
	"context"
	"encoding/json"
	"errors"

	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/domain/models"
	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/logger"
	log "github.com/sirupsen/logrus"
)

const addWatchCommandName = "Ajouter une veille"

const maxWatchesPerChat = 10

var errorTooManyWatches = errors.New("user has too many watches")

type addWatchCommand struct {
	api                  apiInterface
	chatID               int64
	watches              watchRepository
	countries            countryRepository
	inputHandlers        []inputHandler
	curHandlerIndex      int
	offerType            models.OfferType
	offerID              string
	search               string
	status               string
	priority             string
	localisation         string
	finishCallback       func()
	finalMessageKeyboard *botApi.ReplyKeyboardMarkup
}

func newAddWatchCommand(api apiInterface, chatID int64, watchRepo watchRepository,
	countryRepo countryRepository) (*addWatchCommand, error) {

	count, err := watchRepo.GetCountByChat(context.Background(), chatID)
	if err != nil {
		return nil, err
	}
	if count >= maxWatchesPerChat {
		return nil, errorTooManyWatches
	}

	cmd := &addWatchCommand{api: api, chatID: chatID, watches: watchRepo, countries: countryRepo}

	offerType := newOfferTypeInput(chatID, func(offerType models.OfferType) {
		cmd.offerType = offerType
		cmd.curHandlerIndex++
	})

	offerID := newOfferIDInput(chatID, func(offerID string) {
		cmd.offerID = offerID
		cmd.curHandlerIndex++
	})

	search := newSearchTextInput(chatID, func(search string) {
		cmd.search = search
		cmd.curHandlerIndex++
	})

	status := newStatusInput(chatID, func(status string) {
		cmd.status = status
		cmd.curHandlerIndex++
	})

	priority := newPriorityInput(chatID, func(priority string) {
		cmd.priority = priority
		cmd.curHandlerIndex++
	})

	localisation := newLocalisationInput(chatID, countryRepo, func(localisation string) {
		cmd.localisation = localisation
		cmd.curHandlerIndex++
	})

	cmd.inputHandlers = []inputHandler{offerType, offerID, search, status, priority, localisation}
	return cmd, nil
}

func (c *addWatchCommand) WithFinishCallback(callback func()) {
	c.finishCallback = callback
}

func (c *addWatchCommand) WithKeyboardOnFinalMessage(keyboard botApi.ReplyKeyboardMarkup) {
	c.finalMessageKeyboard = &keyboard
}

func (c *addWatchCommand) SaveState() ([]byte, error) {

	return json.Marshal(&struct {
		CurHandlerIndex int
		OfferType       models.OfferType
		OfferID         string
		Search          string
		Status          string
		Priority        string
		Localisation    string
	}{
		CurHandlerIndex: c.curHandlerIndex,
		OfferType:       c.offerType,
		OfferID:         c.offerID,
		Search:          c.search,
		Status:          c.status,
		Priority:        c.priority,
		Localisation:    c.localisation,
	})
}

func (c *addWatchCommand) LoadState(data []byte) error {

	aux := &struct {
		CurHandlerIndex int
		OfferType       models.OfferType
		OfferID         string
		Search          string
		Status          string
		Priority        string
		Localisation    string
	}{}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	c.curHandlerIndex = aux.CurHandlerIndex
	c.offerType = aux.OfferType
	c.offerID = aux.OfferID
	c.search = aux.Search
	c.status = aux.Status
	c.priority = aux.Priority
	c.localisation = aux.Localisation
	return nil
}

func (c *addWatchCommand) Run() {
	_, _ = sendWithLogError(c.api, c.inputHandlers[0].InitMessage())
}

func (c *addWatchCommand) OnUserInput(input string) {

	previousIndex := c.curHandlerIndex
	msg := c.inputHandlers[c.curHandlerIndex].HandleInput(input)

	handlerChanged := previousIndex != c.curHandlerIndex
	allHandlersFinished := c.curHandlerIndex >= len(c.inputHandlers)

	if !handlerChanged {
		_, _ = sendWithLogError(c.api, msg)
		return
	}

	if !allHandlersFinished {
		_, _ = sendWithLogError(c.api, c.inputHandlers[c.curHandlerIndex].InitMessage())
		return
	}

	c.addWatch()
	if c.finishCallback != nil {
		c.finishCallback()
	}
}

func (c *addWatchCommand) addWatch() {

	filters := models.DefaultFilters()
	filters.Search = c.search
	filters.Status = c.status
	filters.Priority = c.priority
	filters.Localisation = c.localisation

	watch := models.NewWatch(c.chatID, c.offerType, c.offerID, filters)
	msg := botApi.NewMessage(c.chatID, "")
	if c.finalMessageKeyboard != nil {
		msg.ReplyMarkup = c.finalMessageKeyboard
	}

	if err := c.watches.Add(context.Background(), *watch); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Error(err)
		msg.Text = "Erreur interne !"
		_, _ = sendWithLogError(c.api, msg)
		return
	}

	msg.Text = "Veille ajoutée avec succès !"
	_, _ = sendWithLogError(c.api, msg)
}

func newOfferIDInput(chatID int64, onFinish func(input string)) *textInput {
	input := newTextInput(chatID, "Indiquez l'identifiant de l'offre à suivre, ou \"0\" pour suivre "+
		"toutes vos offres de ce type.", func(value string) {
		if value == "0" {
			value = ""
		}
		onFinish(value)
	})
	return input
}

func newSearchTextInput(chatID int64, onFinish func(input string)) *textInput {
	return newTextInput(chatID, "Entrez des mots-clés pour filtrer les candidatures "+
		"(nom, compétences...), ou \"-\" pour ne pas filtrer.", func(value string) {
		if value == "-" {
			value = ""
		}
		onFinish(value)
	})
}
