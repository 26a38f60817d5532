package bot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/asaskevich/EventBus"
	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/clients/marketplace"
	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/domain/events"
	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/domain/models"
	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/logger"
	log "github.com/sirupsen/logrus"
)

type Repositories struct {
	Watch   watchRepository
	Country countryRepository
	Data    dataRepository
}

type dataRepository interface {
	Save(ctx context.Context, id string, data []byte) error
	LoadAndRemove(ctx context.Context, id string) ([]byte, error)
}

type watchRepository interface {
	GetByChat(ctx context.Context, chatID int64) ([]models.Watch, error)
	GetByID(ctx context.Context, ID int64) (*models.Watch, error)
	GetCountByChat(ctx context.Context, chatID int64) (int64, error)
	Add(ctx context.Context, watch models.Watch) error
	Update(ctx context.Context, watch models.Watch) error
	Remove(ctx context.Context, ID int) error
}

type countryRepository interface {
	GetIdByName(ctx context.Context, name string) (string, error)
	GetRegionIdByName(ctx context.Context, name string) (string, error)
}

type Bot struct {
	api          *botApi.BotAPI
	client       *marketplace.Client
	userContexts map[int64]*userContext
	bus          EventBus.Bus
	repositories Repositories
}

const backToMenuCommandName = "Menu principal"
const profileCommandName = "Mon profil"

var globalCommands = []string{addWatchCommandName, editWatchCommandName, removeWatchCommandName,
	browseCommandName, profileCommandName, backToMenuCommandName}

func NewBot(token string, client *marketplace.Client, bus EventBus.Bus, repositories Repositories) (*Bot, error) {

	api, err := botApi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	log.Infof("Authorized on account %s", api.Self.UserName)

	err = botApi.SetLogger(log.StandardLogger())
	if err != nil {
		return nil, err
	}

	if client == nil {
		return nil, errors.New("marketplace client is nil")
	}

	if bus == nil {
		return nil, errors.New("bus is nil")
	}

	if repositories.Watch == nil {
		return nil, errors.New("watch repository is nil")
	}

	if repositories.Country == nil {
		return nil, errors.New("country repository is nil")
	}

	if repositories.Data == nil {
		return nil, errors.New("data repository is nil")
	}

	createdBot := &Bot{api: api, client: client, userContexts: make(map[int64]*userContext),
		bus: bus, repositories: repositories}

	err = bus.Subscribe(events.ApplicationFoundTopic, createdBot.onApplicationFound)
	if err != nil {
		return nil, err
	}
	return createdBot, nil
}

func (b *Bot) Run() {

	err := b.loadUserContexts()
	if err != nil {
		log.Errorf("Error loading user contexts: %v", err)
	}

	updateConfig := botApi.NewUpdate(0)
	updateConfig.Timeout = 60

	updates := b.api.GetUpdatesChan(updateConfig)

	for update := range updates {

		if update.Message == nil {
			continue
		}

		if update.Message.Chat.IsGroup() || update.Message.Chat.IsSuperGroup() {
			continue
		}

		go b.handleMessage(update.Message)
	}
}

func (b *Bot) Stop() {
	err := b.saveUserContexts()
	if err != nil {
		log.Errorf("Error saving user contexts: %v", err)
	}
}

func (b *Bot) handleMessage(message *botApi.Message) {

	cmd := message.Command()
	if cmd == "" && slices.Contains(globalCommands, message.Text) {
		cmd = message.Text
	}

	if cmd != "" {
		b.handleCommand(message.From, message.Chat, cmd)
	} else {
		b.handleInput(message.From, message.Chat, message.Text)
	}
}

func (b *Bot) handleCommand(user *botApi.User, chat *botApi.Chat, command string) {

	var response botApi.Chattable
	var err error

	if b.userContexts[user.ID] == nil {
		b.userContexts[user.ID] = newUserContext(chat.ID)
	}
	var ctx = b.userContexts[user.ID]

	switch command {
	case "start":
		messageResponse := botApi.NewMessage(chat.ID, "Bienvenue sur DestinyJobs ! "+
			"Suivez vos candidatures directement depuis Telegram.")
		messageResponse.ReplyMarkup = defaultReplyKeyboard()
		response = messageResponse
		delete(b.userContexts, user.ID)
	case addWatchCommandName, editWatchCommandName, removeWatchCommandName, browseCommandName:
		cmd, cmdErr := b.createCommand(command, chat.ID)
		if cmdErr != nil {
			err = fmt.Errorf("couldn't create %s: %w", command, cmdErr)
		} else {
			ctx.RunCommand(cmd, command)
		}
	case profileCommandName:
		response = b.profileSummary(chat.ID)
	case backToMenuCommandName:
		messageResponse := botApi.NewMessage(chat.ID, "Retour au menu principal.")
		messageResponse.ReplyMarkup = defaultReplyKeyboard()
		response = messageResponse
		delete(b.userContexts, user.ID)
	default:
		response = botApi.NewMessage(chat.ID, "Commande inconnue !")
	}

	if err != nil {
		if errors.Is(err, errorNoUserWatches) {
			response = botApi.NewMessage(chat.ID, "Vous n'avez aucune veille.")
		} else if errors.Is(err, errorTooManyWatches) {
			response = botApi.NewMessage(chat.ID,
				fmt.Sprintf("Vous avez atteint le nombre maximal de veilles (%v).", maxWatchesPerChat))
		} else {
			response = botApi.NewMessage(chat.ID, "Erreur interne !")
			log.Error(err)
		}
	}

	if response == nil {
		return
	}

	_, _ = sendWithLogError(b.api, response)
}

func (b *Bot) createCommand(name string, chatID int64) (command, error) {

	switch name {
	case addWatchCommandName:
		return newAddWatchCommand(b.api, chatID, b.repositories.Watch, b.repositories.Country)
	case editWatchCommandName:
		return newEditWatchCommand(b.api, chatID, b.bus, b.repositories.Watch)
	case removeWatchCommandName:
		return newRemoveWatchCommand(b.api, chatID, b.bus, b.repositories.Watch)
	case browseCommandName:
		return newBrowseCommand(b.api, chatID, b.client), nil
	default:
		return nil, fmt.Errorf("unknown command: %v", name)
	}
}

func (b *Bot) handleInput(user *botApi.User, chat *botApi.Chat, input string) {

	ctx := b.userContexts[user.ID]
	if ctx == nil {
		return
	}

	if ctx.HasRunningCommand() {
		ctx.OnUserInput(input)
		return
	}

	_, _ = sendWithLogError(b.api, botApi.NewMessage(chat.ID, "Une commande est attendue."))
}

func (b *Bot) profileSummary(chatID int64) botApi.Chattable {

	profile, err := b.client.GetProviderProfile()
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeApi).Errorf("failed to get provider profile: %v", err)
		return botApi.NewMessage(chatID, "Impossible de récupérer votre profil. Réessayez.")
	}

	text := fmt.Sprintf("Profil : %v %v", profile.FirstName, profile.LastName)
	if profile.OrganizationName != "" {
		text += "\nOrganisation : " + profile.OrganizationName
	}
	if profile.Email != "" {
		text += "\nEmail : " + profile.Email
	}
	if profile.Website != "" {
		text += "\nSite web : " + profile.Website
	}
	return botApi.NewMessage(chatID, text)
}

func (b *Bot) onApplicationFound(event events.ApplicationFound) {

	application := event.Application

	text := fmt.Sprintf("Nouvelle candidature pour « %v » :\n%v — %v",
		application.OfferTitle, application.DisplayName, application.StatusLabel)
	if application.Compatibility.Total > 0 {
		text += fmt.Sprintf("\nCompatibilité : %.0f%%", application.Compatibility.Total)
	}
	if application.HasCV {
		text += "\nCV : " + application.CVURL
	}

	msg := botApi.NewMessage(event.Watch.ChatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeTgApi).Errorf("error occured while sending message: %v", err)
	}
}

func (b *Bot) saveUserContexts() error {
	data, err := json.Marshal(b.userContexts)
	if err != nil {
		return err
	}
	return b.repositories.Data.Save(context.Background(), "user_contexts", data)
}

func (b *Bot) loadUserContexts() error {
	data, err := b.repositories.Data.LoadAndRemove(context.Background(), "user_contexts")
	if err != nil || data == nil {
		return err
	}
	if err = json.Unmarshal(data, &b.userContexts); err != nil {
		return err
	}

	var errs []error
	for i, ctx := range b.userContexts {

		if ctx.curCommandName == "" {
			continue
		}

		cmd, err := b.createCommand(ctx.curCommandName, ctx.chatID)
		if err != nil {
			errs = append(errs, err)
			delete(b.userContexts, i)
			continue
		}

		saveableCmd, ok := cmd.(saveable)
		if !ok {
			ctx.ResumeCommandAfterBotRestart(cmd)
			continue
		}

		err = saveableCmd.LoadState(ctx.curCommandState)
		if err != nil {
			errs = append(errs, err)
			delete(b.userContexts, i)
			continue
		}

		ctx.ResumeCommandAfterBotRestart(cmd)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

func defaultReplyKeyboard() botApi.ReplyKeyboardMarkup {
	return botApi.NewReplyKeyboard(
		botApi.NewKeyboardButtonRow(
			botApi.NewKeyboardButton(addWatchCommandName),
			botApi.NewKeyboardButton(editWatchCommandName),
			botApi.NewKeyboardButton(removeWatchCommandName),
		),
		botApi.NewKeyboardButtonRow(
			botApi.NewKeyboardButton(browseCommandName),
			botApi.NewKeyboardButton(profileCommandName),
		),
	)
}

func keyboardWithExit() botApi.ReplyKeyboardMarkup {
	return botApi.NewReplyKeyboard(
		botApi.NewKeyboardButtonRow(
			botApi.NewKeyboardButton(backToMenuCommandName),
		),
	)
}
