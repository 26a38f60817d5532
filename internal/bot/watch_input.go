package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"

	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/domain/models"
)

var errorNoUserWatches = errors.New("user has no watches")

type watchInput struct {
	chatID   int64
	watches  []models.Watch
	onFinish func(watch *models.Watch)
}

func newWatchInput(chatID int64, watchRepo watchRepository, onFinish func(watch *models.Watch)) (*watchInput, error) {

	watches, err := watchRepo.GetByChat(context.Background(), chatID)
	if err != nil {
		return nil, err
	}
	if len(watches) == 0 {
		return nil, errorNoUserWatches
	}

	return &watchInput{chatID: chatID, watches: watches, onFinish: onFinish}, nil
}

func (a *watchInput) InitMessage() botApi.Chattable {

	var builder strings.Builder
	builder.WriteString("Choisissez une veille (envoyez son numéro) :\n")
	for i, watch := range a.watches {
		builder.WriteString(fmt.Sprintf("%v. %v\n", i+1, describeWatch(watch)))
	}

	msg := botApi.NewMessage(a.chatID, builder.String())
	msg.ReplyMarkup = keyboardWithExit()
	return msg
}

func (a *watchInput) HandleInput(input string) botApi.Chattable {

	index, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || index < 1 || index > len(a.watches) {
		return botApi.NewMessage(a.chatID, fmt.Sprintf("Envoyez un numéro entre 1 et %v.", len(a.watches)))
	}

	a.onFinish(&a.watches[index-1])
	return nil
}

func describeWatch(watch models.Watch) string {

	description := offerTypeLabel(watch.OfferType)
	if watch.OfferID != "" {
		description += " #" + watch.OfferID
	}
	if watch.Search != "" {
		description += fmt.Sprintf(" « %v »", watch.Search)
	}
	if watch.Status != "" {
		description += ", statut " + models.StatusLabel(watch.Status)
	}
	if watch.Priority != "" {
		description += ", priorité " + models.PriorityLabel(watch.Priority)
	}
	return description
}

func offerTypeLabel(offerType models.OfferType) string {
	switch offerType {
	case models.OfferJob:
		return string(choiceJob)
	case models.OfferConsultation:
		return string(choiceConsultation)
	case models.OfferFunding:
		return string(choiceFunding)
	default:
		return models.UnknownLabel
	}
}
