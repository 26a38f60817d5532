package bot

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/clients/marketplace"
	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/domain/models"
	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/logger"
	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/pagination"
	"github.com/Billa1818/destinyjobs-recruiter-bot/internal/services"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const browseCommandName = "Parcourir les candidatures"

var transitionVerbs = map[string]services.TransitionAction{
	"accepter":        services.ActionAccept,
	"rejeter":         services.ActionReject,
	"présélectionner": services.ActionShortlist,
	"entretien":       services.ActionInterview,
	"attente":         services.ActionHold,
	"vue":             services.ActionViewed,
	"embaucher":       services.ActionHire,
}

type browseCommand struct {
	api                  apiInterface
	chatID               int64
	client               *marketplace.Client
	browser              *services.ApplicationBrowser
	typeInput            inputHandler
	lastView             services.BrowserView
	finishCallback       func()
	finalMessageKeyboard *botApi.ReplyKeyboardMarkup
}

func newBrowseCommand(api apiInterface, chatID int64, client *marketplace.Client) *browseCommand {

	cmd := &browseCommand{api: api, chatID: chatID, client: client}
	cmd.typeInput = newOfferTypeInput(chatID, func(offerType models.OfferType) {
		cmd.browser = services.NewApplicationBrowser(client, offerType, "")
		cmd.reloadAndShow()
	})
	return cmd
}

func (c *browseCommand) WithFinishCallback(callback func()) {
	c.finishCallback = callback
}

func (c *browseCommand) WithKeyboardOnFinalMessage(keyboard botApi.ReplyKeyboardMarkup) {
	c.finalMessageKeyboard = &keyboard
}

func (c *browseCommand) Run() {
	_, _ = sendWithLogError(c.api, c.typeInput.InitMessage())
}

func (c *browseCommand) OnUserInput(input string) {

	if c.browser == nil {
		msg := c.typeInput.HandleInput(input)
		if msg != nil {
			_, _ = sendWithLogError(c.api, msg)
		}
		return
	}

	c.handleBrowseInput(strings.TrimSpace(input))
}

func (c *browseCommand) handleBrowseInput(input string) {

	if page, err := strconv.Atoi(input); err == nil {
		c.browser.SetPage(page)
		c.reloadAndShow()
		return
	}

	verb, argument, _ := strings.Cut(input, " ")
	verb = strings.ToLower(verb)

	if action, ok := transitionVerbs[verb]; ok {
		c.applyTransition(action, argument)
		return
	}

	switch verb {
	case "suivant":
		c.browser.SetPage(c.lastView.Pagination.CurrentPage + 1)
	case "précédent":
		c.browser.SetPage(c.lastView.Pagination.CurrentPage - 1)
	case "taille":
		size, err := strconv.Atoi(argument)
		if err != nil {
			_, _ = sendWithLogError(c.api, botApi.NewMessage(c.chatID, "Indiquez une taille de page : 5, 10, 20, 30 ou 50."))
			return
		}
		c.browser.SetPageSize(size)
	case "recherche":
		c.browser.Search(argument)
	case "statut":
		c.setFilter(models.FilterStatus, argument)
	case "priorité":
		c.setFilter(models.FilterPriority, argument)
	case "tri":
		c.setFilter(models.FilterOrdering, argument)
	case "reset":
		c.browser.ResetFilters()
	default:
		_, _ = sendWithLogError(c.api, botApi.NewMessage(c.chatID, browseHelp()))
		return
	}

	c.reloadAndShow()
}

func (c *browseCommand) setFilter(key, value string) {
	if value == "-" {
		value = ""
	}
	if err := c.browser.SetFilter(key, value); err != nil {
		log.Error(err)
	}
}

// applyTransition maps the list index the recruiter sees to the real
// application id, issues the transition and redisplays the refreshed
// page. On failure the browsing session stays open so the action can be
// retried.
func (c *browseCommand) applyTransition(action services.TransitionAction, argument string) {

	indexStr, notes, _ := strings.Cut(argument, " ")
	index, err := strconv.Atoi(indexStr)
	if err != nil || index < 1 || index > len(c.lastView.Applications) {
		_, _ = sendWithLogError(c.api, botApi.NewMessage(c.chatID,
			fmt.Sprintf("Indiquez le numéro d'une candidature entre 1 et %v.", len(c.lastView.Applications))))
		return
	}

	application := c.lastView.Applications[index-1]

	view, err := c.browser.ApplyTransition(action, application.ID, notes)
	if err != nil {
		if !errors.Is(err, services.ErrStaleResponse) {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeApi).
				Errorf("failed to apply transition %v to application %v: %v", action, application.ID, err)
			_, _ = sendWithLogError(c.api, botApi.NewMessage(c.chatID,
				fmt.Sprintf("Échec de l'action : %v\nRéessayez.", err)))
		}
		return
	}

	c.lastView = view
	_, _ = sendWithLogError(c.api, botApi.NewMessage(c.chatID, c.renderView(view)))
}

func (c *browseCommand) reloadAndShow() {

	view, err := c.browser.Reload()
	if err != nil {
		if errors.Is(err, services.ErrStaleResponse) {
			return
		}
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeApi).Errorf("failed to reload applications: %v", err)
		_, _ = sendWithLogError(c.api, botApi.NewMessage(c.chatID,
			"Impossible de charger les candidatures. Envoyez un numéro de page pour réessayer."))
		return
	}

	c.lastView = view
	_, _ = sendWithLogError(c.api, botApi.NewMessage(c.chatID, c.renderView(view)))
}

func (c *browseCommand) renderView(view services.BrowserView) string {

	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("%v candidature(s)", view.Pagination.TotalCount))
	if summary := describeFilters(view.Filters); summary != "" {
		builder.WriteString(" — " + summary)
	}
	builder.WriteString("\n\n")

	if len(view.Applications) == 0 {
		builder.WriteString("Aucune candidature ne correspond à ces critères.")
		return builder.String()
	}

	for i, application := range view.Applications {
		builder.WriteString(fmt.Sprintf("%v. %v — %v\n", i+1, application.DisplayName, application.OfferTitle))
		builder.WriteString(fmt.Sprintf("   %v, priorité %v", application.StatusLabel,
			models.PriorityLabel(string(application.Priority))))
		if application.Compatibility.Total > 0 {
			builder.WriteString(fmt.Sprintf(", compatibilité %.0f%%", application.Compatibility.Total))
		}
		if !application.CreatedAt.IsZero() {
			builder.WriteString(", reçue le " + application.CreatedAt.Format("02/01/2006"))
		}
		builder.WriteString("\n")
	}

	if pager := renderPager(view.Pagination); pager != "" {
		builder.WriteString("\n" + pager + "\n")
	}

	builder.WriteString("\n" + browseHelp())
	return builder.String()
}

// renderPager draws the centered page window, e.g. "1 … 4 [5] 6 … 12".
// A single page renders nothing at all.
func renderPager(state pagination.State) string {

	window := pagination.ComputeWindow(state.CurrentPage, state.TotalPages)
	if len(window.Pages) == 0 {
		return ""
	}

	var parts []string
	if window.ShowFirst {
		parts = append(parts, "1")
	}
	if window.LeadingEllipsis {
		parts = append(parts, "…")
	}
	for _, page := range window.Pages {
		if page == state.CurrentPage {
			parts = append(parts, fmt.Sprintf("[%v]", page))
		} else {
			parts = append(parts, strconv.Itoa(page))
		}
	}
	if window.TrailingEllipsis {
		parts = append(parts, "…")
	}
	if window.ShowLast {
		parts = append(parts, strconv.Itoa(state.TotalPages))
	}

	return "Page " + strings.Join(parts, " ")
}

func describeFilters(filters models.Filters) string {

	var parts []string
	if filters.Search != "" {
		parts = append(parts, fmt.Sprintf("recherche « %v »", filters.Search))
	}
	if filters.Status != "" {
		parts = append(parts, "statut "+models.StatusLabel(filters.Status))
	}
	if filters.Priority != "" {
		parts = append(parts, "priorité "+models.PriorityLabel(filters.Priority))
	}
	if filters.Localisation != "" {
		parts = append(parts, "localisation "+filters.Localisation)
	}
	return strings.Join(parts, ", ")
}

func browseHelp() string {
	return "Envoyez un numéro de page, \"suivant\", \"précédent\", \"taille 20\", " +
		"\"recherche <mots>\", \"statut <valeur>\", \"priorité <valeur>\", \"reset\",\n" +
		"ou une action : \"accepter 1\", \"rejeter 2\", \"présélectionner 1\", " +
		"\"entretien 3\", \"attente 1\", \"vue 2\", \"embaucher 1\" (notes en option)."
}

func (c *browseCommand) SaveState() ([]byte, error) {

	state := browseState{}
	if c.browser != nil {
		filters := c.browser.Filters()
		state.OfferType = c.browser.OfferType()
		state.Filters = filters
		state.Page = c.lastView.Pagination.CurrentPage
		state.PageSize = c.lastView.Pagination.PageSize
	}
	return json.Marshal(&state)
}

func (c *browseCommand) LoadState(data []byte) error {

	var state browseState
	if err := json.Unmarshal(data, &state); err != nil {
		return err
	}

	if state.OfferType == "" {
		return nil
	}

	c.browser = services.NewApplicationBrowser(c.client, state.OfferType, "")
	c.browser.Search(state.Filters.Search)
	for key, value := range map[string]string{
		models.FilterStatus:       state.Filters.Status,
		models.FilterPriority:     state.Filters.Priority,
		models.FilterOrdering:     state.Filters.Ordering,
		models.FilterExperience:   state.Filters.Experience,
		models.FilterLocalisation: state.Filters.Localisation,
	} {
		if value != "" {
			if err := c.browser.SetFilter(key, value); err != nil {
				return err
			}
		}
	}
	if state.PageSize != 0 {
		c.browser.SetPageSize(state.PageSize)
	}
	if state.Page > 1 {
		c.browser.SetPage(state.Page)
	}
	return nil
}

type browseState struct {
	OfferType models.OfferType
	Filters   models.Filters
	Page      int
	PageSize  int
}
