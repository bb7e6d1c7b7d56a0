// Package bot binds the service layer to the Discord gateway: slash command
// registration, interaction dispatch and rendering of embeds, buttons and
// modals.
package bot

import (
	"strings"

	"github.com/bwmarrin/discordgo"

	"vending-bot/internal/logger"
	"vending-bot/internal/service"
)

const (
	// verifiedRoleName is the guild role granted on /auth, when it exists.
	verifiedRoleName = "認証済み"
	// ticketCategoryName groups the private ticket channels.
	ticketCategoryName = "🎫 チケット"
	// maxCatalogButtons is the platform cap on buttons per message.
	maxCatalogButtons = 25

	buyButtonPrefix   = "buy_"
	closeButtonPrefix = "ticket_close_"
	panelButtonID     = "ticket_create"
	ticketModalID     = "ticket_modal"
)

type Bot struct {
	session *discordgo.Session
	svc     *service.Service
	log     *logger.Logger

	commandHandlers map[string]func(i *discordgo.InteractionCreate)
}

func New(session *discordgo.Session, svc *service.Service, log *logger.Logger) *Bot {
	b := &Bot{session: session, svc: svc, log: log}
	b.commandHandlers = map[string]func(i *discordgo.InteractionCreate){
		"auth":         b.handleAuth,
		"show":         b.handleShow,
		"newitem":      b.handleNewItem,
		"addcoins":     b.handleAddCoins,
		"del":          b.handleDeleteItem,
		"change":       b.handleChangePrice,
		"additem":      b.handleAddStock,
		"buy":          b.handleBuy,
		"transaction":  b.handleTransactions,
		"ticket":       b.handleCreateTicket,
		"tickets":      b.handleListTickets,
		"nuke":         b.handleNuke,
		"profile":      b.handleProfile,
		"help":         b.handleHelp,
		"ticket-panel": b.handleTicketPanel,
	}
	return b
}

// Start registers the event handlers and opens the gateway connection.
func (b *Bot) Start() error {
	b.session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers |
		discordgo.IntentMessageContent

	b.session.AddHandler(b.onReady)
	b.session.AddHandler(b.onInteractionCreate)

	return b.session.Open()
}

func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.log.Info("connected to discord", "user", r.User.Username, "id", r.User.ID)

	registered, err := s.ApplicationCommandBulkOverwrite(s.State.User.ID, "", commands())
	if err != nil {
		b.log.Error("failed to register slash commands", "error", err)
		return
	}
	b.log.Info("registered slash commands", "count", len(registered))
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		if h, ok := b.commandHandlers[name]; ok {
			h(i)
		}
	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		switch {
		case strings.HasPrefix(customID, buyButtonPrefix):
			b.handleBuyButton(i, strings.TrimPrefix(customID, buyButtonPrefix))
		case strings.HasPrefix(customID, closeButtonPrefix):
			b.handleCloseButton(i, strings.TrimPrefix(customID, closeButtonPrefix))
		case customID == panelButtonID:
			b.handlePanelButton(i)
		}
	case discordgo.InteractionModalSubmit:
		if i.ModalSubmitData().CustomID == ticketModalID {
			b.handleTicketModal(i)
		}
	}
}
