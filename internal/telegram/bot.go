package telegram

import (
	"context"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/gcanale/agendabot/internal/agent"
)

const welcomeMessage = "👋 Ciao! Dimmi cosa vuoi aggiungere, spostare o cancellare dalla tua agenda."

// Agent is the conversational core the transport delegates to.
type Agent interface {
	HandleMessage(ctx context.Context, text string) agent.Reply
	HandleCallback(ctx context.Context, data string) string
}

type Bot struct {
	api    *tgbotapi.BotAPI
	sender sender
	agent  Agent
}

func New(botToken string, a Agent) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	return &Bot{api: api, sender: botAPISender{api: api}, agent: a}, nil
}

// Start consumes updates until ctx is cancelled or the update channel closes.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	log.Printf("Telegram bot @%s in ascolto", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message != nil {
				b.handleIncomingMessage(ctx, update.Message)
				continue
			}
			if update.CallbackQuery != nil {
				b.handleCallback(ctx, update.CallbackQuery)
				continue
			}
		}
	}
}

func (b *Bot) handleIncomingMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.Text == "" {
		return
	}
	if msg.Command() == "start" {
		b.sendMessage(msg.Chat.ID, welcomeMessage)
		return
	}

	log.Printf("Messaggio da %d: %q", msg.From.ID, msg.Text)

	reply := b.agent.HandleMessage(ctx, msg.Text)

	out := tgbotapi.NewMessage(msg.Chat.ID, reply.Text)
	if reply.Confirm != nil {
		out.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(reply.Confirm.ConfirmLabel, reply.Confirm.ConfirmData),
				tgbotapi.NewInlineKeyboardButtonData(reply.Confirm.CancelLabel, reply.Confirm.CancelData),
			),
		)
	}
	if _, err := b.sender.Send(out); err != nil {
		log.Printf("Invio messaggio fallito: %v", err)
	}
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	// Acknowledge first so the client stops the spinner even if the
	// action below is slow.
	if _, err := b.sender.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		log.Printf("Risposta al callback fallita: %v", err)
	}

	result := b.agent.HandleCallback(ctx, cb.Data)

	// Callbacks on prompts older than 48h arrive without the originating
	// message; reply in the private chat instead of editing.
	if cb.Message == nil {
		b.sendMessage(cb.From.ID, result)
		return
	}

	// Replace the prompt text and drop its buttons so the confirmation
	// cannot be pressed twice.
	edit := tgbotapi.NewEditMessageText(cb.Message.Chat.ID, cb.Message.MessageID, result)
	if _, err := b.sender.Send(edit); err != nil {
		log.Printf("Modifica messaggio fallita: %v", err)
	}
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.sender.Send(msg); err != nil {
		log.Printf("Invio messaggio fallito: %v", err)
	}
}
