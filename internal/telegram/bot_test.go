package telegram

import (
	"context"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcanale/agendabot/internal/agent"
)

type fakeSender struct {
	sent      []tgbotapi.Chattable
	requested []tgbotapi.Chattable
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func (f *fakeSender) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.requested = append(f.requested, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

type fakeAgent struct {
	reply          agent.Reply
	callbackResult string
	messages       []string
	callbacks      []string
}

func (f *fakeAgent) HandleMessage(ctx context.Context, text string) agent.Reply {
	f.messages = append(f.messages, text)
	return f.reply
}

func (f *fakeAgent) HandleCallback(ctx context.Context, data string) string {
	f.callbacks = append(f.callbacks, data)
	return f.callbackResult
}

func TestHandleIncomingMessagePlainReply(t *testing.T) {
	fs := &fakeSender{}
	fa := &fakeAgent{reply: agent.Reply{Text: "🗓️ Nessun evento trovato."}}
	b := &Bot{sender: fs, agent: fa}

	msg := &tgbotapi.Message{From: &tgbotapi.User{ID: 42}, Chat: &tgbotapi.Chat{ID: 100}, Text: "che impegni ho"}
	b.handleIncomingMessage(context.Background(), msg)

	assert.Equal(t, []string{"che impegni ho"}, fa.messages)
	require.Len(t, fs.sent, 1)
	out := fs.sent[0].(tgbotapi.MessageConfig)
	assert.Equal(t, int64(100), out.ChatID)
	assert.Equal(t, "🗓️ Nessun evento trovato.", out.Text)
	assert.Nil(t, out.ReplyMarkup)
}

func TestHandleIncomingMessageConfirmButtons(t *testing.T) {
	fs := &fakeSender{}
	fa := &fakeAgent{reply: agent.Reply{
		Text: "🗑️ Vuoi eliminare 'Dentista' del 2026-06-05 alle 15:00?",
		Confirm: &agent.ConfirmButtons{
			ConfirmLabel: "✅ Conferma",
			ConfirmData:  "delete_confirm:2026-06-05:15:00",
			CancelLabel:  "❌ Annulla",
			CancelData:   "delete_cancel",
		},
	}}
	b := &Bot{sender: fs, agent: fa}

	msg := &tgbotapi.Message{From: &tgbotapi.User{ID: 42}, Chat: &tgbotapi.Chat{ID: 100}, Text: "cancella il dentista del 5 giugno"}
	b.handleIncomingMessage(context.Background(), msg)

	require.Len(t, fs.sent, 1)
	out := fs.sent[0].(tgbotapi.MessageConfig)
	kb, ok := out.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	require.Len(t, kb.InlineKeyboard, 1)
	require.Len(t, kb.InlineKeyboard[0], 2)
	assert.Equal(t, "✅ Conferma", kb.InlineKeyboard[0][0].Text)
	assert.Equal(t, "delete_confirm:2026-06-05:15:00", *kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "❌ Annulla", kb.InlineKeyboard[0][1].Text)
	assert.Equal(t, "delete_cancel", *kb.InlineKeyboard[0][1].CallbackData)
}

func TestHandleCallbackAnswersAndEdits(t *testing.T) {
	fs := &fakeSender{}
	fa := &fakeAgent{callbackResult: "🗑️ Eliminati 2 eventi."}
	b := &Bot{sender: fs, agent: fa}

	cb := &tgbotapi.CallbackQuery{
		ID:      "cb-1",
		Data:    "delete_confirm:2026-06-05:",
		Message: &tgbotapi.Message{MessageID: 7, Chat: &tgbotapi.Chat{ID: 100}},
	}
	b.handleCallback(context.Background(), cb)

	assert.Equal(t, []string{"delete_confirm:2026-06-05:"}, fa.callbacks)

	require.Len(t, fs.requested, 1)
	answer := fs.requested[0].(tgbotapi.CallbackConfig)
	assert.Equal(t, "cb-1", answer.CallbackQueryID)

	require.Len(t, fs.sent, 1)
	edit := fs.sent[0].(tgbotapi.EditMessageTextConfig)
	assert.Equal(t, int64(100), edit.ChatID)
	assert.Equal(t, 7, edit.MessageID)
	assert.Equal(t, "🗑️ Eliminati 2 eventi.", edit.Text)
	assert.Nil(t, edit.ReplyMarkup, "buttons are dropped on edit")
}

func TestHandleCallbackWithoutMessageSendsPlainReply(t *testing.T) {
	fs := &fakeSender{}
	fa := &fakeAgent{callbackResult: "❌ Cancellazione annullata."}
	b := &Bot{sender: fs, agent: fa}

	// Prompts older than 48h come back without the originating message.
	cb := &tgbotapi.CallbackQuery{
		ID:   "cb-old",
		Data: "delete_cancel",
		From: &tgbotapi.User{ID: 42},
	}
	b.handleCallback(context.Background(), cb)

	assert.Equal(t, []string{"delete_cancel"}, fa.callbacks)
	require.Len(t, fs.requested, 1)

	require.Len(t, fs.sent, 1)
	out, ok := fs.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok, "falls back to a plain message, not an edit")
	assert.Equal(t, int64(42), out.ChatID)
	assert.Equal(t, "❌ Cancellazione annullata.", out.Text)
}

func TestHandleIncomingMessageStartCommand(t *testing.T) {
	fs := &fakeSender{}
	fa := &fakeAgent{}
	b := &Bot{sender: fs, agent: fa}

	msg := &tgbotapi.Message{
		From: &tgbotapi.User{ID: 42},
		Chat: &tgbotapi.Chat{ID: 100},
		Text: "/start",
		Entities: []tgbotapi.MessageEntity{
			{Type: "bot_command", Offset: 0, Length: 6},
		},
	}
	b.handleIncomingMessage(context.Background(), msg)

	assert.Empty(t, fa.messages, "commands never reach the pipeline")
	require.Len(t, fs.sent, 1)
	out := fs.sent[0].(tgbotapi.MessageConfig)
	assert.Equal(t, welcomeMessage, out.Text)
}

func TestHandleIncomingMessageIgnoresNonText(t *testing.T) {
	fs := &fakeSender{}
	fa := &fakeAgent{}
	b := &Bot{sender: fs, agent: fa}

	msg := &tgbotapi.Message{From: &tgbotapi.User{ID: 42}, Chat: &tgbotapi.Chat{ID: 100}}
	b.handleIncomingMessage(context.Background(), msg)

	assert.Empty(t, fa.messages)
	assert.Empty(t, fs.sent)
}
