package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/birthdaybot/internal/session"
)

// NewDefaultHandler returns the handler for updates no other handler matched:
// replies within the add dialog, any other text, and unknown buttons.
func NewDefaultHandler(deps HandlerDeps) bot.HandlerFunc {
	return defaultHandler{deps}.Handle
}

type defaultHandler struct {
	deps HandlerDeps
}

func (h defaultHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "default")
	msgs := h.deps.Config.Messages

	if update.CallbackQuery != nil {
		log.InfoContext(ctx, "Unknown callback data", "data", update.CallbackQuery.Data, "user_id", update.CallbackQuery.From.ID)
		answerCallback(ctx, b, log, update.CallbackQuery)
		return
	}

	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	if state := h.deps.Sessions.Get(msg.From.ID); state.Step != session.Idle {
		if msg.Text == "" {
			sendHTML(ctx, b, log, msg.Chat.ID, msgs.Fallback, cancelKeyboard(msgs))
			return
		}
		log.DebugContext(ctx, "Continuing add dialog", "user_id", msg.From.ID, "step", state.Step)
		dialog{deps: h.deps, log: log}.handle(ctx, b, msg, state)
		return
	}

	sendHTML(ctx, b, log, msg.Chat.ID, msgs.Fallback, mainMenuKeyboard(msgs))
}
