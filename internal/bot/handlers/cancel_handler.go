package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewCancelHandler returns a handler for /cancel and the cancel button.
// It abandons any dialog in progress and returns to the main menu.
func NewCancelHandler(deps HandlerDeps) bot.HandlerFunc {
	return cancelHandler{deps}.Handle
}

type cancelHandler struct {
	deps HandlerDeps
}

func (h cancelHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "cancel")

	var chatID int64
	switch {
	case update.Message != nil && update.Message.From != nil:
		chatID = update.Message.Chat.ID
	case update.CallbackQuery != nil:
		answerCallback(ctx, b, log, update.CallbackQuery)
		chatID = callbackChatID(update.CallbackQuery)
	default:
		log.WarnContext(ctx, "Cancel handler received update without sender", "update_id", update.ID)
		return
	}

	userID := senderID(update)
	hadDialog := h.deps.Sessions.Clear(userID)
	log.InfoContext(ctx, "Dialog cancelled", "user_id", userID, "had_dialog", hadDialog)

	msgs := h.deps.Config.Messages
	sendHTML(ctx, b, log, chatID, msgs.CancelledMsg, mainMenuKeyboard(msgs))
}
