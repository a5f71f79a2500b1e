package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewHelpHandler returns a handler for the /help command and the help button.
func NewHelpHandler(deps HandlerDeps) bot.HandlerFunc {
	return helpHandler{deps}.Handle
}

// helpHandler processes the /help command using injected dependencies.
type helpHandler struct {
	deps HandlerDeps
}

func (h helpHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "help")

	var chatID int64
	switch {
	case update.Message != nil:
		chatID = update.Message.Chat.ID
	case update.CallbackQuery != nil:
		answerCallback(ctx, b, log, update.CallbackQuery)
		chatID = callbackChatID(update.CallbackQuery)
	default:
		log.WarnContext(ctx, "Help handler received update without message or callback", "update_id", update.ID)
		return
	}

	log.InfoContext(ctx, "Handling help request", "chat_id", chatID, "user_id", senderID(update))

	msgs := h.deps.Config.Messages
	sendHTML(ctx, b, log, chatID, msgs.Help, mainMenuKeyboard(msgs))
}
