package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewListHandler returns a handler for the list button.
func NewListHandler(deps HandlerDeps) bot.HandlerFunc {
	return listHandler{deps}.Handle
}

type listHandler struct {
	deps HandlerDeps
}

func (h listHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "list")

	if update.CallbackQuery == nil {
		log.WarnContext(ctx, "List handler received update without callback query", "update_id", update.ID)
		return
	}
	answerCallback(ctx, b, log, update.CallbackQuery)

	userID := update.CallbackQuery.From.ID
	chatID := callbackChatID(update.CallbackQuery)
	msgs := h.deps.Config.Messages

	entries, err := h.deps.People.List(ctx, userID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to list people", "user_id", userID, "error", err)
		sendHTML(ctx, b, log, chatID, msgs.ErrorGeneralMsg, mainMenuKeyboard(msgs))
		return
	}

	if len(entries) == 0 {
		sendHTML(ctx, b, log, chatID, msgs.ListEmptyMsg, mainMenuKeyboard(msgs))
		return
	}

	pages := renderList(msgs, entries)
	for i, page := range pages {
		if i == len(pages)-1 {
			sendHTML(ctx, b, log, chatID, page, mainMenuKeyboard(msgs))
		} else {
			sendHTML(ctx, b, log, chatID, page, nil)
		}
	}
	log.DebugContext(ctx, "Sent list", "user_id", userID, "count", len(entries), "pages", len(pages))
}
