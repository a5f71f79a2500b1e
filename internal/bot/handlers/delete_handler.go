package handlers

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/birthdaybot/internal/people"
)

// NewDeleteMenuHandler returns a handler for the delete button. It shows one
// button per person the user owns.
func NewDeleteMenuHandler(deps HandlerDeps) bot.HandlerFunc {
	return deleteMenuHandler{deps}.Handle
}

type deleteMenuHandler struct {
	deps HandlerDeps
}

func (h deleteMenuHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "delete_menu")

	if update.CallbackQuery == nil {
		log.WarnContext(ctx, "Delete menu handler received update without callback query", "update_id", update.ID)
		return
	}
	answerCallback(ctx, b, log, update.CallbackQuery)

	userID := update.CallbackQuery.From.ID
	chatID := callbackChatID(update.CallbackQuery)
	msgs := h.deps.Config.Messages

	entries, err := h.deps.People.List(ctx, userID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to list people for deletion", "user_id", userID, "error", err)
		sendHTML(ctx, b, log, chatID, msgs.ErrorGeneralMsg, mainMenuKeyboard(msgs))
		return
	}
	if len(entries) == 0 {
		sendHTML(ctx, b, log, chatID, msgs.DeleteEmptyMsg, mainMenuKeyboard(msgs))
		return
	}

	sendHTML(ctx, b, log, chatID, msgs.DeletePromptMsg, deleteKeyboard(msgs, entries))
}

// NewDeleteHandler returns a handler for delete:<id> buttons. Deletion is
// scoped to the user pressing the button.
func NewDeleteHandler(deps HandlerDeps) bot.HandlerFunc {
	return deleteHandler{deps}.Handle
}

type deleteHandler struct {
	deps HandlerDeps
}

func (h deleteHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "delete")

	if update.CallbackQuery == nil {
		log.WarnContext(ctx, "Delete handler received update without callback query", "update_id", update.ID)
		return
	}
	answerCallback(ctx, b, log, update.CallbackQuery)

	userID := update.CallbackQuery.From.ID
	chatID := callbackChatID(update.CallbackQuery)
	msgs := h.deps.Config.Messages

	personID, err := strconv.ParseInt(strings.TrimPrefix(update.CallbackQuery.Data, CallbackDeletePrefix), 10, 64)
	if err != nil {
		log.WarnContext(ctx, "Invalid delete callback data", "data", update.CallbackQuery.Data, "error", err)
		sendHTML(ctx, b, log, chatID, msgs.DeleteNotFoundMsg, mainMenuKeyboard(msgs))
		return
	}

	deleted, err := h.deps.People.Delete(ctx, userID, personID)
	switch {
	case errors.Is(err, people.ErrNotFound):
		log.InfoContext(ctx, "Person to delete not found", "user_id", userID, "person_id", personID)
		sendHTML(ctx, b, log, chatID, msgs.DeleteNotFoundMsg, mainMenuKeyboard(msgs))
	case err != nil:
		log.ErrorContext(ctx, "Failed to delete person", "user_id", userID, "person_id", personID, "error", err)
		sendHTML(ctx, b, log, chatID, msgs.ErrorGeneralMsg, mainMenuKeyboard(msgs))
	default:
		sendHTML(ctx, b, log, chatID, fmt.Sprintf(msgs.DeletedFmt, html.EscapeString(deleted.Name)), mainMenuKeyboard(msgs))
	}
}
