package handlers

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/birthdaybot/internal/people"
	"github.com/edgard/birthdaybot/internal/session"
)

// NewAddHandler returns a handler for the add button. It starts the two-step
// dialog; the replies are handled by the default handler.
func NewAddHandler(deps HandlerDeps) bot.HandlerFunc {
	return addHandler{deps}.Handle
}

type addHandler struct {
	deps HandlerDeps
}

func (h addHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "add")

	if update.CallbackQuery == nil {
		log.WarnContext(ctx, "Add handler received update without callback query", "update_id", update.ID)
		return
	}
	answerCallback(ctx, b, log, update.CallbackQuery)

	userID := update.CallbackQuery.From.ID
	h.deps.Sessions.StartAdd(userID)
	log.InfoContext(ctx, "Add dialog started", "user_id", userID)

	msgs := h.deps.Config.Messages
	sendHTML(ctx, b, log, callbackChatID(update.CallbackQuery), msgs.AskNameMsg, cancelKeyboard(msgs))
}

// dialog advances the add-person dialog with a text reply.
type dialog struct {
	deps HandlerDeps
	log  *slog.Logger
}

func (d dialog) handle(ctx context.Context, b *bot.Bot, msg *models.Message, state session.State) {
	switch state.Step {
	case session.AwaitingName:
		d.handleName(ctx, b, msg)
	case session.AwaitingDate:
		d.handleDate(ctx, b, msg, state.Name)
	}
}

func (d dialog) handleName(ctx context.Context, b *bot.Bot, msg *models.Message) {
	msgs := d.deps.Config.Messages
	userID := msg.From.ID

	name, err := d.deps.People.ValidateName(msg.Text)
	if err != nil {
		d.log.DebugContext(ctx, "Rejected name", "user_id", userID, "error", err)
		sendHTML(ctx, b, d.log, msg.Chat.ID, msgs.NameTooShortMsg, cancelKeyboard(msgs))
		return
	}

	d.deps.Sessions.SetName(userID, name)
	sendHTML(ctx, b, d.log, msg.Chat.ID, fmt.Sprintf(msgs.AskDateFmt, html.EscapeString(name)), cancelKeyboard(msgs))
}

func (d dialog) handleDate(ctx context.Context, b *bot.Bot, msg *models.Message, name string) {
	msgs := d.deps.Config.Messages
	userID := msg.From.ID

	bd, err := d.deps.People.ParseBirthDate(msg.Text)
	switch {
	case errors.Is(err, people.ErrBirthDateInFuture):
		sendHTML(ctx, b, d.log, msg.Chat.ID, msgs.DateInFutureMsg, cancelKeyboard(msgs))
		return
	case err != nil:
		d.log.DebugContext(ctx, "Rejected birth date", "user_id", userID, "error", err)
		sendHTML(ctx, b, d.log, msg.Chat.ID, msgs.DateFormatMsg, cancelKeyboard(msgs))
		return
	}

	entry, err := d.deps.People.Add(ctx, people.NewPerson{OwnerID: userID, Name: name, BirthDate: bd})
	d.deps.Sessions.Clear(userID)
	if err != nil {
		d.log.ErrorContext(ctx, "Failed to add person", "user_id", userID, "error", err)
		sendHTML(ctx, b, d.log, msg.Chat.ID, msgs.ErrorGeneralMsg, mainMenuKeyboard(msgs))
		return
	}

	sendHTML(ctx, b, d.log, msg.Chat.ID, personAddedText(msgs, entry), mainMenuKeyboard(msgs))
}
