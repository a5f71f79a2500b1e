package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/birthdaybot/internal/birthday"
	"github.com/edgard/birthdaybot/internal/config"
	"github.com/edgard/birthdaybot/internal/people"
)

// Callback data carried by inline buttons.
const (
	CallbackAdd          = "add_person"
	CallbackList         = "show_list"
	CallbackDelete       = "delete_person"
	CallbackDeletePrefix = "delete:"
	CallbackCancel       = "cancel"
	CallbackHelp         = "help"
)

const sendMessageTimeout = 10 * time.Second

func mainMenuKeyboard(msgs config.MessagesConfig) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: msgs.ButtonAdd, CallbackData: CallbackAdd}},
			{{Text: msgs.ButtonList, CallbackData: CallbackList}},
			{{Text: msgs.ButtonDelete, CallbackData: CallbackDelete}},
			{{Text: msgs.ButtonHelp, CallbackData: CallbackHelp}},
		},
	}
}

func cancelKeyboard(msgs config.MessagesConfig) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: msgs.ButtonCancel, CallbackData: CallbackCancel}},
		},
	}
}

// deleteKeyboard lists one button per person followed by a cancel button.
func deleteKeyboard(msgs config.MessagesConfig, entries []people.Entry) *models.InlineKeyboardMarkup {
	rows := make([][]models.InlineKeyboardButton, 0, len(entries)+1)
	for _, e := range entries {
		rows = append(rows, []models.InlineKeyboardButton{{
			Text:         fmt.Sprintf(msgs.DeleteButtonFmt, e.Name, birthday.FormatDate(e.BirthDate)),
			CallbackData: CallbackDeletePrefix + strconv.FormatInt(e.ID, 10),
		}})
	}
	rows = append(rows, []models.InlineKeyboardButton{{Text: msgs.ButtonCancel, CallbackData: CallbackCancel}})
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// sendHTML sends text with HTML parse mode and an optional keyboard. Failures are logged.
func sendHTML(ctx context.Context, b *bot.Bot, log *slog.Logger, chatID int64, text string, markup models.ReplyMarkup) {
	sendCtx, cancel := context.WithTimeout(ctx, sendMessageTimeout)
	defer cancel()

	params := &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if markup != nil {
		params.ReplyMarkup = markup
	}

	if _, err := b.SendMessage(sendCtx, params); err != nil {
		log.ErrorContext(ctx, "Failed to send message", "error", err, "chat_id", chatID)
	}
}

// answerCallback acknowledges a button press so the client stops its spinner.
func answerCallback(ctx context.Context, b *bot.Bot, log *slog.Logger, query *models.CallbackQuery) {
	if _, err := b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: query.ID}); err != nil {
		log.WarnContext(ctx, "Failed to answer callback query", "error", err, "callback_query_id", query.ID)
	}
}

// senderID returns the id of the user behind a message or button press, or 0.
func senderID(update *models.Update) int64 {
	switch {
	case update.Message != nil && update.Message.From != nil:
		return update.Message.From.ID
	case update.CallbackQuery != nil:
		return update.CallbackQuery.From.ID
	default:
		return 0
	}
}

// callbackChatID finds the chat a button was pressed in. Private chats share
// the user's id, which is the fallback when the message is unavailable.
func callbackChatID(query *models.CallbackQuery) int64 {
	switch {
	case query.Message.Message != nil:
		return query.Message.Message.Chat.ID
	case query.Message.InaccessibleMessage != nil:
		return query.Message.InaccessibleMessage.Chat.ID
	default:
		return query.From.ID
	}
}
