package telegram

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Notifier sends HTML text messages to private chats. In a private chat the
// chat id equals the user id, so an owner id is a valid destination.
type Notifier struct {
	bot    *bot.Bot
	logger *slog.Logger
}

// NewNotifier creates a Notifier that sends through b.
func NewNotifier(b *bot.Bot, logger *slog.Logger) *Notifier {
	return &Notifier{bot: b, logger: logger.With("component", "notifier")}
}

// Notify sends text to the owner. Any error means the message was not delivered.
func (n *Notifier) Notify(ctx context.Context, ownerID int64, text string) error {
	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    ownerID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		n.logger.DebugContext(ctx, "Message delivery failed", "owner_id", ownerID, "error", err)
		return fmt.Errorf("send message to %d: %w", ownerID, err)
	}
	return nil
}
