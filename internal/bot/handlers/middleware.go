// Package handlers contains Telegram bot command, callback and message handlers,
// along with their registration logic and middleware.
package handlers

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/birthdaybot/internal/reachability"
)

// TrackReachability creates a middleware that marks every user who sends a
// message or presses a button as reachable for reminders.
func TrackReachability(reachable *reachability.Set) tgbot.Middleware {
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
			if userID := senderID(update); userID != 0 {
				reachable.Add(userID)
			}
			next(ctx, bot, update)
		}
	}
}
