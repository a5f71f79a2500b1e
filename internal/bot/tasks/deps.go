// Package tasks implements the cron-scheduled maintenance tasks of the bot.
package tasks

import (
	"log/slog"

	"github.com/edgard/birthdaybot/internal/config"
	"github.com/edgard/birthdaybot/internal/database"
)

// TaskDeps contains the dependencies shared by scheduled tasks.
type TaskDeps struct {
	Logger *slog.Logger
	Store  database.Store
	Config *config.Config
}
