package handlers

import (
	"log/slog"

	"github.com/edgard/birthdaybot/internal/config"
	"github.com/edgard/birthdaybot/internal/people"
	"github.com/edgard/birthdaybot/internal/reachability"
	"github.com/edgard/birthdaybot/internal/session"
)

// HandlerDeps provides dependencies for Telegram command and callback handlers.
type HandlerDeps struct {
	Logger    *slog.Logger
	Config    *config.Config
	People    *people.Service
	Sessions  *session.Store
	Reachable *reachability.Set
}
