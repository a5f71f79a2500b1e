package handlers

import (
	tgbot "github.com/go-telegram/bot"
)

// RegisteredHandler represents a handler with its pattern, middleware and,
// for commands, the description shown in the bot's command menu.
type RegisteredHandler struct {
	HandlerType tgbot.HandlerType
	Pattern     string
	Handler     tgbot.HandlerFunc
	Middleware  []tgbot.Middleware
	MatchType   tgbot.MatchType
	Description string
}

// RegisterAllCommands initializes and returns a map of all command and button handlers.
func RegisterAllCommands(deps HandlerDeps) map[string]RegisteredHandler {
	handlers := make(map[string]RegisteredHandler)
	msgs := deps.Config.Messages

	help := NewHelpHandler(deps)
	cancel := NewCancelHandler(deps)

	handlers["/start"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "start",
		Handler:     NewStartHandler(deps),
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Description: msgs.CommandStartDesc,
	}
	handlers["/help"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "help",
		Handler:     help,
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Description: msgs.CommandHelpDesc,
	}
	handlers["/cancel"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     "cancel",
		Handler:     cancel,
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Description: msgs.CommandCancelDesc,
	}

	handlers[CallbackAdd] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeCallbackQueryData,
		Pattern:     CallbackAdd,
		Handler:     NewAddHandler(deps),
		MatchType:   tgbot.MatchTypeExact,
	}
	handlers[CallbackList] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeCallbackQueryData,
		Pattern:     CallbackList,
		Handler:     NewListHandler(deps),
		MatchType:   tgbot.MatchTypeExact,
	}
	handlers[CallbackDelete] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeCallbackQueryData,
		Pattern:     CallbackDelete,
		Handler:     NewDeleteMenuHandler(deps),
		MatchType:   tgbot.MatchTypeExact,
	}
	handlers[CallbackDeletePrefix] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeCallbackQueryData,
		Pattern:     CallbackDeletePrefix,
		Handler:     NewDeleteHandler(deps),
		MatchType:   tgbot.MatchTypePrefix,
	}
	handlers[CallbackCancel] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeCallbackQueryData,
		Pattern:     CallbackCancel,
		Handler:     cancel,
		MatchType:   tgbot.MatchTypeExact,
	}
	handlers[CallbackHelp] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeCallbackQueryData,
		Pattern:     CallbackHelp,
		Handler:     help,
		MatchType:   tgbot.MatchTypeExact,
	}

	return handlers
}
