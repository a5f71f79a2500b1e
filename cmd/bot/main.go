// Package main contains the entrypoint for the birthday reminder bot.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbot "github.com/go-telegram/bot"

	"github.com/edgard/birthdaybot/internal/bot"
	"github.com/edgard/birthdaybot/internal/bot/handlers"
	"github.com/edgard/birthdaybot/internal/bot/tasks"
	"github.com/edgard/birthdaybot/internal/config"
	"github.com/edgard/birthdaybot/internal/database"
	"github.com/edgard/birthdaybot/internal/gemini"
	"github.com/edgard/birthdaybot/internal/logger"
	"github.com/edgard/birthdaybot/internal/people"
	"github.com/edgard/birthdaybot/internal/reachability"
	"github.com/edgard/birthdaybot/internal/reminder"
	"github.com/edgard/birthdaybot/internal/session"
	"github.com/edgard/birthdaybot/internal/telegram"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run builds every component, runs the bot until ctx is cancelled and
// returns the process exit code.
func run(ctx context.Context) int {
	configPath := flag.String("config", "./config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Logger.Level, cfg.Logger.JSON)
	log.Info("Logger initialized", "level", cfg.Logger.Level, "json", cfg.Logger.JSON)

	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		log.Error("Failed to open database", "path", cfg.Database.Path, "error", err)
		return 1
	}
	defer database.CloseDB(db)
	store := database.NewStore(db, log)

	peopleSvc := people.NewService(store, nil, log)
	reachable := reachability.New()

	var greeter reminder.GreetingGenerator
	if cfg.Gemini.Enabled() {
		client, err := gemini.NewClient(ctx, cfg.Gemini, log)
		if err != nil {
			log.Error("Failed to initialize Gemini client", "error", err)
			return 1
		}
		greeter = client
		log.Info("Greeting suggestions enabled", "model", cfg.Gemini.Model)
	}

	composer, err := reminder.NewComposer(cfg.Messages.Reminder, greeter, log)
	if err != nil {
		log.Error("Failed to parse reminder template", "error", err)
		return 1
	}

	hDeps := handlers.HandlerDeps{
		Logger:    log,
		Config:    cfg,
		People:    peopleSvc,
		Sessions:  session.NewStore(),
		Reachable: reachable,
	}

	botOpts := []tgbot.Option{
		tgbot.WithMiddlewares(logger.Middleware(log), handlers.TrackReachability(reachable)),
		tgbot.WithDefaultHandler(handlers.NewDefaultHandler(hDeps)),
	}
	if cfg.Telegram.ServerURL != "" {
		botOpts = append(botOpts, tgbot.WithServerURL(cfg.Telegram.ServerURL))
	}
	tg, err := telegram.NewTelegramBot(cfg.Telegram.Token, log, botOpts...)
	if err != nil {
		log.Error("Failed to create Telegram bot", "error", err)
		return 1
	}

	cfg.Telegram.BotInfo, err = tg.GetMe(ctx)
	if err != nil {
		log.Error("Failed to get bot info", "error", err)
		return 1
	}
	log.Info("Retrieved bot info", "bot_id", cfg.Telegram.BotInfo.ID, "bot_username", cfg.Telegram.BotInfo.Username)

	if cfg.Telegram.DropPendingUpdates {
		if err := telegram.DropPendingUpdates(ctx, tg, log); err != nil {
			log.Warn("Failed to drop pending updates", "error", err)
		}
	}

	cmdHandlers := handlers.RegisterAllCommands(hDeps)
	if err := telegram.RegisterHandlers(tg, log, cmdHandlers); err != nil {
		log.Error("Failed to register Telegram handlers", "error", err)
		return 1
	}
	if err := telegram.SetCommands(ctx, tg, log, cmdHandlers); err != nil {
		log.Warn("Failed to set bot commands", "error", err)
	}

	reminders := reminder.NewScheduler(
		store,
		telegram.NewNotifier(tg, log),
		reachable,
		composer,
		nil,
		reminder.Config{
			Interval:         cfg.Reminder.Interval,
			RecoveryInterval: cfg.Reminder.RecoveryInterval,
			LeadDays:         cfg.Reminder.LeadDays,
		},
		log,
	)

	tDeps := tasks.TaskDeps{
		Logger: log,
		Store:  store,
		Config: cfg,
	}
	sched, err := bot.NewScheduler(log, &cfg.Scheduler, tasks.RegisterAllTasks(tDeps))
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}

	app := bot.NewBot(log, tg, reminders, sched)

	log.Info("Starting bot...")
	runErr := app.Run(ctx)
	log.Info("Bot run loop finished")

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		time.Sleep(time.Second)
		return 1
	}

	log.Info("Bot stopped gracefully")
	return 0
}
