package config

import (
	"time"

	"github.com/spf13/viper"
)

// Default values for configuration.
const (
	DefaultLogLevel = "info"
	DefaultDBPath   = "data/birthdays.db"

	DefaultReminderInterval         = time.Hour
	DefaultReminderRecoveryInterval = time.Minute
	DefaultReminderLeadDays         = 1

	// Six-field cron with seconds: every Sunday at 04:00.
	DefaultSQLMaintenanceSchedule = "0 0 4 * * 0"

	DefaultGeminiModel       = "gemini-2.0-flash"
	DefaultGeminiTemperature = 1.0
	DefaultGeminiTimeout     = 30 * time.Second
	DefaultGeminiMaxRetries  = 2
	DefaultGeminiRetryDelay  = 2 * time.Second
	DefaultBreakerThreshold  = 3
	DefaultBreakerCooldown   = 10 * time.Minute
)

// DefaultGreetingInstruction steers the optional greeting suggestion.
const DefaultGreetingInstruction = `You write short, warm birthday greetings that a person can send to a friend or relative.
Reply with the greeting only: one or two sentences, no quotes, no hashtags, no markup.`

// DefaultMessages are the built-in user-visible texts.
var DefaultMessages = MessagesConfig{
	Welcome: "👋 <b>Hi! I'm your birthday reminder bot.</b>\n\n" +
		"I keep track of birthdays and remind you the day before.\n\n" +
		"Use the buttons below to get started.",
	Help: "📖 <b>How to use the bot</b>\n\n" +
		"➕ <b>Add person</b>: enter a name, then a birth date as DD.MM.YYYY.\n" +
		"📋 <b>Show list</b>: everyone you track, with age and days until their birthday.\n" +
		"🗑️ <b>Delete person</b>: pick someone to remove.\n\n" +
		"⏰ I send a reminder the day before each birthday.\n\n" +
		"Commands: /start, /help, /cancel",
	Fallback:          "👋 Use the buttons below or /help for instructions.",
	AskNameMsg:        "✏️ Enter the person's name:",
	NameTooShortMsg:   "❌ The name must be at least 2 characters long. Try again:",
	AskDateFmt:        "📅 Now enter <b>%s</b>'s birth date in DD.MM.YYYY format (e.g. 15.03.1990):",
	DateFormatMsg:     "❌ Invalid date format. Use DD.MM.YYYY (e.g. 15.03.1990):",
	DateInFutureMsg:   "❌ The birth date cannot be in the future. Try again:",
	PersonAddedFmt:    "✅ <b>%s</b> added!\n\n📅 Date of birth: %s\n🎂 Age: %d\n⏳ Days until birthday: %s",
	ListEmptyMsg:      "📝 Your list is empty. Add someone with the button below.",
	ListHeader:        "📋 <b>Your birthdays:</b>\n\n",
	ListEntryFmt:      "👤 <b>%s</b>\n📅 %s\n🎂 Age: %d\n⏳ %s\n\n",
	DaysUntilFmt:      "%d days",
	TodayLabel:        "🎉 Today!",
	TomorrowLabel:     "🎂 Tomorrow!",
	DeletePromptMsg:   "🗑️ Choose who to delete:",
	DeleteEmptyMsg:    "📝 Your list is empty, there is nobody to delete.",
	DeletedFmt:        "✅ <b>%s</b> was deleted.",
	DeleteNotFoundMsg: "❌ That person was not found.",
	CancelledMsg:      "❌ Cancelled.",
	ErrorGeneralMsg:   "⚠️ Something went wrong. Please try again.",
	ButtonAdd:         "➕ Add person",
	ButtonList:        "📋 Show list",
	ButtonDelete:      "🗑️ Delete person",
	ButtonHelp:        "❓ Help",
	ButtonCancel:      "❌ Cancel",
	DeleteButtonFmt:   "🗑️ %s (%s)",
	Reminder: "⏰ <b>Birthday reminder!</b>\n\n" +
		"🎂 {{if eq .DaysUntil 1}}Tomorrow{{else}}In {{.DaysUntil}} days{{end}} it's <b>{{.Name}}</b>'s birthday!\n" +
		"📅 Date of birth: {{.BirthDate}}\n" +
		"🎉 Turning {{.Age}}!\n\n" +
		"{{if .Greeting}}💬 <i>{{.Greeting}}</i>\n\n{{end}}" +
		"Don't forget to congratulate them! 🎁",
	CommandStartDesc:  "Open the main menu",
	CommandHelpDesc:   "How to use the bot",
	CommandCancelDesc: "Cancel the current action",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", DefaultLogLevel)
	v.SetDefault("logger.json", false)

	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.server_url", "")
	v.SetDefault("telegram.drop_pending_updates", true)

	v.SetDefault("database.path", DefaultDBPath)

	v.SetDefault("reminder.interval", DefaultReminderInterval)
	v.SetDefault("reminder.recovery_interval", DefaultReminderRecoveryInterval)
	v.SetDefault("reminder.lead_days", DefaultReminderLeadDays)

	v.SetDefault("scheduler.tasks.sql_maintenance.enabled", true)
	v.SetDefault("scheduler.tasks.sql_maintenance.schedule", DefaultSQLMaintenanceSchedule)

	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", DefaultGeminiModel)
	v.SetDefault("gemini.temperature", DefaultGeminiTemperature)
	v.SetDefault("gemini.timeout", DefaultGeminiTimeout)
	v.SetDefault("gemini.max_retries", DefaultGeminiMaxRetries)
	v.SetDefault("gemini.retry_delay", DefaultGeminiRetryDelay)
	v.SetDefault("gemini.system_instruction", DefaultGreetingInstruction)
	v.SetDefault("gemini.breaker_threshold", DefaultBreakerThreshold)
	v.SetDefault("gemini.breaker_cooldown", DefaultBreakerCooldown)

	m := DefaultMessages
	for key, value := range map[string]string{
		"welcome":              m.Welcome,
		"help":                 m.Help,
		"fallback":             m.Fallback,
		"ask_name_msg":         m.AskNameMsg,
		"name_too_short_msg":   m.NameTooShortMsg,
		"ask_date_fmt":         m.AskDateFmt,
		"date_format_msg":      m.DateFormatMsg,
		"date_in_future_msg":   m.DateInFutureMsg,
		"person_added_fmt":     m.PersonAddedFmt,
		"list_empty_msg":       m.ListEmptyMsg,
		"list_header":          m.ListHeader,
		"list_entry_fmt":       m.ListEntryFmt,
		"days_until_fmt":       m.DaysUntilFmt,
		"today_label":          m.TodayLabel,
		"tomorrow_label":       m.TomorrowLabel,
		"delete_prompt_msg":    m.DeletePromptMsg,
		"delete_empty_msg":     m.DeleteEmptyMsg,
		"deleted_fmt":          m.DeletedFmt,
		"delete_not_found_msg": m.DeleteNotFoundMsg,
		"cancelled_msg":        m.CancelledMsg,
		"error_general_msg":    m.ErrorGeneralMsg,
		"button_add":           m.ButtonAdd,
		"button_list":          m.ButtonList,
		"button_delete":        m.ButtonDelete,
		"button_help":          m.ButtonHelp,
		"button_cancel":        m.ButtonCancel,
		"delete_button_fmt":    m.DeleteButtonFmt,
		"reminder":             m.Reminder,
		"command_start_desc":   m.CommandStartDesc,
		"command_help_desc":    m.CommandHelpDesc,
		"command_cancel_desc":  m.CommandCancelDesc,
	} {
		v.SetDefault("messages."+key, value)
	}
}
