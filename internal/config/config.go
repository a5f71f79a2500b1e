// Package config loads the bot configuration from an optional YAML file and
// BDAY_* environment variables, applies defaults and validates the result.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-telegram/bot/models"
	"github.com/spf13/viper"

	apperrors "github.com/edgard/birthdaybot/internal/errors"
)

// EnvPrefix prefixes environment overrides, e.g. BDAY_TELEGRAM_TOKEN.
const EnvPrefix = "BDAY"

// Config is the complete application configuration.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Reminder  ReminderConfig  `mapstructure:"reminder"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Gemini    GeminiConfig    `mapstructure:"gemini"`
	Messages  MessagesConfig  `mapstructure:"messages"`
}

type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

type TelegramConfig struct {
	Token              string `mapstructure:"token"                validate:"required"`
	DropPendingUpdates bool   `mapstructure:"drop_pending_updates"`

	// ServerURL overrides the Bot API endpoint. Empty means the public API.
	ServerURL string `mapstructure:"server_url" validate:"omitempty,url"`

	// BotInfo is filled at startup from getMe.
	BotInfo *models.User `mapstructure:"-"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// ReminderConfig controls the birthday reminder loop.
type ReminderConfig struct {
	Interval         time.Duration `mapstructure:"interval"          validate:"min=1s"`
	RecoveryInterval time.Duration `mapstructure:"recovery_interval" validate:"min=1s"`
	LeadDays         int           `mapstructure:"lead_days"         validate:"min=1,max=365"`
}

// SchedulerConfig holds cron tasks keyed by task name.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks" validate:"dive"`
}

type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule" validate:"required_if=Enabled true"`
}

// GeminiConfig configures optional greeting suggestions. They are disabled
// while APIKey is empty.
type GeminiConfig struct {
	APIKey            string        `mapstructure:"api_key"`
	Model             string        `mapstructure:"model"              validate:"required"`
	Temperature       float32       `mapstructure:"temperature"        validate:"min=0,max=2"`
	Timeout           time.Duration `mapstructure:"timeout"            validate:"min=1s,max=10m"`
	MaxRetries        int           `mapstructure:"max_retries"        validate:"min=0,max=10"`
	RetryDelay        time.Duration `mapstructure:"retry_delay"`
	SystemInstruction string        `mapstructure:"system_instruction"`

	// BreakerThreshold consecutive failures suspend suggestions for BreakerCooldown.
	BreakerThreshold int           `mapstructure:"breaker_threshold" validate:"min=1,max=100"`
	BreakerCooldown  time.Duration `mapstructure:"breaker_cooldown"  validate:"min=1s"`
}

// Enabled reports whether an API key is configured.
func (g GeminiConfig) Enabled() bool {
	return g.APIKey != ""
}

// MessagesConfig holds every user-visible text. Fields ending in Fmt are
// fmt format strings; Reminder is an html/template. All texts are sent with
// HTML parse mode.
type MessagesConfig struct {
	Welcome           string `mapstructure:"welcome"              validate:"required"`
	Help              string `mapstructure:"help"                 validate:"required"`
	Fallback          string `mapstructure:"fallback"             validate:"required"`
	AskNameMsg        string `mapstructure:"ask_name_msg"         validate:"required"`
	NameTooShortMsg   string `mapstructure:"name_too_short_msg"   validate:"required"`
	AskDateFmt        string `mapstructure:"ask_date_fmt"         validate:"required"`
	DateFormatMsg     string `mapstructure:"date_format_msg"      validate:"required"`
	DateInFutureMsg   string `mapstructure:"date_in_future_msg"   validate:"required"`
	PersonAddedFmt    string `mapstructure:"person_added_fmt"     validate:"required"`
	ListEmptyMsg      string `mapstructure:"list_empty_msg"       validate:"required"`
	ListHeader        string `mapstructure:"list_header"          validate:"required"`
	ListEntryFmt      string `mapstructure:"list_entry_fmt"       validate:"required"`
	DaysUntilFmt      string `mapstructure:"days_until_fmt"       validate:"required"`
	TodayLabel        string `mapstructure:"today_label"          validate:"required"`
	TomorrowLabel     string `mapstructure:"tomorrow_label"       validate:"required"`
	DeletePromptMsg   string `mapstructure:"delete_prompt_msg"    validate:"required"`
	DeleteEmptyMsg    string `mapstructure:"delete_empty_msg"     validate:"required"`
	DeletedFmt        string `mapstructure:"deleted_fmt"          validate:"required"`
	DeleteNotFoundMsg string `mapstructure:"delete_not_found_msg" validate:"required"`
	CancelledMsg      string `mapstructure:"cancelled_msg"        validate:"required"`
	ErrorGeneralMsg   string `mapstructure:"error_general_msg"    validate:"required"`
	ButtonAdd         string `mapstructure:"button_add"           validate:"required"`
	ButtonList        string `mapstructure:"button_list"          validate:"required"`
	ButtonDelete      string `mapstructure:"button_delete"        validate:"required"`
	ButtonHelp        string `mapstructure:"button_help"          validate:"required"`
	ButtonCancel      string `mapstructure:"button_cancel"        validate:"required"`
	DeleteButtonFmt   string `mapstructure:"delete_button_fmt"    validate:"required"`
	Reminder          string `mapstructure:"reminder"             validate:"required"`
	CommandStartDesc  string `mapstructure:"command_start_desc"   validate:"required"`
	CommandHelpDesc   string `mapstructure:"command_help_desc"    validate:"required"`
	CommandCancelDesc string `mapstructure:"command_cancel_desc"  validate:"required"`
}

// LoadConfig reads the YAML file at path, if it exists, overlays BDAY_*
// environment variables and validates the result. An empty path skips the file.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, apperrors.NewConfigError(fmt.Sprintf("failed to read config file %s", path), err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to parse config", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, apperrors.NewConfigError("invalid config", err)
	}

	return cfg, nil
}
