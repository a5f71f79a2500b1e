package reminder

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"html/template"
	"log/slog"
	"time"

	"github.com/edgard/birthdaybot/internal/birthday"
	"github.com/edgard/birthdaybot/internal/database"
)

// GreetingGenerator suggests a short congratulation for a person.
type GreetingGenerator interface {
	SuggestGreeting(ctx context.Context, name string, age int) (string, error)
}

// MessageData is the data available to the reminder template.
type MessageData struct {
	Name      string
	BirthDate string
	Age       int
	DaysUntil int
	Greeting  string
}

// Composer renders reminder texts in Telegram HTML. Values are escaped by
// html/template, so names and greetings can never inject markup.
type Composer struct {
	tmpl    *template.Template
	greeter GreetingGenerator
	logger  *slog.Logger
}

// NewComposer parses the reminder template. greeter may be nil.
func NewComposer(text string, greeter GreetingGenerator, logger *slog.Logger) (*Composer, error) {
	tmpl, err := template.New("reminder").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse reminder template: %w", err)
	}
	return &Composer{
		tmpl:    tmpl,
		greeter: greeter,
		logger:  logger.With("component", "reminder_composer"),
	}, nil
}

// Compose builds the reminder for p as seen on today. The age is the one the
// person turns on the upcoming birthday.
func (c *Composer) Compose(ctx context.Context, p database.Person, today time.Time) string {
	next := birthday.NextOccurrence(p.BirthDate, today)
	data := MessageData{
		Name:      p.Name,
		BirthDate: birthday.FormatDate(p.BirthDate),
		Age:       birthday.Age(p.BirthDate, next),
		DaysUntil: birthday.DaysUntil(p.BirthDate, today),
	}

	if c.greeter != nil {
		greeting, err := c.greeter.SuggestGreeting(ctx, data.Name, data.Age)
		if err != nil {
			c.logger.WarnContext(ctx, "Greeting suggestion failed, sending plain reminder",
				"person_id", p.ID, "error", err)
		} else {
			data.Greeting = greeting
		}
	}

	var buf bytes.Buffer
	if err := c.tmpl.Execute(&buf, data); err != nil {
		c.logger.ErrorContext(ctx, "Failed to render reminder template", "person_id", p.ID, "error", err)
		return fmt.Sprintf("🎂 <b>%s</b>: %s (%d)", html.EscapeString(data.Name), data.BirthDate, data.Age)
	}
	return buf.String()
}
