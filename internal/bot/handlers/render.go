package handlers

import (
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/edgard/birthdaybot/internal/birthday"
	"github.com/edgard/birthdaybot/internal/config"
	"github.com/edgard/birthdaybot/internal/people"
)

// maxMessageLength is Telegram's limit for a text message, in characters.
const maxMessageLength = 4096

func daysUntilText(msgs config.MessagesConfig, days int) string {
	switch days {
	case 0:
		return msgs.TodayLabel
	case 1:
		return msgs.TomorrowLabel
	default:
		return fmt.Sprintf(msgs.DaysUntilFmt, days)
	}
}

func personAddedText(msgs config.MessagesConfig, e people.Entry) string {
	return fmt.Sprintf(msgs.PersonAddedFmt,
		html.EscapeString(e.Name),
		birthday.FormatDate(e.BirthDate),
		e.Age,
		daysUntilText(msgs, e.DaysUntil),
	)
}

// renderList formats the entries as one or more messages, each within
// Telegram's length limit. Entries are never split across messages.
func renderList(msgs config.MessagesConfig, entries []people.Entry) []string {
	var pages []string
	var sb strings.Builder
	sb.WriteString(msgs.ListHeader)

	for _, e := range entries {
		line := fmt.Sprintf(msgs.ListEntryFmt,
			html.EscapeString(e.Name),
			birthday.FormatDate(e.BirthDate),
			e.Age,
			daysUntilText(msgs, e.DaysUntil),
		)
		if sb.Len() > 0 && utf8.RuneCountInString(sb.String())+utf8.RuneCountInString(line) > maxMessageLength {
			pages = append(pages, strings.TrimSpace(sb.String()))
			sb.Reset()
		}
		sb.WriteString(line)
	}

	if sb.Len() > 0 {
		pages = append(pages, strings.TrimSpace(sb.String()))
	}
	return pages
}
