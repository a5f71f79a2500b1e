package gemini

// GreetingPromptFmt is the user prompt for a greeting suggestion.
// The format string expects 2 parameters: the person's name and the age they turn.
const GreetingPromptFmt = `Write a birthday greeting for %s, who is turning %d tomorrow.`

// maxGreetingRunes caps the suggestion so a runaway answer can't flood a reminder.
const maxGreetingRunes = 400
