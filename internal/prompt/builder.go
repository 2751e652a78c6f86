package prompt

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/iammorganparry/clive/apps/uigen/internal/models"
)

// Mode is the prompt branch selected for a message.
type Mode string

const (
	ModeGeneral Mode = "general"
	ModeUpdate  Mode = "update"
)

const truncationMarker = "\n\n[... middle truncated ...]\n\n"

// Builder composes prompts from the system block, history and the previous component.
type Builder struct {
	keywords    []string
	window      int
	maxArtifact int
}

func NewBuilder(p Profile) *Builder {
	keywords := make([]string, 0, len(p.Keywords))
	for _, k := range p.Keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			keywords = append(keywords, k)
		}
	}
	return &Builder{
		keywords:    keywords,
		window:      p.HistoryWindow,
		maxArtifact: p.MaxArtifactBytes,
	}
}

// IsUpdateRequest reports whether message asks to change an existing component,
// i.e. contains one of the update keywords, case-insensitively.
func (b *Builder) IsUpdateRequest(message string) bool {
	lower := strings.ToLower(message)
	for _, k := range b.keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// Classify picks update mode only when the message asks for a change and
// there is a previous component to change.
func (b *Builder) Classify(message, artifact string) Mode {
	if artifact != "" && b.IsUpdateRequest(message) {
		return ModeUpdate
	}
	return ModeGeneral
}

// Build returns the prompt for message along with the mode used.
func (b *Builder) Build(message string, history []models.Message, artifact string) (string, Mode) {
	mode := b.Classify(message, artifact)
	if mode == ModeUpdate {
		return b.Update(message, artifact), mode
	}
	return b.General(message, history), mode
}

// General embeds the most recent history entries, oldest first, and the new request.
func (b *Builder) General(message string, history []models.Message) string {
	if b.window >= 0 && len(history) > b.window {
		history = history[len(history)-b.window:]
	}

	var historyText string
	if len(history) > 0 {
		lines := make([]string, 0, len(history))
		for _, m := range history {
			role := m.Role
			if role == "" {
				role = models.RoleUser
			}
			lines = append(lines, fmt.Sprintf("[%s] %s", strings.ToUpper(string(role)), m.Text))
		}
		historyText = "\n\n=== Recent conversation ===\n" + strings.Join(lines, "\n") + "\n\n"
	}

	return System + "\n" + historyText + "\nUser request:\n\"\"\"" + message + "\"\"\"\n\nRespond with the required JSON only."
}

// Update embeds the previous component and asks for the full revised source.
func (b *Builder) Update(message, artifact string) string {
	artifact = clip(artifact, b.maxArtifact)
	return System +
		"\n\nYou previously generated this component:\n\"\"\"" + artifact + "\"\"\"" +
		"\n\nNow the user wants to modify it as follows:\n\"\"\"" + message + "\"\"\"" +
		"\n\nReturn full updated component code with inline CSS. Respond strictly with JSON only."
}

// clip keeps the first quarter and last three quarters of limit bytes of s,
// split on rune boundaries. limit <= 0 disables clipping.
func clip(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	head := limit / 4
	for head > 0 && !utf8.RuneStart(s[head]) {
		head--
	}
	tail := len(s) - (limit - head)
	for tail < len(s) && !utf8.RuneStart(s[tail]) {
		tail++
	}
	return s[:head] + truncationMarker + s[tail:]
}
