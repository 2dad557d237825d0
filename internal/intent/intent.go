package intent

import (
	"context"
	"regexp"
	"strings"
)

// Type labels what the user wants the assistant to do.
type Type string

const (
	TypeOpenApp   Type = "open_app"
	TypeSearch    Type = "search"
	TypeReminder  Type = "reminder"
	TypeCall      Type = "call"
	TypeMessage   Type = "message"
	TypeRecommend Type = "recommend"
	TypeQuestion  Type = "question"
	TypeChat      Type = "chat"
)

// Intent is a parsed user request. Argument carries the type-specific
// payload: the app name, the search query, the reminder text, or the
// contact to reach.
type Intent struct {
	Type       Type
	Argument   string
	Confidence float64
}

// Classifier turns free text into an Intent.
type Classifier interface {
	Classify(ctx context.Context, text string) Intent
}

// triggers pair an intent type with the leading verbs that signal it,
// Arabic and English. Order matters: the first matching entry wins.
var triggers = []struct {
	intentType Type
	leads      []string
}{
	{TypeOpenApp, []string{"افتح", "شغل", "شغّل", "open", "launch", "start"}},
	{TypeCall, []string{"اتصل", "كلم", "كلّم", "call", "dial"}},
	{TypeMessage, []string{"أرسل", "ارسل", "ابعت", "راسل", "send", "text", "message"}},
	{TypeReminder, []string{"ذكرني", "ذكّرني", "فكرني", "فكّرني", "remind", "reminder"}},
	{TypeSearch, []string{"ابحث", "دور", "دوّر", "search", "find", "look up", "google"}},
	{TypeRecommend, []string{"اقترح", "انصحني", "رشح", "رشّح", "recommend", "suggest"}},
}

var questionMarkRe = regexp.MustCompile(`[?؟]`)

var interrogativeLeads = []string{
	"ما", "ماذا", "من", "متى", "أين", "اين", "كيف", "لماذا", "هل", "كم",
	"what", "who", "when", "where", "how", "why", "which", "is", "are", "can", "do", "does",
}

// Parser is the rule-based classifier: trigger-verb prefix matching with a
// question check, falling through to chat. It never fails and carries no
// state, so a single value is safe for concurrent use.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Classify(_ context.Context, text string) Intent {
	return p.Parse(text)
}

// Parse classifies one utterance. The argument is the text after the
// trigger verb, trimmed of connective filler words.
func (p *Parser) Parse(text string) Intent {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Intent{Type: TypeChat, Confidence: 0.3}
	}
	lower := strings.ToLower(trimmed)

	for _, trigger := range triggers {
		for _, lead := range trigger.leads {
			if lower == lead {
				return Intent{Type: trigger.intentType, Confidence: 0.9}
			}
			if strings.HasPrefix(lower, lead+" ") {
				arg := strings.TrimSpace(trimmed[len(lead)+1:])
				return Intent{
					Type:       trigger.intentType,
					Argument:   stripFiller(arg),
					Confidence: 0.9,
				}
			}
		}
	}

	if isQuestion(lower) {
		return Intent{Type: TypeQuestion, Argument: trimmed, Confidence: 0.7}
	}

	return Intent{Type: TypeChat, Argument: trimmed, Confidence: 0.5}
}

func isQuestion(lower string) bool {
	if questionMarkRe.MatchString(lower) {
		return true
	}
	for _, lead := range interrogativeLeads {
		if strings.HasPrefix(lower, lead+" ") || lower == lead {
			return true
		}
	}
	return false
}

// stripFiller drops the connective words that sit between a trigger verb
// and its real argument, such as "عن" after "ابحث" or "to" after "send".
func stripFiller(arg string) string {
	fillers := []string{"عن", "على", "لي", "ان", "أن", "for", "about", "to", "me", "up", "the"}
	words := strings.Fields(arg)
	for len(words) > 0 {
		stripped := false
		for _, filler := range fillers {
			if strings.EqualFold(words[0], filler) {
				words = words[1:]
				stripped = true
				break
			}
		}
		if !stripped {
			break
		}
	}
	return strings.Join(words, " ")
}
