package conversation

import (
	"regexp"
	"strings"
)

const maxQuestionPatterns = 5

var (
	// Two consecutive capitalized Latin words, the usual shape of a name.
	nameSequenceRe = regexp.MustCompile(`\b[A-Z][a-z]+ [A-Z][a-z]+\b`)
	// A location preposition followed by a word. Anchored to start-of-text
	// or whitespace; \b is ASCII-only and never matches around the Arabic
	// alternatives.
	locationPhraseRe = regexp.MustCompile(`(^|\s)(في|إلى|الى|in|at|to)\s+(\p{L}+)`)
	// Bare numbers, integer or decimal.
	numberRe = regexp.MustCompile(`\b\d+(\.\d+)?\b`)

	spaceRe = regexp.MustCompile(`\s+`)
)

// isQuestion reports whether a query looks like a question: it contains a
// question mark or opens with an interrogative word.
func isQuestion(query string) bool {
	if strings.Contains(query, "?") || strings.Contains(query, "؟") {
		return true
	}
	trimmed := strings.ToLower(strings.TrimSpace(query))
	for _, lead := range interrogativeLeads {
		if strings.HasPrefix(trimmed, lead+" ") || trimmed == lead {
			return true
		}
	}
	return false
}

// generalizePattern turns a concrete question into a reusable template by
// replacing name sequences, location phrases and numbers with placeholders.
func generalizePattern(query string) string {
	pattern := strings.TrimSpace(query)
	pattern = nameSequenceRe.ReplaceAllString(pattern, "{name}")
	pattern = locationPhraseRe.ReplaceAllString(pattern, "${1}${2} {place}")
	pattern = numberRe.ReplaceAllString(pattern, "{number}")
	pattern = spaceRe.ReplaceAllString(pattern, " ")
	return pattern
}

// questionPatterns extracts deduplicated, generalized question templates
// from a group's queries, capped at maxQuestionPatterns.
func questionPatterns(queries []string) []string {
	var patterns []string
	seen := make(map[string]bool)
	for _, q := range queries {
		if !isQuestion(q) {
			continue
		}
		pattern := generalizePattern(q)
		if pattern == "" || seen[pattern] {
			continue
		}
		seen[pattern] = true
		patterns = append(patterns, pattern)
		if len(patterns) >= maxQuestionPatterns {
			break
		}
	}
	return patterns
}
