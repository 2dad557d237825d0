package bot

import "strings"

// emotionLexicons score the emotional tone of an incoming message by
// keyword hits, Arabic and English. The highest-scoring state wins.
var emotionLexicons = map[string][]string{
	"happy":      {"سعيد", "فرحان", "مبسوط", "رائع", "ممتاز", "جميل", "happy", "great", "awesome", "wonderful", "excited", "love"},
	"sad":        {"حزين", "زعلان", "مكتئب", "تعيس", "بكيت", "sad", "unhappy", "depressed", "miserable", "crying", "lonely"},
	"angry":      {"غاضب", "معصب", "زعلان منك", "مستفز", "angry", "furious", "annoyed", "mad", "hate"},
	"stressed":   {"متوتر", "مضغوط", "مرهق", "تعبان", "stressed", "overwhelmed", "exhausted", "pressure", "deadline"},
	"anxious":    {"قلق", "خايف", "متردد", "anxious", "worried", "nervous", "afraid", "scared"},
	"frustrated": {"محبط", "زهقت", "مللت", "frustrated", "stuck", "fed up", "giving up"},
}

// emotionOrder fixes tie-breaking so detection is deterministic.
var emotionOrder = []string{"happy", "sad", "angry", "stressed", "anxious", "frustrated"}

// detectEmotion scores the message against each lexicon and returns the
// strongest state, or "neutral" when nothing matches.
func detectEmotion(text string) string {
	lower := strings.ToLower(text)

	best := "neutral"
	bestScore := 0
	for _, state := range emotionOrder {
		score := 0
		for _, keyword := range emotionLexicons[state] {
			if strings.Contains(lower, keyword) {
				score++
			}
		}
		if score > bestScore {
			best = state
			bestScore = score
		}
	}
	return best
}
