package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

type gptIntentResponse struct {
	Intent     string  `json:"intent"`
	Argument   string  `json:"argument"`
	Confidence float64 `json:"confidence"`
}

var knownTypes = map[string]Type{
	"open_app":  TypeOpenApp,
	"search":    TypeSearch,
	"reminder":  TypeReminder,
	"call":      TypeCall,
	"message":   TypeMessage,
	"recommend": TypeRecommend,
	"question":  TypeQuestion,
	"chat":      TypeChat,
}

// GPTClassifier asks the model for a structured intent and falls back to
// the rule-based parser when the call or the parse fails.
type GPTClassifier struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float64
	fallback    *Parser
	logger      *zap.Logger
}

func NewGPTClassifier(apiKey string, model string, maxTokens int, temperature float64, logger *zap.Logger) *GPTClassifier {
	return &GPTClassifier{
		client:      openai.NewClient(apiKey),
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		fallback:    NewParser(),
		logger:      logger,
	}
}

func (c *GPTClassifier) Classify(ctx context.Context, text string) Intent {
	prompt := fmt.Sprintf(`Classify the user's message into exactly one intent:
open_app, search, reminder, call, message, recommend, question, chat.

The message may be in Arabic or English. Extract the argument: the app
name, search query, reminder text, or contact name. Leave it empty for
plain chat.

Return the response as a JSON object with this structure:
{
    "intent": "intent_name",
    "argument": "extracted_argument",
    "confidence": 0.0
}

Message: %s`, text)

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   c.maxTokens,
			Temperature: float32(c.temperature),
		},
	)

	if err != nil {
		c.logger.Error("Failed to get GPT response", zap.Error(err))
		return c.fallback.Parse(text)
	}

	var parsed gptIntentResponse
	response := strings.TrimSpace(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(response), &parsed); err != nil {
		c.logger.Error("Failed to parse GPT response",
			zap.Error(err),
			zap.String("response", response))
		return c.fallback.Parse(text)
	}

	intentType, ok := knownTypes[strings.ToLower(parsed.Intent)]
	if !ok {
		c.logger.Warn("GPT returned unknown intent, using rule parser",
			zap.String("intent", parsed.Intent))
		return c.fallback.Parse(text)
	}

	confidence := parsed.Confidence
	if confidence <= 0 || confidence > 1 {
		confidence = 0.5
	}

	return Intent{
		Type:       intentType,
		Argument:   strings.TrimSpace(parsed.Argument),
		Confidence: confidence,
	}
}
