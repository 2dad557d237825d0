package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/xaenox/advisor/internal/conversation"
	"github.com/xaenox/advisor/internal/intent"
	"github.com/xaenox/advisor/internal/models"
	"github.com/xaenox/advisor/internal/recommend"
	"github.com/xaenox/advisor/internal/storage"
	"go.uber.org/zap"
)

type Bot struct {
	api        *tgbotapi.BotAPI
	storage    storage.Storage
	engine     *recommend.Engine
	analyzer   *conversation.Analyzer
	classifier intent.Classifier
	logger     *zap.Logger

	mu         sync.Mutex
	lastServed map[int64][]models.Recommendation
}

func New(token string, storage storage.Storage, engine *recommend.Engine, analyzer *conversation.Analyzer, classifier intent.Classifier, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return &Bot{
		api:        api,
		storage:    storage,
		engine:     engine,
		analyzer:   analyzer,
		classifier: classifier,
		logger:     logger,
		lastServed: make(map[int64][]models.Recommendation),
	}, nil
}

func (b *Bot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		if update.Message == nil {
			continue
		}

		go b.handleMessage(update.Message)
	}

	return nil
}

func (b *Bot) handleMessage(message *tgbotapi.Message) {
	ctx := context.Background()

	if message.IsCommand() {
		b.handleCommand(ctx, message)
		return
	}

	text := message.Text
	if text == "" {
		return
	}

	parsed := b.classifier.Classify(ctx, text)
	emotion := detectEmotion(text)

	interaction := &models.Interaction{
		ID:             uuid.New().String(),
		UserID:         message.From.ID,
		Type:           interactionTypeFor(parsed.Type),
		Query:          text,
		EmotionalState: emotion,
		CreatedAt:      time.Now(),
	}

	if err := b.storage.SaveInteraction(ctx, interaction); err != nil {
		b.logger.Error("Failed to save interaction",
			zap.Error(err),
			zap.String("interaction_id", interaction.ID),
			zap.Int64("user_id", message.From.ID))
		b.sendErrorMessage(message.Chat.ID, "Sorry, I couldn't process your message. Please try again.")
		return
	}

	// Search queries double as interest signals.
	if parsed.Type == intent.TypeSearch && parsed.Argument != "" {
		if err := b.storage.AddInterest(ctx, message.From.ID, strings.ToLower(parsed.Argument)); err != nil {
			b.logger.Error("Failed to save interest",
				zap.Error(err),
				zap.Int64("user_id", message.From.ID),
				zap.String("interest", parsed.Argument))
		}
	}

	if parsed.Type == intent.TypeRecommend {
		b.handleRecommend(ctx, message)
		return
	}

	b.sendIntentResponse(message.Chat.ID, message.MessageID, parsed)
}

// interactionTypeFor maps a parsed intent onto the interaction-log type.
func interactionTypeFor(t intent.Type) models.InteractionType {
	switch t {
	case intent.TypeSearch, intent.TypeQuestion:
		return models.InteractionQuery
	case intent.TypeOpenApp, intent.TypeCall, intent.TypeMessage, intent.TypeReminder, intent.TypeRecommend:
		return models.InteractionCommand
	default:
		return models.InteractionChat
	}
}

func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	switch message.Command() {
	case "start":
		b.handleStart(message)
	case "help":
		b.handleHelp(message)
	case "recommend":
		b.handleRecommend(ctx, message)
	case "feedback":
		b.handleFeedback(ctx, message)
	case "topics":
		b.handleTopics(ctx, message)
	case "insights":
		b.handleInsights(ctx, message)
	default:
		b.sendMessage(message.Chat.ID, "Unknown command. Use /help to see available commands.")
	}
}

func (b *Bot) handleStart(message *tgbotapi.Message) {
	welcome := `Welcome! 🤖
I'm your personal assistant. I learn from our conversations and suggest things that fit your day.

Just chat with me, ask questions, or tell me what to do.
Use /recommend to get suggestions and /help to see all commands.`

	b.sendMessage(message.Chat.ID, welcome)
}

func (b *Bot) handleHelp(message *tgbotapi.Message) {
	help := `Available commands:
/start - Start the assistant
/help - Show this help message
/recommend - Get personalized suggestions
/feedback <number> <reaction> - React to a suggestion
  reactions: viewed, clicked, positive, negative, dismissed
/topics - Show topics we've discussed
/insights - Show what I've learned from our conversations

You can also just talk to me in Arabic or English!`

	b.sendMessage(message.Chat.ID, help)
}

func (b *Bot) handleRecommend(ctx context.Context, message *tgbotapi.Message) {
	recCtx := models.ContextAt(time.Now())
	recs := b.engine.GenerateRecommendations(ctx, message.From.ID, recCtx)

	if len(recs) == 0 {
		b.sendMessage(message.Chat.ID, "I don't have any suggestions right now. Talk to me a bit more!")
		return
	}

	b.mu.Lock()
	b.lastServed[message.From.ID] = recs
	b.mu.Unlock()

	response := "*Suggestions for you:*\n\n"
	for i, rec := range recs {
		response += fmt.Sprintf("%d\\. *%s*\n", i+1, escapeMarkdown(rec.Title))
		response += fmt.Sprintf("_%s_\n", escapeMarkdown(rec.Description))
		response += fmt.Sprintf("#%s\n\n", escapeMarkdown(string(rec.Domain)))
	}
	response += escapeMarkdown("React with /feedback <number> <reaction> so I can learn.")

	msg := tgbotapi.NewMessage(message.Chat.ID, response)
	msg.ParseMode = "MarkdownV2"
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send recommendations",
			zap.Error(err),
			zap.Int64("chat_id", message.Chat.ID))
	}
}

func (b *Bot) handleFeedback(ctx context.Context, message *tgbotapi.Message) {
	args := strings.Fields(message.CommandArguments())
	if len(args) != 2 {
		b.sendMessage(message.Chat.ID, "Usage: /feedback <number> <reaction>\nExample: /feedback 1 positive")
		return
	}

	index, err := strconv.Atoi(args[0])
	if err != nil || index < 1 {
		b.sendMessage(message.Chat.ID, "The first argument must be the suggestion number from /recommend.")
		return
	}

	feedbackType, ok := models.ParseFeedbackType(strings.ToLower(args[1]))
	if !ok {
		b.sendMessage(message.Chat.ID, "Reactions: viewed, clicked, positive, negative, dismissed.")
		return
	}

	b.mu.Lock()
	served := b.lastServed[message.From.ID]
	b.mu.Unlock()

	if index > len(served) {
		b.sendMessage(message.Chat.ID, "I don't have that suggestion. Use /recommend first.")
		return
	}
	rec := served[index-1]

	if err := b.engine.RecordFeedback(ctx, message.From.ID, rec.ID, feedbackType); err != nil {
		b.logger.Error("Failed to record feedback",
			zap.Error(err),
			zap.Int64("user_id", message.From.ID),
			zap.String("recommendation_id", rec.ID))
		b.sendErrorMessage(message.Chat.ID, "Sorry, I couldn't record that feedback.")
		return
	}

	b.sendMessage(message.Chat.ID, fmt.Sprintf("Got it, noted your reaction to \"%s\". 👍", rec.Title))
}

func (b *Bot) handleTopics(ctx context.Context, message *tgbotapi.Message) {
	topics := b.analyzer.DiscoveredTopics(ctx, message.From.ID)

	if len(topics) == 0 {
		b.sendMessage(message.Chat.ID, "We haven't discussed any recognizable topics yet.")
		return
	}

	response := "*Topics we've discussed:*\n"
	for _, topic := range topics {
		formatted := "#" + strings.ReplaceAll(topic.Name, " ", "_")
		response += fmt.Sprintf("%s \\(%d\\)\n", escapeMarkdown(formatted), topic.Occurrences)
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, response)
	msg.ParseMode = "MarkdownV2"
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send topics",
			zap.Error(err),
			zap.Int64("chat_id", message.Chat.ID))
	}
}

func (b *Bot) handleInsights(ctx context.Context, message *tgbotapi.Message) {
	insights := b.analyzer.Analyze(ctx, message.From.ID)

	if len(insights.Topics) == 0 && len(insights.Keywords) == 0 {
		b.sendMessage(message.Chat.ID, "Not enough conversation history yet. Keep talking to me!")
		return
	}

	response := "*What I've learned:*\n\n"
	if len(insights.Topics) > 0 {
		response += fmt.Sprintf("*Topics:* %s\n", escapeMarkdown(strings.Join(insights.Topics, ", ")))
	}
	if len(insights.Keywords) > 0 {
		response += fmt.Sprintf("*Keywords:* %s\n", escapeMarkdown(strings.Join(insights.Keywords, ", ")))
	}
	response += fmt.Sprintf("*Mood:* %s\n", escapeMarkdown(insights.DominantEmotion))
	response += fmt.Sprintf("*Mostly:* %s\n", escapeMarkdown(insights.Context))
	if insights.TimeOfDay != "" {
		response += fmt.Sprintf("*Usually active:* %s\n", escapeMarkdown(insights.TimeOfDay))
	}

	prefs := b.analyzer.LanguagePreferences(ctx, message.From.ID)
	if dialect := prefs.PreferredDialect(); dialect != "" {
		response += fmt.Sprintf("*Dialect:* %s\n", escapeMarkdown(dialect))
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, response)
	msg.ParseMode = "MarkdownV2"
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send insights",
			zap.Error(err),
			zap.Int64("chat_id", message.Chat.ID))
	}
}

// intentAcks maps intent types to the acknowledgement shown to the user. A
// full assistant would dispatch to device actions here.
var intentAcks = map[intent.Type]string{
	intent.TypeOpenApp:  "Opening %s...",
	intent.TypeSearch:   "Searching for %s...",
	intent.TypeReminder: "I'll remind you: %s",
	intent.TypeCall:     "Calling %s...",
	intent.TypeMessage:  "Preparing a message to %s...",
	intent.TypeQuestion: "Let me think about that...",
	intent.TypeChat:     "Thanks for sharing! I'm listening.",
}

func (b *Bot) sendIntentResponse(chatID int64, replyToID int, parsed intent.Intent) {
	ack, ok := intentAcks[parsed.Type]
	if !ok {
		ack = "Got it."
	}
	text := ack
	if strings.Contains(ack, "%s") {
		arg := parsed.Argument
		if arg == "" {
			arg = "that"
		}
		text = fmt.Sprintf(ack, arg)
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyToMessageID = replyToID

	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send intent response",
			zap.Error(err),
			zap.Int64("chat_id", chatID))
	}
}

// Add this helper function to escape special characters for MarkdownV2
func escapeMarkdown(text string) string {
	specialChars := []string{"_", "*", "[", "]", "(", ")", "~", "`", ">", "#", "+", "-", "=", "|", "{", "}", ".", "!"}
	escaped := text
	for _, char := range specialChars {
		escaped = strings.ReplaceAll(escaped, char, "\\"+char)
	}
	return escaped
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", chatID))
	}
}

func (b *Bot) sendErrorMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, "⚠️ "+text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send error message",
			zap.Error(err),
			zap.Int64("chat_id", chatID))
	}
}
