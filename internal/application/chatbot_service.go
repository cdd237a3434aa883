package application

import (
	"context"
	"fmt"
	"strings"

	"culturate/internal/models"
)

type ChatbotServiceImpl struct {
	oracle        Oracle
	logger        Logger
	historyWindow int
	maxReplyRunes int
}

func NewChatbotServiceImpl(oracle Oracle, cfg Config, logger Logger) *ChatbotServiceImpl {
	return &ChatbotServiceImpl{
		oracle:        oracle,
		logger:        logger,
		historyWindow: cfg.historyWindow(),
		maxReplyRunes: cfg.maxReplyRunes(),
	}
}

func (s *ChatbotServiceImpl) Ask(ctx context.Context, req models.ChatRequest) (string, error) {
	prompt := BuildChatPrompt(req.CulturalItem, req.UserMessage, req.ChatHistory, s.historyWindow)

	reply, err := s.oracle.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("chat generation failed: %w", err)
	}

	return truncateAtWord(strings.TrimSpace(reply), s.maxReplyRunes), nil
}

// BuildChatPrompt assembles the conversational prompt. Only the trailing
// window of history goes in verbatim; older turns are compressed into a
// one-line-per-turn summary so the prompt stays bounded.
func BuildChatPrompt(item models.CulturalItem, userMessage string, history []models.ChatTurn, window int) string {
	if userMessage == "" {
		return fmt.Sprintf(`You are a friendly cultural chatbot.
The user just opened this cultural page:
Title: %s
Type: %s
Province: %s
Description: %s

Greet the user warmly, and invite them to ask about this item.`,
			item.Title, item.Type, item.Province, item.Description)
	}

	var sb strings.Builder
	sb.WriteString("You are a cultural chatbot assistant helping users understand Indonesian culture.\n")
	sb.WriteString("The user is currently viewing:\n")
	fmt.Fprintf(&sb, "Title: %s\n", item.Title)
	fmt.Fprintf(&sb, "Type: %s\n", item.Type)
	fmt.Fprintf(&sb, "Province: %s\n", item.Province)
	fmt.Fprintf(&sb, "Description: %s\n\n", item.Description)

	older, recent := splitHistory(history, window)

	if len(older) > 0 {
		fmt.Fprintf(&sb, "Summary of the earlier conversation (%d turns):\n", len(older))
		for _, turn := range older {
			fmt.Fprintf(&sb, "- %s: %s\n", speakerLabel(turn.Role), summarizeTurn(turn.Message))
		}
		sb.WriteString("\n")
	}

	if len(recent) > 0 {
		sb.WriteString("Here is the recent conversation:\n")
		for _, turn := range recent {
			fmt.Fprintf(&sb, "%s: %s\n", speakerLabel(turn.Role), turn.Message)
		}
	}

	fmt.Fprintf(&sb, "\nUser: %s\nBot:", userMessage)
	return sb.String()
}

// splitHistory cuts the history into the turns to summarize and the
// trailing window kept verbatim, preserving order in both halves.
func splitHistory(history []models.ChatTurn, window int) (older, recent []models.ChatTurn) {
	if len(history) <= window {
		return nil, history
	}
	return history[:len(history)-window], history[len(history)-window:]
}

const summarySnippetRunes = 60

func summarizeTurn(message string) string {
	message = strings.TrimSpace(message)
	runes := []rune(message)
	if len(runes) <= summarySnippetRunes {
		return message
	}
	return string(runes[:summarySnippetRunes]) + "…"
}

func speakerLabel(role string) string {
	if role == "user" {
		return "User"
	}
	return "Bot"
}
