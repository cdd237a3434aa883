package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"culturate/internal/models"
	"culturate/internal/repository"
)

// ErrNoRounds marks an empty or invalid match-summary payload; handlers
// surface it as a client error.
var ErrNoRounds = errors.New("no round data available to analyze")

type SummaryServiceImpl struct {
	oracle Oracle
	store  repository.Session
	logger Logger
}

func NewSummaryServiceImpl(oracle Oracle, store repository.Session, logger Logger) *SummaryServiceImpl {
	return &SummaryServiceImpl{oracle: oracle, store: store, logger: logger}
}

func (s *SummaryServiceImpl) Analyze(ctx context.Context, rounds []models.RoundOutcome) (string, error) {
	if len(rounds) == 0 {
		return "", ErrNoRounds
	}

	correct := 0
	for _, r := range rounds {
		if r.PlayerCorrect {
			correct++
		}
	}

	prompt := buildSummaryPrompt(rounds, correct)
	feedback, err := s.oracle.Generate(ctx, prompt)
	if err != nil {
		s.logger.Error("summary generation failed", "error", err.Error())
		return fallbackFeedback(len(rounds), correct), nil
	}

	return strings.TrimSpace(feedback), nil
}

func buildSummaryPrompt(rounds []models.RoundOutcome, correct int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Complete Game Analysis (%d rounds, %d correct):\n\n", len(rounds), correct)

	for i, round := range rounds {
		result := "✗ WRONG"
		if round.PlayerCorrect {
			result = "✓ CORRECT"
		}

		province := round.CorrectAnswer
		if province == "" {
			province = models.UnknownProvince
		}
		playerGuess := round.PlayerAnswer
		if playerGuess == "" {
			playerGuess = "No answer"
		}

		category := "culture"
		culturalContext := ""
		if round.CulturalData != nil {
			if round.CulturalData.Category != "" {
				category = round.CulturalData.Category
			}
			culturalContext = round.CulturalData.Context
		}

		fmt.Fprintf(&sb, "Round %d: %s\n", i+1, result)
		fmt.Fprintf(&sb, "  Province: %s\n", province)
		fmt.Fprintf(&sb, "  Category: %s\n", category)
		fmt.Fprintf(&sb, "  Your guess: %s\n", playerGuess)
		if culturalContext != "" {
			if len(culturalContext) > 80 {
				culturalContext = culturalContext[:80]
			}
			fmt.Fprintf(&sb, "  Context: %s...\n", culturalContext)
		}
		sb.WriteString("\n")
	}

	return fmt.Sprintf(`You are an Indonesian culture expert providing comprehensive feedback on a complete game session.

%s

Provide feedback that:
1. Acknowledges their overall performance across ALL rounds
2. Identifies patterns in their correct/incorrect answers (which categories they're strong/weak in)
3. Includes 2-3 fascinating cultural fun facts about provinces they got wrong
4. Gives specific advice for improvement based on the categories they struggled with
5. Ends with encouragement

Keep it educational, engaging, and focused on Indonesian cultural learning. Maximum 5-6 sentences.
Make the fun facts memorable and tied to the specific provinces/categories they missed.`, sb.String())
}

// fallbackFeedback keeps the endpoint useful when the oracle is down.
func fallbackFeedback(total, correct int) string {
	accuracy := 0.0
	if total > 0 {
		accuracy = float64(correct) / float64(total) * 100
	}

	switch {
	case accuracy >= 70:
		return fmt.Sprintf("Great performance across all %d rounds! You correctly identified %d provinces, showing strong knowledge of Indonesian culture. Keep exploring to learn even more about Indonesia's diverse heritage!", total, correct)
	case accuracy >= 50:
		return fmt.Sprintf("Solid effort across %d rounds with %d correct answers! Indonesian culture spans 33 provinces, each with unique traditions. Focus on studying the cultural categories you missed to improve your recognition skills.", total, correct)
	default:
		return fmt.Sprintf("Thanks for playing all %d rounds! Indonesian culture is wonderfully complex with diverse traditions across 33 provinces. Study traditional dances, regional foods, and local arts to build your cultural knowledge. Keep exploring!", total)
	}
}

// ExportRounds renders a session's stored round history as a spreadsheet.
func (s *SummaryServiceImpl) ExportRounds(sessionID string) ([]byte, error) {
	if sessionID == "" {
		sessionID = DefaultSessionID
	}

	rounds, err := s.store.GetRounds(sessionID)
	if err != nil {
		return nil, err
	}
	if len(rounds) == 0 {
		return nil, ErrNoRounds
	}

	f := excelize.NewFile()
	sheet := "Rounds"
	f.NewSheet(sheet)
	f.DeleteSheet("Sheet1")

	headers := []string{"Round", "Province", "Player Guess", "Player Correct", "AI Guess", "AI Correct", "Category", "Played At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for i, round := range rounds {
		category := ""
		if round.CulturalData != nil {
			category = round.CulturalData.Category
		}

		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), i+1)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), round.CorrectAnswer)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), round.PlayerAnswer)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), round.PlayerCorrect)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), round.AIGuess)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), round.AICorrect)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), category)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), round.CreatedAt.Format("2006-01-02 15:04"))
		row++
	}

	f.SetColWidth(sheet, "A", "A", 8)
	f.SetColWidth(sheet, "B", "G", 20)
	f.SetColWidth(sheet, "H", "H", 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
