package ai

import (
	"fmt"
	"strings"

	"culturate/internal/models"
)

const (
	// AI model configuration
	geminiModel   = "gemini-2.0-flash"
	aiTemperature = 0.1
)

// Difficulty tiers derived from the game confidence threshold.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// BuildQueryPrompt asks the model for a short, concrete search query for a
// cultural category in a given province.
func BuildQueryPrompt(province, category string) string {
	return fmt.Sprintf(`Generate a specific search query for finding %s from %s province in Indonesia.

The query should be:
- Concise (2-4 words)
- Include specific cultural element names when possible
- Use Indonesian terms when appropriate
- Focus on authentic traditional content

Examples:
- For "traditional dance" from "Jawa Barat": "tari jaipong"
- For "traditional music" from "Jawa Tengah": "gamelan jawa"
- For "traditional clothing" from "Bali": "pakaian adat bali"

Return ONLY the search query, nothing else.`, category, province)
}

// BuildImageValidationPrompt asks for a bare numeric authenticity score
// for an image candidate.
func BuildImageValidationPrompt(province, category, query string) string {
	return fmt.Sprintf(`Analyze this image to determine if it accurately represents %s from %s province in Indonesia.

Search query used: "%s"
Target province: %s
Cultural category: %s

Please evaluate:
1. Does the image show authentic Indonesian cultural content?
2. Is it specifically related to %s province?
3. Does it match the cultural category "%s"?

Return ONLY a confidence score between 0.0 and 1.0 as a number (e.g., 0.65).`,
		category, province, query, province, category, province, category)
}

// BuildVideoValidationPrompt is the video variant; it judges the candidate
// by its search metadata since videos are never downloaded.
func BuildVideoValidationPrompt(video models.VideoInfo, province, category, query string) string {
	desc := video.Description
	if len(desc) > 500 {
		desc = desc[:500]
	}
	return fmt.Sprintf(`Analyze this video information to determine if it accurately represents %s from %s province in Indonesia.

Video details:
- Title: %s
- Description: %s...
- Channel: %s

Search query used: "%s"
Target province: %s
Cultural category: %s

Please evaluate:
1. Does the video appear to show authentic Indonesian cultural content?
2. Is it specifically related to %s province?
3. Does it match the cultural category "%s"?
4. Is the content quality and authenticity appropriate?

Return ONLY a confidence score between 0.0 and 1.0 as a number (e.g., 0.65).`,
		category, province, video.Title, desc, video.ChannelTitle, query, province, category, province, category)
}

// BuildVideoFunFactPrompt produces a short trivia-style fact from video
// metadata.
func BuildVideoFunFactPrompt(video models.VideoInfo, query string) string {
	desc := video.Description
	if len(desc) > 500 {
		desc = desc[:500]
	}
	return fmt.Sprintf(`You are a cultural expert helping people learn about Indonesian heritage in a fun and engaging way.

Based on the following video information, write a short, fun, and informative fact about the most prominent cultural element mentioned, or a general one based on the query if no specific element is found.
The fact should be written in 1-3 sentences, easy to read, and spark curiosity.

Video Title: %s
Video Description: %s
Search Query: %s

Rules:
1. If a specific cultural element (like "Tari Kecak", "Batik Jogja", "Wayang Kulit") is mentioned, write the fun fact about that.
2. If no specific cultural element is found, write a fun fact related to the broader cultural context of the query.
3. The fun fact must be written without any intro or disclaimer.
4. The tone should be lively and curious, like trivia, not a formal explanation.
5. Keep it short and easy to read, max 3 sentences.

Now write the short fun fact:`, video.Title, desc, query)
}

// BuildImageFunFactPrompt produces the same style of fact from a Commons
// filename plus the search query.
func BuildImageFunFactPrompt(filename, query string) string {
	return fmt.Sprintf(`You are a cultural expert helping people learn about Indonesian heritage.

Based on the following Wikimedia Commons image filename and search query, write a short, fun, and educational fact about the most prominent cultural element mentioned.

Filename: %s
Search Query: %s

Instructions:
1. Identify the cultural element (e.g., Tari Kecak, Gamelan Jawa, Batik Jogja, Rumah Gadang).
2. Write a fun fact about it in a friendly, concise tone, ideally 1-3 sentences.
3. Mention something interesting, like its origin, uniqueness, or when it is used.
4. Use the traditional Indonesian name in your output.
5. If the filename lacks clear cultural info, use the search query to guess a likely element and still generate a fact.
6. Do NOT return just the name: write a fun fact, not a label.

Now write the short cultural fun fact:`, filename, query)
}

// BuildOriginPrompt builds the difficulty-aware province prediction
// prompt. The instructed output is a bare JSON object so the parser can
// stay strict.
func BuildOriginPrompt(difficulty string, useReasoning bool) string {
	var sb strings.Builder
	sb.WriteString("You are an expert on Indonesian culture.\n\n")
	sb.WriteString("Based on the following cultural media (it may show traditional clothing, dance, food, houses, architecture or musical instruments), determine which Indonesian province it most likely originates from.\n\n")

	switch difficulty {
	case DifficultyHard:
		sb.WriteString("Perform a comparative analysis: consider other plausible provinces with similar cultural elements, explain what distinguishes them, and only then conclude.\n\n")
	case DifficultyMedium:
		sb.WriteString("First describe the salient visual features you observe, then use them to reach your guess.\n\n")
	default:
		sb.WriteString("Guess immediately from the visual cues.\n\n")
	}

	if useReasoning {
		sb.WriteString(`Answer with a single JSON object with exactly these keys, no markdown code block, no extra explanation:
{
  "province": "Jawa Barat",
  "confidence": 0.85,
  "reasoning": "short explanation of the decisive cues"
}`)
	} else {
		sb.WriteString(`Answer with a single JSON object with exactly these keys, no markdown code block, no extra explanation:
{
  "province": "Jawa Barat",
  "confidence": 0.85
}`)
	}

	sb.WriteString("\n\nConfidence must be between 0.0 and 1.0.")
	return sb.String()
}
