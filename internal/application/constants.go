package application

import "time"

const (
	// Game difficulty controller
	initialThreshold = 0.5
	difficultyStep   = 0.05
	easyCeiling      = 0.7
	mediumCeiling    = 0.85

	// DefaultSessionID backs callers that do not manage sessions.
	DefaultSessionID = "default"

	// Scrape orchestrator. The acceptance threshold is deliberately a
	// separate knob from the game difficulty threshold.
	defaultScrapeThreshold = 0.65
	defaultMaxAttempts     = 10
	defaultAttemptDelay    = time.Second
	maxSearchResults       = 3

	// Media kind weights
	imageWeight = 0.6

	// Keyword fallback scoring, applied when the oracle cannot score a
	// candidate. Image and video candidates saturate to different bounds.
	keywordStep          = 0.15
	imageFallbackFloor   = 0.40
	imageFallbackCeiling = 0.65
	videoFallbackFloor   = 0.30
	videoFallbackCeiling = 0.90

	// Chatbot
	defaultHistoryWindow = 4
	defaultMaxReplyRunes = 1200
)

// The 33-entry province catalog candidates are drawn from.
var provinces = []string{
	"Aceh", "Sumatera Utara", "Sumatera Barat", "Riau", "Kepulauan Riau",
	"Jambi", "Sumatera Selatan", "Kepulauan Bangka Belitung", "Bengkulu", "Lampung",
	"DKI Jakarta", "Jawa Barat", "Banten", "Jawa Tengah", "DI Yogyakarta",
	"Jawa Timur", "Bali", "Nusa Tenggara Barat", "Nusa Tenggara Timur",
	"Kalimantan Barat", "Kalimantan Tengah", "Kalimantan Selatan", "Kalimantan Timur",
	"Kalimantan Utara", "Sulawesi Utara", "Gorontalo", "Sulawesi Tengah",
	"Sulawesi Selatan", "Sulawesi Barat", "Sulawesi Tenggara", "Maluku",
	"Maluku Utara", "Papua",
}

var culturalCategories = []string{
	"traditional dance", "traditional music", "traditional clothing",
	"traditional ceremony", "traditional food", "traditional house",
	"traditional art", "traditional crafts", "cultural festival",
	"wayang puppet", "batik pattern",
	"traditional musical instrument",
}

// Video search only works well for performative categories.
var videoCulturalCategories = []string{
	"traditional dance", "traditional music", "wayang puppet",
	"cultural festival", "traditional ceremony",
}

// Bilingual cultural markers used by the keyword fallback scorer.
var culturalKeywords = []string{
	"tari", "dance", "musik", "music", "pakaian", "clothing",
	"rumah", "house", "batik", "wayang", "indonesia", "budaya", "culture",
}
