package models

type CulturalItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	Province    string `json:"province"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
}

type ChatTurn struct {
	Role    string `json:"role"` // "user" or "bot"
	Message string `json:"message"`
}

type ChatRequest struct {
	CulturalItem CulturalItem `json:"cultural_item" binding:"required"`
	UserMessage  string       `json:"user_message"`
	ChatHistory  []ChatTurn   `json:"chat_history"`
}
