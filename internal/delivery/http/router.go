package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(h *Handler) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization"},
	}))

	r.GET("/healthcheck", h.HealthCheck)

	game := r.Group("/game")
	{
		game.POST("/guess", h.Guess)
		game.GET("/simulate", h.Simulate)
		game.GET("/difficulty", h.Difficulty)
	}

	r.GET("/scrape/cultural-media", h.ScrapeCulturalMedia)

	r.POST("/match-summary", h.MatchSummary)
	r.GET("/match-summary/export", h.ExportMatchSummary)

	r.POST("/chatbot/ask", h.ChatbotAsk)

	return r
}
