package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"culturate/internal/application"
	"culturate/internal/models"
)

type Logger interface {
	Error(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Info(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

type Handler struct {
	services *application.Service
	log      Logger
}

func NewHandler(services *application.Service, log Logger) *Handler {
	return &Handler{services: services, log: log}
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// POST /game/guess
func (h *Handler) Guess(c *gin.Context) {
	req, err := bindGuessRequest(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.services.Game.Guess(c.Request.Context(), req)
	if err != nil {
		h.log.Error("guess failed", "error", err.Error())
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, resp)
}

// bindGuessRequest accepts either a JSON body or legacy form fields, in
// which image_url is an alias for input_url.
func bindGuessRequest(c *gin.Context) (models.GuessRequest, error) {
	var req models.GuessRequest

	contentType := c.ContentType()
	if strings.Contains(contentType, "json") {
		if err := c.ShouldBindJSON(&req); err != nil {
			return req, fmt.Errorf("invalid request body: %w", err)
		}
		return req, nil
	}

	req.InputURL = c.PostForm("input_url")
	if req.InputURL == "" {
		req.InputURL = c.PostForm("image_url")
	}
	req.ActualProvince = c.PostForm("actual_province")
	req.UserGuess = c.PostForm("user_guess")
	req.SessionID = c.PostForm("session_id")

	if req.InputURL == "" || req.ActualProvince == "" {
		return req, errors.New("input_url and actual_province are required")
	}
	return req, nil
}

// GET /game/simulate?media_url=
func (h *Handler) Simulate(c *gin.Context) {
	mediaURL := c.Query("media_url")
	if mediaURL == "" {
		respondError(c, http.StatusBadRequest, "media_url query parameter is required")
		return
	}

	resp, err := h.services.Game.Simulate(c.Request.Context(), mediaURL, c.Query("session_id"))
	if err != nil {
		h.log.Error("simulate failed", "error", err.Error())
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GET /game/difficulty
func (h *Handler) Difficulty(c *gin.Context) {
	threshold, err := h.services.Game.Threshold(c.Query("session_id"))
	if err != nil {
		h.log.Error("difficulty lookup failed", "error", err.Error())
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"confidence_threshold": threshold})
}

// GET /scrape/cultural-media
func (h *Handler) ScrapeCulturalMedia(c *gin.Context) {
	media, err := h.services.Scrape.ScrapeUntilValid(c.Request.Context())
	if err != nil {
		h.log.Error("scrape failed", "error", err.Error())
		respondError(c, http.StatusInternalServerError, fmt.Sprintf("Scraping failed: %s", err.Error()))
		return
	}

	c.JSON(http.StatusOK, media)
}

// POST /match-summary
func (h *Handler) MatchSummary(c *gin.Context) {
	var rounds []models.RoundOutcome
	if err := c.ShouldBindJSON(&rounds); err != nil {
		respondError(c, http.StatusBadRequest, fmt.Sprintf("invalid round data: %s", err.Error()))
		return
	}

	feedback, err := h.services.Summary.Analyze(c.Request.Context(), rounds)
	if err != nil {
		if errors.Is(err, application.ErrNoRounds) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		h.log.Error("match summary failed", "error", err.Error())
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"feedback": feedback})
}

// GET /match-summary/export
func (h *Handler) ExportMatchSummary(c *gin.Context) {
	data, err := h.services.Summary.ExportRounds(c.Query("session_id"))
	if err != nil {
		if errors.Is(err, application.ErrNoRounds) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		h.log.Error("round export failed", "error", err.Error())
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.Header("Content-Disposition", `attachment; filename="match_history.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// POST /chatbot/ask
func (h *Handler) ChatbotAsk(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, fmt.Sprintf("invalid request body: %s", err.Error()))
		return
	}

	reply, err := h.services.Chat.Ask(c.Request.Context(), req)
	if err != nil {
		h.log.Error("chatbot failed", "error", err.Error())
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": reply})
}

func respondError(c *gin.Context, status int, detail string) {
	c.JSON(status, gin.H{"detail": detail})
}
