package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"civicpulse/internal/ai"
	"civicpulse/internal/dto"
	apperrors "civicpulse/internal/errors"
	"civicpulse/internal/logger"
)

// AIHandler exposes the generative-AI helpers.
type AIHandler struct {
	assistant ai.Assistant
}

// NewAIHandler creates a new AIHandler.
func NewAIHandler(assistant ai.Assistant) *AIHandler {
	return &AIHandler{assistant: assistant}
}

// Categorize suggests a category and title for a grievance description
// @Summary     Suggest category
// @Tags        ai
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body dto.CategorizeRequest true "Grievance description"
// @Success     200 {object} dto.Envelope[dto.CategorySuggestion]
// @Failure     400 {object} dto.ErrorResponse "Invalid input"
// @Failure     503 {object} dto.ErrorResponse "AI service is not available"
// @Router      /ai/categorize [post]
func (h *AIHandler) Categorize(c *gin.Context) {
	var req dto.CategorizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	suggestion, err := h.assistant.Categorize(c.Request.Context(), req.Description)
	if err != nil {
		if !errors.Is(err, ai.ErrUnavailable) {
			logger.Get().Warnw("categorize failed", "error", err)
		}
		respondWithError(c, apperrors.Wrap(apperrors.ErrAIUnavailable, err))
		return
	}

	respondOK(c, http.StatusOK, "", dto.CategorySuggestion{
		Category:       suggestion.Category,
		SuggestedTitle: suggestion.SuggestedTitle,
	})
}
