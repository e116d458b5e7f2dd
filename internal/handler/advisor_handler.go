package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/fitbot-api/internal/handler/dto"
	"github.com/yourusername/fitbot-api/internal/service"
	"github.com/yourusername/fitbot-api/pkg/openai"
)

// Advisor формирует рекомендации
type Advisor interface {
	Advise(ctx context.Context, req service.AdviceRequest) (*service.Advice, error)
}

// AdvisorHandler обрабатывает POST /api/ai-fitness-advisor
type AdvisorHandler struct {
	advisor Advisor
	logger  *zap.Logger
}

// NewAdvisorHandler создает новый обработчик советника
func NewAdvisorHandler(advisor Advisor, logger *zap.Logger) *AdvisorHandler {
	return &AdvisorHandler{advisor: advisor, logger: logger.Named("advisor_handler")}
}

// Advise возвращает персональный план тренировок
func (h *AdvisorHandler) Advise(c *gin.Context) {
	var req dto.AdvisorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data: " + err.Error(), "success": false})
		return
	}

	advice, err := h.advisor.Advise(c.Request.Context(), service.AdviceRequest{
		UserID:     req.UserID,
		TestMode:   req.TestMode,
		TestPrompt: req.TestPrompt,
	})
	if err != nil {
		logError(c, h.logger, err)
		if apiErr, ok := openai.IsAPIError(err); ok {
			c.JSON(http.StatusBadRequest, dto.AdvisorUpstreamError{
				Error:   "OpenAI API error",
				Status:  apiErr.StatusCode,
				Details: apiErr.Body,
				Success: false,
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	c.JSON(http.StatusOK, dto.NewAdvisorResponse(advice))
}
