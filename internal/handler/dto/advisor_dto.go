package dto

import (
	"encoding/json"

	"github.com/yourusername/fitbot-api/internal/service"
	"github.com/yourusername/fitbot-api/pkg/openai"
)

// AdvisorRequest - тело запроса POST /api/ai-fitness-advisor
type AdvisorRequest struct {
	UserID     string `json:"userId"`
	TestMode   bool   `json:"testMode"`
	TestPrompt string `json:"testPrompt"`
}

// AdvisorResponse - успешный ответ советника.
// FullResponse, Prompt и Usage заполняются только в тестовом режиме.
type AdvisorResponse struct {
	Success           bool            `json:"success"`
	User              string          `json:"user"`
	AIRecommendations string          `json:"aiRecommendations"`
	TestMode          bool            `json:"testMode"`
	FullResponse      json.RawMessage `json:"fullResponse,omitempty"`
	Prompt            string          `json:"prompt,omitempty"`
	Usage             *openai.Usage   `json:"usage,omitempty"`
}

// NewAdvisorResponse преобразует результат сервиса в DTO
func NewAdvisorResponse(advice *service.Advice) AdvisorResponse {
	resp := AdvisorResponse{
		Success:           true,
		User:              advice.User,
		AIRecommendations: advice.Recommendations,
		TestMode:          advice.TestMode,
	}
	if advice.TestMode {
		resp.FullResponse = advice.FullResponse
		resp.Prompt = advice.Prompt
		resp.Usage = advice.Usage
	}
	return resp
}

// AdvisorUpstreamError - ответ при ошибке провайдера модели
type AdvisorUpstreamError struct {
	Error   string          `json:"error"`
	Status  int             `json:"status"`
	Details json.RawMessage `json:"details"`
	Success bool            `json:"success"`
}
