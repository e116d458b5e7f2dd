package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yourusername/fitbot-api/internal/service"
	"github.com/yourusername/fitbot-api/pkg/openai"
)

func TestAdvisorHandler_TestMode(t *testing.T) {
	advisor := new(MockAdvisor)
	advisor.On("Advise", mock.Anything, service.AdviceRequest{TestMode: true}).Return(&service.Advice{
		User:            "Test User",
		Recommendations: "hello world",
		TestMode:        true,
		Prompt:          "Say hello world",
		Usage:           &openai.Usage{TotalTokens: 7},
		FullResponse:    json.RawMessage(`{"id":"c1"}`),
	}, nil)

	h := NewAdvisorHandler(advisor, zap.NewNop())
	c, w := newTestGinContext(http.MethodPost, "/api/ai-fitness-advisor", map[string]interface{}{"testMode": true})
	h.Advise(c)

	require.Equal(t, http.StatusOK, w.Code)
	resp := parseJSONResponse(t, w)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "Test User", resp["user"])
	assert.Equal(t, "hello world", resp["aiRecommendations"])
	assert.Equal(t, true, resp["testMode"])
	assert.Equal(t, "Say hello world", resp["prompt"])
	assert.Equal(t, map[string]interface{}{"id": "c1"}, resp["fullResponse"])
	assert.NotNil(t, resp["usage"])
}

func TestAdvisorHandler_ProductionOmitsDebugFields(t *testing.T) {
	advisor := new(MockAdvisor)
	advisor.On("Advise", mock.Anything, service.AdviceRequest{UserID: "u1"}).Return(&service.Advice{
		User:            "Anna Ivanova",
		Recommendations: "plan",
	}, nil)

	h := NewAdvisorHandler(advisor, zap.NewNop())
	c, w := newTestGinContext(http.MethodPost, "/api/ai-fitness-advisor", map[string]interface{}{"userId": "u1"})
	h.Advise(c)

	require.Equal(t, http.StatusOK, w.Code)
	resp := parseJSONResponse(t, w)
	assert.Equal(t, false, resp["testMode"])
	for _, key := range []string{"prompt", "usage", "fullResponse"} {
		_, ok := resp[key]
		assert.False(t, ok, "%s не отдается вне тестового режима", key)
	}
}

func TestAdvisorHandler_UpstreamError(t *testing.T) {
	advisor := new(MockAdvisor)
	advisor.On("Advise", mock.Anything, mock.Anything).Return(nil, &openai.APIError{
		StatusCode: http.StatusUnauthorized,
		Body:       json.RawMessage(`{"error":{"message":"bad key"}}`),
	})

	h := NewAdvisorHandler(advisor, zap.NewNop())
	c, w := newTestGinContext(http.MethodPost, "/api/ai-fitness-advisor", map[string]interface{}{"testMode": true})
	h.Advise(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := parseJSONResponse(t, w)
	assert.Equal(t, "OpenAI API error", resp["error"])
	assert.Equal(t, float64(401), resp["status"])
	assert.Equal(t, false, resp["success"])
	assert.NotNil(t, resp["details"])
}

func TestAdvisorHandler_OtherError(t *testing.T) {
	advisor := new(MockAdvisor)
	advisor.On("Advise", mock.Anything, mock.Anything).Return(nil, openai.ErrMissingAPIKey)

	h := NewAdvisorHandler(advisor, zap.NewNop())
	c, w := newTestGinContext(http.MethodPost, "/api/ai-fitness-advisor", map[string]interface{}{})
	h.Advise(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := parseJSONResponse(t, w)
	assert.Contains(t, resp["error"], "OPENAI_API_KEY not found in environment")
	assert.Equal(t, false, resp["success"])
}
