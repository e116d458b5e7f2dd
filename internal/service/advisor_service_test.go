package service

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yourusername/fitbot-api/internal/domain/entity"
	apperrors "github.com/yourusername/fitbot-api/internal/pkg/errors"
	"github.com/yourusername/fitbot-api/pkg/openai"
)

func completion(content string) *openai.ChatCompletionResponse {
	return &openai.ChatCompletionResponse{
		Choices: []openai.Choice{{Message: openai.Message{Role: "assistant", Content: content}}},
		Usage:   &openai.Usage{PromptTokens: 4, CompletionTokens: 3, TotalTokens: 7},
		Raw:     json.RawMessage(`{"choices":[{"message":{"content":"` + content + `"}}]}`),
	}
}

func TestAdvisorService_TestModeDefaults(t *testing.T) {
	client := new(MockCompletionClient)
	client.On("Configured").Return(true)
	client.On("CreateChatCompletion", mock.Anything, mock.MatchedBy(func(req openai.ChatCompletionRequest) bool {
		return len(req.Messages) == 1 &&
			req.Messages[0].Role == "user" &&
			req.Messages[0].Content == "Say hello world" &&
			req.MaxTokens == 50 &&
			req.Temperature == 0.7
	})).Return(completion("hello world"), nil)

	svc := NewAdvisorService(new(MockUserRepository), client, zap.NewNop())
	advice, err := svc.Advise(context.Background(), AdviceRequest{TestMode: true})

	require.NoError(t, err)
	assert.Equal(t, "Test User", advice.User)
	assert.Equal(t, "hello world", advice.Recommendations)
	assert.True(t, advice.TestMode)
	assert.Equal(t, "Say hello world", advice.Prompt)
	require.NotNil(t, advice.Usage)
	assert.Equal(t, 7, advice.Usage.TotalTokens)
	assert.NotEmpty(t, advice.FullResponse)
	client.AssertExpectations(t)
}

func TestAdvisorService_TestModeCustomPrompt(t *testing.T) {
	client := new(MockCompletionClient)
	client.On("Configured").Return(true)
	client.On("CreateChatCompletion", mock.Anything, mock.MatchedBy(func(req openai.ChatCompletionRequest) bool {
		return req.Messages[0].Content == "ping"
	})).Return(completion("pong"), nil)

	svc := NewAdvisorService(new(MockUserRepository), client, zap.NewNop())
	advice, err := svc.Advise(context.Background(), AdviceRequest{TestMode: true, TestPrompt: "ping"})

	require.NoError(t, err)
	assert.Equal(t, "pong", advice.Recommendations)
}

func TestAdvisorService_ProductionRequiresUserID(t *testing.T) {
	client := new(MockCompletionClient)
	client.On("Configured").Return(true)

	svc := NewAdvisorService(new(MockUserRepository), client, zap.NewNop())
	_, err := svc.Advise(context.Background(), AdviceRequest{})

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "userId is required for production mode")
	client.AssertNotCalled(t, "CreateChatCompletion", mock.Anything, mock.Anything)
}

func TestAdvisorService_ProductionBuildsPrompt(t *testing.T) {
	userID := uuid.New()
	level := 3
	risk := "low"
	user := &entity.User{ID: userID, Name: "Anna", Surname: "Ivanova", Height: 200, Weight: 100, Age: 30, FitnessLevel: &level, RiskFactor: &risk}

	users := new(MockUserRepository)
	users.On("GetByID", userID).Return(user, nil)

	client := new(MockCompletionClient)
	client.On("Configured").Return(true)
	client.On("CreateChatCompletion", mock.Anything, mock.MatchedBy(func(req openai.ChatCompletionRequest) bool {
		return req.MaxTokens == 1500 && req.Messages[0].Content == BuildFitnessPrompt(user)
	})).Return(completion("plan"), nil)

	svc := NewAdvisorService(users, client, zap.NewNop())
	advice, err := svc.Advise(context.Background(), AdviceRequest{UserID: userID.String()})

	require.NoError(t, err)
	assert.Equal(t, "Anna Ivanova", advice.User)
	assert.Equal(t, "plan", advice.Recommendations)
	assert.False(t, advice.TestMode)
	assert.Empty(t, advice.Prompt, "Промпт возвращается только в тестовом режиме")
	assert.Nil(t, advice.Usage)
}

func TestAdvisorService_MissingAPIKey(t *testing.T) {
	client := new(MockCompletionClient)
	client.On("Configured").Return(false)

	svc := NewAdvisorService(new(MockUserRepository), client, zap.NewNop())
	_, err := svc.Advise(context.Background(), AdviceRequest{TestMode: true})

	assert.ErrorIs(t, err, apperrors.ErrConfiguration)
	client.AssertNotCalled(t, "CreateChatCompletion", mock.Anything, mock.Anything)
}

func TestAdvisorService_UpstreamError(t *testing.T) {
	client := new(MockCompletionClient)
	client.On("Configured").Return(true)
	client.On("CreateChatCompletion", mock.Anything, mock.Anything).
		Return(nil, &openai.APIError{StatusCode: http.StatusTooManyRequests, Body: json.RawMessage(`{"error":"quota"}`)})

	svc := NewAdvisorService(new(MockUserRepository), client, zap.NewNop())
	_, err := svc.Advise(context.Background(), AdviceRequest{TestMode: true})

	apiErr, ok := openai.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
}

func TestAdvisorService_UnknownUser(t *testing.T) {
	userID := uuid.New()
	users := new(MockUserRepository)
	users.On("GetByID", userID).Return(nil, apperrors.ErrNotFound)
	client := new(MockCompletionClient)
	client.On("Configured").Return(true)

	svc := NewAdvisorService(users, client, zap.NewNop())
	_, err := svc.Advise(context.Background(), AdviceRequest{UserID: userID.String()})

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestBuildFitnessPrompt(t *testing.T) {
	level := 3
	risk := "low"
	user := &entity.User{Name: "Anna", Surname: "Ivanova", Height: 200, Weight: 100, Age: 30, FitnessLevel: &level, RiskFactor: &risk}

	expected := "Create a personalized fitness plan for:\n" +
		"- Name: Anna Ivanova\n" +
		"- Age: 30\n" +
		"- BMI: 25.0 (Overweight)\n" +
		"- Fitness Level: 3/5 (1=Beginner, 5=Advanced)\n" +
		"- Risk Factor: low risk\n" +
		"- Height: 200cm, Weight: 100kg\n" +
		"\n" +
		"Please provide:\n" +
		"1. Weekly workout schedule\n" +
		"2. Exercise recommendations based on fitness level\n" +
		"3. Safety considerations based on risk factor\n" +
		"4. Progression plan\n" +
		"5. Nutrition tips\n" +
		"\n" +
		"Keep it practical and actionable."

	assert.Equal(t, expected, BuildFitnessPrompt(user))
}

func TestBuildFitnessPrompt_NotAssessed(t *testing.T) {
	user := &entity.User{Name: "Ivan", Surname: "Petrov", Height: 175.5, Weight: 72.5, Age: 41}

	prompt := BuildFitnessPrompt(user)

	assert.Contains(t, prompt, "- Fitness Level: not assessed\n")
	assert.Contains(t, prompt, "- Risk Factor: not assessed\n")
	assert.Contains(t, prompt, "- Height: 175.5cm, Weight: 72.5kg\n")

	noHeight := BuildFitnessPrompt(&entity.User{Name: "X", Weight: 70})
	assert.Contains(t, noHeight, "- BMI: not assessed\n")
}
