package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yourusername/fitbot-api/internal/domain/entity"
	"github.com/yourusername/fitbot-api/internal/domain/repository"
	apperrors "github.com/yourusername/fitbot-api/internal/pkg/errors"
	"github.com/yourusername/fitbot-api/pkg/openai"
)

// Параметры запроса к модели
const (
	DefaultTestPrompt   = "Say hello world"
	TestModeMaxTokens   = 50
	ProductionMaxTokens = 1500
	AdvisorTemperature  = 0.7
	notAssessed         = "not assessed"
	testModeUserName    = "Test"
	testModeUserSurname = "User"
)

// CompletionClient - клиент chat completions API
type CompletionClient interface {
	Configured() bool
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (*openai.ChatCompletionResponse, error)
}

// AdviceRequest - входные данные советника
type AdviceRequest struct {
	UserID     string
	TestMode   bool
	TestPrompt string
}

// Advice - ответ советника
type Advice struct {
	User            string
	Recommendations string
	TestMode        bool

	// Заполняются только в тестовом режиме
	Prompt       string
	Usage        *openai.Usage
	FullResponse json.RawMessage
}

// AdvisorService формирует персональные рекомендации через языковую модель
type AdvisorService struct {
	userRepo repository.UserRepository
	client   CompletionClient
	logger   *zap.Logger
}

// NewAdvisorService создает новый сервис советника
func NewAdvisorService(userRepo repository.UserRepository, client CompletionClient, logger *zap.Logger) *AdvisorService {
	return &AdvisorService{
		userRepo: userRepo,
		client:   client,
		logger:   logger.Named("advisor_service"),
	}
}

// Advise строит промпт и запрашивает рекомендации у модели
func (s *AdvisorService) Advise(ctx context.Context, req AdviceRequest) (*Advice, error) {
	if !s.client.Configured() {
		return nil, openai.ErrMissingAPIKey
	}

	var (
		prompt    string
		user      *entity.User
		maxTokens int
	)

	if req.TestMode {
		prompt = req.TestPrompt
		if prompt == "" {
			prompt = DefaultTestPrompt
		}
		user = &entity.User{Name: testModeUserName, Surname: testModeUserSurname}
		maxTokens = TestModeMaxTokens
	} else {
		if strings.TrimSpace(req.UserID) == "" {
			return nil, fmt.Errorf("%w: userId is required for production mode", apperrors.ErrValidation)
		}
		userID, err := uuid.Parse(req.UserID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid userId", apperrors.ErrValidation)
		}
		user, err = s.userRepo.GetByID(userID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, userID)
			}
			return nil, fmt.Errorf("failed to load user: %w", err)
		}
		prompt = BuildFitnessPrompt(user)
		maxTokens = ProductionMaxTokens
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Messages:    []openai.Message{{Role: "user", Content: prompt}},
		MaxTokens:   maxTokens,
		Temperature: AdvisorTemperature,
	})
	if err != nil {
		s.logger.Warn("chat completion failed", zap.Bool("test_mode", req.TestMode), zap.Error(err))
		return nil, err
	}

	advice := &Advice{
		User:            user.Name + " " + user.Surname,
		Recommendations: resp.Content(),
		TestMode:        req.TestMode,
	}
	if req.TestMode {
		advice.Prompt = prompt
		advice.Usage = resp.Usage
		advice.FullResponse = resp.Raw
	}
	return advice, nil
}

// BuildFitnessPrompt формирует промпт для персонального плана тренировок
func BuildFitnessPrompt(user *entity.User) string {
	bmiLine := notAssessed
	if bmi, ok := user.BMI(); ok {
		bmiLine = fmt.Sprintf("%.1f (%s)", bmi, entity.BMICategory(bmi))
	}

	fitnessLine := notAssessed
	if user.FitnessLevel != nil {
		fitnessLine = fmt.Sprintf("%d/5 (1=Beginner, 5=Advanced)", *user.FitnessLevel)
	}

	riskLine := notAssessed
	if user.RiskFactor != nil && *user.RiskFactor != "" {
		riskLine = *user.RiskFactor + " risk"
	}

	var b strings.Builder
	b.WriteString("Create a personalized fitness plan for:\n")
	fmt.Fprintf(&b, "- Name: %s %s\n", user.Name, user.Surname)
	fmt.Fprintf(&b, "- Age: %d\n", user.Age)
	fmt.Fprintf(&b, "- BMI: %s\n", bmiLine)
	fmt.Fprintf(&b, "- Fitness Level: %s\n", fitnessLine)
	fmt.Fprintf(&b, "- Risk Factor: %s\n", riskLine)
	fmt.Fprintf(&b, "- Height: %scm, Weight: %skg\n", formatNumber(user.Height), formatNumber(user.Weight))
	b.WriteString("\nPlease provide:\n")
	b.WriteString("1. Weekly workout schedule\n")
	b.WriteString("2. Exercise recommendations based on fitness level\n")
	b.WriteString("3. Safety considerations based on risk factor\n")
	b.WriteString("4. Progression plan\n")
	b.WriteString("5. Nutrition tips\n")
	b.WriteString("\nKeep it practical and actionable.")
	return b.String()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
