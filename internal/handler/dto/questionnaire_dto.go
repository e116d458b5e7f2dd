package dto

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/fitbot-api/internal/domain/entity"
	"github.com/yourusername/fitbot-api/internal/handler/helper"
	apperrors "github.com/yourusername/fitbot-api/internal/pkg/errors"
	"github.com/yourusername/fitbot-api/internal/service/scoring"
)

// Действия эндпоинта анкеты
const (
	ActionGetStatus      = "getStatus"
	ActionGetExistingRun = "getExistingRun"
	ActionGetForm        = "getForm"
	ActionStartRun       = "startRun"
	ActionSaveAnswers    = "saveAnswers"
)

// QuestionnaireRequest - тело запроса POST /api/questionnaire
type QuestionnaireRequest struct {
	Action  string        `json:"action"`
	UserID  string        `json:"userId"`
	RunID   string        `json:"runId"`
	Status  string        `json:"status"`
	Answers []AnswerInput `json:"answers"`
}

// AnswerInput - ответ в запросе saveAnswers.
// Должно быть задано ровно одно из text_value / selected_values.
type AnswerInput struct {
	QuestionID     string   `json:"question_id"`
	RunID          string   `json:"run_id,omitempty"`
	TextValue      *string  `json:"text_value"`
	SelectedValues []string `json:"selected_values"`
}

// ToEntity проверяет ответ и преобразует его в сущность
func (a AnswerInput) ToEntity(runID uuid.UUID) (entity.Answer, error) {
	questionID, err := helper.ParseUUID("question_id", a.QuestionID)
	if err != nil {
		return entity.Answer{}, err
	}
	if a.RunID != "" && a.RunID != runID.String() {
		return entity.Answer{}, fmt.Errorf("%w: answer run_id does not match runId", apperrors.ErrValidation)
	}

	hasText := a.TextValue != nil
	hasSelection := a.SelectedValues != nil
	switch {
	case hasText && hasSelection:
		return entity.Answer{}, fmt.Errorf("%w: answer for question %s has both text_value and selected_values", apperrors.ErrValidation, questionID)
	case hasText:
		return entity.NewTextAnswer(questionID, *a.TextValue), nil
	case hasSelection:
		return entity.NewSelectionAnswer(questionID, a.SelectedValues...), nil
	default:
		return entity.Answer{}, fmt.Errorf("%w: answer for question %s has no value", apperrors.ErrValidation, questionID)
	}
}

// ToAnswers преобразует все ответы запроса
func ToAnswers(runID uuid.UUID, inputs []AnswerInput) ([]entity.Answer, error) {
	answers := make([]entity.Answer, 0, len(inputs))
	for _, in := range inputs {
		a, err := in.ToEntity(runID)
		if err != nil {
			return nil, err
		}
		answers = append(answers, a)
	}
	return answers, nil
}

// RunResponse - прохождение анкеты
type RunResponse struct {
	ID                     uuid.UUID  `json:"id"`
	UserID                 uuid.UUID  `json:"user_id"`
	FormID                 uuid.UUID  `json:"form_id"`
	Status                 string     `json:"status"`
	StartedAt              time.Time  `json:"started_at"`
	SubmittedAt            *time.Time `json:"submitted_at"`
	RiskFactorScore        *int       `json:"risk_factor_score,omitempty"`
	FitnessLevelScore      *int       `json:"fitness_level_score,omitempty"`
	CalculatedRiskLevel    *string    `json:"calculated_risk_level,omitempty"`
	CalculatedFitnessLevel *int       `json:"calculated_fitness_level,omitempty"`
}

// NewRunResponse преобразует прохождение в DTO
func NewRunResponse(run *entity.Run) *RunResponse {
	if run == nil {
		return nil
	}
	return &RunResponse{
		ID:                     run.ID,
		UserID:                 run.UserID,
		FormID:                 run.FormID,
		Status:                 run.Status,
		StartedAt:              run.StartedAt,
		SubmittedAt:            run.SubmittedAt,
		RiskFactorScore:        run.RiskFactorScore,
		FitnessLevelScore:      run.FitnessLevelScore,
		CalculatedRiskLevel:    run.CalculatedRiskLevel,
		CalculatedFitnessLevel: run.CalculatedFitnessLevel,
	}
}

// AnswerResponse - сохранённый ответ
type AnswerResponse struct {
	QuestionID     uuid.UUID `json:"question_id"`
	TextValue      *string   `json:"text_value"`
	SelectedValues []string  `json:"selected_values"`
}

// NewAnswerResponses преобразует ответы в DTO
func NewAnswerResponses(answers []entity.Answer) []AnswerResponse {
	resp := make([]AnswerResponse, 0, len(answers))
	for _, a := range answers {
		var selected []string
		if a.SelectedValues != nil {
			selected = []string(a.SelectedValues)
		}
		resp = append(resp, AnswerResponse{
			QuestionID:     a.QuestionID,
			TextValue:      a.TextValue,
			SelectedValues: selected,
		})
	}
	return resp
}

// StatusResponse - ответ getStatus
type StatusResponse struct {
	Status string       `json:"status"`
	Run    *RunResponse `json:"run,omitempty"`
}

// ExistingRunResponse - ответ getExistingRun
type ExistingRunResponse struct {
	Run     *RunResponse     `json:"run"`
	Answers []AnswerResponse `json:"answers"`
}

// ScoresResponse - результат подсчёта при отправке
type ScoresResponse struct {
	RiskFactorScore        int    `json:"risk_factor_score"`
	FitnessLevelScore      int    `json:"fitness_level_score"`
	CalculatedRiskLevel    string `json:"calculated_risk_level"`
	CalculatedFitnessLevel int    `json:"calculated_fitness_level"`
}

// SaveAnswersResponse - ответ saveAnswers
type SaveAnswersResponse struct {
	Success bool            `json:"success"`
	Scores  *ScoresResponse `json:"scores,omitempty"`
}

// NewSaveAnswersResponse формирует ответ saveAnswers
func NewSaveAnswersResponse(scores *scoring.Result) SaveAnswersResponse {
	resp := SaveAnswersResponse{Success: true}
	if scores != nil {
		resp.Scores = &ScoresResponse{
			RiskFactorScore:        scores.RiskScore,
			FitnessLevelScore:      scores.FitnessScore,
			CalculatedRiskLevel:    scores.RiskLevel,
			CalculatedFitnessLevel: scores.FitnessLevel,
		}
	}
	return resp
}

// DebugRequest - тело запроса отладочного эндпоинта
type DebugRequest struct {
	UserID string `json:"userId"`
}

// DebugResponse - пересчёт баллов с трассировкой
type DebugResponse struct {
	RunInfo                *RunResponse         `json:"run_info"`
	TotalAnswers           int                  `json:"total_answers"`
	RiskScore              int                  `json:"risk_score"`
	FitnessScore           int                  `json:"fitness_score"`
	CalculatedRiskLevel    string               `json:"calculated_risk_level"`
	CalculatedFitnessLevel int                  `json:"calculated_fitness_level"`
	DebugScoring           []scoring.TraceEntry `json:"debug_scoring"`
}
