package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yourusername/fitbot-api/internal/domain/entity"
	"github.com/yourusername/fitbot-api/internal/handler/dto"
	"github.com/yourusername/fitbot-api/internal/handler/helper"
	"github.com/yourusername/fitbot-api/internal/service"
)

// ErrInvalidAction возвращается для неизвестного action
var ErrInvalidAction = errors.New("Invalid action")

// QuestionnaireService - операции над прохождениями анкеты
type QuestionnaireService interface {
	GetForm() (*entity.Form, error)
	GetStatus(userID uuid.UUID) (*service.RunStatus, error)
	GetExistingRun(userID uuid.UUID) (*entity.Run, []entity.Answer, error)
	StartRun(userID uuid.UUID) (*entity.Run, error)
	SaveAnswers(runID uuid.UUID, answers []entity.Answer, status string) (*service.SaveResult, error)
	DebugScores(userID uuid.UUID) (*service.DebugReport, error)
}

// QuestionnaireHandler обрабатывает POST /api/questionnaire
type QuestionnaireHandler struct {
	questionnaire QuestionnaireService
	logger        *zap.Logger
}

// NewQuestionnaireHandler создает новый обработчик анкеты
func NewQuestionnaireHandler(questionnaire QuestionnaireService, logger *zap.Logger) *QuestionnaireHandler {
	return &QuestionnaireHandler{questionnaire: questionnaire, logger: logger.Named("questionnaire_handler")}
}

// Handle выбирает операцию по полю action
func (h *QuestionnaireHandler) Handle(c *gin.Context) {
	var req dto.QuestionnaireRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data: " + err.Error()})
		return
	}

	var (
		resp interface{}
		err  error
	)
	switch req.Action {
	case dto.ActionGetStatus:
		resp, err = h.getStatus(req)
	case dto.ActionGetExistingRun:
		resp, err = h.getExistingRun(req)
	case dto.ActionGetForm:
		resp, err = h.getForm()
	case dto.ActionStartRun:
		resp, err = h.startRun(req)
	case dto.ActionSaveAnswers:
		resp, err = h.saveAnswers(req)
	default:
		err = ErrInvalidAction
	}

	if err != nil {
		respondError(c, h.logger.With(zap.String("action", req.Action)), err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *QuestionnaireHandler) getStatus(req dto.QuestionnaireRequest) (interface{}, error) {
	userID, err := helper.ParseUUID("userId", req.UserID)
	if err != nil {
		return nil, err
	}
	status, err := h.questionnaire.GetStatus(userID)
	if err != nil {
		return nil, err
	}
	return dto.StatusResponse{Status: status.Status, Run: dto.NewRunResponse(status.Run)}, nil
}

func (h *QuestionnaireHandler) getExistingRun(req dto.QuestionnaireRequest) (interface{}, error) {
	userID, err := helper.ParseUUID("userId", req.UserID)
	if err != nil {
		return nil, err
	}
	run, answers, err := h.questionnaire.GetExistingRun(userID)
	if err != nil {
		return nil, err
	}
	return dto.ExistingRunResponse{Run: dto.NewRunResponse(run), Answers: dto.NewAnswerResponses(answers)}, nil
}

func (h *QuestionnaireHandler) getForm() (interface{}, error) {
	form, err := h.questionnaire.GetForm()
	if err != nil {
		return nil, err
	}
	return gin.H{"form": dto.NewFormResponse(form)}, nil
}

func (h *QuestionnaireHandler) startRun(req dto.QuestionnaireRequest) (interface{}, error) {
	userID, err := helper.ParseUUID("userId", req.UserID)
	if err != nil {
		return nil, err
	}
	run, err := h.questionnaire.StartRun(userID)
	if err != nil {
		return nil, err
	}
	return gin.H{"run": dto.NewRunResponse(run)}, nil
}

func (h *QuestionnaireHandler) saveAnswers(req dto.QuestionnaireRequest) (interface{}, error) {
	runID, err := helper.ParseUUID("runId", req.RunID)
	if err != nil {
		return nil, err
	}
	answers, err := dto.ToAnswers(runID, req.Answers)
	if err != nil {
		return nil, err
	}
	result, err := h.questionnaire.SaveAnswers(runID, answers, req.Status)
	if err != nil {
		return nil, err
	}
	return dto.NewSaveAnswersResponse(result.Scores), nil
}

// Debug пересчитывает баллы последнего прохождения пользователя
// POST /api/questionnaire-debug
func (h *QuestionnaireHandler) Debug(c *gin.Context) {
	var req dto.DebugRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data: " + err.Error()})
		return
	}

	userID, err := helper.ParseUUID("userId", req.UserID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	report, err := h.questionnaire.DebugScores(userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.DebugResponse{
		RunInfo:                dto.NewRunResponse(report.Run),
		TotalAnswers:           report.TotalAnswers,
		RiskScore:              report.Scores.RiskScore,
		FitnessScore:           report.Scores.FitnessScore,
		CalculatedRiskLevel:    report.Scores.RiskLevel,
		CalculatedFitnessLevel: report.Scores.FitnessLevel,
		DebugScoring:           report.Scores.Trace,
	})
}
