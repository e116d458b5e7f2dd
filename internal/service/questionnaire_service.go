package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yourusername/fitbot-api/internal/domain/entity"
	"github.com/yourusername/fitbot-api/internal/domain/repository"
	apperrors "github.com/yourusername/fitbot-api/internal/pkg/errors"
	"github.com/yourusername/fitbot-api/internal/service/scoring"
)

// RunStatus - результат GetStatus
type RunStatus struct {
	Status string
	Run    *entity.Run
}

// SaveResult - результат SaveAnswers. Scores заполнен только при отправке.
type SaveResult struct {
	Run    *entity.Run
	Scores *scoring.Result
}

// DebugReport - пересчёт баллов последнего прохождения с трассировкой
type DebugReport struct {
	Run          *entity.Run
	TotalAnswers int
	Scores       scoring.Result
}

// QuestionnaireService управляет прохождениями анкеты и ответами
type QuestionnaireService struct {
	formService  *FormService
	questionRepo repository.QuestionRepository
	runRepo      repository.RunRepository
	answerRepo   repository.AnswerRepository
	userRepo     repository.UserRepository
	historyRepo  repository.FitnessHistoryRepository
	tx           repository.TxRunner
	formSlug     string
	logger       *zap.Logger
	now          func() time.Time
}

// NewQuestionnaireService создает новый сервис анкеты
func NewQuestionnaireService(
	formService *FormService,
	questionRepo repository.QuestionRepository,
	runRepo repository.RunRepository,
	answerRepo repository.AnswerRepository,
	userRepo repository.UserRepository,
	historyRepo repository.FitnessHistoryRepository,
	tx repository.TxRunner,
	formSlug string,
	logger *zap.Logger,
) *QuestionnaireService {
	return &QuestionnaireService{
		formService:  formService,
		questionRepo: questionRepo,
		runRepo:      runRepo,
		answerRepo:   answerRepo,
		userRepo:     userRepo,
		historyRepo:  historyRepo,
		tx:           tx,
		formSlug:     formSlug,
		logger:       logger.Named("questionnaire_service"),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// GetForm возвращает текущую форму анкеты
func (s *QuestionnaireService) GetForm() (*entity.Form, error) {
	return s.formService.GetForm(s.formSlug)
}

func (s *QuestionnaireService) currentFormID() (uuid.UUID, error) {
	form, err := s.GetForm()
	if err != nil {
		return uuid.Nil, err
	}
	return form.ID, nil
}

// latestRun возвращает последнее прохождение или nil, если его нет
func (s *QuestionnaireService) latestRun(userID uuid.UUID) (*entity.Run, error) {
	formID, err := s.currentFormID()
	if err != nil {
		return nil, err
	}
	run, err := s.runRepo.GetLatest(userID, formID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load latest run: %w", err)
	}
	return run, nil
}

// GetStatus возвращает статус анкеты пользователя
func (s *QuestionnaireService) GetStatus(userID uuid.UUID) (*RunStatus, error) {
	run, err := s.latestRun(userID)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return &RunStatus{Status: entity.RunStatusNotStarted}, nil
	}
	return &RunStatus{Status: run.PublicStatus(), Run: run}, nil
}

// GetExistingRun возвращает последнее прохождение вместе с ответами
func (s *QuestionnaireService) GetExistingRun(userID uuid.UUID) (*entity.Run, []entity.Answer, error) {
	run, err := s.latestRun(userID)
	if err != nil {
		return nil, nil, err
	}
	if run == nil {
		return nil, nil, fmt.Errorf("%w: no questionnaire run for user %s", apperrors.ErrNotFound, userID)
	}

	answers, err := s.answerRepo.GetByRunID(nil, run.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load answers: %w", err)
	}
	return run, answers, nil
}

// StartRun возвращает последнее прохождение или создает новое
func (s *QuestionnaireService) StartRun(userID uuid.UUID) (*entity.Run, error) {
	formID, err := s.currentFormID()
	if err != nil {
		return nil, err
	}

	existing, err := s.runRepo.GetLatest(userID, formID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to load latest run: %w", err)
	}

	run := &entity.Run{
		UserID: userID,
		FormID: formID,
		Status: entity.RunStatusInProgress,
	}
	if err := s.runRepo.Create(run); err != nil {
		if errors.Is(err, repository.ErrOpenRunExists) {
			// параллельный startRun успел создать прохождение
			s.logger.Info("concurrent run start resolved", zap.String("user_id", userID.String()))
			return s.runRepo.GetLatest(userID, formID)
		}
		return nil, fmt.Errorf("failed to create run: %w", err)
	}

	s.logger.Info("questionnaire run started",
		zap.String("run_id", run.ID.String()),
		zap.String("user_id", userID.String()))
	return run, nil
}

// SaveAnswers заменяет ответы прохождения и обновляет его статус.
// При status=submitted подсчитывает баллы и переносит результат пользователю.
// Все изменения выполняются в одной транзакции.
func (s *QuestionnaireService) SaveAnswers(runID uuid.UUID, answers []entity.Answer, status string) (*SaveResult, error) {
	if status == "" {
		status = entity.RunStatusInProgress
	}
	if status != entity.RunStatusInProgress && status != entity.RunStatusSubmitted {
		return nil, fmt.Errorf("%w: unsupported status %q", apperrors.ErrValidation, status)
	}

	run, err := s.runRepo.GetByID(runID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: run %s", apperrors.ErrNotFound, runID)
		}
		return nil, fmt.Errorf("failed to load run: %w", err)
	}
	if run.IsSubmitted() {
		return nil, fmt.Errorf("%w: run %s is already submitted", apperrors.ErrConflict, runID)
	}

	if err := s.validateAnswers(run, answers); err != nil {
		return nil, err
	}

	result := &SaveResult{Run: run}
	err = s.tx.Transaction(func(tx *gorm.DB) error {
		// параллельная отправка могла завершиться после чтения выше
		locked, err := s.runRepo.GetForUpdate(tx, run.ID)
		if err != nil {
			return fmt.Errorf("failed to lock run: %w", err)
		}
		if locked.IsSubmitted() {
			return fmt.Errorf("%w: run %s is already submitted", apperrors.ErrConflict, runID)
		}

		if err := s.answerRepo.ReplaceForRun(tx, run.ID, answers); err != nil {
			return err
		}

		run.Status = status
		if status == entity.RunStatusSubmitted {
			now := s.now()
			run.SubmittedAt = &now

			scores, err := s.scoreRun(tx, run.ID)
			if err != nil {
				return err
			}
			run.ApplyScores(scores.RiskScore, scores.FitnessScore, scores.RiskLevel, scores.FitnessLevel)
			result.Scores = scores

			if err := s.userRepo.UpdateFitnessMetrics(tx, run.UserID, scores.FitnessLevel, scores.RiskLevel, now); err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return fmt.Errorf("%w: user %s", apperrors.ErrNotFound, run.UserID)
				}
				return fmt.Errorf("failed to update user metrics: %w", err)
			}

			entry := &entity.FitnessHistory{
				UserID:             run.UserID,
				FitnessLevel:       scores.FitnessLevel,
				RiskFactor:         scores.RiskLevel,
				FitnessLevelScore:  scores.FitnessScore,
				RiskFactorScore:    scores.RiskScore,
				QuestionnaireRunID: run.ID,
				CreatedAt:          now,
			}
			if err := s.historyRepo.Create(tx, entry); err != nil {
				return fmt.Errorf("failed to append fitness history: %w", err)
			}
		}

		return s.runRepo.Update(tx, run)
	})
	if err != nil {
		return nil, err
	}

	if result.Scores != nil {
		s.logger.Info("questionnaire submitted",
			zap.String("run_id", run.ID.String()),
			zap.Int("risk_score", result.Scores.RiskScore),
			zap.Int("fitness_score", result.Scores.FitnessScore),
			zap.String("risk_level", result.Scores.RiskLevel),
			zap.Int("fitness_level", result.Scores.FitnessLevel))
	}

	return result, nil
}

// validateAnswers проверяет, что каждый ответ относится к форме прохождения
// и что на вопрос дан не более чем один ответ
func (s *QuestionnaireService) validateAnswers(run *entity.Run, answers []entity.Answer) error {
	if len(answers) == 0 {
		return nil
	}

	questions, err := s.questionRepo.GetByFormID(run.FormID)
	if err != nil {
		return fmt.Errorf("failed to load questions: %w", err)
	}
	known := make(map[uuid.UUID]struct{}, len(questions))
	for _, q := range questions {
		known[q.ID] = struct{}{}
	}

	seen := make(map[uuid.UUID]struct{}, len(answers))
	for _, a := range answers {
		if _, ok := known[a.QuestionID]; !ok {
			return fmt.Errorf("%w: question %s does not belong to the run's form", apperrors.ErrNotFound, a.QuestionID)
		}
		if _, dup := seen[a.QuestionID]; dup {
			return fmt.Errorf("%w: duplicate answer for question %s", apperrors.ErrValidation, a.QuestionID)
		}
		seen[a.QuestionID] = struct{}{}
	}
	return nil
}

// scoreRun считает баллы по ответам, сохранённым для прохождения
func (s *QuestionnaireService) scoreRun(tx *gorm.DB, runID uuid.UUID) (*scoring.Result, error) {
	answers, err := s.answerRepo.GetByRunID(tx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to load answers for scoring: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(answers))
	for _, a := range answers {
		ids = append(ids, a.QuestionID)
	}
	questions, err := s.questionRepo.GetByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions for scoring: %w", err)
	}

	result := scoring.Score(answers, questions)
	return &result, nil
}

// DebugScores пересчитывает баллы последнего прохождения пользователя без записи
func (s *QuestionnaireService) DebugScores(userID uuid.UUID) (*DebugReport, error) {
	run, err := s.latestRun(userID)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, fmt.Errorf("%w: No questionnaire runs found", apperrors.ErrNotFound)
	}

	answers, err := s.answerRepo.GetByRunID(nil, run.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load answers: %w", err)
	}

	scores, err := s.scoreRun(nil, run.ID)
	if err != nil {
		return nil, err
	}

	return &DebugReport{
		Run:          run,
		TotalAnswers: len(answers),
		Scores:       *scores,
	}, nil
}
