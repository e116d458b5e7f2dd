package postgres

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/fitbot-api/internal/domain/entity"
	"github.com/yourusername/fitbot-api/internal/domain/repository"
	apperrors "github.com/yourusername/fitbot-api/internal/pkg/errors"
)

// RunRepo реализует repository.RunRepository
type RunRepo struct {
	db *gorm.DB
}

// NewRunRepo создает новый репозиторий прохождений
func NewRunRepo(db *gorm.DB) *RunRepo {
	return &RunRepo{db: db}
}

// Create создает прохождение. Частичный уникальный индекс
// ux_runs_open_per_user_form не допускает второго открытого прохождения.
func (r *RunRepo) Create(run *entity.Run) error {
	if err := r.db.Create(run).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: user %s, form %s", repository.ErrOpenRunExists, run.UserID, run.FormID)
		}
		return err
	}
	return nil
}

// GetByID возвращает прохождение по ID
func (r *RunRepo) GetByID(id uuid.UUID) (*entity.Run, error) {
	var run entity.Run
	if err := r.db.Where("id = ?", id).First(&run).Error; err != nil {
		return nil, notFound(err)
	}
	return &run, nil
}

// GetLatest возвращает последнее прохождение пользователя по форме
func (r *RunRepo) GetLatest(userID, formID uuid.UUID) (*entity.Run, error) {
	var run entity.Run
	err := r.db.
		Where("user_id = ? AND form_id = ?", userID, formID).
		Order("started_at DESC").
		First(&run).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &run, nil
}

// GetForUpdate читает прохождение с SELECT ... FOR UPDATE
func (r *RunRepo) GetForUpdate(tx *gorm.DB, id uuid.UUID) (*entity.Run, error) {
	var run entity.Run
	err := conn(r.db, tx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&run).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &run, nil
}

// Update сохраняет статус и результаты прохождения
func (r *RunRepo) Update(tx *gorm.DB, run *entity.Run) error {
	result := conn(r.db, tx).Model(&entity.Run{}).
		Where("id = ? AND status <> ?", run.ID, entity.RunStatusSubmitted).
		Updates(map[string]interface{}{
			"status":                   run.Status,
			"submitted_at":             run.SubmittedAt,
			"risk_factor_score":        run.RiskFactorScore,
			"fitness_level_score":      run.FitnessLevelScore,
			"calculated_risk_level":    run.CalculatedRiskLevel,
			"calculated_fitness_level": run.CalculatedFitnessLevel,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: run %s is missing or already submitted", apperrors.ErrConflict, run.ID)
	}
	return nil
}

// AnswerRepo реализует repository.AnswerRepository
type AnswerRepo struct {
	db *gorm.DB
}

// NewAnswerRepo создает новый репозиторий ответов
func NewAnswerRepo(db *gorm.DB) *AnswerRepo {
	return &AnswerRepo{db: db}
}

// GetByRunID возвращает ответы прохождения
func (r *AnswerRepo) GetByRunID(tx *gorm.DB, runID uuid.UUID) ([]entity.Answer, error) {
	var answers []entity.Answer
	err := conn(r.db, tx).Where("run_id = ?", runID).Order("created_at ASC").Find(&answers).Error
	return answers, err
}

// ReplaceForRun удаляет прежние ответы и вставляет новый набор.
// Вызывается внутри транзакции, иначе возможен частичный результат.
func (r *AnswerRepo) ReplaceForRun(tx *gorm.DB, runID uuid.UUID, answers []entity.Answer) error {
	db := conn(r.db, tx)
	if err := db.Where("run_id = ?", runID).Delete(&entity.Answer{}).Error; err != nil {
		return fmt.Errorf("delete answers: %w", err)
	}
	if len(answers) == 0 {
		return nil
	}
	rows := make([]entity.Answer, len(answers))
	copy(rows, answers)
	for i := range rows {
		rows[i].RunID = runID
	}
	if err := db.Create(&rows).Error; err != nil {
		return fmt.Errorf("insert answers: %w", err)
	}
	return nil
}
