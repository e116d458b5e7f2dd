package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Константы статусов прохождения анкеты
const (
	RunStatusNotStarted = "not_started" // строки в БД нет
	RunStatusInProgress = "in_progress"
	RunStatusSubmitted  = "submitted"
)

// Статус, который видит клиент в getStatus
const RunStatusCompleted = "completed"

// Run представляет одну попытку прохождения анкеты пользователем
type Run struct {
	ID                     uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID                 uuid.UUID  `gorm:"type:uuid;not null;index:idx_runs_user_form" json:"user_id"`
	FormID                 uuid.UUID  `gorm:"type:uuid;not null;index:idx_runs_user_form" json:"form_id"`
	Status                 string     `gorm:"size:20;not null;default:'in_progress'" json:"status"`
	StartedAt              time.Time  `gorm:"not null" json:"started_at"`
	SubmittedAt            *time.Time `json:"submitted_at"`
	RiskFactorScore        *int       `json:"risk_factor_score,omitempty"`
	FitnessLevelScore      *int       `json:"fitness_level_score,omitempty"`
	CalculatedRiskLevel    *string    `gorm:"size:20" json:"calculated_risk_level,omitempty"`
	CalculatedFitnessLevel *int       `json:"calculated_fitness_level,omitempty"`
}

// TableName определяет имя таблицы для GORM
func (Run) TableName() string {
	return "questionnaire.runs"
}

// BeforeCreate выставляет UUID и время начала
func (r *Run) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.StartedAt.IsZero() {
		r.StartedAt = time.Now().UTC()
	}
	return nil
}

// IsSubmitted проверяет, отправлена ли анкета (терминальное состояние)
func (r *Run) IsSubmitted() bool {
	return r.Status == RunStatusSubmitted
}

// PublicStatus переводит статус в формат ответа getStatus
func (r *Run) PublicStatus() string {
	if r.IsSubmitted() {
		return RunStatusCompleted
	}
	return RunStatusInProgress
}

// ApplyScores фиксирует результаты подсчёта на записи прохождения
func (r *Run) ApplyScores(riskScore, fitnessScore int, riskLevel string, fitnessLevel int) {
	r.RiskFactorScore = &riskScore
	r.FitnessLevelScore = &fitnessScore
	r.CalculatedRiskLevel = &riskLevel
	r.CalculatedFitnessLevel = &fitnessLevel
}
