package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FitnessHistory - неизменяемая запись о результате подсчёта анкеты
type FitnessHistory struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	FitnessLevel       int       `gorm:"not null" json:"fitness_level"`
	RiskFactor         string    `gorm:"size:20;not null" json:"risk_factor"`
	FitnessLevelScore  int       `gorm:"not null" json:"fitness_level_score"`
	RiskFactorScore    int       `gorm:"not null" json:"risk_factor_score"`
	QuestionnaireRunID uuid.UUID `gorm:"type:uuid;not null;index" json:"questionnaire_run_id"`
	CreatedAt          time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (FitnessHistory) TableName() string {
	return "fitness_history"
}

// BeforeCreate выставляет UUID, если он не задан
func (h *FitnessHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}
