package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/fitbot-api/internal/domain/entity"
)

// FitnessHistoryEntry - запись журнала результатов
type FitnessHistoryEntry struct {
	ID                 uuid.UUID `json:"id"`
	FitnessLevel       int       `json:"fitness_level"`
	RiskFactor         string    `json:"risk_factor"`
	FitnessLevelScore  int       `json:"fitness_level_score"`
	RiskFactorScore    int       `json:"risk_factor_score"`
	QuestionnaireRunID uuid.UUID `json:"questionnaire_run_id"`
	CreatedAt          time.Time `json:"created_at"`
}

// FitnessHistoryResponse - история пользователя
type FitnessHistoryResponse struct {
	UserID  uuid.UUID             `json:"user_id"`
	User    string                `json:"user"`
	Entries []FitnessHistoryEntry `json:"entries"`
}

// NewFitnessHistoryResponse преобразует историю в DTO
func NewFitnessHistoryResponse(user *entity.User, entries []entity.FitnessHistory) FitnessHistoryResponse {
	resp := FitnessHistoryResponse{
		UserID:  user.ID,
		User:    user.DisplayName(),
		Entries: make([]FitnessHistoryEntry, 0, len(entries)),
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, FitnessHistoryEntry{
			ID:                 e.ID,
			FitnessLevel:       e.FitnessLevel,
			RiskFactor:         e.RiskFactor,
			FitnessLevelScore:  e.FitnessLevelScore,
			RiskFactorScore:    e.RiskFactorScore,
			QuestionnaireRunID: e.QuestionnaireRunID,
			CreatedAt:          e.CreatedAt,
		})
	}
	return resp
}
