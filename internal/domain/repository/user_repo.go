package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/fitbot-api/internal/domain/entity"
	"gorm.io/gorm"
)

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	GetByID(id uuid.UUID) (*entity.User, error)
	// UpdateFitnessMetrics записывает fitness_level и risk_factor вместе с отметками времени
	UpdateFitnessMetrics(tx *gorm.DB, userID uuid.UUID, fitnessLevel int, riskFactor string, at time.Time) error
}

// FitnessHistoryRepository определяет методы для журнала результатов
type FitnessHistoryRepository interface {
	Create(tx *gorm.DB, entry *entity.FitnessHistory) error
	ListByUser(userID uuid.UUID, limit int) ([]entity.FitnessHistory, error)
}
