package postgres

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yourusername/fitbot-api/internal/domain/entity"
)

// UserRepo реализует repository.UserRepository
type UserRepo struct {
	db *gorm.DB
}

// NewUserRepo создает новый репозиторий пользователей
func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// GetByID возвращает пользователя по ID
func (r *UserRepo) GetByID(id uuid.UUID) (*entity.User, error) {
	var user entity.User
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// UpdateFitnessMetrics обновляет только производные поля пользователя
func (r *UserRepo) UpdateFitnessMetrics(tx *gorm.DB, userID uuid.UUID, fitnessLevel int, riskFactor string, at time.Time) error {
	result := conn(r.db, tx).Model(&entity.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"fitness_level":            fitnessLevel,
			"fitness_level_updated_at": at,
			"risk_factor":              riskFactor,
			"risk_factor_updated_at":   at,
			"updated_at":               at,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound(gorm.ErrRecordNotFound)
	}
	return nil
}

// FitnessHistoryRepo реализует repository.FitnessHistoryRepository
type FitnessHistoryRepo struct {
	db *gorm.DB
}

// NewFitnessHistoryRepo создает новый репозиторий истории результатов
func NewFitnessHistoryRepo(db *gorm.DB) *FitnessHistoryRepo {
	return &FitnessHistoryRepo{db: db}
}

// Create добавляет запись в журнал
func (r *FitnessHistoryRepo) Create(tx *gorm.DB, entry *entity.FitnessHistory) error {
	return conn(r.db, tx).Create(entry).Error
}

// ListByUser возвращает записи пользователя, новые первыми
func (r *FitnessHistoryRepo) ListByUser(userID uuid.UUID, limit int) ([]entity.FitnessHistory, error) {
	var entries []entity.FitnessHistory
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
