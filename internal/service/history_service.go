package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/yourusername/fitbot-api/internal/domain/entity"
	"github.com/yourusername/fitbot-api/internal/domain/repository"
	apperrors "github.com/yourusername/fitbot-api/internal/pkg/errors"
)

// Ограничения выборки истории
const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 500
)

// HistoryService отдает журнал результатов анкеты
type HistoryService struct {
	historyRepo repository.FitnessHistoryRepository
	userRepo    repository.UserRepository
}

// NewHistoryService создает новый сервис истории
func NewHistoryService(historyRepo repository.FitnessHistoryRepository, userRepo repository.UserRepository) *HistoryService {
	return &HistoryService{historyRepo: historyRepo, userRepo: userRepo}
}

// ListHistory возвращает пользователя и его записи, новые первыми
func (s *HistoryService) ListHistory(userID uuid.UUID, limit int) (*entity.User, []entity.FitnessHistory, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, userID)
		}
		return nil, nil, fmt.Errorf("failed to load user: %w", err)
	}

	entries, err := s.historyRepo.ListByUser(userID, limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load fitness history: %w", err)
	}
	return user, entries, nil
}
