package repository

import (
	"github.com/google/uuid"
	"github.com/yourusername/fitbot-api/internal/domain/entity"
	"gorm.io/gorm"
)

// RunRepository определяет методы для работы с прохождениями анкеты
type RunRepository interface {
	// Create создает прохождение. Если у пользователя уже есть открытое
	// прохождение этой формы, возвращает ErrOpenRunExists.
	Create(run *entity.Run) error
	GetByID(id uuid.UUID) (*entity.Run, error)
	// GetLatest возвращает последнее начатое прохождение пользователя по форме
	GetLatest(userID, formID uuid.UUID) (*entity.Run, error)
	// GetForUpdate перечитывает прохождение внутри транзакции с блокировкой строки
	GetForUpdate(tx *gorm.DB, id uuid.UUID) (*entity.Run, error)
	// Update сохраняет статус и результаты. Отправленное прохождение не
	// изменяется: в этом случае возвращается apperrors.ErrConflict.
	Update(tx *gorm.DB, run *entity.Run) error
}

// AnswerRepository определяет методы для работы с ответами
type AnswerRepository interface {
	GetByRunID(tx *gorm.DB, runID uuid.UUID) ([]entity.Answer, error)
	// ReplaceForRun заменяет все ответы прохождения одним набором
	ReplaceForRun(tx *gorm.DB, runID uuid.UUID, answers []entity.Answer) error
}
