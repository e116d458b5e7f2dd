package repository

import (
	"github.com/google/uuid"
	"github.com/yourusername/fitbot-api/internal/domain/entity"
)

// FormRepository определяет методы для работы с анкетами
type FormRepository interface {
	// GetBySlug возвращает форму с разделами и вопросами, упорядоченными по sort_order
	GetBySlug(slug string) (*entity.Form, error)
	// Create сохраняет форму вместе с разделами и вопросами
	Create(form *entity.Form) error
}

// QuestionRepository определяет методы для работы с вопросами
type QuestionRepository interface {
	GetByIDs(ids []uuid.UUID) ([]entity.Question, error)
	GetByFormID(formID uuid.UUID) ([]entity.Question, error)
}
