package postgres

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yourusername/fitbot-api/internal/domain/entity"
)

// FormRepo реализует repository.FormRepository
type FormRepo struct {
	db *gorm.DB
}

// NewFormRepo создает новый репозиторий форм
func NewFormRepo(db *gorm.DB) *FormRepo {
	return &FormRepo{db: db}
}

// GetBySlug возвращает форму вместе с разделами и вопросами
func (r *FormRepo) GetBySlug(slug string) (*entity.Form, error) {
	var form entity.Form
	err := r.db.
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Sections.Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Where("slug = ?", slug).
		First(&form).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &form, nil
}

// Create сохраняет форму. Разделы и вопросы создаются вместе с ней.
func (r *FormRepo) Create(form *entity.Form) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(form).Error
	})
}

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// GetByIDs возвращает вопросы по списку ID
func (r *QuestionRepo) GetByIDs(ids []uuid.UUID) ([]entity.Question, error) {
	var questions []entity.Question
	if len(ids) == 0 {
		return questions, nil
	}
	err := r.db.Where("id IN ?", ids).Order("sort_order ASC").Find(&questions).Error
	return questions, err
}

// GetByFormID возвращает все вопросы формы
func (r *QuestionRepo) GetByFormID(formID uuid.UUID) ([]entity.Question, error) {
	var questions []entity.Question
	err := r.db.
		Joins("JOIN questionnaire.sections s ON s.id = questionnaire.questions.section_id").
		Where("s.form_id = ?", formID).
		Order("s.sort_order ASC, questionnaire.questions.sort_order ASC").
		Find(&questions).Error
	return questions, err
}
