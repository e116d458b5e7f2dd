package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// AnswerKind - форма значения ответа
type AnswerKind string

const (
	AnswerKindText      AnswerKind = "text"
	AnswerKindSelection AnswerKind = "selection"
)

// Answer представляет ответ на вопрос в рамках прохождения.
// Хранит либо текст, либо набор выбранных значений.
type Answer struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"-"`
	RunID          uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_answers_run_question" json:"run_id"`
	QuestionID     uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_answers_run_question" json:"question_id"`
	TextValue      *string        `gorm:"type:text" json:"text_value"`
	SelectedValues pq.StringArray `gorm:"type:text[]" json:"selected_values"`
	CreatedAt      time.Time      `json:"-"`
}

// TableName определяет имя таблицы для GORM
func (Answer) TableName() string {
	return "questionnaire.answers"
}

// BeforeCreate выставляет UUID, если он не задан
func (a *Answer) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// NewTextAnswer создает текстовый ответ
func NewTextAnswer(questionID uuid.UUID, text string) Answer {
	return Answer{QuestionID: questionID, TextValue: &text}
}

// NewSelectionAnswer создает ответ с выбранными вариантами
func NewSelectionAnswer(questionID uuid.UUID, values ...string) Answer {
	selected := make(pq.StringArray, len(values))
	copy(selected, values)
	return Answer{QuestionID: questionID, SelectedValues: selected}
}

// Kind возвращает форму значения
func (a *Answer) Kind() AnswerKind {
	if a.SelectedValues != nil {
		return AnswerKindSelection
	}
	return AnswerKindText
}

// EffectiveValue возвращает значение, по которому начисляются баллы:
// первый выбранный вариант, иначе текст.
func (a *Answer) EffectiveValue() string {
	if len(a.SelectedValues) > 0 && a.SelectedValues[0] != "" {
		return a.SelectedValues[0]
	}
	if a.TextValue != nil {
		return *a.TextValue
	}
	return ""
}
