package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Form представляет анкету, идентифицируемую slug
type Form struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Slug      string    `gorm:"size:100;not null;uniqueIndex" json:"slug"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Sections  []Section `gorm:"foreignKey:FormID" json:"sections,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Form) TableName() string {
	return "questionnaire.forms"
}

// BeforeCreate выставляет UUID, если он не задан
func (f *Form) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// Questions возвращает все вопросы формы в порядке секций
func (f *Form) Questions() []Question {
	var questions []Question
	for _, s := range f.Sections {
		questions = append(questions, s.Questions...)
	}
	return questions
}

// Section представляет раздел анкеты
type Section struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	FormID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"form_id"`
	Title     string     `gorm:"size:200;not null" json:"title"`
	SortOrder int        `gorm:"not null;default:0" json:"sort_order"`
	Questions []Question `gorm:"foreignKey:SectionID" json:"questions,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Section) TableName() string {
	return "questionnaire.sections"
}

// BeforeCreate выставляет UUID, если он не задан
func (s *Section) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
