package dto

import (
	"github.com/google/uuid"

	"github.com/yourusername/fitbot-api/internal/domain/entity"
)

// QuestionResponse - вопрос в том виде, в каком его видит клиент.
// Баллы и категория не отдаются.
type QuestionResponse struct {
	ID        uuid.UUID `json:"id"`
	SectionID uuid.UUID `json:"section_id"`
	Key       string    `json:"key"`
	Prompt    string    `json:"prompt"`
	Type      string    `json:"type"`
	Required  bool      `json:"required"`
	Options   []string  `json:"options"`
	SortOrder int       `json:"sort_order"`
}

// SectionResponse - раздел анкеты
type SectionResponse struct {
	ID        uuid.UUID          `json:"id"`
	Title     string             `json:"title"`
	SortOrder int                `json:"sort_order"`
	Questions []QuestionResponse `json:"questions"`
}

// FormResponse - анкета целиком
type FormResponse struct {
	ID       uuid.UUID         `json:"id"`
	Title    string            `json:"title"`
	Sections []SectionResponse `json:"sections"`
}

// NewFormResponse преобразует форму в DTO
func NewFormResponse(form *entity.Form) FormResponse {
	resp := FormResponse{
		ID:       form.ID,
		Title:    form.Title,
		Sections: make([]SectionResponse, 0, len(form.Sections)),
	}
	for _, s := range form.Sections {
		section := SectionResponse{
			ID:        s.ID,
			Title:     s.Title,
			SortOrder: s.SortOrder,
			Questions: make([]QuestionResponse, 0, len(s.Questions)),
		}
		for _, q := range s.Questions {
			options := []string(q.Options)
			if options == nil {
				options = []string{}
			}
			section.Questions = append(section.Questions, QuestionResponse{
				ID:        q.ID,
				SectionID: q.SectionID,
				Key:       q.Key,
				Prompt:    q.Prompt,
				Type:      q.Type,
				Required:  q.Required,
				Options:   options,
				SortOrder: q.SortOrder,
			})
		}
		resp.Sections = append(resp.Sections, section)
	}
	return resp
}
