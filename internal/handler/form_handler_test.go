package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yourusername/fitbot-api/internal/domain/entity"
	apperrors "github.com/yourusername/fitbot-api/internal/pkg/errors"
)

func TestFormHandler_GetForm(t *testing.T) {
	forms := new(MockFormProvider)
	sectionID := uuid.New()
	forms.On("GetForm", "onboarding_v1").Return(&entity.Form{
		ID:    uuid.New(),
		Title: "Onboarding",
		Sections: []entity.Section{{
			ID:        sectionID,
			Title:     "About you",
			SortOrder: 1,
			Questions: []entity.Question{
				{ID: uuid.New(), SectionID: sectionID, Key: "age", Prompt: "How old are you?", Type: entity.QuestionTypeNumber, Required: true, SortOrder: 1},
			},
		}},
	}, nil)

	h := NewFormHandler(forms, "onboarding_v1", zap.NewNop())
	c, w := newTestGinContext(http.MethodPost, "/api/form", map[string]string{})
	h.GetForm(c)

	require.Equal(t, http.StatusOK, w.Code)
	form := parseJSONResponse(t, w)["form"].(map[string]interface{})
	sections := form["sections"].([]interface{})
	require.Len(t, sections, 1)
	questions := sections[0].(map[string]interface{})["questions"].([]interface{})
	require.Len(t, questions, 1)
	q := questions[0].(map[string]interface{})
	assert.Equal(t, "age", q["key"])
	assert.Equal(t, true, q["required"])
	assert.Equal(t, []interface{}{}, q["options"], "Пустые варианты отдаются как []")
}

func TestFormHandler_GetForm_NotFound(t *testing.T) {
	forms := new(MockFormProvider)
	forms.On("GetForm", "onboarding_v1").Return(nil, fmt.Errorf("%w: form \"onboarding_v1\"", apperrors.ErrNotFound))

	h := NewFormHandler(forms, "onboarding_v1", zap.NewNop())
	c, w := newTestGinContext(http.MethodPost, "/api/form", nil)
	h.GetForm(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, parseJSONResponse(t, w)["error"], "onboarding_v1")
}
