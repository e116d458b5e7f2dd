package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/fitbot-api/internal/domain/entity"
	"github.com/yourusername/fitbot-api/internal/handler/dto"
)

// FormProvider отдает форму по slug
type FormProvider interface {
	GetForm(slug string) (*entity.Form, error)
}

// FormHandler отдает структуру анкеты
type FormHandler struct {
	forms  FormProvider
	slug   string
	logger *zap.Logger
}

// NewFormHandler создает новый обработчик формы
func NewFormHandler(forms FormProvider, slug string, logger *zap.Logger) *FormHandler {
	return &FormHandler{forms: forms, slug: slug, logger: logger.Named("form_handler")}
}

// GetForm возвращает текущую анкету
// POST /api/form
func (h *FormHandler) GetForm(c *gin.Context) {
	form, err := h.forms.GetForm(h.slug)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"form": dto.NewFormResponse(form)})
}
