package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/yourusername/fitbot-api/internal/domain/entity"
	"github.com/yourusername/fitbot-api/internal/domain/repository"
	apperrors "github.com/yourusername/fitbot-api/internal/pkg/errors"
)

const formCacheKeyPrefix = "form:"

// FormService отдает структуру анкеты
type FormService struct {
	formRepo  repository.FormRepository
	cacheRepo repository.CacheRepository // nil, если Redis выключен
	cacheTTL  time.Duration
	logger    *zap.Logger
}

// NewFormService создает новый сервис анкет
func NewFormService(
	formRepo repository.FormRepository,
	cacheRepo repository.CacheRepository,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *FormService {
	return &FormService{
		formRepo:  formRepo,
		cacheRepo: cacheRepo,
		cacheTTL:  cacheTTL,
		logger:    logger.Named("form_service"),
	}
}

func formCacheKey(slug string) string {
	return formCacheKeyPrefix + slug
}

// GetForm возвращает форму с разделами и вопросами по slug
func (s *FormService) GetForm(slug string) (*entity.Form, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, fmt.Errorf("%w: form slug is empty", apperrors.ErrValidation)
	}

	if s.cacheRepo != nil {
		var cached entity.Form
		err := s.cacheRepo.GetJSON(formCacheKey(slug), &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Warn("form cache read failed", zap.String("slug", slug), zap.Error(err))
		}
	}

	form, err := s.formRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: form %q", apperrors.ErrNotFound, slug)
		}
		return nil, fmt.Errorf("failed to load form %q: %w", slug, err)
	}

	if s.cacheRepo != nil && s.cacheTTL > 0 {
		if err := s.cacheRepo.SetJSON(formCacheKey(slug), form, s.cacheTTL); err != nil {
			s.logger.Warn("form cache write failed", zap.String("slug", slug), zap.Error(err))
		}
	}

	return form, nil
}

// InvalidateForm удаляет форму из кеша
func (s *FormService) InvalidateForm(slug string) error {
	if s.cacheRepo == nil {
		return nil
	}
	return s.cacheRepo.Delete(formCacheKey(slug))
}
