package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/yourusername/fitbot-api/internal/pkg/errors"
)

// isDomainError сообщает, ожидаемая ли это ошибка (валидация, нет записи и т.п.)
func isDomainError(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound) ||
		errors.Is(err, apperrors.ErrValidation) ||
		errors.Is(err, apperrors.ErrConflict) ||
		errors.Is(err, apperrors.ErrUnauthorized)
}

// respondError отдает любую ошибку как 400 {"error": message}
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	logError(c, logger, err)
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func logError(c *gin.Context, logger *zap.Logger, err error) {
	fields := []zap.Field{zap.String("path", c.FullPath()), zap.Error(err)}
	if isDomainError(err) {
		logger.Info("request rejected", fields...)
		return
	}
	logger.Error("request failed", fields...)
}
