package helper

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/yourusername/fitbot-api/internal/pkg/errors"
)

// ParseUUID разбирает идентификатор из тела запроса.
// field используется в тексте ошибки ("userId is required").
func ParseUUID(field, value string) (uuid.UUID, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return uuid.Nil, fmt.Errorf("%w: %s is required", apperrors.ErrValidation, field)
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid %s", apperrors.ErrValidation, field)
	}
	return id, nil
}
