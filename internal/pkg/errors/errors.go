package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized используется для ошибок авторизации (неверный токен, нет прав).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrConflict используется для конфликтов состояния (например, повторная отправка анкеты).
	ErrConflict = errors.New("resource state conflict")

	// ErrConfiguration используется, когда не хватает настроек окружения (ключ API и т.п.).
	ErrConfiguration = errors.New("configuration error")

	// ErrUpstream используется для ошибок внешних API.
	ErrUpstream = errors.New("upstream error")
)
