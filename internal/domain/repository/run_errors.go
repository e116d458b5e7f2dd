package repository

import "errors"

var (
	// ErrOpenRunExists означает, что у пользователя уже есть незавершённое прохождение формы.
	ErrOpenRunExists = errors.New("open questionnaire run already exists")
)
