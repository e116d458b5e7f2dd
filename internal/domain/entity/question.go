package entity

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Категории начисления баллов
const (
	ScoringTypeRiskFactor   = "risk_factor"
	ScoringTypeFitnessLevel = "fitness_level"
)

// Типы полей ввода
const (
	QuestionTypeText         = "text"
	QuestionTypeNumber       = "number"
	QuestionTypeSingleSelect = "single_select"
	QuestionTypeMultiSelect  = "multi_select"
)

// StringArray - пользовательский тип для работы с JSONB
type StringArray []string

// Scan реализует интерфейс sql.Scanner для StringArray
func (o *StringArray) Scan(value interface{}) error {
	if value == nil {
		*o = StringArray{}
		return nil
	}

	data, err := jsonbBytes(value)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		*o = StringArray{}
		return nil
	}

	return json.Unmarshal(data, o)
}

// Value реализует интерфейс driver.Valuer для StringArray
func (o StringArray) Value() (driver.Value, error) {
	if len(o) == 0 {
		return []byte("[]"), nil // Пустой JSON массив вместо null
	}
	return json.Marshal(o)
}

// PointsMapping - таблица "значение ответа -> баллы" (JSONB).
// Значения обязаны быть целыми числами: дробные и строковые баллы отклоняются при чтении.
type PointsMapping map[string]int

// Scan реализует интерфейс sql.Scanner для PointsMapping
func (m *PointsMapping) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}

	data, err := jsonbBytes(value)
	if err != nil {
		return err
	}
	if len(data) == 0 || string(data) == "null" {
		*m = nil
		return nil
	}

	parsed, err := ParsePointsMapping(data)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Value реализует интерфейс driver.Valuer для PointsMapping
func (m PointsMapping) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Points возвращает баллы за значение. Отсутствующий ключ даёт 0.
func (m PointsMapping) Points(value string) (int, bool) {
	points, ok := m[value]
	return points, ok
}

// ParsePointsMapping разбирает JSON объект, проверяя что все баллы - целые числа
func ParsePointsMapping(data []byte) (PointsMapping, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("points mapping must be a JSON object: %w", err)
	}

	mapping := make(PointsMapping, len(raw))
	for value, literal := range raw {
		// только целочисленный литерал: строки "5", 2.5 и 1e2 не принимаются
		text := string(bytes.TrimSpace(literal))
		points, err := strconv.ParseInt(text, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("points for %q must be an integer, got %s", value, text)
		}
		mapping[value] = int(points)
	}
	return mapping, nil
}

func jsonbBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, errors.New("failed to unmarshal JSONB value: expected []byte")
	}
}

// Question представляет вопрос анкеты
type Question struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	SectionID     uuid.UUID     `gorm:"type:uuid;not null;index" json:"section_id"`
	Key           string        `gorm:"size:100;not null" json:"key"`
	Prompt        string        `gorm:"type:text;not null" json:"prompt"`
	Type          string        `gorm:"size:30;not null;default:'text'" json:"type"`
	Required      bool          `gorm:"not null;default:false" json:"required"`
	Options       StringArray   `gorm:"type:jsonb;not null;default:'[]'" json:"options"`
	SortOrder     int           `gorm:"not null;default:0" json:"sort_order"`
	ScoringType   *string       `gorm:"size:30" json:"scoring_type,omitempty"`
	PointsMapping PointsMapping `gorm:"type:jsonb" json:"points_mapping,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questionnaire.questions"
}

// BeforeCreate выставляет UUID, если он не задан
func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// Category возвращает категорию начисления баллов ("" если вопрос не оценивается)
func (q *Question) Category() string {
	if q.ScoringType == nil {
		return ""
	}
	return *q.ScoringType
}

// SupportsSelection сообщает, выбирается ли ответ из вариантов
func (q *Question) SupportsSelection() bool {
	return q.Type == QuestionTypeSingleSelect || q.Type == QuestionTypeMultiSelect || len(q.Options) > 0
}
