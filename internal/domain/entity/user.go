package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User представляет пользователя. Запись принадлежит внешнему провайдеру,
// здесь обновляются только производные поля fitness_level и risk_factor.
type User struct {
	ID                    uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name                  string     `gorm:"size:100;not null;default:''" json:"name"`
	Surname               string     `gorm:"size:100;not null;default:''" json:"surname"`
	Height                float64    `gorm:"not null;default:0" json:"height"` // см
	Weight                float64    `gorm:"not null;default:0" json:"weight"` // кг
	Age                   int        `gorm:"not null;default:0" json:"age"`
	FitnessLevel          *int       `json:"fitness_level"`
	FitnessLevelUpdatedAt *time.Time `json:"fitness_level_updated_at,omitempty"`
	RiskFactor            *string    `gorm:"size:20" json:"risk_factor"`
	RiskFactorUpdatedAt   *time.Time `json:"risk_factor_updated_at,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (User) TableName() string {
	return "users"
}

// DisplayName возвращает "Имя Фамилия"
func (u *User) DisplayName() string {
	return strings.TrimSpace(u.Name + " " + u.Surname)
}

// BMI рассчитывает индекс массы тела: вес(кг) / рост(м)².
// Возвращает false, если рост не задан.
func (u *User) BMI() (float64, bool) {
	if u.Height <= 0 {
		return 0, false
	}
	meters := u.Height / 100
	return u.Weight / (meters * meters), true
}

// BMICategory классифицирует индекс массы тела
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25:
		return "Normal weight"
	case bmi < 30:
		return "Overweight"
	default:
		return "Obese"
	}
}
