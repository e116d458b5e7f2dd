// Package scoring переводит ответы анкеты в баллы риска и физической подготовки
// и баллы в уровни. Один и тот же код используется при отправке анкеты и в
// отладочном эндпоинте.
package scoring

import (
	"github.com/google/uuid"
	"github.com/yourusername/fitbot-api/internal/domain/entity"
)

// Уровни риска
const (
	RiskLevelHigh     = "high"
	RiskLevelModerate = "moderate"
	RiskLevelLow      = "low"
)

// Пороги уровней. Не настраиваются.
const (
	riskModerateThreshold = 8
	riskLowThreshold      = 15

	fitnessLevel2Threshold = 7
	fitnessLevel3Threshold = 14
	fitnessLevel4Threshold = 21
	fitnessLevel5Threshold = 28
)

// TraceEntry описывает начисление баллов за один ответ
type TraceEntry struct {
	QuestionID    uuid.UUID            `json:"question_id"`
	Question      string               `json:"question"`
	Key           string               `json:"key"`
	ScoringType   *string              `json:"scoring_type"`
	Answer        string               `json:"answer"`
	PointsMapping entity.PointsMapping `json:"points_mapping"`
	PointsAwarded int                  `json:"points_awarded"`
}

// Result - итог подсчёта
type Result struct {
	RiskScore    int          `json:"risk_score"`
	FitnessScore int          `json:"fitness_score"`
	RiskLevel    string       `json:"risk_level"`
	FitnessLevel int          `json:"fitness_level"`
	Trace        []TraceEntry `json:"trace"`
}

// RiskLevelFor переводит балл риска в уровень: <8 high, 8..14 moderate, >=15 low
func RiskLevelFor(score int) string {
	switch {
	case score >= riskLowThreshold:
		return RiskLevelLow
	case score >= riskModerateThreshold:
		return RiskLevelModerate
	default:
		return RiskLevelHigh
	}
}

// FitnessLevelFor переводит балл подготовки в уровень 1..5
func FitnessLevelFor(score int) int {
	switch {
	case score >= fitnessLevel5Threshold:
		return 5
	case score >= fitnessLevel4Threshold:
		return 4
	case score >= fitnessLevel3Threshold:
		return 3
	case score >= fitnessLevel2Threshold:
		return 2
	default:
		return 1
	}
}

// EffectiveValue возвращает значение ответа, по которому ищутся баллы
func EffectiveValue(answer *entity.Answer, question *entity.Question) string {
	if question.SupportsSelection() {
		return answer.EffectiveValue()
	}
	if answer.TextValue != nil && *answer.TextValue != "" {
		return *answer.TextValue
	}
	return answer.EffectiveValue()
}

// Score считает баллы по ответам. Ответы на неизвестные вопросы пропускаются,
// отсутствующая таблица баллов или ключ в ней дают 0.
func Score(answers []entity.Answer, questions []entity.Question) Result {
	byID := make(map[uuid.UUID]*entity.Question, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}

	result := Result{Trace: make([]TraceEntry, 0, len(answers))}
	for i := range answers {
		answer := &answers[i]
		question, ok := byID[answer.QuestionID]
		if !ok {
			continue
		}

		value := EffectiveValue(answer, question)
		points, _ := question.PointsMapping.Points(value)

		switch question.Category() {
		case entity.ScoringTypeRiskFactor:
			result.RiskScore += points
		case entity.ScoringTypeFitnessLevel:
			result.FitnessScore += points
		}

		result.Trace = append(result.Trace, TraceEntry{
			QuestionID:    question.ID,
			Question:      question.Prompt,
			Key:           question.Key,
			ScoringType:   question.ScoringType,
			Answer:        value,
			PointsMapping: question.PointsMapping,
			PointsAwarded: points,
		})
	}

	result.RiskLevel = RiskLevelFor(result.RiskScore)
	result.FitnessLevel = FitnessLevelFor(result.FitnessScore)
	return result
}
