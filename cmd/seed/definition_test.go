package main

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/fitbot-api/internal/domain/entity"
)

func TestDecodeDefinition_OnboardingForm(t *testing.T) {
	f, err := os.Open("../../config/onboarding_v1.yaml")
	require.NoError(t, err)
	defer f.Close()

	def, err := decodeDefinition(f)
	require.NoError(t, err)

	form, err := def.toEntity()
	require.NoError(t, err)

	assert.Equal(t, "onboarding_v1", form.Slug)
	require.Len(t, form.Sections, 3)
	assert.Equal(t, 1, form.Sections[0].SortOrder)
	assert.Equal(t, 3, form.Sections[2].SortOrder)

	var riskMax, fitnessMax int
	for _, q := range form.Questions() {
		best := 0
		for _, pts := range q.PointsMapping {
			if pts > best {
				best = pts
			}
		}
		switch q.Category() {
		case entity.ScoringTypeRiskFactor:
			riskMax += best
		case entity.ScoringTypeFitnessLevel:
			fitnessMax += best
		}
	}
	assert.GreaterOrEqual(t, riskMax, 15, "Максимальный балл риска должен достигать уровня low")
	assert.GreaterOrEqual(t, fitnessMax, 28, "Максимальный балл подготовки должен достигать уровня 5")
}

func TestToEntity_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no slug", "title: x\nsections:\n  - title: a\n"},
		{"no sections", "slug: s\n"},
		{"duplicate key", "slug: s\nsections:\n  - questions:\n      - key: a\n      - key: a\n"},
		{"unknown type", "slug: s\nsections:\n  - questions:\n      - key: a\n        type: slider\n"},
		{"unknown scoring", "slug: s\nsections:\n  - questions:\n      - key: a\n        scoring_type: mood\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, err := decodeDefinition(strings.NewReader(tt.yaml))
			require.NoError(t, err)
			_, err = def.toEntity()
			assert.Error(t, err)
		})
	}
}

func TestToEntity_RejectsNonIntegerPoints(t *testing.T) {
	tests := []struct {
		name   string
		points string
	}{
		{"fraction", `2.9`},
		{"quoted number", `"5"`},
		{"word", `many`},
		{"list", `[1, 2]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := "slug: s\nsections:\n  - questions:\n      - key: a\n        points_mapping: {\"yes\": " + tt.points + "}\n"
			def, err := decodeDefinition(strings.NewReader(doc))
			require.NoError(t, err)

			_, err = def.toEntity()
			assert.Error(t, err, "Баллы %s не должны приниматься", tt.points)
		})
	}
}

func TestToEntity_IntegerPoints(t *testing.T) {
	doc := "slug: s\nsections:\n  - questions:\n      - key: a\n        scoring_type: risk_factor\n        points_mapping: {\"yes\": 0, \"no\": 5, \"smoker\": -3}\n"
	def, err := decodeDefinition(strings.NewReader(doc))
	require.NoError(t, err)

	form, err := def.toEntity()
	require.NoError(t, err)

	assert.Equal(t, entity.PointsMapping{"yes": 0, "no": 5, "smoker": -3}, form.Sections[0].Questions[0].PointsMapping)
}

func TestToEntity_DefaultsToText(t *testing.T) {
	def, err := decodeDefinition(strings.NewReader("slug: s\nsections:\n  - title: A\n    questions:\n      - key: note\n        prompt: Заметка\n"))
	require.NoError(t, err)

	form, err := def.toEntity()
	require.NoError(t, err)

	q := form.Sections[0].Questions[0]
	assert.Equal(t, entity.QuestionTypeText, q.Type)
	assert.Nil(t, q.ScoringType)
	assert.Nil(t, q.PointsMapping)
	assert.Equal(t, 1, q.SortOrder)
}
