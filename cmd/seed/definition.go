package main

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yourusername/fitbot-api/internal/domain/entity"
)

// formDefinition описывает анкету в YAML
type formDefinition struct {
	Slug     string              `yaml:"slug"`
	Title    string              `yaml:"title"`
	Sections []sectionDefinition `yaml:"sections"`
}

type sectionDefinition struct {
	Title     string               `yaml:"title"`
	Questions []questionDefinition `yaml:"questions"`
}

type questionDefinition struct {
	Key           string         `yaml:"key"`
	Prompt        string         `yaml:"prompt"`
	Type          string         `yaml:"type"`
	Required      bool           `yaml:"required"`
	Options       []string       `yaml:"options"`
	ScoringType   string         `yaml:"scoring_type"`
	PointsMapping map[string]yaml.Node `yaml:"points_mapping"`
}

var knownQuestionTypes = map[string]bool{
	entity.QuestionTypeText:         true,
	entity.QuestionTypeNumber:       true,
	entity.QuestionTypeSingleSelect: true,
	entity.QuestionTypeMultiSelect:  true,
}

func decodeDefinition(r io.Reader) (*formDefinition, error) {
	var def formDefinition
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		return nil, fmt.Errorf("failed to decode form definition: %w", err)
	}
	return &def, nil
}

// toEntity проверяет определение и строит форму с порядком разделов и вопросов
func (d *formDefinition) toEntity() (*entity.Form, error) {
	if strings.TrimSpace(d.Slug) == "" {
		return nil, fmt.Errorf("form slug is required")
	}
	if len(d.Sections) == 0 {
		return nil, fmt.Errorf("form %q has no sections", d.Slug)
	}

	form := &entity.Form{Slug: d.Slug, Title: d.Title}
	keys := make(map[string]bool)

	for si, sd := range d.Sections {
		section := entity.Section{Title: sd.Title, SortOrder: si + 1}
		for qi, qd := range sd.Questions {
			if qd.Key == "" {
				return nil, fmt.Errorf("section %q question #%d: key is required", sd.Title, qi+1)
			}
			if keys[qd.Key] {
				return nil, fmt.Errorf("duplicate question key %q", qd.Key)
			}
			keys[qd.Key] = true

			qType := qd.Type
			if qType == "" {
				qType = entity.QuestionTypeText
			}
			if !knownQuestionTypes[qType] {
				return nil, fmt.Errorf("question %q: unknown type %q", qd.Key, qType)
			}

			question := entity.Question{
				Key:       qd.Key,
				Prompt:    qd.Prompt,
				Type:      qType,
				Required:  qd.Required,
				Options:   entity.StringArray(qd.Options),
				SortOrder: qi + 1,
			}
			if qd.ScoringType != "" {
				if qd.ScoringType != entity.ScoringTypeRiskFactor && qd.ScoringType != entity.ScoringTypeFitnessLevel {
					return nil, fmt.Errorf("question %q: unknown scoring_type %q", qd.Key, qd.ScoringType)
				}
				scoringType := qd.ScoringType
				question.ScoringType = &scoringType
			}
			if len(qd.PointsMapping) > 0 {
				mapping, err := pointsMapping(qd.PointsMapping)
				if err != nil {
					return nil, fmt.Errorf("question %q: %w", qd.Key, err)
				}
				question.PointsMapping = mapping
			}
			section.Questions = append(section.Questions, question)
		}
		form.Sections = append(form.Sections, section)
	}

	return form, nil
}

// pointsMapping принимает только скаляры с тегом !!int
func pointsMapping(nodes map[string]yaml.Node) (entity.PointsMapping, error) {
	mapping := make(entity.PointsMapping, len(nodes))
	for value, node := range nodes {
		if node.Kind != yaml.ScalarNode || node.Tag != "!!int" {
			return nil, fmt.Errorf("points for %q must be an integer, got %q", value, node.Value)
		}
		var points int
		if err := node.Decode(&points); err != nil {
			return nil, fmt.Errorf("points for %q: %w", value, err)
		}
		mapping[value] = points
	}
	return mapping, nil
}
