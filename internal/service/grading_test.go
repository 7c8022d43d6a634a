package service

import (
	"testing"

	"edulearn_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestGradeAnswer(t *testing.T) {
	mcq := &model.Question{
		Type: model.MCQ,
		Options: []model.QuestionOption{
			{Option: "Paris", IsCorrect: true},
			{Option: "London"},
		},
	}
	noCorrect := &model.Question{
		Type: model.MCQ,
		Options: []model.QuestionOption{
			{Option: "Paris"},
			{Option: "London"},
		},
	}
	trueFalse := &model.Question{
		Type: model.TrueOrFalse,
		Options: []model.QuestionOption{
			{Option: "True", IsCorrect: true},
			{Option: "False"},
		},
	}
	blank := &model.Question{Type: model.FillInTheBlank, Answer: "Paris"}
	short := &model.Question{Type: model.ShortAnswer, Answer: "anything"}
	descriptive := &model.Question{Type: model.Descriptive}

	tests := []struct {
		name     string
		question *model.Question
		answer   string
		want     bool
	}{
		{"mcq exact match", mcq, "Paris", true},
		{"mcq wrong option", mcq, "London", false},
		{"mcq case sensitive", mcq, "paris", false},
		{"mcq untrimmed", mcq, " Paris ", false},
		{"mcq no correct option marked", noCorrect, "Paris", false},
		{"true or false match", trueFalse, "True", true},
		{"true or false wrong", trueFalse, "False", false},
		{"blank exact", blank, "Paris", true},
		{"blank case insensitive", blank, "paris", true},
		{"blank trims whitespace", blank, "  paris \n", true},
		{"blank wrong", blank, "London", false},
		{"blank empty answer", blank, "", false},
		{"short answer never auto graded", short, "anything", false},
		{"descriptive never auto graded", descriptive, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gradeAnswer(tt.question, tt.answer))
		})
	}
}

func TestCorrectAnswerFor(t *testing.T) {
	tests := []struct {
		name     string
		question *model.Question
		want     string
	}{
		{
			"choice returns correct option",
			&model.Question{Type: model.MCQ, Options: []model.QuestionOption{
				{Option: "A"}, {Option: "B", IsCorrect: true},
			}},
			"B",
		},
		{
			"choice without correct option",
			&model.Question{Type: model.MCQ, Options: []model.QuestionOption{{Option: "A"}}},
			"N/A",
		},
		{
			"blank returns canonical answer",
			&model.Question{Type: model.FillInTheBlank, Answer: "42"},
			"42",
		},
		{
			"open ended without answer",
			&model.Question{Type: model.Descriptive},
			"N/A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, correctAnswerFor(tt.question))
		})
	}
}
