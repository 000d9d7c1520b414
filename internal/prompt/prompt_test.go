package prompt

import (
	"strings"
	"testing"

	"questionai/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestBuildContainsAllFields(t *testing.T) {
	input := models.FormInput{Type: "MCQ", NumberOfQuestions: "5", Topic: "Arrays", Level: "Easy"}
	prompt := Build(input)

	for _, want := range []string{"MCQ", "5", "Arrays", "Easy"} {
		assert.Contains(t, prompt, want)
	}
	assert.Equal(t,
		"generate a MCQ questions with no of 5 on topic of Arrays as difficulty level of Easy with key of answers with professional format of response",
		prompt)
}

func TestBuildDeterministic(t *testing.T) {
	inputs := []models.FormInput{
		{},
		{Type: "Theory", NumberOfQuestions: "10", Topic: "CSE", Level: "Hard"},
		{Type: "%d", Topic: "{{.}}"},
	}
	for _, in := range inputs {
		assert.Equal(t, Build(in), Build(in))
	}
}

func TestBuildEmptyFields(t *testing.T) {
	prompt := Build(models.FormInput{})
	assert.True(t, strings.HasPrefix(prompt, "generate a  questions"))
	assert.NotContains(t, prompt, "%!")
}
