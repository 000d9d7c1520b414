package prompt

import (
	"fmt"

	"questionai/internal/models"
)

// QuestionPrompt is the instruction template sent to the model. The four
// verbs are, in order: type, number of questions, topic, difficulty level.
const QuestionPrompt = "generate a %s questions with no of %s on topic of %s as difficulty level of %s with key of answers with professional format of response"

// Build interpolates the form fields into QuestionPrompt. Values are
// inserted verbatim; empty fields give a degenerate but valid prompt.
func Build(input models.FormInput) string {
	return fmt.Sprintf(QuestionPrompt, input.Type, input.NumberOfQuestions, input.Topic, input.Level)
}
