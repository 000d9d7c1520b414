package models

import "fmt"

// FormInput holds the four free-text fields of the question form.
type FormInput struct {
	Type              string `json:"type" form:"type"`
	NumberOfQuestions string `json:"numberOfQuestions" form:"numberOfQuestions"`
	Topic             string `json:"topic" form:"topic"`
	Level             string `json:"level" form:"level"`
}

// DisplayLine is one line of generated text, classified header or plain.
type DisplayLine struct {
	Header bool   `json:"header"`
	Text   string `json:"text"`
}

// GenerationError covers every failure of a call to the generation service:
// transport errors, service-side errors and malformed responses alike.
type GenerationError struct {
	Provider string
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s generation failed: %v", e.Provider, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// QuestionsResponse is returned by the JSON generation endpoint.
type QuestionsResponse struct {
	Text  string        `json:"text"`
	Lines []DisplayLine `json:"lines"`
}

// PublishResponse is returned after a PDF is uploaded to object storage.
type PublishResponse struct {
	URL string `json:"url"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}
