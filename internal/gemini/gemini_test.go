package gemini

import (
	"context"
	"errors"
	"testing"

	"questionai/internal/logging"
	"questionai/internal/models"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeModel struct {
	resp    *genai.GenerateContentResponse
	err     error
	prompts []string
}

func (f *fakeModel) GenerateContent(_ context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	for _, p := range parts {
		if text, ok := p.(genai.Text); ok {
			f.prompts = append(f.prompts, string(text))
		}
	}
	return f.resp, f.err
}

func newTestClient(model contentGenerator) *Client {
	return &Client{
		model:     model,
		modelName: DefaultModel,
		log:       logging.Discard(),
	}
}

func textResponse(parts ...genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Role: "model", Parts: parts}},
		},
	}
}

func TestGenerateReturnsText(t *testing.T) {
	model := &fakeModel{resp: textResponse(genai.Text("**Section**\nQ1?\nQ2?"))}
	c := newTestClient(model)

	text, err := c.Generate(context.Background(), "a prompt")
	require.NoError(t, err)
	assert.Equal(t, "**Section**\nQ1?\nQ2?", text)
	assert.Equal(t, []string{"a prompt"}, model.prompts)
}

func TestGenerateConcatenatesTextParts(t *testing.T) {
	model := &fakeModel{resp: textResponse(
		genai.Text("Q1?\n"),
		genai.Blob{MIMEType: "image/png", Data: []byte{1}},
		genai.Text("Q2?"),
	)}

	text, err := newTestClient(model).Generate(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "Q1?\nQ2?", text)
}

func TestGenerateEmptyResponses(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
	}{
		{"nil response", nil},
		{"no candidates", &genai.GenerateContentResponse{}},
		{"nil content", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}},
		{"no parts", textResponse()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := newTestClient(&fakeModel{resp: tt.resp}).Generate(context.Background(), "p")
			require.NoError(t, err)
			assert.Empty(t, text)
		})
	}
}

func TestGenerateWrapsFailure(t *testing.T) {
	cause := errors.New("connection reset")
	_, err := newTestClient(&fakeModel{err: cause}).Generate(context.Background(), "p")
	require.Error(t, err)

	var genErr *models.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, ProviderName, genErr.Provider)
	assert.ErrorIs(t, err, cause)
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient(context.Background(), "", "", logging.Discard())
	require.Error(t, err)
}
