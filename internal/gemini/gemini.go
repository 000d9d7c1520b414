package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"questionai/internal/models"

	"github.com/google/generative-ai-go/genai"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

const (
	// ProviderName identifies this backend in errors and logs.
	ProviderName = "gemini"
	// DefaultModel is used when no model is configured.
	DefaultModel = "gemini-2.0-flash"
)

// contentGenerator is the part of *genai.GenerativeModel the client uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// Client wraps the Gemini client
type Client struct {
	client    *genai.Client
	model     contentGenerator
	modelName string
	log       logrus.FieldLogger
}

// NewClient creates a new Gemini client. The API key must come from
// configuration.
func NewClient(ctx context.Context, apiKey, modelName string, log logrus.FieldLogger) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	if modelName == "" {
		modelName = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		client:    client,
		model:     client.GenerativeModel(modelName),
		modelName: modelName,
		log:       log.WithField("provider", ProviderName),
	}, nil
}

// Close closes the Gemini client
func (c *Client) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

// ModelName returns the configured model.
func (c *Client) ModelName() string {
	return c.modelName
}

// Generate sends one prompt and returns the plain text of the first
// candidate. A response without candidates or text yields "" and no error;
// any failure of the call yields a *models.GenerationError.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	c.log.WithField("model", c.modelName).Debug("sending prompt to Gemini")

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", &models.GenerationError{Provider: ProviderName, Err: err}
	}

	text := responseText(resp)
	if text == "" {
		c.log.Warn("no content generated")
	}
	return text, nil
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String()
}
