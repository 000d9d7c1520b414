package openai

import (
	"context"
	"errors"

	"questionai/internal/models"

	goopenai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

const (
	// ProviderName identifies this backend in errors and logs.
	ProviderName = "openai"
	// DefaultModel is used when no model is configured.
	DefaultModel = "gpt-4o-mini"
)

// Client sends prompts to an OpenAI-compatible chat completion endpoint.
type Client struct {
	client *goopenai.Client
	model  string
	log    logrus.FieldLogger
}

// NewClient creates a client. baseURL is optional and points the client at a
// compatible gateway instead of api.openai.com.
func NewClient(apiKey, model, baseURL string, log logrus.FieldLogger) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("openai API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	cfg := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &Client{
		client: goopenai.NewClientWithConfig(cfg),
		model:  model,
		log:    log.WithField("provider", ProviderName),
	}, nil
}

// ModelName returns the configured model.
func (c *Client) ModelName() string {
	return c.model
}

// Generate sends the prompt as a single user message and returns the content
// of the first choice. No choices yields "" and no error.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	c.log.WithField("model", c.model).Debug("sending prompt to chat completion endpoint")

	resp, err := c.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: c.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", &models.GenerationError{Provider: ProviderName, Err: err}
	}

	if len(resp.Choices) == 0 {
		c.log.Warn("no choices in chat completion response")
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// Close is a no-op; the HTTP client holds no resources that need releasing.
func (c *Client) Close() {}
