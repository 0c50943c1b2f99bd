// Package gemini provides a backend.Client over the Google GenAI SDK.
package gemini

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"

	"github.com/jonwraymond/replexec/backend"
	"github.com/jonwraymond/replexec/protocol"
)

// DefaultModel is used when no model identifier is given.
const DefaultModel = "gemini-2.5-flash"

// Config holds the configuration for a Client.
type Config struct {
	// APIKey authenticates against the API. Defaults to the
	// GEMINI_API_KEY environment variable; construction fails when
	// neither is set.
	APIKey string

	// Model is the model identifier. Defaults to DefaultModel.
	Model string
}

// Client implements backend.Client for Gemini models.
type Client struct {
	client *genai.Client
	model  string
}

// New creates a Gemini client. It fails fast when no API key is
// available so misconfiguration surfaces at setup rather than on the
// first nested query.
func New(ctx context.Context, cfg Config) (*Client, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: set Config.APIKey or GEMINI_API_KEY", backend.ErrNoClient)
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &Client{client: client, model: model}, nil
}

// NewFactory returns a backend.Factory constructing Gemini clients with
// the environment-provided API key.
func NewFactory() backend.Factory {
	return func(model string) (backend.Client, error) {
		return New(context.Background(), Config{Model: model})
	}
}

// Kind returns the provider kind.
func (c *Client) Kind() string {
	return "gemini"
}

// Model returns the model identifier.
func (c *Client) Model() string {
	return c.model
}

// Complete sends the conversation and returns the reply text. System
// messages become the system instruction; assistant messages map to the
// model role.
func (c *Client) Complete(ctx context.Context, msgs []protocol.Message) (string, error) {
	var config *genai.GenerateContentConfig
	var contents []*genai.Content
	for _, m := range msgs {
		switch m.Role {
		case protocol.RoleSystem:
			if config == nil {
				config = &genai.GenerateContentConfig{}
			}
			if config.SystemInstruction == nil {
				config.SystemInstruction = genai.NewContentFromText(m.Content, genai.RoleUser)
			} else {
				config.SystemInstruction.Parts = append(config.SystemInstruction.Parts,
					genai.NewPartFromText(m.Content))
			}
		case protocol.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty completion from %s", c.model)
	}
	return text, nil
}
