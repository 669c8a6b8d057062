package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Generator drafts text from a natural-language prompt
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// backend issues a single generation request
type backend interface {
	generate(ctx context.Context, model string, prompt string) (string, error)
	Close() error
}

// TextGenerator implements Generator on top of the Gemini API. A generator
// created without an API key stays in a failed state: every call returns a
// ConfigError and no request is sent.
type TextGenerator struct {
	backend backend
	config  *Config
	initErr error
}

// NewTextGenerator creates a generator. It never returns nil; initialization
// failures are reported by Err and by every Generate call.
func NewTextGenerator(ctx context.Context, config *Config, apiKey string) *TextGenerator {
	if config == nil {
		config = DefaultConfig()
	}

	g := &TextGenerator{config: config}
	if strings.TrimSpace(apiKey) == "" {
		g.initErr = &ConfigError{Message: "API key is required", Cause: ErrNotConfigured}
		return g
	}
	if config.Model() == "" {
		g.initErr = &ConfigError{Message: fmt.Sprintf("no model configured for tier %s", config.Tier)}
		return g
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		g.initErr = &ConfigError{Message: "failed to create Gemini client", Cause: err}
		return g
	}
	g.backend = &geminiBackend{client: client, config: config}
	return g
}

// Err returns the initialization error, or nil when the generator is usable
func (g *TextGenerator) Err() error {
	return g.initErr
}

// Model returns the model name requests are sent to
func (g *TextGenerator) Model() string {
	return g.config.Model()
}

// Generate sends one request for prompt and returns the cleaned response text
func (g *TextGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.initErr != nil {
		return "", g.initErr
	}

	text, err := g.backend.generate(ctx, g.config.Model(), prompt)
	if err != nil {
		return "", classify(err)
	}
	return CleanGeneratedText(text), nil
}

// Close releases resources held by the generator
func (g *TextGenerator) Close() error {
	if g.backend != nil {
		return g.backend.Close()
	}
	return nil
}

// geminiBackend sends requests through the Gemini SDK
type geminiBackend struct {
	client *genai.Client
	config *Config
}

func (b *geminiBackend) generate(ctx context.Context, modelName string, prompt string) (string, error) {
	model := b.client.GenerativeModel(modelName)
	model.SetTemperature(b.config.Temperature)
	if b.config.MaxOutputTokens > 0 {
		model.SetMaxOutputTokens(b.config.MaxOutputTokens)
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	return extractTextFromResponse(resp)
}

func (b *geminiBackend) Close() error {
	if b.client != nil {
		return b.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from Gemini API response
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}
