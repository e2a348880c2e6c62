// Package generate calls the Gemini API to draft program content from a
// prepared prompt.
package generate

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	defaultModel = "gemini-2.0-flash"

	// The structured program response runs long; give the model headroom.
	maxOutputTokens = 8000
)

// GeminiGenerator produces free text expected to contain the program JSON.
type GeminiGenerator struct {
	APIKey string
	Model  string
}

func NewGeminiGenerator(apiKey, model string) *GeminiGenerator {
	if model == "" {
		model = defaultModel
	}
	return &GeminiGenerator{APIKey: apiKey, Model: model}
}

// Generate sends the prompt and concatenates the text parts of the first
// candidate. The caller parses the result; a non-JSON reply is not an error
// here.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(g.APIKey))
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(g.Model)
	model.SetTemperature(0.7)
	model.SetTopP(0.9)
	model.SetMaxOutputTokens(maxOutputTokens)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated")
	}

	rawOutput := ""
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			rawOutput += string(text)
		}
	}
	if rawOutput == "" {
		return "", fmt.Errorf("generated content contained no text parts")
	}
	return rawOutput, nil
}
