package ai

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	if modelName == "" {
		modelName = geminiModel
	}
	model := client.GenerativeModel(modelName)
	model.SetTemperature(aiTemperature)

	return &GeminiClient{client: client, model: model}, nil
}

func (g *GeminiClient) Close() error {
	return g.client.Close()
}

// Generate runs a text-only prompt and returns the raw model text.
func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	return g.generate(ctx, genai.Text(prompt))
}

// GenerateWithImage sends raw image bytes inline alongside the prompt.
// format is the image subtype without the "image/" prefix, e.g. "jpeg".
func (g *GeminiClient) GenerateWithImage(ctx context.Context, prompt, format string, data []byte) (string, error) {
	return g.generate(ctx, genai.ImageData(format, data), genai.Text(prompt))
}

// GenerateWithVideoURL references a remote video by URI instead of
// uploading bytes; the model fetches the content itself.
func (g *GeminiClient) GenerateWithVideoURL(ctx context.Context, prompt, videoURL string) (string, error) {
	return g.generate(ctx, genai.FileData{URI: videoURL}, genai.Text(prompt))
}

func (g *GeminiClient) generate(ctx context.Context, parts ...genai.Part) (string, error) {
	resp, err := g.model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from AI")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response format")
	}

	return string(text), nil
}
