package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Default Gemini models. The lite model answers text prompts faster and has
// a larger free quota; the vision path needs the full flash model.
const (
	DefaultTextModel   = "gemini-2.5-flash-lite"
	DefaultVisionModel = "gemini-2.5-flash"
)

// GeminiConfig configures the Gemini provider.
type GeminiConfig struct {
	APIKey      string
	TextModel   string
	VisionModel string
}

// Gemini implements Provider on the Google Gen AI SDK.
type Gemini struct {
	client      *genai.Client
	textModel   string
	visionModel string
}

// NewGemini creates a Gemini provider bound to cfg.APIKey.
func NewGemini(ctx context.Context, cfg GeminiConfig) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("ai.NewGemini: GEMINI_API_KEY is required")
	}
	if cfg.TextModel == "" {
		cfg.TextModel = DefaultTextModel
	}
	if cfg.VisionModel == "" {
		cfg.VisionModel = DefaultVisionModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("ai.NewGemini: create client: %w", err)
	}

	return &Gemini{client: client, textModel: cfg.TextModel, visionModel: cfg.VisionModel}, nil
}

// GenerateText asks the text model for a JSON answer to prompt.
func (g *Gemini) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.textModel, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](0.7),
		MaxOutputTokens:  8192,
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate text: %w", err)
	}
	return resp.Text(), nil
}

// GenerateVision asks the vision model about prompt with image attached inline.
func (g *Gemini) GenerateVision(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(prompt),
			genai.NewPartFromBytes(image, mimeType),
		}, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.visionModel, contents, &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](0.4),
		MaxOutputTokens:  4096,
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate vision: %w", err)
	}
	return resp.Text(), nil
}
