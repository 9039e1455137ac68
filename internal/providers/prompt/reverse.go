package prompt

import (
	"context"
	"fmt"
	"strings"

	"studio/internal/providers/genai"
)

// ReverseEngineer derives a generation prompt from a reference image.
type ReverseEngineer interface {
	Reverse(ctx context.Context, imageData []byte, mimeType string) (string, error)
}

const reverseInstruction = "Study this photograph and write the single image-generation prompt that would reproduce it as closely as possible. Describe the subject, clothing, hair, background, pose, camera, lens, and lighting in concrete photographic terms. Return only the prompt text."

// GeminiReverseEngineer asks Gemini to describe the image as a prompt.
type GeminiReverseEngineer struct {
	client *genai.Client
}

func NewGeminiReverseEngineer(client *genai.Client) *GeminiReverseEngineer {
	return &GeminiReverseEngineer{client: client}
}

func (r *GeminiReverseEngineer) Reverse(ctx context.Context, imageData []byte, mimeType string) (string, error) {
	if len(imageData) == 0 {
		return "", fmt.Errorf("prompt: reverse engineering requires image data")
	}
	out, err := r.client.DescribeImage(ctx, reverseInstruction, imageData, mimeType)
	if err != nil {
		return "", fmt.Errorf("prompt: reverse via %s: %w", geminiProviderName, err)
	}
	out = strings.TrimSpace(trimCodeFence(out))
	if out == "" {
		return "", fmt.Errorf("prompt: reverse engineer returned empty text")
	}
	return out, nil
}

var _ ReverseEngineer = (*GeminiReverseEngineer)(nil)
