package image

import (
	"context"

	"studio/internal/providers/genai"
)

// GeminiGenerator adapts the Gemini client to the Generator contract.
type GeminiGenerator struct {
	client *genai.Client
}

func NewGeminiGenerator(client *genai.Client) *GeminiGenerator {
	return &GeminiGenerator{client: client}
}

func (g *GeminiGenerator) Generate(ctx context.Context, req GenerateRequest) ([]Asset, error) {
	imgReq := genai.ImageRequest{
		Prompt:      req.Prompt,
		Quantity:    req.Quantity,
		AspectRatio: req.AspectRatio,
		RequestID:   req.RequestID,
	}
	if req.SubjectImage != nil {
		imgReq.ReferenceImage = req.SubjectImage.Data
		imgReq.ReferenceMIME = req.SubjectImage.MIME
	}

	assets, err := g.client.GenerateImages(ctx, imgReq)
	if err != nil {
		return nil, err
	}
	if len(assets) == 0 {
		return nil, ErrNoImage
	}
	out := make([]Asset, len(assets))
	for i, asset := range assets {
		out[i] = Asset{
			Format: asset.Format,
			Width:  asset.Width,
			Height: asset.Height,
			Data:   asset.Data,
		}
	}
	return out, nil
}

var _ Generator = (*GeminiGenerator)(nil)
