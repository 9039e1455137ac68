package image

import (
	"context"
	"errors"
)

// ErrNoImage is returned when the provider completed without producing any
// image data.
var ErrNoImage = errors.New("image: provider returned no image")

// SubjectImage is an optional reference photo conditioning the generation.
type SubjectImage struct {
	MIME string
	Data []byte
}

// GenerateRequest describes a normalized request passed to any image provider.
type GenerateRequest struct {
	Prompt       string
	Quantity     int
	AspectRatio  string
	RequestID    string
	SubjectImage *SubjectImage
}

// Asset represents a generated image.
type Asset struct {
	Format string
	Width  int
	Height int
	Data   []byte
}

// Generator is the contract implemented by all image providers.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) ([]Asset, error)
}
