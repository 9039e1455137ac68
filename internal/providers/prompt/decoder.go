package prompt

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"studio/internal/domain"
	"studio/internal/providers/genai"
)

// Decoder extracts structured settings from free-form prompt text. Fields
// the decoder cannot detect stay empty.
type Decoder interface {
	Decode(ctx context.Context, text string) (domain.Settings, error)
}

// settingsSchema constrains the model output to the settings shape.
var settingsSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"gender": {"type": "string"},
		"ethnicity": {"type": "string"},
		"dressStyle": {"type": "string"},
		"dressColor": {"type": "string"},
		"dressDetails": {"type": "string"},
		"hairStyle": {"type": "string"},
		"hairAccessory": {"type": "string"},
		"background": {"type": "string"},
		"backgroundElements": {"type": "string"},
		"action": {"type": "string"},
		"gaze": {"type": "string"},
		"lighting": {"type": "string"},
		"shadowIntensity": {"type": "string"},
		"highlightBloom": {"type": "string"},
		"shotPose": {"type": "string"},
		"cameraModel": {"type": "string"},
		"lensType": {"type": "string"},
		"skin": {"type": "string"},
		"fashionAesthetics": {"type": "string"},
		"aspectRatio": {"type": "string"}
	}
}`)

const decoderSystemPrompt = "You analyze AI image-generation prompts and extract the structured settings that produced them. Fill every field you can identify from the prompt text; leave a field as an empty string when the prompt gives no evidence for it. Never invent values."

// GeminiDecoder decodes prompts through a schema-constrained Gemini call.
type GeminiDecoder struct {
	client *genai.Client
}

func NewGeminiDecoder(client *genai.Client) *GeminiDecoder {
	return &GeminiDecoder{client: client}
}

func (d *GeminiDecoder) Decode(ctx context.Context, text string) (domain.Settings, error) {
	req := genai.TextRequest{
		System: decoderSystemPrompt,
		Prompt: "Extract the settings from this prompt:\n\n" + text,
	}
	raw, err := d.client.GenerateStructured(ctx, req, settingsSchema)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("prompt: decode via %s: %w", geminiProviderName, err)
	}
	// Models occasionally wrap their output in a code fence even in JSON
	// mode; parseModelPayload strips that before decoding.
	settings, err := parseModelPayload[domain.Settings](raw)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("prompt: decode via %s: %w", geminiProviderName, err)
	}
	return settings, nil
}

var _ Decoder = (*GeminiDecoder)(nil)

// StaticDecoder matches the prompt text against the option catalogs. It is
// the offline fallback when no model key is configured: exact catalog
// phrases are detected, everything else stays empty.
type StaticDecoder struct{}

func NewStaticDecoder() *StaticDecoder {
	return &StaticDecoder{}
}

func (d *StaticDecoder) Decode(ctx context.Context, text string) (domain.Settings, error) {
	if err := ctx.Err(); err != nil {
		return domain.Settings{}, err
	}
	lower := strings.ToLower(text)
	match := func(options []string) string {
		for _, opt := range options {
			if strings.Contains(lower, strings.ToLower(opt)) {
				return opt
			}
		}
		return ""
	}

	var s domain.Settings
	s.Gender = match(domain.Genders)
	s.Ethnicity = match(domain.Ethnicities)
	s.DressStyle = match(domain.DressStyles)
	if details, ok := domain.DressDetails[s.DressStyle]; ok {
		s.DressDetails = match(details)
	}
	s.HairStyle = match(domain.HairStyles)
	s.HairAccessory = match(domain.HairAccessories)
	s.Background = match(domain.Backgrounds)
	s.BackgroundElements = match(domain.BackgroundElements)
	s.Gaze = match(domain.GazeOptions)
	s.Lighting = match(domain.LightingPresets)
	s.ShadowIntensity = match(domain.ShadowIntensities)
	s.HighlightBloom = match(domain.HighlightBlooms)
	s.CameraModel = match(domain.CameraModels)
	s.LensType = match(domain.LensTypes)
	s.Skin = match(domain.SkinDetails)
	s.FashionAesthetics = match(domain.FashionAesthetics)
	s.AspectRatio = match(domain.AspectRatios)
	for _, pose := range domain.ShotPoses {
		if pose.Name == domain.CustomPose {
			continue
		}
		if strings.Contains(lower, strings.ToLower(pose.Value)) {
			s.ShotPose = pose.Name
			break
		}
	}
	return s, nil
}

var _ Decoder = (*StaticDecoder)(nil)
