package domain

import (
	"math/rand"
	"strings"
)

// Settings captures every knob of a photorealistic portrait request. All
// fields are free-form strings; the catalogs in options.go seed them but any
// value is accepted.
type Settings struct {
	Gender             string `json:"gender"`
	Ethnicity          string `json:"ethnicity"`
	DressStyle         string `json:"dressStyle"`
	DressColor         string `json:"dressColor"`
	DressDetails       string `json:"dressDetails"`
	HairStyle          string `json:"hairStyle"`
	HairAccessory      string `json:"hairAccessory"`
	Background         string `json:"background"`
	BackgroundElements string `json:"backgroundElements"`
	Action             string `json:"action"`
	Gaze               string `json:"gaze"`
	Lighting           string `json:"lighting"`
	ShadowIntensity    string `json:"shadowIntensity"`
	HighlightBloom     string `json:"highlightBloom"`
	ShotPose           string `json:"shotPose"`
	CameraModel        string `json:"cameraModel"`
	LensType           string `json:"lensType"`
	Skin               string `json:"skin"`
	FashionAesthetics  string `json:"fashionAesthetics"`
	AspectRatio        string `json:"aspectRatio"`
}

// DefaultSettings returns the initial state a fresh session starts from.
func DefaultSettings() Settings {
	style := DressStyles[0]
	return Settings{
		Gender:             Genders[0],
		Ethnicity:          Ethnicities[0],
		DressStyle:         style,
		DressColor:         "red",
		DressDetails:       DressDetails[style][0],
		HairStyle:          HairStyles[0],
		HairAccessory:      HairAccessories[0],
		Background:         Backgrounds[0],
		BackgroundElements: BackgroundElements[0],
		Action:             "running away from something",
		Gaze:               GazeOptions[0],
		Lighting:           LightingPresets[0],
		ShadowIntensity:    ShadowIntensities[0],
		HighlightBloom:     HighlightBlooms[0],
		ShotPose:           CustomPose,
		CameraModel:        CameraModels[0],
		LensType:           LensTypes[0],
		Skin:               SkinDetails[0],
		FashionAesthetics:  FashionAesthetics[0],
		AspectRatio:        "9:16",
	}
}

// SetDressStyle changes the dress style and resets the dress details to the
// first valid entry for the new style. Unknown styles keep whatever details
// were already set.
func (s *Settings) SetDressStyle(style string) {
	s.DressStyle = style
	if details, ok := DressDetails[style]; ok && len(details) > 0 {
		s.DressDetails = details[0]
	}
}

// Randomize replaces every catalog-backed field with a random pick from its
// catalog, honoring the dress-style/dress-details dependency. The free-text
// dress color and action are left alone.
func (s *Settings) Randomize(rng *rand.Rand) {
	pick := func(opts []string) string { return opts[rng.Intn(len(opts))] }

	s.Gender = pick(Genders)
	s.Ethnicity = pick(Ethnicities)
	s.SetDressStyle(pick(DressStyles))
	if details := DressDetails[s.DressStyle]; len(details) > 0 {
		s.DressDetails = details[rng.Intn(len(details))]
	}
	s.HairStyle = pick(HairStyles)
	s.HairAccessory = pick(HairAccessories)
	s.Background = pick(Backgrounds)
	s.BackgroundElements = pick(BackgroundElements)
	s.Gaze = pick(GazeOptions)
	s.Lighting = pick(LightingPresets)
	s.ShadowIntensity = pick(ShadowIntensities)
	s.HighlightBloom = pick(HighlightBlooms)
	s.ShotPose = ShotPoses[rng.Intn(len(ShotPoses))].Name
	s.CameraModel = pick(CameraModels)
	s.LensType = pick(LensTypes)
	s.Skin = pick(SkinDetails)
	s.FashionAesthetics = pick(FashionAesthetics)
	s.AspectRatio = pick(AspectRatios)
}

// Normalize trims whitespace and fills any empty field from the defaults so
// downstream consumers never see a blank slot. Decoded prompts frequently
// arrive with missing keys.
func (s *Settings) Normalize() {
	def := DefaultSettings()
	fill := func(dst *string, fallback string) {
		*dst = strings.TrimSpace(*dst)
		if *dst == "" {
			*dst = fallback
		}
	}

	fill(&s.Gender, def.Gender)
	fill(&s.Ethnicity, def.Ethnicity)
	fill(&s.DressStyle, def.DressStyle)
	fill(&s.DressColor, def.DressColor)
	fill(&s.DressDetails, def.DressDetails)
	fill(&s.HairStyle, def.HairStyle)
	fill(&s.HairAccessory, def.HairAccessory)
	fill(&s.Background, def.Background)
	fill(&s.BackgroundElements, def.BackgroundElements)
	fill(&s.Action, def.Action)
	fill(&s.Gaze, def.Gaze)
	fill(&s.Lighting, def.Lighting)
	fill(&s.ShadowIntensity, def.ShadowIntensity)
	fill(&s.HighlightBloom, def.HighlightBloom)
	fill(&s.ShotPose, def.ShotPose)
	fill(&s.CameraModel, def.CameraModel)
	fill(&s.LensType, def.LensType)
	fill(&s.Skin, def.Skin)
	fill(&s.FashionAesthetics, def.FashionAesthetics)
	fill(&s.AspectRatio, def.AspectRatio)
}

// PoseValue resolves the canonical prompt text for the selected shot pose.
// The second return is false when the pose is the free-form sentinel.
func (s *Settings) PoseValue() (string, bool) {
	if s.ShotPose == CustomPose {
		return "", false
	}
	for _, p := range ShotPoses {
		if p.Name == s.ShotPose {
			return p.Value, true
		}
	}
	// Unknown poses pass through verbatim so saved prompts round-trip.
	return s.ShotPose, true
}
