package prompt

import (
	"fmt"
	"strings"

	"studio/internal/domain"
)

// flowingGarments lists the dress styles whose skirts get the flowing-motion
// clause for female subjects.
var flowingGarments = map[string]bool{
	"Ancient Chinese Dress":     true,
	"Vietnamese Ao Dai":         true,
	"Hanfu":                     true,
	"Japanese Kimono":           true,
	"Korean Hanbok":             true,
	"Indian Saree":              true,
	"Gothic Victorian Ballgown": true,
	"Bohemian Beach Sundress":   true,
	"Mermaid Tail Skirt":        true,
}

// Compiler renders settings into the natural-language prompt sent to the
// image model. The zero value is ready to use.
type Compiler struct {
	// FlowingSkirtAllPoses extends the flowing-skirt clause to canonical
	// shot poses as well as the free-form branch.
	FlowingSkirtAllPoses bool
}

// Compile deterministically assembles the prompt. Sentences follow a fixed
// order: subject, clothing, hair, background, pose or action/gaze, camera,
// lighting, skin, fashion aesthetic, and finally the aspect ratio. Empty
// fields degrade to awkward but harmless sentences rather than errors.
func (c Compiler) Compile(s domain.Settings) string {
	var parts []string

	parts = append(parts, fmt.Sprintf(
		"A photorealistic, ultra-detailed portrait of a stunning %s %s.",
		s.Ethnicity, s.Gender))

	// The dress detail is carried verbatim; clients match on the exact
	// catalog string.
	parts = append(parts, fmt.Sprintf(
		"The subject is wearing a %s %s, featuring %s.",
		s.DressColor, s.DressStyle, s.DressDetails))

	hair := fmt.Sprintf("Hair: %s", lowerFirst(s.HairStyle))
	if acc := strings.TrimSpace(s.HairAccessory); acc != "" && acc != "None" {
		hair += fmt.Sprintf(", adorned with %s", lowerFirst(acc))
	}
	parts = append(parts, hair+".")

	parts = append(parts, fmt.Sprintf(
		"The scene is set against a %s, with %s in the background.",
		s.Background, lowerFirst(s.BackgroundElements)))

	if pose, ok := s.PoseValue(); ok {
		parts = append(parts, fmt.Sprintf("Shot composition: %s.", pose))
		if c.FlowingSkirtAllPoses {
			parts = c.appendFlowingSkirt(parts, s)
		}
	} else {
		parts = append(parts, fmt.Sprintf("The subject is %s.", s.Action))
		parts = append(parts, fmt.Sprintf("Gaze: %s.", lowerFirst(s.Gaze)))
		parts = c.appendFlowingSkirt(parts, s)
	}

	parts = append(parts, fmt.Sprintf(
		"Captured on a %s with a %s.", s.CameraModel, s.LensType))

	parts = append(parts, fmt.Sprintf(
		"Lighting: %s, with %s and %s.",
		lowerFirst(s.Lighting), s.ShadowIntensity, s.HighlightBloom))

	parts = append(parts, fmt.Sprintf("Skin: %s.", lowerFirst(s.Skin)))

	parts = append(parts, fmt.Sprintf("Style notes: %s.", lowerFirst(s.FashionAesthetics)))

	parts = append(parts, fmt.Sprintf(
		"The final image must be in a %s aspect ratio.", s.AspectRatio))

	return strings.Join(parts, " ")
}

func (c Compiler) appendFlowingSkirt(parts []string, s domain.Settings) []string {
	if s.Gender == "female" && flowingGarments[s.DressStyle] {
		parts = append(parts, "The skirt of the dress is flowing dramatically with the movement.")
	}
	return parts
}

// FidelityPrefix builds the instruction block prepended when a subject
// reference image accompanies the request. It is empty without a reference;
// otherwise it carries the face clause, then the hair clause, each with a
// terminal period and trailing space so it concatenates cleanly with the
// compiled prompt.
func FidelityPrefix(hasSubjectImage, strictFaceLock, strictHairLock bool) string {
	if !hasSubjectImage {
		return ""
	}
	var b strings.Builder
	if strictFaceLock {
		b.WriteString("Critically important: the face of the generated subject must be an exact, identical match to the face in the provided reference image. Do not change the facial structure, features, or identity in any way. ")
	}
	if strictHairLock {
		b.WriteString("The hair style and hair color must also remain an exact match to the reference image. ")
	}
	return b.String()
}

// lowerFirst lowercases the leading rune of catalog text so it reads
// naturally mid-sentence. Acronyms and camera names keep their casing via
// the double-uppercase guard.
func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	if len(r) > 1 && r[0] >= 'A' && r[0] <= 'Z' && r[1] >= 'A' && r[1] <= 'Z' {
		return s
	}
	if r[0] >= 'A' && r[0] <= 'Z' {
		r[0] = r[0] - 'A' + 'a'
	}
	return string(r)
}
