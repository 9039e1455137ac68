package prompt

import (
	"context"
	"fmt"
	"strings"

	"studio/internal/providers/genai"
)

// Turn is one exchange in an optimizer conversation.
type Turn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// OptimizeRequest carries one optimizer turn. History holds earlier turns so
// the conversation can build on previous rewrites; System overrides the
// default system prompt when set.
type OptimizeRequest struct {
	Current     string
	Instruction string
	History     []Turn
	System      string
}

// Optimizer rewrites a prompt according to a free-form instruction.
type Optimizer interface {
	Optimize(ctx context.Context, req OptimizeRequest) (string, error)
}

const defaultOptimizerSystem = "You are an expert prompt engineer for photorealistic image generation. Rewrite the user's prompt according to their instruction. Return only the rewritten prompt text with no commentary, no markdown, and no surrounding quotes."

// GeminiOptimizer delegates the rewrite to Gemini.
type GeminiOptimizer struct {
	client *genai.Client
}

func NewGeminiOptimizer(client *genai.Client) *GeminiOptimizer {
	return &GeminiOptimizer{client: client}
}

func (o *GeminiOptimizer) Optimize(ctx context.Context, req OptimizeRequest) (string, error) {
	system := coalesce(req.System, defaultOptimizerSystem)

	var b strings.Builder
	for _, turn := range req.History {
		fmt.Fprintf(&b, "%s: %s\n", turn.Role, strings.TrimSpace(turn.Text))
	}
	fmt.Fprintf(&b, "Current prompt:\n%s\n\nInstruction:\n%s", req.Current, req.Instruction)

	out, err := o.client.GenerateText(ctx, genai.TextRequest{System: system, Prompt: b.String()})
	if err != nil {
		return "", fmt.Errorf("prompt: optimize via %s: %w", geminiProviderName, err)
	}
	out = strings.TrimSpace(trimCodeFence(out))
	if out == "" {
		return "", fmt.Errorf("prompt: optimizer returned empty text")
	}
	return out, nil
}

var _ Optimizer = (*GeminiOptimizer)(nil)

// StaticOptimizer is the offline fallback: it folds the instruction into the
// prompt as an explicit directive so the result is still usable.
type StaticOptimizer struct{}

func NewStaticOptimizer() *StaticOptimizer {
	return &StaticOptimizer{}
}

func (o *StaticOptimizer) Optimize(ctx context.Context, req OptimizeRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	current := strings.TrimSpace(req.Current)
	instruction := strings.TrimSpace(req.Instruction)
	switch {
	case current == "" && instruction == "":
		return "", fmt.Errorf("prompt: %s optimizer: nothing to optimize", staticProviderName)
	case instruction == "":
		return current, nil
	case current == "":
		return instruction, nil
	}
	if !strings.HasSuffix(current, ".") {
		current += "."
	}
	return current + " " + strings.TrimSuffix(instruction, ".") + ".", nil
}

var _ Optimizer = (*StaticOptimizer)(nil)
