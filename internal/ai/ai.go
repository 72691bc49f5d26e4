// Package ai talks to the external generative-AI service that suggests
// grievance categories and drafts resolution notes.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"civicpulse/internal/lifecycle"
	"civicpulse/internal/logger"
)

// FallbackResolution is returned whenever a resolution draft cannot be generated.
const FallbackResolution = "Issue resolved successfully as per department standards."

// ErrUnavailable is returned when no AI backend is configured.
var ErrUnavailable = errors.New("ai: service not configured")

// Suggestion is a category and short title proposed for a grievance description.
type Suggestion struct {
	Category       string `json:"category"`
	SuggestedTitle string `json:"suggestedTitle"`
}

// Assistant is the AI surface used by the API handlers.
type Assistant interface {
	Categorize(ctx context.Context, description string) (*Suggestion, error)
	DraftResolution(ctx context.Context, title, description string) string
}

// Generator produces text for a prompt, optionally constrained to a JSON schema.
type Generator interface {
	Generate(ctx context.Context, prompt string, schema *genai.Schema) (string, error)
}

// suggestionSchema constrains categorize responses to {category, suggestedTitle}.
var suggestionSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"category":       {Type: genai.TypeString, Enum: lifecycle.Categories},
		"suggestedTitle": {Type: genai.TypeString},
	},
	Required: []string{"category", "suggestedTitle"},
}

// Service implements Assistant on top of a Generator.
type Service struct {
	gen Generator
}

// NewService wraps gen.
func NewService(gen Generator) *Service {
	return &Service{gen: gen}
}

// Categorize asks the model to place description into one of the fixed
// categories. Unknown categories are normalized to "Other".
func (s *Service) Categorize(ctx context.Context, description string) (*Suggestion, error) {
	prompt := fmt.Sprintf("Given the following smart city grievance description, categorize it into one of these: %s. "+
		"Also provide a short 5-word title for it.\n\nDescription: %s",
		strings.Join(lifecycle.Categories, ", "), description)

	raw, err := s.gen.Generate(ctx, prompt, suggestionSchema)
	if err != nil {
		return nil, fmt.Errorf("categorize: %w", err)
	}

	var out Suggestion
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("categorize: decode response: %w", err)
	}
	out.Category = lifecycle.NormalizeCategory(out.Category)
	out.SuggestedTitle = strings.TrimSpace(out.SuggestedTitle)
	return &out, nil
}

// DraftResolution writes a short resolution note for an officer to edit.
// It never fails: any error yields FallbackResolution.
func (s *Service) DraftResolution(ctx context.Context, title, description string) string {
	prompt := fmt.Sprintf("You are a city department officer. A citizen reported this: %q. "+
		"Write a professional 2-sentence resolution message that explains what was fixed.",
		title+": "+description)

	text, err := s.gen.Generate(ctx, prompt, nil)
	if err != nil {
		logger.Get().Warnw("resolution draft failed", "error", err)
		return FallbackResolution
	}
	if text = strings.TrimSpace(text); text == "" {
		return FallbackResolution
	}
	return text
}

// Noop is used when no API key is configured.
type Noop struct{}

func (Noop) Categorize(context.Context, string) (*Suggestion, error) {
	return nil, ErrUnavailable
}

func (Noop) DraftResolution(context.Context, string, string) string {
	return FallbackResolution
}
