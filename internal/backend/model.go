// Package backend implements the conversation side of ChatGSE: the language
// models that answer the user's questions, selected once per session.
package backend

import (
	"fmt"
)

// Model identifies one of the supported language models. The dialogue layer
// never branches on provider names; everything it needs (token limit, the
// implementation) hangs off this enum.
type Model int

const (
	ModelOpenAI Model = iota
	ModelHuggingFace
	ModelGemini
)

// modelNames are the user-facing model identifiers, matching the provider
// catalogues.
var modelNames = map[Model]string{
	ModelOpenAI:      "gpt-3.5-turbo",
	ModelHuggingFace: "bigscience/bloom",
	ModelGemini:      "gemini-2.5-flash",
}

// modelTokenLimits are the context window sizes used to warn users about
// oversized data uploads.
var modelTokenLimits = map[Model]int{
	ModelOpenAI:      4097,
	ModelHuggingFace: 1000,
	ModelGemini:      1048576,
}

// String returns the provider-side model identifier.
func (m Model) String() string {
	if name, ok := modelNames[m]; ok {
		return name
	}
	return fmt.Sprintf("model(%d)", int(m))
}

// TokenLimit returns the model's context window in tokens.
func (m Model) TokenLimit() int {
	return modelTokenLimits[m]
}

// ParseModel resolves a configured model identifier to the enum.
func ParseModel(name string) (Model, error) {
	for m, n := range modelNames {
		if n == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("backend: unknown model %q (supported: %s, %s, %s)",
		name, ModelOpenAI, ModelHuggingFace, ModelGemini)
}

// New builds the Conversation implementation for the given model. The
// returned conversation is keyless until SetAPIKey succeeds.
func New(m Model, cfg Config) (Conversation, error) {
	switch m {
	case ModelOpenAI:
		return newOpenAI(cfg), nil
	case ModelHuggingFace:
		return newHuggingFace(cfg), nil
	case ModelGemini:
		return newGemini(cfg), nil
	default:
		return nil, fmt.Errorf("backend: no implementation for %s", m)
	}
}
