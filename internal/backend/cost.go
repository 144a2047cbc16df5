package backend

import (
	"github.com/cloudwego/eino/schema"
)

// Pricing defines USD cost per 1M tokens for input/output.
type Pricing struct {
	InputPerM  float64
	OutputPerM float64
}

// defaultPricing provides hardcoded USD pricing per 1M text tokens.
var defaultPricing = map[Model]Pricing{
	ModelOpenAI: {InputPerM: 1.50, OutputPerM: 2.00},
	ModelGemini: {InputPerM: 0.30, OutputPerM: 2.50},
	// hosted bloom inference has no per-token price
	ModelHuggingFace: {},
}

// ResolvePricing returns hardcoded pricing for a model, zero when unknown.
func ResolvePricing(m Model) Pricing {
	return defaultPricing[m]
}

// ComputeCost converts token usage to USD cost using per-1M Pricing.
func ComputeCost(usage *schema.TokenUsage, p Pricing) (inputCost, outputCost, total float64) {
	if usage == nil {
		return 0, 0, 0
	}
	inputCost = p.InputPerM * float64(usage.PromptTokens) / 1_000_000.0
	outputCost = p.OutputPerM * float64(usage.CompletionTokens) / 1_000_000.0
	total = inputCost + outputCost
	return
}
