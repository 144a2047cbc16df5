package backend

// Config carries the provider tuning knobs, sourced from environment
// variables. Provider keys are not part of this struct: keys arrive through
// the dialogue flow (or the key-specific env passthrough in main) and are
// only held for the lifetime of the session.
type Config struct {
	OpenAIBaseURL string `envconfig:"OPENAI_BASE_URL" default:"https://api.openai.com/v1"`

	HuggingFaceHubURL       string `envconfig:"HUGGINGFACEHUB_URL" default:"https://huggingface.co"`
	HuggingFaceInferenceURL string `envconfig:"HUGGINGFACEHUB_INFERENCE_URL" default:"https://api-inference.huggingface.co"`
	HuggingFaceMaxNewTokens int    `envconfig:"HUGGINGFACEHUB_MAX_NEW_TOKENS" default:"250"`

	Temperature    float32 `envconfig:"CHATGSE_TEMPERATURE" default:"0"`
	MaxTokens      int     `envconfig:"CHATGSE_MAX_TOKENS" default:"2048"`
	ThinkingBudget int32   `envconfig:"GEMINI_THINKING_BUDGET" default:"0"`

	// Correction toggles the correcting-agent pass on backends that
	// support it.
	Correction bool `envconfig:"CHATGSE_CORRECTION" default:"true"`

	// QueryTimeout bounds a single provider round trip, in seconds.
	QueryTimeout int `envconfig:"CHATGSE_QUERY_TIMEOUT" default:"120"`
}
