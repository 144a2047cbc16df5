package backend

import (
	"context"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	logx "github.com/trangdata/ChatGSE/pkg/logger"
)

// GeminiConversation talks to the Gemini API through a genai client. Like
// the OpenAI backend it reuses the chat model as its correcting agent.
type GeminiConversation struct {
	exchange
	cfg Config
}

func newGemini(cfg Config) *GeminiConversation {
	return &GeminiConversation{
		exchange: newExchange(ModelGemini, cfg.Correction),
		cfg:      cfg,
	}
}

// SetAPIKey builds the genai client and chat model, then issues a minimal
// generation probe. Client construction alone does not touch the network,
// so only the probe proves the key.
func (c *GeminiConversation) SetAPIKey(ctx context.Context, key, user string) bool {
	if key == "" {
		return false
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		logx.Error().Err(err).Msg("creating gemini client failed")
		return false
	}

	cm, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       ModelGemini.String(),
		Temperature: &c.cfg.Temperature,
		MaxTokens:   &c.cfg.MaxTokens,
		ThinkingConfig: &genai.ThinkingConfig{
			IncludeThoughts: false,
			ThinkingBudget:  genai.Ptr(c.cfg.ThinkingBudget),
		},
	})
	if err != nil {
		logx.Error().Err(err).Msg("creating gemini chat model failed")
		return false
	}

	if _, err := cm.Generate(ctx, []*schema.Message{schema.UserMessage("ping")}); err != nil {
		logx.Warn().Err(err).Str("user", user).Msg("gemini rejected API key")
		return false
	}

	c.chat = einoClient{cm}
	c.ca = c.chat
	logx.Info().Str("model", ModelGemini.String()).Str("user", user).Msg("API key accepted")
	return true
}

var _ Conversation = (*GeminiConversation)(nil)
