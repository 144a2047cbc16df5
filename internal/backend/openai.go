package backend

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"

	logx "github.com/trangdata/ChatGSE/pkg/logger"
)

// OpenAIConversation talks to the OpenAI chat completions API. The same
// chat model serves as its own correcting agent.
type OpenAIConversation struct {
	exchange
	cfg  Config
	http *http.Client
}

func newOpenAI(cfg Config) *OpenAIConversation {
	return &OpenAIConversation{
		exchange: newExchange(ModelOpenAI, cfg.Correction),
		cfg:      cfg,
		http:     &http.Client{Timeout: time.Duration(cfg.QueryTimeout) * time.Second},
	}
}

// SetAPIKey probes the models listing endpoint with the key and, on success,
// builds the chat model used for the rest of the session.
func (c *OpenAIConversation) SetAPIKey(ctx context.Context, key, user string) bool {
	if key == "" {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.OpenAIBaseURL+"/models", nil)
	if err != nil {
		logx.Error().Err(err).Msg("building openai key probe failed")
		return false
	}
	req.Header.Set("Authorization", "Bearer "+key)

	resp, err := c.http.Do(req)
	if err != nil {
		logx.Error().Err(err).Msg("openai key probe failed")
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		logx.Warn().Int("status", resp.StatusCode).Str("user", user).Msg("openai rejected API key")
		return false
	}

	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:  key,
		BaseURL: c.cfg.OpenAIBaseURL,
		Model:   ModelOpenAI.String(),
		Timeout: time.Duration(c.cfg.QueryTimeout) * time.Second,
	})
	if err != nil {
		logx.Error().Err(err).Msg("creating openai chat model failed")
		return false
	}

	c.chat = einoClient{cm}
	c.ca = c.chat
	logx.Info().Str("model", ModelOpenAI.String()).Str("user", user).Msg("API key accepted")
	return true
}

var _ Conversation = (*OpenAIConversation)(nil)
