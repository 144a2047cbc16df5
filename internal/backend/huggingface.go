package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"

	errx "github.com/trangdata/ChatGSE/internal/core/error"
	logx "github.com/trangdata/ChatGSE/pkg/logger"
)

// HuggingFaceConversation talks to the hosted inference API for
// bigscience/bloom. Bloom is a plain text-completion model: the transcript
// is flattened into one prompt, the API reports no token usage, and there
// is no correcting agent.
type HuggingFaceConversation struct {
	exchange
	cfg  Config
	http *http.Client
}

func newHuggingFace(cfg Config) *HuggingFaceConversation {
	return &HuggingFaceConversation{
		exchange: newExchange(ModelHuggingFace, false),
		cfg:      cfg,
		http:     &http.Client{Timeout: time.Duration(cfg.QueryTimeout) * time.Second},
	}
}

// SetAPIKey verifies the token against the hub's whoami endpoint and wires
// up the inference client on success.
func (c *HuggingFaceConversation) SetAPIKey(ctx context.Context, key, user string) bool {
	if key == "" {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.HuggingFaceHubURL+"/api/whoami-v2", nil)
	if err != nil {
		logx.Error().Err(err).Msg("building huggingface key probe failed")
		return false
	}
	req.Header.Set("Authorization", "Bearer "+key)

	resp, err := c.http.Do(req)
	if err != nil {
		logx.Error().Err(err).Msg("huggingface key probe failed")
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		logx.Warn().Int("status", resp.StatusCode).Str("user", user).Msg("huggingface rejected API token")
		return false
	}

	c.chat = &hfTextModel{
		endpoint:     c.cfg.HuggingFaceInferenceURL + "/models/" + ModelHuggingFace.String(),
		token:        key,
		maxNewTokens: c.cfg.HuggingFaceMaxNewTokens,
		http:         c.http,
	}
	logx.Info().Str("model", ModelHuggingFace.String()).Str("user", user).Msg("API token accepted")
	return true
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
	Options    hfOptions    `json:"options"`
}

type hfParameters struct {
	MaxNewTokens   int  `json:"max_new_tokens"`
	ReturnFullText bool `json:"return_full_text"`
}

type hfOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

type hfGenerated struct {
	GeneratedText string `json:"generated_text"`
}

// hfTextModel adapts the hosted text-generation endpoint to the chatClient
// surface. Token usage is estimated locally because the API reports none.
type hfTextModel struct {
	endpoint     string
	token        string
	maxNewTokens int
	http         *http.Client
}

func (h *hfTextModel) Generate(ctx context.Context, messages []*schema.Message) (*schema.Message, error) {
	var sb strings.Builder
	for _, m := range messages {
		sb.WriteString(m.Content)
		sb.WriteString("\n")
	}
	prompt := sb.String()

	body, err := json.Marshal(hfRequest{
		Inputs:     prompt,
		Parameters: hfParameters{MaxNewTokens: h.maxNewTokens, ReturnFullText: false},
		Options:    hfOptions{WaitForModel: true},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal inference request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build inference request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+h.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.http.Do(req)
	if err != nil {
		return nil, errx.WrapBackend("huggingface", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, errx.WrapBackend("huggingface",
			fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(payload))))
	}

	var out []hfGenerated
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode inference response: %w", err)
	}
	if len(out) == 0 {
		return nil, errx.WrapBackend("huggingface", errors.New("empty generation response"))
	}

	text := strings.TrimSpace(out[0].GeneratedText)

	promptTokens := EstimateTokensSimple(prompt)
	completionTokens := EstimateTokensSimple(text)

	msg := schema.AssistantMessage(text, nil)
	msg.ResponseMeta = &schema.ResponseMeta{
		Usage: &schema.TokenUsage{
			PromptTokens:     promptTokens,
			CompletionTokens: completionTokens,
			TotalTokens:      promptTokens + completionTokens,
		},
	}
	return msg, nil
}

var _ Conversation = (*HuggingFaceConversation)(nil)
