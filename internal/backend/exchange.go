package backend

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	logx "github.com/trangdata/ChatGSE/pkg/logger"
)

// primaryPrompts seed the main transcript before any user input.
var primaryPrompts = []string{
	"You are an assistant to a biomedical researcher.",

	"Your role is to contextualise the user's findings with biomedical " +
		"background knowledge. If provided with a list, please give granular " +
		"feedback on the individual entities, your knowledge about them, and " +
		"what they may mean in the context of the research.",
}

// correctingPrompts seed the correcting agent, which reviews every primary
// reply for factual consistency.
var correctingPrompts = []string{
	"You are a biomedical researcher.",

	"Your task is to check for factual correctness and consistency in the " +
		"statements of another agent.",

	"Please correct the following message. Ensure it is factually correct, " +
		"and contains only content that is supported by the input. If there " +
		"is nothing to correct, please respond with just 'OK', and nothing else.",
}

// chatClient is the minimal generation surface the exchange needs. eino chat
// models are adapted through einoClient; the HuggingFace text model
// implements it directly.
type chatClient interface {
	Generate(ctx context.Context, messages []*schema.Message) (*schema.Message, error)
}

type einoClient struct {
	m model.ChatModel
}

func (e einoClient) Generate(ctx context.Context, messages []*schema.Message) (*schema.Message, error) {
	return e.m.Generate(ctx, messages)
}

// exchange holds the conversation state shared by every backend: the ordered
// primary transcript, the correcting agent preamble, and the session fields
// the dialogue layer reads back.
type exchange struct {
	model      Model
	userName   string
	topic      string
	messages   []*schema.Message
	caMessages []*schema.Message

	chat    chatClient
	ca      chatClient
	correct bool
}

func newExchange(m Model, correct bool) exchange {
	e := exchange{model: m, correct: correct}
	for _, p := range primaryPrompts {
		e.messages = append(e.messages, schema.SystemMessage(p))
	}
	for _, p := range correctingPrompts {
		e.caMessages = append(e.caMessages, schema.SystemMessage(p))
	}
	return e
}

func (e *exchange) appendSystem(text string) {
	e.messages = append(e.messages, schema.SystemMessage(text))
}

func (e *exchange) SetUserName(name string) {
	e.userName = name
}

func (e *exchange) UserName() string {
	return e.userName
}

func (e *exchange) Setup(topic string) {
	e.topic = topic
	e.appendSystem(fmt.Sprintf("The topic of the research is %s.", topic))
}

func (e *exchange) Context() string {
	return e.topic
}

func (e *exchange) SetupDataInputTool(serialized, tool string) {
	e.appendSystem(fmt.Sprintf(
		"The user has provided the output of the analysis tool '%s' in JSON "+
			"format. Use these data to answer the user's questions about their "+
			"results: %s", tool, serialized))
}

func (e *exchange) SetupDataInputManual(text string) {
	e.appendSystem("The user has provided the following data input manually: " + text)
}

func (e *exchange) AppendUserMessage(text string) {
	e.messages = append(e.messages, schema.UserMessage(text))
}

func (e *exchange) Model() Model {
	return e.model
}

// Query appends the user message, generates a reply, and runs the optional
// correction pass. Failures are returned as a message with nil usage, never
// as a Go error; the caller treats missing usage as the error signal.
func (e *exchange) Query(ctx context.Context, text string) (string, *schema.TokenUsage, string) {
	e.AppendUserMessage(text)

	if e.chat == nil {
		return "no API key has been set for " + e.model.String(), nil, ""
	}

	resp, err := e.chat.Generate(ctx, e.messages)
	if err != nil {
		logx.Error().Err(err).Str("model", e.model.String()).Msg("chat generation failed")
		return err.Error(), nil, ""
	}

	e.messages = append(e.messages, resp)

	var usage *schema.TokenUsage
	if resp.ResponseMeta != nil && resp.ResponseMeta.Usage != nil {
		u := *resp.ResponseMeta.Usage
		usage = &u
	}
	if usage == nil {
		logx.Warn().Str("model", e.model.String()).Msg("provider reported no token usage")
		return resp.Content, nil, ""
	}

	correction := ""
	if e.correct && e.ca != nil {
		correction = e.runCorrection(ctx, resp.Content)
	}

	logx.Debug().
		Str("model", e.model.String()).
		Int("prompt_tokens", usage.PromptTokens).
		Int("completion_tokens", usage.CompletionTokens).
		Int("total_tokens", usage.TotalTokens).
		Msg("query completed")

	return resp.Content, usage, correction
}

// runCorrection reviews a primary reply with the correcting agent. An "OK"
// verdict means nothing to correct. Correction failures are logged and
// swallowed so the primary reply still reaches the user.
func (e *exchange) runCorrection(ctx context.Context, response string) string {
	msgs := make([]*schema.Message, 0, len(e.caMessages)+1)
	msgs = append(msgs, e.caMessages...)
	msgs = append(msgs, schema.UserMessage(response))

	resp, err := e.ca.Generate(ctx, msgs)
	if err != nil {
		logx.Warn().Err(err).Str("model", e.model.String()).Msg("correction pass failed")
		return ""
	}

	verdict := strings.ToLower(strings.Trim(strings.TrimSpace(resp.Content), `'".`))
	if verdict == "ok" {
		return ""
	}
	return resp.Content
}
