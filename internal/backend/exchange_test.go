package backend

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/schema"
)

type fakeChat struct {
	replies []*schema.Message
	errs    []error
	calls   [][]*schema.Message
}

func (f *fakeChat) Generate(_ context.Context, msgs []*schema.Message) (*schema.Message, error) {
	f.calls = append(f.calls, append([]*schema.Message(nil), msgs...))
	i := len(f.calls) - 1
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	if i < len(f.replies) {
		return f.replies[i], nil
	}
	return schema.AssistantMessage("", nil), nil
}

func reply(text string, usage *schema.TokenUsage) *schema.Message {
	m := schema.AssistantMessage(text, nil)
	if usage != nil {
		m.ResponseMeta = &schema.ResponseMeta{Usage: usage}
	}
	return m
}

func TestQuerySuccess(t *testing.T) {
	chat := &fakeChat{replies: []*schema.Message{
		reply("TP53 is a tumour suppressor.", &schema.TokenUsage{PromptTokens: 12, CompletionTokens: 8, TotalTokens: 20}),
	}}
	ex := newExchange(ModelOpenAI, false)
	ex.chat = chat

	before := len(ex.messages)
	resp, usage, correction := ex.Query(context.Background(), "what is TP53?")

	if resp != "TP53 is a tumour suppressor." {
		t.Errorf("response = %q", resp)
	}
	if usage == nil || usage.TotalTokens != 20 {
		t.Errorf("usage = %+v, want total 20", usage)
	}
	if correction != "" {
		t.Errorf("correction = %q, want empty", correction)
	}
	if got, want := len(ex.messages), before+2; got != want {
		t.Errorf("transcript length = %d, want %d (user + assistant)", got, want)
	}
	last := ex.messages[len(ex.messages)-1]
	if last.Role != schema.Assistant || last.Content != resp {
		t.Errorf("last message = %v %q", last.Role, last.Content)
	}
}

func TestQueryWithoutKey(t *testing.T) {
	ex := newExchange(ModelHuggingFace, false)

	resp, usage, correction := ex.Query(context.Background(), "hello")

	if usage != nil {
		t.Errorf("usage = %+v, want nil", usage)
	}
	if correction != "" {
		t.Errorf("correction = %q, want empty", correction)
	}
	if resp == "" {
		t.Error("expected a failure message")
	}
}

func TestQueryGenerationError(t *testing.T) {
	chat := &fakeChat{errs: []error{errors.New("rate limited")}}
	ex := newExchange(ModelOpenAI, false)
	ex.chat = chat

	resp, usage, _ := ex.Query(context.Background(), "hello")

	if usage != nil {
		t.Errorf("usage = %+v, want nil on error", usage)
	}
	if resp != "rate limited" {
		t.Errorf("response = %q, want the provider error text", resp)
	}

	// the user message stays staged; a retry re-sends it
	last := ex.messages[len(ex.messages)-1]
	if last.Role != schema.User || last.Content != "hello" {
		t.Errorf("last staged message = %v %q", last.Role, last.Content)
	}
}

func TestQueryUsageAbsent(t *testing.T) {
	chat := &fakeChat{replies: []*schema.Message{reply("half an answer", nil)}}
	ex := newExchange(ModelOpenAI, false)
	ex.chat = chat

	resp, usage, correction := ex.Query(context.Background(), "hello")

	if usage != nil {
		t.Errorf("usage = %+v, want nil when the provider reports none", usage)
	}
	if resp != "half an answer" {
		t.Errorf("response = %q", resp)
	}
	if correction != "" {
		t.Errorf("correction = %q, want empty", correction)
	}
}

func TestCorrectionVerdictOK(t *testing.T) {
	chat := &fakeChat{replies: []*schema.Message{
		reply("the answer", &schema.TokenUsage{TotalTokens: 5}),
	}}
	ca := &fakeChat{replies: []*schema.Message{reply("OK", nil)}}

	ex := newExchange(ModelOpenAI, true)
	ex.chat = chat
	ex.ca = ca

	_, _, correction := ex.Query(context.Background(), "q")
	if correction != "" {
		t.Errorf("correction = %q, want empty on OK verdict", correction)
	}

	if len(ca.calls) != 1 {
		t.Fatalf("correcting agent called %d times, want 1", len(ca.calls))
	}
	sent := ca.calls[0]
	if got, want := len(sent), len(correctingPrompts)+1; got != want {
		t.Fatalf("correction exchange length = %d, want %d", got, want)
	}
	if last := sent[len(sent)-1]; last.Role != schema.User || last.Content != "the answer" {
		t.Errorf("correction input = %v %q, want the primary reply", last.Role, last.Content)
	}
}

func TestCorrectionVerdictTrimmed(t *testing.T) {
	for _, verdict := range []string{"ok", "Ok.", " OK ", "'OK'"} {
		chat := &fakeChat{replies: []*schema.Message{
			reply("the answer", &schema.TokenUsage{TotalTokens: 5}),
		}}
		ca := &fakeChat{replies: []*schema.Message{reply(verdict, nil)}}

		ex := newExchange(ModelOpenAI, true)
		ex.chat = chat
		ex.ca = ca

		if _, _, correction := ex.Query(context.Background(), "q"); correction != "" {
			t.Errorf("verdict %q: correction = %q, want empty", verdict, correction)
		}
	}
}

func TestCorrectionReturned(t *testing.T) {
	chat := &fakeChat{replies: []*schema.Message{
		reply("TP53 is an oncogene.", &schema.TokenUsage{TotalTokens: 5}),
	}}
	ca := &fakeChat{replies: []*schema.Message{
		reply("TP53 is a tumour suppressor, not an oncogene.", nil),
	}}

	ex := newExchange(ModelOpenAI, true)
	ex.chat = chat
	ex.ca = ca

	_, _, correction := ex.Query(context.Background(), "q")
	if correction != "TP53 is a tumour suppressor, not an oncogene." {
		t.Errorf("correction = %q", correction)
	}
}

func TestCorrectionFailureSwallowed(t *testing.T) {
	chat := &fakeChat{replies: []*schema.Message{
		reply("the answer", &schema.TokenUsage{TotalTokens: 5}),
	}}
	ca := &fakeChat{errs: []error{errors.New("boom")}}

	ex := newExchange(ModelOpenAI, true)
	ex.chat = chat
	ex.ca = ca

	resp, usage, correction := ex.Query(context.Background(), "q")
	if resp != "the answer" || usage == nil {
		t.Errorf("primary reply lost: %q %+v", resp, usage)
	}
	if correction != "" {
		t.Errorf("correction = %q, want empty on failure", correction)
	}
}

func TestSetupStagesSystemMessages(t *testing.T) {
	ex := newExchange(ModelOpenAI, false)
	base := len(ex.messages)

	ex.Setup("glioblastoma")
	if ex.Context() != "glioblastoma" {
		t.Errorf("Context() = %q", ex.Context())
	}

	ex.SetupDataInputTool(`{"gene":{"0":"TP53"}}`, "progeny")
	ex.SetupDataInputManual("TF activity up in sample A")
	ex.AppendUserMessage("extra info")

	if got, want := len(ex.messages), base+4; got != want {
		t.Fatalf("staged %d messages, want %d", got-base, want-base)
	}
	for i, wantRole := range []schema.RoleType{schema.System, schema.System, schema.System, schema.User} {
		if ex.messages[base+i].Role != wantRole {
			t.Errorf("message %d role = %v, want %v", i, ex.messages[base+i].Role, wantRole)
		}
	}
	if msg := ex.messages[base].Content; msg != "The topic of the research is glioblastoma." {
		t.Errorf("topic message = %q", msg)
	}
}

func TestSetUserName(t *testing.T) {
	ex := newExchange(ModelOpenAI, false)
	ex.SetUserName("Ada")
	if ex.UserName() != "Ada" {
		t.Errorf("UserName() = %q", ex.UserName())
	}
	if ex.Model() != ModelOpenAI {
		t.Errorf("Model() = %v", ex.Model())
	}
}
