package dialogue

import (
	"context"

	"github.com/trangdata/ChatGSE/internal/backend"
	"github.com/trangdata/ChatGSE/internal/tabular"
	"github.com/trangdata/ChatGSE/internal/transcript"
	logx "github.com/trangdata/ChatGSE/pkg/logger"
)

// Controller drives one session: it runs the transition function on every
// event and executes the resulting effects against the conversation
// backend, the tabular source, and the transcript sink.
type Controller struct {
	backend  backend.Conversation
	source   tabular.Source
	sink     transcript.Sink
	registry Registry
	cfg      Config
}

// Result tells the presentation layer what one event produced: the state
// the session ended up in and the history entries appended, in order.
type Result struct {
	State    State
	Appended []Entry
}

// NewController wires a controller. A nil source defaults to CSV parsing, a
// nil sink to discarding, an empty registry to the built-in tool list.
func NewController(conv backend.Conversation, source tabular.Source, sink transcript.Sink, reg Registry, cfg Config) *Controller {
	if source == nil {
		source = tabular.CSV{}
	}
	if sink == nil {
		sink = transcript.Discard()
	}
	if len(reg) == 0 {
		reg = DefaultRegistry()
	}
	return &Controller{
		backend:  conv,
		source:   source,
		sink:     sink,
		registry: reg,
		cfg:      cfg,
	}
}

// Start opens the session: it emits the welcome message and either submits
// the environment-provided key or prompts for one.
func (c *Controller) Start(ctx context.Context, s *Session) *Result {
	mark := s.History.Len()

	c.say(ctx, s, SpeakerAssistant, welcomeText)
	next, _ := c.validate(ctx, s, c.cfg.EnvAPIKey, true)
	s.Current = next

	logx.Info().
		Str("session_id", s.ID).
		Str("model", c.backend.Model().String()).
		Str("state", next.String()).
		Msg("session started")

	return c.result(s, mark)
}

// Handle processes one event to completion: transition, effects, state
// write. Exactly one event may be in flight per session.
func (c *Controller) Handle(ctx context.Context, s *Session, ev Event) *Result {
	mark := s.History.Len()

	out := Transition(s, ev, c.registry)
	next := out.Next
	for _, eff := range out.Effects {
		if st, resolved := c.apply(ctx, s, eff); resolved {
			next = st
		}
	}
	s.Current = next

	logx.Debug().
		Str("session_id", s.ID).
		Str("state", next.String()).
		Int("appended", s.History.Len()-mark).
		Msg("event handled")

	return c.result(s, mark)
}

func (c *Controller) result(s *Session, mark int) *Result {
	return &Result{State: s.Current, Appended: s.History.Entries()[mark:]}
}

// apply executes one effect. Resolving effects return the state they
// decided on; for the rest the transition's Next stands.
func (c *Controller) apply(ctx context.Context, s *Session, eff Effect) (State, bool) {
	switch e := eff.(type) {
	case emitMessage:
		c.say(ctx, s, e.speaker, e.text)
	case storeUploads:
		s.Uploaded = append(s.Uploaded, e.files...)
	case validateKey:
		return c.validate(ctx, s, e.key, e.fromEnv)
	case setUserName:
		s.UserName = e.name
		c.backend.SetUserName(e.name)
	case setupContext:
		s.Context = e.topic
		c.backend.Setup(e.topic)
	case setupManual:
		c.backend.SetupDataInputManual(e.text)
	case appendAugmentation:
		c.backend.AppendUserMessage(e.text)
	case ingestStep:
		return c.ingest(ctx, s), true
	case queryBackend:
		return c.query(ctx, s, e.text), true
	}
	return 0, false
}

// validate submits a key to the backend. An empty key re-issues the prompt
// for the active model; an invalid one emits the retry message matching the
// key's origin. Success asks for the user's name, once.
func (c *Controller) validate(ctx context.Context, s *Session, key string, fromEnv bool) (State, bool) {
	if key == "" {
		if c.backend.Model() == backend.ModelOpenAI && c.cfg.CommunityPossible {
			s.ShowCommunitySelect = true
		}
		c.say(ctx, s, SpeakerAssistant, keyPrompt(c.backend.Model(), s.ShowCommunitySelect))
		return AwaitingAPIKey, true
	}

	if !c.backend.SetAPIKey(ctx, key, s.ID) {
		if fromEnv {
			c.say(ctx, s, SpeakerAssistant, envKeyInvalidText)
		} else {
			c.say(ctx, s, SpeakerAssistant, typedKeyInvalidText)
		}
		return AwaitingAPIKey, true
	}

	s.APIKeyPresent = true
	s.ShowCommunitySelect = false

	if !s.AskedForName || c.cfg.RepeatNamePrompt {
		s.AskedForName = true
		c.say(ctx, s, SpeakerAssistant, nameRequest(!fromEnv))
	}
	return AwaitingUserName, true
}

// query runs the free-form question pipeline. Absent or zero token usage is
// the backend's error signal: the reply is surfaced with the error prefix
// and the session stays in Chatting for a manual retry.
func (c *Controller) query(ctx context.Context, s *Session, text string) State {
	response, usage, correction := c.backend.Query(ctx, text)

	if usage == nil || usage.TotalTokens == 0 {
		c.say(ctx, s, SpeakerAssistant, modelErrorPrefix+response)
		s.LastError = true
		return Chatting
	}

	s.LastError = false
	c.say(ctx, s, s.UserName, text)
	c.say(ctx, s, SpeakerModel, response)
	if correction != "" {
		c.say(ctx, s, SpeakerCorrecting, correction)
	}

	s.AddUsage(usage)

	_, _, cost := backend.ComputeCost(usage, backend.ResolvePricing(c.backend.Model()))
	logx.Info().
		Str("session_id", s.ID).
		Str("model", c.backend.Model().String()).
		Int("total_tokens", usage.TotalTokens).
		Float64("usd", cost).
		Msg("query answered")

	return Chatting
}

// say appends a message to history and forwards it to the sink.
func (c *Controller) say(ctx context.Context, s *Session, speaker, text string) {
	s.History.AppendMessage(speaker, text)
	c.forward(ctx, s.ID, speaker, text)
	logx.Debug().Str("session_id", s.ID).Str("speaker", speaker).Msg("writing message")
}

// showTable appends rendered tool output to history and forwards it.
func (c *Controller) showTable(ctx context.Context, s *Session, rendered string) {
	s.History.AppendToolOutput(rendered)
	c.forward(ctx, s.ID, SpeakerToolOutput, rendered)
	logx.Debug().Str("session_id", s.ID).Msg("tool data displayed")
}

// forward pushes one line at the sink. Sink failures are logged and do not
// fail the turn; history remains the source of truth.
func (c *Controller) forward(ctx context.Context, sessionID, speaker, text string) {
	if err := c.sink.Write(ctx, sessionID, speaker, text); err != nil {
		logx.Err(err).Str("session_id", sessionID).Msg("transcript sink write failed")
	}
}
