package dialogue

import (
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"

	"github.com/trangdata/ChatGSE/internal/backend"
	"github.com/trangdata/ChatGSE/internal/upload"
)

// Session is the mutable record of one user's interaction, from key entry
// to free-form chat. It is owned by exactly one controller and never shared
// across sessions.
type Session struct {
	ID      string
	Current State

	UserName      string
	APIKeyPresent bool
	TokenLimit    int
	Context       string

	// Uploaded collects every file the user has provided; ToolList is the
	// snapshot taken when ingestion begins.
	Uploaded         []upload.FileRef
	ToolList         []upload.FileRef
	StartedToolInput bool

	AskedForName        bool
	ShowCommunitySelect bool
	LastError           bool

	History *HistoryLog

	// Usage accumulates the provider-reported token usage of the session.
	Usage schema.TokenUsage

	readTools map[string]struct{}
}

// NewSession creates a fresh session for the given model, starting at the
// API key step with the model's token limit.
func NewSession(m backend.Model) *Session {
	return &Session{
		ID:         uuid.NewString(),
		Current:    AwaitingAPIKey,
		TokenLimit: m.TokenLimit(),
		History:    NewHistory(),
		readTools:  make(map[string]struct{}),
	}
}

// MarkToolRead records a derived tool name as ingested. Once marked, a tool
// is never unmarked.
func (s *Session) MarkToolRead(name string) {
	if s.readTools == nil {
		s.readTools = make(map[string]struct{})
	}
	s.readTools[name] = struct{}{}
}

// ToolRead reports whether a derived tool name has been ingested.
func (s *Session) ToolRead(name string) bool {
	_, ok := s.readTools[name]
	return ok
}

// ReadToolCount returns how many tools have been ingested so far.
func (s *Session) ReadToolCount() int {
	return len(s.readTools)
}

// AddUsage folds a query's token usage into the session total.
func (s *Session) AddUsage(u *schema.TokenUsage) {
	if u == nil {
		return
	}
	s.Usage.PromptTokens += u.PromptTokens
	s.Usage.CompletionTokens += u.CompletionTokens
	s.Usage.TotalTokens += u.TotalTokens
}

// RemainingTokens is the model's context window minus what the session has
// already consumed, floored at zero.
func (s *Session) RemainingTokens() int {
	if r := s.TokenLimit - s.Usage.TotalTokens; r > 0 {
		return r
	}
	return 0
}
