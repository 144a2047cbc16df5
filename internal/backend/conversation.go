package backend

import (
	"context"

	"github.com/cloudwego/eino/schema"
)

// Conversation is the language-model collaborator the dialogue controller
// drives. Setup-style calls only stage messages for later queries; the
// network is touched by SetAPIKey (validation) and Query alone.
//
// Query never returns a Go error: a failure surfaces as a message with nil
// token usage, which is the error signal the controller acts on.
type Conversation interface {
	// SetAPIKey validates the credential with the provider and, on success,
	// prepares the session's chat model. user identifies the session for
	// usage attribution in logs.
	SetAPIKey(ctx context.Context, key, user string) bool

	SetUserName(name string)
	UserName() string

	// Setup records the research topic and stages the persona context.
	Setup(topic string)
	Context() string

	// SetupDataInputTool stages serialized tool output (JSON) for a known
	// analysis tool.
	SetupDataInputTool(serialized, tool string)

	// SetupDataInputManual stages a free-text description of the user's data.
	SetupDataInputManual(text string)

	// AppendUserMessage stages a user message without querying.
	AppendUserMessage(text string)

	// Query sends the staged transcript plus text and returns the reply, the
	// provider token usage (nil signals failure), and an optional correction
	// from the correcting agent.
	Query(ctx context.Context, text string) (string, *schema.TokenUsage, string)

	Model() Model
}
