// Package dialogue implements the session dialogue controller: a finite
// state machine that walks one user through onboarding (API key, name,
// research context, optional data files) and then hands over to free-form
// question answering.
package dialogue

// State enumerates the onboarding positions of a session. Chatting is the
// terminal onboarding state; the session loops there for the rest of its
// lifetime.
type State int

const (
	AwaitingAPIKey State = iota
	AwaitingUserName
	AwaitingContext
	AwaitingDataFileDecision
	AwaitingDataFileDescription
	AwaitingManualDataInput
	Chatting
)

var stateNames = map[State]string{
	AwaitingAPIKey:              "awaiting_api_key",
	AwaitingUserName:            "awaiting_user_name",
	AwaitingContext:             "awaiting_context",
	AwaitingDataFileDecision:    "awaiting_data_file_decision",
	AwaitingDataFileDescription: "awaiting_data_file_description",
	AwaitingManualDataInput:     "awaiting_manual_data_input",
	Chatting:                    "chatting",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}
