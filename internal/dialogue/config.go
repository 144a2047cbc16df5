package dialogue

// Config tunes controller behaviour that the original application left
// implicit.
type Config struct {
	// EnvAPIKey is a key sourced from the environment, submitted
	// automatically when the session starts. Empty means the user is
	// prompted instead.
	EnvAPIKey string

	// CommunityPossible advertises shared community credits in the OpenAI
	// key prompt.
	CommunityPossible bool

	// RepeatNamePrompt re-issues the name request after every successful
	// key validation instead of only the first one.
	RepeatNamePrompt bool

	// WarnTokenBudget appends an advisory message when an ingested table
	// likely exceeds the model's remaining token budget.
	WarnTokenBudget bool
}
