package dialogue

import "github.com/trangdata/ChatGSE/internal/upload"

// EventKind tags the input kinds a session can receive.
type EventKind int

const (
	// EventText is free-form user text.
	EventText EventKind = iota
	// EventConfirm is the user pressing "Yes" in the data-file decision.
	EventConfirm
	// EventDecline is the user pressing "No" in the data-file decision.
	EventDecline
	// EventFilesUploaded signals newly uploaded files.
	EventFilesUploaded
)

// Event is one user input. FromEnv marks an API key sourced from the
// environment rather than typed, which changes the retry message.
type Event struct {
	Kind    EventKind
	Text    string
	Files   []upload.FileRef
	FromEnv bool
}
