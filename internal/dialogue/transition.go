package dialogue

import "github.com/trangdata/ChatGSE/internal/upload"

// Outcome is the decision of the pure transition function: the next state
// and the effects to run, in order. Next is provisional when the effect
// list contains a resolving effect (validateKey, ingestStep, queryBackend);
// those determine the final state from their runtime result, exactly one
// per outcome.
type Outcome struct {
	Next    State
	Effects []Effect
}

// Effect is one side-effecting instruction for the controller. The set is
// sealed; the transition function composes these and never performs I/O
// itself.
type Effect interface {
	isEffect()
}

type emitMessage struct {
	speaker string
	text    string
}

type storeUploads struct {
	files []upload.FileRef
}

type validateKey struct {
	key     string
	fromEnv bool
}

type setUserName struct {
	name string
}

type setupContext struct {
	topic string
}

type setupManual struct {
	text string
}

type appendAugmentation struct {
	text string
}

type ingestStep struct{}

type queryBackend struct {
	text string
}

func (emitMessage) isEffect()        {}
func (storeUploads) isEffect()       {}
func (validateKey) isEffect()        {}
func (setUserName) isEffect()        {}
func (setupContext) isEffect()       {}
func (setupManual) isEffect()        {}
func (appendAugmentation) isEffect() {}
func (ingestStep) isEffect()         {}
func (queryBackend) isEffect()       {}

// Transition maps (state, event) to an Outcome. It only reads the session;
// all mutation happens when the controller executes the effects. Events
// with no defined row leave the session untouched.
func Transition(s *Session, ev Event, reg Registry) Outcome {
	switch s.Current {
	case AwaitingAPIKey:
		if ev.Kind == EventText {
			return Outcome{Next: s.Current, Effects: []Effect{
				validateKey{key: ev.Text, fromEnv: ev.FromEnv},
			}}
		}

	case AwaitingUserName:
		if ev.Kind == EventText {
			name := ev.Text
			return Outcome{Next: AwaitingContext, Effects: []Effect{
				setUserName{name: name},
				emitMessage{speaker: name, text: name},
				emitMessage{speaker: SpeakerAssistant, text: contextRequest(name)},
			}}
		}

	case AwaitingContext:
		if ev.Kind == EventText {
			topic := ev.Text
			effects := []Effect{
				emitMessage{speaker: s.UserName, text: topic},
				setupContext{topic: topic},
			}
			if len(s.Uploaded) == 0 {
				effects = append(effects,
					emitMessage{speaker: SpeakerAssistant, text: dataPromptNoFiles(topic, reg.Names(), s.TokenLimit)},
					emitMessage{speaker: SpeakerAssistant, text: dataPromptDeclineText},
				)
			} else {
				effects = append(effects,
					emitMessage{speaker: SpeakerAssistant, text: dataPromptWithFiles(topic, fileNames(s.Uploaded))},
				)
			}
			return Outcome{Next: AwaitingDataFileDecision, Effects: effects}
		}

	case AwaitingDataFileDecision:
		switch ev.Kind {
		case EventFilesUploaded:
			all := make([]upload.FileRef, 0, len(s.Uploaded)+len(ev.Files))
			all = append(all, s.Uploaded...)
			all = append(all, ev.Files...)
			return Outcome{Next: s.Current, Effects: []Effect{
				storeUploads{files: ev.Files},
				emitMessage{speaker: SpeakerAssistant, text: dataPromptWithFiles(s.Context, fileNames(all))},
			}}

		case EventConfirm:
			if len(s.Uploaded) == 0 {
				return Outcome{Next: s.Current, Effects: []Effect{
					emitMessage{speaker: SpeakerAssistant, text: noFilesDetectedText},
				}}
			}
			return Outcome{Next: s.Current, Effects: []Effect{ingestStep{}}}

		case EventDecline:
			return Outcome{Next: AwaitingManualDataInput, Effects: []Effect{
				emitMessage{speaker: SpeakerAssistant, text: manualPromptText},
			}}

		case EventText:
			if len(s.Uploaded) == 0 {
				return Outcome{Next: s.Current, Effects: []Effect{
					emitMessage{speaker: SpeakerAssistant, text: noFilesDetectedText},
				}}
			}
			return Outcome{Next: s.Current, Effects: []Effect{
				emitMessage{speaker: SpeakerAssistant, text: dataPromptWithFiles(s.Context, fileNames(s.Uploaded))},
			}}
		}

	case AwaitingDataFileDescription:
		if ev.Kind == EventText {
			text := ev.Text
			effects := []Effect{
				emitMessage{speaker: s.UserName, text: text},
			}
			if IsNegativeAck(text) {
				effects = append(effects,
					emitMessage{speaker: SpeakerAssistant, text: okWithoutSpecText})
			} else {
				effects = append(effects,
					appendAugmentation{text: text},
					emitMessage{speaker: SpeakerAssistant, text: augmentationThanksText})
			}
			effects = append(effects, ingestStep{})
			return Outcome{Next: s.Current, Effects: effects}
		}

	case AwaitingManualDataInput:
		if ev.Kind == EventText {
			return Outcome{Next: Chatting, Effects: []Effect{
				setupManual{text: ev.Text},
				emitMessage{speaker: s.UserName, text: ev.Text},
				emitMessage{speaker: SpeakerAssistant, text: manualThanksText()},
			}}
		}

	case Chatting:
		if ev.Kind == EventText {
			return Outcome{Next: Chatting, Effects: []Effect{
				queryBackend{text: ev.Text},
			}}
		}
	}

	return Outcome{Next: s.Current}
}

func fileNames(files []upload.FileRef) []string {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}
	return names
}
