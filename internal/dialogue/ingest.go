package dialogue

import (
	"context"

	"github.com/trangdata/ChatGSE/internal/backend"
	"github.com/trangdata/ChatGSE/internal/tabular"
	"github.com/trangdata/ChatGSE/internal/upload"
	logx "github.com/trangdata/ChatGSE/pkg/logger"
)

// ingest runs one step of the data-file sub-flow: it parses the first unread
// file of the tool list, shows the table, and forwards it to the backend when
// the tool is known. Each invocation handles at most one file; the flow is
// re-entered after the user answers the augmentation or description prompt,
// and reports completion once every file has been read.
func (c *Controller) ingest(ctx context.Context, s *Session) State {
	if !s.StartedToolInput {
		s.StartedToolInput = true
		s.ToolList = append([]upload.FileRef(nil), s.Uploaded...)
		c.say(ctx, s, SpeakerAssistant, filesReadText(fileNames(s.ToolList)))
		logx.Info().
			Str("session_id", s.ID).
			Int("files", len(s.ToolList)).
			Msg("tool data provided")
	}

	if s.ReadToolCount() >= len(s.ToolList) {
		c.say(ctx, s, SpeakerAssistant, allReadText())
		return Chatting
	}

	for _, fl := range s.ToolList {
		tool := tabular.InferToolName(fl.Name)
		if s.ToolRead(tool) {
			continue
		}
		// Marked read before parsing: a failed file is not retried, matching
		// the no-rollback policy of the rest of the flow.
		s.MarkToolRead(tool)

		table, err := c.parseFile(fl)
		if err != nil {
			logx.Warn().Err(err).
				Str("session_id", s.ID).
				Str("file", fl.Name).
				Msg("tabular parse failed, skipping file")
			c.say(ctx, s, SpeakerAssistant, parseFailText(fl.Name, err))
			continue
		}

		c.say(ctx, s, SpeakerAssistant, toolHeaderText(tool))
		c.showTable(ctx, s, c.source.Render(table))

		if !c.registry.Match(fl.Name) {
			c.say(ctx, s, SpeakerAssistant, unknownToolText(tool, c.registry.Names()))
			return AwaitingDataFileDescription
		}

		serialized, err := c.source.Serialize(table)
		if err != nil {
			logx.Warn().Err(err).
				Str("session_id", s.ID).
				Str("file", fl.Name).
				Msg("table serialization failed, skipping file")
			c.say(ctx, s, SpeakerAssistant, parseFailText(fl.Name, err))
			continue
		}
		c.backend.SetupDataInputTool(serialized, tool)

		if c.cfg.WarnTokenBudget {
			if est := backend.EstimateTokensSimple(serialized); est > s.RemainingTokens() {
				c.say(ctx, s, SpeakerAssistant, tokenAdvisoryText(fl.Name, est, s.RemainingTokens()))
			}
		}

		c.say(ctx, s, SpeakerAssistant, augmentationPromptText)
		return AwaitingDataFileDescription
	}

	// Every remaining file shared an already-read tool name or failed to
	// parse; the list is exhausted.
	c.say(ctx, s, SpeakerAssistant, allReadText())
	return Chatting
}

// parseFile opens a file and parses it with the delimiter its name implies.
func (c *Controller) parseFile(fl upload.FileRef) (*tabular.Table, error) {
	r, err := fl.Open()
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return c.source.Parse(r, tabular.InferDelimiter(fl.Name))
}
