// Package transcript persists the chat history outside the session: every
// appended history entry is forwarded as one line, in history order.
package transcript

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// Sink receives one call per appended history entry. Implementations must
// preserve call order; the dialogue layer never reorders or retries.
type Sink interface {
	Write(ctx context.Context, sessionID, speaker, text string) error
}

// Line is the persisted form of a transcript entry.
func Line(speaker, text string) string {
	return fmt.Sprintf("%s: %s\n", speaker, text)
}

// FileSink appends transcript lines to a local text file.
type FileSink struct {
	f *os.File
}

func NewFileSink(path string) (*FileSink, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("transcript: open %s: %w", path, err)
	}
	return &FileSink{f: f}, nil
}

func (s *FileSink) Write(_ context.Context, _ string, speaker, text string) error {
	if _, err := s.f.WriteString(Line(speaker, text)); err != nil {
		return fmt.Errorf("transcript: write: %w", err)
	}
	return nil
}

func (s *FileSink) Close() error {
	return s.f.Close()
}

// MultiSink fans a line out to every sink, attempting all of them before
// reporting the joined errors.
type MultiSink []Sink

func (m MultiSink) Write(ctx context.Context, sessionID, speaker, text string) error {
	var errs []error
	for _, s := range m {
		if err := s.Write(ctx, sessionID, speaker, text); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type discard struct{}

func (discard) Write(context.Context, string, string, string) error {
	return nil
}

// Discard returns a sink that drops every line. It is the default when no
// persistence is configured.
func Discard() Sink {
	return discard{}
}
