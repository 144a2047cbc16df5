package transcript

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type memorySink struct {
	lines []string
	err   error
}

func (m *memorySink) Write(_ context.Context, _, speaker, text string) error {
	if m.err != nil {
		return m.err
	}
	m.lines = append(m.lines, Line(speaker, text))
	return nil
}

func TestLineFormat(t *testing.T) {
	if got, want := Line("Assistant", "Welcome!"), "Assistant: Welcome!\n"; got != want {
		t.Errorf("Line = %q, want %q", got, want)
	}
}

func TestFileSinkAppendsInOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chatgse-logs.txt")

	s, err := NewFileSink(path)
	if err != nil {
		t.Fatalf("NewFileSink returned error: %v", err)
	}

	ctx := context.Background()
	if err := s.Write(ctx, "sess", "Assistant", "Welcome to ``ChatGSE``!"); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if err := s.Write(ctx, "sess", "Ada", "Ada"); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile returned error: %v", err)
	}
	want := "Assistant: Welcome to ``ChatGSE``!\nAda: Ada\n"
	if string(data) != want {
		t.Errorf("file content = %q, want %q", data, want)
	}
}

func TestFileSinkReopensAppending(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chatgse-logs.txt")
	ctx := context.Background()

	s1, err := NewFileSink(path)
	if err != nil {
		t.Fatalf("NewFileSink returned error: %v", err)
	}
	_ = s1.Write(ctx, "a", "Assistant", "first")
	_ = s1.Close()

	s2, err := NewFileSink(path)
	if err != nil {
		t.Fatalf("NewFileSink reopen returned error: %v", err)
	}
	_ = s2.Write(ctx, "b", "Assistant", "second")
	_ = s2.Close()

	data, _ := os.ReadFile(path)
	if string(data) != "Assistant: first\nAssistant: second\n" {
		t.Errorf("file content = %q", data)
	}
}

func TestMultiSinkFansOut(t *testing.T) {
	a := &memorySink{}
	b := &memorySink{}

	m := MultiSink{a, b}
	if err := m.Write(context.Background(), "sess", "ChatGSE", "hi"); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	if len(a.lines) != 1 || len(b.lines) != 1 {
		t.Errorf("fan-out incomplete: %d/%d", len(a.lines), len(b.lines))
	}
}

func TestMultiSinkContinuesPastFailures(t *testing.T) {
	bad := &memorySink{err: errors.New("down")}
	good := &memorySink{}

	m := MultiSink{bad, good}
	err := m.Write(context.Background(), "sess", "ChatGSE", "hi")

	if err == nil {
		t.Error("expected joined error")
	}
	if len(good.lines) != 1 {
		t.Errorf("healthy sink skipped: %d lines", len(good.lines))
	}
}

func TestDiscard(t *testing.T) {
	if err := Discard().Write(context.Background(), "sess", "x", "y"); err != nil {
		t.Errorf("Discard().Write returned error: %v", err)
	}
}
