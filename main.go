package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/trangdata/ChatGSE/internal/backend"
	"github.com/trangdata/ChatGSE/internal/core"
	"github.com/trangdata/ChatGSE/internal/dialogue"
	"github.com/trangdata/ChatGSE/internal/tabular"
	"github.com/trangdata/ChatGSE/internal/transcript"
	"github.com/trangdata/ChatGSE/internal/upload"
	logx "github.com/trangdata/ChatGSE/pkg/logger"
	pkgredis "github.com/trangdata/ChatGSE/pkg/redis"
)

// AppConfig defines all configurable parameters of the application, sourced
// from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"CHATGSE_ENV" default:"development"`

	// Model selects the conversation backend for the session.
	Model string `envconfig:"CHATGSE_MODEL" default:"gpt-3.5-turbo"`

	// KnownTools overrides the built-in analysis-tool registry
	// (comma-separated, empty keeps the default list).
	KnownTools string `envconfig:"KNOWN_TOOLS"`

	CommunityPossible bool `envconfig:"CHATGSE_COMMUNITY" default:"false"`
	RepeatNamePrompt  bool `envconfig:"CHATGSE_REPEAT_NAME_PROMPT" default:"false"`
	WarnTokenBudget   bool `envconfig:"CHATGSE_WARN_TOKEN_BUDGET" default:"true"`

	// Transcript persistence
	TranscriptFile string `envconfig:"CHATGSE_TRANSCRIPT_FILE" default:"chatgse-logs.txt"`
	TranscriptTTL  string `envconfig:"CHATGSE_TRANSCRIPT_TTL" default:"24h"`

	// Infrastructure
	Redis pkgredis.Config

	// Provider tuning
	Backend backend.Config
}

// envAPIKey returns the provider key from the conventional environment
// variable of the selected model, empty when the user must type one.
func envAPIKey(m backend.Model) string {
	switch m {
	case backend.ModelHuggingFace:
		return os.Getenv("HUGGINGFACEHUB_API_TOKEN")
	case backend.ModelGemini:
		return os.Getenv("GOOGLE_API_KEY")
	default:
		return os.Getenv("OPENAI_API_KEY")
	}
}

func main() {
	ctx := context.Background()

	// Load .env file
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// Load structured config from env
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(cfg.Environment)})

	model, err := backend.ParseModel(cfg.Model)
	if err != nil {
		log.Fatalf("Invalid CHATGSE_MODEL: %v", err)
	}

	conv, err := backend.New(model, cfg.Backend)
	if err != nil {
		log.Fatalf("Failed to build conversation backend: %v", err)
	}

	sink, closeSink, err := buildSink(cfg)
	if err != nil {
		log.Fatalf("Failed to build transcript sink: %v", err)
	}
	defer closeSink()

	controller := dialogue.NewController(conv, tabular.CSV{}, sink,
		dialogue.ParseRegistry(cfg.KnownTools),
		dialogue.Config{
			EnvAPIKey:         envAPIKey(model),
			CommunityPossible: cfg.CommunityPossible,
			RepeatNamePrompt:  cfg.RepeatNamePrompt,
			WarnTokenBudget:   cfg.WarnTokenBudget,
		})

	session := dialogue.NewSession(model)
	render(controller.Start(ctx, session))

	// One line of input is one event: 'yes'/'no' act as the decision
	// buttons while the session is choosing about data files, and
	// '/upload <path> [path...]' stands in for the upload widget.
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	fmt.Print("> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			fmt.Print("> ")
			continue
		}
		if line == "/quit" || line == "/exit" {
			break
		}

		render(controller.Handle(ctx, session, toEvent(session, line)))
		fmt.Print("> ")
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}
}

// toEvent maps one input line to a dialogue event, substituting for the
// buttons and the upload widget of a graphical front-end.
func toEvent(s *dialogue.Session, line string) dialogue.Event {
	if rest, ok := strings.CutPrefix(line, "/upload "); ok {
		var files []upload.FileRef
		for _, path := range strings.Fields(rest) {
			files = append(files, upload.FromPath(path))
		}
		return dialogue.Event{Kind: dialogue.EventFilesUploaded, Files: files}
	}

	if s.Current == dialogue.AwaitingDataFileDecision {
		switch strings.ToLower(line) {
		case "yes", "y":
			return dialogue.Event{Kind: dialogue.EventConfirm}
		case "no", "n":
			return dialogue.Event{Kind: dialogue.EventDecline}
		}
	}

	return dialogue.Event{Kind: dialogue.EventText, Text: line}
}

// render prints the entries one event appended, tool tables fenced, messages
// with their speaker in backticks.
func render(r *dialogue.Result) {
	for _, e := range r.Appended {
		if e.Kind == dialogue.EntryToolOutput {
			fmt.Printf("```\n%s```\n", e.Text)
			continue
		}
		fmt.Printf("`%s`: %s\n", e.Speaker, e.Text)
	}
}

// buildSink assembles the transcript persistence: always the append-only log
// file, plus a Redis mirror when a URL is configured.
func buildSink(cfg AppConfig) (transcript.Sink, func(), error) {
	file, err := transcript.NewFileSink(cfg.TranscriptFile)
	if err != nil {
		return nil, nil, err
	}

	if !cfg.Redis.Enabled() {
		return file, func() { file.Close() }, nil
	}

	rdb, err := cfg.Redis.New()
	if err != nil {
		file.Close()
		return nil, nil, err
	}

	ttl, err := time.ParseDuration(cfg.TranscriptTTL)
	if err != nil {
		file.Close()
		rdb.Close()
		return nil, nil, fmt.Errorf("invalid CHATGSE_TRANSCRIPT_TTL %q: %w", cfg.TranscriptTTL, err)
	}

	sink := transcript.MultiSink{file, transcript.NewRedisSink(rdb, ttl)}
	return sink, func() {
		file.Close()
		rdb.Close()
	}, nil
}
