// Package pipeline sequences the announcement stages: script generation,
// speech synthesis, background preparation and mixing.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/soridam/announcer/pkg/audio"
)

const (
	// Tail is the musical run-out appended after the voice ends.
	Tail = 2 * time.Second

	// DefaultTimeout is the wall-clock budget for one generation.
	DefaultTimeout = 60 * time.Second
)

type Request struct {
	Keyword string
	Mood    string

	BackgroundURL string
}

type Result struct {
	Script string
	Audio  audio.Track
}

type Announcer interface {
	Generate(ctx context.Context, req Request) (*Result, error)
}

type ScriptWriter interface {
	Write(ctx context.Context, keyword, mood string) (string, error)
}

type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string) (audio.Track, error)
}

type BackgroundPreparer interface {
	Prepare(ctx context.Context, url string, target time.Duration) (audio.Track, error)
}

type AudioEngine interface {
	Mix(ctx context.Context, voice, background audio.Track) (audio.Track, error)
	Transcode(ctx context.Context, track audio.Track) (audio.Track, error)
}

var _ Announcer = (*Generator)(nil)

type Generator struct {
	scripts    ScriptWriter
	speech     SpeechSynthesizer
	background BackgroundPreparer
	engine     AudioEngine

	timeout time.Duration
}

type Option func(*Generator)

func WithTimeout(timeout time.Duration) Option {
	return func(g *Generator) {
		g.timeout = timeout
	}
}

func NewGenerator(scripts ScriptWriter, speech SpeechSynthesizer, background BackgroundPreparer, engine AudioEngine, options ...Option) *Generator {
	g := &Generator{
		scripts:    scripts,
		speech:     speech,
		background: background,
		engine:     engine,

		timeout: DefaultTimeout,
	}

	for _, option := range options {
		option(g)
	}

	return g
}

// Generate runs the stages strictly in sequence. The only non-fatal stage is
// background preparation: when it fails the voice-only track is returned
// instead, since an announcement without music beats no announcement.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	keyword := strings.TrimSpace(req.Keyword)

	if keyword == "" {
		return nil, Validationf("keyword must not be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	script, err := g.scripts.Write(ctx, keyword, req.Mood)

	if err != nil {
		return nil, normalize(err, CodeUpstream, "script generation failed")
	}

	voice, err := g.speech.Synthesize(ctx, script)

	if err != nil {
		return nil, normalize(err, CodeUpstream, "speech synthesis failed")
	}

	if voice.ContentType != audio.TypeMP3 {
		voice, err = g.engine.Transcode(ctx, voice)

		if err != nil {
			return nil, normalize(err, CodeMedia, "voice track encoding failed")
		}
	}

	if req.BackgroundURL == "" {
		return &Result{Script: script, Audio: voice}, nil
	}

	duration, err := voice.Duration()

	if err != nil {
		return nil, normalize(err, CodeMedia, "voice track probe failed")
	}

	background, err := g.background.Prepare(ctx, req.BackgroundURL, duration+Tail)

	if err != nil {
		slog.WarnContext(ctx, "background preparation failed, continuing voice-only",
			"url", req.BackgroundURL, "error", err)

		return &Result{Script: script, Audio: voice}, nil
	}

	mixed, err := g.engine.Mix(ctx, voice, background)

	if err != nil {
		return nil, normalize(err, CodeMedia, "mixing failed")
	}

	return &Result{Script: script, Audio: mixed}, nil
}

// normalize keeps already classified errors as-is and wraps everything else,
// mapping an exceeded budget to an upstream timeout.
func normalize(err error, code Code, message string) error {
	var perr *Error

	if errors.As(err, &perr) {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return NewError(CodeUpstream, "generation timed out", err)
	}

	return NewError(code, message, err)
}
