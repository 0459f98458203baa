// Package script turns a situational keyword and a tone into a short spoken
// announcement script.
package script

import (
	"context"
	"fmt"
	"strings"

	"github.com/soridam/announcer/pkg/pipeline"
	"github.com/soridam/announcer/pkg/provider"
)

// DefaultMood is used when the request leaves the tone blank.
const DefaultMood = "정중하게"

const systemPrompt = `You write short in-store announcements for small business owners.
Respond in %s.
Write exactly one or two sentences suitable for direct playback over a store speaker.
Do not include a greeting, quotation marks, emoji or any explanation.`

type Writer struct {
	completer provider.Completer

	language string
}

type Option func(*Writer)

func WithLanguage(language string) Option {
	return func(w *Writer) {
		w.language = language
	}
}

func NewWriter(completer provider.Completer, options ...Option) *Writer {
	w := &Writer{
		completer: completer,

		language: "ko-KR",
	}

	for _, option := range options {
		option(w)
	}

	return w
}

// Write generates the announcement script. The keyword is assumed to be
// validated upstream; a blank mood falls back to DefaultMood.
func (w *Writer) Write(ctx context.Context, keyword, mood string) (string, error) {
	if strings.TrimSpace(mood) == "" {
		mood = DefaultMood
	}

	temperature := float32(0.7)
	maxTokens := 200

	messages := []provider.Message{
		provider.SystemMessage(fmt.Sprintf(systemPrompt, w.language)),
		provider.UserMessage(fmt.Sprintf("Situation keyword: %s\nTone: %s", keyword, mood)),
	}

	completion, err := w.completer.Complete(ctx, messages, &provider.CompleteOptions{
		MaxTokens:   &maxTokens,
		Temperature: &temperature,
	})

	if err != nil {
		return "", pipeline.Upstream("script generation failed", err)
	}

	var text string

	if completion != nil && completion.Message != nil {
		text = sanitize(completion.Message.Text())
	}

	if text == "" {
		return "", pipeline.Generation("model returned no usable script")
	}

	return text, nil
}

// sanitize strips the wrapper text models like to add around the actual
// announcement: code fences, surrounding quotes and stray newlines.
func sanitize(text string) string {
	text = strings.TrimSpace(text)

	if after, ok := strings.CutPrefix(text, "```"); ok {
		after = strings.TrimSuffix(after, "```")

		if _, body, found := strings.Cut(after, "\n"); found {
			after = body
		}

		text = after
	}

	text = strings.Join(strings.Fields(text), " ")
	text = strings.Trim(text, `"'“”‘’「」`)

	return strings.TrimSpace(text)
}
