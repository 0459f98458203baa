// Package speech renders announcement text into a voice track.
package speech

import (
	"context"
	"strings"

	"github.com/soridam/announcer/pkg/audio"
	"github.com/soridam/announcer/pkg/pipeline"
	"github.com/soridam/announcer/pkg/provider"
)

type Gender string

const (
	GenderFemale Gender = "female"
	GenderMale   Gender = "male"
)

// voices maps a primary language subtag and gender preference to a default
// voice. A configured voice overrides the table.
var voices = map[string]map[Gender]string{
	"ko": {GenderFemale: "nova", GenderMale: "onyx"},
	"en": {GenderFemale: "shimmer", GenderMale: "echo"},
	"ja": {GenderFemale: "nova", GenderMale: "onyx"},
}

const defaultVoice = "alloy"

const slowSpeed = float32(0.8)

type Synthesizer struct {
	provider provider.Synthesizer

	language string
	gender   Gender
	voice    string
	slow     bool
}

type Option func(*Synthesizer)

func WithLanguage(language string) Option {
	return func(s *Synthesizer) {
		s.language = language
	}
}

func WithGender(gender Gender) Option {
	return func(s *Synthesizer) {
		s.gender = gender
	}
}

func WithVoice(voice string) Option {
	return func(s *Synthesizer) {
		s.voice = voice
	}
}

func WithSlow(slow bool) Option {
	return func(s *Synthesizer) {
		s.slow = slow
	}
}

func NewSynthesizer(p provider.Synthesizer, options ...Option) *Synthesizer {
	s := &Synthesizer{
		provider: p,

		language: "ko-KR",
		gender:   GenderFemale,
	}

	for _, option := range options {
		option(s)
	}

	return s
}

func (s *Synthesizer) Synthesize(ctx context.Context, text string) (audio.Track, error) {
	options := &provider.SynthesizeOptions{
		Voice:  s.selectVoice(),
		Format: "mp3",
	}

	if s.slow {
		speed := slowSpeed
		options.Speed = &speed
	}

	result, err := s.provider.Synthesize(ctx, text, options)

	if err != nil {
		return audio.Track{}, pipeline.Upstream("speech synthesis failed", err)
	}

	if result == nil || len(result.Content) == 0 {
		return audio.Track{}, pipeline.Generation("provider returned no audio payload")
	}

	return audio.Track{
		Content:     result.Content,
		ContentType: result.ContentType,
	}, nil
}

func (s *Synthesizer) selectVoice() string {
	if s.voice != "" {
		return s.voice
	}

	lang, _, _ := strings.Cut(strings.ToLower(s.language), "-")

	if byGender, ok := voices[lang]; ok {
		if voice, ok := byGender[s.gender]; ok {
			return voice
		}
	}

	return defaultVoice
}
