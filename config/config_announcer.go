package config

import (
	"errors"
	"time"

	"github.com/soridam/announcer/pkg/audio"
	"github.com/soridam/announcer/pkg/bgm"
	"github.com/soridam/announcer/pkg/pipeline"
	"github.com/soridam/announcer/pkg/script"
	"github.com/soridam/announcer/pkg/speech"
)

type announcerConfig struct {
	Completer   string `yaml:"completer"`
	Synthesizer string `yaml:"synthesizer"`

	Language string `yaml:"language"`
	Gender   string `yaml:"gender"`
	Voice    string `yaml:"voice"`
	Slow     bool   `yaml:"slow"`

	FFmpeg  string `yaml:"ffmpeg"`
	Timeout string `yaml:"timeout"`
}

func (cfg *Config) RegisterAnnouncer(p pipeline.Announcer) {
	cfg.announcer = p
}

func (cfg *Config) Announcer() (pipeline.Announcer, error) {
	if cfg.announcer == nil {
		return nil, pipeline.Configurationf("announcer is not configured")
	}

	return cfg.announcer, nil
}

func (cfg *Config) registerAnnouncer(file *configFile) error {
	a := file.Announcer

	if a.Completer == "" && a.Synthesizer == "" && len(file.Providers) == 0 {
		return nil
	}

	completer, err := cfg.Completer(a.Completer)

	if err != nil {
		return errors.New("announcer: " + err.Error())
	}

	synthesizer, err := cfg.Synthesizer(a.Synthesizer)

	if err != nil {
		return errors.New("announcer: " + err.Error())
	}

	language := a.Language

	if language == "" {
		language = "ko-KR"
	}

	gender := speech.GenderFemale

	if a.Gender != "" {
		gender = speech.Gender(a.Gender)
	}

	timeout := pipeline.DefaultTimeout

	if a.Timeout != "" {
		timeout, err = time.ParseDuration(a.Timeout)

		if err != nil {
			return errors.New("announcer: invalid timeout: " + a.Timeout)
		}
	}

	engine := audio.NewEngine(a.FFmpeg)

	writer := script.NewWriter(completer,
		script.WithLanguage(language),
	)

	voice := speech.NewSynthesizer(synthesizer,
		speech.WithLanguage(language),
		speech.WithGender(gender),
		speech.WithVoice(a.Voice),
		speech.WithSlow(a.Slow),
	)

	generator := pipeline.NewGenerator(writer, voice, bgm.NewPreparer(engine), engine,
		pipeline.WithTimeout(timeout),
	)

	cfg.RegisterAnnouncer(generator)

	return nil
}
