package config

import (
	"errors"
	"net/http"

	"github.com/soridam/announcer/pkg/limiter"
	"github.com/soridam/announcer/pkg/otel"
	"github.com/soridam/announcer/pkg/pipeline"

	"golang.org/x/time/rate"
)

type providerConfig struct {
	Type string `yaml:"type"`

	URL   string `yaml:"url"`
	Token string `yaml:"token"`

	Limit *int `yaml:"limit"`

	Models map[string]modelConfig `yaml:"models"`
}

type modelConfig struct {
	Type string `yaml:"type"`

	ID string `yaml:"id"`
}

type modelContext struct {
	ID string

	Limiter *rate.Limiter
	Client  *http.Client
}

func (cfg *Config) registerProviders(file *configFile) error {
	for _, p := range file.Providers {
		// A blank token here usually means an unset environment variable
		// survived expansion. Only self-hosted endpoints may omit it.
		if p.Token == "" && p.URL == "" {
			return pipeline.Configurationf("provider %s: token is required", p.Type)
		}

		l := createLimiter(p.Limit)

		for id, m := range p.Models {
			model := modelContext{
				ID: m.ID,

				Limiter: l,
			}

			if model.ID == "" {
				model.ID = id
			}

			switch m.Type {
			case "completer":
				completer, err := createCompleter(p, model)

				if err != nil {
					return err
				}

				if model.Limiter != nil {
					completer = limiter.NewCompleter(model.Limiter, completer)
				}

				cfg.RegisterCompleter(id, otel.NewCompleter(p.Type, id, completer))

			case "synthesizer":
				synthesizer, err := createSynthesizer(p, model)

				if err != nil {
					return err
				}

				if model.Limiter != nil {
					synthesizer = limiter.NewSynthesizer(model.Limiter, synthesizer)
				}

				cfg.RegisterSynthesizer(id, otel.NewSynthesizer(p.Type, id, synthesizer))

			default:
				return errors.New("invalid model type: " + m.Type)
			}
		}
	}

	return nil
}
