package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/soridam/announcer/pkg/pipeline"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestParse(t *testing.T) {
	path := writeConfig(t, `
address: :9090

providers:
  - type: openai
    token: test-token

    models:
      gpt-4o-mini:
        type: completer

      gpt-4o-mini-tts:
        type: synthesizer

announcer:
  completer: gpt-4o-mini
  synthesizer: gpt-4o-mini-tts

  language: ko-KR
  timeout: 45s
`)

	cfg, err := Parse(path)
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.Address)

	_, err = cfg.Completer("gpt-4o-mini")
	require.NoError(t, err)

	_, err = cfg.Synthesizer("gpt-4o-mini-tts")
	require.NoError(t, err)

	_, err = cfg.Announcer()
	require.NoError(t, err)

	require.Len(t, cfg.Models(), 2)
}

func TestParseEnvExpansion(t *testing.T) {
	t.Setenv("TEST_ADDRESS", ":7070")

	path := writeConfig(t, "address: ${TEST_ADDRESS}\n")

	cfg, err := Parse(path)
	require.NoError(t, err)
	require.Equal(t, ":7070", cfg.Address)
}

func TestParseUnknownField(t *testing.T) {
	path := writeConfig(t, "listen: :8080\n")

	_, err := Parse(path)
	require.Error(t, err)
}

func TestParseMissingToken(t *testing.T) {
	t.Setenv("MISSING_TEST_TOKEN", "")

	path := writeConfig(t, `
providers:
  - type: openai
    token: ${MISSING_TEST_TOKEN}

    models:
      gpt-4o-mini:
        type: completer
`)

	_, err := Parse(path)

	var perr *pipeline.Error
	require.ErrorAs(t, err, &perr)
	require.Equal(t, pipeline.CodeConfiguration, perr.Code)
}

func TestParseTokenlessCustomEndpoint(t *testing.T) {
	path := writeConfig(t, `
providers:
  - type: openai-compatible
    url: http://localhost:11434/v1

    models:
      llama-3.3-70b:
        type: completer

      kokoro:
        type: synthesizer

announcer:
  completer: llama-3.3-70b
  synthesizer: kokoro
`)

	_, err := Parse(path)
	require.NoError(t, err)
}

func TestParseInvalidModelType(t *testing.T) {
	path := writeConfig(t, `
providers:
  - type: openai
    token: test-token

    models:
      gpt-4o-mini:
        type: renderer
`)

	_, err := Parse(path)
	require.Error(t, err)
}

func TestParseMissingAnnouncerModel(t *testing.T) {
	path := writeConfig(t, `
providers:
  - type: openai
    token: test-token

    models:
      gpt-4o-mini:
        type: completer

announcer:
  completer: gpt-4o-mini
  synthesizer: missing-model
`)

	_, err := Parse(path)
	require.Error(t, err)
}

func TestAnnouncerUnconfigured(t *testing.T) {
	cfg := &Config{}

	_, err := cfg.Announcer()
	require.Error(t, err)
}
