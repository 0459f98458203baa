// Package bgm fetches a background-music asset and conforms it to the voice
// track's duration.
package bgm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/soridam/announcer/pkg/audio"
	"github.com/soridam/announcer/pkg/pipeline"
)

// maxFetchSize caps how much remote audio is pulled into memory.
const maxFetchSize = 32 << 20

type Preparer struct {
	client *http.Client
	engine *audio.Engine
}

type Option func(*Preparer)

func WithClient(client *http.Client) Option {
	return func(p *Preparer) {
		p.client = client
	}
}

func NewPreparer(engine *audio.Engine, options ...Option) *Preparer {
	p := &Preparer{
		client: &http.Client{Timeout: 30 * time.Second},
		engine: engine,
	}

	for _, option := range options {
		option(p)
	}

	return p
}

// Prepare fetches the asset behind url and loops, trims, fades and
// attenuates it so its duration equals target.
func (p *Preparer) Prepare(ctx context.Context, url string, target time.Duration) (audio.Track, error) {
	track, err := p.fetch(ctx, url)

	if err != nil {
		return audio.Track{}, pipeline.Upstream("background track fetch failed", err)
	}

	if _, err := track.Duration(); err != nil {
		return audio.Track{}, pipeline.Media("background track is not recognizable audio", err)
	}

	result, err := p.engine.Conform(ctx, track, target)

	if err != nil {
		return audio.Track{}, pipeline.Media("background track conform failed", err)
	}

	return result, nil
}

func (p *Preparer) fetch(ctx context.Context, url string) (audio.Track, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)

	if err != nil {
		return audio.Track{}, err
	}

	resp, err := p.client.Do(req)

	if err != nil {
		return audio.Track{}, err
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return audio.Track{}, fmt.Errorf("unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchSize))

	if err != nil {
		return audio.Track{}, err
	}

	if len(data) == 0 {
		return audio.Track{}, errors.New("empty response body")
	}

	return audio.Track{
		Content:     data,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}
