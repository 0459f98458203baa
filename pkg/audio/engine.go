package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const (
	// BackgroundGain attenuates music by roughly -15 dB so it sits
	// beneath spoken audio.
	BackgroundGain = 0.18

	// FadeOut is the fade window applied at the very end of a conformed
	// background track.
	FadeOut = 2 * time.Second
)

// Engine drives ffmpeg for the conform, mix and transcode steps. All
// intermediate files live under uniquely named paths in dir and are removed
// best-effort before returning.
type Engine struct {
	path string
	dir  string
}

func NewEngine(path string) *Engine {
	if path == "" {
		path = "ffmpeg"
	}

	return &Engine{
		path: path,
		dir:  os.TempDir(),
	}
}

// Conform loops the track to cover target, trims it to exactly target,
// fades the final FadeOut window and attenuates it by BackgroundGain.
func (e *Engine) Conform(ctx context.Context, track Track, target time.Duration) (Track, error) {
	in, cleanupIn, err := e.tempFile(track)

	if err != nil {
		return Track{}, err
	}

	defer cleanupIn()

	out := e.tempPath(".mp3")
	defer os.Remove(out)

	if err := e.run(ctx, conformArgs(in, out, target)); err != nil {
		return Track{}, err
	}

	return e.readResult(out)
}

// Mix overlays voice at unity volume on top of an already conformed and
// attenuated background track.
func (e *Engine) Mix(ctx context.Context, voice, background Track) (Track, error) {
	voicePath, cleanupVoice, err := e.tempFile(voice)

	if err != nil {
		return Track{}, err
	}

	defer cleanupVoice()

	backgroundPath, cleanupBackground, err := e.tempFile(background)

	if err != nil {
		return Track{}, err
	}

	defer cleanupBackground()

	out := e.tempPath(".mp3")
	defer os.Remove(out)

	if err := e.run(ctx, mixArgs(voicePath, backgroundPath, out)); err != nil {
		return Track{}, err
	}

	return e.readResult(out)
}

// Transcode re-encodes a track to the fixed MP3 output format.
func (e *Engine) Transcode(ctx context.Context, track Track) (Track, error) {
	in, cleanup, err := e.tempFile(track)

	if err != nil {
		return Track{}, err
	}

	defer cleanup()

	out := e.tempPath(".mp3")
	defer os.Remove(out)

	if err := e.run(ctx, transcodeArgs(in, out)); err != nil {
		return Track{}, err
	}

	return e.readResult(out)
}

func conformArgs(in, out string, target time.Duration) []string {
	fadeStart := target - FadeOut

	if fadeStart < 0 {
		fadeStart = 0
	}

	filter := fmt.Sprintf("volume=%.2f,afade=t=out:st=%.3f:d=%.3f",
		BackgroundGain, fadeStart.Seconds(), FadeOut.Seconds())

	return []string{
		"-y",
		"-stream_loop", "-1",
		"-i", in,
		"-t", fmt.Sprintf("%.3f", target.Seconds()),
		"-af", filter,
		"-c:a", "libmp3lame", "-q:a", "4",
		out,
	}
}

func mixArgs(voice, background, out string) []string {
	return []string{
		"-y",
		"-i", voice,
		"-i", background,
		"-filter_complex", "[0:a][1:a]amix=inputs=2:duration=longest:dropout_transition=0:normalize=0[mix]",
		"-map", "[mix]",
		"-c:a", "libmp3lame", "-q:a", "2",
		out,
	}
}

func transcodeArgs(in, out string) []string {
	return []string{
		"-y",
		"-i", in,
		"-c:a", "libmp3lame", "-q:a", "2",
		out,
	}
}

func (e *Engine) run(ctx context.Context, args []string) error {
	cmd := exec.CommandContext(ctx, e.path, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := lastLine(stderr.Bytes())

		if detail == "" {
			return fmt.Errorf("ffmpeg: %w", err)
		}

		return fmt.Errorf("ffmpeg: %w: %s", err, detail)
	}

	return nil
}

func (e *Engine) tempFile(track Track) (string, func(), error) {
	path := e.tempPath(fileExt(track.ContentType))

	if err := os.WriteFile(path, track.Content, 0o600); err != nil {
		return "", nil, err
	}

	return path, func() { os.Remove(path) }, nil
}

func (e *Engine) tempPath(ext string) string {
	return filepath.Join(e.dir, "announcer-"+uuid.NewString()+ext)
}

func (e *Engine) readResult(path string) (Track, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return Track{}, err
	}

	if len(data) == 0 {
		return Track{}, errors.New("ffmpeg produced empty output")
	}

	return Track{
		Content:     data,
		ContentType: TypeMP3,
	}, nil
}

func lastLine(output []byte) string {
	lines := bytes.Split(bytes.TrimSpace(output), []byte("\n"))

	if len(lines) == 0 {
		return ""
	}

	return string(bytes.TrimSpace(lines[len(lines)-1]))
}
