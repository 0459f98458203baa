package pipeline

import (
	"context"
	"encoding/binary"
	"errors"
	"testing"
	"time"

	"github.com/soridam/announcer/pkg/audio"

	"github.com/stretchr/testify/require"
)

type mockWriter struct {
	script string
	err    error

	calls int
}

func (m *mockWriter) Write(ctx context.Context, keyword, mood string) (string, error) {
	m.calls++

	if err := ctx.Err(); err != nil {
		return "", err
	}

	return m.script, m.err
}

type mockSpeech struct {
	track audio.Track
	err   error

	calls int
}

func (m *mockSpeech) Synthesize(ctx context.Context, text string) (audio.Track, error) {
	m.calls++
	return m.track, m.err
}

type mockPreparer struct {
	track audio.Track
	err   error

	calls  int
	target time.Duration
}

func (m *mockPreparer) Prepare(ctx context.Context, url string, target time.Duration) (audio.Track, error) {
	m.calls++
	m.target = target
	return m.track, m.err
}

type mockEngine struct {
	mixed  audio.Track
	mixErr error

	mixCalls       int
	transcodeCalls int
}

func (m *mockEngine) Mix(ctx context.Context, voice, background audio.Track) (audio.Track, error) {
	m.mixCalls++
	return m.mixed, m.mixErr
}

func (m *mockEngine) Transcode(ctx context.Context, track audio.Track) (audio.Track, error) {
	m.transcodeCalls++

	track.ContentType = audio.TypeMP3
	return track, nil
}

// wavVoice builds a probeable voice buffer of the given length.
func wavVoice(seconds int) audio.Track {
	const sampleRate = 8000

	data := make([]byte, sampleRate*2*seconds)

	buf := []byte("RIFF")
	buf = binary.LittleEndian.AppendUint32(buf, uint32(36+len(data)))
	buf = append(buf, "WAVE"...)

	buf = append(buf, "fmt "...)
	buf = binary.LittleEndian.AppendUint32(buf, 16)
	buf = binary.LittleEndian.AppendUint16(buf, 1)
	buf = binary.LittleEndian.AppendUint16(buf, 1)
	buf = binary.LittleEndian.AppendUint32(buf, sampleRate)
	buf = binary.LittleEndian.AppendUint32(buf, sampleRate*2)
	buf = binary.LittleEndian.AppendUint16(buf, 2)
	buf = binary.LittleEndian.AppendUint16(buf, 16)

	buf = append(buf, "data"...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(data)))
	buf = append(buf, data...)

	// declared as mp3 on purpose, probing sniffs the container
	return audio.Track{Content: buf, ContentType: audio.TypeMP3}
}

func newTestGenerator(writer *mockWriter, speech *mockSpeech, preparer *mockPreparer, engine *mockEngine) *Generator {
	return NewGenerator(writer, speech, preparer, engine)
}

func TestGenerateBlankKeyword(t *testing.T) {
	writer := &mockWriter{}
	speech := &mockSpeech{}
	preparer := &mockPreparer{}
	engine := &mockEngine{}

	g := newTestGenerator(writer, speech, preparer, engine)

	for _, keyword := range []string{"", "   ", "\n\t"} {
		_, err := g.Generate(context.Background(), Request{Keyword: keyword})

		var perr *Error
		require.ErrorAs(t, err, &perr)
		require.Equal(t, CodeValidation, perr.Code)
	}

	// rejected before any external call
	require.Zero(t, writer.calls)
	require.Zero(t, speech.calls)
	require.Zero(t, preparer.calls)
	require.Zero(t, engine.mixCalls)
}

func TestGenerateVoiceOnly(t *testing.T) {
	writer := &mockWriter{script: "재료가 소진되어 영업을 마감합니다."}
	speech := &mockSpeech{track: wavVoice(2)}
	preparer := &mockPreparer{}
	engine := &mockEngine{}

	g := newTestGenerator(writer, speech, preparer, engine)

	result, err := g.Generate(context.Background(), Request{Keyword: "재료 소진"})
	require.NoError(t, err)

	require.Equal(t, writer.script, result.Script)
	require.Equal(t, speech.track.Content, result.Audio.Content)

	require.Zero(t, preparer.calls)
	require.Zero(t, engine.mixCalls)
}

func TestGenerateWithBackground(t *testing.T) {
	writer := &mockWriter{script: "잠시 후 마감합니다."}
	speech := &mockSpeech{track: wavVoice(3)}
	preparer := &mockPreparer{track: audio.Track{Content: []byte("bgm"), ContentType: audio.TypeMP3}}
	engine := &mockEngine{mixed: audio.Track{Content: []byte("mixed"), ContentType: audio.TypeMP3}}

	g := newTestGenerator(writer, speech, preparer, engine)

	result, err := g.Generate(context.Background(), Request{
		Keyword:       "마감 임박",
		BackgroundURL: "https://cdn.example.com/bgm.mp3",
	})
	require.NoError(t, err)

	require.Equal(t, 1, preparer.calls)
	require.Equal(t, 1, engine.mixCalls)
	require.Equal(t, []byte("mixed"), result.Audio.Content)

	// conform target is voice duration plus the fixed tail
	require.Equal(t, 3*time.Second+Tail, preparer.target)
}

func TestGenerateBackgroundFallback(t *testing.T) {
	writer := &mockWriter{script: "안내 말씀 드립니다."}
	speech := &mockSpeech{track: wavVoice(2)}
	preparer := &mockPreparer{err: Upstream("background track fetch failed", errors.New("404"))}
	engine := &mockEngine{}

	g := newTestGenerator(writer, speech, preparer, engine)

	result, err := g.Generate(context.Background(), Request{
		Keyword:       "휴무 안내",
		BackgroundURL: "https://cdn.example.com/missing.mp3",
	})

	// degraded success: voice-only, not a failure
	require.NoError(t, err)
	require.Equal(t, speech.track.Content, result.Audio.Content)
	require.Equal(t, 1, preparer.calls)
	require.Zero(t, engine.mixCalls)
}

func TestGenerateMixFailureIsFatal(t *testing.T) {
	writer := &mockWriter{script: "안내 말씀 드립니다."}
	speech := &mockSpeech{track: wavVoice(2)}
	preparer := &mockPreparer{track: audio.Track{Content: []byte("bgm"), ContentType: audio.TypeMP3}}
	engine := &mockEngine{mixErr: errors.New("ffmpeg: exit status 1")}

	g := newTestGenerator(writer, speech, preparer, engine)

	_, err := g.Generate(context.Background(), Request{
		Keyword:       "휴무 안내",
		BackgroundURL: "https://cdn.example.com/bgm.mp3",
	})

	var perr *Error
	require.ErrorAs(t, err, &perr)
	require.Equal(t, CodeMedia, perr.Code)
}

func TestGenerateScriptFailure(t *testing.T) {
	writer := &mockWriter{err: errors.New("boom")}
	speech := &mockSpeech{}

	g := newTestGenerator(writer, speech, &mockPreparer{}, &mockEngine{})

	_, err := g.Generate(context.Background(), Request{Keyword: "재료 소진"})

	var perr *Error
	require.ErrorAs(t, err, &perr)
	require.Equal(t, CodeUpstream, perr.Code)
	require.Zero(t, speech.calls)
}

func TestGenerateTranscodesNonMP3Voice(t *testing.T) {
	voice := wavVoice(2)
	voice.ContentType = audio.TypeWAV

	writer := &mockWriter{script: "안내"}
	speech := &mockSpeech{track: voice}
	engine := &mockEngine{}

	g := newTestGenerator(writer, speech, &mockPreparer{}, engine)

	result, err := g.Generate(context.Background(), Request{Keyword: "재료 소진"})
	require.NoError(t, err)
	require.Equal(t, 1, engine.transcodeCalls)
	require.Equal(t, audio.TypeMP3, result.Audio.ContentType)
}

func TestGenerateTimeout(t *testing.T) {
	writer := &mockWriter{script: "안내"}

	g := NewGenerator(writer, &mockSpeech{}, &mockPreparer{}, &mockEngine{},
		WithTimeout(time.Nanosecond),
	)

	_, err := g.Generate(context.Background(), Request{Keyword: "재료 소진"})

	var perr *Error
	require.ErrorAs(t, err, &perr)
	require.Equal(t, CodeUpstream, perr.Code)
}
