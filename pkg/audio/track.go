package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/go-mp3"
)

const (
	TypeMP3 = "audio/mpeg"
	TypeWAV = "audio/wav"
)

var ErrUnsupported = errors.New("unsupported audio format")

// Track is an encoded audio buffer held for the lifetime of one request.
type Track struct {
	Content     []byte
	ContentType string
}

// Duration probes the buffer and returns its play time.
func (t Track) Duration() (time.Duration, error) {
	if len(t.Content) == 0 {
		return 0, errors.New("empty audio buffer")
	}

	switch detectType(t) {
	case TypeMP3:
		return mp3Duration(t.Content)

	case TypeWAV:
		return wavDuration(t.Content)
	}

	return 0, fmt.Errorf("%w: %s", ErrUnsupported, t.ContentType)
}

// detectType sniffs the buffer first since remote servers routinely
// mislabel audio, then falls back to the declared content type.
func detectType(t Track) string {
	if bytes.HasPrefix(t.Content, []byte("RIFF")) {
		return TypeWAV
	}

	if bytes.HasPrefix(t.Content, []byte("ID3")) {
		return TypeMP3
	}

	if len(t.Content) > 1 && t.Content[0] == 0xFF && t.Content[1]&0xE0 == 0xE0 {
		return TypeMP3
	}

	switch t.ContentType {
	case TypeMP3, "audio/mp3":
		return TypeMP3

	case TypeWAV, "audio/x-wav", "audio/wave":
		return TypeWAV
	}

	return t.ContentType
}

func mp3Duration(content []byte) (time.Duration, error) {
	decoder, err := mp3.NewDecoder(bytes.NewReader(content))

	if err != nil {
		return 0, err
	}

	// Length reports decoded stereo 16-bit samples, 4 bytes per frame.
	samples := decoder.Length() / 4

	if samples <= 0 || decoder.SampleRate() <= 0 {
		return 0, errors.New("mp3 stream has no samples")
	}

	return time.Duration(samples) * time.Second / time.Duration(decoder.SampleRate()), nil
}

func wavDuration(content []byte) (time.Duration, error) {
	if len(content) < 12 || !bytes.HasPrefix(content, []byte("RIFF")) || string(content[8:12]) != "WAVE" {
		return 0, errors.New("malformed wav header")
	}

	var byteRate uint32
	var dataSize uint32

	offset := 12

	for offset+8 <= len(content) {
		id := string(content[offset : offset+4])
		size := binary.LittleEndian.Uint32(content[offset+4 : offset+8])

		body := offset + 8

		switch id {
		case "fmt ":
			if body+16 > len(content) {
				return 0, errors.New("malformed fmt chunk")
			}

			byteRate = binary.LittleEndian.Uint32(content[body+8 : body+12])

		case "data":
			dataSize = size

			if body+int(size) > len(content) {
				dataSize = uint32(len(content) - body)
			}
		}

		offset = body + int(size)

		if size%2 == 1 {
			offset++
		}
	}

	if byteRate == 0 || dataSize == 0 {
		return 0, errors.New("wav stream has no samples")
	}

	return time.Duration(dataSize) * time.Second / time.Duration(byteRate), nil
}

func fileExt(contentType string) string {
	switch contentType {
	case TypeWAV, "audio/x-wav", "audio/wave":
		return ".wav"

	default:
		return ".mp3"
	}
}
