package audio

import (
	"encoding/binary"
	"testing"
	"time"
)

func wavFixture(sampleRate, channels, seconds int) []byte {
	blockAlign := channels * 2
	byteRate := sampleRate * blockAlign
	data := make([]byte, byteRate*seconds)

	buf := []byte("RIFF")
	buf = binary.LittleEndian.AppendUint32(buf, uint32(36+len(data)))
	buf = append(buf, "WAVE"...)

	buf = append(buf, "fmt "...)
	buf = binary.LittleEndian.AppendUint32(buf, 16)
	buf = binary.LittleEndian.AppendUint16(buf, 1)
	buf = binary.LittleEndian.AppendUint16(buf, uint16(channels))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(sampleRate))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(byteRate))
	buf = binary.LittleEndian.AppendUint16(buf, uint16(blockAlign))
	buf = binary.LittleEndian.AppendUint16(buf, 16)

	buf = append(buf, "data"...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(data)))
	buf = append(buf, data...)

	return buf
}

func TestWAVDuration(t *testing.T) {
	track := Track{
		Content:     wavFixture(8000, 1, 2),
		ContentType: TypeWAV,
	}

	duration, err := track.Duration()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if duration != 2*time.Second {
		t.Errorf("duration = %v, want 2s", duration)
	}
}

func TestWAVDurationSniffed(t *testing.T) {
	// no declared content type, detection falls back to the RIFF magic
	track := Track{
		Content: wavFixture(24000, 1, 3),
	}

	duration, err := track.Duration()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if duration != 3*time.Second {
		t.Errorf("duration = %v, want 3s", duration)
	}
}

func TestDurationEmptyBuffer(t *testing.T) {
	track := Track{ContentType: TypeMP3}

	if _, err := track.Duration(); err == nil {
		t.Error("expected error for empty buffer")
	}
}

func TestDurationUnsupported(t *testing.T) {
	track := Track{
		Content:     []byte("OggS garbage"),
		ContentType: "audio/ogg",
	}

	if _, err := track.Duration(); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestDurationMalformedMP3(t *testing.T) {
	track := Track{
		Content:     []byte{0x00, 0x01, 0x02, 0x03},
		ContentType: TypeMP3,
	}

	if _, err := track.Duration(); err == nil {
		t.Error("expected error for malformed mp3")
	}
}

func TestDurationMalformedWAV(t *testing.T) {
	track := Track{
		Content:     []byte("RIFFxxxxWAVE"),
		ContentType: TypeWAV,
	}

	if _, err := track.Duration(); err == nil {
		t.Error("expected error for truncated wav")
	}
}
