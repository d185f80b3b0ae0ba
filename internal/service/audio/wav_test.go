package audio

import (
	"bytes"
	"errors"
	"testing"
)

func TestWaveHeader_Layout(t *testing.T) {
	h := WaveHeader(DefaultFormat())

	if len(h) != WaveHeaderSize {
		t.Fatalf("expected %d bytes, got %d", WaveHeaderSize, len(h))
	}
	if string(h[0:4]) != "RIFF" || string(h[8:12]) != "WAVE" || string(h[36:40]) != "data" {
		t.Errorf("unexpected chunk ids in header %q", h)
	}
}

func TestWaveHeader_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		format Format
	}{
		{"default", DefaultFormat()},
		{"8khz", Format{SampleRate: 8000, BitsPerSample: 16, Channels: 1}},
		{"stereo 48k", Format{SampleRate: 48000, BitsPerSample: 16, Channels: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, raw, err := ReadWaveHeader(bytes.NewReader(WaveHeader(tt.format)))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.format {
				t.Errorf("expected %+v, got %+v", tt.format, got)
			}
			if len(raw) != WaveHeaderSize {
				t.Errorf("expected raw header of %d bytes, got %d", WaveHeaderSize, len(raw))
			}
		})
	}
}

func TestFormat_Rates(t *testing.T) {
	f := DefaultFormat()
	if f.BlockAlign() != 2 {
		t.Errorf("expected block align 2, got %d", f.BlockAlign())
	}
	if f.ByteRate() != 32000 {
		t.Errorf("expected byte rate 32000, got %d", f.ByteRate())
	}
}

func TestReadWaveHeader_Errors(t *testing.T) {
	notWave := WaveHeader(DefaultFormat())
	copy(notWave[0:4], "JUNK")

	nonPCM := WaveHeader(DefaultFormat())
	nonPCM[20] = 3

	badBits := WaveHeader(Format{SampleRate: 16000, BitsPerSample: 12, Channels: 1})

	tests := []struct {
		name     string
		input    []byte
		expected error
	}{
		{"not wave", notWave, ErrNotWave},
		{"non pcm", nonPCM, ErrUnsupportedFormat},
		{"bad bits", badBits, ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ReadWaveHeader(bytes.NewReader(tt.input))
			if !errors.Is(err, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, err)
			}
		})
	}
}

func TestReadWaveHeader_ShortInput(t *testing.T) {
	if _, _, err := ReadWaveHeader(bytes.NewReader([]byte("RIFF"))); err == nil {
		t.Error("expected error for short input")
	}
}
