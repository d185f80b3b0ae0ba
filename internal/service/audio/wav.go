// Package audio builds and parses the audio format header sent ahead of raw
// audio frames.
package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// WaveHeaderSize is the size of a canonical PCM WAV header.
const WaveHeaderSize = 44

const pcmFormat = 1

var (
	ErrNotWave           = errors.New("not a RIFF/WAVE header")
	ErrUnsupportedFormat = errors.New("unsupported wave format")
)

// Format describes PCM audio.
type Format struct {
	SampleRate    uint32
	BitsPerSample uint16
	Channels      uint16
}

// DefaultFormat returns 16 kHz, 16-bit, mono PCM.
func DefaultFormat() Format {
	return Format{
		SampleRate:    16000,
		BitsPerSample: 16,
		Channels:      1,
	}
}

// BlockAlign returns the size in bytes of one sample frame.
func (f Format) BlockAlign() uint16 {
	return f.Channels * f.BitsPerSample / 8
}

// ByteRate returns the number of audio bytes per second.
func (f Format) ByteRate() uint32 {
	return f.SampleRate * uint32(f.BlockAlign())
}

// Validate checks that the format can be described by a PCM header.
func (f Format) Validate() error {
	if f.SampleRate == 0 || f.Channels == 0 {
		return fmt.Errorf("%w: sampleRate=%d channels=%d", ErrUnsupportedFormat, f.SampleRate, f.Channels)
	}
	switch f.BitsPerSample {
	case 8, 16, 24, 32:
		return nil
	default:
		return fmt.Errorf("%w: bitsPerSample=%d", ErrUnsupportedFormat, f.BitsPerSample)
	}
}

// WaveHeader returns a 44-byte PCM WAV header for a stream of unknown
// length. Size fields are zero.
func WaveHeader(f Format) []byte {
	h := make([]byte, WaveHeaderSize)
	copy(h[0:4], "RIFF")
	binary.LittleEndian.PutUint32(h[4:8], 0)
	copy(h[8:12], "WAVE")
	copy(h[12:16], "fmt ")
	binary.LittleEndian.PutUint32(h[16:20], 16)
	binary.LittleEndian.PutUint16(h[20:22], pcmFormat)
	binary.LittleEndian.PutUint16(h[22:24], f.Channels)
	binary.LittleEndian.PutUint32(h[24:28], f.SampleRate)
	binary.LittleEndian.PutUint32(h[28:32], f.ByteRate())
	binary.LittleEndian.PutUint16(h[32:34], f.BlockAlign())
	binary.LittleEndian.PutUint16(h[34:36], f.BitsPerSample)
	copy(h[36:40], "data")
	binary.LittleEndian.PutUint32(h[40:44], 0)
	return h
}

// ReadWaveHeader reads and validates a canonical PCM WAV header from r.
// It returns the decoded format and the raw header bytes.
func ReadWaveHeader(r io.Reader) (Format, []byte, error) {
	header := make([]byte, WaveHeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return Format{}, nil, fmt.Errorf("read wave header: %w", err)
	}

	if string(header[0:4]) != "RIFF" || string(header[8:12]) != "WAVE" {
		return Format{}, nil, ErrNotWave
	}

	if audioFormat := binary.LittleEndian.Uint16(header[20:22]); audioFormat != pcmFormat {
		return Format{}, nil, fmt.Errorf("%w: audioFormat=%d", ErrUnsupportedFormat, audioFormat)
	}

	f := Format{
		Channels:      binary.LittleEndian.Uint16(header[22:24]),
		SampleRate:    binary.LittleEndian.Uint32(header[24:28]),
		BitsPerSample: binary.LittleEndian.Uint16(header[34:36]),
	}
	if err := f.Validate(); err != nil {
		return Format{}, nil, err
	}
	return f, header, nil
}
