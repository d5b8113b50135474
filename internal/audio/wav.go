// Package audio feeds sample streams into the analysis engine: a chunked
// WAV reader for files and little-endian float32 PCM framing for the
// websocket service.
package audio

import (
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	formatPCM        = 1
	formatExtensible = 0xFFFE
)

var (
	// ErrInvalidWAV is returned when the input is not a RIFF/WAVE stream.
	ErrInvalidWAV = errors.New("audio: invalid wav file")
	// ErrUnsupportedFormat is returned for non-integer PCM encodings.
	ErrUnsupportedFormat = errors.New("audio: unsupported wav encoding")
)

// Info describes a decoded stream.
type Info struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

// Reader decodes a WAV stream chunk by chunk and down-mixes it to mono
// samples in [-1, 1].
type Reader struct {
	dec   *wav.Decoder
	buf   *goaudio.IntBuffer
	info  Info
	scale float64
	bias  int
}

// NewReader validates the WAV header of r.
func NewReader(r io.ReadSeeker) (*Reader, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrInvalidWAV
	}

	if dec.WavAudioFormat != formatPCM && dec.WavAudioFormat != formatExtensible {
		return nil, fmt.Errorf("%w: format tag %#x", ErrUnsupportedFormat, dec.WavAudioFormat)
	}

	info := Info{
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
		BitDepth:   int(dec.BitDepth),
	}
	if info.Channels <= 0 || info.BitDepth <= 0 || info.BitDepth > 32 {
		return nil, fmt.Errorf("%w: %d channels, %d bits", ErrUnsupportedFormat, info.Channels, info.BitDepth)
	}

	rd := &Reader{
		dec:   dec,
		info:  info,
		scale: 1 / float64(int64(1)<<(info.BitDepth-1)),
		buf: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: info.Channels, SampleRate: info.SampleRate},
			SourceBitDepth: info.BitDepth,
		},
	}

	// 8-bit WAV samples are unsigned.
	if info.BitDepth == 8 {
		rd.bias = 128
	}

	return rd, nil
}

// Info returns the stream parameters.
func (r *Reader) Info() Info {
	return r.info
}

// Read fills dst with up to len(dst) mono samples and returns how many were
// written. It returns io.EOF once the stream is exhausted.
func (r *Reader) Read(dst []float64) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	ch := r.info.Channels
	need := len(dst) * ch
	if cap(r.buf.Data) < need {
		r.buf.Data = make([]int, need)
	}
	r.buf.Data = r.buf.Data[:need]

	n, err := r.dec.PCMBuffer(r.buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("audio: decode pcm: %w", err)
	}

	frames := n / ch
	if frames == 0 {
		return 0, io.EOF
	}

	data := r.buf.Data
	for f := range frames {
		sum := 0
		for c := range ch {
			sum += data[f*ch+c] - r.bias
		}
		dst[f] = float64(sum) * r.scale / float64(ch)
	}

	return frames, nil
}

// ReadAll decodes the remainder of the stream.
func (r *Reader) ReadAll() ([]float64, error) {
	var out []float64
	chunk := make([]float64, 4096)
	for {
		n, err := r.Read(chunk)
		out = append(out, chunk[:n]...)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
	}
}
