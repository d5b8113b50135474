package audio

import (
	"bytes"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeWAV encodes interleaved integer samples into a temporary file and
// returns it rewound for reading.
func writeWAV(t *testing.T, sampleRate, bitDepth, channels int, data []int) *os.File {
	t.Helper()

	f, err := os.Create(filepath.Join(t.TempDir(), "in.wav"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	enc := wav.NewEncoder(f, sampleRate, bitDepth, channels, formatPCM)
	require.NoError(t, enc.Write(&goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}))
	require.NoError(t, enc.Close())

	_, err = f.Seek(0, io.SeekStart)
	require.NoError(t, err)

	return f
}

func TestReaderMono16(t *testing.T) {
	data := []int{0, 16384, -16384, 32767, -32768, 8192, 0}
	r, err := NewReader(writeWAV(t, 8000, 16, 1, data))
	require.NoError(t, err)

	assert.Equal(t, Info{SampleRate: 8000, Channels: 1, BitDepth: 16}, r.Info())

	got, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, got, len(data))
	for i, v := range data {
		assert.InDelta(t, float64(v)/32768, got[i], 1e-12, "sample %d", i)
	}
}

func TestReaderChunksAndEOF(t *testing.T) {
	data := make([]int, 10)
	for i := range data {
		data[i] = i * 1000
	}
	r, err := NewReader(writeWAV(t, 44100, 16, 1, data))
	require.NoError(t, err)

	chunk := make([]float64, 4)
	var lens []int
	var all []float64
	for {
		n, err := r.Read(chunk)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		lens = append(lens, n)
		all = append(all, chunk[:n]...)
	}

	assert.Equal(t, []int{4, 4, 2}, lens)
	assert.InDelta(t, 9000.0/32768, all[9], 1e-12)

	n, err := r.Read(chunk)
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, io.EOF)
}

func TestReaderDownmixesStereo(t *testing.T) {
	// Interleaved L/R frames.
	data := []int{16384, 0, 16384, 16384, -16384, 16384}
	r, err := NewReader(writeWAV(t, 48000, 16, 2, data))
	require.NoError(t, err)
	assert.Equal(t, 2, r.Info().Channels)

	got, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.InDelta(t, 0.25, got[0], 1e-12)
	assert.InDelta(t, 0.5, got[1], 1e-12)
	assert.InDelta(t, 0.0, got[2], 1e-12)
}

func TestReader24Bit(t *testing.T) {
	data := []int{1 << 22, -(1 << 22)}
	r, err := NewReader(writeWAV(t, 96000, 24, 1, data))
	require.NoError(t, err)

	got, err := r.ReadAll()
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.5, -0.5}, got, 1e-12)
}

func TestReaderRejectsInvalidInput(t *testing.T) {
	_, err := NewReader(bytes.NewReader([]byte("definitely not a riff header")))
	assert.ErrorIs(t, err, ErrInvalidWAV)
}

func TestFloat32LERoundTrip(t *testing.T) {
	in := []float32{0, 1, -0.5, float32(math.Pi), float32(math.Inf(-1))}
	payload := EncodeFloat32LE(nil, in)
	require.Len(t, payload, 4*len(in))
	assert.Equal(t, []byte{0, 0, 0x80, 0x3f}, payload[4:8])

	out, err := DecodeFloat32LE(make([]float32, 0, 8), payload)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	_, err = DecodeFloat32LE(nil, payload[:7])
	assert.ErrorIs(t, err, ErrPCMLength)
}

func TestPCMCodecReusesBuffers(t *testing.T) {
	src := make([]float32, 256)
	payload := make([]byte, 0, 1024)
	dst := make([]float32, 0, 256)

	allocs := testing.AllocsPerRun(50, func() {
		payload = EncodeFloat32LE(payload, src)
		dst, _ = DecodeFloat32LE(dst, payload)
	})
	assert.Zero(t, allocs)
}
