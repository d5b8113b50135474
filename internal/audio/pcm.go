package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrPCMLength is returned when a float32 PCM payload is not a multiple of
// four bytes.
var ErrPCMLength = errors.New("audio: float32 pcm length must be a multiple of 4")

// DecodeFloat32LE appends the little-endian float32 samples in b to dst[:0].
func DecodeFloat32LE(dst []float32, b []byte) ([]float32, error) {
	if len(b)%4 != 0 {
		return dst[:0], fmt.Errorf("%w: got %d bytes", ErrPCMLength, len(b))
	}

	dst = dst[:0]
	for i := 0; i < len(b); i += 4 {
		dst = append(dst, math.Float32frombits(binary.LittleEndian.Uint32(b[i:])))
	}

	return dst, nil
}

// EncodeFloat32LE appends src as little-endian float32 to dst[:0].
func EncodeFloat32LE(dst []byte, src []float32) []byte {
	dst = dst[:0]
	for _, v := range src {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(v))
	}

	return dst
}
