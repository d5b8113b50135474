// Command stft computes short-time Fourier transforms of audio.
//
// Usage:
//
//	stft windows [window-name ...]
//	stft analyze [flags] FILE.wav
//	stft serve [flags]
//	stft config
//	stft version
//
// Settings are read from defaults, an optional YAML file (--config),
// STFT_* environment variables and flags, in increasing priority.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
