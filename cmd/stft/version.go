package main

import (
	"fmt"
	"runtime"

	"github.com/cwbudde/algo-vecmath/cpu"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-stft/dsp/transform"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and platform information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := cpu.DetectFeatures()
			w := cmd.OutOrStdout()

			fmt.Fprintf(w, "stft %s (%s, %s/%s)\n", version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
			fmt.Fprintf(w, "simd: sse2=%t avx=%t avx2=%t neon=%t\n", f.HasSSE2, f.HasAVX, f.HasAVX2, f.HasNEON)
			fmt.Fprintf(w, "backends:")
			for _, b := range transform.Backends() {
				fmt.Fprintf(w, " %s", b)
			}
			fmt.Fprintln(w)

			return nil
		},
	}
}
