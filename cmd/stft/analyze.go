package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-stft/dsp/stft"
	"github.com/cwbudde/algo-stft/internal/audio"
	"github.com/cwbudde/algo-stft/internal/config"
	"github.com/cwbudde/algo-stft/internal/output"
)

func newAnalyzeCmd(a *app, defaults config.AnalysisConfig) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "analyze FILE.wav",
		Short: "Compute the spectrogram of a WAV file",
		Long: `analyze streams a PCM WAV file through the STFT engine in chunks and
writes one record per column. Multi-channel input is downmixed to mono.`,
		Example: `  stft analyze speech.wav
  stft analyze --window blackman --size 2048 --step 256 --reduction decibels music.wav
  stft analyze --format json -o columns.ndjson tone.wav
  stft analyze --format features speech.wav`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("create output: %w", err)
				}
				defer f.Close()
				out = f
			}

			return analyzeFile(args[0], out, a.cfg.Analysis)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&outPath, "output", "o", "", "write columns to this file instead of stdout")
	f.String("window", defaults.Window, "window function")
	f.Int("size", defaults.WindowSize, "window size in samples")
	f.Int("step", defaults.StepSize, "samples between column starts")
	f.String("reduction", defaults.Reduction, "column reduction (magnitude, power, decibels, log10-positive)")
	f.String("backend", defaults.Backend, "transform backend (auto, algofft, gonum, godsp, dft)")
	f.Float64("floor", defaults.DecibelFloor, "magnitude floor for the decibels reduction")
	f.Bool("periodic", defaults.Periodic, "use the periodic (DFT-even) window form")
	f.Float64("alpha", defaults.Alpha, "parametric window shape; negative selects the default")
	f.Int("chunk", defaults.ChunkSize, "samples decoded per append")
	f.Bool("flush", defaults.Flush, "zero-pad and emit the trailing partial window")
	f.String("format", defaults.Format, "output format (csv, json, features); features needs the magnitude reduction")

	return cmd
}

// analyzeFile decodes path chunk by chunk and writes every column to w.
func analyzeFile(path string, w io.Writer, an config.AnalysisConfig) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	r, err := audio.NewReader(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	eng, err := config.NewEngine[float64, complex128](an)
	if err != nil {
		return err
	}

	info := r.Info()
	bw := bufio.NewWriter(w)
	ow, err := output.New(an.Format, bw, output.Layout{
		SampleRate: info.SampleRate,
		WindowSize: eng.WindowSize(),
		StepSize:   eng.StepSize(),
		Bins:       eng.OutputSize(),
	})
	if err != nil {
		return err
	}

	logger := log.With().Str("file", path).Logger()
	logger.Debug().
		Int("sample_rate", info.SampleRate).
		Int("channels", info.Channels).
		Int("bit_depth", info.BitDepth).
		Str("window", eng.WindowType().String()).
		Int("window_size", eng.WindowSize()).
		Int("step_size", eng.StepSize()).
		Msg("analysis started")

	start := time.Now()
	columns := 0
	emit := func(c []float64) error {
		if err := ow.WriteColumn(columns, c); err != nil {
			return err
		}
		columns++
		return nil
	}

	samples, err := streamColumns(eng, r.Read, make([]float64, an.ChunkSize), an.Flush, emit)
	if err != nil {
		return err
	}

	if err := ow.Flush(); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	logger.Info().
		Int("samples", samples).
		Int("columns", columns).
		Dur("elapsed", time.Since(start)).
		Msg("analysis finished")

	return nil
}

// streamColumns feeds chunks from read into eng and passes every column to
// emit until read reports io.EOF. It returns the number of samples read.
// A zero-step engine never advances, so reading stops after its single
// column.
func streamColumns(
	eng *stft.Engine,
	read func([]float64) (int, error),
	chunk []float64,
	flush bool,
	emit func([]float64) error,
) (int, error) {
	col := make([]float64, eng.OutputSize())
	samples, columns := 0, 0

	count := func(c []float64) error {
		if err := emit(c); err != nil {
			return err
		}
		columns++
		return nil
	}
	done := func() bool { return eng.StepSize() == 0 && columns > 0 }

	for !done() {
		n, rerr := read(chunk)
		if n > 0 {
			samples += n
			eng.Append(chunk[:n])
			if _, err := eng.Drain(col, count); err != nil {
				return samples, err
			}
		}

		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			return samples, rerr
		}
	}

	if flush && !done() && eng.Flush() {
		if _, err := eng.Drain(col, count); err != nil {
			return samples, err
		}
	}

	return samples, nil
}
