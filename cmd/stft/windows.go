package main

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cwbudde/algo-stft/dsp/window"
	"github.com/cwbudde/algo-stft/internal/config"
)

var titleCaser = cases.Title(language.English)

func newWindowsCmd(a *app, defaults config.AnalysisConfig) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "windows [window-name ...]",
		Short: "Print spectral properties of window functions",
		Example: `  stft windows hann blackman
  stft windows --size 4096 --alpha 8 kaiser
  stft windows --list`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				return printWindowList(cmd.OutOrStdout())
			}

			types, err := resolveWindows(args)
			if err != nil {
				return err
			}

			an := a.cfg.Analysis

			return printWindowTable(cmd.OutOrStdout(), types, an.WindowSize, an.Alpha, an.Periodic)
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "list available window names")
	cmd.Flags().Int("size", defaults.WindowSize, "window length in samples")
	cmd.Flags().Float64("alpha", defaults.Alpha, "alpha/beta for parametric windows (kaiser, tukey, gauss); negative selects the default")
	cmd.Flags().Bool("periodic", defaults.Periodic, "use the periodic (DFT-even) form")

	return cmd
}

func resolveWindows(names []string) ([]window.Type, error) {
	if len(names) == 0 {
		return window.Types(), nil
	}

	types := make([]window.Type, 0, len(names))
	for _, name := range names {
		t, err := window.ParseType(name)
		if err != nil {
			return nil, fmt.Errorf("%w (use --list to see available)", err)
		}
		types = append(types, t)
	}

	return types, nil
}

func printWindowList(w io.Writer) error {
	names := make([]string, 0, len(window.Types()))
	for _, t := range window.Types() {
		names = append(names, t.String())
	}
	sort.Strings(names)

	for _, n := range names {
		if _, err := fmt.Fprintln(w, n); err != nil {
			return err
		}
	}

	return nil
}

func printWindowTable(w io.Writer, types []window.Type, size int, alpha float64, periodic bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Window\tSize\tCoherent Gain\tENBW [bins]\tBW 3dB [bins]\tSidelobe [dB]\tScallop [dB]\n")
	fmt.Fprintf(tw, "------\t----\t-------------\t-----------\t-------------\t-------------\t------------\n")

	for _, t := range types {
		meta := window.Info(t)

		var opts []window.Option
		if periodic {
			opts = append(opts, window.WithPeriodic())
		}

		label := titleCaser.String(meta.Name)
		if meta.Parametric {
			a := meta.DefaultAlpha
			if alpha >= 0 {
				a = alpha
			}
			opts = append(opts, window.WithAlpha(a))
			label = fmt.Sprintf("%s (a=%.2f)", label, a)
		}

		coeffs, err := window.Generate(t, size, opts...)
		if err != nil {
			return fmt.Errorf("%s: %w", meta.Name, err)
		}
		an := window.Analyze(coeffs)

		sidelobe := "-"
		if meta.HighestSidelobe != 0 {
			sidelobe = fmt.Sprintf("%.1f", meta.HighestSidelobe)
		}

		fmt.Fprintf(tw, "%s\t%d\t%.6f\t%.4f\t%.4f\t%s\t%.4f\n",
			label,
			size,
			an.CoherentGain,
			an.ENBW,
			an.Bandwidth3dB,
			sidelobe,
			an.ScallopLossdB,
		)
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write window table: %w", err)
	}

	return nil
}
