// Package output writes spectrogram columns produced by the CLI.
package output

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-stft/dsp/spectrum"
)

// ErrUnknownFormat is returned for an unsupported output format name.
var ErrUnknownFormat = errors.New("output: unknown format")

// Layout locates columns in time and bins in frequency.
type Layout struct {
	SampleRate int
	WindowSize int
	StepSize   int
	Bins       int
}

// BinFrequency returns the centre frequency of bin k in Hz.
func (l Layout) BinFrequency(k int) float64 {
	if l.WindowSize == 0 {
		return 0
	}
	return float64(k) * float64(l.SampleRate) / float64(l.WindowSize)
}

// ColumnTime returns the start time of column i in seconds.
func (l Layout) ColumnTime(i int) float64 {
	if l.SampleRate == 0 {
		return 0
	}
	return float64(i*l.StepSize) / float64(l.SampleRate)
}

// Writer emits one record per column.
type Writer interface {
	WriteColumn(index int, col []float64) error
	Flush() error
}

// BinHz returns the bin spacing in Hz.
func (l Layout) BinHz() float64 {
	return l.BinFrequency(1)
}

// New returns a writer for format "csv", "json" or "features".
func New(format string, w io.Writer, layout Layout) (Writer, error) {
	switch strings.ToLower(format) {
	case "csv":
		return &csvWriter{w: csv.NewWriter(w), layout: layout}, nil
	case "json":
		return &jsonWriter{enc: json.NewEncoder(w), layout: layout}, nil
	case "features":
		return &featuresWriter{csvWriter: csvWriter{w: csv.NewWriter(w), layout: layout}}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

type csvWriter struct {
	w       *csv.Writer
	layout  Layout
	record  []string
	started bool
}

func (c *csvWriter) WriteColumn(index int, col []float64) error {
	if !c.started {
		header := make([]string, 0, len(col)+2)
		header = append(header, "column", "time_s")
		for k := range col {
			header = append(header, strconv.FormatFloat(c.layout.BinFrequency(k), 'f', -1, 64))
		}
		if err := c.w.Write(header); err != nil {
			return fmt.Errorf("output: write csv header: %w", err)
		}
		c.started = true
	}

	c.record = c.record[:0]
	c.record = append(c.record,
		strconv.Itoa(index),
		strconv.FormatFloat(c.layout.ColumnTime(index), 'f', 6, 64),
	)
	for _, v := range col {
		c.record = append(c.record, strconv.FormatFloat(v, 'g', 8, 64))
	}

	if err := c.w.Write(c.record); err != nil {
		return fmt.Errorf("output: write csv record: %w", err)
	}

	return nil
}

func (c *csvWriter) Flush() error {
	c.w.Flush()
	return c.w.Error()
}

type jsonColumn struct {
	Column int       `json:"column"`
	Time   float64   `json:"time_s"`
	Bins   []float64 `json:"bins"`
}

type jsonWriter struct {
	enc    *json.Encoder
	layout Layout
}

func (j *jsonWriter) WriteColumn(index int, col []float64) error {
	rec := jsonColumn{Column: index, Time: j.layout.ColumnTime(index), Bins: col}
	if err := j.enc.Encode(rec); err != nil {
		return fmt.Errorf("output: encode json column: %w", err)
	}

	return nil
}

func (j *jsonWriter) Flush() error { return nil }

var featuresHeader = []string{
	"column", "time_s", "peak_hz", "peak", "energy",
	"centroid_hz", "spread_hz", "flatness", "rolloff_hz",
}

// featuresWriter emits one spectrum.Features row per column instead of the
// bins.
type featuresWriter struct {
	csvWriter
}

func (f *featuresWriter) WriteColumn(index int, col []float64) error {
	if !f.started {
		if err := f.w.Write(featuresHeader); err != nil {
			return fmt.Errorf("output: write csv header: %w", err)
		}
		f.started = true
	}

	l := f.layout
	d := spectrum.Describe(col, l.BinHz())

	f.record = append(f.record[:0],
		strconv.Itoa(index),
		strconv.FormatFloat(l.ColumnTime(index), 'f', 6, 64),
		strconv.FormatFloat(l.BinFrequency(d.PeakBin), 'f', -1, 64),
		strconv.FormatFloat(d.Peak, 'g', 8, 64),
		strconv.FormatFloat(d.Energy, 'g', 8, 64),
		strconv.FormatFloat(d.Centroid, 'f', 3, 64),
		strconv.FormatFloat(d.Spread, 'f', 3, 64),
		strconv.FormatFloat(d.Flatness, 'f', 6, 64),
		strconv.FormatFloat(d.Rolloff, 'f', 3, 64),
	)

	if err := f.w.Write(f.record); err != nil {
		return fmt.Errorf("output: write csv record: %w", err)
	}

	return nil
}
