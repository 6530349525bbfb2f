package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/kwcargobay/fairing-go/pkg/log"
)

// FilterOptions specifies filtering criteria for the view and filter commands.
type FilterOptions struct {
	EpisodeID string
	FairingID string
	TimeStart string
	TimeEnd   string
	Category  string
	Severity  string
}

// BuildFilter converts command-line options into a trace filter.
func BuildFilter(opts FilterOptions) (log.Filter, error) {
	filter := log.Filter{
		EpisodeID: opts.EpisodeID,
		FairingID: opts.FairingID,
	}

	if opts.TimeStart != "" {
		t, err := time.Parse(time.RFC3339, opts.TimeStart)
		if err != nil {
			return log.Filter{}, fmt.Errorf("invalid time-start format: %w", err)
		}
		filter.TimeStart = &t
	}

	if opts.TimeEnd != "" {
		t, err := time.Parse(time.RFC3339, opts.TimeEnd)
		if err != nil {
			return log.Filter{}, fmt.Errorf("invalid time-end format: %w", err)
		}
		filter.TimeEnd = &t
	}

	if opts.Category != "" {
		c, err := ParseCategoryFlag(opts.Category)
		if err != nil {
			return log.Filter{}, err
		}
		filter.Category = &c
	}

	if opts.Severity != "" {
		s, err := ParseSeverityFlag(opts.Severity)
		if err != nil {
			return log.Filter{}, err
		}
		filter.MinSeverity = &s
	}

	return filter, nil
}

// RunFilter filters the trace file and writes matching events to output.
// A summary line is written to w.
func RunFilter(path, output string, opts FilterOptions, w io.Writer) error {
	filter, err := BuildFilter(opts)
	if err != nil {
		return err
	}

	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	logger, err := log.NewFileLogger(output)
	if err != nil {
		return fmt.Errorf("failed to create output logger: %w", err)
	}
	defer logger.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		logger.Log(event)
	}

	written, dropped := logger.Stats()
	if dropped > 0 {
		return fmt.Errorf("failed to write %d of %d events to %s", dropped, written+dropped, output)
	}
	fmt.Fprintf(w, "Filtered %d events to %s\n", written, output)
	return nil
}
