// Package commands implements the fairing-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/kwcargobay/fairing-go/pkg/log"
)

const timestampFormat = "2006-01-02T15:04:05.000000Z"

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [ep:id] fairing CATEGORY
	ts := event.Timestamp.UTC().Format(timestampFormat)
	episode := shortenID(event.EpisodeID)
	if episode == "" {
		episode = "-"
	}

	fmt.Fprintf(w, "%s [ep:%s] %s %s\n", ts, episode, event.FairingID, event.Category.String())

	switch {
	case event.StateChange != nil:
		formatStateChangeDetails(w, event.StateChange)
	case event.Shield != nil:
		formatShieldDetails(w, event.Shield)
	case event.Expose != nil:
		formatExposeDetails(w, event.Expose)
	case event.Diagnostic != nil:
		formatDiagnosticDetails(w, event.Diagnostic)
	}

	fmt.Fprintln(w)
}

// shortenID returns the first 8 characters of an ID.
func shortenID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatStateChangeDetails(w io.Writer, sc *log.StateChangeEvent) {
	fmt.Fprintf(w, "  %s -> %s\n", sc.OldState, sc.NewState)
	if sc.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", sc.Reason)
	}
}

func formatShieldDetails(w io.Writer, s *log.ShieldEvent) {
	if s.PartName != "" {
		fmt.Fprintf(w, "  Part: %s (%s)\n", s.PartID, s.PartName)
	} else {
		fmt.Fprintf(w, "  Part: %s\n", s.PartID)
	}
	fmt.Fprintf(w, "  Kind: %s\n", s.Kind.String())
	if s.ViaID != "" {
		fmt.Fprintf(w, "  Via: %s\n", s.ViaID)
	}
}

func formatExposeDetails(w io.Writer, e *log.ExposeEvent) {
	fmt.Fprintf(w, "  Reason: %s\n", e.Reason.String())
	fmt.Fprintf(w, "  Restored: %d\n", e.Restored)
	if e.Stale > 0 {
		fmt.Fprintf(w, "  Stale: %d\n", e.Stale)
	}
}

func formatDiagnosticDetails(w io.Writer, d *log.DiagnosticEvent) {
	fmt.Fprintf(w, "  %s %s\n", d.Severity.String(), d.Message)
	if d.Node != "" {
		fmt.Fprintf(w, "  Node: %s\n", d.Node)
	}
	if d.PartID != "" {
		fmt.Fprintf(w, "  Part: %s\n", d.PartID)
	}
}

// ParseCategoryFlag parses a category string from command-line flag (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "state":
		return log.CategoryState, nil
	case "shield":
		return log.CategoryShield, nil
	case "expose":
		return log.CategoryExpose, nil
	case "diagnostic":
		return log.CategoryDiagnostic, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be state, shield, expose, or diagnostic)", s)
	}
}

// ParseSeverityFlag parses a severity string from command-line flag (case-insensitive).
func ParseSeverityFlag(s string) (log.Severity, error) {
	switch strings.ToLower(s) {
	case "info":
		return log.SeverityInfo, nil
	case "warn", "warning":
		return log.SeverityWarning, nil
	case "error":
		return log.SeverityError, nil
	default:
		return 0, fmt.Errorf("invalid severity: %s (must be info, warning, or error)", s)
	}
}

// RunView executes the view command.
func RunView(path string, filter log.Filter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event)
	}

	return nil
}
