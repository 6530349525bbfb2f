package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes trace events to an slog.Logger.
// Useful for development when you want to see the trace in the console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("category", event.Category.String()),
	}

	if event.EpisodeID != "" {
		attrs = append(attrs, slog.String("episode_id", event.EpisodeID))
	}
	if event.VesselID != "" {
		attrs = append(attrs, slog.String("vessel_id", event.VesselID))
	}
	if event.FairingID != "" {
		attrs = append(attrs, slog.String("fairing_id", event.FairingID))
	}

	switch {
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	case event.Shield != nil:
		attrs = append(attrs,
			slog.String("part_id", event.Shield.PartID),
			slog.String("part_name", event.Shield.PartName),
			slog.String("kind", event.Shield.Kind.String()),
		)
		if event.Shield.ViaID != "" {
			attrs = append(attrs, slog.String("via", event.Shield.ViaID))
		}
	case event.Expose != nil:
		attrs = append(attrs,
			slog.String("reason", event.Expose.Reason.String()),
			slog.Int("restored", event.Expose.Restored),
			slog.Int("stale", event.Expose.Stale),
		)
	case event.Diagnostic != nil:
		attrs = append(attrs,
			slog.String("severity", event.Diagnostic.Severity.String()),
			slog.String("message", event.Diagnostic.Message),
		)
		if event.Diagnostic.Node != "" {
			attrs = append(attrs, slog.String("node", event.Diagnostic.Node))
		}
		if event.Diagnostic.PartID != "" {
			attrs = append(attrs, slog.String("part_id", event.Diagnostic.PartID))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "trace", attrs...)
}

var _ Logger = (*SlogAdapter)(nil)
