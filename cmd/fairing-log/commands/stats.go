package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/kwcargobay/fairing-go/pkg/log"
)

// Stats holds aggregate statistics about a trace file.
type Stats struct {
	TotalEvents           int
	EventsByCategory      map[log.Category]int
	DiagnosticsBySeverity map[log.Severity]int
	Episodes              map[string]*EpisodeStats
	TimeRange             struct {
		Start time.Time
		End   time.Time
	}
}

// EpisodeStats holds statistics for a single shielding episode.
type EpisodeStats struct {
	FairingID string
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
	Shielded  int
	Exposed   bool
	Reason    log.ExposeReason
	Restored  int
	Stale     int
}

// RunStats analyzes the trace file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByCategory:      make(map[log.Category]int),
		DiagnosticsBySeverity: make(map[log.Severity]int),
		Episodes:              make(map[string]*EpisodeStats),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		stats.add(event)
	}

	printStats(w, stats)
	return nil
}

func (s *Stats) add(event log.Event) {
	s.TotalEvents++
	s.EventsByCategory[event.Category]++

	if s.TimeRange.Start.IsZero() || event.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = event.Timestamp
	}
	if event.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = event.Timestamp
	}

	if event.Diagnostic != nil {
		s.DiagnosticsBySeverity[event.Diagnostic.Severity]++
	}

	// Events outside an episode only count towards the totals.
	if event.EpisodeID == "" {
		return
	}
	ep, ok := s.Episodes[event.EpisodeID]
	if !ok {
		ep = &EpisodeStats{
			FairingID: event.FairingID,
			FirstSeen: event.Timestamp,
			LastSeen:  event.Timestamp,
		}
		s.Episodes[event.EpisodeID] = ep
	}
	ep.Events++
	if event.Timestamp.After(ep.LastSeen) {
		ep.LastSeen = event.Timestamp
	}
	if event.Shield != nil {
		ep.Shielded++
	}
	if event.Expose != nil {
		ep.Exposed = true
		ep.Reason = event.Expose.Reason
		ep.Restored = event.Expose.Restored
		ep.Stale = event.Expose.Stale
	}
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Fairing Trace Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryState, log.CategoryShield, log.CategoryExpose, log.CategoryDiagnostic} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	if len(stats.DiagnosticsBySeverity) > 0 {
		fmt.Fprintln(w, "Diagnostics by Severity:")
		for _, sev := range []log.Severity{log.SeverityInfo, log.SeverityWarning, log.SeverityError} {
			if count := stats.DiagnosticsBySeverity[sev]; count > 0 {
				fmt.Fprintf(w, "  %-12s %d\n", sev.String()+":", count)
			}
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Episodes: %d\n", len(stats.Episodes))
	if len(stats.Episodes) == 0 {
		return
	}

	type episodeInfo struct {
		id    string
		stats *EpisodeStats
	}
	eps := make([]episodeInfo, 0, len(stats.Episodes))
	for id, es := range stats.Episodes {
		eps = append(eps, episodeInfo{id, es})
	}
	sort.Slice(eps, func(i, j int) bool {
		return eps[i].stats.FirstSeen.Before(eps[j].stats.FirstSeen)
	})

	fmt.Fprintln(w)
	for _, e := range eps {
		duration := e.stats.LastSeen.Sub(e.stats.FirstSeen).Round(time.Millisecond)
		fmt.Fprintf(w, "  [%s] fairing %s, %d events, %d shielded, duration %s\n",
			shortenID(e.id), e.stats.FairingID, e.stats.Events, e.stats.Shielded, duration)
		if e.stats.Exposed {
			fmt.Fprintf(w, "           Exposed: %s (restored %d, stale %d)\n",
				e.stats.Reason.String(), e.stats.Restored, e.stats.Stale)
		} else {
			fmt.Fprintln(w, "           Still shielding")
		}
	}
}
