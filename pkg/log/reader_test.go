package log

import (
	"io"
	"path/filepath"
	"testing"
	"time"
)

func createTestTraceFile(t *testing.T, events []Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.flog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create test trace: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()

	return path
}

func readAll(t *testing.T, r *Reader) []Event {
	t.Helper()
	var read []Event
	for {
		event, err := r.Next()
		if err == io.EOF {
			return read
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		read = append(read, event)
	}
}

func TestReaderIteratesEvents(t *testing.T) {
	now := time.Now()
	events := []Event{
		{Timestamp: now, EpisodeID: "ep-1", Category: CategoryState},
		{Timestamp: now, EpisodeID: "ep-1", Category: CategoryShield},
		{Timestamp: now, EpisodeID: "ep-1", Category: CategoryExpose},
	}

	reader, err := NewReader(createTestTraceFile(t, events))
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	read := readAll(t, reader)
	if len(read) != 3 {
		t.Fatalf("got %d events, want 3", len(read))
	}
	for i, want := range []Category{CategoryState, CategoryShield, CategoryExpose} {
		if read[i].Category != want {
			t.Errorf("event %d category = %v, want %v", i, read[i].Category, want)
		}
	}
}

func TestReaderFilters(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	events := []Event{
		{Timestamp: base, EpisodeID: "ep-1", FairingID: "cone1", Category: CategoryState},
		{Timestamp: base.Add(time.Second), EpisodeID: "ep-1", FairingID: "cone1", Category: CategoryDiagnostic,
			Diagnostic: &DiagnosticEvent{Severity: SeverityInfo, Message: "searching"}},
		{Timestamp: base.Add(2 * time.Second), EpisodeID: "ep-2", FairingID: "cone2", Category: CategoryDiagnostic,
			Diagnostic: &DiagnosticEvent{Severity: SeverityError, Message: "missing node"}},
		{Timestamp: base.Add(3 * time.Second), EpisodeID: "ep-2", FairingID: "cone2", Category: CategoryExpose,
			Expose: &ExposeEvent{Reason: ExposeDecoupled, Restored: 3}},
	}
	path := createTestTraceFile(t, events)

	diag := CategoryDiagnostic
	warn := SeverityWarning
	start := base.Add(time.Second)
	end := base.Add(3 * time.Second)

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"All", Filter{}, 4},
		{"Episode", Filter{EpisodeID: "ep-2"}, 2},
		{"Fairing", Filter{FairingID: "cone1"}, 2},
		{"Category", Filter{Category: &diag}, 2},
		{"MinSeverity", Filter{MinSeverity: &warn}, 1},
		{"TimeRange", Filter{TimeStart: &start, TimeEnd: &end}, 2},
		{"NoMatch", Filter{EpisodeID: "ep-9"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader, err := NewFilteredReader(path, tt.filter)
			if err != nil {
				t.Fatalf("NewFilteredReader failed: %v", err)
			}
			defer reader.Close()

			if got := len(readAll(t, reader)); got != tt.want {
				t.Errorf("got %d events, want %d", got, tt.want)
			}
		})
	}
}

func TestReaderMissingFile(t *testing.T) {
	if _, err := NewReader(filepath.Join(t.TempDir(), "nope.flog")); err == nil {
		t.Error("NewReader on missing file returned nil error")
	}
}
