package log

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileLoggerCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.flog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	defer logger.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("trace file was not created")
	}
}

func TestFileLoggerWritesCBOR(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.flog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	event := Event{
		Timestamp: time.Now(),
		EpisodeID: "ep-1",
		FairingID: "cone",
		Category:  CategoryShield,
		Shield: &ShieldEvent{
			PartID:   "probe",
			PartName: "probeCore",
			Kind:     ShieldPayload,
		},
	}

	logger.Log(event)
	logger.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read trace file: %v", err)
	}

	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("failed to decode event: %v", err)
	}

	if decoded.EpisodeID != "ep-1" {
		t.Errorf("EpisodeID: got %q, want %q", decoded.EpisodeID, "ep-1")
	}
	if decoded.Shield == nil {
		t.Fatal("Shield is nil")
	}
	if decoded.Shield.PartID != "probe" || decoded.Shield.Kind != ShieldPayload {
		t.Errorf("Shield: got %+v", decoded.Shield)
	}
}

func TestFileLoggerAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.flog")

	for _, id := range []string{"ep-1", "ep-2"} {
		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("NewFileLogger failed: %v", err)
		}
		logger.Log(Event{Timestamp: time.Now(), EpisodeID: id, Category: CategoryState})
		logger.Close()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read trace file: %v", err)
	}

	decoder := NewDecoder(bytes.NewReader(data))
	var events []Event
	for {
		var event Event
		if err := decoder.Decode(&event); err != nil {
			break
		}
		events = append(events, event)
	}

	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].EpisodeID != "ep-1" || events[1].EpisodeID != "ep-2" {
		t.Errorf("episode order: got %q, %q", events[0].EpisodeID, events[1].EpisodeID)
	}
}

func TestFileLoggerIgnoresLogAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.flog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("second Close returned %v, want nil", err)
	}

	logger.Log(Event{Timestamp: time.Now(), Category: CategoryState})

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("file size = %d after logging on closed logger, want 0", info.Size())
	}
}

func TestFileLoggerStats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.flog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	defer logger.Close()

	logger.Log(Event{Timestamp: time.Now(), Category: CategoryState})
	logger.Log(Event{Timestamp: time.Now(), Category: CategoryExpose})

	// Pull the file out from under the logger; later writes must fail.
	if err := logger.f.Close(); err != nil {
		t.Fatalf("closing file: %v", err)
	}
	logger.Log(Event{Timestamp: time.Now(), Category: CategoryState})

	written, dropped := logger.Stats()
	if written != 2 || dropped != 1 {
		t.Errorf("Stats() = (%d, %d), want (2, 1)", written, dropped)
	}
}
