package persistence

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kwcargobay/fairing-go/pkg/version"
)

func sampleReport() *RunReport {
	return &RunReport{
		VesselID:   "v1",
		VesselName: "Test Rocket",
		Fairings: []FairingReport{
			{
				PartID:          "fairing",
				PartName:        "fairingBase",
				State:           "SHIELDING",
				EpisodeID:       "5f0c3a52-7d8e-4a51-9d0a-3b1f2e4c6a7b",
				Shielded:        []string{"a", "b", "r"},
				RadialPasses:    2,
				RadialConverged: true,
			},
		},
		Parts: []PartReport{
			{ID: "fairing", Name: "fairingBase"},
			{ID: "a", Name: "probeCore", Shielded: true},
			{ID: "b", Name: "fuelTank", Shielded: true},
			{ID: "r", Name: "solarPanel", Shielded: true},
		},
	}
}

func TestReportStore(t *testing.T) {
	t.Run("SaveAndLoad", func(t *testing.T) {
		dir := t.TempDir()
		store := NewReportStore(filepath.Join(dir, "report.json"))

		if err := store.Save(sampleReport()); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		got, err := store.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if got == nil {
			t.Fatal("Load() returned nil")
		}
		if got.Version != version.Report {
			t.Errorf("Version = %q, want %q", got.Version, version.Report)
		}
		if got.SavedAt.IsZero() {
			t.Error("SavedAt should be set on save")
		}
		if got.VesselID != "v1" {
			t.Errorf("VesselID = %q, want v1", got.VesselID)
		}
		if len(got.Fairings) != 1 {
			t.Fatalf("len(Fairings) = %d, want 1", len(got.Fairings))
		}
		f := got.Fairings[0]
		if f.State != "SHIELDING" || len(f.Shielded) != 3 || !f.RadialConverged {
			t.Errorf("Fairings[0] = %+v", f)
		}
		if n := got.ShieldedCount(); n != 3 {
			t.Errorf("ShieldedCount() = %d, want 3", n)
		}
	})

	t.Run("KeepsSavedAt", func(t *testing.T) {
		dir := t.TempDir()
		store := NewReportStore(filepath.Join(dir, "report.json"))

		at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		r := sampleReport()
		r.SavedAt = at
		if err := store.Save(r); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		got, err := store.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if !got.SavedAt.Equal(at) {
			t.Errorf("SavedAt = %v, want %v", got.SavedAt, at)
		}
	})

	t.Run("LoadNonExistent", func(t *testing.T) {
		dir := t.TempDir()
		store := NewReportStore(filepath.Join(dir, "nonexistent.json"))

		got, err := store.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if got != nil {
			t.Errorf("Load() = %v, want nil for non-existent file", got)
		}
	})

	t.Run("LoadCorrupt", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "report.json")
		if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
			t.Fatal(err)
		}

		if _, err := NewReportStore(path).Load(); err == nil {
			t.Error("Load() should fail on corrupt file")
		}
	})

	t.Run("LoadIncompatibleVersion", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "report.json")
		if err := os.WriteFile(path, []byte(`{"version":"2.0","vessel_id":"v1"}`), 0644); err != nil {
			t.Fatal(err)
		}

		_, err := NewReportStore(path).Load()
		if !errors.Is(err, version.ErrIncompatible) {
			t.Errorf("Load() error = %v, want ErrIncompatible", err)
		}
	})

	t.Run("LoadNewerMinorVersion", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "report.json")
		if err := os.WriteFile(path, []byte(`{"version":"1.3","vessel_id":"v1","future":true}`), 0644); err != nil {
			t.Fatal(err)
		}

		got, err := NewReportStore(path).Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if got.VesselID != "v1" {
			t.Errorf("VesselID = %q, want v1", got.VesselID)
		}
	})

	t.Run("CreatesParentDirectory", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "runs", "today", "report.json")
		store := NewReportStore(path)

		if err := store.Save(sampleReport()); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("report file not created: %v", err)
		}
		if store.Path() != path {
			t.Errorf("Path() = %q, want %q", store.Path(), path)
		}
	})

	t.Run("Clear", func(t *testing.T) {
		dir := t.TempDir()
		store := NewReportStore(filepath.Join(dir, "report.json"))

		if err := store.Save(sampleReport()); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		if err := store.Clear(); err != nil {
			t.Fatalf("Clear() error = %v", err)
		}

		got, err := store.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if got != nil {
			t.Error("Load() after Clear() should return nil")
		}

		// Clearing twice is not an error.
		if err := store.Clear(); err != nil {
			t.Errorf("second Clear() error = %v", err)
		}
	})
}
