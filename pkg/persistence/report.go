package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/kwcargobay/fairing-go/pkg/version"
)

var reportFormat = version.MustParse(version.Report)

// RunReport is a snapshot of a simulated vessel.
type RunReport struct {
	// Version is the report file format version ("major.minor").
	Version string `json:"version"`

	// SavedAt is when the report was saved.
	SavedAt time.Time `json:"saved_at"`

	// VesselID identifies the vessel.
	VesselID string `json:"vessel_id"`

	// VesselName is the vessel's display name.
	VesselName string `json:"vessel_name,omitempty"`

	// Fairings contains one entry per fairing controller.
	Fairings []FairingReport `json:"fairings,omitempty"`

	// Parts contains every part still attached to the vessel.
	Parts []PartReport `json:"parts,omitempty"`
}

// FairingReport captures a fairing controller.
type FairingReport struct {
	// PartID is the ID of the part carrying the fairing module.
	PartID string `json:"part_id"`

	// PartName is that part's type name.
	PartName string `json:"part_name,omitempty"`

	// State is the controller state (IDLE or SHIELDING).
	State string `json:"state"`

	// EpisodeID is the current or last episode ID.
	EpisodeID string `json:"episode_id,omitempty"`

	// Shielded lists the IDs shielded by the active episode.
	Shielded []string `json:"shielded,omitempty"`

	// RadialPasses is the number of radial closure passes of the episode.
	RadialPasses int `json:"radial_passes,omitempty"`

	// RadialConverged reports whether radial closure converged.
	RadialConverged bool `json:"radial_converged,omitempty"`
}

// PartReport captures a single part.
type PartReport struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Shielded  bool   `json:"shielded"`
	Decoupled bool   `json:"decoupled,omitempty"`
}

// ShieldedCount returns how many parts in the report are shielded.
func (r *RunReport) ShieldedCount() int {
	n := 0
	for _, p := range r.Parts {
		if p.Shielded {
			n++
		}
	}
	return n
}

// ReportStore manages persistence of a run report to a JSON file.
type ReportStore struct {
	mu   sync.Mutex
	path string
}

// NewReportStore creates a new report store.
func NewReportStore(path string) *ReportStore {
	return &ReportStore{path: path}
}

// Path returns the report file path.
func (s *ReportStore) Path() string {
	return s.path
}

// Save writes the report to disk.
func (s *ReportStore) Save(report *RunReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	report.Version = version.Report
	if report.SavedAt.IsZero() {
		report.SavedAt = time.Now()
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}

// Load reads the report from disk.
// Returns nil, nil if the file doesn't exist. Reports with a different
// major format version are rejected with version.ErrIncompatible.
func (s *ReportStore) Load() (*RunReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	report := &RunReport{}
	if err := json.Unmarshal(data, report); err != nil {
		return nil, err
	}
	if err := version.Check(report.Version, reportFormat); err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}

	return report, nil
}

// Clear removes the report file.
func (s *ReportStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
