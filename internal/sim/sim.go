// Package sim drives fairing controllers over a vessel loaded from a craft
// file. It stands in for the host game loop in fairing-sim and in tests.
package sim

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/kwcargobay/fairing-go/pkg/fairing"
	"github.com/kwcargobay/fairing-go/pkg/log"
	"github.com/kwcargobay/fairing-go/pkg/persistence"
	"github.com/kwcargobay/fairing-go/pkg/vessel"
)

// ErrNoVessel is returned when no craft is given.
var ErrNoVessel = errors.New("no vessel")

// Options configures a Simulator.
type Options struct {
	// Config is the base fairing configuration. Per-part fairing blocks in
	// the craft file are merged on top of it.
	Config fairing.Config

	// Logger receives operational logs. Nil disables logging.
	Logger *slog.Logger

	// Trace receives trace events from every controller. Nil disables it.
	Trace log.Logger
}

// DefaultOptions returns options with the default fairing configuration.
func DefaultOptions() Options {
	return Options{Config: fairing.DefaultConfig()}
}

// Simulator owns a vessel and the fairing controllers on it.
type Simulator struct {
	vessel   *vessel.Vessel
	fairings []*fairing.Controller
	byPart   map[string]*fairing.Controller
	logger   *slog.Logger
	started  bool
}

// Load reads a craft file and creates a simulator for it.
func Load(path string, opts Options) (*Simulator, error) {
	craft, err := vessel.LoadCraft(path)
	if err != nil {
		return nil, err
	}
	return New(craft, opts)
}

// New builds the craft and creates a controller for every part that
// carries a fairing block.
func New(craft *vessel.Craft, opts Options) (*Simulator, error) {
	if craft == nil {
		return nil, ErrNoVessel
	}
	v, err := craft.Build()
	if err != nil {
		return nil, err
	}

	s := &Simulator{
		vessel: v,
		byPart: make(map[string]*fairing.Controller),
		logger: opts.Logger,
	}

	for _, cp := range craft.Parts {
		if cp.Fairing == nil {
			continue
		}
		cfg, err := fairing.Merge(opts.Config, cp.Fairing)
		if err != nil {
			return nil, fmt.Errorf("part %s: %w", cp.ID, err)
		}
		c, err := fairing.NewController(v.Part(cp.ID), v, cfg)
		if err != nil {
			return nil, fmt.Errorf("part %s: %w", cp.ID, err)
		}
		c.SetLogger(opts.Logger)
		c.SetTraceLogger(opts.Trace)
		s.fairings = append(s.fairings, c)
		s.byPart[cp.ID] = c

		// Tearing down the part tears down its module.
		v.OnDestroyed(cp.ID, c.Destroy)
	}

	if s.logger != nil {
		s.logger.Info("vessel loaded",
			slog.String("vessel", v.ID()),
			slog.Int("parts", v.PartCount()),
			slog.Int("fairings", len(s.fairings)))
	}
	return s, nil
}

// Vessel returns the simulated vessel.
func (s *Simulator) Vessel() *vessel.Vessel {
	return s.vessel
}

// Controllers returns the fairing controllers in craft order.
func (s *Simulator) Controllers() []*fairing.Controller {
	result := make([]*fairing.Controller, len(s.fairings))
	copy(result, s.fairings)
	return result
}

// Controller returns the controller of the given fairing part, or nil.
func (s *Simulator) Controller(partID string) *fairing.Controller {
	return s.byPart[partID]
}

// StartAll initialises every controller in craft order. It is the
// equivalent of the host's vessel-initialised event and runs once.
func (s *Simulator) StartAll() error {
	if s.started {
		return nil
	}
	s.started = true

	var errs []error
	for _, c := range s.fairings {
		if err := c.Start(); err != nil {
			errs = append(errs, fmt.Errorf("fairing %s: %w", c.Part().ID(), err))
		}
	}
	return errors.Join(errs...)
}

// Decouple fires the decoupler of the given part.
func (s *Simulator) Decouple(partID string) error {
	if s.logger != nil {
		s.logger.Info("decouple", slog.String("part", partID))
	}
	return s.vessel.Decouple(partID, "")
}

// DestroyPart removes a part from the vessel. Destroying a fairing part
// destroys its controller.
func (s *Simulator) DestroyPart(partID string) error {
	if s.logger != nil {
		s.logger.Info("destroy", slog.String("part", partID))
	}
	return s.vessel.DestroyPart(partID)
}

// Close destroys every controller, exposing any active episode.
func (s *Simulator) Close() {
	for _, c := range s.fairings {
		c.Destroy()
	}
}

// Report snapshots the vessel and its controllers.
func (s *Simulator) Report() *persistence.RunReport {
	r := &persistence.RunReport{
		VesselID:   s.vessel.ID(),
		VesselName: s.vessel.Name(),
	}
	for _, c := range s.fairings {
		res := c.RadialResult()
		r.Fairings = append(r.Fairings, persistence.FairingReport{
			PartID:          c.Part().ID(),
			PartName:        c.Part().Name(),
			State:           c.State().String(),
			EpisodeID:       c.EpisodeID(),
			Shielded:        c.ShieldedParts(),
			RadialPasses:    res.Passes,
			RadialConverged: res.Converged,
		})
	}
	for _, p := range s.vessel.Parts() {
		r.Parts = append(r.Parts, persistence.PartReport{
			ID:        p.ID(),
			Name:      p.Name(),
			Shielded:  p.Shielded(),
			Decoupled: p.Decoupled(),
		})
	}
	return r
}
