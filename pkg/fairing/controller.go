package fairing

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kwcargobay/fairing-go/pkg/log"
	"github.com/kwcargobay/fairing-go/pkg/shield"
	"github.com/kwcargobay/fairing-go/pkg/vessel"
)

// Controller errors.
var (
	ErrAlreadyStarted = errors.New("fairing controller already started")
	ErrDestroyed      = errors.New("fairing controller destroyed")
	ErrNoPart         = errors.New("fairing part is required")
	ErrNoHost         = errors.New("fairing host is required")
)

// State is the controller lifecycle state.
type State uint8

const (
	// StateIdle means nothing is shielded by this controller.
	StateIdle State = iota

	// StateShielding means an episode is active.
	StateShielding
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateShielding:
		return "SHIELDING"
	default:
		return "UNKNOWN"
	}
}

// Controller manages the shielding episode of one fairing part.
// It is not safe for concurrent use; all calls come from the host's
// update loop.
type Controller struct {
	part *vessel.Part
	host Host
	cfg  Config

	state     State
	started   bool
	destroyed bool

	episodeID string
	prop      *shield.Propagator
	radial    shield.RadialResult
	cancel    func()

	logger        *slog.Logger
	trace         log.Logger
	vesselID      string
	onStateChange func(oldState, newState State)
}

// NewController creates an idle controller for the fairing part.
func NewController(part *vessel.Part, host Host, cfg Config) (*Controller, error) {
	if part == nil {
		return nil, ErrNoPart
	}
	if host == nil {
		return nil, ErrNoHost
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Controller{
		part:  part,
		host:  host,
		cfg:   cfg,
		trace: log.NoopLogger{},
	}
	if v, ok := host.(interface{ ID() string }); ok {
		c.vesselID = v.ID()
	}
	return c, nil
}

// SetLogger sets the operational logger. Nil disables it.
func (c *Controller) SetLogger(logger *slog.Logger) {
	c.logger = logger
}

// SetTraceLogger sets the event trace logger. Nil disables tracing.
func (c *Controller) SetTraceLogger(logger log.Logger) {
	if logger == nil {
		logger = log.NoopLogger{}
	}
	c.trace = logger
}

// OnStateChange sets a callback for state changes.
func (c *Controller) OnStateChange(fn func(oldState, newState State)) {
	c.onStateChange = fn
}

// Part returns the fairing part.
func (c *Controller) Part() *vessel.Part {
	return c.part
}

// Config returns the controller configuration.
func (c *Controller) Config() Config {
	return c.cfg
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// IsShielding returns true while an episode is active.
func (c *Controller) IsShielding() bool {
	return c.state == StateShielding
}

// EpisodeID returns the ID of the current or last episode, or "".
func (c *Controller) EpisodeID() string {
	return c.episodeID
}

// ShieldedParts returns the IDs of the parts shielded by the current
// episode, in the order they were shielded.
func (c *Controller) ShieldedParts() []string {
	if c.prop == nil {
		return nil
	}
	return c.prop.Shielded().IDs()
}

// RadialResult returns the radial closure summary of the last episode.
func (c *Controller) RadialResult() shield.RadialResult {
	return c.radial
}

// Start runs the initialisation scan. Configuration problems are reported
// as diagnostics and leave the controller idle; the returned error is only
// set when the controller cannot start at all.
func (c *Controller) Start() error {
	if c.destroyed {
		return ErrDestroyed
	}
	if c.started {
		return ErrAlreadyStarted
	}
	c.started = true

	c.info("initialising fairing on "+c.part.String(), "", "")

	node := c.part.FindAttachNode(c.cfg.DecouplerNode)
	if node == nil {
		c.errorf(c.cfg.DecouplerNode, "", "could not find decoupler node %q", c.cfg.DecouplerNode)
		return nil
	}
	decoupler := node.Attached()
	if decoupler == nil {
		c.warnf(c.cfg.DecouplerNode, "", "nothing attached to decoupler node %q", c.cfg.DecouplerNode)
		return nil
	}
	c.info("found decoupler "+decoupler.String(), c.cfg.DecouplerNode, decoupler.ID())

	prop := shield.NewPropagator(shield.NewExemptSet(c.cfg.ExemptParts...))
	prop.Block(c.part)
	prop.Block(decoupler)

	base := decoupler
	if c.cfg.PreNode != "" {
		pre := decoupler.FindAttachNode(c.cfg.PreNode)
		if pre == nil || pre.Attached() == nil {
			c.errorf(c.cfg.PreNode, decoupler.ID(), "could not find structure part on node %q", c.cfg.PreNode)
			return nil
		}
		base = pre.Attached()
		prop.Block(base)
		c.info("found structure part "+base.String(), c.cfg.PreNode, base.ID())
	}

	prop.OnShield(c.recordShield)

	found := 0
	for _, label := range c.payloadGroups() {
		nodes := base.FindAttachNodes(label)
		if len(nodes) == 0 {
			c.errorf(label, base.ID(), "could not find payload node %q on %s", label, base)
			continue
		}
		found++
		if c.episodeID == "" {
			c.episodeID = uuid.NewString()
		}
		for _, n := range nodes {
			payload := n.Attached()
			if payload == nil {
				continue
			}
			if payload.Shielded() {
				c.info("skipping already shielded "+payload.String(), label, payload.ID())
				continue
			}
			added := prop.Propagate(payload)
			c.info(fmt.Sprintf("shielded %d part(s) from payload %s", added, payload), label, payload.ID())
		}
	}
	if found == 0 {
		return nil
	}

	c.prop = prop
	c.radial = prop.CloseRadial(c.host.Parts(), c.cfg.MaxRadialIterations)
	if !c.radial.Converged {
		c.warnf("", "", "radial closure stopped after %d passes without converging", c.radial.Passes)
	}
	c.info(fmt.Sprintf("radial closure added %d part(s) in %d pass(es)", c.radial.Added, c.radial.Passes), "", "")

	c.cancel = c.host.OnDecoupled(c.part.ID(), c.HandleDecoupled)
	c.setState(StateShielding, "payload shielded")
	c.info(fmt.Sprintf("shielding %d part(s)", prop.Shielded().Len()), "", "")

	// A decoupler that fired before Start will never notify again.
	if c.part.Decoupled() {
		c.warnf(c.cfg.DecouplerNode, c.part.ID(), "decoupler already fired on %s", c.part)
		c.HandleDecoupled()
	}
	return nil
}

// HandleDecoupled exposes the payload because the decoupler fired.
func (c *Controller) HandleDecoupled() {
	c.expose(log.ExposeDecoupled)
}

// Destroy exposes the payload because the module is being torn down.
// The controller cannot be started afterwards.
func (c *Controller) Destroy() {
	c.expose(log.ExposeDestroyed)
	c.destroyed = true
}

func (c *Controller) expose(reason log.ExposeReason) {
	if c.state != StateShielding {
		return
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}

	restored, stale := 0, 0
	for _, p := range c.prop.Shielded().Parts() {
		if !p.Alive() {
			stale++
			continue
		}
		p.SetShielded(false)
		restored++
	}
	c.prop = nil

	c.logTrace(log.Event{
		Category: log.CategoryExpose,
		Expose:   &log.ExposeEvent{Reason: reason, Restored: restored, Stale: stale},
	})
	c.info(fmt.Sprintf("exposed payload (%s): restored %d, stale %d", reason, restored, stale), "", "")
	c.setState(StateIdle, "payload exposed: "+reason.String())
}

func (c *Controller) payloadGroups() []string {
	groups := []string{c.cfg.PayloadNode}
	if c.cfg.SecondaryPayloadNode != "" {
		groups = append(groups, c.cfg.SecondaryPayloadNode)
	}
	return groups
}

func (c *Controller) recordShield(part, via *vessel.Part, radial bool) {
	ev := &log.ShieldEvent{PartID: part.ID(), PartName: part.Name(), Kind: log.ShieldNode}
	switch {
	case radial && via != nil && via.SurfaceParent() == part, radial && part.SurfaceParent() == via:
		ev.Kind = log.ShieldRadial
	case via == nil:
		ev.Kind = log.ShieldPayload
	}
	if via != nil {
		ev.ViaID = via.ID()
	}
	c.logTrace(log.Event{Category: log.CategoryShield, Shield: ev})

	if c.logger != nil {
		c.logger.Debug("shielded part",
			slog.String("fairing", c.part.ID()),
			slog.String("part", part.ID()),
			slog.String("name", part.Name()),
			slog.String("kind", ev.Kind.String()))
	}
}

func (c *Controller) setState(newState State, reason string) {
	oldState := c.state
	if oldState == newState {
		return
	}
	c.state = newState

	c.logTrace(log.Event{
		Category: log.CategoryState,
		StateChange: &log.StateChangeEvent{
			OldState: oldState.String(),
			NewState: newState.String(),
			Reason:   reason,
		},
	})
	if c.onStateChange != nil {
		c.onStateChange(oldState, newState)
	}
}

func (c *Controller) logTrace(ev log.Event) {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}
	ev.EpisodeID = c.episodeID
	ev.VesselID = c.vesselID
	ev.FairingID = c.part.ID()
	c.trace.Log(ev)
}

func (c *Controller) info(msg, node, partID string) {
	if !c.cfg.EnableLogging {
		return
	}
	c.diagnose(log.SeverityInfo, msg, node, partID)
}

func (c *Controller) warnf(node, partID, format string, args ...any) {
	c.diagnose(log.SeverityWarning, fmt.Sprintf(format, args...), node, partID)
}

func (c *Controller) errorf(node, partID, format string, args ...any) {
	c.diagnose(log.SeverityError, fmt.Sprintf(format, args...), node, partID)
}

func (c *Controller) diagnose(sev log.Severity, msg, node, partID string) {
	if c.logger != nil {
		attrs := []any{slog.String("fairing", c.part.ID())}
		if node != "" {
			attrs = append(attrs, slog.String("node", node))
		}
		if partID != "" {
			attrs = append(attrs, slog.String("part", partID))
		}
		switch sev {
		case log.SeverityError:
			c.logger.Error(msg, attrs...)
		case log.SeverityWarning:
			c.logger.Warn(msg, attrs...)
		default:
			c.logger.Info(msg, attrs...)
		}
	}
	c.logTrace(log.Event{
		Category:   log.CategoryDiagnostic,
		Diagnostic: &log.DiagnosticEvent{Severity: sev, Message: msg, Node: node, PartID: partID},
	})
}
