package log

import "time"

// Event represents a shielding trace event.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// EpisodeID identifies the shielding episode (UUID). Empty for events
	// logged before an episode started.
	EpisodeID string `cbor:"2,keyasint,omitempty"`

	// VesselID identifies the vessel the fairing belongs to.
	VesselID string `cbor:"3,keyasint,omitempty"`

	// FairingID is the ID of the part carrying the fairing module.
	FairingID string `cbor:"4,keyasint,omitempty"`

	// Category classifies the event type.
	Category Category `cbor:"5,keyasint"`

	// Type-specific payload (one of these will be set).
	StateChange *StateChangeEvent `cbor:"10,keyasint,omitempty"`
	Shield      *ShieldEvent      `cbor:"11,keyasint,omitempty"`
	Expose      *ExposeEvent      `cbor:"12,keyasint,omitempty"`
	Diagnostic  *DiagnosticEvent  `cbor:"13,keyasint,omitempty"`
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryState indicates a controller state change.
	CategoryState Category = 0
	// CategoryShield indicates a part was shielded.
	CategoryShield Category = 1
	// CategoryExpose indicates the payload was exposed.
	CategoryExpose Category = 2
	// CategoryDiagnostic indicates a diagnostic line.
	CategoryDiagnostic Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryState:
		return "STATE"
	case CategoryShield:
		return "SHIELD"
	case CategoryExpose:
		return "EXPOSE"
	case CategoryDiagnostic:
		return "DIAGNOSTIC"
	default:
		return "UNKNOWN"
	}
}

// StateChangeEvent captures a controller state transition.
type StateChangeEvent struct {
	// OldState is the previous state.
	OldState string `cbor:"1,keyasint"`

	// NewState is the new state.
	NewState string `cbor:"2,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"3,keyasint,omitempty"`
}

// ShieldKind tells how a part was reached.
type ShieldKind uint8

const (
	// ShieldPayload is a payload part found on a payload node.
	ShieldPayload ShieldKind = 0
	// ShieldNode is a part reached through a node attachment.
	ShieldNode ShieldKind = 1
	// ShieldRadial is a part reached through a surface attachment.
	ShieldRadial ShieldKind = 2
)

// String returns the shield kind name.
func (k ShieldKind) String() string {
	switch k {
	case ShieldPayload:
		return "PAYLOAD"
	case ShieldNode:
		return "NODE"
	case ShieldRadial:
		return "RADIAL"
	default:
		return "UNKNOWN"
	}
}

// ShieldEvent records a part joining the shielded set.
type ShieldEvent struct {
	// PartID is the shielded part.
	PartID string `cbor:"1,keyasint"`

	// PartName is the shielded part's type name.
	PartName string `cbor:"2,keyasint,omitempty"`

	// ViaID is the part it was reached from (empty for payload roots).
	ViaID string `cbor:"3,keyasint,omitempty"`

	// Kind tells how the part was reached.
	Kind ShieldKind `cbor:"4,keyasint"`
}

// ExposeReason tells why an episode ended.
type ExposeReason uint8

const (
	// ExposeDecoupled means the fairing's decoupler fired.
	ExposeDecoupled ExposeReason = 0
	// ExposeDestroyed means the fairing module was torn down.
	ExposeDestroyed ExposeReason = 1
)

// String returns the reason name.
func (r ExposeReason) String() string {
	switch r {
	case ExposeDecoupled:
		return "DECOUPLED"
	case ExposeDestroyed:
		return "DESTROYED"
	default:
		return "UNKNOWN"
	}
}

// ExposeEvent records the end of a shielding episode.
type ExposeEvent struct {
	// Reason tells why the payload was exposed.
	Reason ExposeReason `cbor:"1,keyasint"`

	// Restored is the number of parts whose flag was reset.
	Restored int `cbor:"2,keyasint"`

	// Stale is the number of recorded parts that no longer existed.
	Stale int `cbor:"3,keyasint,omitempty"`
}

// Severity is the level of a diagnostic line.
type Severity uint8

const (
	// SeverityInfo is an informational line.
	SeverityInfo Severity = 0
	// SeverityWarning is a benign abnormal condition.
	SeverityWarning Severity = 1
	// SeverityError is a configuration problem.
	SeverityError Severity = 2
)

// String returns the severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// DiagnosticEvent captures a diagnostic line.
type DiagnosticEvent struct {
	// Severity of the line.
	Severity Severity `cbor:"1,keyasint"`

	// Message is the diagnostic text.
	Message string `cbor:"2,keyasint"`

	// Node is the attach node label involved, if any.
	Node string `cbor:"3,keyasint,omitempty"`

	// PartID is the part involved, if any.
	PartID string `cbor:"4,keyasint,omitempty"`
}
