package controller

import "github.com/rsandov/scrpair/internal/adb"

// Event is a lifecycle notification delivered asynchronously from the
// controller goroutine to the caller. The set of events is sealed; callers
// type-switch on the concrete types below.
//
// Delivery preserves emission order. Exactly one Error event is emitted per
// failed operation, and every reason string is non-empty and
// operation-specific.
type Event interface {
	event()
}

// BridgeUnavailable reports that the bridge tool could not be verified.
// Until a later CheckBridge succeeds, pair and connect requests are rejected
// with guard errors.
type BridgeUnavailable struct {
	Reason string
}

// Paired reports a successful pairing. Port is the well-known wireless data
// port, not the ephemeral pairing port, so the caller can pre-fill a
// follow-up connect request.
type Paired struct {
	Host string
	Port string
}

// Connected reports an established data-plane connection. Mirror launch is
// enabled from this point on.
type Connected struct {
	Host string
	Port string
}

// MirrorStarted reports that the mirror process was launched against the
// selected device identifier.
type MirrorStarted struct {
	Serial string
}

// Error reports a failed operation. Op names the operation ("check", "pair",
// "connect", "mirror") and Kind classifies the failure for diagnostics.
type Error struct {
	Op     string
	Kind   adb.FailureKind
	Reason string
}

// Log carries free-form progress text, typically the raw output of the
// external tool, for the caller to display.
type Log struct {
	Text string
}

func (BridgeUnavailable) event() {}
func (Paired) event()            {}
func (Connected) event()         {}
func (MirrorStarted) event()     {}
func (Error) event()             {}
func (Log) event()               {}
