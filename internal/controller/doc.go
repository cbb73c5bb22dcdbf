// Package controller implements the pairing/connection lifecycle state
// machine behind the scrpair UI.
//
// A Controller owns one worker goroutine that executes every external
// bridge-tool call strictly sequentially. The bridge daemon is process-wide
// shared state outside this program's control, so requests are queued and
// run one at a time even when the caller issues several in quick succession.
//
// # Lifecycle
//
//	Uninitialized → CheckingBridge → Idle → Pairing → Idle
//	                                      → Connecting → Idle (connected)
//	                                      → LaunchingMirror → MirrorRunning
//
// Idle is re-entrant: a paired caller may re-pair or connect, a connected
// caller may launch the mirror or reconnect.
//
// # Events
//
// Callers subscribe via Events() and receive BridgeUnavailable, Paired,
// Connected, MirrorStarted, Error and Log values. Every failure is recovered
// at the controller boundary and converted into exactly one Error event;
// nothing propagates into the caller goroutine as a panic. No operation is
// retried automatically - retry is a caller decision.
//
// # Usage
//
//	ctrl := controller.New(controller.Options{})
//	defer ctrl.Stop()
//
//	ctrl.CheckBridge()
//	ctrl.Pair("10.0.0.5", "37123", ctrl.Credential().Password)
//
//	for ev := range ctrl.Events() {
//	    switch ev := ev.(type) {
//	    case controller.Paired:
//	        ctrl.Connect(ev.Host, ev.Port)
//	    case controller.Error:
//	        // display ev.Reason
//	    }
//	}
package controller
