// Package tui implements the interactive pairing screen.
//
// The screen is a single bubbletea model split into two panels: the left
// panel shows the QR code for the current pairing credential, the right
// panel holds the manual pairing and connection forms plus a rolling
// activity log.
//
// The model is a pure consumer of the controller: key bindings enqueue
// controller requests and return immediately, and a re-armed waitForEvent
// command pumps the controller's event channel back into Update one message
// at a time. This keeps the UI responsive while external commands run and
// preserves the controller's event order.
//
// On startup the screen also kicks off two best-effort helpers: a local
// network probe that pre-fills a suggested device IP, and an mDNS watch
// that fills the pairing form when the phone's pairing dialog starts
// advertising itself.
package tui
