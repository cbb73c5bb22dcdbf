package discovery

import (
	"fmt"
	"time"
)

// ServiceKind distinguishes the two mDNS services an Android device
// advertises while its wireless-debugging screen is open.
type ServiceKind string

const (
	// KindPairing is advertised while the "pair with QR code / pairing
	// code" dialog is visible. Its port is the ephemeral pairing port.
	KindPairing ServiceKind = "pairing"

	// KindConnect is advertised whenever wireless debugging is enabled.
	// Its port is the data-plane connect port.
	KindConnect ServiceKind = "connect"
)

// Device is a wireless-debugging endpoint discovered on the local network.
type Device struct {
	// Instance is the mDNS instance name (e.g., "adb-R58M123ABC-Vqy3tw").
	Instance string

	// Hostname is the mDNS hostname (e.g., "Android.local.").
	Hostname string

	// IP is the IPv4 address.
	IP string

	// Port is the advertised pairing or connect port.
	Port int

	// Kind tells which service the endpoint came from.
	Kind ServiceKind

	// DiscoveredAt is when the advertisement was received.
	DiscoveredAt time.Time
}

// String returns a human-readable representation of the endpoint.
func (d *Device) String() string {
	return fmt.Sprintf("%s service %s at %s:%d", d.Kind, d.Instance, d.IP, d.Port)
}

// Addr returns the host:port string the bridge tool expects.
func (d *Device) Addr() string {
	return fmt.Sprintf("%s:%d", d.IP, d.Port)
}
