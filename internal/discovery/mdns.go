package discovery

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
)

const (
	// PairingService is the mDNS service type advertised by the
	// wireless-debugging pairing dialog.
	PairingService = "_adb-tls-pairing._tcp"

	// ConnectService is the mDNS service type advertised while wireless
	// debugging is enabled.
	ConnectService = "_adb-tls-connect._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default timeout for endpoint discovery
	DefaultScanTimeout = 10 * time.Second
)

// Scanner handles mDNS discovery of wireless-debugging endpoints. Discovery
// is a best-effort convenience for pre-filling addresses; pairing and
// connecting work without it.
type Scanner struct {
	// Timeout is the maximum time to wait for advertisements
	Timeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
	}
}

// Scan browses both wireless-debugging services until the timeout elapses
// and returns every endpoint seen, in discovery order.
func (s *Scanner) Scan(ctx context.Context) ([]*Device, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	var (
		mu      sync.Mutex
		devices []*Device
	)

	services := []struct {
		name string
		kind ServiceKind
	}{
		{PairingService, KindPairing},
		{ConnectService, KindConnect},
	}

	for _, svc := range services {
		resolver, err := zeroconf.NewResolver(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
		}

		entries := make(chan *zeroconf.ServiceEntry)
		kind := svc.kind
		go func() {
			for entry := range entries {
				if device := parseServiceEntry(entry, kind); device != nil {
					mu.Lock()
					devices = append(devices, device)
					mu.Unlock()
				}
			}
		}()

		if err := resolver.Browse(ctx, svc.name, ServiceDomain, entries); err != nil {
			return nil, fmt.Errorf("failed to browse for %s services: %w", svc.name, err)
		}
	}

	<-ctx.Done()

	mu.Lock()
	defer mu.Unlock()
	return devices, nil
}

// WaitForPairing blocks until a pairing service is advertised or the timeout
// elapses. Used to auto-fill the pairing address while the user has the QR
// dialog open on the device.
func (s *Scanner) WaitForPairing(ctx context.Context) (*Device, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry)
	deviceChan := make(chan *Device, 1)

	go func() {
		for entry := range entries {
			if device := parseServiceEntry(entry, KindPairing); device != nil {
				select {
				case deviceChan <- device:
				default:
				}
				cancel()
				return
			}
		}
	}()

	if err := resolver.Browse(ctx, PairingService, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for %s services: %w", PairingService, err)
	}

	select {
	case device := <-deviceChan:
		return device, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("no pairing service advertised within timeout")
	}
}

// parseServiceEntry converts a zeroconf service entry to a Device.
// Returns nil if the entry carries no IPv4 address or no usable port.
func parseServiceEntry(entry *zeroconf.ServiceEntry, kind ServiceKind) *Device {
	if entry == nil || len(entry.AddrIPv4) == 0 {
		return nil
	}
	if entry.Port <= 0 {
		return nil
	}

	return &Device{
		Instance:     entry.Instance,
		Hostname:     entry.HostName,
		IP:           entry.AddrIPv4[0].String(),
		Port:         entry.Port,
		Kind:         kind,
		DiscoveredAt: time.Now(),
	}
}
