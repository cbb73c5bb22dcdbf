// Package discovery provides mDNS-based discovery of Android
// wireless-debugging endpoints.
//
// While a device's wireless-debugging screen is open it advertises two
// DNS-SD services on the local network:
//
//   - "_adb-tls-pairing._tcp" while the pairing dialog is visible, carrying
//     the ephemeral pairing port
//   - "_adb-tls-connect._tcp" whenever wireless debugging is enabled,
//     carrying the data-plane connect port
//
// Browsing these lets the application pre-fill the pairing address instead
// of making the user copy it off the phone screen. Discovery is strictly a
// convenience: pairing and connecting work with manually entered addresses
// when mDNS is unavailable (blocked multicast, different network segment).
//
// # Usage
//
//	scanner := discovery.NewScanner()
//	devices, err := scanner.Scan(ctx)
//	if err != nil {
//	    return err
//	}
//	for _, d := range devices {
//	    fmt.Printf("%s endpoint at %s\n", d.Kind, d.Addr())
//	}
//
// # Network Requirements
//
//   - Multicast support on the network interface
//   - Device and desktop on the same local network segment
//   - Firewall allowing mDNS (UDP port 5353)
package discovery
