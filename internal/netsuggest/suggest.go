// Package netsuggest guesses useful default addresses for the pairing form.
// Everything here is best effort; a wrong or missing suggestion only costs
// the user some typing.
package netsuggest

import (
	"fmt"
	"net"
	"strings"
)

// probeAddr is the address used to learn the outbound interface. Connecting
// a UDP socket sends no packets; the address does not have to be reachable.
const probeAddr = "8.8.8.8:80"

// deviceOctet replaces the last octet of the local address when guessing
// the phone's address on the same subnet.
const deviceOctet = "102"

// LocalIP returns the IPv4 address of the primary outbound interface.
func LocalIP() (string, error) {
	conn, err := net.Dial("udp4", probeAddr)
	if err != nil {
		return "", fmt.Errorf("probe local address: %w", err)
	}
	defer conn.Close()

	addr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok || addr.IP == nil {
		return "", fmt.Errorf("probe local address: unexpected local address %v", conn.LocalAddr())
	}
	return addr.IP.String(), nil
}

// SuggestPeer guesses a device address on the same /24 as localIP by
// swapping in a common last octet. Returns "" when localIP is not a dotted
// IPv4 address.
func SuggestPeer(localIP string) string {
	ip := net.ParseIP(localIP)
	if ip == nil || ip.To4() == nil {
		return ""
	}
	parts := strings.Split(ip.To4().String(), ".")
	if len(parts) != 4 {
		return ""
	}
	parts[3] = deviceOctet
	return strings.Join(parts, ".")
}

// Suggest combines LocalIP and SuggestPeer. It returns the local address and
// the guessed peer address, or an error when the probe fails.
func Suggest() (local, peer string, err error) {
	local, err = LocalIP()
	if err != nil {
		return "", "", err
	}
	return local, SuggestPeer(local), nil
}
