package adb

import "strings"

// StatusDevice is the status column value for an attached, ready device in
// `adb devices` output. Other values ("offline", "unauthorized", ...) are
// skipped.
const StatusDevice = "device"

// ParseDevices extracts device identifiers from `adb devices` output.
//
// The table is line oriented: the first line is a header ("List of devices
// attached") and each following row is `<identifier>\t<status>`. Only rows
// whose status field equals StatusDevice are kept. The returned order is the
// output order; SelectWireless relies on it as a tie-break, so it is part of
// the contract rather than incidental.
func ParseDevices(out string) []string {
	lines := strings.Split(strings.ReplaceAll(out, "\r\n", "\n"), "\n")

	var serials []string
	for i, line := range lines {
		if i == 0 {
			// Header row.
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 || fields[1] != StatusDevice {
			continue
		}
		serials = append(serials, fields[0])
	}
	return serials
}

// SelectWireless picks the wireless (TCP) device matching targetHost from a
// list of attached device identifiers.
//
// Policy: an identifier beginning with targetHost wins; failing that, any
// identifier carrying the well-known wireless port suffix is accepted. The
// first match in enumeration order wins either way. Returns false when no
// identifier qualifies.
func SelectWireless(serials []string, targetHost string) (string, bool) {
	if targetHost != "" {
		for _, s := range serials {
			if strings.HasPrefix(s, targetHost) {
				return s, true
			}
		}
	}
	for _, s := range serials {
		if strings.Contains(s, ":"+WirelessPort) {
			return s, true
		}
	}
	return "", false
}
