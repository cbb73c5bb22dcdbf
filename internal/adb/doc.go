// Package adb wraps the two external command-line tools this application
// drives: the Android debug bridge ("adb") and the screen mirror ("scrcpy").
//
// The package has three layers:
//
//   - Runner executes a command with a bounded timeout and captures its
//     combined output. It never returns an error from Run; every failure
//     mode (timeout, unlaunchable binary, nonzero exit) is encoded in the
//     returned Result.
//   - Classification functions inspect a Result and decide success or
//     failure per operation. The bridge tool returns exit code zero for
//     some advisory failures, so classification checks the output text in
//     addition to the exit code.
//   - ParseDevices and SelectWireless interpret the `adb devices` table and
//     pick the wireless (TCP) device for a target host.
//
// The text contracts here (success phrases, the devices table layout) are
// narrow and versioned against the platform-tools output format. Each is
// isolated in a single function so a format change needs a single-point
// update, and each is pinned by fixture tests.
package adb
