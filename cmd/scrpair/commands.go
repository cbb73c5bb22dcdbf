package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rsandov/scrpair/internal/adb"
	"github.com/rsandov/scrpair/internal/config"
	"github.com/rsandov/scrpair/internal/discovery"
	"github.com/rsandov/scrpair/internal/pairing"
	"github.com/rsandov/scrpair/internal/qr"
	"github.com/rsandov/scrpair/internal/ui"
)

// Command flags
var (
	mirrorHost  string
	scanTimeout int
	pngPath     string
	pngSize     int
	timeoutSecs int
)

func init() {
	rootCmd.PersistentFlags().IntVar(&timeoutSecs, "timeout", 0, "Command timeout in seconds (0 uses the configured default)")

	rootCmd.AddCommand(pairCmd)
	rootCmd.AddCommand(connectCmd)
	rootCmd.AddCommand(devicesCmd)
	rootCmd.AddCommand(mirrorCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(qrCmd)
}

// loadPrefs loads persisted preferences and applies the --timeout override.
func loadPrefs() (*config.Preferences, error) {
	prefs, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}
	if timeoutSecs > 0 {
		prefs.CommandTimeoutSec = timeoutSecs
	}
	return prefs, nil
}

// pairCmd pairs with a device using a pairing code
var pairCmd = &cobra.Command{
	Use:   "pair <host:port> <code>",
	Short: "Pair with a device using a pairing code",
	Long: `Pair with an Android device over Wi-Fi using a six-digit pairing code.

On the phone, open Settings → Developer options → Wireless debugging →
"Pair device with pairing code". The dialog shows the pairing address
(an ephemeral port, not 5555) and the code to pass here.`,
	Example: `  scrpair pair 192.168.1.42:37831 123456`,
	Args:    cobra.ExactArgs(2),
	RunE:    runPair,
}

func runPair(cmd *cobra.Command, args []string) error {
	prefs, err := loadPrefs()
	if err != nil {
		return err
	}
	addr, code := args[0], args[1]

	p := ui.NewPrinter(nil)
	p.PrintHeader("Manual pairing", map[string]string{"Target": addr})

	res := adb.Runner{}.Run(context.Background(), prefs.BridgePath,
		[]string{"pair", addr, code}, prefs.CommandTimeout())
	p.PrintOutput(res.Output)

	if f := adb.ClassifyPair(res); f != nil {
		p.PrintFailure("Pairing failed", f.Reason, []string{
			"Check the pairing code matches the phone's dialog",
			"The pairing port changes every time the dialog opens",
			"Ensure both ends are on the same Wi-Fi network",
		})
		os.Exit(1)
	}

	p.PrintSuccess("Paired", map[string]string{"Device": addr})
	p.Println("Next: scrpair connect <ip>:" + prefs.ConnectPort)
	return nil
}

// connectCmd establishes the adb connection
var connectCmd = &cobra.Command{
	Use:   "connect <host:port>",
	Short: "Connect to a paired device",
	Long: `Connect to a previously paired device.

The connect port is the one shown at the top of the Wireless debugging
screen (commonly 5555), not the ephemeral pairing port.`,
	Example: `  scrpair connect 192.168.1.42:5555`,
	Args:    cobra.ExactArgs(1),
	RunE:    runConnect,
}

func runConnect(cmd *cobra.Command, args []string) error {
	prefs, err := loadPrefs()
	if err != nil {
		return err
	}
	addr := args[0]

	p := ui.NewPrinter(nil)
	p.PrintHeader("Connect", map[string]string{"Target": addr})

	res := adb.Runner{}.Run(context.Background(), prefs.BridgePath,
		[]string{"connect", addr}, prefs.CommandTimeout())
	p.PrintOutput(res.Output)

	if f := adb.ClassifyConnect(res); f != nil {
		p.PrintFailure("Connection failed", f.Reason, []string{
			"Ensure Wireless debugging is still enabled on the phone",
			"Pair first if the device shows as unauthorized",
			"Verify the IP has not changed (phones rotate addresses)",
		})
		os.Exit(1)
	}

	p.PrintSuccess("Connected", map[string]string{"Device": addr})
	return nil
}

// devicesCmd lists ready devices
var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List connected devices",
	RunE:  runDevices,
}

func runDevices(cmd *cobra.Command, args []string) error {
	prefs, err := loadPrefs()
	if err != nil {
		return err
	}

	res := adb.Runner{}.Run(context.Background(), prefs.BridgePath,
		[]string{"devices"}, prefs.CommandTimeout())
	if f := adb.ExecFailure("adb devices", res); f != nil {
		return f
	}

	serials := adb.ParseDevices(res.Output)
	if len(serials) == 0 {
		fmt.Println("No devices in the ready state.")
		return nil
	}
	for _, s := range serials {
		fmt.Println(s)
	}
	return nil
}

// mirrorCmd launches the screen mirror
var mirrorCmd = &cobra.Command{
	Use:   "mirror",
	Short: "Launch the screen mirror for a connected device",
	Long: `Launch scrcpy against a connected wireless device.

The device is selected from 'adb devices': a serial matching --host is
preferred, otherwise the first serial on the well-known wireless port.`,
	Example: `  # Mirror whichever wireless device is connected
  scrpair mirror

  # Prefer a specific device
  scrpair mirror --host 192.168.1.42`,
	RunE: runMirror,
}

func init() {
	mirrorCmd.Flags().StringVar(&mirrorHost, "host", "", "Preferred device IP")
}

func runMirror(cmd *cobra.Command, args []string) error {
	prefs, err := loadPrefs()
	if err != nil {
		return err
	}

	runner := adb.Runner{}
	res := runner.Run(context.Background(), prefs.BridgePath,
		[]string{"devices"}, prefs.CommandTimeout())
	if f := adb.ExecFailure("adb devices", res); f != nil {
		return f
	}

	serials := adb.ParseDevices(res.Output)
	if len(serials) == 0 {
		return fmt.Errorf("no devices connected. Run 'scrpair connect' first")
	}

	serial, ok := adb.SelectWireless(serials, mirrorHost)
	if !ok {
		return fmt.Errorf("no wireless device found among %d device(s). Run 'scrpair connect' first", len(serials))
	}

	mirrorArgs := append([]string{"--stay-awake", "-s", serial}, prefs.MirrorArgs...)
	proc, err := runner.Start(prefs.MirrorPath, mirrorArgs...)
	if err != nil {
		return fmt.Errorf("failed to launch %s: %w (is it installed and in PATH?)", prefs.MirrorPath, err)
	}

	fmt.Printf("Mirror started for %s (pid %d)\n", serial, proc.Pid())
	return nil
}

// discoverCmd scans for wireless-debugging services on the local network
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Discover wireless-debugging devices via mDNS",
	Long: `Scan the local network for Android wireless-debugging services.

Devices with Wireless debugging enabled advertise a connect service; while
the pairing dialog is open they also advertise a pairing service with the
ephemeral pairing port.`,
	Example: `  # Scan for 10 seconds (default)
  scrpair discover

  # Quick 3-second scan
  scrpair discover --scan-timeout 3`,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().IntVar(&scanTimeout, "scan-timeout", 10, "Scan timeout in seconds")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	fmt.Printf("Scanning for wireless-debugging services (timeout: %ds)...\n\n", scanTimeout)

	scanner := discovery.NewScanner()
	scanner.Timeout = time.Duration(scanTimeout) * time.Second

	devices, err := scanner.Scan(context.Background())
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(devices) == 0 {
		fmt.Println("No services found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Enable Wireless debugging in the phone's Developer options")
		fmt.Println("  - Open the pairing dialog to advertise the pairing service")
		fmt.Println("  - Ensure the phone and this machine share the same Wi-Fi")
		fmt.Println("  - Some networks block mDNS; pair manually with 'scrpair pair'")
		return nil
	}

	fmt.Printf("Found %d service(s):\n\n", len(devices))
	for i, dev := range devices {
		fmt.Printf("%d. %s\n", i+1, dev.Instance)
		fmt.Printf("   Kind: %s\n", dev.Kind)
		fmt.Printf("   Addr: %s\n", dev.Addr())
		fmt.Println()
	}

	fmt.Println("Pairing services: scrpair pair <addr> <code>")
	fmt.Println("Connect services: scrpair connect <addr>")
	return nil
}

// qrCmd prints or saves a pairing QR code
var qrCmd = &cobra.Command{
	Use:   "qr",
	Short: "Generate a pairing QR code",
	Long: `Generate a fresh pairing credential and render it as a QR code.

Scan it from the phone's "Pair device with QR code" dialog, then run
'scrpair discover' or check the phone for the connect address.`,
	Example: `  # Print the QR code to the terminal
  scrpair qr

  # Save it as a PNG instead
  scrpair qr --png pairing.png`,
	RunE: runQR,
}

func init() {
	qrCmd.Flags().StringVar(&pngPath, "png", "", "Write the QR code to a PNG file instead of the terminal")
	qrCmd.Flags().IntVar(&pngSize, "png-size", qr.DefaultPNGSize, "PNG edge length in pixels")
}

func runQR(cmd *cobra.Command, args []string) error {
	cred := pairing.Generate()
	payload := cred.QRPayload()

	if pngPath != "" {
		data, err := qr.PNG(payload, pngSize)
		if err != nil {
			return fmt.Errorf("failed to render QR code: %w", err)
		}
		if err := os.WriteFile(pngPath, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", pngPath, err)
		}
		fmt.Printf("Wrote %s\n", pngPath)
	} else {
		art, err := qr.Terminal(payload)
		if err != nil {
			return fmt.Errorf("failed to render QR code: %w", err)
		}
		fmt.Print(art)
	}

	fmt.Printf("\nPayload: %s\n", payload)
	fmt.Println(cred.PairHint())
	return nil
}
