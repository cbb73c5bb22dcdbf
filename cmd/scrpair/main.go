// Scrpair pairs a desktop with an Android phone over Wi-Fi and mirrors its
// screen.
//
// It drives the adb wireless-debugging workflow (QR pairing, pairing codes,
// connect) and launches scrcpy against the connected device. No USB cable is
// required once Wireless debugging is enabled on the phone.
//
// Usage:
//
//	scrpair [command] [flags]
//
// Running without arguments launches the interactive pairing screen.
// See 'scrpair --help' for the direct subcommands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rsandov/scrpair/internal/config"
	"github.com/rsandov/scrpair/internal/controller"
	"github.com/rsandov/scrpair/internal/logging"
	"github.com/rsandov/scrpair/internal/tui"
	"github.com/rsandov/scrpair/internal/version"
)

func main() {
	if err := logging.InitializeFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "scrpair",
	Short: "Wireless ADB pairing and screen mirroring",
	Long: `Pair with an Android phone over Wi-Fi and mirror its screen.

Scan the QR code from the phone's Wireless debugging screen, or pair
manually with a pairing code, then connect and launch the scrcpy mirror.

If no command is specified, the interactive pairing screen launches.`,
	Version: version.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("scrpair %s (commit: %s)\n", version.Version, version.Commit)
	},
}

func runInteractive(cmd *cobra.Command, args []string) error {
	prefs, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load preferences: %w", err)
	}

	ctrl := controller.New(controller.Options{
		BridgeCommand: prefs.BridgePath,
		MirrorCommand: prefs.MirrorPath,
		MirrorArgs:    prefs.MirrorArgs,
		Timeout:       prefs.CommandTimeout(),
	})
	defer ctrl.Stop()

	if err := tui.Run(ctrl, prefs); err != nil {
		return fmt.Errorf("ui error: %w", err)
	}
	return nil
}
