// Apsetup configures a WiFi device that is in setup mode.
//
// Running without a command opens the interactive setup console: it asks the
// device for its configuration, scans for networks when the device has none,
// and saves the network, device name and webhook. The subcommands expose the
// same device API for scripting.
//
// Usage:
//
//	apsetup [command] [flags]
//
// See 'apsetup --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/apsetup/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "apsetup",
	Short: "Set up a WiFi device in access point mode",
	Long: `Configure a device that is serving its setup access point.

Join the device's WiFi network (or point --url at it), then run apsetup to
choose the network it should join, name it and set its webhook.

If no command is specified, the interactive console launches.`,
	Version:      version.Version,
	SilenceUsage: true,
	RunE:         runConsole,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentPreRunE = loadSettings

	flags := rootCmd.PersistentFlags()
	flags.String("url", "", "Device base URL (default "+defaultURL+")")
	flags.String("host", "", "Device host or IP address")
	flags.Int("port", 0, "Device HTTP port (default from preferences, 80)")
	flags.Bool("discover", false, "Find the device with mDNS instead of using the setup address")
	flags.Duration("timeout", 0, "Request and discovery timeout (default from preferences)")
	flags.Duration("save-delay", 0, "Wait after saving a configured device before following it")
	flags.String("log-level", "", "Log level (debug, info, warn, error); silent if empty")
	flags.String("log-file", "", "Log file for the console (default apsetup.log in the config directory)")
	flags.String("config", "", "Settings file (default ./apsetup.yaml or the config directory)")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(devicesCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "apsetup %s\n", version.Full())
	},
}
