// Apsetup-sim serves the setup API of a simulated device.
//
// It answers /browse.json, /config.json and /save like a device in setup
// mode, so the apsetup console can be tried and tested without hardware.
//
// Usage:
//
//	apsetup-sim [flags]
//
// See 'apsetup-sim --help' for available options.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/muurk/apsetup/internal/simulator"
	"github.com/muurk/apsetup/internal/state"
	"github.com/muurk/apsetup/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var (
	host       string
	port       int
	logLevel   string
	configured bool
	deviceName string
	webhook    string
	networks   []string
	scanDelay  time.Duration
	advertise  bool
)

var rootCmd = &cobra.Command{
	Use:   "apsetup-sim",
	Short: "Simulated device in setup mode",
	Long: `Serve the HTTP setup API of a device in access point mode.

The simulator validates saves the way a device does and answers a refused save
with HTTP 422 and a plain-text reason, for example a wrong passkey for a
network given with --network ssid:encryption:passkey.

Point the console at it with 'apsetup --url http://localhost:8080'.`,
	Example: `  # Device waiting for a network, with the default scan result
  apsetup-sim

  # Custom networks; "home" only accepts the given passkey
  apsetup-sim --network home:4:correct-horse --network cafe:7

  # A device that has joined a network, announced over mDNS
  apsetup-sim --configured --name kitchen --webhook http://hooks.local/k --advertise`,
	Version:      version.Version,
	SilenceUsage: true,
	RunE:         runSimulator,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.Flags().StringVar(&host, "host", "", "Listen address (empty = all interfaces)")
	rootCmd.Flags().IntVar(&port, "port", 8080, "Listen port")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.Flags().BoolVar(&configured, "configured", false, "Report that the device has joined a network")
	rootCmd.Flags().StringVar(&deviceName, "name", "", "Device name reported by /config.json")
	rootCmd.Flags().StringVar(&webhook, "webhook", "", "Webhook reported by /config.json")
	rootCmd.Flags().StringArrayVar(&networks, "network", nil, "Network as ssid:encryption[:passkey] (repeatable; encryption 7 is open)")
	rootCmd.Flags().DurationVar(&scanDelay, "scan-delay", 2*time.Second, "Time /browse.json takes to answer")
	rootCmd.Flags().BoolVar(&advertise, "advertise", false, "Announce the simulator over mDNS")

	rootCmd.AddCommand(versionCmd)
}

func runSimulator(cmd *cobra.Command, args []string) error {
	aps, passkeys, err := parseNetworks(networks)
	if err != nil {
		return err
	}

	config := &simulator.Config{
		Host:       host,
		Port:       port,
		LogLevel:   logLevel,
		Configured: configured,
		DeviceName: deviceName,
		Webhook:    webhook,
		APs:        aps,
		Passkeys:   passkeys,
		ScanDelay:  scanDelay,
		Advertise:  advertise,
	}

	srv, err := simulator.New(config)
	if err != nil {
		return fmt.Errorf("failed to create simulator: %w", err)
	}

	return srv.Start()
}

// parseNetworks turns --network values into a scan result and the passkeys
// each network accepts. No values yields nil, the simulator's default list.
func parseNetworks(values []string) ([]state.AccessPoint, map[string]string, error) {
	if len(values) == 0 {
		return nil, nil, nil
	}

	aps := make([]state.AccessPoint, 0, len(values))
	passkeys := make(map[string]string)
	for _, value := range values {
		parts := strings.SplitN(value, ":", 3)
		if len(parts) < 2 || parts[0] == "" {
			return nil, nil, fmt.Errorf("invalid --network %q: want ssid:encryption[:passkey]", value)
		}
		encryption, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, nil, fmt.Errorf("invalid encryption in --network %q: %w", value, err)
		}
		aps = append(aps, state.AccessPoint{SSID: parts[0], Encryption: encryption})
		if len(parts) == 3 {
			if encryption == state.EncryptionOpen {
				return nil, nil, fmt.Errorf("--network %q: open networks take no passkey", value)
			}
			passkeys[parts[0]] = parts[2]
		}
	}
	return aps, passkeys, nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("apsetup-sim %s\n", version.Full())
	},
}
