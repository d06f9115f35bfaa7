package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/muurk/apsetup/internal/config"
	"github.com/muurk/apsetup/internal/discovery"
	"github.com/muurk/apsetup/internal/gateway"
	"github.com/muurk/apsetup/internal/ui"
)

func init() {
	showCmd.Flags().String("format", "detailed", "Output format (detailed, json)")
	browseCmd.Flags().String("format", "detailed", "Output format (detailed, json)")

	devicesCmd.AddCommand(devicesForgetCmd)
	devicesForgetCmd.Flags().Bool("yes", false, "Do not ask for confirmation")
}

// hints splits a troubleshooting hint into the bullet points shown in a
// failure box.
func hints(err error) []string {
	var tips []string
	for _, line := range strings.Split(gateway.GetTroubleshootingHint(err), "\n") {
		if tip, ok := strings.CutPrefix(strings.TrimSpace(line), "• "); ok {
			tips = append(tips, tip)
		}
	}
	if len(tips) == 0 {
		tips = []string{gateway.GetTroubleshootingHint(err)}
	}
	return tips
}

// scanCmd discovers devices on the network
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Find devices in setup mode with mDNS",
	Long: `Listen for mDNS announcements from devices serving the setup API.

Devices advertise an _http._tcp service with an "apsetup" TXT record. The
"configured" record shows whether a device has joined a network yet.`,
	Example: `  # Scan using the preferred timeout
  apsetup scan

  # Longer scan for busy networks
  apsetup scan --timeout 15s`,
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	p := ui.NewPrinter(cmd.OutOrStdout())
	scanner := discovery.NewScanner()
	if settings.Timeout > 0 {
		scanner.Timeout = settings.Timeout
	}

	p.PrintHeader("Scan", "apsetup scan", ui.Param{Key: "Timeout", Value: scanner.Timeout.String()})

	devices, err := scanner.ScanForDevicesWithContext(cmd.Context())
	if err != nil {
		p.PrintFailure("Scan failed", err)
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(devices) == 0 {
		p.PrintFailure("No devices found", nil,
			"Ensure the device is powered on and in setup mode",
			"Join the device's access point, or the network it joined",
			"Try a longer --timeout",
			"Use --url "+defaultURL+" if discovery is blocked",
		)
		return nil
	}

	items := make([]ui.ListItem, 0, len(devices))
	for _, d := range devices {
		network := "not configured"
		if d.Configured {
			network = "configured"
		}
		items = append(items, ui.ListItem{
			Title: d.Instance,
			Details: []ui.Param{
				{Key: "Address", Value: d.BaseURL()},
				{Key: "Hostname", Value: d.Hostname},
				{Key: "Network", Value: network},
				{Key: "Link", Value: d.Link()},
			},
		})
	}
	settings.remember(func(r *config.Registry) {
		for _, d := range devices {
			r.RecordSeen(d.Instance, d.BaseURL())
		}
	})

	p.Println(fmt.Sprintf("  Found %d device(s):", len(devices)))
	p.Newline()
	p.PrintList(items)
	p.Println("  Use 'apsetup --url <address>' to configure a device")
	return nil
}

// showCmd prints the device configuration
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the device configuration",
	Long:  `Fetch /config.json from the device and print it.`,
	Example: `  # Device in setup mode, reached on its own access point
  apsetup show

  # A configured device on the local network
  apsetup show --url http://kitchen.local

  # JSON for scripting
  apsetup show --format json`,
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	client, err := settings.Client(cmd.Context())
	if err != nil {
		return err
	}

	cfg, err := client.FetchConfig(cmd.Context())
	if err != nil {
		ui.NewPrinter(cmd.ErrOrStderr()).PrintFailure("Could not read configuration", err, hints(err)...)
		return fmt.Errorf("failed to get configuration: %w", err)
	}

	if cfg.DeviceName != "" {
		address := client.BaseURL()
		settings.remember(func(r *config.Registry) { r.RecordSeen(cfg.DeviceName, address) })
	}

	if settings.String("format") == "json" {
		return writeJSON(cmd, cfg)
	}

	p := ui.NewPrinter(cmd.OutOrStdout())
	p.PrintHeader("Configuration", "apsetup show", ui.Param{Key: "Device", Value: client.BaseURL()})
	p.Println(gateway.FormatConfig(cfg))
	return nil
}

// browseCmd lists the networks the device can see
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "List the networks the device can see",
	Long: `Ask the device to scan for wireless networks (/browse.json) and print them.

Scanning can take several seconds on the device.`,
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	client, err := settings.Client(cmd.Context())
	if err != nil {
		return err
	}

	aps, err := client.Browse(cmd.Context())
	if err != nil {
		ui.NewPrinter(cmd.ErrOrStderr()).PrintFailure("Could not scan for networks", err, hints(err)...)
		return fmt.Errorf("browse failed: %w", err)
	}

	if settings.String("format") == "json" {
		return writeJSON(cmd, aps)
	}

	p := ui.NewPrinter(cmd.OutOrStdout())
	p.PrintHeader("Networks", "apsetup browse", ui.Param{Key: "Device", Value: client.BaseURL()})
	p.Println(gateway.FormatAccessPoints(aps))
	return nil
}

func writeJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

// devicesCmd lists the devices configured from this machine
var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List devices configured from this machine",
	Long: `List the devices recorded in the registry.

Every accepted save, scan and show updates the registry. Passkeys are never
recorded.`,
	RunE: runDevices,
}

func runDevices(cmd *cobra.Command, args []string) error {
	p := ui.NewPrinter(cmd.OutOrStdout())
	names := settings.registry.DeviceNames()
	if len(names) == 0 {
		p.Println("No devices recorded in " + settings.registry.Path())
		return nil
	}

	items := make([]ui.ListItem, 0, len(names))
	for _, name := range names {
		d := settings.registry.GetDevice(name)
		items = append(items, ui.ListItem{
			Title: name,
			Details: []ui.Param{
				{Key: "Address", Value: d.Address},
				{Key: "Network", Value: d.SSID},
				{Key: "Webhook", Value: d.Webhook},
				{Key: "Last saved", Value: formatTime(d.LastSaved)},
				{Key: "Last seen", Value: formatTime(d.LastSeen)},
			},
		})
	}
	p.PrintList(items)
	return nil
}

var devicesForgetCmd = &cobra.Command{
	Use:   "forget <name>",
	Short: "Remove a device from the registry",
	Args:  cobra.ExactArgs(1),
	RunE:  runForget,
}

func runForget(cmd *cobra.Command, args []string) error {
	name := args[0]
	if settings.registry.GetDevice(name) == nil {
		return fmt.Errorf("no device named %q in the registry", name)
	}

	p := ui.NewPrinter(cmd.OutOrStdout())
	if !settings.v.GetBool("yes") {
		ok := p.Confirm(cmd.InOrStdin(), "FORGET DEVICE", []string{
			name + " will be removed from " + settings.registry.Path(),
			"The device itself keeps its configuration",
		})
		if !ok {
			return nil
		}
	}

	settings.registry.RemoveDevice(name)
	if err := settings.registry.Save(); err != nil {
		return err
	}
	p.PrintSuccess("Device forgotten", ui.Param{Key: "Device", Value: name})
	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(time.DateTime)
}
