package gateway

import (
	"fmt"
	"strings"

	"github.com/muurk/apsetup/internal/state"
	"github.com/muurk/apsetup/internal/urls"
)

// EncryptionName returns a readable name for a device encryption code.
func EncryptionName(code int) string {
	switch code {
	case 2:
		return "WPA"
	case 4:
		return "WPA2"
	case 5:
		return "WEP"
	case state.EncryptionOpen:
		return "Open"
	case 8:
		return "WPA/WPA2"
	default:
		return fmt.Sprintf("Unknown (%d)", code)
	}
}

// FormatConfig returns a compact multi-line view of a device configuration
func FormatConfig(cfg *state.DeviceConfig) string {
	var b strings.Builder

	name := cfg.DeviceName
	if name == "" {
		name = "(unset)"
	}
	webhook := cfg.Webhook
	if webhook == "" {
		webhook = "(unset)"
	}

	fmt.Fprintf(&b, "Device name:  %s\n", name)
	fmt.Fprintf(&b, "Webhook:      %s\n", webhook)
	if cfg.APConfigured {
		b.WriteString("Network:      configured\n")
		if cfg.DeviceName != "" {
			fmt.Fprintf(&b, "Address:      %s\n", urls.DeviceLink(cfg.DeviceName))
		}
	} else {
		b.WriteString("Network:      not configured (setup mode)\n")
	}

	return b.String()
}

// FormatAccessPoints returns one line per access point
func FormatAccessPoints(aps []state.AccessPoint) string {
	if len(aps) == 0 {
		return "No networks found\n"
	}

	width := len("SSID")
	for _, ap := range aps {
		if len(ap.SSID) > width {
			width = len(ap.SSID)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-*s  %s\n", width, "SSID", "SECURITY")
	for _, ap := range aps {
		fmt.Fprintf(&b, "%-*s  %s\n", width, ap.SSID, EncryptionName(ap.Encryption))
	}
	return b.String()
}
