package discovery

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/muurk/apsetup/internal/urls"
)

// Device represents a device in setup mode discovered on the network
type Device struct {
	// Instance is the mDNS instance name, normally the device name
	Instance string

	// Hostname is the mDNS hostname (e.g., "kitchen.local.")
	Hostname string

	// IP is the device address, IPv4 when one was advertised
	IP string

	// Port is the HTTP port (typically 80)
	Port int

	// Configured reports whether the device has already joined a network
	Configured bool

	// Metadata contains the mDNS TXT record data
	Metadata map[string]string

	// DiscoveredAt is when the device was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the device
func (d *Device) String() string {
	return fmt.Sprintf("%s (%s) at %s:%d", d.Instance, d.Hostname, d.IP, d.Port)
}

// BaseURL returns the HTTP base URL for the device
func (d *Device) BaseURL() string {
	return "http://" + net.JoinHostPort(d.IP, strconv.Itoa(d.Port))
}

// Link returns the address the device answers on by name.
func (d *Device) Link() string {
	return urls.DeviceLink(d.Instance)
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (d *Device) GetMetadata(key string) string {
	if d.Metadata == nil {
		return ""
	}
	return d.Metadata[key]
}
