package urls

import (
	"net/url"
	"strings"
)

// LocalDomain is the mDNS domain devices are reachable under.
const LocalDomain = "local"

// SetupModeURL is the address a device in setup mode serves its form on when
// the user is joined to the device's own access point.
const SetupModeURL = "http://192.168.4.1"

// LocalHostname returns the mDNS hostname of a device named name.
func LocalHostname(name string) string {
	return name + "." + LocalDomain
}

// DeviceLink returns the URL of a device named name on the local network.
func DeviceLink(name string) string {
	return "http://" + LocalHostname(name)
}

// Hostname returns the host part of rawURL without any port, or "" if rawURL
// cannot be parsed.
func Hostname(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
