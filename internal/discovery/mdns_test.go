package discovery

import (
	"net"
	"testing"
	"time"

	"github.com/grandcat/zeroconf"
)

func TestScanner_parseServiceEntry(t *testing.T) {
	scanner := NewScanner()

	tests := []struct {
		name           string
		entry          *zeroconf.ServiceEntry
		wantNil        bool
		wantInstance   string
		wantIP         string
		wantPort       int
		wantConfigured bool
	}{
		{
			name: "setup-mode device with IPv4",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "kitchen"},
				HostName:      "kitchen.local.",
				Port:          80,
				AddrIPv4:      []net.IP{net.ParseIP("192.168.4.1")},
				Text:          []string{"apsetup=1", "configured=false", "path=/"},
			},
			wantInstance: "kitchen",
			wantIP:       "192.168.4.1",
			wantPort:     80,
		},
		{
			name: "configured device on custom port",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "porch"},
				HostName:      "porch.local.",
				Port:          8080,
				AddrIPv4:      []net.IP{net.ParseIP("10.0.0.5")},
				Text:          []string{"apsetup=1", "configured=true"},
			},
			wantInstance:   "porch",
			wantIP:         "10.0.0.5",
			wantPort:       8080,
			wantConfigured: true,
		},
		{
			name: "no port specified (should default to 80)",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "attic"},
				HostName:      "attic.local",
				AddrIPv4:      []net.IP{net.ParseIP("172.16.0.1")},
				Text:          []string{"apsetup"},
			},
			wantInstance: "attic",
			wantIP:       "172.16.0.1",
			wantPort:     80,
		},
		{
			name: "instance falls back to hostname",
			entry: &zeroconf.ServiceEntry{
				HostName: "garage.local.",
				Port:     80,
				AddrIPv4: []net.IP{net.ParseIP("192.168.1.9")},
				Text:     []string{"apsetup=1"},
			},
			wantInstance: "garage",
			wantIP:       "192.168.1.9",
			wantPort:     80,
		},
		{
			name: "plain web server without setup key",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "printer"},
				HostName:      "printer.local",
				Port:          80,
				AddrIPv4:      []net.IP{net.ParseIP("192.168.1.1")},
				Text:          []string{"path=/"},
			},
			wantNil: true,
		},
		{
			name: "no IP address",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "kitchen"},
				HostName:      "kitchen.local",
				Port:          80,
				Text:          []string{"apsetup=1"},
			},
			wantNil: true,
		},
		{
			name: "IPv6 only device",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "den"},
				HostName:      "den.local",
				Port:          80,
				AddrIPv6:      []net.IP{net.ParseIP("fe80::1")},
				Text:          []string{"apsetup=1"},
			},
			wantInstance: "den",
			wantIP:       "fe80::1",
			wantPort:     80,
		},
		{
			name: "both IPv4 and IPv6 (should prefer IPv4)",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "hall"},
				HostName:      "hall.local",
				Port:          80,
				AddrIPv4:      []net.IP{net.ParseIP("192.168.1.50")},
				AddrIPv6:      []net.IP{net.ParseIP("fe80::2")},
				Text:          []string{"apsetup=1"},
			},
			wantInstance: "hall",
			wantIP:       "192.168.1.50",
			wantPort:     80,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			device := scanner.parseServiceEntry(tt.entry)

			if tt.wantNil {
				if device != nil {
					t.Errorf("parseServiceEntry() = %v, want nil", device)
				}
				return
			}

			if device == nil {
				t.Fatal("parseServiceEntry() = nil, want non-nil device")
			}
			if device.Instance != tt.wantInstance {
				t.Errorf("device.Instance = %v, want %v", device.Instance, tt.wantInstance)
			}
			if device.IP != tt.wantIP {
				t.Errorf("device.IP = %v, want %v", device.IP, tt.wantIP)
			}
			if device.Port != tt.wantPort {
				t.Errorf("device.Port = %v, want %v", device.Port, tt.wantPort)
			}
			if device.Configured != tt.wantConfigured {
				t.Errorf("device.Configured = %v, want %v", device.Configured, tt.wantConfigured)
			}
			if time.Since(device.DiscoveredAt) > time.Second {
				t.Errorf("device.DiscoveredAt is not recent: %v", device.DiscoveredAt)
			}
		})
	}
}

func TestParseTXT(t *testing.T) {
	got := parseTXT([]string{"apsetup=1", "path=/", "flag", "note=a=b"})

	want := map[string]string{
		"apsetup": "1",
		"path":    "/",
		"flag":    "",
		"note":    "a=b",
	}
	if len(got) != len(want) {
		t.Errorf("parseTXT() has %d entries, want %d", len(got), len(want))
	}
	for key, value := range want {
		if got[key] != value {
			t.Errorf("parseTXT()[%q] = %q, want %q", key, got[key], value)
		}
	}
}

func TestSortDevices(t *testing.T) {
	devices := sortDevices(map[string]*Device{
		"porch":   {Instance: "porch"},
		"attic":   {Instance: "attic"},
		"kitchen": {Instance: "kitchen"},
	})

	var names []string
	for _, d := range devices {
		names = append(names, d.Instance)
	}
	if len(names) != 3 || names[0] != "attic" || names[1] != "kitchen" || names[2] != "porch" {
		t.Errorf("sortDevices() order = %v", names)
	}
}

func TestNewScanner(t *testing.T) {
	scanner := NewScanner()

	if scanner == nil {
		t.Fatal("NewScanner() = nil, want scanner")
	}
	if scanner.Timeout != DefaultScanTimeout {
		t.Errorf("scanner.Timeout = %v, want %v", scanner.Timeout, DefaultScanTimeout)
	}
}
