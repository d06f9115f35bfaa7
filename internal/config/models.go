package config

import (
	"sort"
	"time"
)

// CurrentVersion is the registry file format version.
const CurrentVersion = 1

// Defaults for Preferences.
const (
	DefaultDiscoverTimeout = 5    // seconds
	DefaultSaveDelayMs     = 1000 // milliseconds
	DefaultPort            = 80
)

// Registry represents the entire user configuration file.
// It records the devices this machine has configured and application
// preferences.
type Registry struct {
	Version     int                `yaml:"version"`
	Devices     map[string]*Device `yaml:"devices,omitempty"` // Keyed by device name
	Preferences *Preferences       `yaml:"preferences,omitempty"`

	path string
}

// Device is what the console remembers about a device it configured.
// Passkeys are never recorded.
type Device struct {
	Webhook   string    `yaml:"webhook,omitempty"`
	SSID      string    `yaml:"ssid,omitempty"`       // Network the device was told to join
	Address   string    `yaml:"address,omitempty"`    // Base URL the device is reachable at
	LastSeen  time.Time `yaml:"last_seen,omitempty"`  // Last discovery/connection time
	LastSaved time.Time `yaml:"last_saved,omitempty"` // Last accepted save
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	DiscoverTimeout int `yaml:"discover_timeout"` // mDNS discovery timeout in seconds
	SaveDelayMs     int `yaml:"save_delay_ms"`    // Wait after saving a configured device
	DefaultPort     int `yaml:"default_port"`     // Port used when none is given
}

func defaultPreferences() *Preferences {
	return &Preferences{
		DiscoverTimeout: DefaultDiscoverTimeout,
		SaveDelayMs:     DefaultSaveDelayMs,
		DefaultPort:     DefaultPort,
	}
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version:     CurrentVersion,
		Devices:     make(map[string]*Device),
		Preferences: defaultPreferences(),
	}
}

// Path returns the file the registry is saved to.
func (r *Registry) Path() string {
	return r.path
}

// GetDevice retrieves a device by name.
// Returns nil if the device doesn't exist in the registry.
func (r *Registry) GetDevice(name string) *Device {
	return r.Devices[name]
}

// EnsureDevice returns the entry for name, creating it if needed.
func (r *Registry) EnsureDevice(name string) *Device {
	if r.Devices == nil {
		r.Devices = make(map[string]*Device)
	}

	if device, exists := r.Devices[name]; exists {
		return device
	}

	device := &Device{}
	r.Devices[name] = device
	return device
}

// RecordSeen updates the last seen timestamp and address for a device.
func (r *Registry) RecordSeen(name, address string) {
	device := r.EnsureDevice(name)
	device.LastSeen = time.Now()
	if address != "" {
		device.Address = address
	}
}

// RecordSave stores the outcome of an accepted save. A rename moves the entry
// from previous to name. An empty ssid keeps the recorded network.
func (r *Registry) RecordSave(previous, name, webhook, ssid, address string) {
	if previous != "" && previous != name {
		if old, ok := r.Devices[previous]; ok {
			delete(r.Devices, previous)
			r.Devices[name] = old
		}
	}

	device := r.EnsureDevice(name)
	device.Webhook = webhook
	if ssid != "" {
		device.SSID = ssid
	}
	if address != "" {
		device.Address = address
	}
	now := time.Now()
	device.LastSaved = now
	device.LastSeen = now
}

// RemoveDevice forgets a device. It reports whether the device was known.
func (r *Registry) RemoveDevice(name string) bool {
	if _, ok := r.Devices[name]; !ok {
		return false
	}
	delete(r.Devices, name)
	return true
}

// DeviceNames returns the known device names in order.
func (r *Registry) DeviceNames() []string {
	names := make([]string, 0, len(r.Devices))
	for name := range r.Devices {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DiscoverTimeoutDuration returns the mDNS discovery timeout.
func (p *Preferences) DiscoverTimeoutDuration() time.Duration {
	if p == nil || p.DiscoverTimeout <= 0 {
		return DefaultDiscoverTimeout * time.Second
	}
	return time.Duration(p.DiscoverTimeout) * time.Second
}

// SaveDelay returns the wait after saving a configured device.
func (p *Preferences) SaveDelay() time.Duration {
	if p == nil || p.SaveDelayMs <= 0 {
		return DefaultSaveDelayMs * time.Millisecond
	}
	return time.Duration(p.SaveDelayMs) * time.Millisecond
}

// Port returns the default device port.
func (p *Preferences) Port() int {
	if p == nil || p.DefaultPort <= 0 {
		return DefaultPort
	}
	return p.DefaultPort
}
