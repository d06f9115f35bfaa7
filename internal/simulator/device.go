package simulator

import (
	"fmt"
	"sync"

	"github.com/muurk/apsetup/internal/gateway"
	"github.com/muurk/apsetup/internal/state"
)

// DefaultAccessPoints is what the simulator reports when no networks are
// configured.
var DefaultAccessPoints = []state.AccessPoint{
	{SSID: "home", Encryption: 4},
	{SSID: "cafe", Encryption: state.EncryptionOpen},
	{SSID: "office", Encryption: 8},
}

// Device holds the simulated device's settings.
type Device struct {
	mu       sync.RWMutex
	aps      []state.AccessPoint
	passkeys map[string]string
	config   state.DeviceConfig
	ssid     string
	saves    int
	scans    int
}

// NewDevice creates a device that reports aps from a scan. passkeys maps an
// SSID to the only passkey the simulated network accepts; networks without an
// entry accept any passkey that passes validation.
func NewDevice(cfg state.DeviceConfig, aps []state.AccessPoint, passkeys map[string]string) *Device {
	if aps == nil {
		aps = DefaultAccessPoints
	}
	d := &Device{
		aps:      append([]state.AccessPoint(nil), aps...),
		passkeys: make(map[string]string, len(passkeys)),
		config:   cfg,
	}
	for ssid, key := range passkeys {
		d.passkeys[ssid] = key
	}
	return d
}

// Config returns the device configuration as /config.json reports it.
func (d *Device) Config() state.DeviceConfig {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.config
}

// AccessPoints returns the result of a scan.
func (d *Device) AccessPoints() []state.AccessPoint {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]state.AccessPoint(nil), d.aps...)
}

// Scan returns the access points /browse.json reports and counts the scan.
func (d *Device) Scan() []state.AccessPoint {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.scans++
	return append([]state.AccessPoint(nil), d.aps...)
}

// Scans returns the number of scans served.
func (d *Device) Scans() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.scans
}

// SSID returns the network the device joined, if any.
func (d *Device) SSID() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.ssid
}

// Saves returns the number of accepted saves.
func (d *Device) Saves() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.saves
}

// Apply stores req. A request the device refuses returns a rejected
// *gateway.DeviceError whose message is the response body.
func (d *Device) Apply(req *gateway.SaveRequest) error {
	if errs := gateway.ValidateSaveRequest(req); len(errs) > 0 {
		return gateway.NewRejectedError(gateway.FormatValidationErrors(errs))
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if req.HasNetwork() {
		if err := d.join(*req.SSID, req.Passkey); err != nil {
			return err
		}
		d.ssid = *req.SSID
		d.config.APConfigured = true
	}
	d.config.DeviceName = req.DeviceName
	d.config.Webhook = req.Webhook
	d.saves++
	return nil
}

// join must be called with mu held.
func (d *Device) join(ssid string, passkey *string) error {
	var ap *state.AccessPoint
	for i := range d.aps {
		if d.aps[i].SSID == ssid {
			ap = &d.aps[i]
		}
	}
	if ap == nil {
		return gateway.NewRejectedError(fmt.Sprintf("Network %s not found", ssid))
	}
	if ap.IsOpen() {
		return nil
	}
	if passkey == nil {
		return gateway.NewRejectedError("passkey is required")
	}
	if want, ok := d.passkeys[ssid]; ok && want != *passkey {
		return gateway.NewRejectedError(fmt.Sprintf("Could not connect to %s: wrong passkey", ssid))
	}
	return nil
}
