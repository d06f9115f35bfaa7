package gateway

import (
	"github.com/muurk/apsetup/internal/state"
)

// SaveRequest is the body of POST /save. SSID and Passkey are sent only when
// the device is joining a network for the first time; Passkey is omitted for
// open networks.
type SaveRequest struct {
	DeviceName string  `json:"deviceName"`
	Webhook    string  `json:"webhook"`
	SSID       *string `json:"ssid,omitempty"`
	Passkey    *string `json:"passkey,omitempty"`
}

// NewSaveRequest creates a request that only renames the device and sets
// its webhook.
func NewSaveRequest(deviceName, webhook string) *SaveRequest {
	return &SaveRequest{DeviceName: deviceName, Webhook: webhook}
}

// WithNetwork adds network credentials. An empty passkey is omitted.
func (r *SaveRequest) WithNetwork(ssid, passkey string) *SaveRequest {
	r.SSID = &ssid
	if passkey != "" {
		r.Passkey = &passkey
	} else {
		r.Passkey = nil
	}
	return r
}

// SaveRequestFromState builds the request the form submits for s.
func SaveRequestFromState(s state.ApplicationState) *SaveRequest {
	req := NewSaveRequest(s.UI.DeviceName.Value, s.UI.Webhook.Value)
	if s.APConfigured || s.AP == nil {
		return req
	}

	ssid := s.AP.SSID
	req.SSID = &ssid
	if !s.AP.IsOpen() {
		passkey := s.UI.Passkey.Value
		req.Passkey = &passkey
	}
	return req
}

// ToConfig returns the configuration the device reports once it has applied r.
func (r *SaveRequest) ToConfig() state.DeviceConfig {
	return state.DeviceConfig{DeviceName: r.DeviceName, Webhook: r.Webhook}
}

// HasNetwork reports whether r carries network credentials.
func (r *SaveRequest) HasNetwork() bool {
	return r.SSID != nil
}
