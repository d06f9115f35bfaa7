package state

// EncryptionOpen is the encryption code the device reports for open networks.
// Any other code means a passkey is required.
const EncryptionOpen = 7

// AccessPoint is a wireless network reported by the device's scan.
type AccessPoint struct {
	SSID       string `json:"ssid"`
	Encryption int    `json:"encryption"`
}

// IsOpen reports whether the network can be joined without a passkey
func (ap AccessPoint) IsOpen() bool {
	return ap.Encryption == EncryptionOpen
}

// SameAs reports whether two access points refer to the same network.
// Selection identity is the SSID only.
func (ap AccessPoint) SameAs(other AccessPoint) bool {
	return ap.SSID == other.SSID
}

// DeviceConfig is the device configuration returned by GET /config.json.
// Keys the console does not use are ignored when decoding.
type DeviceConfig struct {
	APConfigured bool   `json:"apConfigured"`
	DeviceName   string `json:"deviceName"`
	Webhook      string `json:"webhook"`
}

// Field names a text input of the configuration form.
type Field string

const (
	FieldPasskey    Field = "passkey"
	FieldDeviceName Field = "deviceName"
	FieldWebhook    Field = "webhook"
)

// AllFields lists the form fields in render order.
var AllFields = []Field{FieldPasskey, FieldDeviceName, FieldWebhook}

// FieldState is the per-input bundle of value, validity and touch state.
// Error is carried for parity with the device page and is never populated
// by the reducers; labels are derived at render time.
type FieldState struct {
	Value   string
	Valid   bool
	Changed bool
	Error   *string
}

// Fields holds the state of every form field.
type Fields struct {
	Passkey    FieldState
	DeviceName FieldState
	Webhook    FieldState
}

// Get returns the state of the named field
func (f Fields) Get(field Field) FieldState {
	switch field {
	case FieldPasskey:
		return f.Passkey
	case FieldDeviceName:
		return f.DeviceName
	case FieldWebhook:
		return f.Webhook
	default:
		return FieldState{}
	}
}

// ApplicationState is the complete state of the console.
type ApplicationState struct {
	UI           Fields
	APs          []AccessPoint
	AP           *AccessPoint
	APConfigured bool
	Error        string
	Connection   Phase
}

// Initial returns the state the console starts with.
func Initial() ApplicationState {
	return ApplicationState{
		APs:          []AccessPoint{},
		APConfigured: true,
		Connection:   PhaseNotConfigured,
	}
}

// SelectedEncryption returns the encryption code of the selected access point
// and whether one is selected.
func (s ApplicationState) SelectedEncryption() (int, bool) {
	if s.AP == nil {
		return 0, false
	}
	return s.AP.Encryption, true
}

// SelectedIsOpen reports whether an access point is selected and it is open.
func (s ApplicationState) SelectedIsOpen() bool {
	return s.AP != nil && s.AP.IsOpen()
}

// FindAP returns the scanned access point with the given SSID, or nil.
// When several entries share an SSID the last one wins, matching how the
// device page resolves a picker change.
func (s ApplicationState) FindAP(ssid string) *AccessPoint {
	var found *AccessPoint
	for i := range s.APs {
		if s.APs[i].SSID == ssid {
			ap := s.APs[i]
			found = &ap
		}
	}
	return found
}

// Clone returns a deep copy of the state. Callers outside the dispatcher only
// ever see clones.
func (s ApplicationState) Clone() ApplicationState {
	c := s
	if s.APs != nil {
		c.APs = append([]AccessPoint(nil), s.APs...)
	}
	if s.AP != nil {
		ap := *s.AP
		c.AP = &ap
	}
	return c
}
