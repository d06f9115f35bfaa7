package state

import "fmt"

// ActionType tags an Action.
type ActionType int

const (
	// FetchingAPs and FetchedAPs are reserved markers; scanning uses
	// Scanning and ScanningComplete.
	FetchingAPs ActionType = iota
	FetchedAPs
	ChangeAP
	ChangePasskey
	ChangeDeviceName
	ChangeWebhook
	Scanning
	ScanningComplete
	Saving
	Connected
	ConnectionError
	FetchingConfig
	FetchedConfig
	// RequestFailed reports a request that ended without a usable answer
	// (any status other than 200 or a 422 on save). It restores the phase
	// that was current before the request started.
	RequestFailed
)

// String returns the action name as used in logs
func (t ActionType) String() string {
	switch t {
	case FetchingAPs:
		return "FETCHING_APS"
	case FetchedAPs:
		return "FETCHED_APS"
	case ChangeAP:
		return "CHANGE_AP"
	case ChangePasskey:
		return "CHANGE_PASSKEY"
	case ChangeDeviceName:
		return "CHANGE_DEVICE_NAME"
	case ChangeWebhook:
		return "CHANGE_WEBHOOK"
	case Scanning:
		return "SCANNING"
	case ScanningComplete:
		return "SCANNING_COMPLETE"
	case Saving:
		return "SAVING"
	case Connected:
		return "CONNECTED"
	case ConnectionError:
		return "CONNECTION_ERROR"
	case FetchingConfig:
		return "FETCHING_CONFIG"
	case FetchedConfig:
		return "FETCHED_CONFIG"
	case RequestFailed:
		return "REQUEST_FAILED"
	default:
		return fmt.Sprintf("ActionType(%d)", int(t))
	}
}

// Action describes something that happened. Build actions with the New*
// constructors; only the fields relevant to Type are set.
type Action struct {
	Type    ActionType
	AP      *AccessPoint
	Value   string
	APs     []AccessPoint
	Message string
	Config  *DeviceConfig
	Restore Phase
}

func (a Action) String() string {
	return a.Type.String()
}

func NewFetchingAPs() Action { return Action{Type: FetchingAPs} }

func NewFetchedAPs() Action { return Action{Type: FetchedAPs} }

// NewChangeAP selects ap. A nil ap clears the selection.
func NewChangeAP(ap *AccessPoint) Action {
	if ap != nil {
		cp := *ap
		ap = &cp
	}
	return Action{Type: ChangeAP, AP: ap}
}

func NewChangePasskey(value string) Action {
	return Action{Type: ChangePasskey, Value: value}
}

func NewChangeDeviceName(value string) Action {
	return Action{Type: ChangeDeviceName, Value: value}
}

func NewChangeWebhook(value string) Action {
	return Action{Type: ChangeWebhook, Value: value}
}

func NewScanning() Action { return Action{Type: Scanning} }

// NewScanningComplete carries the scan result. A nil slice is treated as an
// empty result.
func NewScanningComplete(aps []AccessPoint) Action {
	cp := make([]AccessPoint, len(aps))
	copy(cp, aps)
	return Action{Type: ScanningComplete, APs: cp}
}

func NewSaving() Action { return Action{Type: Saving} }

func NewConnected() Action { return Action{Type: Connected} }

func NewConnectionError(message string) Action {
	return Action{Type: ConnectionError, Message: message}
}

func NewFetchingConfig() Action { return Action{Type: FetchingConfig} }

func NewFetchedConfig(config DeviceConfig) Action {
	return Action{Type: FetchedConfig, Config: &config}
}

// NewRequestFailed restores the connection phase to restore. message is
// for logs only; it does not reach the error banner.
func NewRequestFailed(restore Phase, message string) Action {
	return Action{Type: RequestFailed, Restore: restore, Message: message}
}
