package state

import "fmt"

// Phase is the device-facing connection phase.
type Phase int

const (
	PhaseNotConfigured Phase = iota
	PhaseNotScanned
	PhaseScanning
	PhaseScanningComplete
	PhaseFetchingConfig
	PhaseFetchedConfig
	PhaseSaving
	PhaseConnected
	PhaseConnectionError
)

// String returns the phase name as used in logs
func (p Phase) String() string {
	switch p {
	case PhaseNotConfigured:
		return "NOT_CONFIGURED"
	case PhaseNotScanned:
		return "NOT_SCANNED"
	case PhaseScanning:
		return "SCANNING"
	case PhaseScanningComplete:
		return "SCANNING_COMPLETE"
	case PhaseFetchingConfig:
		return "FETCHING_CONFIG"
	case PhaseFetchedConfig:
		return "FETCHED_CONFIG"
	case PhaseSaving:
		return "SAVING"
	case PhaseConnected:
		return "CONNECTED"
	case PhaseConnectionError:
		return "CONNECTION_ERROR"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// InputsLocked reports whether form inputs must be disabled in this phase.
// Inputs stay locked until the device has answered at least once.
func (p Phase) InputsLocked() bool {
	switch p {
	case PhaseNotConfigured, PhaseNotScanned, PhaseScanning:
		return true
	default:
		return false
	}
}
