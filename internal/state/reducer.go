package state

// phaseFor maps the action variants that move the connection phase to the
// phase they enter. Actions missing from the table leave the phase alone.
var phaseFor = map[ActionType]Phase{
	FetchedConfig:    PhaseFetchedConfig,
	Saving:           PhaseSaving,
	Scanning:         PhaseScanning,
	ScanningComplete: PhaseScanningComplete,
	Connected:        PhaseConnected,
	ConnectionError:  PhaseConnectionError,
}

// PhaseFor returns the phase an action moves the console into, if any.
func PhaseFor(t ActionType) (Phase, bool) {
	p, ok := phaseFor[t]
	return p, ok
}

func reduceAP(ap *AccessPoint, a Action) *AccessPoint {
	switch a.Type {
	case ScanningComplete:
		if len(a.APs) == 0 {
			return nil
		}
		first := a.APs[0]
		return &first
	case ChangeAP:
		if a.AP == nil {
			return nil
		}
		selected := *a.AP
		return &selected
	default:
		return ap
	}
}

func reduceAPConfigured(configured bool, a Action) bool {
	if a.Type == Scanning {
		return false
	}
	return configured
}

func reduceAPs(aps []AccessPoint, a Action) []AccessPoint {
	if a.Type != ScanningComplete {
		return aps
	}
	next := make([]AccessPoint, len(a.APs))
	copy(next, a.APs)
	return next
}

func reduceError(msg string, a Action) string {
	if a.Type == ConnectionError {
		return a.Message
	}
	return msg
}

func reduceConnection(p Phase, a Action) Phase {
	if a.Type == RequestFailed {
		return a.Restore
	}
	if next, ok := phaseFor[a.Type]; ok {
		return next
	}
	return p
}

// Reduce returns the state that follows s after a. Every reducer reads only s
// and a, so their order does not matter. s is not modified.
func Reduce(s ApplicationState, a Action) ApplicationState {
	prev := s.Clone()
	return ApplicationState{
		UI: Fields{
			Passkey:    ReduceField(PasskeyRule, prev.UI.Passkey, a),
			DeviceName: ReduceField(DeviceNameRule, prev.UI.DeviceName, a),
			Webhook:    ReduceField(WebhookRule, prev.UI.Webhook, a),
		},
		APs:          reduceAPs(prev.APs, a),
		AP:           reduceAP(prev.AP, a),
		APConfigured: reduceAPConfigured(s.APConfigured, a),
		Error:        reduceError(s.Error, a),
		Connection:   reduceConnection(s.Connection, a),
	}
}
