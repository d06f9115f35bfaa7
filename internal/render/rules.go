package render

import (
	"slices"

	"github.com/muurk/apsetup/internal/state"
	"github.com/muurk/apsetup/internal/urls"
)

// Button labels.
const (
	LabelSave     = "Save"
	LabelSaving   = "Saving..."
	LabelSaved    = "Saved!"
	LabelScanning = "Scanning..."
)

var inputs = []ElementID{ElementSSID, ElementPasskey, ElementDeviceName, ElementWebhook}

// encryption returns the selected AP's encryption code, or nil when no AP is
// selected.
func encryption(s state.ApplicationState) *int {
	if s.AP == nil {
		return nil
	}
	e := s.AP.Encryption
	return &e
}

func sameEncryption(a, b state.ApplicationState) bool {
	ea, eb := encryption(a), encryption(b)
	if ea == nil || eb == nil {
		return ea == nil && eb == nil
	}
	return *ea == *eb
}

func sameAP(a, b *state.AccessPoint) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func renderInputsEnabled(s Surface, next, old state.ApplicationState) {
	if next.Connection == old.Connection {
		return
	}
	for _, id := range inputs {
		if next.Connection.InputsLocked() {
			s.Disable(id)
		} else {
			s.Enable(id)
		}
	}
}

func renderSSIDVisible(s Surface, next, old state.ApplicationState) {
	if next.APConfigured == old.APConfigured {
		return
	}
	if next.APConfigured {
		s.Hide(ElementSSIDWrapper)
	} else {
		s.Show(ElementSSIDWrapper)
	}
}

func renderSSIDOptions(s Surface, next, old state.ApplicationState) {
	if next.Connection == old.Connection && slices.Equal(next.APs, old.APs) && sameAP(next.AP, old.AP) {
		return
	}

	switch {
	case next.Connection == state.PhaseScanning:
		s.SetOptions(ElementSSID, []Option{{Label: LabelScanning}})
	case next.Connection == state.PhaseNotConfigured,
		next.Connection == state.PhaseNotScanned,
		len(next.APs) == 0:
		s.SetOptions(ElementSSID, nil)
	default:
		opts := make([]Option, 0, len(next.APs))
		for _, ap := range next.APs {
			opts = append(opts, Option{
				Value:    ap.SSID,
				Label:    ap.SSID,
				Selected: next.AP != nil && next.AP.SSID == ap.SSID,
			})
		}
		s.SetOptions(ElementSSID, opts)
	}
}

func valueRule(field state.Field, id ElementID) func(Surface, state.ApplicationState, state.ApplicationState) {
	return func(s Surface, next, old state.ApplicationState) {
		value := next.UI.Get(field).Value
		if value == old.UI.Get(field).Value {
			return
		}
		if s.Value(id) != value {
			s.SetValue(id, value)
		}
	}
}

func renderPasskeyVisible(s Surface, next, old state.ApplicationState) {
	if next.UI.Passkey.Value == old.UI.Passkey.Value && sameEncryption(next, old) {
		return
	}
	if next.SelectedIsOpen() {
		s.Hide(ElementPasskeyWrapper)
	} else {
		s.Show(ElementPasskeyWrapper)
	}
}

func errorRule(rule state.FieldRule, id ElementID) func(Surface, state.ApplicationState, state.ApplicationState) {
	return func(s Surface, next, old state.ApplicationState) {
		f, o := next.UI.Get(rule.Field), old.UI.Get(rule.Field)
		if f.Changed == o.Changed && f.Valid == o.Valid && f.Value == o.Value {
			return
		}
		if !f.Changed || f.Valid {
			s.Hide(id)
			return
		}
		if label := rule.ErrorLabel(f.Value); label != "" {
			s.SetText(id, label)
		}
		s.Show(id)
	}
}

// ButtonEnabled reports whether the save button accepts a submit in s.
func ButtonEnabled(s state.ApplicationState) bool {
	enabled := s.UI.DeviceName.Valid && s.UI.Webhook.Valid
	if !s.APConfigured {
		enabled = enabled && s.Connection == state.PhaseScanningComplete &&
			(s.SelectedIsOpen() || s.UI.Passkey.Valid)
	}
	if s.Connection == state.PhaseSaving {
		enabled = false
	}
	return enabled
}

// apConfigured is read by ButtonEnabled but is not part of the guard.
func renderButtonEnabled(s Surface, next, old state.ApplicationState) {
	same := next.UI.Passkey.Valid == old.UI.Passkey.Valid &&
		next.UI.DeviceName.Valid == old.UI.DeviceName.Valid &&
		next.UI.Webhook.Valid == old.UI.Webhook.Valid &&
		next.Connection == old.Connection &&
		sameEncryption(next, old)
	if same {
		return
	}
	if ButtonEnabled(next) {
		s.Enable(ElementButton)
	} else {
		s.Disable(ElementButton)
	}
}

func renderButtonLabel(s Surface, next, old state.ApplicationState) {
	if next.Connection == old.Connection {
		return
	}
	switch {
	case next.Connection == state.PhaseSaving:
		s.RemoveClass(ElementButton, ClassSuccess)
		s.SetText(ElementButton, LabelSaving)
	case next.APConfigured && next.Connection == state.PhaseConnected:
		s.AddClass(ElementButton, ClassSuccess)
		s.SetText(ElementButton, LabelSaved)
	default:
		s.RemoveClass(ElementButton, ClassSuccess)
		s.SetText(ElementButton, LabelSave)
	}
}

// handedOff reports whether a newly configured device has accepted its
// network and is rejoining it.
func handedOff(s state.ApplicationState) bool {
	return !s.APConfigured && s.Connection == state.PhaseConnected
}

func renderFormVisible(s Surface, next, old state.ApplicationState) {
	if next.Connection == old.Connection {
		return
	}
	if handedOff(next) {
		s.Hide(ElementForm)
	} else {
		s.Show(ElementForm)
	}
}

func renderNotification(s Surface, next, old state.ApplicationState) {
	if next.Connection == old.Connection {
		return
	}
	if !handedOff(next) {
		s.Hide(ElementNotification)
		return
	}
	link := urls.DeviceLink(next.UI.DeviceName.Value)
	s.SetLink(ElementDeviceNameLink, link, link)
	s.Show(ElementNotification)
}

func renderErrorBanner(s Surface, next, old state.ApplicationState) {
	if next.Connection == old.Connection {
		return
	}
	if next.Connection == state.PhaseConnectionError {
		s.SetText(ElementError, next.Error)
		s.Show(ElementError)
	} else {
		s.Hide(ElementError)
	}
}
