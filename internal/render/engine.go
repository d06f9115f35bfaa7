// Package render applies application state to the form's element document.
//
// The Engine runs a fixed, ordered list of rules. Each rule compares exactly
// the slice of state it draws against the previous state and returns without
// touching the Surface when that slice is unchanged, so rendering the same
// (next, old) pair twice is harmless.
package render

import (
	"github.com/muurk/apsetup/internal/state"
)

// Rule draws one concern of the form.
type Rule struct {
	Name  string
	Apply func(s Surface, next, old state.ApplicationState)
}

// Engine renders state transitions onto a Surface.
type Engine struct {
	surface Surface
	rules   []Rule
}

// NewEngine returns an engine drawing onto surface with the default rules.
func NewEngine(surface Surface) *Engine {
	return &Engine{surface: surface, rules: DefaultRules()}
}

// Render applies every rule for the transition from old to next.
func (e *Engine) Render(next, old state.ApplicationState) {
	for _, r := range e.rules {
		r.Apply(e.surface, next, old)
	}
}

// Rules returns the names of the engine's rules in order.
func (e *Engine) Rules() []string {
	names := make([]string, len(e.rules))
	for i, r := range e.rules {
		names[i] = r.Name
	}
	return names
}

// DefaultRules returns the form's render rules in the order they run.
func DefaultRules() []Rule {
	return []Rule{
		{"inputs-enabled", renderInputsEnabled},
		{"ssid-visible", renderSSIDVisible},
		{"ssid-options", renderSSIDOptions},
		{"passkey-value", valueRule(state.FieldPasskey, ElementPasskey)},
		{"deviceName-value", valueRule(state.FieldDeviceName, ElementDeviceName)},
		{"webhook-value", valueRule(state.FieldWebhook, ElementWebhook)},
		{"passkey-visible", renderPasskeyVisible},
		{"passkey-error", errorRule(state.PasskeyRule, ElementPasskeyError)},
		{"deviceName-error", errorRule(state.DeviceNameRule, ElementDeviceNameErr)},
		{"webhook-error", errorRule(state.WebhookRule, ElementWebhookError)},
		{"button-enabled", renderButtonEnabled},
		{"button-label", renderButtonLabel},
		{"form-visible", renderFormVisible},
		{"notification", renderNotification},
		{"error-banner", renderErrorBanner},
	}
}
