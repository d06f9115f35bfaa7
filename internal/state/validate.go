package state

import "unicode/utf8"

// Error labels shown next to an invalid field.
const (
	LabelRequired = "is required"
	LabelTooLong  = "is too long"
)

// FieldRule is the length rule for one text field. Max is inclusive.
type FieldRule struct {
	Field Field
	Max   int
}

var (
	PasskeyRule    = FieldRule{Field: FieldPasskey, Max: 32}
	DeviceNameRule = FieldRule{Field: FieldDeviceName, Max: 64}
	WebhookRule    = FieldRule{Field: FieldWebhook, Max: 256}
)

// RuleFor returns the rule for the named field.
func RuleFor(field Field) (FieldRule, bool) {
	switch field {
	case FieldPasskey:
		return PasskeyRule, true
	case FieldDeviceName:
		return DeviceNameRule, true
	case FieldWebhook:
		return WebhookRule, true
	default:
		return FieldRule{}, false
	}
}

// Valid reports whether value satisfies the rule: 0 < length <= Max.
func (r FieldRule) Valid(value string) bool {
	n := utf8.RuneCountInString(value)
	return n > 0 && n <= r.Max
}

// ErrorLabel returns the label shown for an invalid value, or "" when the
// length is inside the bounds. The too-long check uses >= Max, so a value of
// exactly Max runes would be labelled too long if it were ever flagged.
func (r FieldRule) ErrorLabel(value string) string {
	n := utf8.RuneCountInString(value)
	switch {
	case n == 0:
		return LabelRequired
	case n >= r.Max:
		return LabelTooLong
	default:
		return ""
	}
}

// changeAction returns the CHANGE_* action type that edits the rule's field.
func (r FieldRule) changeAction() ActionType {
	switch r.Field {
	case FieldPasskey:
		return ChangePasskey
	case FieldDeviceName:
		return ChangeDeviceName
	default:
		return ChangeWebhook
	}
}

// seed returns the value a fetched config provides for the rule's field.
// The passkey is never part of the device config.
func (r FieldRule) seed(c *DeviceConfig) (string, bool) {
	if c == nil {
		return "", false
	}
	switch r.Field {
	case FieldDeviceName:
		return c.DeviceName, true
	case FieldWebhook:
		return c.Webhook, true
	default:
		return "", false
	}
}

// ReduceField computes the next state of the rule's field. Actions other than
// the field's own CHANGE_* and, for deviceName and webhook, FETCHED_CONFIG
// return fs unchanged.
func ReduceField(r FieldRule, fs FieldState, a Action) FieldState {
	switch a.Type {
	case r.changeAction():
		fs.Value = a.Value
		fs.Valid = r.Valid(a.Value)
		fs.Changed = true
		return fs
	case FetchedConfig:
		value, ok := r.seed(a.Config)
		if !ok {
			return fs
		}
		fs.Value = value
		fs.Valid = r.Valid(value)
		fs.Changed = value != ""
		return fs
	default:
		return fs
	}
}
