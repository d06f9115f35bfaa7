package gateway

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/muurk/apsetup/internal/state"
)

// MaxSSIDLength is the 802.11 limit on SSID length, in bytes.
const MaxSSIDLength = 32

// ValidateField checks value against the form rule for field.
func ValidateField(field state.Field, value string) error {
	rule, ok := state.RuleFor(field)
	if !ok {
		return NewValidationError(fmt.Sprintf("unknown field %q", field))
	}
	if rule.Valid(value) {
		return nil
	}
	if utf8.RuneCountInString(value) == 0 {
		return NewValidationError(fmt.Sprintf("%s %s", field, state.LabelRequired))
	}
	return NewValidationError(fmt.Sprintf("%s %s (max %d chars)", field, state.LabelTooLong, rule.Max))
}

// ValidateSSID validates a WiFi SSID.
// SSIDs must be non-empty and <= 32 bytes.
func ValidateSSID(ssid string) error {
	if ssid == "" {
		return NewValidationError("ssid is required")
	}
	if len(ssid) > MaxSSIDLength {
		return NewValidationError(fmt.Sprintf("ssid too long (max %d bytes): %d bytes", MaxSSIDLength, len(ssid)))
	}
	return nil
}

// ValidateSaveRequest applies the rules the device enforces on /save.
// Returns a slice of validation errors (empty if valid).
func ValidateSaveRequest(req *SaveRequest) []error {
	var errs []error

	if err := ValidateField(state.FieldDeviceName, req.DeviceName); err != nil {
		errs = append(errs, err)
	}
	if err := ValidateField(state.FieldWebhook, req.Webhook); err != nil {
		errs = append(errs, err)
	}

	if req.SSID != nil {
		if err := ValidateSSID(*req.SSID); err != nil {
			errs = append(errs, err)
		}
	}
	if req.Passkey != nil {
		if req.SSID == nil {
			errs = append(errs, NewValidationError("passkey given without ssid"))
		}
		if err := ValidateField(state.FieldPasskey, *req.Passkey); err != nil {
			errs = append(errs, err)
		}
	}

	return errs
}

// FormatValidationErrors formats a slice of validation errors into one message
func FormatValidationErrors(errs []error) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return shortMessage(errs[0])
	}

	var b strings.Builder
	b.WriteString("Configuration validation failed:\n")
	for _, err := range errs {
		b.WriteString("  • ")
		b.WriteString(shortMessage(err))
		b.WriteString("\n")
	}
	return b.String()
}

func shortMessage(err error) string {
	if devErr, ok := asDeviceError(err); ok {
		return devErr.Message
	}
	return err.Error()
}
