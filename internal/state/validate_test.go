package state

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldRuleValid(t *testing.T) {
	tests := []struct {
		name  string
		rule  FieldRule
		value string
		want  bool
	}{
		{"empty passkey", PasskeyRule, "", false},
		{"short passkey", PasskeyRule, "12345678", true},
		{"passkey at max", PasskeyRule, strings.Repeat("a", 32), true},
		{"passkey over max", PasskeyRule, strings.Repeat("a", 33), false},
		{"empty device name", DeviceNameRule, "", false},
		{"device name 63", DeviceNameRule, strings.Repeat("k", 63), true},
		{"device name at max", DeviceNameRule, strings.Repeat("k", 64), true},
		{"device name over max", DeviceNameRule, strings.Repeat("k", 65), false},
		{"webhook at max", WebhookRule, strings.Repeat("w", 256), true},
		{"webhook over max", WebhookRule, strings.Repeat("w", 257), false},
		{"multibyte counted in runes", PasskeyRule, strings.Repeat("é", 32), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rule.Valid(tt.value))
		})
	}
}

func TestFieldRuleErrorLabel(t *testing.T) {
	tests := []struct {
		name  string
		rule  FieldRule
		value string
		want  string
	}{
		{"empty", DeviceNameRule, "", LabelRequired},
		{"inside bounds", DeviceNameRule, strings.Repeat("k", 63), ""},
		{"at max keeps too-long label", DeviceNameRule, strings.Repeat("k", 64), LabelTooLong},
		{"over max", DeviceNameRule, strings.Repeat("k", 65), LabelTooLong},
		{"passkey over max", PasskeyRule, strings.Repeat("p", 40), LabelTooLong},
		{"webhook empty", WebhookRule, "", LabelRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rule.ErrorLabel(tt.value))
		})
	}
}

func TestValidIsPureFunctionOfValue(t *testing.T) {
	fs := FieldState{}
	a := ReduceField(DeviceNameRule, fs, NewChangeDeviceName("kitchen"))
	b := ReduceField(DeviceNameRule, FieldState{Value: "other", Valid: false, Changed: true}, NewChangeDeviceName("kitchen"))

	assert.Equal(t, a, b)
	assert.True(t, a.Valid)
	assert.True(t, a.Changed)
}

func TestReduceFieldIgnoresForeignActions(t *testing.T) {
	fs := FieldState{Value: "secret", Valid: true, Changed: true}

	assert.Equal(t, fs, ReduceField(PasskeyRule, fs, NewChangeDeviceName("kitchen")))
	assert.Equal(t, fs, ReduceField(PasskeyRule, fs, NewScanning()))
	assert.Equal(t, fs, ReduceField(PasskeyRule, fs, NewFetchedConfig(DeviceConfig{DeviceName: "x", Webhook: "y"})))
	assert.Equal(t, fs, ReduceField(WebhookRule, fs, NewChangePasskey("nope")))
}

func TestReduceFieldFetchedConfig(t *testing.T) {
	cfg := DeviceConfig{DeviceName: "foo", Webhook: ""}

	name := ReduceField(DeviceNameRule, FieldState{}, NewFetchedConfig(cfg))
	assert.Equal(t, FieldState{Value: "foo", Valid: true, Changed: true}, name)

	hook := ReduceField(WebhookRule, FieldState{}, NewFetchedConfig(cfg))
	assert.Equal(t, FieldState{Value: "", Valid: false, Changed: false}, hook)
}

func TestRuleFor(t *testing.T) {
	for _, f := range AllFields {
		r, ok := RuleFor(f)
		assert.True(t, ok)
		assert.Equal(t, f, r.Field)
	}

	_, ok := RuleFor(Field("ssid"))
	assert.False(t, ok)
}
