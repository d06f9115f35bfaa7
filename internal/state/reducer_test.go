package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitial(t *testing.T) {
	s := Initial()

	assert.True(t, s.APConfigured)
	assert.Equal(t, PhaseNotConfigured, s.Connection)
	assert.Empty(t, s.APs)
	assert.Nil(t, s.AP)
	assert.Empty(t, s.Error)
	assert.Equal(t, FieldState{}, s.UI.DeviceName)
}

func TestReduceScanningCompleteEmpty(t *testing.T) {
	s := Reduce(Initial(), NewScanning())
	s = Reduce(s, NewScanningComplete([]AccessPoint{}))

	assert.Nil(t, s.AP)
	assert.Empty(t, s.APs)
	assert.Equal(t, PhaseScanningComplete, s.Connection)
}

func TestReduceScanningCompleteSelectsFirst(t *testing.T) {
	aps := []AccessPoint{{SSID: "A", Encryption: 7}, {SSID: "B", Encryption: 4}}

	s := Reduce(Initial(), NewScanningComplete(aps))

	require.NotNil(t, s.AP)
	assert.Equal(t, AccessPoint{SSID: "A", Encryption: 7}, *s.AP)
	assert.Equal(t, aps, s.APs)
}

func TestReduceAPsReplacedWholesale(t *testing.T) {
	s := Reduce(Initial(), NewScanningComplete([]AccessPoint{{SSID: "A"}, {SSID: "B"}}))
	s = Reduce(s, NewScanningComplete([]AccessPoint{{SSID: "C"}}))

	assert.Equal(t, []AccessPoint{{SSID: "C"}}, s.APs)
}

func TestReduceDoesNotAliasActionSlices(t *testing.T) {
	aps := []AccessPoint{{SSID: "A", Encryption: 4}}
	a := NewScanningComplete(aps)
	s := Reduce(Initial(), a)

	a.APs[0].SSID = "mutated"
	aps[0].SSID = "mutated"

	assert.Equal(t, "A", s.APs[0].SSID)
	assert.Equal(t, "A", s.AP.SSID)
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	s := Reduce(Initial(), NewScanningComplete([]AccessPoint{{SSID: "A", Encryption: 4}}))
	before := s.Clone()

	_ = Reduce(s, NewChangeAP(&AccessPoint{SSID: "Z", Encryption: 7}))
	_ = Reduce(s, NewScanningComplete(nil))
	_ = Reduce(s, NewChangeDeviceName("kitchen"))

	assert.Equal(t, before, s)
}

func TestReduceChangeAP(t *testing.T) {
	s := Reduce(Initial(), NewScanningComplete([]AccessPoint{{SSID: "A", Encryption: 4}, {SSID: "B", Encryption: 7}}))
	s = Reduce(s, NewChangeAP(s.FindAP("B")))

	require.NotNil(t, s.AP)
	assert.Equal(t, "B", s.AP.SSID)
	assert.True(t, s.SelectedIsOpen())

	s = Reduce(s, NewChangeAP(nil))
	assert.Nil(t, s.AP)
	assert.False(t, s.SelectedIsOpen())
}

func TestReduceAPConfigured(t *testing.T) {
	s := Initial()

	s = Reduce(s, NewFetchedConfig(DeviceConfig{APConfigured: false, DeviceName: "x"}))
	assert.True(t, s.APConfigured, "fetched config does not touch apConfigured")

	s = Reduce(s, NewScanning())
	assert.False(t, s.APConfigured)

	s = Reduce(s, NewConnected())
	s = Reduce(s, NewFetchedConfig(DeviceConfig{APConfigured: true}))
	assert.False(t, s.APConfigured, "no path returns apConfigured to true")
}

func TestReduceError(t *testing.T) {
	s := Reduce(Initial(), NewConnectionError("webhook is invalid"))
	assert.Equal(t, "webhook is invalid", s.Error)
	assert.Equal(t, PhaseConnectionError, s.Connection)

	s = Reduce(s, NewSaving())
	assert.Equal(t, "webhook is invalid", s.Error, "error is never cleared automatically")
}

func TestReduceConnectionTable(t *testing.T) {
	tests := []struct {
		action Action
		want   Phase
	}{
		{NewFetchedConfig(DeviceConfig{}), PhaseFetchedConfig},
		{NewSaving(), PhaseSaving},
		{NewScanning(), PhaseScanning},
		{NewScanningComplete(nil), PhaseScanningComplete},
		{NewConnected(), PhaseConnected},
		{NewConnectionError("x"), PhaseConnectionError},
		{NewFetchingConfig(), PhaseNotConfigured},
		{NewFetchingAPs(), PhaseNotConfigured},
		{NewFetchedAPs(), PhaseNotConfigured},
		{NewChangeAP(nil), PhaseNotConfigured},
		{NewChangePasskey("x"), PhaseNotConfigured},
		{NewChangeDeviceName("x"), PhaseNotConfigured},
		{NewChangeWebhook("x"), PhaseNotConfigured},
		{NewRequestFailed(PhaseScanningComplete, "boom"), PhaseScanningComplete},
	}

	for _, tt := range tests {
		t.Run(tt.action.String(), func(t *testing.T) {
			s := Reduce(Initial(), tt.action)
			assert.Equal(t, tt.want, s.Connection)
		})
	}
}

func TestReduceRequestFailedRestoresOnlyPhase(t *testing.T) {
	s := Reduce(Initial(), NewScanningComplete([]AccessPoint{{SSID: "A", Encryption: 4}}))
	s = Reduce(s, NewChangeDeviceName("kitchen"))
	s = Reduce(s, NewSaving())
	before := s.Clone()

	s = Reduce(s, NewRequestFailed(PhaseScanningComplete, "status 500"))

	assert.Equal(t, PhaseScanningComplete, s.Connection)
	assert.Equal(t, before.UI, s.UI)
	assert.Equal(t, before.Error, s.Error)
	assert.Equal(t, before.APs, s.APs)
}

func TestReduceFetchedConfigRoundTrip(t *testing.T) {
	a := NewFetchedConfig(DeviceConfig{DeviceName: "foo", Webhook: "http://x"})

	once := Reduce(Initial(), a)
	twice := Reduce(once, a)

	assert.Equal(t, once.UI.DeviceName, twice.UI.DeviceName)
	assert.Equal(t, once.UI.Webhook, twice.UI.Webhook)
	assert.Equal(t, FieldState{Value: "foo", Valid: true, Changed: true}, twice.UI.DeviceName)
}

func TestFindAPLastMatchWins(t *testing.T) {
	s := Reduce(Initial(), NewScanningComplete([]AccessPoint{
		{SSID: "dup", Encryption: 4},
		{SSID: "other", Encryption: 4},
		{SSID: "dup", Encryption: 7},
	}))

	ap := s.FindAP("dup")
	require.NotNil(t, ap)
	assert.Equal(t, 7, ap.Encryption)
	assert.Nil(t, s.FindAP("missing"))
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "SCANNING_COMPLETE", PhaseScanningComplete.String())
	assert.Equal(t, "CONNECTION_ERROR", PhaseConnectionError.String())
	assert.Equal(t, "Phase(42)", Phase(42).String())
	assert.True(t, PhaseScanning.InputsLocked())
	assert.False(t, PhaseFetchedConfig.InputsLocked())
}

func TestPhaseFor(t *testing.T) {
	p, ok := PhaseFor(Saving)
	assert.True(t, ok)
	assert.Equal(t, PhaseSaving, p)

	_, ok = PhaseFor(FetchingConfig)
	assert.False(t, ok)
}
