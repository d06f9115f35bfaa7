package main

import (
	"strconv"
	"testing"

	"github.com/muurk/apsetup/internal/state"
)

func TestParseNetworks(t *testing.T) {
	aps, passkeys, err := parseNetworks([]string{"home:4:correct:horse", "cafe:7"})
	if err != nil {
		t.Fatalf("parseNetworks() error = %v", err)
	}
	if len(aps) != 2 || aps[0].SSID != "home" || aps[0].Encryption != 4 || !aps[1].IsOpen() {
		t.Errorf("aps = %+v", aps)
	}
	if passkeys["home"] != "correct:horse" {
		t.Errorf("passkey = %q, want the remainder after the second colon", passkeys["home"])
	}
	if _, ok := passkeys["cafe"]; ok {
		t.Error("open network should have no passkey")
	}
}

func TestParseNetworksDefault(t *testing.T) {
	aps, passkeys, err := parseNetworks(nil)
	if err != nil || aps != nil || passkeys != nil {
		t.Errorf("parseNetworks(nil) = %v, %v, %v", aps, passkeys, err)
	}
}

func TestParseNetworksInvalid(t *testing.T) {
	tests := []string{
		"home",
		":4",
		"home:wpa",
		"cafe:" + strconv.Itoa(state.EncryptionOpen) + ":secret",
	}

	for _, value := range tests {
		if _, _, err := parseNetworks([]string{value}); err == nil {
			t.Errorf("parseNetworks(%q) should fail", value)
		}
	}
}

