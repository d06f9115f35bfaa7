package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/muurk/apsetup/internal/state"
)

// Mock responses as sent by a device in setup mode
const (
	mockBrowseResponse = `[{"ssid":"home","encryption":4},{"ssid":"cafe","encryption":7}]`
	mockConfigResponse = `{"apConfigured":false,"deviceName":"esp-1234","webhook":"","chipId":"1234"}`
)

func TestNewClient(t *testing.T) {
	client := NewClient("192.168.4.1", 80)

	if client.BaseURL() != "http://192.168.4.1:80" {
		t.Errorf("BaseURL = %s, want http://192.168.4.1:80", client.BaseURL())
	}
	if client.HTTPClient == nil {
		t.Error("HTTPClient should not be nil")
	}
	if client.HTTPClient.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", client.HTTPClient.Timeout, DefaultTimeout)
	}
}

func TestNewClientDefaultPort(t *testing.T) {
	client := NewClient("192.168.4.1", 0)

	if client.BaseURL() != "http://192.168.4.1:80" {
		t.Errorf("BaseURL = %s, want http://192.168.4.1:80", client.BaseURL())
	}
}

func TestNewClientWithURL(t *testing.T) {
	client := NewClientWithURL("http://kitchen.local:8080/")

	if client.BaseURL() != "http://kitchen.local:8080" {
		t.Errorf("BaseURL = %s, want http://kitchen.local:8080", client.BaseURL())
	}
	if client.Hostname() != "kitchen.local" {
		t.Errorf("Hostname = %s, want kitchen.local", client.Hostname())
	}
}

func TestSetTimeout(t *testing.T) {
	client := NewClient("192.168.4.1", 80)
	client.SetTimeout(5 * time.Second)

	if client.HTTPClient.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", client.HTTPClient.Timeout)
	}
}

func TestRebase(t *testing.T) {
	client := NewClient("192.168.4.1", 80)
	client.Rebase("http://kitchen.local")

	if client.BaseURL() != "http://kitchen.local" {
		t.Errorf("BaseURL = %s, want http://kitchen.local", client.BaseURL())
	}
	if client.Hostname() != "kitchen.local" {
		t.Errorf("Hostname = %s, want kitchen.local", client.Hostname())
	}
}

func TestBrowse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("Method = %s, want GET", r.Method)
		}
		if r.URL.Path != PathBrowse {
			t.Errorf("Path = %s, want %s", r.URL.Path, PathBrowse)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(mockBrowseResponse))
	}))
	defer server.Close()

	aps, err := NewClientWithURL(server.URL).Browse(context.Background())
	if err != nil {
		t.Fatalf("Browse() error = %v", err)
	}

	want := []state.AccessPoint{{SSID: "home", Encryption: 4}, {SSID: "cafe", Encryption: 7}}
	if len(aps) != len(want) {
		t.Fatalf("len(aps) = %d, want %d", len(aps), len(want))
	}
	for i := range want {
		if aps[i] != want[i] {
			t.Errorf("aps[%d] = %+v, want %+v", i, aps[i], want[i])
		}
	}
}

func TestBrowseNullIsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("null"))
	}))
	defer server.Close()

	aps, err := NewClientWithURL(server.URL).Browse(context.Background())
	if err != nil {
		t.Fatalf("Browse() error = %v", err)
	}
	if aps == nil || len(aps) != 0 {
		t.Errorf("aps = %#v, want empty non-nil slice", aps)
	}
}

func TestFetchConfig(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != PathConfig {
			t.Errorf("Path = %s, want %s", r.URL.Path, PathConfig)
		}
		if ua := r.Header.Get("User-Agent"); !strings.HasPrefix(ua, "apsetup/") {
			t.Errorf("User-Agent = %q, want apsetup/ prefix", ua)
		}
		_, _ = w.Write([]byte(mockConfigResponse))
	}))
	defer server.Close()

	cfg, err := NewClientWithURL(server.URL).FetchConfig(context.Background())
	if err != nil {
		t.Fatalf("FetchConfig() error = %v", err)
	}

	if cfg.APConfigured {
		t.Error("APConfigured = true, want false")
	}
	if cfg.DeviceName != "esp-1234" {
		t.Errorf("DeviceName = %s, want esp-1234", cfg.DeviceName)
	}
}

func TestFetchConfigTrailingData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"apConfigured":true,"deviceName":"kitchen","webhook":"http://x"}</div>`))
	}))
	defer server.Close()

	cfg, err := NewClientWithURL(server.URL).FetchConfig(context.Background())
	if err != nil {
		t.Fatalf("FetchConfig() error = %v", err)
	}
	if cfg.DeviceName != "kitchen" || !cfg.APConfigured {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestFetchConfigMalformed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer server.Close()

	_, err := NewClientWithURL(server.URL).FetchConfig(context.Background())
	if !IsParseError(err) {
		t.Errorf("error = %v, want parse error", err)
	}
}

func TestFetchConfigHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := NewClientWithURL(server.URL).FetchConfig(context.Background())
	if !IsHTTPError(err) {
		t.Fatalf("error = %v, want HTTP error", err)
	}
	if devErr, _ := asDeviceError(err); devErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", devErr.StatusCode)
	}
}

func TestSave(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Method = %s, want POST", r.Method)
		}
		if r.URL.Path != PathSave {
			t.Errorf("Path = %s, want %s", r.URL.Path, PathSave)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %s, want application/json", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("body is not JSON: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	req := NewSaveRequest("kitchen", "http://hooks.local/k").WithNetwork("home", "12345678")
	if err := NewClientWithURL(server.URL).Save(context.Background(), req); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	want := map[string]any{
		"deviceName": "kitchen",
		"webhook":    "http://hooks.local/k",
		"ssid":       "home",
		"passkey":    "12345678",
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("body[%s] = %v, want %v", k, got[k], v)
		}
	}
}

func TestSaveOmitsNetworkFields(t *testing.T) {
	var raw string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		raw = string(body)
	}))
	defer server.Close()

	err := NewClientWithURL(server.URL).Save(context.Background(), NewSaveRequest("kitchen", "http://x"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if strings.Contains(raw, "ssid") || strings.Contains(raw, "passkey") {
		t.Errorf("body = %s, want no ssid or passkey", raw)
	}
}

func TestSaveRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte("Webhook must be a URL"))
	}))
	defer server.Close()

	err := NewClientWithURL(server.URL).Save(context.Background(), NewSaveRequest("kitchen", "nope"))
	if !IsRejectedError(err) {
		t.Fatalf("error = %v, want rejected error", err)
	}
	msg, ok := RejectionMessage(err)
	if !ok || msg != "Webhook must be a URL" {
		t.Errorf("RejectionMessage() = %q, %v; want the response body", msg, ok)
	}
}

func TestSaveUnhandledStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	err := NewClientWithURL(server.URL).Save(context.Background(), NewSaveRequest("kitchen", "http://x"))
	if !IsHTTPError(err) {
		t.Errorf("error = %v, want HTTP error for a status other than 200 or 422", err)
	}
}

func TestTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClientWithURL(server.URL)
	client.SetTimeout(20 * time.Millisecond)

	_, err := client.Browse(context.Background())
	devErr, ok := asDeviceError(err)
	if !ok || devErr.Type != ErrTypeTimeout {
		t.Errorf("error = %v, want timeout", err)
	}
}

func TestContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClientWithURL(server.URL).FetchConfig(ctx)
	if !IsCanceled(err) {
		t.Errorf("error = %v, want canceled", err)
	}
}

func TestConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := server.URL
	server.Close()

	_, err := NewClientWithURL(addr).Browse(context.Background())
	if !IsNetworkError(err) {
		t.Errorf("error = %v, want network error", err)
	}
}
