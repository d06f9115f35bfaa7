package gateway

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"syscall"
	"testing"
)

// timeoutError implements net.Error with Timeout() == true
type timeoutError struct{}

func (e *timeoutError) Error() string   { return "i/o timeout" }
func (e *timeoutError) Timeout() bool   { return true }
func (e *timeoutError) Temporary() bool { return true }

func dialError(inner error) error {
	return &url.Error{
		Op:  "Get",
		URL: "http://192.168.4.1",
		Err: &net.OpError{Op: "dial", Net: "tcp", Err: inner},
	}
}

func TestClassifyNetworkError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		typ     ErrorType
		subtype NetworkErrorSubtype
	}{
		{"timeout", dialError(&timeoutError{}), ErrTypeTimeout, NetworkErrorTimeout},
		{"refused", dialError(syscall.ECONNREFUSED), ErrTypeConnectionRefused, NetworkErrorConnectionRefused},
		{"host unreachable", dialError(syscall.EHOSTUNREACH), ErrTypeNetwork, NetworkErrorHostUnreachable},
		{"network unreachable", dialError(syscall.ENETUNREACH), ErrTypeNetwork, NetworkErrorNetworkUnreachable},
		{"dns", &url.Error{Op: "Get", URL: "http://kitchen.local", Err: &net.DNSError{Name: "kitchen.local", Err: "no such host"}}, ErrTypeDNS, NetworkErrorDNS},
		{"generic", errors.New("something odd"), ErrTypeNetwork, NetworkErrorGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			devErr := ClassifyNetworkError(tt.err, "192.168.4.1")
			if devErr == nil {
				t.Fatal("Expected DeviceError, got nil")
			}
			if devErr.Type != tt.typ {
				t.Errorf("Type = %v, want %v", devErr.Type, tt.typ)
			}
			if devErr.NetworkSubtype != tt.subtype {
				t.Errorf("NetworkSubtype = %v, want %v", devErr.NetworkSubtype, tt.subtype)
			}
			if devErr.Host != "192.168.4.1" {
				t.Errorf("Host = %s, want 192.168.4.1", devErr.Host)
			}
		})
	}
}

func TestClassifyNetworkErrorNil(t *testing.T) {
	if ClassifyNetworkError(nil, "") != nil {
		t.Error("Expected nil for nil error")
	}
}

func TestDeviceErrorUnwrap(t *testing.T) {
	inner := errors.New("inner")
	err := NewParseError("bad body", inner)

	if !errors.Is(err, inner) {
		t.Error("errors.Is should find the wrapped error")
	}
	if !strings.Contains(err.Error(), "caused by: inner") {
		t.Errorf("Error() = %s, want cause", err.Error())
	}
}

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("saving: %w", NewRejectedError("bad webhook"))

	if !IsRejectedError(err) {
		t.Error("IsRejectedError should unwrap")
	}
	if IsHTTPError(err) || IsParseError(err) || IsNetworkError(err) {
		t.Error("rejected error matched another predicate")
	}
	if msg, ok := RejectionMessage(err); !ok || msg != "bad webhook" {
		t.Errorf("RejectionMessage() = %q, %v", msg, ok)
	}
	if _, ok := RejectionMessage(NewHTTPError(500, "x")); ok {
		t.Error("RejectionMessage() should be false for HTTP errors")
	}
}

func TestErrorTypeString(t *testing.T) {
	tests := map[ErrorType]string{
		ErrTypeNetwork:  "Network Error",
		ErrTypeRejected: "Rejected",
		ErrTypeTimeout:  "Timeout",
		ErrTypeCanceled: "Canceled",
		ErrorType(99):   "ErrorType(99)",
	}
	for typ, want := range tests {
		if got := typ.String(); got != want {
			t.Errorf("String() = %s, want %s", got, want)
		}
	}
}

func TestGetShortErrorMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ClassifyNetworkError(dialError(&timeoutError{}), ""), "Device not responding (timeout)"},
		{ClassifyNetworkError(dialError(syscall.ECONNREFUSED), ""), "Device refused connection - is it in setup mode?"},
		{NewHTTPError(503, "x"), "Device error (HTTP 503)"},
		{NewRejectedError("Device name taken"), "Device name taken"},
		{NewValidationError("ssid is required"), "ssid is required"},
		{errors.New("plain"), "plain"},
	}
	for _, tt := range tests {
		if got := GetShortErrorMessage(tt.err); got != tt.want {
			t.Errorf("GetShortErrorMessage(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestGetTroubleshootingHint(t *testing.T) {
	hint := GetTroubleshootingHint(ClassifyNetworkError(dialError(syscall.EHOSTUNREACH), "10.0.0.9"))
	if !strings.Contains(hint, "ping 10.0.0.9") {
		t.Errorf("hint = %q, want ping suggestion with host", hint)
	}

	hint = GetTroubleshootingHint(NewRejectedError("Webhook must be a URL"))
	if !strings.Contains(hint, "Webhook must be a URL") {
		t.Errorf("hint = %q, want device reason", hint)
	}

	if GetTroubleshootingHint(errors.New("x")) == "" {
		t.Error("hint for unknown errors should not be empty")
	}
}
