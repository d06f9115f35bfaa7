package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestRunTaskSuccess(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	err := p.RunTask(Task{
		Title:   "Save",
		Command: "apsetup save",
		Params:  []Param{{Key: "Device", Value: "http://192.168.4.1"}, {Key: "Webhook", Value: ""}},
	}, func(onStep StepCallback) ([]Param, error) {
		onStep("Contacting device", StepRunning, "")
		onStep("Contacting device", StepDone, "not configured")
		onStep("Following device", StepSkipped, "")
		return []Param{{Key: "Device", Value: "kitchen"}}, nil
	})
	if err != nil {
		t.Fatalf("RunTask() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"SAVE", "apsetup save", "http://192.168.4.1", "Contacting device", "(not configured)", "Following device", "SUCCESS", "kitchen", "Duration"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Webhook:") {
		t.Error("empty params should be omitted from the header")
	}
	if strings.Contains(out, RunningMarker) {
		t.Error("running steps should not be drawn to a non-terminal")
	}
}

func TestRunTaskFailure(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	failure := errors.New("connection refused")

	err := p.RunTask(Task{
		Title:   "Show",
		Command: "apsetup show",
		Hints:   func(error) []string { return []string{"Join the device's network"} },
	}, func(onStep StepCallback) ([]Param, error) {
		onStep("Fetching configuration", StepFailed, "")
		return nil, failure
	})
	if !errors.Is(err, failure) {
		t.Fatalf("RunTask() error = %v, want %v", err, failure)
	}

	out := buf.String()
	for _, want := range []string{"FAILED", "connection refused", "Troubleshooting:", "Join the device's network"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintList(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintList([]ListItem{
		{Title: "kitchen", Details: []Param{{Key: "SSID", Value: "home"}, {Key: "Webhook", Value: ""}}},
		{Title: "porch"},
	})

	out := buf.String()
	if !strings.Contains(out, "1. kitchen") || !strings.Contains(out, "2. porch") {
		t.Errorf("list not numbered:\n%s", out)
	}
	if strings.Contains(out, "Webhook") {
		t.Error("empty details should be omitted")
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"yes\n", true},
		{"YES\n", true},
		{"yes", true},
		{"no\n", false},
		{"\n", false},
		{"", false},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		got := NewPrinter(&buf).Confirm(strings.NewReader(tt.input), "Forget device", []string{"kitchen will be removed"})
		if got != tt.want {
			t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
		if !strings.Contains(buf.String(), "kitchen will be removed") {
			t.Errorf("Confirm(%q) did not print the warning", tt.input)
		}
	}
}

func TestClampWidth(t *testing.T) {
	tests := []struct {
		width int
		err   error
		want  int
	}{
		{80, nil, 80},
		{20, nil, MinTerminalWidth},
		{300, nil, MaxContentWidth},
		{120, errors.New("not a terminal"), MinTerminalWidth},
	}

	for _, tt := range tests {
		if got := clampWidth(tt.width, tt.err); got != tt.want {
			t.Errorf("clampWidth(%d, %v) = %d, want %d", tt.width, tt.err, got, tt.want)
		}
	}
}
