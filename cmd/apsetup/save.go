package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/muurk/apsetup/internal/console"
	"github.com/muurk/apsetup/internal/gateway"
	"github.com/muurk/apsetup/internal/state"
	"github.com/muurk/apsetup/internal/ui"
	"github.com/muurk/apsetup/internal/urls"
)

// saveCmd saves a configuration without the interactive console
var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save a configuration to the device",
	Long: `Configure the device without the interactive console.

A device in setup mode is scanned for networks and told to join --ssid. Once
a device has joined a network only its name and webhook can change; --ssid
and --passkey are then ignored. Unset --name and --webhook keep the device's
current values.

The passkey can also be given as APSETUP_PASSKEY.`,
	Example: `  # First-time setup from the device's own access point
  apsetup save --ssid home --passkey 'correct-horse' --name kitchen

  # Rename a configured device and change its webhook
  apsetup save --url http://kitchen.local --name pantry --webhook http://hooks.local/pantry`,
	RunE: runSave,
}

func init() {
	saveCmd.Flags().String("ssid", "", "Network for the device to join (setup mode only)")
	saveCmd.Flags().String("passkey", "", "Network passkey")
	saveCmd.Flags().String("name", "", "Device name")
	saveCmd.Flags().String("webhook", "", "Webhook URL")
}

// saveOptions are the form values to submit. A nil pointer keeps the value
// the device reported.
type saveOptions struct {
	SSID       string
	Passkey    string
	DeviceName *string
	Webhook    *string
}

func runSave(cmd *cobra.Command, args []string) error {
	client, err := settings.Client(cmd.Context())
	if err != nil {
		return err
	}

	opts := saveOptions{
		SSID:    settings.String("ssid"),
		Passkey: settings.String("passkey"),
	}
	if settings.IsSet("name") {
		name := settings.String("name")
		opts.DeviceName = &name
	}
	if settings.IsSet("webhook") {
		webhook := settings.String("webhook")
		opts.Webhook = &webhook
	}

	controller, _ := newConsole(cmd.Context(), client, console.WithOnSaved(recordSave(client)))

	p := ui.NewPrinter(cmd.OutOrStdout())
	return p.RunTask(ui.Task{
		Title:   "Save",
		Command: "apsetup save",
		Params: []ui.Param{
			{Key: "Device", Value: client.BaseURL()},
			{Key: "Network", Value: opts.SSID},
		},
		Hints: hints,
	}, func(onStep ui.StepCallback) ([]ui.Param, error) {
		return headlessSave(controller, opts, onStep)
	})
}

// headlessSave runs the console flow without a terminal: fetch, scan when
// needed, fill the form, validate, then submit and follow the device.
func headlessSave(c *console.Controller, opts saveOptions, onStep ui.StepCallback) ([]ui.Param, error) {
	const (
		stepFetch  = "Reading device configuration"
		stepScan   = "Scanning for networks"
		stepForm   = "Checking configuration"
		stepSave   = "Saving"
		stepFollow = "Following device"
	)

	onStep(stepFetch, ui.StepRunning, "")
	msgs := c.Run(c.Bootstrap())
	if err := failure(msgs); err != nil {
		onStep(stepFetch, ui.StepFailed, "")
		return nil, err
	}
	s := c.State()
	if s.APConfigured {
		onStep(stepFetch, ui.StepDone, "joined a network")
	} else {
		onStep(stepFetch, ui.StepDone, "setup mode")
		onStep(stepScan, ui.StepDone, strconv.Itoa(len(s.APs))+" networks")
	}

	onStep(stepForm, ui.StepRunning, "")
	if err := fillForm(c, opts); err != nil {
		onStep(stepForm, ui.StepFailed, "")
		return nil, err
	}
	req := gateway.SaveRequestFromState(c.State())
	if errs := gateway.ValidateSaveRequest(req); len(errs) > 0 {
		onStep(stepForm, ui.StepFailed, "")
		return nil, gateway.NewValidationError(gateway.FormatValidationErrors(errs))
	}
	note := ""
	if s.APConfigured && opts.SSID != "" {
		note = "--ssid ignored, the device has joined a network"
	}
	onStep(stepForm, ui.StepDone, note)

	onStep(stepSave, ui.StepRunning, "")
	submit := c.Submit()
	if submit == nil {
		onStep(stepSave, ui.StepFailed, "")
		return nil, gateway.NewValidationError("no network selected")
	}
	msgs = c.Run(submit)
	if err := failure(msgs); err != nil {
		onStep(stepSave, ui.StepFailed, "")
		return nil, err
	}
	if after := c.State(); after.Connection == state.PhaseConnectionError {
		onStep(stepSave, ui.StepFailed, "")
		return nil, gateway.NewRejectedError(after.Error)
	}
	onStep(stepSave, ui.StepDone, "")

	details := []ui.Param{
		{Key: "Device name", Value: req.DeviceName},
		{Key: "Webhook", Value: req.Webhook},
	}
	if req.SSID != nil {
		details = append(details, ui.Param{Key: "Network", Value: *req.SSID})
	}
	details = append(details, ui.Param{Key: "Link", Value: urls.DeviceLink(req.DeviceName)})

	if url := navigated(msgs); url != "" {
		onStep(stepFollow, ui.StepDone, url)
	} else if s.APConfigured {
		onStep(stepFollow, ui.StepSkipped, "name unchanged")
	}
	return details, nil
}

// fillForm dispatches the requested changes the way the console's inputs do.
func fillForm(c *console.Controller, opts saveOptions) error {
	if opts.DeviceName != nil {
		c.ChangeDeviceName(*opts.DeviceName)
	}
	if opts.Webhook != nil {
		c.ChangeWebhook(*opts.Webhook)
	}

	s := c.State()
	if s.APConfigured {
		return nil
	}

	if opts.SSID == "" {
		return gateway.NewValidationError("--ssid is required for a device in setup mode" + available(s.APs))
	}
	c.ChangeAP(opts.SSID)
	if c.State().AP == nil {
		return gateway.NewValidationError(fmt.Sprintf("network %q not found by the device%s", opts.SSID, available(s.APs)))
	}
	if !c.State().SelectedIsOpen() {
		c.ChangePasskey(opts.Passkey)
	}
	return nil
}

func available(aps []state.AccessPoint) string {
	if len(aps) == 0 {
		return ""
	}
	names := make([]string, 0, len(aps))
	for _, ap := range aps {
		names = append(names, ap.SSID)
	}
	return " (available: " + strings.Join(names, ", ") + ")"
}

func failure(msgs []tea.Msg) error {
	for _, msg := range msgs {
		if failed, ok := msg.(console.RequestFailed); ok {
			if failed.Err == nil {
				return errors.New(failed.Kind.String() + " failed")
			}
			return failed.Err
		}
	}
	return nil
}

func navigated(msgs []tea.Msg) string {
	for _, msg := range msgs {
		if nav, ok := msg.(console.Navigated); ok {
			return nav.URL
		}
	}
	return ""
}
