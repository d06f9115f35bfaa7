// Package console drives a device in setup mode through the Store.
//
// The Controller turns user intent into Actions and device requests into
// tea.Cmds. A request runs off the event loop, and its result comes back as a
// message that Handle turns into Actions, so every dispatch happens on
// the goroutine that calls Handle. The Bubble Tea program provides that loop
// in the interactive console; Run provides it for headless commands and tests.
package console

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/muurk/apsetup/internal/dispatch"
	"github.com/muurk/apsetup/internal/gateway"
	"github.com/muurk/apsetup/internal/logging"
	"github.com/muurk/apsetup/internal/state"
	"github.com/muurk/apsetup/internal/urls"
)

// DefaultSaveDelay is how long a configured device is given to apply a save
// before the console follows it to its new name.
const DefaultSaveDelay = 1000 * time.Millisecond

// Gateway is the device API the controller needs.
type Gateway interface {
	Browse(ctx context.Context) ([]state.AccessPoint, error)
	FetchConfig(ctx context.Context) (*state.DeviceConfig, error)
	Save(ctx context.Context, req *gateway.SaveRequest) error
}

// Navigator follows a device to a new address.
type Navigator interface {
	Hostname() string
	Navigate(url string) error
}

// ClientNavigator navigates by pointing a gateway client at the new address.
type ClientNavigator struct {
	Client *gateway.Client
}

func (n ClientNavigator) Hostname() string { return n.Client.Hostname() }

func (n ClientNavigator) Navigate(url string) error {
	n.Client.Rebase(url)
	return nil
}

// Controller runs the console's device flows.
type Controller struct {
	store     *dispatch.Store
	gateway   Gateway
	tracker   *dispatch.Tracker
	navigator Navigator
	saveDelay time.Duration
	onSaved   func(req *gateway.SaveRequest)
	ctx       context.Context
}

// Option configures a Controller.
type Option func(*Controller)

// WithNavigator sets the navigator used after a configured device is saved.
func WithNavigator(n Navigator) Option {
	return func(c *Controller) { c.navigator = n }
}

// WithSaveDelay overrides DefaultSaveDelay.
func WithSaveDelay(d time.Duration) Option {
	return func(c *Controller) { c.saveDelay = d }
}

// WithOnSaved registers a hook called after every successful save.
func WithOnSaved(fn func(req *gateway.SaveRequest)) Option {
	return func(c *Controller) { c.onSaved = fn }
}

// WithContext sets the context device requests run under.
func WithContext(ctx context.Context) Option {
	return func(c *Controller) { c.ctx = ctx }
}

// NewController creates a controller dispatching into store and talking to gw.
// When gw is a *gateway.Client and no navigator is given, navigation rebases
// that client.
func NewController(store *dispatch.Store, gw Gateway, opts ...Option) *Controller {
	c := &Controller{
		store:     store,
		gateway:   gw,
		tracker:   dispatch.NewTracker(),
		saveDelay: DefaultSaveDelay,
		ctx:       context.Background(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.navigator == nil {
		if client, ok := gw.(*gateway.Client); ok {
			c.navigator = ClientNavigator{Client: client}
		}
	}
	return c
}

// State returns a copy of the current state.
func (c *Controller) State() state.ApplicationState {
	return c.store.State()
}

func (c *Controller) dispatch(a state.Action) {
	if err := c.store.Dispatch(a); err != nil {
		logging.Error("Dispatch failed", zap.String("action", a.String()), zap.Error(err))
	}
}

// Bootstrap loads the device configuration and, for a device that has no
// network yet, scans for access points.
func (c *Controller) Bootstrap() tea.Cmd {
	return c.FetchConfig()
}

// FetchConfig requests the device configuration.
func (c *Controller) FetchConfig() tea.Cmd {
	restore := c.store.State().Connection
	c.dispatch(state.NewFetchingConfig())
	ticket := c.tracker.Begin(dispatch.RequestConfig)

	ctx := c.ctx
	gw := c.gateway
	return func() tea.Msg {
		cfg, err := gw.FetchConfig(ctx)
		return ConfigResult{Ticket: ticket, Config: cfg, Err: err, Restore: restore}
	}
}

// Browse asks the device to scan for access points.
func (c *Controller) Browse() tea.Cmd {
	restore := c.store.State().Connection
	c.dispatch(state.NewScanning())
	ticket := c.tracker.Begin(dispatch.RequestBrowse)

	ctx := c.ctx
	gw := c.gateway
	return func() tea.Msg {
		aps, err := gw.Browse(ctx)
		return BrowseResult{Ticket: ticket, APs: aps, Err: err, Restore: restore}
	}
}

// ChangeAP selects the scanned access point named ssid. An unknown ssid
// clears the selection.
func (c *Controller) ChangeAP(ssid string) {
	c.dispatch(state.NewChangeAP(c.store.State().FindAP(ssid)))
}

func (c *Controller) ChangePasskey(value string) {
	c.dispatch(state.NewChangePasskey(value))
}

func (c *Controller) ChangeDeviceName(value string) {
	c.dispatch(state.NewChangeDeviceName(value))
}

func (c *Controller) ChangeWebhook(value string) {
	c.dispatch(state.NewChangeWebhook(value))
}

// Change dispatches the CHANGE_* action for field.
func (c *Controller) Change(field state.Field, value string) {
	switch field {
	case state.FieldPasskey:
		c.ChangePasskey(value)
	case state.FieldDeviceName:
		c.ChangeDeviceName(value)
	case state.FieldWebhook:
		c.ChangeWebhook(value)
	}
}

// Submit saves the form. It returns nil without saving when the device
// needs a network and none is selected.
func (c *Controller) Submit() tea.Cmd {
	s := c.store.State()
	if !s.APConfigured && s.AP == nil {
		logging.Warn("Save ignored: no network selected")
		return nil
	}

	req := gateway.SaveRequestFromState(s)
	c.dispatch(state.NewSaving())
	ticket := c.tracker.Begin(dispatch.RequestSave)

	ctx := c.ctx
	gw := c.gateway
	return func() tea.Msg {
		err := gw.Save(ctx, req)
		return SaveResult{Ticket: ticket, Request: req, Err: err, Restore: s.Connection}
	}
}

// Handle applies a result message and returns any follow-up command.
// Messages it does not know are ignored.
func (c *Controller) Handle(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ConfigResult:
		if !c.current(msg.Ticket) {
			return nil
		}
		if msg.Err != nil {
			return c.fail(msg.Ticket, msg.Restore, msg.Err)
		}
		c.dispatch(state.NewFetchedConfig(*msg.Config))
		if !msg.Config.APConfigured {
			return c.Browse()
		}
		return nil

	case BrowseResult:
		if !c.current(msg.Ticket) {
			return nil
		}
		if msg.Err != nil {
			return c.fail(msg.Ticket, msg.Restore, msg.Err)
		}
		c.dispatch(state.NewScanningComplete(msg.APs))
		return nil

	case SaveResult:
		if !c.current(msg.Ticket) {
			return nil
		}
		if reason, ok := gateway.RejectionMessage(msg.Err); ok {
			logging.Info("Device rejected configuration", zap.String("reason", reason))
			c.dispatch(state.NewConnectionError(reason))
			return nil
		}
		if msg.Err != nil {
			return c.fail(msg.Ticket, msg.Restore, msg.Err)
		}
		return c.saved(msg)

	case SaveSettled:
		if !c.current(msg.Ticket) {
			return nil
		}
		return c.settle(msg.Request)
	}
	return nil
}

func (c *Controller) current(t dispatch.Ticket) bool {
	if c.tracker.Current(t) {
		return true
	}
	logging.LogStaleResponse(t.Kind.String(), t.Generation, c.tracker.Latest(t.Kind))
	return false
}

// fail restores the phase from before the request so the form stays usable.
func (c *Controller) fail(t dispatch.Ticket, restore state.Phase, err error) tea.Cmd {
	if gateway.IsCanceled(err) {
		logging.Debug("Request canceled", zap.String("kind", t.Kind.String()))
	} else {
		logging.Warn("Request failed",
			zap.String("kind", t.Kind.String()),
			zap.String("restore", restore.String()),
			zap.Error(err),
		)
	}
	c.dispatch(state.NewRequestFailed(restore, gateway.GetShortErrorMessage(err)))

	failure := RequestFailed{Kind: t.Kind, Err: err}
	return func() tea.Msg { return failure }
}

func (c *Controller) saved(msg SaveResult) tea.Cmd {
	c.dispatch(state.NewConnected())
	logging.Info("Configuration saved", zap.String("device_name", msg.Request.DeviceName))

	if c.onSaved != nil {
		c.onSaved(msg.Request)
	}

	if !c.store.State().APConfigured {
		return nil
	}
	settled := SaveSettled{Ticket: msg.Ticket, Request: msg.Request}
	return tea.Tick(c.saveDelay, func(time.Time) tea.Msg { return settled })
}

// settle reports the saved values back into the form and follows the device
// to its new name.
func (c *Controller) settle(req *gateway.SaveRequest) tea.Cmd {
	c.dispatch(state.NewFetchedConfig(req.ToConfig()))

	name := c.store.State().UI.DeviceName.Value
	if c.navigator == nil || c.navigator.Hostname() == urls.LocalHostname(name) {
		return nil
	}

	link := urls.DeviceLink(name)
	if err := c.navigator.Navigate(link); err != nil {
		logging.Warn("Navigation failed", zap.String("url", link), zap.Error(err))
		return nil
	}
	logging.Info("Following device to new address", zap.String("url", link))

	navigated := Navigated{URL: link}
	return func() tea.Msg { return navigated }
}
