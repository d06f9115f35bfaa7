package console

import (
	"github.com/muurk/apsetup/internal/dispatch"
	"github.com/muurk/apsetup/internal/gateway"
	"github.com/muurk/apsetup/internal/state"
)

// ConfigResult is the outcome of GET /config.json.
type ConfigResult struct {
	Ticket  dispatch.Ticket
	Config  *state.DeviceConfig
	Err     error
	Restore state.Phase
}

// BrowseResult is the outcome of GET /browse.json.
type BrowseResult struct {
	Ticket  dispatch.Ticket
	APs     []state.AccessPoint
	Err     error
	Restore state.Phase
}

// SaveResult is the outcome of POST /save.
type SaveResult struct {
	Ticket  dispatch.Ticket
	Request *gateway.SaveRequest
	Err     error
	Restore state.Phase
}

// SaveSettled fires once the post-save delay has passed.
type SaveSettled struct {
	Ticket  dispatch.Ticket
	Request *gateway.SaveRequest
}

// RequestFailed reports a request that ended without a usable answer. The
// form has already been returned to its previous phase.
type RequestFailed struct {
	Kind dispatch.RequestKind
	Err  error
}

// Navigated reports that the console now talks to the device at URL.
type Navigated struct {
	URL string
}
