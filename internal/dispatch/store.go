// Package dispatch owns the console's single ApplicationState.
//
// Store.Dispatch is the only way the state changes: it snapshots the current
// state, reduces it with the action, replaces it, and hands (next, old) to the
// renderer. Dispatch is synchronous and must not be called from inside a
// reducer or a render rule; such a call is rejected with ErrReentrantDispatch.
// Follow-up dispatches from network results or timers are expected and are
// delivered on the same goroutine by the console's event loop.
package dispatch

import (
	"errors"
	"fmt"

	"github.com/muurk/apsetup/internal/logging"
	"github.com/muurk/apsetup/internal/state"
)

// ErrReentrantDispatch is returned when Dispatch is called while another
// dispatch is still running.
var ErrReentrantDispatch = errors.New("dispatch called from within a dispatch")

// Renderer draws the transition from old to next.
type Renderer interface {
	Render(next, old state.ApplicationState)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(next, old state.ApplicationState)

func (f RendererFunc) Render(next, old state.ApplicationState) { f(next, old) }

// Store holds the application state.
type Store struct {
	state       state.ApplicationState
	renderer    Renderer
	dispatching bool
	count       uint64
}

// NewStore returns a store holding the initial state. renderer may be nil.
func NewStore(renderer Renderer) *Store {
	return &Store{state: state.Initial(), renderer: renderer}
}

// State returns a copy of the current state.
func (s *Store) State() state.ApplicationState {
	return s.state.Clone()
}

// Dispatches returns the number of actions applied so far.
func (s *Store) Dispatches() uint64 {
	return s.count
}

// Dispatch applies a and renders the result.
func (s *Store) Dispatch(a state.Action) error {
	if s.dispatching {
		logging.Warn("Rejected re-entrant dispatch")
		return fmt.Errorf("%s: %w", a, ErrReentrantDispatch)
	}
	s.dispatching = true
	defer func() { s.dispatching = false }()

	old := s.state
	next := state.Reduce(old, a)
	s.state = next
	s.count++

	logging.LogDispatch(a.String(), old.Connection.String(), next.Connection.String())

	if s.renderer != nil {
		s.renderer.Render(next.Clone(), old.Clone())
	}
	return nil
}
