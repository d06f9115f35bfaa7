package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/apsetup/internal/console"
	"github.com/muurk/apsetup/internal/gateway"
	"github.com/muurk/apsetup/internal/render"
	"github.com/muurk/apsetup/internal/state"
)

// focusOrder is the tab order of the form.
var focusOrder = []render.ElementID{
	render.ElementSSID,
	render.ElementPasskey,
	render.ElementDeviceName,
	render.ElementWebhook,
	render.ElementButton,
}

// textFields maps each text input to the field it edits.
var textFields = map[render.ElementID]state.Field{
	render.ElementPasskey:    state.FieldPasskey,
	render.ElementDeviceName: state.FieldDeviceName,
	render.ElementWebhook:    state.FieldWebhook,
}

// wrappers hide an element together with its label.
var wrappers = map[render.ElementID]render.ElementID{
	render.ElementSSID:    render.ElementSSIDWrapper,
	render.ElementPasskey: render.ElementPasskeyWrapper,
}

// Model is the interactive setup form. It forwards key presses to the
// Controller and draws the Document the render engine keeps up to date.
type Model struct {
	controller *console.Controller
	doc        *render.Document
	target     string

	inputs  map[render.ElementID]textinput.Model
	focus   int
	spinner spinner.Model
	help    help.Model
	keys    keyMap

	status    string
	statusErr bool

	Width  int
	Height int
}

// New creates the form model. doc must be the Document the controller's
// store renders into; target names the device for the header.
func New(controller *console.Controller, doc *render.Document, target string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	m := Model{
		controller: controller,
		doc:        doc,
		target:     target,
		inputs:     make(map[render.ElementID]textinput.Model, len(textFields)),
		spinner:    s,
		help:       help.New(),
		keys:       newKeyMap(),
	}

	for id, field := range textFields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Width = 40
		ti.Placeholder = placeholder(field)
		if field == state.FieldPasskey {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		m.inputs[id] = ti
	}
	return m
}

func placeholder(field state.Field) string {
	switch field {
	case state.FieldPasskey:
		return "network passkey"
	case state.FieldDeviceName:
		return "kitchen"
	default:
		return "http://example.com/hook"
	}
}

// Init loads the device configuration.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.controller.Bootstrap())
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case console.RequestFailed:
		m.status = gateway.GetShortErrorMessage(msg.Err)
		if hint := gateway.GetTroubleshootingHint(msg.Err); hint != "" {
			m.status += ": " + hint
		}
		m.statusErr = true

	case console.Navigated:
		m.status = "Now talking to " + msg.URL
		m.statusErr = false
		m.target = msg.URL
	}

	cmd := m.controller.Handle(msg)
	m.sync()
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Next):
		m.moveFocus(1)
		return m, nil

	case key.Matches(msg, m.keys.Prev):
		m.moveFocus(-1)
		return m, nil

	case key.Matches(msg, m.keys.Rescan):
		if !m.canRescan() {
			return m, nil
		}
		m.status = ""
		cmd := m.controller.Browse()
		m.sync()
		return m, cmd

	case key.Matches(msg, m.keys.Submit):
		if m.doc.Element(render.ElementButton).Disabled {
			m.moveFocus(1)
			return m, nil
		}
		m.status = ""
		cmd := m.controller.Submit()
		m.sync()
		return m, cmd
	}

	id := m.focused()
	if id == render.ElementSSID && (key.Matches(msg, m.keys.Left) || key.Matches(msg, m.keys.Right)) {
		step := 1
		if key.Matches(msg, m.keys.Left) {
			step = -1
		}
		m.cycleNetwork(step)
		return m, nil
	}

	ti, ok := m.inputs[id]
	if !ok || m.doc.Element(id).Disabled {
		return m, nil
	}
	var cmd tea.Cmd
	ti, cmd = ti.Update(msg)
	m.inputs[id] = ti

	if value := ti.Value(); value != m.doc.Value(id) {
		m.doc.SetValue(id, value)
		m.controller.Change(textFields[id], value)
		m.sync()
	}
	return m, cmd
}

// cycleNetwork selects the next or previous scanned network.
func (m *Model) cycleNetwork(step int) {
	el := m.doc.Element(render.ElementSSID)
	if el.Disabled || len(el.Options) == 0 || el.Options[0].Value == "" {
		return
	}
	i := el.SelectedOption()
	if i < 0 && step < 0 {
		i = 0
	}
	i = (i + step + len(el.Options)) % len(el.Options)

	value := el.Options[i].Value
	m.doc.Select(render.ElementSSID, value)
	m.controller.ChangeAP(value)
	m.sync()
}

// canRescan reports whether the network picker is visible and the device is
// idle. A device that has just saved is rejoining its network.
func (m Model) canRescan() bool {
	if m.doc.Element(render.ElementForm).Hidden || m.doc.Element(render.ElementSSIDWrapper).Hidden {
		return false
	}
	switch m.controller.State().Connection {
	case state.PhaseScanning, state.PhaseSaving, state.PhaseConnected:
		return false
	}
	return true
}

// focusable reports whether id can take focus in the current document.
func (m Model) focusable(id render.ElementID) bool {
	if m.doc.Element(render.ElementForm).Hidden {
		return false
	}
	if wrapper, ok := wrappers[id]; ok && m.doc.Element(wrapper).Hidden {
		return false
	}
	el := m.doc.Element(id)
	return !el.Hidden && !el.Disabled
}

func (m Model) focused() render.ElementID {
	return focusOrder[m.focus]
}

func (m *Model) moveFocus(step int) {
	for i := 1; i <= len(focusOrder); i++ {
		next := (m.focus + step*i + len(focusOrder)*i) % len(focusOrder)
		if m.focusable(focusOrder[next]) {
			m.focus = next
			break
		}
	}
	m.applyFocus()
}

// sync copies values the render engine wrote into the text inputs and keeps
// focus on an element that can take it.
func (m *Model) sync() {
	for id, ti := range m.inputs {
		if value := m.doc.Value(id); value != ti.Value() {
			ti.SetValue(value)
			m.inputs[id] = ti
		}
	}
	if !m.focusable(m.focused()) {
		m.moveFocus(1)
		return
	}
	m.applyFocus()
}

func (m *Model) applyFocus() {
	for id, ti := range m.inputs {
		if id == m.focused() && m.focusable(id) {
			ti.Focus()
		} else {
			ti.Blur()
		}
		m.inputs[id] = ti
	}
}
