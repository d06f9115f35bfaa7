package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/apsetup/internal/render"
	"github.com/muurk/apsetup/internal/state"
)

// errorLabels pairs each text input with its validation message element.
var errorLabels = map[render.ElementID]render.ElementID{
	render.ElementPasskey:    render.ElementPasskeyError,
	render.ElementDeviceName: render.ElementDeviceNameErr,
	render.ElementWebhook:    render.ElementWebhookError,
}

var fieldLabels = map[render.ElementID]string{
	render.ElementSSID:       "Network",
	render.ElementPasskey:    "Passkey",
	render.ElementDeviceName: "Device name",
	render.ElementWebhook:    "Webhook",
}

// View renders the form from the Document.
func (m Model) View() string {
	return renderContainer(m.content(), m.target, m.help.View(m.keys), m.Width, m.Height)
}

func (m Model) content() string {
	var sections []string

	if !m.doc.Element(render.ElementNotification).Hidden {
		sections = append(sections, m.renderNotification())
	}

	if !m.doc.Element(render.ElementForm).Hidden {
		sections = append(sections, m.renderForm())
	}

	if el := m.doc.Element(render.ElementError); !el.Hidden {
		sections = append(sections, ErrorStyle.Render(el.Text))
	}

	if line := m.statusLine(); line != "" {
		sections = append(sections, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderNotification() string {
	link := m.doc.Element(render.ElementDeviceNameLink)
	return SuccessStyle.Render(
		"The device is joining your network.\n" +
			"Once it is connected, it can be reached at " + link.Text,
	)
}

func (m Model) renderForm() string {
	var rows []string

	if !m.doc.Element(render.ElementSSIDWrapper).Hidden {
		rows = append(rows, m.renderNetwork())
	}
	for _, id := range []render.ElementID{render.ElementPasskey, render.ElementDeviceName, render.ElementWebhook} {
		if wrapper, ok := wrappers[id]; ok && m.doc.Element(wrapper).Hidden {
			continue
		}
		rows = append(rows, m.renderInput(id))
	}

	rows = append(rows, "", m.renderButton())
	return strings.Join(rows, "\n")
}

func (m Model) label(id render.ElementID) string {
	style := LabelStyle
	if m.focused() == id && m.focusable(id) {
		style = FocusedLabelStyle
	}
	return style.Render(fieldLabels[id])
}

func (m Model) renderNetwork() string {
	el := m.doc.Element(render.ElementSSID)

	var value string
	switch i := el.SelectedOption(); {
	case len(el.Options) == 0:
		value = StatusStyle.Render("no networks found")
	case el.Options[0].Value == "":
		value = m.spinner.View() + " " + el.Options[0].Label
	case i < 0:
		value = StatusStyle.Render("choose a network")
	default:
		value = el.Options[i].Label
	}
	if len(el.Options) > 1 || (len(el.Options) == 1 && el.Options[0].Value != "") {
		value = "◀ " + value + " ▶"
	}
	if el.Disabled {
		value = StatusStyle.Render(value)
	}

	return lipgloss.JoinHorizontal(lipgloss.Left, "  ", m.label(render.ElementSSID), value)
}

func (m Model) renderInput(id render.ElementID) string {
	ti := m.inputs[id]
	value := ti.View()
	if m.doc.Element(id).Disabled {
		value = StatusStyle.Render(strings.Repeat("·", 12))
	}

	row := lipgloss.JoinHorizontal(lipgloss.Left, "  ", m.label(id), value)
	if errEl := m.doc.Element(errorLabels[id]); !errEl.Hidden {
		row += "\n" + FieldErrorStyle.Render(errEl.Text)
	}
	return row
}

func (m Model) renderButton() string {
	el := m.doc.Element(render.ElementButton)

	style := ButtonStyle
	switch {
	case el.HasClass(render.ClassSuccess):
		style = SavedButtonStyle
	case el.Disabled:
		style = DisabledButtonStyle
	case m.focused() == render.ElementButton:
		style = FocusedButtonStyle
	}

	button := style.Render(el.Text)
	if el.Text == render.LabelSaving {
		button = m.spinner.View() + " " + button
	}
	return "  " + button
}

func (m Model) statusLine() string {
	if m.status == "" {
		if m.controller.State().Connection == state.PhaseNotConfigured {
			return StatusStyle.Render(m.spinner.View() + " Contacting device...")
		}
		return ""
	}
	if m.statusErr {
		return WarningStatusStyle.Render(m.status)
	}
	return StatusStyle.Render(m.status)
}
