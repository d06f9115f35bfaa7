package render

import "slices"

// ElementID names an element of the configuration form.
type ElementID string

const (
	ElementSSID           ElementID = "ssid"
	ElementSSIDWrapper    ElementID = "ssid-wrapper"
	ElementPasskey        ElementID = "passkey"
	ElementPasskeyWrapper ElementID = "passkey-wrapper"
	ElementDeviceName     ElementID = "deviceName"
	ElementWebhook        ElementID = "webhook"
	ElementPasskeyError   ElementID = "passkey-error"
	ElementDeviceNameErr  ElementID = "deviceName-error"
	ElementWebhookError   ElementID = "webhook-error"
	ElementButton         ElementID = "button"
	ElementForm           ElementID = "form"
	ElementNotification   ElementID = "notification"
	ElementDeviceNameLink ElementID = "device-name-link"
	ElementError          ElementID = "error"
)

// ClassSuccess marks the button once a configured device has saved.
const ClassSuccess = "success"

// Option is one entry of the SSID picker.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Element is the drawable state of one form element.
type Element struct {
	ID       ElementID
	Disabled bool
	Hidden   bool
	Text     string
	Value    string
	Href     string
	Classes  []string
	Options  []Option
}

// HasClass reports whether the element carries class c.
func (e Element) HasClass(c string) bool {
	return slices.Contains(e.Classes, c)
}

// SelectedOption returns the index of the selected option, or -1.
func (e Element) SelectedOption() int {
	for i, o := range e.Options {
		if o.Selected {
			return i
		}
	}
	return -1
}

// Surface is everything a render rule may touch.
type Surface interface {
	Enable(id ElementID)
	Disable(id ElementID)
	Show(id ElementID)
	Hide(id ElementID)
	SetText(id ElementID, text string)
	SetOptions(id ElementID, opts []Option)
	Value(id ElementID) string
	SetValue(id ElementID, value string)
	AddClass(id ElementID, class string)
	RemoveClass(id ElementID, class string)
	SetLink(id ElementID, href, text string)
}

// Document is an in-memory element tree. Setters that would leave an element
// as it is do not count as writes.
type Document struct {
	elements map[ElementID]*Element
	writes   int
}

// NewDocument returns a document in the state of the freshly loaded form:
// inputs and button disabled, the SSID picker and every message hidden.
func NewDocument() *Document {
	d := &Document{elements: make(map[ElementID]*Element)}
	for _, id := range []ElementID{
		ElementSSID, ElementSSIDWrapper, ElementPasskey, ElementPasskeyWrapper,
		ElementDeviceName, ElementWebhook, ElementPasskeyError, ElementDeviceNameErr,
		ElementWebhookError, ElementButton, ElementForm, ElementNotification,
		ElementDeviceNameLink, ElementError,
	} {
		d.elements[id] = &Element{ID: id}
	}

	for _, id := range []ElementID{ElementSSID, ElementPasskey, ElementDeviceName, ElementWebhook, ElementButton} {
		d.elements[id].Disabled = true
	}
	for _, id := range []ElementID{
		ElementSSIDWrapper, ElementPasskeyError, ElementDeviceNameErr,
		ElementWebhookError, ElementNotification, ElementError,
	} {
		d.elements[id].Hidden = true
	}
	d.elements[ElementButton].Text = "Save"

	return d
}

func (d *Document) el(id ElementID) *Element {
	e, ok := d.elements[id]
	if !ok {
		e = &Element{ID: id}
		d.elements[id] = e
	}
	return e
}

// Element returns a copy of the element.
func (d *Document) Element(id ElementID) Element {
	e := *d.el(id)
	e.Classes = slices.Clone(e.Classes)
	e.Options = slices.Clone(e.Options)
	return e
}

// Writes returns the number of effective writes made so far.
func (d *Document) Writes() int {
	return d.writes
}

func (d *Document) Enable(id ElementID) {
	if e := d.el(id); e.Disabled {
		e.Disabled = false
		d.writes++
	}
}

func (d *Document) Disable(id ElementID) {
	if e := d.el(id); !e.Disabled {
		e.Disabled = true
		d.writes++
	}
}

func (d *Document) Show(id ElementID) {
	if e := d.el(id); e.Hidden {
		e.Hidden = false
		d.writes++
	}
}

func (d *Document) Hide(id ElementID) {
	if e := d.el(id); !e.Hidden {
		e.Hidden = true
		d.writes++
	}
}

func (d *Document) SetText(id ElementID, text string) {
	if e := d.el(id); e.Text != text {
		e.Text = text
		d.writes++
	}
}

func (d *Document) SetOptions(id ElementID, opts []Option) {
	e := d.el(id)
	if slices.Equal(e.Options, opts) {
		return
	}
	e.Options = slices.Clone(opts)
	d.writes++
}

func (d *Document) Value(id ElementID) string {
	return d.el(id).Value
}

func (d *Document) SetValue(id ElementID, value string) {
	if e := d.el(id); e.Value != value {
		e.Value = value
		d.writes++
	}
}

func (d *Document) AddClass(id ElementID, class string) {
	e := d.el(id)
	if slices.Contains(e.Classes, class) {
		return
	}
	e.Classes = append(e.Classes, class)
	d.writes++
}

func (d *Document) RemoveClass(id ElementID, class string) {
	e := d.el(id)
	i := slices.Index(e.Classes, class)
	if i < 0 {
		return
	}
	e.Classes = slices.Delete(e.Classes, i, i+1)
	d.writes++
}

func (d *Document) SetLink(id ElementID, href, text string) {
	e := d.el(id)
	if e.Href == href && e.Text == text {
		return
	}
	e.Href = href
	e.Text = text
	d.writes++
}

// Select marks the option whose value is v as selected, as a user picking
// from the SSID list would. It reports whether such an option exists.
func (d *Document) Select(id ElementID, v string) bool {
	e := d.el(id)
	found := -1
	for i, o := range e.Options {
		if o.Value == v {
			found = i
		}
	}
	if found < 0 {
		return false
	}
	changed := false
	for i := range e.Options {
		sel := i == found
		if e.Options[i].Selected != sel {
			e.Options[i].Selected = sel
			changed = true
		}
	}
	if changed {
		d.writes++
	}
	return true
}
