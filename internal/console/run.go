package console

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run executes cmd and every command that follows from it on the calling
// goroutine, handing each message to Handle. It returns the messages seen, in
// order. Headless commands and tests use it in place of a Bubble Tea program.
func (c *Controller) Run(cmd tea.Cmd) []tea.Msg {
	var seen []tea.Msg
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}

		msg := next()
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		if msg == nil {
			continue
		}

		seen = append(seen, msg)
		queue = append(queue, c.Handle(msg))
	}
	return seen
}
