// Package teatest drives bubbletea models synchronously in tests, so
// interactive forms can be exercised without a terminal or tea.Program.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxDrainDepth bounds command chains so a model that keeps scheduling work
// cannot hang a test.
const MaxDrainDepth = 100

// cmdTimeout separates instant commands from timer-driven ones such as
// cursor blinks, which are dropped.
const cmdTimeout = 10 * time.Millisecond

// Driver feeds messages to a model and drains the commands it returns.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once a tea.QuitMsg is produced.
	Quitting bool
}

// Option configures a Driver before Init runs.
type Option func(*Driver)

// WithSize sends a WindowSizeMsg first.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.Send(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// New wraps model, applies opts, and drains model.Init().
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	d.drain(model.Init(), 0)
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Send runs msg through Update and drains the result.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	updated, cmd := d.Model.Update(msg)
	d.Model = updated
	d.drain(cmd, 0)
}

// Type sends s one rune at a time.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func (d *Driver) PressEnter() { d.Send(tea.KeyMsg{Type: tea.KeyEnter}) }
func (d *Driver) PressCtrlC() { d.Send(tea.KeyMsg{Type: tea.KeyCtrlC}) }
func (d *Driver) PressDown()  { d.Send(tea.KeyMsg{Type: tea.KeyDown}) }

// View renders the current model.
func (d *Driver) View() string {
	return d.Model.View()
}

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	if cmd == nil {
		return
	}
	if depth >= MaxDrainDepth {
		d.T.Logf("teatest: drain depth limit (%d) reached", MaxDrainDepth)
		return
	}

	msg := runWithTimeout(cmd)
	switch m := msg.(type) {
	case nil:
		return
	case tea.BatchMsg:
		for _, sub := range m {
			d.drain(sub, depth+1)
		}
		return
	case tea.QuitMsg:
		d.Quitting = true
		return
	}
	if isCursorBlink(msg) {
		return
	}

	updated, next := d.Model.Update(msg)
	d.Model = updated
	d.drain(next, depth+1)
}

func runWithTimeout(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}

// isCursorBlink matches the unexported blink message types of the text
// input cursor.
func isCursorBlink(msg tea.Msg) bool {
	return strings.Contains(strings.ToLower(fmt.Sprintf("%T", msg)), "blink")
}
