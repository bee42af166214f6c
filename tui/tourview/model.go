// Package tourview draws the guided tour on top of a screen: a dimmed
// backdrop with the target cut out and ringed, elevated elements painted
// undimmed, and a callout panel with the step copy and controls.
package tourview

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/dylan/spotlight/geometry"
	"github.com/dylan/spotlight/layout"
	"github.com/dylan/spotlight/spotlight"
	"github.com/dylan/spotlight/tour"
	"github.com/dylan/spotlight/tui/shared"
)

const maxCalloutWidth = 46

type Model struct {
	reg      *layout.Registry
	renderer *spotlight.Renderer
	width    int
	height   int
}

func New(reg *layout.Registry, m geometry.Metrics, signal *tour.ActiveSignal, log *zap.Logger) Model {
	return Model{
		reg:      reg,
		renderer: spotlight.NewRenderer(reg, m, signal, log),
	}
}

func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Present hands the current tour state to the renderer.
func (m Model) Present(st tour.State) tea.Cmd {
	return m.renderer.Present(st)
}

// Update consumes settle timers.
func (m Model) Update(msg tea.Msg) {
	m.renderer.Update(msg)
}

// Close tears down any presentation.
func (m Model) Close() {
	m.renderer.Close()
}

func (m Model) Frame() spotlight.Frame {
	return m.renderer.Frame()
}

// Active reports whether the overlay is showing or waiting on a step.
func (m Model) Active() bool {
	return m.renderer.Frame().Phase != spotlight.PhaseIdle
}

// HandleKey drives c from the keyboard. It reports whether the key was
// consumed; the overlay is modal, so every key is consumed while c runs.
func (m Model) HandleKey(ctx context.Context, msg tea.KeyMsg, c *tour.Controller) bool {
	if c == nil || !c.IsActive() {
		return false
	}
	switch {
	case key.Matches(msg, shared.TourKeys.Next):
		if c.IsLastStep() {
			c.Complete(ctx)
		} else {
			c.Next(ctx)
		}
	case key.Matches(msg, shared.TourKeys.Prev):
		c.Prev()
	case key.Matches(msg, shared.TourKeys.Dismiss):
		c.Skip(ctx)
	}
	return true
}

// View composites the overlay over base.
func (m Model) View(base string) string {
	f := m.renderer.Frame()
	if f.Phase == spotlight.PhaseIdle || f.Phase == spotlight.PhaseSuppressed || m.width <= 0 || m.height <= 0 {
		return base
	}

	src := newCanvas(base, m.width, m.height)
	out := src.dim(shared.BackdropStyle)
	for _, l := range m.reg.LayersAbove(spotlight.BackdropZ) {
		out.punch(src, l.Bounds)
	}
	if f.Phase == spotlight.PhaseSettling {
		return out.String()
	}
	if f.Spotlight != nil {
		out.punch(src, *f.Spotlight)
		out.ring(*f.Spotlight, shared.RingStyle)
	}

	box := m.Callout(f.State)
	p := m.renderer.Place(geometry.Size{W: lipgloss.Width(box), H: lipgloss.Height(box)})
	out.overlay(box, p.Origin)
	return out.String()
}

// Callout renders the panel for st.
func (m Model) Callout(st tour.State) string {
	w := maxCalloutWidth
	if avail := m.width - 2*m.renderer.Metrics().EdgeMargin; avail > 0 && avail < w {
		w = avail
	}
	inner := w - 4 // border and padding
	if inner < 10 {
		inner = 10
	}

	var b strings.Builder
	b.WriteString(shared.CalloutTitleStyle.Render(st.Step.Title))
	if st.Step.Description != "" {
		b.WriteString("\n")
		b.WriteString(shared.CalloutBodyStyle.Width(inner).Render(st.Step.Description))
	}
	if hint := actionHint(st.Step.Action); hint != "" {
		b.WriteString("\n")
		b.WriteString(shared.CalloutHintStyle.Render(hint))
	}
	b.WriteString("\n\n")
	b.WriteString(footer(st, inner))

	return shared.CalloutStyle.Render(b.String())
}

func footer(st tour.State, width int) string {
	counter := shared.CalloutCounterStyle.Render(fmt.Sprintf("%d / %d", st.Index+1, st.Total))

	var buttons []string
	if st.Index > 0 {
		buttons = append(buttons, shared.CalloutButtonStyle.Render("← back"))
	}
	buttons = append(buttons, shared.CalloutButtonStyle.Render("esc skip"))
	next := "next →"
	if st.IsLast {
		next = "got it"
	}
	buttons = append(buttons, shared.CalloutPrimaryStyle.Render(" "+next+" "))

	right := strings.Join(buttons, "  ")
	gap := width - lipgloss.Width(counter) - lipgloss.Width(right)
	if gap < 1 {
		return counter + "\n" + right
	}
	return counter + strings.Repeat(" ", gap) + right
}

func actionHint(a tour.Action) string {
	switch a {
	case tour.ActionTap:
		return "↳ press it"
	case tour.ActionSwipe:
		return "↳ scroll it"
	case tour.ActionLook:
		return "↳ take a look"
	}
	return ""
}
