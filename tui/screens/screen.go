// Package screens holds the demo app's scrollable screens. Each screen
// lays out blocks in a viewport, registers the located ones with the
// layout registry after every layout pass, and scrolls with a spring when
// an overlay asks for an element.
package screens

import (
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"

	"github.com/dylan/spotlight/geometry"
	"github.com/dylan/spotlight/layout"
	"github.com/dylan/spotlight/tour"
)

const (
	fps       = 60
	blockGap  = 2
	settleEps = 0.5
)

// Block is one rendered piece of a screen. Blocks with a Locator are
// registered as elements.
type Block struct {
	Locator string
	View    string
}

// Row lays its blocks out side by side.
type Row []Block

// Content renders a screen's rows for the given width.
type Content func(width int) []Row

type span struct {
	x, y, w, h int
}

// frameMsg advances a scroll animation.
type frameMsg struct {
	screen string
	gen    int
}

type Screen struct {
	name    string
	title   string
	feature tour.Feature
	content Content
	reg     *layout.Registry
	adapter *tour.Adapter
	onAdd   func()

	vp     viewport.Model
	top    int
	spans  map[string]span
	visits int

	spring    harmonica.Spring
	pos, vel  float64
	target    float64
	animating bool
	ticking   bool
	gen       int
}

func New(name, title string, feature tour.Feature, content Content, reg *layout.Registry) *Screen {
	return &Screen{
		name:    name,
		title:   title,
		feature: feature,
		content: content,
		reg:     reg,
		vp:      viewport.New(0, 0),
		spans:   make(map[string]span),
		spring:  harmonica.NewSpring(harmonica.FPS(fps), 8.0, 1.0),
	}
}

func (s *Screen) Name() string          { return s.name }
func (s *Screen) Title() string         { return s.title }
func (s *Screen) Feature() tour.Feature { return s.feature }
func (s *Screen) YOffset() int          { return s.vp.YOffset }

// SetAdapter attaches the screen's tour.
func (s *Screen) SetAdapter(a *tour.Adapter) { s.adapter = a }
func (s *Screen) Adapter() *tour.Adapter     { return s.adapter }

// OnAdd sets what the add key does on this screen.
func (s *Screen) OnAdd(fn func()) { s.onAdd = fn }

// Add runs the screen's add action and lays out again.
func (s *Screen) Add() bool {
	if s.onAdd == nil {
		return false
	}
	s.onAdd()
	s.Layout()
	return true
}

// SetSize places the viewport at row top of the terminal.
func (s *Screen) SetSize(w, h, top int) {
	s.vp.Width = w
	s.vp.Height = h
	s.top = top
	s.Layout()
}

// Visit counts a screen activation and returns the new count.
func (s *Screen) Visit() int {
	s.visits++
	return s.visits
}

func (s *Screen) Visits() int { return s.visits }

// Layout renders the content and registers every located block.
func (s *Screen) Layout() {
	rows := s.content(s.vp.Width)
	var lines []string
	spans := make(map[string]span, len(s.spans))
	y := 0
	for _, row := range rows {
		views := make([]string, 0, len(row)*2)
		x := 0
		for i, b := range row {
			if i > 0 {
				views = append(views, strings.Repeat(" ", blockGap))
				x += blockGap
			}
			w, h := lipgloss.Width(b.View), lipgloss.Height(b.View)
			if b.Locator != "" {
				spans[b.Locator] = span{x: x, y: y, w: w, h: h}
			}
			views = append(views, b.View)
			x += w
		}
		joined := lipgloss.JoinHorizontal(lipgloss.Top, views...)
		lines = append(lines, strings.Split(joined, "\n")...)
		y += lipgloss.Height(joined)
	}

	for loc := range s.spans {
		if _, ok := spans[loc]; !ok {
			s.reg.Unmount(loc)
		}
	}
	s.spans = spans
	s.vp.SetContent(strings.Join(lines, "\n"))
	s.place()
	// Content moved under any overlay that is measuring it.
	s.reg.Emit(layout.EventScroll)
}

// place registers the located blocks at their current screen position.
func (s *Screen) place() {
	for loc, sp := range s.spans {
		s.reg.Place(loc, geometry.Rect{
			X: sp.x,
			Y: s.top + sp.y - s.vp.YOffset,
			W: sp.w,
			H: sp.h,
		}, s)
	}
}

// Locators returns the registered locators of this screen.
func (s *Screen) Locators() map[string]bool {
	out := make(map[string]bool, len(s.spans))
	for loc := range s.spans {
		out[loc] = true
	}
	return out
}

// Unmount removes the screen's elements from the registry.
func (s *Screen) Unmount() {
	for loc := range s.spans {
		s.reg.Unmount(loc)
	}
	s.stop()
}

func (s *Screen) maxOffset() int {
	return max(0, s.vp.TotalLineCount()-s.vp.Height)
}

// ScrollTo centers the element in the viewport, or aligns its top when it
// is taller than the viewport. Scroll-end is emitted right away when no
// movement is needed; otherwise the spring runs on AnimCmd ticks.
func (s *Screen) ScrollTo(locator string) {
	sp, ok := s.spans[locator]
	if !ok {
		return
	}
	off := sp.y + sp.h/2 - s.vp.Height/2
	if sp.h > s.vp.Height {
		off = sp.y
	}
	off = min(max(off, 0), s.maxOffset())
	if off == s.vp.YOffset {
		s.stop()
		s.reg.Emit(layout.EventScrollEnd)
		return
	}
	if !s.animating {
		s.pos, s.vel = float64(s.vp.YOffset), 0
	}
	s.target = float64(off)
	s.animating = true
}

// AnimCmd starts the animation ticker if a scroll is pending.
func (s *Screen) AnimCmd() tea.Cmd {
	if !s.animating || s.ticking {
		return nil
	}
	s.ticking = true
	return s.tick()
}

func (s *Screen) tick() tea.Cmd {
	name, gen := s.name, s.gen
	return tea.Tick(time.Second/fps, func(time.Time) tea.Msg {
		return frameMsg{screen: name, gen: gen}
	})
}

// Update advances the scroll animation.
func (s *Screen) Update(msg tea.Msg) tea.Cmd {
	m, ok := msg.(frameMsg)
	if !ok || m.screen != s.name || m.gen != s.gen {
		return nil
	}
	if !s.animating {
		s.ticking = false
		return nil
	}
	s.pos, s.vel = s.spring.Update(s.pos, s.vel, s.target)
	done := math.Abs(s.pos-s.target) < settleEps && math.Abs(s.vel) < settleEps
	if done {
		s.pos, s.vel = s.target, 0
	}
	s.vp.SetYOffset(int(math.Round(s.pos)))
	s.place()
	s.reg.Emit(layout.EventScroll)
	if done {
		s.animating = false
		s.ticking = false
		s.reg.Emit(layout.EventScrollEnd)
		return nil
	}
	return s.tick()
}

// Scroll moves the viewport by delta lines, cancelling any animation.
func (s *Screen) Scroll(delta int) {
	s.stop()
	s.vp.SetYOffset(s.vp.YOffset + delta)
	s.place()
	s.reg.Emit(layout.EventScroll)
	s.reg.Emit(layout.EventScrollEnd)
}

// PageSize is the number of lines a page scroll moves.
func (s *Screen) PageSize() int {
	return max(1, s.vp.Height-1)
}

func (s *Screen) stop() {
	if s.animating || s.ticking {
		s.gen++
	}
	s.animating = false
	s.ticking = false
}

func (s *Screen) View() string {
	return s.vp.View()
}
