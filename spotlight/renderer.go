// Package spotlight turns a tour State into overlay geometry: it finds the
// step's target, scrolls it into view, waits for the scroll to settle,
// measures it, and keeps the measurement current while the step is shown.
package spotlight

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/dylan/spotlight/geometry"
	"github.com/dylan/spotlight/layout"
	"github.com/dylan/spotlight/tour"
)

// SettledMsg fires after the settle delay of one presentation. Messages
// from an older presentation are ignored.
type SettledMsg struct {
	Gen int
}

// Phase of the current presentation.
type Phase int

const (
	PhaseIdle       Phase = iota // no tour
	PhaseSuppressed              // active, but the current step is ineligible
	PhaseSettling                // waiting for scroll-into-view to finish
	PhaseShown
)

func (p Phase) String() string {
	switch p {
	case PhaseSuppressed:
		return "suppressed"
	case PhaseSettling:
		return "settling"
	case PhaseShown:
		return "shown"
	default:
		return "idle"
	}
}

// Frame is what the overlay paints.
type Frame struct {
	State     tour.State
	Phase     Phase
	Spotlight *geometry.Rect // nil for centered presentation
	Side      geometry.Side
}

type presentationKey struct {
	session string
	index   int
	hasStep bool
	active  bool
}

// Renderer owns one presentation at a time: the leased target, the
// surface listeners and the pending settle timer.
type Renderer struct {
	surface layout.Surface
	metrics geometry.Metrics
	signal  *tour.ActiveSignal
	log     *zap.Logger

	state   tour.State
	key     presentationKey
	phase   Phase
	gen     int
	el      layout.Element
	lease   *Lease
	cancels []func()
	spot    *geometry.Rect
}

func NewRenderer(surface layout.Surface, m geometry.Metrics, signal *tour.ActiveSignal, log *zap.Logger) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{
		surface: surface,
		metrics: m,
		signal:  signal,
		log:     log,
	}
}

// Present switches to st. It returns the settle timer command when a new
// anchored step starts presenting, nil otherwise.
func (r *Renderer) Present(st tour.State) tea.Cmd {
	k := presentationKey{session: st.SessionID, index: st.Index, hasStep: st.HasStep, active: st.Active}
	r.state = st
	if k == r.key && r.phase != PhaseIdle {
		return nil
	}
	r.teardown()
	r.key = k

	if !st.Active {
		r.phase = PhaseIdle
		r.signal.Set(false)
		return nil
	}
	r.signal.Set(true)

	if !st.HasStep {
		r.phase = PhaseSuppressed
		return nil
	}

	loc := st.Step.Locator()
	if loc == "" {
		r.phase = PhaseShown
		return nil
	}
	el, ok := r.surface.Query(loc)
	if !ok {
		r.log.Debug("tour target not rendered, centering",
			zap.String("step", st.Step.ID), zap.String("locator", loc))
		r.phase = PhaseShown
		return nil
	}

	r.el = el
	r.lease = Elevate(el)
	r.phase = PhaseSettling
	r.gen++
	gen := r.gen
	r.cancels = append(r.cancels,
		r.surface.Subscribe(layout.EventScroll, r.remeasure),
		r.surface.Subscribe(layout.EventResize, r.remeasure),
		r.surface.Subscribe(layout.EventScrollEnd, func() { r.settle(gen) }),
	)
	el.ScrollIntoView()
	if r.phase != PhaseSettling {
		// The container settled synchronously.
		return nil
	}
	return tea.Tick(r.metrics.SettleDelay, func(time.Time) tea.Msg {
		return SettledMsg{Gen: gen}
	})
}

// Update handles the renderer's own messages.
func (r *Renderer) Update(msg tea.Msg) {
	if m, ok := msg.(SettledMsg); ok {
		r.settle(m.Gen)
	}
}

func (r *Renderer) settle(gen int) {
	if gen != r.gen || r.phase != PhaseSettling {
		return
	}
	r.phase = PhaseShown
	r.remeasure()
}

// remeasure recomputes the spotlight from the target's current bounds.
// A target that vanished falls back to centered presentation.
func (r *Renderer) remeasure() {
	if r.phase != PhaseShown || r.el == nil {
		return
	}
	b, ok := r.el.Bounds()
	if !ok {
		r.log.Debug("tour target unmounted, centering", zap.String("locator", r.el.Locator()))
		r.release()
		return
	}
	spot := geometry.SpotlightRect(b, r.surface.Viewport(), r.metrics)
	r.spot = &spot
}

// release detaches listeners and gives the target its styles back.
func (r *Renderer) release() {
	for _, cancel := range r.cancels {
		cancel()
	}
	r.cancels = nil
	r.lease.Release()
	r.lease = nil
	r.el = nil
	r.spot = nil
}

func (r *Renderer) teardown() {
	r.gen++
	r.release()
	r.phase = PhaseIdle
}

// Close ends any presentation and resets the active signal. Call it when
// the overlay goes away.
func (r *Renderer) Close() {
	r.teardown()
	r.key = presentationKey{}
	r.state = tour.State{}
	r.signal.Set(false)
}

// Frame returns the current paint instructions.
func (r *Renderer) Frame() Frame {
	f := Frame{State: r.state, Phase: r.phase, Side: sideOf(r.state.Step.Position())}
	if r.spot != nil {
		s := *r.spot
		f.Spotlight = &s
	} else {
		f.Side = geometry.SideCenter
	}
	return f
}

// Place computes the callout origin for a callout of the given size.
func (r *Renderer) Place(box geometry.Size) geometry.Placement {
	f := r.Frame()
	return geometry.PlaceCallout(f.Spotlight, f.Side, box, r.surface.Viewport(), r.metrics)
}

// Metrics returns the geometry constants in use.
func (r *Renderer) Metrics() geometry.Metrics { return r.metrics }

func sideOf(p tour.Position) geometry.Side {
	switch p {
	case tour.PositionTop:
		return geometry.SideTop
	case tour.PositionBottom:
		return geometry.SideBottom
	case tour.PositionLeft:
		return geometry.SideLeft
	case tour.PositionRight:
		return geometry.SideRight
	default:
		return geometry.SideCenter
	}
}
