package spotlight

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dylan/spotlight/geometry"
	"github.com/dylan/spotlight/layout"
	"github.com/dylan/spotlight/tour"
)

type memStore map[tour.Feature]bool

func (s memStore) HasCompleted(_ context.Context, f tour.Feature) (bool, error) { return s[f], nil }
func (s memStore) MarkCompleted(_ context.Context, f tour.Feature) error {
	s[f] = true
	return nil
}

// instantScroller settles immediately, like a container without animation.
type instantScroller struct{ reg *layout.Registry }

func (s instantScroller) ScrollTo(string) {
	s.reg.Emit(layout.EventScroll)
	s.reg.Emit(layout.EventScrollEnd)
}

func testMetrics() geometry.Metrics {
	m := geometry.PixelMetrics()
	m.SettleDelay = time.Millisecond
	return m
}

func demoSteps() []tour.Step {
	return []tour.Step{
		tour.Centered("A", "Welcome", "A quick look around."),
		tour.Anchored("B", "#btn", tour.PositionBottom, "Button", "Tap it."),
		tour.Anchored("C", "#missing", tour.PositionTop, "Gone", "Not rendered."),
	}
}

func newDemo(t *testing.T) (*layout.Registry, *tour.Controller, *Renderer, *tour.ActiveSignal, memStore) {
	t.Helper()
	reg := layout.NewRegistry()
	reg.SetViewport(geometry.Size{W: 390, H: 844})
	reg.Place("#btn", geometry.Rect{X: 100, Y: 200, W: 120, H: 44}, nil)
	store := memStore{}
	ctrl := tour.NewController("demo", demoSteps(), store, nil)
	signal := tour.NewActiveSignal()
	return reg, ctrl, NewRenderer(reg, testMetrics(), signal, nil), signal, store
}

func settle(t *testing.T, r *Renderer, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	r.Update(cmd())
}

func TestEndToEndDemoTour(t *testing.T) {
	ctx := context.Background()
	reg, ctrl, r, signal, store := newDemo(t)

	ctrl.ForceStart(ctx)
	st := ctrl.State(reg)
	assert.Equal(t, 0, st.Index)
	assert.Equal(t, "A", st.Step.ID)
	assert.Equal(t, 3, st.Total)
	assert.Nil(t, r.Present(st))
	f := r.Frame()
	assert.Equal(t, PhaseShown, f.Phase)
	assert.Nil(t, f.Spotlight)
	assert.True(t, signal.Active())

	ctrl.Next(ctx)
	settle(t, r, r.Present(ctrl.State(reg)))
	f = r.Frame()
	require.NotNil(t, f.Spotlight)
	want := geometry.Rect{X: 92, Y: 192, W: 136, H: 60}
	if diff := cmp.Diff(want, *f.Spotlight); diff != "" {
		t.Fatalf("spotlight mismatch (-want +got):\n%s", diff)
	}
	p := r.Place(geometry.Size{W: 200, H: 120})
	assert.Equal(t, geometry.SideBottom, p.Side)
	assert.Equal(t, want.Bottom()+16, p.Origin.Y)

	ctrl.Next(ctx)
	assert.Nil(t, r.Present(ctrl.State(reg)))
	f = r.Frame()
	assert.Equal(t, "C", f.State.Step.ID)
	assert.Equal(t, PhaseShown, f.Phase)
	assert.Nil(t, f.Spotlight)
	assert.Equal(t, geometry.SideCenter, r.Place(geometry.Size{W: 200, H: 120}).Side)

	ctrl.Next(ctx)
	r.Present(ctrl.State(reg))
	assert.False(t, ctrl.IsActive())
	assert.Equal(t, PhaseIdle, r.Frame().Phase)
	assert.True(t, store["demo"])
	assert.False(t, signal.Active())
}

func TestElevationRestoredExactly(t *testing.T) {
	ctx := context.Background()
	reg, ctrl, r, _, _ := newDemo(t)
	btn, _ := reg.Query("#btn")
	btn.SetStyle(layout.PropZIndex, "2")
	btn.SetStyle(layout.PropPosition, "absolute")

	ctrl.ForceStart(ctx)
	ctrl.Next(ctx)
	settle(t, r, r.Present(ctrl.State(reg)))
	assert.Equal(t, "9999", btn.Style(layout.PropZIndex))
	assert.Equal(t, "absolute", btn.Style(layout.PropPosition))
	assert.Len(t, reg.LayersAbove(BackdropZ), 1)

	ctrl.Next(ctx)
	r.Present(ctrl.State(reg))
	assert.Equal(t, "2", btn.Style(layout.PropZIndex))
	assert.Equal(t, "absolute", btn.Style(layout.PropPosition))
	assert.Empty(t, reg.LayersAbove(BackdropZ))
}

func TestElevationAddsPositionOnlyWhenMissing(t *testing.T) {
	ctx := context.Background()
	reg, ctrl, r, _, _ := newDemo(t)
	btn, _ := reg.Query("#btn")

	ctrl.ForceStart(ctx)
	ctrl.Next(ctx)
	r.Present(ctrl.State(reg))
	assert.Equal(t, "relative", btn.Style(layout.PropPosition))

	ctrl.Prev()
	r.Present(ctrl.State(reg))
	assert.Equal(t, "", btn.Style(layout.PropZIndex))
	assert.Equal(t, "", btn.Style(layout.PropPosition))
}

func TestListenersDetachedOnStepChange(t *testing.T) {
	ctx := context.Background()
	reg, ctrl, r, _, _ := newDemo(t)

	ctrl.ForceStart(ctx)
	ctrl.Next(ctx)
	settle(t, r, r.Present(ctrl.State(reg)))
	assert.Equal(t, 1, reg.Listeners(layout.EventScroll))
	assert.Equal(t, 1, reg.Listeners(layout.EventResize))
	assert.Equal(t, 1, reg.Listeners(layout.EventScrollEnd))

	ctrl.Next(ctx)
	r.Present(ctrl.State(reg))
	for _, k := range []layout.EventKind{layout.EventScroll, layout.EventResize, layout.EventScrollEnd} {
		assert.Zero(t, reg.Listeners(k))
	}

	// Moving the old target no longer affects the frame.
	reg.Place("#btn", geometry.Rect{X: 0, Y: 0, W: 10, H: 10}, nil)
	reg.Emit(layout.EventScroll)
	assert.Nil(t, r.Frame().Spotlight)
}

func TestStaleSettleIsIgnored(t *testing.T) {
	ctx := context.Background()
	reg, ctrl, r, _, _ := newDemo(t)

	ctrl.ForceStart(ctx)
	ctrl.Next(ctx)
	stale := r.Present(ctrl.State(reg))
	require.NotNil(t, stale)
	assert.Equal(t, PhaseSettling, r.Frame().Phase)

	ctrl.Prev()
	r.Present(ctrl.State(reg))
	r.Update(stale())
	f := r.Frame()
	assert.Equal(t, "A", f.State.Step.ID)
	assert.Nil(t, f.Spotlight)
}

func TestScrollEndSettlesWithoutTimer(t *testing.T) {
	ctx := context.Background()
	reg, ctrl, r, _, _ := newDemo(t)
	reg.Place("#btn", geometry.Rect{X: 100, Y: 200, W: 120, H: 44}, instantScroller{reg: reg})

	ctrl.ForceStart(ctx)
	ctrl.Next(ctx)
	cmd := r.Present(ctrl.State(reg))
	assert.Nil(t, cmd)
	f := r.Frame()
	assert.Equal(t, PhaseShown, f.Phase)
	require.NotNil(t, f.Spotlight)
}

func TestRecomputesOnScrollAndResize(t *testing.T) {
	ctx := context.Background()
	reg, ctrl, r, _, _ := newDemo(t)
	ctrl.ForceStart(ctx)
	ctrl.Next(ctx)
	settle(t, r, r.Present(ctrl.State(reg)))

	reg.Place("#btn", geometry.Rect{X: 100, Y: 120, W: 120, H: 44}, nil)
	reg.Emit(layout.EventScroll)
	assert.Equal(t, 112, r.Frame().Spotlight.Y)

	reg.Place("#btn", geometry.Rect{X: 100, Y: 100, W: 120, H: 400}, nil)
	reg.SetViewport(geometry.Size{W: 390, H: 500})
	assert.Equal(t, 156, r.Frame().Spotlight.H, "tall target gets a header spotlight")
}

func TestTargetVanishingFallsBackToCenter(t *testing.T) {
	ctx := context.Background()
	reg, ctrl, r, _, _ := newDemo(t)
	btn, _ := reg.Query("#btn")
	ctrl.ForceStart(ctx)
	ctrl.Next(ctx)
	cmd := r.Present(ctrl.State(reg))

	reg.Unmount("#btn")
	settle(t, r, cmd)
	f := r.Frame()
	assert.Equal(t, PhaseShown, f.Phase)
	assert.Nil(t, f.Spotlight)
	assert.Equal(t, "", btn.Style(layout.PropZIndex))
	assert.Zero(t, reg.Listeners(layout.EventScroll))
}

func TestIneligibleStepIsSuppressed(t *testing.T) {
	ctx := context.Background()
	reg := layout.NewRegistry()
	reg.SetViewport(geometry.Size{W: 80, H: 24})
	steps := demoSteps()
	steps[1] = steps[1].When(tour.TargetPresent("#btn"))
	ctrl := tour.NewController("demo", steps, nil, nil)
	r := NewRenderer(reg, testMetrics(), nil, nil)

	ctrl.ForceStart(ctx)
	ctrl.Next(ctx)
	r.Present(ctrl.State(reg))
	f := r.Frame()
	assert.Equal(t, PhaseSuppressed, f.Phase)
	assert.Equal(t, 3, f.State.Total)

	reg.Place("#btn", geometry.Rect{X: 1, Y: 1, W: 5, H: 1}, nil)
	settle(t, r, r.Present(ctrl.State(reg)))
	assert.Equal(t, PhaseShown, r.Frame().Phase)
}

func TestCloseReleasesEverything(t *testing.T) {
	ctx := context.Background()
	reg, ctrl, r, signal, _ := newDemo(t)
	btn, _ := reg.Query("#btn")
	ctrl.ForceStart(ctx)
	ctrl.Next(ctx)
	r.Present(ctrl.State(reg))

	r.Close()
	assert.False(t, signal.Active())
	assert.Equal(t, "", btn.Style(layout.PropZIndex))
	assert.Zero(t, reg.Listeners(layout.EventScrollEnd))
	assert.Equal(t, PhaseIdle, r.Frame().Phase)
}

func TestLeaseReleaseIsIdempotent(t *testing.T) {
	reg := layout.NewRegistry()
	reg.Place("#x", geometry.Rect{W: 1, H: 1}, nil)
	el, _ := reg.Query("#x")
	el.SetStyle(layout.PropPosition, "static")

	l := Elevate(el)
	assert.Equal(t, "relative", el.Style(layout.PropPosition))
	l.Release()
	el.SetStyle(layout.PropZIndex, "7")
	l.Release()
	assert.Equal(t, "7", el.Style(layout.PropZIndex))
	assert.Equal(t, "static", el.Style(layout.PropPosition))
}
