package screens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dylan/spotlight/geometry"
	"github.com/dylan/spotlight/layout"
	"github.com/dylan/spotlight/tours"
)

func fixedData() *Data {
	d := DemoData()
	d.Now = func() time.Time { return time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) }
	return d
}

func bounds(t *testing.T, reg *layout.Registry, loc string) geometry.Rect {
	t.Helper()
	el, ok := reg.Query(loc)
	require.True(t, ok, loc)
	r, ok := el.Bounds()
	require.True(t, ok, loc)
	return r
}

func counter(reg *layout.Registry, kind layout.EventKind) *int {
	n := new(int)
	reg.Subscribe(kind, func() { *n++ })
	return n
}

// run drives the animation to completion.
func run(t *testing.T, s *Screen) int {
	t.Helper()
	cmd := s.AnimCmd()
	require.NotNil(t, cmd)
	frames := 0
	msg := frameMsg{screen: s.name, gen: s.gen}
	for ; frames < 2000; frames++ {
		if s.Update(msg) == nil {
			return frames + 1
		}
	}
	t.Fatal("animation never settled")
	return 0
}

func TestLayoutRegistersBlocks(t *testing.T) {
	reg := layout.NewRegistry()
	s := Planner(reg, fixedData())
	s.SetSize(40, 10, 1)

	header := bounds(t, reg, tours.LocPlannerHeader)
	assert.Equal(t, geometry.Rect{X: 0, Y: 1, W: header.W, H: 1}, header)
	assert.Greater(t, header.W, len("Planner"))
	list := bounds(t, reg, tours.LocPlannerList)
	assert.Equal(t, 3, list.Y)
	assert.Equal(t, 26, list.H)
	assert.Equal(t, 40, list.W)
	assert.True(t, s.Locators()[tours.LocPlannerAdd])
}

func TestScrollToTallElementAlignsTop(t *testing.T) {
	reg := layout.NewRegistry()
	s := Planner(reg, fixedData())
	s.SetSize(40, 10, 1)
	scrolls := counter(reg, layout.EventScroll)
	ends := counter(reg, layout.EventScrollEnd)

	s.ScrollTo(tours.LocPlannerList)
	assert.Zero(t, *ends)
	run(t, s)

	assert.Equal(t, 2, s.YOffset())
	assert.Equal(t, 1, bounds(t, reg, tours.LocPlannerList).Y)
	assert.Equal(t, 1, *ends)
	assert.Greater(t, *scrolls, 1)
	assert.Nil(t, s.AnimCmd())
}

func TestScrollToCentersElement(t *testing.T) {
	reg := layout.NewRegistry()
	s := Planner(reg, fixedData())
	s.SetSize(40, 10, 1)

	s.ScrollTo(tours.LocPlannerAdd)
	run(t, s)
	// The add button is the last line; the viewport stops at the bottom.
	assert.Equal(t, 20, s.YOffset())
	add := bounds(t, reg, tours.LocPlannerAdd)
	assert.Equal(t, 1+29-20, add.Y)
}

func TestScrollToVisibleElementEndsImmediately(t *testing.T) {
	reg := layout.NewRegistry()
	s := Planner(reg, fixedData())
	s.SetSize(40, 10, 1)
	ends := counter(reg, layout.EventScrollEnd)

	s.ScrollTo(tours.LocPlannerHeader)
	assert.Equal(t, 1, *ends)
	assert.Nil(t, s.AnimCmd())

	s.ScrollTo("#unknown")
	assert.Equal(t, 1, *ends)
}

func TestStaleFramesIgnored(t *testing.T) {
	reg := layout.NewRegistry()
	s := Planner(reg, fixedData())
	s.SetSize(40, 10, 1)

	s.ScrollTo(tours.LocPlannerList)
	require.NotNil(t, s.AnimCmd())
	old := frameMsg{screen: s.name, gen: s.gen}
	s.Scroll(5)
	assert.Equal(t, 5, s.YOffset())
	assert.Nil(t, s.Update(old))
	assert.Equal(t, 5, s.YOffset())
	assert.Nil(t, s.Update(frameMsg{screen: "home", gen: s.gen}))
}

func TestJournalStreakAppearsAfterEntry(t *testing.T) {
	reg := layout.NewRegistry()
	d := fixedData()
	s := Journal(reg, d)
	s.SetSize(60, 20, 1)
	assert.False(t, reg.Has(tours.LocJournalStreak))

	require.True(t, s.Add())
	assert.True(t, reg.Has(tours.LocJournalStreak))
	mood := bounds(t, reg, tours.LocJournalMood)
	streak := bounds(t, reg, tours.LocJournalStreak)
	assert.Equal(t, mood.Y, streak.Y)
	assert.Equal(t, mood.Right()+blockGap, streak.X)

	d.Entries = nil
	s.Layout()
	assert.False(t, reg.Has(tours.LocJournalStreak))
}

func TestUnmountAndHome(t *testing.T) {
	reg := layout.NewRegistry()
	s := Home(reg, fixedData())
	s.SetSize(60, 20, 1)
	assert.Contains(t, s.View(), "Good morning, friend")
	assert.True(t, reg.Has(tours.LocHomeToday))
	assert.False(t, s.Add(), "home has no add action")

	s.Unmount()
	assert.False(t, reg.Has(tours.LocHomeToday))
	assert.False(t, reg.Has(tours.LocHomeGreeting))
}

func TestTabs(t *testing.T) {
	reg := layout.NewRegistry()
	d := fixedData()
	out := Tabs([]*Screen{Home(reg, d), Planner(reg, d), Journal(reg, d)}, 1)
	assert.Contains(t, out, "Home")
	assert.Contains(t, out, "Planner")
	assert.Contains(t, out, "Journal")
}
