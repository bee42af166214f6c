package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dylan/spotlight/geometry"
)

type recordScroller struct{ got []string }

func (s *recordScroller) ScrollTo(locator string) { s.got = append(s.got, locator) }

func TestRegistryPlaceQueryUnmount(t *testing.T) {
	r := NewRegistry()
	sc := &recordScroller{}
	r.Place("#btn", geometry.Rect{X: 2, Y: 3, W: 10, H: 1}, sc)

	el, ok := r.Query("#btn")
	require.True(t, ok)
	b, ok := el.Bounds()
	require.True(t, ok)
	assert.Equal(t, geometry.Rect{X: 2, Y: 3, W: 10, H: 1}, b)

	el.ScrollIntoView()
	assert.Equal(t, []string{"#btn"}, sc.got)

	r.Unmount("#btn")
	assert.False(t, r.Has("#btn"))
	_, ok = el.Bounds()
	assert.False(t, ok, "held handle sees the unmount")
}

func TestRegistryStylesSurviveReplacement(t *testing.T) {
	r := NewRegistry()
	r.Place("#card", geometry.Rect{W: 5, H: 5}, nil)
	el, _ := r.Query("#card")
	el.SetStyle(PropZIndex, "3")

	r.Place("#card", geometry.Rect{Y: 4, W: 5, H: 5}, nil)
	el2, _ := r.Query("#card")
	assert.Equal(t, "3", el2.Style(PropZIndex))

	el2.SetStyle(PropZIndex, "")
	assert.Equal(t, "", el2.Style(PropZIndex))
}

func TestRegistryRetain(t *testing.T) {
	r := NewRegistry()
	r.Place("a", geometry.Rect{W: 1, H: 1}, nil)
	r.Place("b", geometry.Rect{W: 1, H: 1}, nil)
	r.Retain(map[string]bool{"a": true})
	assert.True(t, r.Has("a"))
	assert.False(t, r.Has("b"))
}

func TestRegistryLayersAbove(t *testing.T) {
	r := NewRegistry()
	r.Place("low", geometry.Rect{W: 1, H: 1}, nil)
	r.Place("high", geometry.Rect{W: 1, H: 1}, nil)
	r.Place("auto", geometry.Rect{W: 1, H: 1}, nil)
	low, _ := r.Query("low")
	high, _ := r.Query("high")
	auto, _ := r.Query("auto")
	low.SetStyle(PropZIndex, "5")
	high.SetStyle(PropZIndex, "9999")
	auto.SetStyle(PropZIndex, "auto")

	layers := r.LayersAbove(10)
	require.Len(t, layers, 1)
	assert.Equal(t, "high", layers[0].Locator)
}

func TestRegistryEmitAndCancel(t *testing.T) {
	r := NewRegistry()
	var a, b int
	cancelA := r.Subscribe(EventScroll, func() { a++ })
	r.Subscribe(EventScroll, func() { b++ })

	r.Emit(EventScroll)
	cancelA()
	cancelA()
	r.Emit(EventScroll)

	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
	assert.Equal(t, 1, r.Listeners(EventScroll))
}

func TestRegistryListenerCancelledDuringEmit(t *testing.T) {
	r := NewRegistry()
	var second int
	var cancelSecond func()
	r.Subscribe(EventResize, func() { cancelSecond() })
	cancelSecond = r.Subscribe(EventResize, func() { second++ })

	r.SetViewport(geometry.Size{W: 80, H: 24})
	assert.Zero(t, second)

	// Same size again emits nothing.
	r.SetViewport(geometry.Size{W: 80, H: 24})
	assert.Equal(t, geometry.Size{W: 80, H: 24}, r.Viewport())
}
