// Package layout tracks where named interface elements were last drawn so
// overlays can find, measure and restyle them.
package layout

import (
	"sort"
	"strconv"

	"github.com/dylan/spotlight/geometry"
)

// Style properties the overlay reads and writes.
const (
	PropZIndex   = "z-index"
	PropPosition = "position"
)

// EventKind identifies a surface notification.
type EventKind int

const (
	EventScroll EventKind = iota
	EventResize
	EventScrollEnd
)

// Element is one rendered interface element.
type Element interface {
	Locator() string
	// Bounds reports the element rectangle in viewport coordinates. ok is
	// false once the element is no longer mounted.
	Bounds() (r geometry.Rect, ok bool)
	Style(prop string) string
	SetStyle(prop, value string)
	// ScrollIntoView asks the owning scroll container to center the
	// element. Containers that can't scroll ignore it.
	ScrollIntoView()
}

// Surface resolves locators and reports viewport changes.
type Surface interface {
	Query(locator string) (Element, bool)
	Has(locator string) bool
	Viewport() geometry.Size
	// Subscribe registers fn for kind. The returned cancel is idempotent.
	Subscribe(kind EventKind, fn func()) (cancel func())
}

// Scroller is implemented by scroll containers owning registered elements.
type Scroller interface {
	ScrollTo(locator string)
}

type node struct {
	locator  string
	bounds   geometry.Rect
	mounted  bool
	styles   map[string]string
	scroller Scroller
}

func (n *node) Locator() string { return n.locator }

func (n *node) Bounds() (geometry.Rect, bool) {
	if !n.mounted {
		return geometry.Rect{}, false
	}
	return n.bounds, true
}

func (n *node) Style(prop string) string { return n.styles[prop] }

func (n *node) SetStyle(prop, value string) {
	if value == "" {
		delete(n.styles, prop)
		return
	}
	n.styles[prop] = value
}

func (n *node) ScrollIntoView() {
	if n.scroller != nil && n.mounted {
		n.scroller.ScrollTo(n.locator)
	}
}

type listener struct {
	id int
	fn func()
}

// Registry is the Surface of a terminal application. Views Place their
// elements after each layout pass and Emit scroll/resize events.
// It is not safe for concurrent use; Bubble Tea's update loop owns it.
type Registry struct {
	nodes     map[string]*node
	viewport  geometry.Size
	listeners map[EventKind][]listener
	nextID    int
}

func NewRegistry() *Registry {
	return &Registry{
		nodes:     make(map[string]*node),
		listeners: make(map[EventKind][]listener),
	}
}

// SetViewport records the terminal size and notifies resize listeners
// when it changed.
func (r *Registry) SetViewport(s geometry.Size) {
	if s == r.viewport {
		return
	}
	r.viewport = s
	r.Emit(EventResize)
}

func (r *Registry) Viewport() geometry.Size { return r.viewport }

// Place mounts (or moves) an element. Styles survive re-placement.
func (r *Registry) Place(locator string, bounds geometry.Rect, scroller Scroller) {
	n, ok := r.nodes[locator]
	if !ok {
		n = &node{locator: locator, styles: make(map[string]string)}
		r.nodes[locator] = n
	}
	n.bounds = bounds
	n.scroller = scroller
	n.mounted = true
}

// Unmount marks an element as gone. Handles held by overlays stay valid
// but report !ok from Bounds.
func (r *Registry) Unmount(locator string) {
	if n, ok := r.nodes[locator]; ok {
		n.mounted = false
	}
}

// Retain unmounts every element whose locator is not in keep.
func (r *Registry) Retain(keep map[string]bool) {
	for loc, n := range r.nodes {
		if !keep[loc] {
			n.mounted = false
		}
	}
}

func (r *Registry) Query(locator string) (Element, bool) {
	n, ok := r.nodes[locator]
	if !ok || !n.mounted {
		return nil, false
	}
	return n, true
}

func (r *Registry) Has(locator string) bool {
	_, ok := r.Query(locator)
	return ok
}

// Layer is a mounted element painted at a given z-index.
type Layer struct {
	Locator string
	Bounds  geometry.Rect
	Z       int
}

// LayersAbove lists mounted elements whose z-index is greater than z,
// lowest first.
func (r *Registry) LayersAbove(z int) []Layer {
	var out []Layer
	for _, n := range r.nodes {
		if !n.mounted {
			continue
		}
		v, err := strconv.Atoi(n.styles[PropZIndex])
		if err != nil || v <= z {
			continue
		}
		out = append(out, Layer{Locator: n.locator, Bounds: n.bounds, Z: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Z != out[j].Z {
			return out[i].Z < out[j].Z
		}
		return out[i].Locator < out[j].Locator
	})
	return out
}

func (r *Registry) Subscribe(kind EventKind, fn func()) func() {
	r.nextID++
	id := r.nextID
	r.listeners[kind] = append(r.listeners[kind], listener{id: id, fn: fn})
	return func() { r.unsubscribe(kind, id) }
}

func (r *Registry) unsubscribe(kind EventKind, id int) {
	ls := r.listeners[kind]
	for i, l := range ls {
		if l.id == id {
			r.listeners[kind] = append(ls[:i:i], ls[i+1:]...)
			return
		}
	}
}

// Emit calls the listeners of kind registered at the time of the call.
func (r *Registry) Emit(kind EventKind) {
	ls := append([]listener(nil), r.listeners[kind]...)
	for _, l := range ls {
		if r.subscribed(kind, l.id) {
			l.fn()
		}
	}
}

func (r *Registry) subscribed(kind EventKind, id int) bool {
	for _, l := range r.listeners[kind] {
		if l.id == id {
			return true
		}
	}
	return false
}

// Listeners returns the number of listeners registered for kind.
func (r *Registry) Listeners(kind EventKind) int {
	return len(r.listeners[kind])
}
