package spotlight

import (
	"strconv"

	"github.com/dylan/spotlight/layout"
)

// Paint order of the overlay layers.
const (
	BackdropZ = 9998
	TargetZ   = 9999
	CalloutZ  = 10000
)

// Lease is a temporary elevation of one element above the backdrop.
// Release puts back exactly the style values read at acquisition.
type Lease struct {
	el       layout.Element
	zIndex   string
	position string
	released bool
}

// Elevate raises el to TargetZ. It only gives el a positioning context if
// it had none, so the elevation doesn't move it.
func Elevate(el layout.Element) *Lease {
	l := &Lease{
		el:       el,
		zIndex:   el.Style(layout.PropZIndex),
		position: el.Style(layout.PropPosition),
	}
	el.SetStyle(layout.PropZIndex, strconv.Itoa(TargetZ))
	if l.position == "" || l.position == "static" {
		el.SetStyle(layout.PropPosition, "relative")
	}
	return l
}

// Element returns the leased element.
func (l *Lease) Element() layout.Element { return l.el }

// Release restores the captured styles. Calls after the first are no-ops.
func (l *Lease) Release() {
	if l == nil || l.released {
		return
	}
	l.released = true
	l.el.SetStyle(layout.PropZIndex, l.zIndex)
	l.el.SetStyle(layout.PropPosition, l.position)
}
