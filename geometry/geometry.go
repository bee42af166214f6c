package geometry

import "time"

// Rect is an axis-aligned rectangle in viewport coordinates.
// X/Y is the top-left corner.
type Rect struct {
	X, Y int
	W, H int
}

func (r Rect) Right() int  { return r.X + r.W }
func (r Rect) Bottom() int { return r.Y + r.H }

// Empty reports whether the rectangle covers no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Pad grows the rectangle by n on every side.
func (r Rect) Pad(n int) Rect {
	return Rect{X: r.X - n, Y: r.Y - n, W: r.W + 2*n, H: r.H + 2*n}
}

// Intersect returns the overlap of r and o. The result is Empty when they
// don't overlap.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.Right(), o.Right()), min(r.Bottom(), o.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

type Size struct {
	W, H int
}

// Bounds returns the rectangle of a viewport of this size.
func (s Size) Bounds() Rect { return Rect{W: s.W, H: s.H} }

type Point struct {
	X, Y int
}

// Metrics holds the tunable constants of spotlight and callout geometry.
type Metrics struct {
	SpotlightPadding int           // cutout margin around the target
	TallRatio        float64       // targets taller than this share of the viewport get a header spotlight
	HeaderHeight     int           // height of the header spotlight for tall targets
	BottomSafeZone   int           // reserved chrome at the bottom of the viewport
	CalloutGap       int           // distance between spotlight and callout
	EdgeMargin       int           // minimum distance between callout and viewport edges
	SettleDelay      time.Duration // wait after scroll-into-view before measuring
}

// PixelMetrics returns the metrics of the touch-screen layout the engine
// was first tuned for. Geometry tests use these.
func PixelMetrics() Metrics {
	return Metrics{
		SpotlightPadding: 8,
		TallRatio:        0.75,
		HeaderHeight:     140,
		BottomSafeZone:   100,
		CalloutGap:       16,
		EdgeMargin:       16,
		SettleDelay:      400 * time.Millisecond,
	}
}

// CellMetrics returns metrics scaled to terminal cells.
func CellMetrics() Metrics {
	return Metrics{
		SpotlightPadding: 1,
		TallRatio:        0.75,
		HeaderHeight:     6,
		BottomSafeZone:   2,
		CalloutGap:       1,
		EdgeMargin:       1,
		SettleDelay:      250 * time.Millisecond,
	}
}

// UsableHeight is the viewport height minus the bottom safe zone.
func (m Metrics) UsableHeight(vp Size) int {
	h := vp.H - m.BottomSafeZone
	if h < 0 {
		return 0
	}
	return h
}
