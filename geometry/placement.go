package geometry

// Side is a callout placement preference relative to the spotlight.
type Side int

const (
	SideCenter Side = iota
	SideTop
	SideBottom
	SideLeft
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "center"
	}
}

// Placement is the computed callout origin.
type Placement struct {
	Origin Point
	Side   Side // side actually used after flipping
	Flip   bool // placed on the opposite side of the preference
	Clamp  bool // pushed inside the usable viewport
}

// SpotlightRect derives the highlighted region for a measured target.
// Targets taller than TallRatio of the viewport only get their header
// highlighted so the cutout doesn't swallow the whole screen.
func SpotlightRect(target Rect, vp Size, m Metrics) Rect {
	r := target
	if float64(target.H) > m.TallRatio*float64(vp.H) && target.H > m.HeaderHeight {
		r.H = m.HeaderHeight
	}
	return r.Pad(m.SpotlightPadding)
}

// PlaceCallout positions a callout of the given size next to spot.
// A nil spot centers the callout in the usable viewport.
func PlaceCallout(spot *Rect, side Side, box Size, vp Size, m Metrics) Placement {
	usable := m.UsableHeight(vp)
	if spot == nil || side == SideCenter {
		p := Placement{
			Origin: Point{X: (vp.W - box.W) / 2, Y: (usable - box.H) / 2},
			Side:   SideCenter,
		}
		p.Origin.X, p.Clamp = clampAxis(p.Origin.X, box.W, vp.W, m.EdgeMargin)
		var clampedY bool
		p.Origin.Y, clampedY = clampAxis(p.Origin.Y, box.H, usable, m.EdgeMargin)
		p.Clamp = p.Clamp || clampedY
		return p
	}

	s := *spot
	p := Placement{Side: side}
	switch side {
	case SideTop:
		p.Origin = Point{X: s.X + s.W/2 - box.W/2, Y: s.Y - m.CalloutGap - box.H}
	case SideBottom:
		p.Origin = Point{X: s.X + s.W/2 - box.W/2, Y: s.Bottom() + m.CalloutGap}
	case SideLeft:
		p.Origin = Point{X: s.X - m.CalloutGap - box.W, Y: s.Y + s.H/2 - box.H/2}
	case SideRight:
		p.Origin = Point{X: s.Right() + m.CalloutGap, Y: s.Y + s.H/2 - box.H/2}
	}

	var clampedX bool
	p.Origin.X, clampedX = clampAxis(p.Origin.X, box.W, vp.W, m.EdgeMargin)

	above := s.Y - m.CalloutGap - box.H
	below := s.Bottom() + m.CalloutGap
	switch {
	case p.Origin.Y+box.H > usable:
		if side == SideBottom && above >= m.EdgeMargin {
			p.Origin.Y, p.Side, p.Flip = above, SideTop, true
		}
	case p.Origin.Y < m.EdgeMargin:
		if side == SideTop && below+box.H <= usable {
			p.Origin.Y, p.Side, p.Flip = below, SideBottom, true
		}
	}

	var clampedY bool
	p.Origin.Y, clampedY = clampAxis(p.Origin.Y, box.H, usable, m.EdgeMargin)
	p.Clamp = clampedX || clampedY
	return p
}

// clampAxis keeps [v, v+length) inside [margin, limit-margin]. When the box
// doesn't fit at all it sticks to the leading margin.
func clampAxis(v, length, limit, margin int) (int, bool) {
	hi := limit - margin - length
	switch {
	case hi < margin:
		return margin, v != margin
	case v < margin:
		return margin, true
	case v > hi:
		return hi, true
	}
	return v, false
}
