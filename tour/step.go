// Package tour holds the guided tour model and the per-feature session
// state machine. It knows nothing about rendering: the overlay consumes the
// State a Controller reports and calls back into Next, Prev, Skip and
// Complete.
package tour

// Feature scopes one tour's steps and one completion flag.
type Feature string

// Position is a callout placement preference relative to the target.
type Position string

const (
	PositionTop    Position = "top"
	PositionBottom Position = "bottom"
	PositionLeft   Position = "left"
	PositionRight  Position = "right"
	PositionCenter Position = "center"
)

// Valid reports whether p is one of the known positions.
func (p Position) Valid() bool {
	switch p {
	case PositionTop, PositionBottom, PositionLeft, PositionRight, PositionCenter:
		return true
	}
	return false
}

// Action is a display-only hint of what the user is expected to do.
type Action string

const (
	ActionNone  Action = ""
	ActionTap   Action = "tap"
	ActionSwipe Action = "swipe"
	ActionLook  Action = "look"
)

// Query is a snapshot of the elements currently on screen.
type Query interface {
	Has(locator string) bool
}

// Condition decides whether an anchored step can be presented right now.
// It must be a pure function of q: it is re-evaluated on every render.
type Condition func(q Query) bool

// TargetPresent is a Condition that holds while the step's own locator
// resolves to an element.
func TargetPresent(locator string) Condition {
	return func(q Query) bool { return q != nil && q.Has(locator) }
}

// Anchor ties a step to an on-screen element.
type Anchor struct {
	Locator   string
	Position  Position
	Condition Condition // nil means always eligible
}

// Kind distinguishes anchored steps from centered ones.
type Kind int

const (
	KindCentered Kind = iota
	KindAnchored
)

// Step is one unit of a tour. A nil Anchor makes it a centered step.
type Step struct {
	ID          string
	Title       string
	Description string
	Action      Action
	Anchor      *Anchor
}

func (s Step) Kind() Kind {
	if s.Anchor == nil {
		return KindCentered
	}
	return KindAnchored
}

// Position returns the placement preference, center for centered steps.
func (s Step) Position() Position {
	if s.Anchor == nil || s.Anchor.Position == "" {
		return PositionCenter
	}
	return s.Anchor.Position
}

// Locator returns the target locator, or "" for centered steps.
func (s Step) Locator() string {
	if s.Anchor == nil {
		return ""
	}
	return s.Anchor.Locator
}

// Eligible evaluates the step's condition against q.
func (s Step) Eligible(q Query) bool {
	if s.Anchor == nil || s.Anchor.Condition == nil {
		return true
	}
	return s.Anchor.Condition(q)
}

// Centered builds a step without a target.
func Centered(id, title, description string) Step {
	return Step{ID: id, Title: title, Description: description}
}

// Anchored builds a step highlighting locator.
func Anchored(id, locator string, pos Position, title, description string) Step {
	return Step{
		ID:          id,
		Title:       title,
		Description: description,
		Anchor:      &Anchor{Locator: locator, Position: pos},
	}
}

// WithAction returns a copy of s carrying an action hint.
func (s Step) WithAction(a Action) Step {
	s.Action = a
	return s
}

// When returns a copy of s gated by cond. It has no effect on centered
// steps.
func (s Step) When(cond Condition) Step {
	if s.Anchor == nil {
		return s
	}
	a := *s.Anchor
	a.Condition = cond
	s.Anchor = &a
	return s
}

// StepFactory supplies a fresh step list for one feature.
type StepFactory func() []Step
