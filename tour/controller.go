package tour

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Outcome records how the last session ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeCompleted
	OutcomeSkipped
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "none"
	}
}

// State is the read-only view of a session that the overlay renders.
type State struct {
	Feature   Feature
	SessionID string
	Active    bool
	Step      Step
	HasStep   bool // false when inactive or the current step is ineligible
	Index     int
	Total     int
	IsLast    bool
}

// Controller runs the tour session of one feature.
type Controller struct {
	feature Feature
	steps   []Step
	store   CompletionStore
	log     *zap.Logger

	active  bool
	index   int
	forced  bool
	back    bool // last move was Prev
	session string
	outcome Outcome

	// OnFinish is called after a session ends, with how it ended.
	OnFinish func(Outcome)
}

// NewController creates an inactive controller. The step list is copied.
// A nil store behaves like NopStore and a nil logger discards output.
func NewController(feature Feature, steps []Step, store CompletionStore, log *zap.Logger) *Controller {
	if store == nil {
		store = NopStore{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		feature: feature,
		steps:   append([]Step(nil), steps...),
		store:   store,
		log:     log.With(zap.String("feature", string(feature))),
	}
}

func (c *Controller) Feature() Feature { return c.feature }
func (c *Controller) IsActive() bool   { return c.active }
func (c *Controller) Index() int       { return c.index }
func (c *Controller) TotalSteps() int  { return len(c.steps) }
func (c *Controller) Outcome() Outcome { return c.outcome }

// SessionID identifies the current (or last) session in logs.
func (c *Controller) SessionID() string { return c.session }

// IsLastStep reports whether the session sits on the final step.
func (c *Controller) IsLastStep() bool {
	return c.active && c.index == len(c.steps)-1
}

// Start begins a session at step 0 unless one is running or the feature's
// completion flag is set.
func (c *Controller) Start(ctx context.Context) {
	if c.active {
		return
	}
	if c.completed(ctx) && !c.reshow(ctx) {
		c.log.Debug("tour already completed, not starting")
		return
	}
	c.begin(ctx, false)
}

// ForceStart is Start without the completion flag check.
func (c *Controller) ForceStart(ctx context.Context) {
	if c.active {
		return
	}
	c.begin(ctx, true)
}

func (c *Controller) begin(ctx context.Context, forced bool) {
	c.session = uuid.NewString()
	c.forced = forced
	c.index = 0
	c.back = false
	c.outcome = OutcomeNone
	c.active = true
	c.log.Info("tour started",
		zap.String("session", c.session),
		zap.Bool("forced", forced),
		zap.Int("steps", len(c.steps)))
	if len(c.steps) == 0 {
		c.finish(ctx, OutcomeCompleted)
	}
}

// Next advances one step, completing the session past the last step.
func (c *Controller) Next(ctx context.Context) {
	if !c.active {
		return
	}
	if c.index >= len(c.steps)-1 {
		c.finish(ctx, OutcomeCompleted)
		return
	}
	c.back = false
	c.index++
}

// Prev goes back one step. It does nothing on the first step.
func (c *Controller) Prev() {
	if !c.active || c.index == 0 {
		return
	}
	c.back = true
	c.index--
}

// Complete ends the session and records the completion flag.
func (c *Controller) Complete(ctx context.Context) {
	if !c.active {
		return
	}
	c.finish(ctx, OutcomeCompleted)
}

// Skip dismisses the session. It records the completion flag like Complete.
func (c *Controller) Skip(ctx context.Context) {
	if !c.active {
		return
	}
	c.finish(ctx, OutcomeSkipped)
}

// End drops the session without touching the completion flag. Used when
// the owning view goes away mid-tour.
func (c *Controller) End() {
	if !c.active {
		return
	}
	c.active = false
	c.index = 0
	c.log.Debug("tour session dropped", zap.String("session", c.session))
}

func (c *Controller) finish(ctx context.Context, o Outcome) {
	c.active = false
	c.index = 0
	c.outcome = o
	if err := c.store.MarkCompleted(ctx, c.feature); err != nil {
		// The tour may show again next time; that's acceptable.
		c.log.Warn("recording tour completion failed", zap.Error(err))
	}
	c.log.Info("tour finished",
		zap.String("session", c.session),
		zap.Stringer("outcome", o),
		zap.Bool("forced", c.forced))
	if c.OnFinish != nil {
		c.OnFinish(o)
	}
}

func (c *Controller) completed(ctx context.Context) bool {
	done, err := c.store.HasCompleted(ctx, c.feature)
	if err != nil {
		c.log.Warn("reading tour completion failed, assuming not completed", zap.Error(err))
		return false
	}
	return done
}

func (c *Controller) reshow(ctx context.Context) bool {
	rp, ok := c.store.(ReshowPolicy)
	if !ok {
		return false
	}
	v, err := rp.ShouldReshow(ctx, c.feature)
	if err != nil {
		c.log.Warn("reading tour reshow override failed", zap.Error(err))
		return false
	}
	return v
}

// CurrentStep returns the step at the current index if the session is
// active and the step is eligible against q.
func (c *Controller) CurrentStep(q Query) (Step, bool) {
	if !c.active || c.index < 0 || c.index >= len(c.steps) {
		return Step{}, false
	}
	s := c.steps[c.index]
	if !s.Eligible(q) {
		return Step{}, false
	}
	return s, true
}

// State snapshots the session for rendering.
func (c *Controller) State(q Query) State {
	st := State{
		Feature:   c.feature,
		SessionID: c.session,
		Active:    c.active,
		Index:     c.index,
		Total:     len(c.steps),
		IsLast:    c.IsLastStep(),
	}
	st.Step, st.HasStep = c.CurrentStep(q)
	return st
}

// SkipIneligible moves past steps whose condition fails against q, in the
// direction of the last move. Walking back stops at the first step and then
// turns forward; walking forward may complete the session when no later
// step qualifies.
func (c *Controller) SkipIneligible(ctx context.Context, q Query) {
	for c.active {
		if _, ok := c.CurrentStep(q); ok {
			return
		}
		c.log.Debug("skipping ineligible step", zap.String("step", c.steps[c.index].ID))
		if c.back && c.index > 0 {
			c.index--
			continue
		}
		c.back = false
		c.Next(ctx)
	}
}
