package tour

import (
	"context"

	"go.uber.org/zap"
)

// TriggerPolicy decides whether a tour starts by itself when its view
// mounts.
type TriggerPolicy struct {
	OnMount bool
	// Gate is the view's own condition, e.g. "first visit". Nil passes.
	Gate func() bool
}

// Adapter glues one feature's step list to a Controller. Every screen
// that offers a tour owns one.
type Adapter struct {
	feature Feature
	factory StepFactory
	policy  TriggerPolicy
	store   CompletionStore
	log     *zap.Logger

	ctrl      *Controller
	triggered bool
	onFinish  func(Feature, Outcome)
}

func NewAdapter(feature Feature, factory StepFactory, policy TriggerPolicy, store CompletionStore, log *zap.Logger) *Adapter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Adapter{
		feature: feature,
		factory: factory,
		policy:  policy,
		store:   store,
		log:     log,
	}
}

// OnFinish registers a callback for the end of every session.
func (a *Adapter) OnFinish(fn func(Feature, Outcome)) {
	a.onFinish = fn
}

func (a *Adapter) Feature() Feature { return a.feature }

// Controller returns the session controller, creating it on first use.
func (a *Adapter) Controller() *Controller {
	if a.ctrl == nil {
		a.ctrl = a.newController()
	}
	return a.ctrl
}

func (a *Adapter) newController() *Controller {
	var steps []Step
	if a.factory != nil {
		steps = a.factory()
	}
	c := NewController(a.feature, steps, a.store, a.log)
	c.OnFinish = func(o Outcome) {
		if a.onFinish != nil {
			a.onFinish(a.feature, o)
		}
	}
	return c
}

// Mount resolves a fresh step list and applies the trigger policy. The
// auto-start happens at most once per adapter.
func (a *Adapter) Mount(ctx context.Context) {
	if a.ctrl == nil || !a.ctrl.IsActive() {
		a.ctrl = a.newController()
	}
	if !a.policy.OnMount || a.triggered {
		return
	}
	if a.policy.Gate != nil && !a.policy.Gate() {
		return
	}
	a.triggered = true
	a.ctrl.Start(ctx)
}

// Unmount drops a running session without recording completion.
func (a *Adapter) Unmount() {
	if a.ctrl != nil {
		a.ctrl.End()
	}
}

// Start begins the tour honoring the completion flag.
func (a *Adapter) Start(ctx context.Context) {
	a.fresh().Start(ctx)
}

// ForceStart begins the tour regardless of the completion flag.
func (a *Adapter) ForceStart(ctx context.Context) {
	a.fresh().ForceStart(ctx)
}

// fresh rebuilds the controller between sessions so step factories see
// current data.
func (a *Adapter) fresh() *Controller {
	if a.ctrl == nil || !a.ctrl.IsActive() {
		a.ctrl = a.newController()
	}
	return a.ctrl
}

// Sync auto-advances past ineligible steps and returns the state to render.
func (a *Adapter) Sync(ctx context.Context, q Query) State {
	c := a.Controller()
	c.SkipIneligible(ctx, q)
	return c.State(q)
}
