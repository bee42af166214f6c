package tour

import "context"

// CompletionStore persists one "has completed" flag per feature.
type CompletionStore interface {
	HasCompleted(ctx context.Context, f Feature) (bool, error)
	MarkCompleted(ctx context.Context, f Feature) error
}

// ReshowPolicy is implemented by stores that can force a completed tour to
// be shown again, e.g. after a server-side onboarding reset.
type ReshowPolicy interface {
	ShouldReshow(ctx context.Context, f Feature) (bool, error)
}

// Resetter is implemented by stores that can clear completion flags.
type Resetter interface {
	Reset(ctx context.Context, f Feature) error
}

// NopStore never remembers anything.
type NopStore struct{}

func (NopStore) HasCompleted(context.Context, Feature) (bool, error) { return false, nil }
func (NopStore) MarkCompleted(context.Context, Feature) error        { return nil }
