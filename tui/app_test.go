package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dylan/spotlight/config"
	"github.com/dylan/spotlight/spotlight"
	"github.com/dylan/spotlight/store"
	"github.com/dylan/spotlight/tour"
	"github.com/dylan/spotlight/tours"
	"github.com/dylan/spotlight/tui/shared"
)

func newApp(t *testing.T, cfg config.Config, opts Options) (*App, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	opts.Store = st
	a := NewApp(context.Background(), cfg, opts)
	a.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return a, st
}

func press(a *App, keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		a.Update(msg)
	}
}

func TestAppAutoStartsHomeTour(t *testing.T) {
	ctx := context.Background()
	a, st := newApp(t, config.Config{}, Options{})

	ctrl := a.Tour()
	require.NotNil(t, ctrl)
	assert.True(t, ctrl.IsActive())
	assert.Equal(t, tours.Home, ctrl.Feature())
	assert.Contains(t, a.View(), "Welcome")

	press(a, "?")
	assert.False(t, a.showHelp, "help stays closed while a tour runs")

	press(a, "enter")
	assert.Equal(t, 1, ctrl.Index())
	assert.Equal(t, spotlight.PhaseShown, a.overlay.Frame().Phase)
	assert.Contains(t, a.View(), "Your day")

	press(a, "esc")
	assert.False(t, ctrl.IsActive())
	assert.Equal(t, tour.OutcomeSkipped, ctrl.Outcome())
	done, err := st.HasCompleted(ctx, tours.Home)
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, spotlight.PhaseIdle, a.overlay.Frame().Phase)

	press(a, "?")
	assert.True(t, a.showHelp)
	assert.Contains(t, a.View(), "Spotlight Help")
	press(a, "x")
	assert.False(t, a.showHelp)
}

func TestAppSwitchingScreensMountsTheirTours(t *testing.T) {
	a, _ := newApp(t, config.Config{}, Options{})
	press(a, "esc")

	press(a, "tab")
	assert.Equal(t, "planner", a.current().Name())
	ctrl := a.Tour()
	require.NotNil(t, ctrl)
	assert.True(t, ctrl.IsActive())
	assert.Contains(t, a.View(), "Plan the week")

	press(a, "tab")
	assert.Equal(t, "planner", a.current().Name(), "screen keys are blocked during a tour")

	press(a, "esc")
	a.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, "home", a.current().Name())
	assert.False(t, a.Tour().IsActive(), "home was already seen")

	press(a, "t")
	assert.True(t, a.Tour().IsActive(), "t replays the tour")
}

func TestAppDisabledFeatureHasNoTour(t *testing.T) {
	cfg := config.Config{}
	cfg.Tours.Disabled = []string{"home"}
	a, _ := newApp(t, cfg, Options{})

	assert.Nil(t, a.Tour())
	assert.Equal(t, spotlight.PhaseIdle, a.overlay.Frame().Phase)
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
	assert.NotNil(t, cmd)
}

func TestAppStartTourOption(t *testing.T) {
	a, _ := newApp(t, config.Config{}, Options{StartTour: tours.Journal})

	assert.Equal(t, "journal", a.current().Name())
	ctrl := a.Tour()
	require.NotNil(t, ctrl)
	assert.True(t, ctrl.IsActive())
	assert.Equal(t, tours.Journal, ctrl.Feature())
}

func TestAppCatalogReload(t *testing.T) {
	a, _ := newApp(t, config.Config{}, Options{})
	press(a, "esc")

	c, err := tours.ParseCatalog([]byte(`
tours:
  home:
    - id: only
      title: Reloaded
`))
	require.NoError(t, err)
	a.Update(shared.CatalogReloadedMsg{Catalog: c})

	press(a, "t")
	assert.Equal(t, 1, a.Tour().TotalSteps())
	assert.Contains(t, a.View(), "Reloaded")
}

func TestFinishedFeedback(t *testing.T) {
	assert.NotNil(t, finishedFeedback(shared.TourFinishedMsg{Feature: tours.Home, Outcome: tour.OutcomeCompleted}))
	assert.NotNil(t, finishedFeedback(shared.TourFinishedMsg{Feature: tours.Home, Outcome: tour.OutcomeSkipped}))
	assert.Nil(t, finishedFeedback(shared.TourFinishedMsg{Feature: tours.Home}))
	assert.Equal(t, "Planner", titleCase("planner"))
}
