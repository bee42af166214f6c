package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/dylan/spotlight/config"
	"github.com/dylan/spotlight/geometry"
	"github.com/dylan/spotlight/layout"
	"github.com/dylan/spotlight/tour"
	"github.com/dylan/spotlight/tours"
	"github.com/dylan/spotlight/tui/help"
	"github.com/dylan/spotlight/tui/screens"
	"github.com/dylan/spotlight/tui/shared"
	"github.com/dylan/spotlight/tui/tourview"
)

// Rows taken by the tab bar and the status bar.
const (
	tabRows    = 1
	statusRows = 1
)

// Options carries the app's collaborators.
type Options struct {
	Store   tour.CompletionStore
	Catalog *tours.Catalog
	Logger  *zap.Logger
	Data    *screens.Data
	// StartTour opens the feature's screen and replays its tour on launch.
	StartTour tour.Feature
}

// App hosts the demo screens and the tour overlay. It is used through a
// pointer because tour callbacks write back into it.
type App struct {
	cfg     config.Config
	ctx     context.Context
	log     *zap.Logger
	store   tour.CompletionStore
	catalog *tours.Catalog

	reg     *layout.Registry
	signal  *tour.ActiveSignal
	overlay tourview.Model
	screens []*screens.Screen
	active  int

	helpView help.Model
	showHelp bool
	feedback *shared.Feedback
	finished []shared.TourFinishedMsg
	pending  tour.Feature

	ready  bool
	width  int
	height int
}

func NewApp(ctx context.Context, cfg config.Config, opts Options) *App {
	shared.InitStyles(cfg.ResolvedTheme())

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	catalog := opts.Catalog
	if catalog == nil {
		catalog = tours.Builtin()
	}
	data := opts.Data
	if data == nil {
		data = screens.DemoData()
	}

	reg := layout.NewRegistry()
	signal := tour.NewActiveSignal()
	a := &App{
		cfg:      cfg,
		ctx:      ctx,
		log:      log,
		store:    opts.Store,
		catalog:  catalog,
		reg:      reg,
		signal:   signal,
		overlay:  tourview.New(reg, cfg.ResolvedMetrics(), signal, log),
		helpView: help.New(cfg.AppName()),
		pending:  opts.StartTour,
	}
	a.screens = []*screens.Screen{
		screens.Home(reg, data),
		screens.Planner(reg, data),
		screens.Journal(reg, data),
	}
	for _, s := range a.screens {
		if cfg.IsDisabled(s.Feature()) {
			log.Debug("tour disabled", zap.String("feature", string(s.Feature())))
			continue
		}
		s.SetAdapter(a.newAdapter(s))
	}
	return a
}

func (a *App) newAdapter(s *screens.Screen) *tour.Adapter {
	feature := s.Feature()
	firstVisitOnly := a.cfg.ResolvedFirstVisitOnly()
	policy := tour.TriggerPolicy{
		OnMount: a.cfg.ResolvedAutoStart(),
		Gate: func() bool {
			return !firstVisitOnly || s.Visits() == 1
		},
	}
	// The factory reads a.catalog at call time so reloads reach the next session.
	factory := func() []tour.Step { return a.catalog.Steps(feature) }
	ad := tour.NewAdapter(feature, factory, policy, a.store, a.log)
	ad.OnFinish(func(f tour.Feature, o tour.Outcome) {
		a.finished = append(a.finished, shared.TourFinishedMsg{Feature: f, Outcome: o})
	})
	return ad
}

func (a *App) Init() tea.Cmd {
	return nil
}

func (a *App) current() *screens.Screen {
	return a.screens[a.active]
}

func (a *App) bodyHeight() int {
	return max(1, a.height-tabRows-statusRows)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		var quit bool
		cmd, quit = a.handleKey(msg)
		if quit {
			a.overlay.Close()
			return a, tea.Quit
		}

	case shared.StartTourMsg:
		a.startTour(msg.Feature, msg.Force)

	case shared.CatalogReloadedMsg:
		if msg.Catalog != nil {
			a.catalog = msg.Catalog
			a.log.Info("tour catalog reloaded", zap.Int("features", len(msg.Catalog.Features())))
			cmd = shared.Notify(shared.FeedbackInfo, "Tour catalog reloaded")
		}

	case shared.TourFinishedMsg:
		cmd = finishedFeedback(msg)

	case shared.FeedbackMsg:
		fb := msg.Feedback
		a.feedback = &fb

	case shared.ClearFeedbackMsg:
		if a.feedback != nil && a.feedback.Timestamp.Equal(msg.Timestamp) {
			a.feedback = nil
		}

	default:
		a.overlay.Update(msg)
		for _, s := range a.screens {
			if c := s.Update(msg); c != nil {
				cmd = c
			}
		}
	}
	return a, tea.Batch(cmd, a.sync())
}

func (a *App) resize(w, h int) {
	a.width = w
	a.height = h
	a.reg.SetViewport(geometry.Size{W: w, H: h})
	a.overlay.SetSize(w, h)
	a.helpView.SetSize(w, h)
	a.current().SetSize(w, a.bodyHeight(), tabRows)
	a.placeTabs()

	if !a.ready {
		a.ready = true
		a.enter()
		if a.pending != "" {
			a.startTour(a.pending, true)
			a.pending = ""
		}
	}
}

// placeTabs registers the tab bar, which lives outside every screen.
func (a *App) placeTabs() {
	tabs := screens.Tabs(a.screens, a.active)
	a.reg.Place(tours.LocHomeTabs, geometry.Rect{W: min(lipgloss.Width(tabs), a.width), H: tabRows}, nil)
}

// enter mounts the active screen's tour.
func (a *App) enter() {
	s := a.current()
	visits := s.Visit()
	a.log.Debug("screen entered", zap.String("screen", s.Name()), zap.Int("visits", visits))
	if ad := s.Adapter(); ad != nil {
		ad.Mount(a.ctx)
	}
}

func (a *App) switchTo(i int) {
	n := len(a.screens)
	i = ((i % n) + n) % n
	if i == a.active {
		return
	}
	old := a.current()
	if ad := old.Adapter(); ad != nil {
		ad.Unmount()
	}
	old.Unmount()

	a.active = i
	a.current().SetSize(a.width, a.bodyHeight(), tabRows)
	a.placeTabs()
	a.enter()
}

func (a *App) startTour(f tour.Feature, force bool) {
	for i, s := range a.screens {
		if s.Feature() != f {
			continue
		}
		if !a.ready {
			a.pending = f
			return
		}
		a.switchTo(i)
		ad := s.Adapter()
		if ad == nil {
			return
		}
		if force {
			ad.ForceStart(a.ctx)
		} else {
			ad.Start(a.ctx)
		}
		return
	}
	a.log.Warn("no screen for tour", zap.String("feature", string(f)))
}

// handleKey routes a key press. The tour overlay sees keys first and is
// modal while a session runs.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if key.Matches(msg, shared.Keys.ForceQuit) {
		return nil, true
	}
	s := a.current()
	if ad := s.Adapter(); ad != nil && a.overlay.HandleKey(a.ctx, msg, ad.Controller()) {
		return nil, false
	}

	if key.Matches(msg, shared.Keys.Help) {
		if !a.signal.Active() {
			a.showHelp = !a.showHelp
		}
		return nil, false
	}
	if a.showHelp {
		a.showHelp = false
		return nil, false
	}

	switch {
	case key.Matches(msg, shared.Keys.Quit):
		return nil, true
	case key.Matches(msg, shared.Keys.NextScreen):
		a.switchTo(a.active + 1)
	case key.Matches(msg, shared.Keys.PrevScreen):
		a.switchTo(a.active - 1)
	case key.Matches(msg, shared.Keys.Tour):
		if s.Adapter() == nil {
			return shared.Notify(shared.FeedbackWarning, "No tour for "+s.Title()), false
		}
		a.startTour(s.Feature(), true)
	case key.Matches(msg, shared.Keys.Add):
		s.Add()
	case key.Matches(msg, shared.Keys.Down):
		s.Scroll(1)
	case key.Matches(msg, shared.Keys.Up):
		s.Scroll(-1)
	case key.Matches(msg, shared.Keys.PageDown):
		s.Scroll(s.PageSize())
	case key.Matches(msg, shared.Keys.PageUp):
		s.Scroll(-s.PageSize())
	}
	return nil, false
}

// sync hands the active tour state to the overlay and collects the
// commands the step change needs.
func (a *App) sync() tea.Cmd {
	if !a.ready {
		return nil
	}
	s := a.current()
	var st tour.State
	if ad := s.Adapter(); ad != nil {
		st = ad.Sync(a.ctx, a.reg)
	}
	cmds := []tea.Cmd{a.overlay.Present(st), s.AnimCmd()}
	for _, f := range a.finished {
		cmds = append(cmds, func() tea.Msg { return f })
	}
	a.finished = nil
	return tea.Batch(cmds...)
}

func finishedFeedback(msg shared.TourFinishedMsg) tea.Cmd {
	switch msg.Outcome {
	case tour.OutcomeCompleted:
		return shared.Notify(shared.FeedbackSuccess, fmt.Sprintf("%s tour complete", titleCase(string(msg.Feature))))
	case tour.OutcomeSkipped:
		return shared.Notify(shared.FeedbackInfo, "Tour skipped. Press t to replay it")
	}
	return nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (a *App) View() string {
	if !a.ready {
		return ""
	}
	if a.showHelp {
		return a.helpView.View()
	}

	tabs := lipgloss.NewStyle().MaxWidth(a.width).Render(screens.Tabs(a.screens, a.active))
	body := lipgloss.NewStyle().Width(a.width).Height(a.bodyHeight()).MaxHeight(a.bodyHeight()).
		Render(a.current().View())
	base := lipgloss.JoinVertical(lipgloss.Left, tabs, body, a.renderStatusBar())
	return a.overlay.View(base)
}

func (a *App) renderStatusBar() string {
	parts := []string{a.cfg.AppName(), a.current().Title()}
	if a.signal.Active() {
		parts = append(parts, "tour")
	}
	status := strings.Join(parts, " │ ")
	if a.feedback != nil {
		switch a.feedback.Level {
		case shared.FeedbackSuccess:
			status += " │ " + shared.FeedbackSuccessStyle.Render(a.feedback.Message)
		case shared.FeedbackWarning:
			status += " │ " + shared.FeedbackWarningStyle.Render(a.feedback.Message)
		default:
			status += " │ " + a.feedback.Message
		}
	}
	status += " │ ? for help"
	return shared.StatusBarStyle.Width(a.width).MaxWidth(a.width).Render(status)
}

// Tour returns the active screen's tour controller, if it has one.
func (a *App) Tour() *tour.Controller {
	if ad := a.current().Adapter(); ad != nil {
		return ad.Controller()
	}
	return nil
}
