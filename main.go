package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dylan/spotlight/config"
	"github.com/dylan/spotlight/store"
	"github.com/dylan/spotlight/tour"
	"github.com/dylan/spotlight/tours"
	"github.com/dylan/spotlight/tui"
	"github.com/dylan/spotlight/tui/shared"
)

// env is what every command shares once flags are parsed.
type env struct {
	configPath string
	verbose    bool

	cfg    config.Config
	logger *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	e := &env{}
	var startTour string

	root := &cobra.Command{
		Use:   "spotlight",
		Short: "Guided tours for a terminal wellness planner",
		Long: `Spotlight runs a small planner app with first-run guided tours.

Each screen explains itself the first time you open it: the rest of the
screen is dimmed, the element being explained is ringed, and a callout
walks you through it. Press t on any screen to replay its tour.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if e.logger != nil {
				_ = e.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.runApp(cmd.Context(), tour.Feature(startTour))
		},
	}
	root.PersistentFlags().StringVar(&e.configPath, "config", "", "path to config file (default: ~/.config/spotlight/config.toml)")
	root.PersistentFlags().BoolVarP(&e.verbose, "verbose", "v", false, "log at debug level")
	root.Flags().StringVar(&startTour, "tour", "", "open a feature's screen and replay its tour")

	root.AddCommand(newStatusCmd(e), newResetCmd(e), newCatalogCmd())
	return root
}

// setup loads .env, the config file and the logger.
func (e *env) setup() error {
	if err := config.LoadEnv(); err != nil {
		return fmt.Errorf("loading .env: %w", err)
	}

	path := e.configPath
	explicit := path != ""
	if !explicit {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		// A missing default config means defaults.
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = config.Config{}
	}
	e.cfg = cfg

	logger, err := cfg.NewLogger(e.verbose)
	if err != nil {
		return err
	}
	e.logger = logger
	return nil
}

func (e *env) openStore() (store.Store, error) {
	driver, dsn := e.cfg.ResolvedStore()
	st, err := store.Open(driver, store.WithDSN(dsn), store.WithLogger(e.logger))
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", driver, err)
	}
	e.logger.Debug("store opened", zap.String("driver", driver))
	return st, nil
}

// catalog returns the built-in tours overlaid with the configured file.
func (e *env) catalog() (*tours.Catalog, error) {
	c := tours.Builtin()
	if e.cfg.Tours.Catalog == "" {
		return c, nil
	}
	loaded, err := tours.LoadCatalog(e.cfg.Tours.Catalog)
	if err != nil {
		return nil, err
	}
	return c.Merge(loaded), nil
}

func (e *env) runApp(ctx context.Context, startTour tour.Feature) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	st, err := e.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	catalog, err := e.catalog()
	if err != nil {
		return err
	}

	app := tui.NewApp(ctx, e.cfg, tui.Options{
		Store:     st,
		Catalog:   catalog,
		Logger:    e.logger,
		StartTour: startTour,
	})
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))

	if e.cfg.Tours.Watch && e.cfg.Tours.Catalog != "" {
		w, err := tours.NewWatcher(e.cfg.Tours.Catalog, func(c *tours.Catalog) {
			p.Send(shared.CatalogReloadedMsg{Catalog: tours.Builtin().Merge(c)})
		}, e.logger)
		if err != nil {
			return err
		}
		if err := w.Start(ctx); err != nil {
			return err
		}
		defer w.Stop()
	}

	e.logger.Info("starting", zap.String("app", e.cfg.AppName()), zap.String("tour", string(startTour)))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running app: %w", err)
	}
	return nil
}
