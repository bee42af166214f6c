package main

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dylan/spotlight/store"
	"github.com/dylan/spotlight/tour"
	"github.com/dylan/spotlight/tours"
)

func newStatusCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which tours have been seen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := e.openStore()
			if err != nil {
				return err
			}
			defer st.Close()
			catalog, err := e.catalog()
			if err != nil {
				return err
			}

			records, err := st.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing tours: %w", err)
			}
			byFeature := make(map[tour.Feature]store.Record, len(records))
			for _, r := range records {
				byFeature[r.Feature] = r
			}
			features := catalog.Features()
			for f := range byFeature {
				if catalog.Factory(f) == nil {
					features = append(features, f)
				}
			}
			sort.Slice(features, func(i, j int) bool { return features[i] < features[j] })

			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("TOUR", "STEPS", "SEEN", "RESHOW", "UPDATED")
			for _, f := range features {
				r := byFeature[f]
				updated := "-"
				if !r.UpdatedAt.IsZero() {
					updated = r.UpdatedAt.Local().Format("2006-01-02 15:04")
				}
				status := "enabled"
				if e.cfg.IsDisabled(f) {
					status = "disabled"
				}
				t.Row(string(f)+" ("+status+")", fmt.Sprint(len(catalog.Steps(f))), yesNo(r.Completed), yesNo(r.ForceReshow), updated)
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func newResetCmd(e *env) *cobra.Command {
	var reshow bool
	cmd := &cobra.Command{
		Use:   "reset [feature...]",
		Short: "Forget that tours were seen so they show again",
		Long: `Clears the completion flag of the named tours, or of every tour when
none are named. With --reshow the flag is kept and a re-show override is
set instead, which the next app start honors once.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := e.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			features := make([]tour.Feature, 0, len(args))
			for _, a := range args {
				features = append(features, tour.Feature(a))
			}
			if len(features) == 0 {
				catalog, err := e.catalog()
				if err != nil {
					return err
				}
				features = catalog.Features()
			}

			ctx := cmd.Context()
			for _, f := range features {
				if reshow {
					err = st.RequestReshow(ctx, f)
				} else {
					err = st.Reset(ctx, f)
				}
				if err != nil {
					return fmt.Errorf("resetting %s: %w", f, err)
				}
				e.logger.Info("tour reset", zap.String("feature", string(f)), zap.Bool("reshow", reshow))
				fmt.Fprintf(cmd.OutOrStdout(), "reset %s\n", f)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&reshow, "reshow", false, "set the re-show override instead of clearing the flag")
	return cmd
}

func newCatalogCmd() *cobra.Command {
	catalog := &cobra.Command{
		Use:   "catalog",
		Short: "Work with tour catalog files",
	}
	catalog.AddCommand(&cobra.Command{
		Use:   "validate <file>",
		Short: "Check a YAML tour catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := tours.LoadCatalog(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, f := range c.Features() {
				fmt.Fprintf(out, "%s: %d steps\n", f, len(c.Steps(f)))
			}
			fmt.Fprintf(out, "%s is valid\n", args[0])
			return nil
		},
	})
	return catalog
}
