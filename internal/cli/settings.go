package cli

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"contribution-engine/internal/format"
	"contribution-engine/internal/model"
)

func (app *App) newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Read or change the saved contribution setting",
	}
	cmd.AddCommand(app.newSettingsGetCmd(), app.newSettingsSetCmd(), app.newSettingsHistoryCmd())
	return cmd
}

func (app *App) newSettingsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show the saved contribution setting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig()
			if err != nil {
				return err
			}
			svc, db, err := openSettings(cfg, newLogger(io.Discard, cfg.Log.Level))
			if err != nil {
				return err
			}
			defer db.Close()

			cur, err := svc.Get(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, format.Setting(cur.Setting))
			if !cur.Saved {
				fmt.Fprint(out, pterm.Info.Sprintln("No setting saved yet; showing the default."))
			}
			return nil
		},
	}
}

func (app *App) newSettingsSetCmd() *cobra.Command {
	var (
		contributionType string
		value            float64
	)
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Save a new contribution setting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig()
			if err != nil {
				return err
			}
			svc, db, err := openSettings(cfg, newLogger(io.Discard, cfg.Log.Level))
			if err != nil {
				return err
			}
			defer db.Close()

			saved, err := svc.Save(cmd.Context(), model.ContributionSetting{
				ContributionType:  model.ContributionType(contributionType),
				ContributionValue: value,
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), pterm.Success.Sprintln("Saved "+format.Setting(saved)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&contributionType, "type", "t", string(model.ContributionPercent), "Contribution type: percent or dollar")
	cmd.Flags().Float64VarP(&value, "value", "v", 0, "Percent of paycheck or dollars per paycheck")
	cmd.MarkFlagRequired("value")
	return cmd
}

func (app *App) newSettingsHistoryCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved changes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig()
			if err != nil {
				return err
			}
			svc, db, err := openSettings(cfg, newLogger(io.Discard, cfg.Log.Level))
			if err != nil {
				return err
			}
			defer db.Close()

			changes, err := svc.History(cmd.Context(), limit)
			if err != nil {
				return err
			}
			data := pterm.TableData{{"Changed at", "Setting", "Change"}}
			for _, c := range changes {
				data = append(data, []string{
					c.ChangedAt.Format("2006-01-02 15:04:05"),
					format.Setting(c.Setting),
					fmt.Sprintf("%d ops", len(c.ForwardPatch)),
				})
			}
			table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
			if err != nil {
				return fmt.Errorf("render history: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Number of changes to show")
	return cmd
}
