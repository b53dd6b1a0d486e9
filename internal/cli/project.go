package cli

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"contribution-engine/internal/engine"
	"contribution-engine/internal/format"
	"contribution-engine/internal/model"
)

func (app *App) newProjectCmd() *cobra.Command {
	defaults := model.DefaultSummary()
	var (
		contributionType string
		setting          model.ContributionSetting
		summary          model.YtdSummary
	)

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project the retirement balance for a contribution setting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			setting.ContributionType = model.ContributionType(contributionType)
			if err := summary.Validate(); err != nil {
				return err
			}

			p, err := engine.Project(setting, summary)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			table, err := pterm.DefaultTable.WithHasHeader().WithData(projectionTable(setting, summary, p)).Srender()
			if err != nil {
				return fmt.Errorf("render projection: %w", err)
			}
			fmt.Fprintln(out, table)
			fmt.Fprintf(out, "Assumes a %.0f%% annual return over %d years; not investment advice.\n",
				engine.AssumedReturn*100, p.YearsToRetirement)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&contributionType, "type", "t", string(model.ContributionPercent), "Contribution type: percent or dollar")
	flags.Float64VarP(&setting.ContributionValue, "value", "v", model.DefaultSettings().ContributionValue, "Percent of paycheck or dollars per paycheck")
	flags.Float64Var(&summary.SalaryAnnual, "salary", defaults.SalaryAnnual, "Annual salary")
	flags.Float64Var(&summary.YtdContribution, "ytd", defaults.YtdContribution, "Year-to-date contributions")
	flags.IntVar(&summary.PaychecksPerYear, "paychecks", defaults.PaychecksPerYear, "Paychecks per year")
	flags.IntVar(&summary.Age, "age", defaults.Age, "Current age")
	flags.IntVar(&summary.RetirementAge, "retirement-age", defaults.RetirementAge, "Retirement age")
	return cmd
}

func projectionTable(s model.ContributionSetting, summary model.YtdSummary, p model.Projection) pterm.TableData {
	d := format.Display(p)
	return pterm.TableData{
		{"", "Value"},
		{"Annual salary", format.Currency(summary.SalaryAnnual)},
		{"Contribution", format.Setting(s)},
		{"Years to retirement", strconv.Itoa(p.YearsToRetirement)},
		{"Current rate", d.CurrentPercent},
		{"Increased rate", d.IncreasedPercent},
		{"Current balance at retirement", d.CurrentBalanceAtRetirement},
		{"Balance with +1%", d.IncreasedBalanceAtRetirement},
		{"Incremental gain", d.IncrementalGain},
	}
}
