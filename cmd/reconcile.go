package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"payfold/internal/budget"
	"payfold/internal/cli"
	"payfold/internal/model"
	"payfold/internal/store"
)

var (
	flagReconProfile string
	flagReconActuals string
	flagReconSince   string
	flagReconUntil   string
	flagReconAdjust  float64
	flagReconOut     string
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Compare actual spending against the plan",
	Long: "Compare recorded spending per envelope against planned targets and\n" +
		"optionally adjust targets toward reality.",
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().StringVar(&flagReconProfile, "profile", "", "Path to budget profile JSON")
	reconcileCmd.Flags().StringVar(&flagReconActuals, "actuals", "", "Path to actual transactions JSON (default: recorded history)")
	reconcileCmd.Flags().StringVar(&flagReconSince, "since", "", "Earliest history date to include, YYYY-MM-DD (default one month before --until)")
	reconcileCmd.Flags().StringVar(&flagReconUntil, "until", "", "Latest history date to include, YYYY-MM-DD (default today)")
	reconcileCmd.Flags().Float64Var(&flagReconAdjust, "adjust", 0, "Target adjustment factor, e.g. 0.1 for 10%")
	reconcileCmd.Flags().StringVar(&flagReconOut, "out", "", "Write the adjusted profile to this path")
	_ = reconcileCmd.MarkFlagRequired("profile")
	rootCmd.AddCommand(reconcileCmd)
}

func runReconcile(_ *cobra.Command, _ []string) error {
	profile, err := loadBudgetProfile(flagReconProfile)
	if err != nil {
		return err
	}

	actuals, err := loadActuals()
	if err != nil {
		return err
	}

	results := budget.Reconcile(&profile, actuals)

	fmt.Println()
	fmt.Println(cli.RenderTitle("RECONCILIATION"))
	fmt.Println()

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			r.EnvelopeName,
			cli.FormatMoney(r.PlannedAmount),
			cli.FormatMoney(r.ActualAmount),
			cli.FormatMoney(r.Difference),
			cli.FormatPercent(r.Percentage),
			string(r.OverUnder),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Envelope", "Planned", "Actual", "Diff", "Used", "Status"},
		Rows:    rows,
	}))
	fmt.Println()

	if flagReconAdjust <= 0 {
		return nil
	}

	adjusted := budget.AdjustTargets(&profile, results, flagReconAdjust)

	rows = rows[:0]
	for i, env := range profile.Envelopes {
		after := adjusted.Envelopes[i].TargetAmount
		if env.TargetAmount == after {
			continue
		}
		rows = append(rows, []string{
			env.Name,
			cli.FormatMoney(env.TargetAmount),
			cli.FormatMoney(after),
		})
	}
	if len(rows) == 0 {
		fmt.Println("  No targets needed adjustment.")
		fmt.Println()
		return nil
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Adjusted Targets (factor %.0f%%)", flagReconAdjust*100),
		Headers: []string{"Envelope", "Before", "After"},
		Rows:    rows,
	}))
	fmt.Println()

	if flagReconOut != "" {
		data, err := json.MarshalIndent(adjusted, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(flagReconOut, data, 0o644); err != nil {
			return fmt.Errorf("writing adjusted profile: %w", err)
		}
		if !flagQuiet {
			fmt.Printf("  Wrote adjusted profile to %s\n\n", flagReconOut)
		}
	}
	return nil
}

// loadActuals reads actual transactions from a JSON file when --actuals is
// set, otherwise from recorded history.
func loadActuals() ([]model.ActualTransaction, error) {
	if flagReconActuals != "" {
		data, err := os.ReadFile(flagReconActuals)
		if err != nil {
			return nil, fmt.Errorf("reading actuals: %w", err)
		}
		var actuals []model.ActualTransaction
		if err := json.Unmarshal(data, &actuals); err != nil {
			return nil, fmt.Errorf("parsing actuals: %w", err)
		}
		return actuals, nil
	}

	since, until, err := historyWindow(flagReconSince, flagReconUntil)
	if err != nil {
		return nil, err
	}

	db, err := store.Open(dbPath())
	if err != nil {
		return nil, err
	}
	defer db.Close()

	actuals, err := db.LoadActuals(since, until)
	if err != nil {
		return nil, fmt.Errorf("loading actual history: %w", err)
	}
	return actuals, nil
}

// historyWindow resolves the [since, until] history range from flag values.
// An empty until means today; an empty since means one month before until.
func historyWindow(sinceFlag, untilFlag string) (time.Time, time.Time, error) {
	until, err := parseDate(untilFlag)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	since := until.AddDate(0, -1, 0)
	if sinceFlag != "" {
		since, err = parseDate(sinceFlag)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if until.Before(since) {
		return time.Time{}, time.Time{}, fmt.Errorf("--until %s is before --since %s",
			until.Format(model.DateLayout), since.Format(model.DateLayout))
	}
	return since, until, nil
}
