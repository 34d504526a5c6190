package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"payfold/internal/budget"
	"payfold/internal/cli"
	"payfold/internal/store"
)

var (
	flagAllocProfile string
	flagAllocDate    string
	flagAllocCutoff  string
	flagAllocSave    bool
)

var allocateCmd = &cobra.Command{
	Use:   "allocate NET",
	Short: "Allocate a net paycheck across budget envelopes",
	Long: "Distribute a net paycheck across the envelopes of a budget profile:\n" +
		"bills due before the cutoff first, then debt minimums, sinking funds,\n" +
		"savings, and finally the residual.",
	Args: cobra.ExactArgs(1),
	RunE: runAllocate,
}

func init() {
	allocateCmd.Flags().StringVar(&flagAllocProfile, "profile", "", "Path to budget profile JSON")
	allocateCmd.Flags().StringVar(&flagAllocDate, "date", "", "Paycheck date, YYYY-MM-DD (default today)")
	allocateCmd.Flags().StringVar(&flagAllocCutoff, "cutoff", "", "Bills-due cutoff, YYYY-MM-DD (default date + 14 days)")
	allocateCmd.Flags().BoolVar(&flagAllocSave, "save", false, "Save the allocation to history")
	_ = allocateCmd.MarkFlagRequired("profile")
	rootCmd.AddCommand(allocateCmd)
}

func runAllocate(_ *cobra.Command, args []string) error {
	net, err := strconv.ParseFloat(args[0], 64)
	if err != nil || net < 0 {
		return fmt.Errorf("invalid net amount %q", args[0])
	}

	profile, err := loadBudgetProfile(flagAllocProfile)
	if err != nil {
		return err
	}

	date, err := parseDate(flagAllocDate)
	if err != nil {
		return err
	}
	cutoff := date.AddDate(0, 0, 14)
	if flagAllocCutoff != "" {
		cutoff, err = parseDate(flagAllocCutoff)
		if err != nil {
			return err
		}
	}

	alloc, err := budget.Allocate(&profile, net, date, cutoff)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("ALLOCATION  %s  %s", cli.FormatMoney(net), cli.FormatDate(date))))
	fmt.Println()

	rows := make([][]string, 0, len(alloc.Allocations)+2)
	for _, ea := range alloc.Allocations {
		name := ea.EnvelopeID
		if env, ok := profile.Envelope(ea.EnvelopeID); ok {
			name = env.Name
		}
		rows = append(rows, []string{name, cli.FormatMoney(ea.Amount)})
	}
	rows = append(rows,
		[]string{"---"},
		[]string{"Allocated", cli.FormatMoney(alloc.Total())},
		[]string{"Remaining", cli.FormatMoney(alloc.RemainingAmount)},
	)
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Envelope", "Amount"},
		Rows:    rows,
	}))
	fmt.Println()

	if flagAllocSave {
		db, err := store.Open(dbPath())
		if err != nil {
			return err
		}
		defer db.Close()

		saved, err := db.SaveAllocation(alloc)
		if err != nil {
			return fmt.Errorf("saving allocation: %w", err)
		}
		if !flagQuiet {
			count, _ := db.AllocationCount()
			fmt.Printf("  Saved allocation %s (%d in history)\n\n", saved.ID, count)
		}
	}
	return nil
}
