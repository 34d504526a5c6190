package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"payfold/internal/cli"
	"payfold/internal/model"
	"payfold/internal/store"
)

var (
	flagRecordDate string
	flagRecordNote string
)

var recordCmd = &cobra.Command{
	Use:   "record ENVELOPE AMOUNT",
	Short: "Record actual spending against an envelope",
	Long: "Record a real transaction against an envelope so reconcile can\n" +
		"compare it with the plan. Spending is negative, refunds positive.",
	Args: cobra.ExactArgs(2),
	RunE: runRecord,
}

func init() {
	recordCmd.Flags().StringVar(&flagRecordDate, "date", "", "Transaction date, YYYY-MM-DD (default today)")
	recordCmd.Flags().StringVar(&flagRecordNote, "note", "", "Transaction description")
	rootCmd.AddCommand(recordCmd)
}

func runRecord(_ *cobra.Command, args []string) error {
	amount, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q", args[1])
	}
	date, err := parseDate(flagRecordDate)
	if err != nil {
		return err
	}

	db, err := store.Open(dbPath())
	if err != nil {
		return err
	}
	defer db.Close()

	tx := model.ActualTransaction{
		EnvelopeID:  args[0],
		Amount:      amount,
		Date:        date,
		Description: flagRecordNote,
	}
	if err := db.RecordActual(tx); err != nil {
		return fmt.Errorf("recording transaction: %w", err)
	}

	if !flagQuiet {
		fmt.Printf("Recorded %s against %q on %s\n",
			cli.FormatMoney(amount), args[0], cli.FormatDate(date))
	}
	return nil
}
