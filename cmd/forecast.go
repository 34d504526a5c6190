package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"payfold/internal/budget"
	"payfold/internal/cli"
	"payfold/internal/model"
	"payfold/internal/store"
)

var (
	flagForecastProfile string
	flagForecastStart   string
	flagForecastDays    int
	flagForecastBalance float64
	flagForecastHistory bool
	flagForecastAllocs  string
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Project daily cash balance over the coming weeks",
	Long: "Simulate day-by-day checking balance from scheduled paycheck\n" +
		"allocations and upcoming bills, flagging low and negative balances.",
	RunE: runForecast,
}

func init() {
	forecastCmd.Flags().StringVar(&flagForecastProfile, "profile", "", "Path to budget profile JSON")
	forecastCmd.Flags().StringVar(&flagForecastStart, "start", "", "Forecast start date, YYYY-MM-DD (default today)")
	forecastCmd.Flags().IntVar(&flagForecastDays, "days", 30, "Number of days to forecast")
	forecastCmd.Flags().Float64Var(&flagForecastBalance, "balance", 0, "Starting checking balance")
	forecastCmd.Flags().BoolVar(&flagForecastHistory, "history", false, "Include saved allocations dated inside the window")
	forecastCmd.Flags().StringVar(&flagForecastAllocs, "allocations", "", "Path to paycheck allocations JSON")
	_ = forecastCmd.MarkFlagRequired("profile")
	rootCmd.AddCommand(forecastCmd)
}

func runForecast(_ *cobra.Command, _ []string) error {
	if flagForecastDays < 1 {
		return fmt.Errorf("days must be at least 1, got %d", flagForecastDays)
	}

	profile, err := loadBudgetProfile(flagForecastProfile)
	if err != nil {
		return err
	}

	start, err := parseDate(flagForecastStart)
	if err != nil {
		return err
	}
	end := start.AddDate(0, 0, flagForecastDays-1)

	var allocations []model.PaycheckAllocation
	if flagForecastAllocs != "" {
		data, err := os.ReadFile(flagForecastAllocs)
		if err != nil {
			return fmt.Errorf("reading allocations: %w", err)
		}
		if err := json.Unmarshal(data, &allocations); err != nil {
			return fmt.Errorf("parsing allocations: %w", err)
		}
	}
	if flagForecastHistory {
		db, err := store.Open(dbPath())
		if err != nil {
			return err
		}
		defer db.Close()

		saved, err := db.LoadAllocations(start)
		if err != nil {
			return fmt.Errorf("loading allocation history: %w", err)
		}
		allocations = append(allocations, saved...)
	}

	forecast := budget.Forecast(&profile, start, end, flagForecastBalance, allocations)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("CASHFLOW  %s to %s", cli.FormatDate(start), cli.FormatDate(end))))
	fmt.Println()

	series := make([]float64, 0, flagForecastDays)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		series = append(series, forecast.DailyBalances[model.DateKey(day)])
	}
	fmt.Printf("  %s\n", cli.RenderSparkline(series))
	fmt.Printf("  Min %s   Max %s   End %s\n\n",
		cli.FormatMoney(forecast.MinBalance()),
		cli.FormatMoney(forecast.MaxBalance()),
		cli.FormatMoney(series[len(series)-1]))

	if len(forecast.Transactions) > 0 {
		rows := make([][]string, 0, len(forecast.Transactions))
		for _, tx := range forecast.Transactions {
			rows = append(rows, []string{
				cli.FormatDate(tx.Date),
				tx.Description,
				cli.FormatMoney(tx.Amount),
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Transactions",
			Headers: []string{"Date", "Description", "Amount"},
			Rows:    rows,
		}))
		fmt.Println()
	}

	fmt.Print(cli.RenderAlerts(forecast.Alerts))
	fmt.Println()
	return nil
}
