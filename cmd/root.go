// Package cmd wires the payfold CLI: flag handling, config/profile loading,
// and one file per subcommand.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"payfold/internal/config"
	"payfold/internal/model"
	"payfold/internal/tables"
)

var (
	flagYear      int
	flagProvince  string
	flagFrequency string
	flagTablesDir string
	flagDB        string
	flagQuiet     bool
)

var rootCmd = &cobra.Command{
	Use:   "payfold",
	Short: "Paycheck tax and envelope budgeting CLI",
	Long: "Compute Canadian income tax and statutory deductions, allocate net\n" +
		"paychecks across budget envelopes, forecast daily cashflow, and\n" +
		"reconcile planned versus actual spending.",
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&flagYear, "year", "y", 0, "Tax year (default from config)")
	rootCmd.PersistentFlags().StringVarP(&flagProvince, "province", "p", "", "Province code, e.g. ON, QC (default from config)")
	rootCmd.PersistentFlags().StringVarP(&flagFrequency, "frequency", "f", "", "Pay frequency: weekly, biweekly, semimonthly, monthly")
	rootCmd.PersistentFlags().StringVar(&flagTablesDir, "tables-dir", "", "Directory with tax_tables_<year>.json files")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Path to the allocation history database")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// loadSettings merges the config file with command-line overrides.
func loadSettings() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if flagYear != 0 {
		cfg.General.TaxYear = flagYear
	}
	if flagProvince != "" {
		cfg.General.Province = flagProvince
	}
	if flagFrequency != "" {
		cfg.General.PayFrequency = flagFrequency
	}
	if flagTablesDir != "" {
		cfg.General.TablesDir = flagTablesDir
	}
	return cfg, nil
}

// loadTables resolves the tax tables for the configured year.
func loadTables(cfg config.Config) (model.TaxTableSet, error) {
	set, err := tables.LoadYear(cfg.General.TablesDir, cfg.General.TaxYear)
	if err != nil {
		return set, err
	}
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Using %d tax tables\n", set.Year)
	}
	return set, nil
}

// taxpayerProfile builds a single-stream profile from config and the given
// annual gross income.
func taxpayerProfile(cfg config.Config, annualGross, extraWithheld float64) (model.TaxpayerProfile, error) {
	profile := model.TaxpayerProfile{
		Province:     model.Jurisdiction(cfg.General.Province),
		TaxYear:      cfg.General.TaxYear,
		PayFrequency: model.PayFrequency(cfg.General.PayFrequency),
		IncomeStreams: []model.IncomeStream{
			{Name: "salary", Type: "salary", GrossAmount: annualGross, Frequency: model.PayFrequency(cfg.General.PayFrequency)},
		},
		AdditionalTaxWithheld: extraWithheld,
	}
	if err := profile.Validate(); err != nil {
		return profile, err
	}
	return profile, nil
}

// loadBudgetProfile reads and validates a budget profile JSON file. A profile
// without settings inherits the config file's budget section.
func loadBudgetProfile(path string) (model.BudgetProfile, error) {
	var profile model.BudgetProfile
	data, err := os.ReadFile(path)
	if err != nil {
		return profile, fmt.Errorf("reading budget profile: %w", err)
	}
	if err := json.Unmarshal(data, &profile); err != nil {
		return profile, fmt.Errorf("parsing budget profile: %w", err)
	}
	if profile.Settings == (model.BudgetSettings{}) {
		cfg, err := config.Load()
		if err != nil {
			return profile, err
		}
		profile.Settings = cfg.Settings()
	}
	if err := profile.Validate(); err != nil {
		return profile, fmt.Errorf("budget profile: %w", err)
	}
	return profile, nil
}

// dbPath returns the allocation history database path.
func dbPath() string {
	if flagDB != "" {
		return flagDB
	}
	return filepath.Join(config.Dir(), "payfold.db")
}

// parseDate parses a YYYY-MM-DD flag value, defaulting to today when empty.
func parseDate(value string) (time.Time, error) {
	if value == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(model.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", value)
	}
	return t, nil
}
