package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"payfold/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a configuration value",
	Long: "Write one configuration value to the config file. Keys:\n" +
		"  province, tax_year, pay_frequency, tables_dir,\n" +
		"  checking_buffer, savings_rate, debt_strategy, round_to_nearest,\n" +
		"  rates_url",
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Province:      %s\n", cfg.General.Province)
	fmt.Printf("    Tax year:      %d\n", cfg.General.TaxYear)
	fmt.Printf("    Pay frequency: %s\n", cfg.General.PayFrequency)
	if cfg.General.TablesDir != "" {
		fmt.Printf("    Tables dir:    %s\n", cfg.General.TablesDir)
	}
	fmt.Println()

	fmt.Println("  [Budget]")
	fmt.Printf("    Checking buffer:  $%.2f\n", cfg.Budget.CheckingBuffer)
	fmt.Printf("    Savings rate:     %.0f%%\n", cfg.Budget.SavingsRate*100)
	fmt.Printf("    Debt strategy:    %s\n", cfg.Budget.DebtStrategy)
	fmt.Printf("    Round to nearest: $%.2f\n", cfg.Budget.RoundToNearest)
	fmt.Println()

	fmt.Println("  [Rates]")
	if cfg.Rates.BaseURL != "" {
		fmt.Printf("    Base URL: %s\n", cfg.Rates.BaseURL)
	} else {
		fmt.Println("    Base URL: not configured")
	}
	fmt.Println()

	fmt.Println("  Run `payfold config set KEY VALUE` to change a value.")
	return nil
}

func runConfigSet(_ *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	key, value := args[0], args[1]
	switch key {
	case "province":
		cfg.General.Province = value
	case "tax_year":
		year, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid tax year %q", value)
		}
		cfg.General.TaxYear = year
	case "pay_frequency":
		cfg.General.PayFrequency = value
	case "tables_dir":
		cfg.General.TablesDir = value
	case "checking_buffer":
		if cfg.Budget.CheckingBuffer, err = parseConfigFloat(key, value); err != nil {
			return err
		}
	case "savings_rate":
		if cfg.Budget.SavingsRate, err = parseConfigFloat(key, value); err != nil {
			return err
		}
	case "debt_strategy":
		cfg.Budget.DebtStrategy = value
	case "round_to_nearest":
		if cfg.Budget.RoundToNearest, err = parseConfigFloat(key, value); err != nil {
			return err
		}
	case "rates_url":
		cfg.Rates.BaseURL = value
	default:
		return fmt.Errorf("unknown config key %q", key)
	}

	if err := config.Save(cfg); err != nil {
		return err
	}
	if !flagQuiet {
		fmt.Printf("  Set %s = %s in %s\n", key, value, config.Path())
	}
	return nil
}

func parseConfigFloat(key, value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f < 0 {
		return 0, fmt.Errorf("invalid value %q for %s", value, key)
	}
	return f, nil
}
