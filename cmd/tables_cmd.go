package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"payfold/internal/config"
	"payfold/internal/model"
	"payfold/internal/ratesapi"
	"payfold/internal/tables"
)

var (
	flagTablesFile    string
	flagImportCode    string
	flagRatesURL      string
	flagFetchOverride bool
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Inspect and manage tax table data",
}

var tablesValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a year's tax tables for structural problems",
	RunE:  runTablesValidate,
}

var tablesExportCmd = &cobra.Command{
	Use:   "export [PATH]",
	Short: "Write a year's tax tables to a JSON file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTablesExport,
}

var tablesImportCmd = &cobra.Command{
	Use:   "import CSV",
	Short: "Import bracket rows from CSV into a year's table file",
	Long: "Read threshold,rate bracket rows from a CSV file and replace one\n" +
		"jurisdiction's brackets in the year's table file. The CSV needs a\n" +
		"header with threshold and rate columns; basic_personal_amount is\n" +
		"optional.",
	Args: cobra.ExactArgs(1),
	RunE: runTablesImport,
}

var tablesFetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download a year's tax tables from the configured endpoint",
	RunE:  runTablesFetch,
}

func init() {
	tablesValidateCmd.Flags().StringVar(&flagTablesFile, "file", "", "Validate this JSON file instead of the configured year")
	tablesImportCmd.Flags().StringVar(&flagImportCode, "jurisdiction", "", "Target jurisdiction: federal or a province code")
	tablesFetchCmd.Flags().StringVar(&flagRatesURL, "url", "", "Endpoint base URL (default from config)")
	tablesFetchCmd.Flags().BoolVar(&flagFetchOverride, "force", false, "Overwrite an existing table file")
	_ = tablesImportCmd.MarkFlagRequired("jurisdiction")

	tablesCmd.AddCommand(tablesValidateCmd, tablesExportCmd, tablesImportCmd, tablesFetchCmd)
	rootCmd.AddCommand(tablesCmd)
}

func runTablesValidate(_ *cobra.Command, _ []string) error {
	var set model.TaxTableSet
	var err error
	if flagTablesFile != "" {
		set, err = tables.LoadFile(flagTablesFile)
		if err != nil {
			// LoadFile already validates; surface what it found.
			return err
		}
	} else {
		cfg, cErr := loadSettings()
		if cErr != nil {
			return cErr
		}
		set, err = tables.LoadYear(cfg.General.TablesDir, cfg.General.TaxYear)
		if err != nil {
			return err
		}
	}

	problems := tables.Validate(set)
	if len(problems) == 0 {
		fmt.Printf("Tax tables for %d are valid (%d provinces).\n", set.Year, len(set.Provincial))
		return nil
	}
	for _, p := range problems {
		fmt.Printf("  - %s\n", p)
	}
	return fmt.Errorf("tax tables for %d: %d problem(s)", set.Year, len(problems))
}

func runTablesExport(_ *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	set, err := tables.LoadYear(cfg.General.TablesDir, cfg.General.TaxYear)
	if err != nil {
		return err
	}

	path := tablePath(cfg.General.TablesDir, set.Year)
	if len(args) == 1 {
		path = args[0]
	}
	if err := tables.WriteFile(set, path); err != nil {
		return err
	}
	fmt.Printf("Wrote %d tax tables to %s\n", set.Year, path)
	return nil
}

func runTablesImport(_ *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	set, err := tables.LoadYear(cfg.General.TablesDir, cfg.General.TaxYear)
	if err != nil {
		return err
	}

	code := strings.ToLower(flagImportCode)
	isFederal := code == "federal"
	province := model.Jurisdiction(strings.ToUpper(flagImportCode))
	if !isFederal && !province.Valid() {
		return fmt.Errorf("unknown jurisdiction %q (want federal or a province code)", flagImportCode)
	}

	jurisdiction := "federal"
	if !isFederal {
		jurisdiction = string(province)
	}
	data, err := tables.ImportCSV(args[0], set.Year, jurisdiction)
	if err != nil {
		return err
	}

	if isFederal {
		if data.BasicPersonalAmount == 0 {
			data.BasicPersonalAmount = set.Federal.BasicPersonalAmount
		}
		set.Federal = data
	} else {
		if prev, ok := set.Provincial[jurisdiction]; ok && data.BasicPersonalAmount == 0 {
			data.BasicPersonalAmount = prev.BasicPersonalAmount
		}
		// Copy before modifying; the loaded set may be the shared builtin.
		provincial := make(map[string]model.JurisdictionTaxData, len(set.Provincial))
		for code, d := range set.Provincial {
			provincial[code] = d
		}
		provincial[jurisdiction] = data
		set.Provincial = provincial
	}
	if err := tables.Check(set); err != nil {
		return fmt.Errorf("after import: %w", err)
	}

	path := tablePath(cfg.General.TablesDir, set.Year)
	if err := tables.WriteFile(set, path); err != nil {
		return err
	}
	fmt.Printf("Imported %d %s brackets into %s\n", len(data.Brackets), jurisdiction, path)
	return nil
}

func runTablesFetch(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	baseURL := cfg.Rates.BaseURL
	if flagRatesURL != "" {
		baseURL = flagRatesURL
	}
	client := ratesapi.New(baseURL)
	if client == nil {
		return fmt.Errorf("no rates endpoint configured (set rates.base_url or pass --url)")
	}

	set, err := client.FetchYear(cmd.Context(), cfg.General.TaxYear)
	if err != nil {
		return fmt.Errorf("fetching %d tables: %w", cfg.General.TaxYear, err)
	}

	path := tablePath(cfg.General.TablesDir, set.Year)
	if !flagFetchOverride {
		if _, statErr := tables.LoadFile(path); statErr == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	if err := tables.WriteFile(set, path); err != nil {
		return err
	}
	fmt.Printf("Fetched %d tax tables to %s\n", set.Year, path)
	return nil
}

// tablePath returns the canonical table file location, defaulting to the
// config directory when no tables dir is configured.
func tablePath(dir string, year int) string {
	if dir == "" {
		dir = filepath.Join(config.Dir(), "tables")
	}
	return filepath.Join(dir, fmt.Sprintf("tax_tables_%d.json", year))
}
