package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"payfold/internal/cli"
	"payfold/internal/model"
	"payfold/internal/tax"
)

var flagAnnualIncome float64

var paycheckCmd = &cobra.Command{
	Use:   "paycheck GROSS",
	Short: "Estimate withholding for a single paycheck",
	Long: "Estimate the tax and statutory deductions withheld from one paycheck\n" +
		"of the given gross amount, scaled from the annual profile.",
	Args: cobra.ExactArgs(1),
	RunE: runPaycheck,
}

func init() {
	paycheckCmd.Flags().Float64VarP(&flagAnnualIncome, "income", "i", 0, "Annual gross income (default gross x periods per year)")
	rootCmd.AddCommand(paycheckCmd)
}

func runPaycheck(_ *cobra.Command, args []string) error {
	gross, err := strconv.ParseFloat(args[0], 64)
	if err != nil || gross < 0 {
		return fmt.Errorf("invalid gross amount %q", args[0])
	}

	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	tableSet, err := loadTables(cfg)
	if err != nil {
		return err
	}

	annual := flagAnnualIncome
	if annual == 0 {
		periods := model.PayFrequency(cfg.General.PayFrequency).PeriodsPerYear()
		annual = gross * float64(periods)
	}
	profile, err := taxpayerProfile(cfg, annual, 0)
	if err != nil {
		return err
	}

	pp, err := tax.Paycheck(profile, tableSet, gross)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("PAYCHECK  %s  %s", cli.FormatMoney(gross), profile.PayFrequency)))
	fmt.Println()

	rows := [][]string{
		{"Gross", cli.FormatMoney(pp.Gross)},
		{"Federal tax", cli.FormatMoney(pp.FederalTax)},
		{"Provincial tax", cli.FormatMoney(pp.ProvincialTax)},
	}
	if profile.Province.Scheme() == model.SchemeQuebec {
		rows = append(rows,
			[]string{"QPP", cli.FormatMoney(pp.QPP)},
			[]string{"EI", cli.FormatMoney(pp.EI)},
			[]string{"QPIP", cli.FormatMoney(pp.QPIP)},
		)
	} else {
		rows = append(rows,
			[]string{"CPP", cli.FormatMoney(pp.CPP)},
			[]string{"EI", cli.FormatMoney(pp.EI)},
		)
	}
	rows = append(rows,
		[]string{"---"},
		[]string{"Total withheld", cli.FormatMoney(pp.TotalTax)},
		[]string{"Net pay", cli.FormatMoney(pp.Net)},
	)
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Item", "Amount"},
		Rows:    rows,
	}))

	fmt.Printf("\n  Take-home: %s\n\n", cli.RenderCredit(cli.FormatMoney(pp.Net)))
	return nil
}
