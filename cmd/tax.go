package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"payfold/internal/cli"
	"payfold/internal/model"
	"payfold/internal/tax"
)

var (
	flagIncome        float64
	flagExtraWithheld float64
)

var taxCmd = &cobra.Command{
	Use:   "tax",
	Short: "Annual tax and deduction breakdown",
	RunE:  runTax,
}

func init() {
	taxCmd.Flags().Float64VarP(&flagIncome, "income", "i", 0, "Annual gross income")
	taxCmd.Flags().Float64Var(&flagExtraWithheld, "extra-withheld", 0, "Additional tax withheld per year")
	_ = taxCmd.MarkFlagRequired("income")
	rootCmd.AddCommand(taxCmd)
}

func runTax(_ *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	tableSet, err := loadTables(cfg)
	if err != nil {
		return err
	}
	profile, err := taxpayerProfile(cfg, flagIncome, flagExtraWithheld)
	if err != nil {
		return err
	}

	result, err := tax.Annual(profile, tableSet)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("TAX BREAKDOWN  %s %d", profile.Province, cfg.General.TaxYear)))
	fmt.Println()

	rows := [][]string{
		{"Gross income", cli.FormatMoney(result.GrossIncome)},
		{"Federal tax", cli.FormatMoney(result.FederalTax)},
		{"Provincial tax", cli.FormatMoney(result.ProvincialTax)},
	}
	if profile.Province.Scheme() == model.SchemeQuebec {
		rows = append(rows,
			[]string{"QPP", cli.FormatMoney(result.QPP)},
			[]string{"EI", cli.FormatMoney(result.EI)},
			[]string{"QPIP", cli.FormatMoney(result.QPIP)},
		)
	} else {
		rows = append(rows,
			[]string{"CPP", cli.FormatMoney(result.CPP)},
			[]string{"EI", cli.FormatMoney(result.EI)},
		)
	}
	rows = append(rows,
		[]string{"---"},
		[]string{"Total tax", cli.FormatMoney(result.TotalTax)},
		[]string{"Net income", cli.FormatMoney(result.NetIncome)},
		[]string{"Effective rate", cli.FormatRate(result.EffectiveRate)},
	)
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Annual",
		Headers: []string{"Item", "Amount"},
		Rows:    rows,
	}))

	pp := result.PerPeriod
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Per Pay Period (%s)", profile.PayFrequency),
		Headers: []string{"Item", "Amount"},
		Rows: [][]string{
			{"Gross", cli.FormatMoney(pp.Gross)},
			{"Total tax", cli.FormatMoney(pp.TotalTax)},
			{"Net", cli.FormatMoney(pp.Net)},
		},
	}))

	fmt.Print(renderBrackets("Federal Brackets", result.FederalBrackets))
	fmt.Print(renderBrackets(fmt.Sprintf("%s Brackets", profile.Province), result.ProvincialBrackets))
	fmt.Println()

	return nil
}

func renderBrackets(title string, brackets []model.BracketTax) string {
	rows := make([][]string, 0, len(brackets))
	for _, b := range brackets {
		rows = append(rows, []string{
			cli.FormatBracketRange(b.BracketMin, b.BracketMax),
			cli.FormatRate(b.MarginalRate),
			cli.FormatMoney(b.IncomeInBracket),
			cli.FormatMoney(b.TaxInBracket),
		})
	}
	return cli.RenderTable(cli.Table{
		Title:   title,
		Headers: []string{"Bracket", "Rate", "Income", "Tax"},
		Rows:    rows,
	})
}
