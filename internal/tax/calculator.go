// Package tax computes Canadian federal and provincial income tax plus
// statutory contributions (CPP, EI, and QPP/QPIP for Quebec).
//
// All functions are pure: they read the profile and table set, never mutate
// them, and return freshly built results. Callers must not mutate a
// TaxTableSet while a calculation is reading it.
package tax

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"payfold/internal/model"
)

// ErrMissingJurisdiction indicates the table set has no data for the
// profile's province.
var ErrMissingJurisdiction = errors.New("tax: no provincial data for jurisdiction")

// Annual calculates the full annual tax and deduction breakdown for a profile
// against one year's tables.
func Annual(profile model.TaxpayerProfile, tables model.TaxTableSet) (model.TaxCalculationResult, error) {
	periods := profile.PayFrequency.PeriodsPerYear()
	if periods == 0 {
		return model.TaxCalculationResult{}, fmt.Errorf("tax: unknown pay frequency %q", profile.PayFrequency)
	}

	provincial, ok := tables.Provincial[string(profile.Province)]
	if !ok {
		return model.TaxCalculationResult{}, fmt.Errorf("%w: %s (year %d)", ErrMissingJurisdiction, profile.Province, tables.Year)
	}

	gross := profile.GrossIncome()

	federalTax := jurisdictionTax(gross, tables.Federal, profile)
	provincialTax := jurisdictionTax(gross, provincial, profile)

	var cpp, ei, qpp, qpip float64
	ei = eiContribution(gross, tables.CPPEI)
	switch profile.Province.Scheme() {
	case model.SchemeQuebec:
		// QPP replaces CPP; QPIP is additive on top of EI.
		qpp = qppContribution(gross, tables.CPPEI)
		qpip = qpipContribution(gross, tables.CPPEI)
	default:
		cpp = cppContribution(gross, tables.CPPEI)
	}

	totalTax := federalTax + provincialTax + cpp + ei + qpp + qpip
	net := gross - totalTax

	var effectiveRate float64
	if gross > 0 {
		effectiveRate = totalTax / gross
	}

	n := float64(periods)
	result := model.TaxCalculationResult{
		GrossIncome:   gross,
		FederalTax:    federalTax,
		ProvincialTax: provincialTax,
		CPP:           cpp,
		EI:            ei,
		QPP:           qpp,
		QPIP:          qpip,
		TotalTax:      totalTax,
		NetIncome:     net,
		EffectiveRate: effectiveRate,
		PerPeriod: model.PerPeriodTax{
			Gross:         gross / n,
			FederalTax:    federalTax / n,
			ProvincialTax: provincialTax / n,
			CPP:           cpp / n,
			EI:            ei / n,
			QPP:           qpp / n,
			QPIP:          qpip / n,
			TotalTax:      totalTax / n,
			Net:           net / n,
		},
		FederalBrackets:    bracketBreakdown(gross, tables.Federal),
		ProvincialBrackets: bracketBreakdown(gross, provincial),
	}

	return result, nil
}

// Paycheck estimates withholding for a single paycheck by scaling the
// per-period annual result by this paycheck's ratio to a typical period.
//
// This is an approximation, not a year-to-date payroll algorithm: an unusual
// paycheck (bonus, overtime) is taxed at the average rate of the annual
// profile rather than re-annualized.
func Paycheck(profile model.TaxpayerProfile, tables model.TaxTableSet, paycheckGross float64) (model.PerPeriodTax, error) {
	annual, err := Annual(profile, tables)
	if err != nil {
		return model.PerPeriodTax{}, err
	}

	scale := 1.0
	if annual.PerPeriod.Gross > 0 {
		scale = paycheckGross / annual.PerPeriod.Gross
	}

	pp := annual.PerPeriod
	return model.PerPeriodTax{
		Gross:         roundCents(pp.Gross * scale),
		FederalTax:    roundCents(pp.FederalTax * scale),
		ProvincialTax: roundCents(pp.ProvincialTax * scale),
		CPP:           roundCents(pp.CPP * scale),
		EI:            roundCents(pp.EI * scale),
		QPP:           roundCents(pp.QPP * scale),
		QPIP:          roundCents(pp.QPIP * scale),
		TotalTax:      roundCents(pp.TotalTax * scale),
		Net:           roundCents(pp.Net * scale),
	}, nil
}

// jurisdictionTax applies the progressive brackets of one jurisdiction.
func jurisdictionTax(income float64, data model.JurisdictionTaxData, profile model.TaxpayerProfile) float64 {
	taxable := math.Max(0, income-data.BasicPersonalAmount)
	for _, claim := range profile.AdditionalClaims {
		taxable = math.Max(0, taxable-claim)
	}

	var tax float64
	for i, bracket := range data.Brackets {
		next := math.Inf(1)
		if i+1 < len(data.Brackets) {
			next = data.Brackets[i+1].Threshold
		}
		bracketIncome := math.Min(math.Max(0, taxable-bracket.Threshold), next-bracket.Threshold)
		if bracketIncome > 0 {
			tax += bracketIncome * bracket.Rate
		}
	}

	for _, rate := range data.Surtaxes {
		tax += tax * rate
	}

	tax += profile.AdditionalTaxWithheld

	return roundCents(tax)
}

// cppContribution computes the capped CPP contribution.
func cppContribution(income float64, d model.CPPEIData) float64 {
	pensionable := math.Min(math.Max(0, income-d.CPPBasicExemption), d.CPPYMPE)
	return roundCents(math.Min(pensionable*d.CPPRate, d.CPPMaxContrib))
}

// eiContribution computes the capped EI contribution.
func eiContribution(income float64, d model.CPPEIData) float64 {
	insurable := math.Min(income, d.EIMIE)
	return roundCents(math.Min(insurable*d.EIRate, d.EIMaxContrib))
}

// qppContribution computes the capped QPP contribution. Zero when the table
// set carries no QPP data.
func qppContribution(income float64, d model.CPPEIData) float64 {
	if d.QPPRate == 0 || d.QPPYMPE == 0 {
		return 0
	}
	pensionable := math.Min(math.Max(0, income-d.CPPBasicExemption), d.QPPYMPE)
	contrib := pensionable * d.QPPRate
	if d.QPPMaxContrib > 0 {
		contrib = math.Min(contrib, d.QPPMaxContrib)
	}
	return roundCents(contrib)
}

// qpipContribution computes the capped QPIP contribution. QPIP shares the EI
// insurable earnings ceiling.
func qpipContribution(income float64, d model.CPPEIData) float64 {
	if d.QPIPRate == 0 {
		return 0
	}
	insurable := math.Min(income, d.EIMIE)
	contrib := insurable * d.QPIPRate
	if d.QPIPMaxContrib > 0 {
		contrib = math.Min(contrib, d.QPIPMaxContrib)
	}
	return roundCents(contrib)
}

// bracketBreakdown reports, bracket by bracket, how much income falls in each
// bracket and the tax it contributes. Brackets with no income are omitted.
func bracketBreakdown(income float64, data model.JurisdictionTaxData) []model.BracketTax {
	taxable := math.Max(0, income-data.BasicPersonalAmount)

	var breakdown []model.BracketTax
	for i, bracket := range data.Brackets {
		next := math.Inf(1)
		if i+1 < len(data.Brackets) {
			next = data.Brackets[i+1].Threshold
		}
		bracketIncome := math.Min(math.Max(0, taxable-bracket.Threshold), next-bracket.Threshold)
		if bracketIncome <= 0 {
			continue
		}
		breakdown = append(breakdown, model.BracketTax{
			BracketMin:      bracket.Threshold,
			BracketMax:      next,
			IncomeInBracket: bracketIncome,
			MarginalRate:    bracket.Rate,
			TaxInBracket:    bracketIncome * bracket.Rate,
		})
	}
	return breakdown
}

// roundCents rounds to the nearest cent, half up.
func roundCents(amount float64) float64 {
	v, _ := decimal.NewFromFloat(amount).Round(2).Float64()
	return v
}
