// Package model defines domain types for tax calculation and budget planning.
package model

import (
	"fmt"
	"time"
)

// Jurisdiction identifies a Canadian province or territory by two-letter code.
type Jurisdiction string

// Province and territory codes.
const (
	AB Jurisdiction = "AB"
	BC Jurisdiction = "BC"
	MB Jurisdiction = "MB"
	NB Jurisdiction = "NB"
	NL Jurisdiction = "NL"
	NS Jurisdiction = "NS"
	NT Jurisdiction = "NT"
	NU Jurisdiction = "NU"
	ON Jurisdiction = "ON"
	PE Jurisdiction = "PE"
	QC Jurisdiction = "QC"
	SK Jurisdiction = "SK"
	YT Jurisdiction = "YT"
)

// Jurisdictions lists every supported province and territory code.
var Jurisdictions = []Jurisdiction{AB, BC, MB, NB, NL, NS, NT, NU, ON, PE, QC, SK, YT}

// Valid reports whether j is a known province or territory code.
func (j Jurisdiction) Valid() bool {
	for _, code := range Jurisdictions {
		if j == code {
			return true
		}
	}
	return false
}

// StatutoryScheme selects which statutory contributions apply to a jurisdiction.
type StatutoryScheme int

const (
	// SchemeStandard applies CPP and EI.
	SchemeStandard StatutoryScheme = iota
	// SchemeQuebec applies QPP in place of CPP, plus QPIP in addition to EI.
	SchemeQuebec
)

// Scheme returns the statutory contribution scheme for the jurisdiction.
func (j Jurisdiction) Scheme() StatutoryScheme {
	if j == QC {
		return SchemeQuebec
	}
	return SchemeStandard
}

// PayFrequency is how often a paycheck is received.
type PayFrequency string

const (
	Weekly      PayFrequency = "weekly"
	Biweekly    PayFrequency = "biweekly"
	Semimonthly PayFrequency = "semimonthly"
	Monthly     PayFrequency = "monthly"
)

// PeriodsPerYear returns the number of pay periods in a year, or 0 for an
// unknown frequency.
func (f PayFrequency) PeriodsPerYear() int {
	switch f {
	case Weekly:
		return 52
	case Biweekly:
		return 26
	case Semimonthly:
		return 24
	case Monthly:
		return 12
	default:
		return 0
	}
}

// TaxBracket is a single progressive bracket: income above Threshold (and
// below the next bracket's threshold) is taxed at Rate.
type TaxBracket struct {
	Threshold float64 `json:"threshold"`
	Rate      float64 `json:"rate"`
}

// JurisdictionTaxData holds one year's brackets and deductions for the
// federal government or a single province.
type JurisdictionTaxData struct {
	Year                int                `json:"year"`
	Jurisdiction        string             `json:"jurisdiction"` // "federal" or a province code
	Brackets            []TaxBracket       `json:"brackets"`
	BasicPersonalAmount float64            `json:"basic_personal_amount"`
	Surtaxes            map[string]float64 `json:"surtaxes,omitempty"`
	Credits             map[string]float64 `json:"credits,omitempty"`
}

// CPPEIData holds statutory contribution rates and ceilings for a year.
// QPP/QPIP fields are zero outside Quebec table sets.
type CPPEIData struct {
	Year              int     `json:"year"`
	CPPRate           float64 `json:"cpp_rate"`
	CPPYMPE           float64 `json:"cpp_ympe"`
	CPPBasicExemption float64 `json:"cpp_basic_exemption"`
	CPPMaxContrib     float64 `json:"cpp_max_contrib"`

	EIRate       float64 `json:"ei_rate"`
	EIMIE        float64 `json:"ei_mie"`
	EIMaxContrib float64 `json:"ei_max_contrib"`

	QPPRate       float64 `json:"qpp_rate,omitempty"`
	QPPYMPE       float64 `json:"qpp_ympe,omitempty"`
	QPPMaxContrib float64 `json:"qpp_max_contrib,omitempty"`

	QPIPRate       float64 `json:"qpip_rate,omitempty"`
	QPIPMaxContrib float64 `json:"qpip_max_contrib,omitempty"`
}

// TaxTableSet is the complete bracket and contribution data for one tax year.
// Loaded once per year and treated as read-only during calculations.
type TaxTableSet struct {
	Year       int                            `json:"year"`
	Federal    JurisdictionTaxData            `json:"federal"`
	Provincial map[string]JurisdictionTaxData `json:"provincial"`
	CPPEI      CPPEIData                      `json:"cpp_ei"`
}

// IncomeStream is one source of income, already expressed as an annual amount.
type IncomeStream struct {
	Name        string             `json:"name"`
	Type        string             `json:"type"` // salary, overtime, bonus, irregular
	GrossAmount float64            `json:"gross_amount"`
	Frequency   PayFrequency       `json:"frequency"`
	StartDate   time.Time          `json:"start_date"`
	EndDate     time.Time          `json:"end_date,omitempty"`
	Deductions  map[string]float64 `json:"deductions,omitempty"`
}

// TaxpayerProfile describes one taxpayer for an annual calculation.
type TaxpayerProfile struct {
	Province              Jurisdiction       `json:"province"`
	TaxYear               int                `json:"tax_year"`
	PayFrequency          PayFrequency       `json:"pay_frequency"`
	IncomeStreams         []IncomeStream     `json:"income_streams"`
	AdditionalClaims      map[string]float64 `json:"additional_claims,omitempty"`
	AdditionalTaxWithheld float64            `json:"additional_tax_withheld,omitempty"`
}

// GrossIncome sums the annual gross of every income stream.
func (p TaxpayerProfile) GrossIncome() float64 {
	var total float64
	for _, s := range p.IncomeStreams {
		total += s.GrossAmount
	}
	return total
}

// Validate checks the profile for structural problems.
func (p TaxpayerProfile) Validate() error {
	if !p.Province.Valid() {
		return fmt.Errorf("unknown province %q", p.Province)
	}
	if p.PayFrequency.PeriodsPerYear() == 0 {
		return fmt.Errorf("unknown pay frequency %q", p.PayFrequency)
	}
	for _, s := range p.IncomeStreams {
		if s.GrossAmount < 0 {
			return fmt.Errorf("income stream %q: gross amount cannot be negative", s.Name)
		}
	}
	return nil
}

// BracketTax is one row of a bracket-by-bracket breakdown. BracketMax is
// +Inf for the unbounded top bracket.
type BracketTax struct {
	BracketMin      float64 `json:"bracket_min"`
	BracketMax      float64 `json:"bracket_max"`
	IncomeInBracket float64 `json:"income_in_bracket"`
	MarginalRate    float64 `json:"marginal_rate"`
	TaxInBracket    float64 `json:"tax_in_bracket"`
}

// PerPeriodTax is an annual result divided across pay periods.
type PerPeriodTax struct {
	Gross         float64 `json:"gross"`
	FederalTax    float64 `json:"federal_tax"`
	ProvincialTax float64 `json:"provincial_tax"`
	CPP           float64 `json:"cpp"`
	EI            float64 `json:"ei"`
	QPP           float64 `json:"qpp,omitempty"`
	QPIP          float64 `json:"qpip,omitempty"`
	TotalTax      float64 `json:"total_tax"`
	Net           float64 `json:"net"`
}

// TaxCalculationResult is the full annual breakdown for one profile.
// Constructed fresh per calculation and never mutated afterwards.
type TaxCalculationResult struct {
	GrossIncome   float64 `json:"gross_income"`
	FederalTax    float64 `json:"federal_tax"`
	ProvincialTax float64 `json:"provincial_tax"`
	CPP           float64 `json:"cpp"`
	EI            float64 `json:"ei"`
	QPP           float64 `json:"qpp,omitempty"`
	QPIP          float64 `json:"qpip,omitempty"`
	TotalTax      float64 `json:"total_tax"`
	NetIncome     float64 `json:"net_income"`
	EffectiveRate float64 `json:"effective_rate"`

	PerPeriod PerPeriodTax `json:"per_pay_period"`

	FederalBrackets    []BracketTax `json:"federal_breakdown"`
	ProvincialBrackets []BracketTax `json:"provincial_breakdown"`
}
