package model

import (
	"testing"
	"time"
)

var asOf = time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC)

func TestSinkingFund_MonthsRemaining(t *testing.T) {
	cases := []struct {
		name     string
		deadline time.Time
		want     int
	}{
		{"past deadline", asOf.AddDate(0, 0, -1), 0},
		{"same day", asOf, 0},
		{"next month", asOf.AddDate(0, 1, 0), 1},
		{"next year", asOf.AddDate(1, 0, 0), 12},
		{"year boundary", time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), 8},
	}
	for _, c := range cases {
		sf := SinkingFund{Deadline: c.deadline}
		if got := sf.MonthsRemaining(asOf); got != c.want {
			t.Errorf("%s: MonthsRemaining = %d, want %d", c.name, got, c.want)
		}
	}
}

func TestSinkingFund_RecommendedContribution(t *testing.T) {
	sf := SinkingFund{TargetAmount: 600, CurrentBalance: 0, Deadline: asOf.AddDate(0, 3, 0)}
	if got := sf.RecommendedContribution(asOf); got != 200 {
		t.Errorf("RecommendedContribution = %.2f, want 200.00", got)
	}

	// At or past the deadline, the full shortfall is due.
	sf.Deadline = asOf
	if got := sf.RecommendedContribution(asOf); got != 600 {
		t.Errorf("past-deadline contribution = %.2f, want the full 600.00", got)
	}

	sf.CurrentBalance = 600
	if got := sf.RecommendedContribution(asOf); got != 0 {
		t.Errorf("funded contribution = %.2f, want 0", got)
	}
}

func TestEnvelope_Validate(t *testing.T) {
	good := Envelope{ID: "e", Name: "Groceries", Category: CategoryBills, TargetAmount: 400, Priority: 2}
	if err := good.Validate(); err != nil {
		t.Errorf("valid envelope rejected: %v", err)
	}

	bad := good
	bad.CurrentBalance = -1
	if err := bad.Validate(); err == nil {
		t.Error("negative balance accepted")
	}

	bad = good
	bad.Priority = 0
	if err := bad.Validate(); err == nil {
		t.Error("priority 0 accepted")
	}
}

func TestDebt_Validate(t *testing.T) {
	good := Debt{ID: "d", Name: "Card", Balance: 800, APR: 0.22, MinimumPayment: 25}
	if err := good.Validate(); err != nil {
		t.Errorf("valid debt rejected: %v", err)
	}

	bad := good
	bad.APR = 22 // percent instead of fraction
	if err := bad.Validate(); err == nil {
		t.Error("APR above 1 accepted")
	}
}

func TestBudgetProfile_BillsDueBy(t *testing.T) {
	profile := BudgetProfile{
		Bills: []Bill{
			{ID: "b1", DueDate: asOf.AddDate(0, 0, 5)},
			{ID: "b2", DueDate: asOf.AddDate(0, 0, 20)},
			{ID: "b3", DueDate: asOf.AddDate(0, 0, 3), Paid: true},
		},
	}

	due := profile.BillsDueBy(asOf.AddDate(0, 0, 14))
	if len(due) != 1 || due[0].ID != "b1" {
		t.Errorf("BillsDueBy = %v, want only the unpaid b1", due)
	}
}

func TestBudgetProfile_UrgentSinkingFunds(t *testing.T) {
	profile := BudgetProfile{
		SinkingFunds: []SinkingFund{
			{ID: "sf-urgent", TargetAmount: 300, Deadline: asOf.AddDate(0, 2, 0)},
			{ID: "sf-funded", TargetAmount: 300, CurrentBalance: 300, Deadline: asOf.AddDate(0, 2, 0)},
			{ID: "sf-distant", TargetAmount: 300, Deadline: asOf.AddDate(0, 8, 0)},
		},
	}

	urgent := profile.UrgentSinkingFunds(asOf)
	if len(urgent) != 1 || urgent[0].ID != "sf-urgent" {
		t.Errorf("UrgentSinkingFunds = %v, want only sf-urgent", urgent)
	}
}

func TestBudgetProfile_CloneIsIndependent(t *testing.T) {
	profile := BudgetProfile{
		Envelopes: []Envelope{{ID: "e", Name: "Groceries", TargetAmount: 400, Priority: 2}},
	}

	clone := profile.Clone()
	clone.Envelopes[0].TargetAmount = 999

	if profile.Envelopes[0].TargetAmount != 400 {
		t.Errorf("mutating the clone changed the original: %.2f", profile.Envelopes[0].TargetAmount)
	}
}

func TestPayFrequency_PeriodsPerYear(t *testing.T) {
	cases := map[PayFrequency]int{
		Weekly:      52,
		Biweekly:    26,
		Semimonthly: 24,
		Monthly:     12,
		"quarterly": 0,
	}
	for f, want := range cases {
		if got := f.PeriodsPerYear(); got != want {
			t.Errorf("PeriodsPerYear(%q) = %d, want %d", f, got, want)
		}
	}
}

func TestJurisdiction_SchemeAndValid(t *testing.T) {
	if !ON.Valid() || !QC.Valid() {
		t.Error("known jurisdictions reported invalid")
	}
	if Jurisdiction("ZZ").Valid() {
		t.Error("ZZ reported valid")
	}
	if QC.Scheme() != SchemeQuebec {
		t.Error("QC should use the Quebec scheme")
	}
	if ON.Scheme() != SchemeStandard {
		t.Error("ON should use the standard scheme")
	}
}

func TestTaxpayerProfile_Validate(t *testing.T) {
	good := TaxpayerProfile{
		Province:     ON,
		PayFrequency: Biweekly,
		IncomeStreams: []IncomeStream{
			{Name: "salary", GrossAmount: 78000},
		},
	}
	if err := good.Validate(); err != nil {
		t.Errorf("valid profile rejected: %v", err)
	}
	if good.GrossIncome() != 78000 {
		t.Errorf("GrossIncome = %.2f, want 78000.00", good.GrossIncome())
	}

	bad := good
	bad.Province = "XX"
	if err := bad.Validate(); err == nil {
		t.Error("unknown province accepted")
	}

	bad = good
	bad.IncomeStreams = []IncomeStream{{Name: "salary", GrossAmount: -1}}
	if err := bad.Validate(); err == nil {
		t.Error("negative gross accepted")
	}
}
