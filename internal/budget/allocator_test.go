package budget

import (
	"math"
	"testing"
	"time"

	"payfold/internal/model"
)

var (
	payday = time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC)
	cutoff = payday.AddDate(0, 0, 14)
)

// rentAndDebtProfile is the canonical scenario: a $1500 rent bill due in five
// days, a nearly-paid-off debt with a $200 minimum, and a discretionary
// envelope to absorb the rest.
func rentAndDebtProfile(t *testing.T) model.BudgetProfile {
	t.Helper()
	return model.BudgetProfile{
		Envelopes: []model.Envelope{
			{ID: "e-bills", Category: model.CategoryBills, Name: "Housing", TargetAmount: 1500, Priority: 1},
			{ID: "e-debt", Category: model.CategoryDebt, Name: "Card", TargetAmount: 200, Priority: 2},
			{ID: "e-disc", Category: model.CategoryDiscretionary, Name: "Fun", TargetAmount: 300, Priority: 5},
		},
		Bills: []model.Bill{
			{ID: "b-rent", Name: "Rent", Amount: 1500, Type: model.BillFixed, EnvelopeID: "e-bills",
				DueDate: payday.AddDate(0, 0, 5)},
		},
		Debts: []model.Debt{
			{ID: "d-card", Name: "Card", Balance: 200, APR: 0.2, MinimumPayment: 200,
				EnvelopeID: "e-debt"},
		},
		Settings: model.DefaultSettings(),
	}
}

func TestAllocate_RentDebtDiscretionary(t *testing.T) {
	profile := rentAndDebtProfile(t)

	alloc, err := Allocate(&profile, 2200, payday, cutoff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := alloc.Amount("e-bills"); got != 1500 {
		t.Errorf("bills envelope = %.2f, want 1500.00", got)
	}
	if got := alloc.Amount("e-debt"); got != 200 {
		t.Errorf("debt envelope = %.2f, want 200.00", got)
	}
	if got := alloc.Amount("e-disc"); got != 500 {
		t.Errorf("discretionary envelope = %.2f, want 500.00", got)
	}
	if alloc.RemainingAmount != 0 {
		t.Errorf("RemainingAmount = %.2f, want 0", alloc.RemainingAmount)
	}
}

func TestAllocate_SumInvariant(t *testing.T) {
	for _, net := range []float64{0, 137.42, 1000, 2200, 3456.78, 10000} {
		profile := rentAndDebtProfile(t)

		alloc, err := Allocate(&profile, net, payday, cutoff)
		if err != nil {
			t.Fatalf("net %.2f: unexpected error: %v", net, err)
		}

		sum := alloc.Total() + alloc.RemainingAmount
		if math.Abs(sum-net) > sumTolerance {
			t.Errorf("net %.2f: allocations + remaining = %.6f, want %.6f", net, sum, net)
		}
		for _, ea := range alloc.Allocations {
			if ea.Amount < 0 {
				t.Errorf("net %.2f: envelope %s allocated %.6f, want >= 0", net, ea.EnvelopeID, ea.Amount)
			}
		}
	}
}

func TestAllocate_NegativeNet(t *testing.T) {
	profile := rentAndDebtProfile(t)
	if _, err := Allocate(&profile, -1, payday, cutoff); err == nil {
		t.Fatal("expected an error for a negative net amount")
	}
}

func TestAllocate_EarliestBillWins(t *testing.T) {
	profile := rentAndDebtProfile(t)
	profile.Settings.SavingsRate = 0
	profile.Settings.RoundToNearest = 0
	profile.Bills = []model.Bill{
		{ID: "b-late", Name: "Insurance", Amount: 300, EnvelopeID: "e-bills",
			DueDate: payday.AddDate(0, 0, 10)},
		{ID: "b-early", Name: "Hydro", Amount: 100, EnvelopeID: "e-disc",
			DueDate: payday.AddDate(0, 0, 2)},
	}
	profile.Debts = nil

	// Pool covers the early bill and only part of the late one.
	alloc, err := Allocate(&profile, 150, payday, cutoff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := alloc.Amount("e-disc"); got != 100 {
		t.Errorf("earlier bill envelope = %.2f, want 100.00", got)
	}
	if got := alloc.Amount("e-bills"); got != 50 {
		t.Errorf("later bill envelope = %.2f, want the 50.00 remainder", got)
	}
}

func TestAllocate_BillCoveredByEnvelopeBalance(t *testing.T) {
	profile := rentAndDebtProfile(t)
	profile.Envelopes[0].CurrentBalance = 1500 // rent already covered
	profile.Settings.RoundToNearest = 0

	alloc, err := Allocate(&profile, 2200, payday, cutoff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := alloc.Amount("e-bills"); got != 0 {
		t.Errorf("bills envelope = %.2f, want 0 when the balance covers the bill", got)
	}
}

func TestAllocate_BillOutsideCutoff(t *testing.T) {
	profile := rentAndDebtProfile(t)
	profile.Bills[0].DueDate = cutoff.AddDate(0, 0, 1)
	profile.Debts = nil
	profile.Settings.SavingsRate = 0
	profile.Settings.RoundToNearest = 0

	alloc, err := Allocate(&profile, 2200, payday, cutoff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := alloc.Amount("e-bills"); got != 0 {
		t.Errorf("bills envelope = %.2f, want 0 for a bill past the cutoff", got)
	}
	if got := alloc.Amount("e-disc"); got != 2200 {
		t.Errorf("discretionary envelope = %.2f, want the full 2200.00", got)
	}
}

func TestAllocate_StageExhaustion(t *testing.T) {
	profile := rentAndDebtProfile(t)

	// Pool smaller than the rent shortfall: everything lands on the bill.
	alloc, err := Allocate(&profile, 900, payday, cutoff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := alloc.Amount("e-bills"); got != 900 {
		t.Errorf("bills envelope = %.2f, want the whole 900.00 pool", got)
	}
	if got := alloc.Amount("e-debt"); got != 0 {
		t.Errorf("debt envelope = %.2f, want 0 once the pool is exhausted", got)
	}
}

func TestAllocate_SinkingFundUrgency(t *testing.T) {
	profile := model.BudgetProfile{
		Envelopes: []model.Envelope{
			{ID: "e-soon", Category: model.CategorySinking, Name: "Plates", TargetAmount: 300, Priority: 3},
			{ID: "e-later", Category: model.CategorySinking, Name: "Tires", TargetAmount: 600, Priority: 3},
			{ID: "e-far", Category: model.CategorySinking, Name: "Trip", TargetAmount: 1200, Priority: 3},
		},
		SinkingFunds: []model.SinkingFund{
			{ID: "sf-later", Name: "Tires", TargetAmount: 600, Deadline: payday.AddDate(0, 3, 0), EnvelopeID: "e-later"},
			{ID: "sf-soon", Name: "Plates", TargetAmount: 300, Deadline: payday.AddDate(0, 1, 0), EnvelopeID: "e-soon"},
			{ID: "sf-far", Name: "Trip", TargetAmount: 1200, Deadline: payday.AddDate(1, 0, 0), EnvelopeID: "e-far"},
		},
		Settings: model.BudgetSettings{SavingsRate: 0, RoundToNearest: 0},
	}

	alloc, err := Allocate(&profile, 350, payday, cutoff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// One month out: the full 300 shortfall. Three months out: 600/3 = 200,
	// but only 50 remains. A year out is not urgent.
	if got := alloc.Amount("e-soon"); got != 300 {
		t.Errorf("soonest fund = %.2f, want 300.00", got)
	}
	if got := alloc.Amount("e-later"); got != 50 {
		t.Errorf("next fund = %.2f, want the 50.00 remainder", got)
	}
	if got := alloc.Amount("e-far"); got != 0 {
		t.Errorf("distant fund = %.2f, want 0", got)
	}
}

func TestAllocate_SavingsWeightedByTarget(t *testing.T) {
	profile := model.BudgetProfile{
		Envelopes: []model.Envelope{
			{ID: "e-sav", Category: model.CategorySavings, Name: "Emergency", TargetAmount: 3000, Priority: 2},
			{ID: "e-inv", Category: model.CategoryInvesting, Name: "Index", TargetAmount: 1000, Priority: 4},
			{ID: "e-disc", Category: model.CategoryDiscretionary, Name: "Fun", TargetAmount: 200, Priority: 5},
		},
		Settings: model.BudgetSettings{SavingsRate: 0.2, RoundToNearest: 0},
	}

	alloc, err := Allocate(&profile, 1000, payday, cutoff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// savings pool = 1000 * 0.2 = 200, split 3:1 by target.
	if got := alloc.Amount("e-sav"); math.Abs(got-150) > sumTolerance {
		t.Errorf("savings envelope = %.2f, want 150.00", got)
	}
	if got := alloc.Amount("e-inv"); math.Abs(got-50) > sumTolerance {
		t.Errorf("investing envelope = %.2f, want 50.00", got)
	}
	if got := alloc.Amount("e-disc"); math.Abs(got-800) > sumTolerance {
		t.Errorf("discretionary envelope = %.2f, want the 800.00 residual", got)
	}
}

func TestAllocate_AvalancheVersusSnowball(t *testing.T) {
	base := model.BudgetProfile{
		Envelopes: []model.Envelope{
			{ID: "e-big", Category: model.CategoryDebt, Name: "Loan", TargetAmount: 0, Priority: 2},
			{ID: "e-small", Category: model.CategoryDebt, Name: "Card", TargetAmount: 0, Priority: 2},
		},
		Debts: []model.Debt{
			{ID: "d-big", Name: "Loan", Balance: 9000, APR: 0.06, EnvelopeID: "e-big"},
			{ID: "d-small", Name: "Card", Balance: 800, APR: 0.22, EnvelopeID: "e-small"},
		},
	}

	avalanche := base
	avalanche.Settings = model.BudgetSettings{DebtStrategy: model.Avalanche}
	alloc, err := Allocate(&avalanche, 500, payday, cutoff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := alloc.Amount("e-small"); got != 500 {
		t.Errorf("avalanche residual = %.2f to the high-APR card, want 500.00", got)
	}

	snowball := base
	snowball.Settings = model.BudgetSettings{DebtStrategy: model.Snowball}
	alloc, err = Allocate(&snowball, 500, payday, cutoff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := alloc.Amount("e-small"); got != 500 {
		t.Errorf("snowball residual = %.2f to the small-balance card, want 500.00", got)
	}
}

func TestAllocate_ResidualCappedByDebtBalance(t *testing.T) {
	profile := model.BudgetProfile{
		Envelopes: []model.Envelope{
			{ID: "e-debt", Category: model.CategoryDebt, Name: "Card", TargetAmount: 0, Priority: 2},
			{ID: "e-disc", Category: model.CategoryDiscretionary, Name: "Fun", TargetAmount: 0, Priority: 5},
		},
		Debts: []model.Debt{
			{ID: "d-card", Name: "Card", Balance: 120, APR: 0.2, EnvelopeID: "e-debt"},
		},
		Settings: model.BudgetSettings{DebtStrategy: model.Avalanche, RoundToNearest: 0},
	}

	alloc, err := Allocate(&profile, 500, payday, cutoff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := alloc.Amount("e-debt"); got != 120 {
		t.Errorf("debt envelope = %.2f, want the 120.00 payoff amount", got)
	}
	if got := alloc.Amount("e-disc"); got != 380 {
		t.Errorf("discretionary envelope = %.2f, want the 380.00 overflow", got)
	}
}

func TestAllocate_RoundingPreservesTotal(t *testing.T) {
	profile := model.BudgetProfile{
		Envelopes: []model.Envelope{
			{ID: "e-sav", Category: model.CategorySavings, Name: "Emergency", TargetAmount: 700, Priority: 2},
			{ID: "e-inv", Category: model.CategoryInvesting, Name: "Index", TargetAmount: 300, Priority: 4},
		},
		Settings: model.BudgetSettings{SavingsRate: 1, RoundToNearest: 10},
	}

	net := 333.0
	alloc, err := Allocate(&profile, net, payday, cutoff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(alloc.Total()+alloc.RemainingAmount-net) > sumTolerance {
		t.Errorf("allocations + remaining = %.6f, want %.6f", alloc.Total()+alloc.RemainingAmount, net)
	}
	// The second entry lands on a round multiple; the first absorbs the delta.
	second := alloc.Allocations[1].Amount
	if math.Abs(second-math.Round(second/10)*10) > sumTolerance {
		t.Errorf("second allocation %.2f is not rounded to 10", second)
	}
}

func TestAllocate_RoundingNeverGoesNegative(t *testing.T) {
	profile := model.BudgetProfile{
		Envelopes: []model.Envelope{
			{ID: "e-a", Category: model.CategoryBills, Name: "Stamp", TargetAmount: 1, Priority: 1},
			{ID: "e-b", Category: model.CategoryBills, Name: "Lunch", TargetAmount: 8, Priority: 1},
		},
		Bills: []model.Bill{
			{ID: "b-a", Name: "Stamp", Amount: 1, EnvelopeID: "e-a", DueDate: payday.AddDate(0, 0, 1)},
			{ID: "b-b", Name: "Lunch", Amount: 8, EnvelopeID: "e-b", DueDate: payday.AddDate(0, 0, 2)},
		},
		Settings: model.BudgetSettings{RoundToNearest: 10},
	}

	// 1 rounds to 0 and 8 rounds to 10; the delta fold would drive the
	// first entry to -1 without the clamp.
	net := 9.0
	alloc, err := Allocate(&profile, net, payday, cutoff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, ea := range alloc.Allocations {
		if ea.Amount < 0 {
			t.Errorf("envelope %s allocated %.2f, want >= 0", ea.EnvelopeID, ea.Amount)
		}
	}
	if got := alloc.Amount("e-a"); got != 0 {
		t.Errorf("first envelope = %.2f, want 0 after clamping", got)
	}
	if got := alloc.Amount("e-b"); got != 9 {
		t.Errorf("second envelope = %.2f, want the 9.00 shortfall-adjusted amount", got)
	}
	if math.Abs(alloc.Total()+alloc.RemainingAmount-net) > sumTolerance {
		t.Errorf("allocations + remaining = %.6f, want %.6f", alloc.Total()+alloc.RemainingAmount, net)
	}
}

func TestAllocate_ProfileNotMutated(t *testing.T) {
	profile := rentAndDebtProfile(t)
	before := profile.Clone()

	if _, err := Allocate(&profile, 2200, payday, cutoff); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, e := range profile.Envelopes {
		if e != before.Envelopes[i] {
			t.Errorf("envelope %s changed during allocation", e.ID)
		}
	}
	for i, b := range profile.Bills {
		if b != before.Bills[i] {
			t.Errorf("bill %s changed during allocation", b.ID)
		}
	}
}
