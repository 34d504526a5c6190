// Package budget implements the paycheck allocation waterfall, the day-by-day
// cashflow forecaster, and the planned-vs-actual reconciliation engine.
//
// Every engine is a pure function over a read-only BudgetProfile: identical
// inputs always produce identical output, and the profile is never mutated.
package budget

import (
	"fmt"
	"math"
	"sort"
	"time"

	"payfold/internal/model"
)

// sumTolerance is the float slack allowed when checking allocation totals.
const sumTolerance = 1e-6

// accumulator threads the remaining pool and the ordered allocation list
// through the waterfall stages.
type accumulator struct {
	remaining float64
	order     []string
	amounts   map[string]float64
}

func newAccumulator(pool float64) *accumulator {
	return &accumulator{
		remaining: pool,
		amounts:   make(map[string]float64),
	}
}

// add allocates up to amount to an envelope, capped by the remaining pool.
func (a *accumulator) add(envelopeID string, amount float64) {
	if amount <= 0 || a.remaining <= 0 {
		return
	}
	if amount > a.remaining {
		amount = a.remaining
	}
	if _, seen := a.amounts[envelopeID]; !seen {
		a.order = append(a.order, envelopeID)
	}
	a.amounts[envelopeID] += amount
	a.remaining -= amount
}

func (a *accumulator) exhausted() bool {
	return a.remaining <= 0
}

// Allocate distributes a net paycheck across the profile's envelopes.
//
// Waterfall order: bills due by the cutoff, minimum debt payments, urgent
// sinking funds, savings/investing by target weight, then the residual to the
// first debt under the configured payoff strategy (or the first discretionary
// envelope when no debt can take it). Earlier stages are funded completely
// before later ones see any of the pool; within the bill stage, earlier-due
// bills win outright over later ones, with no pro-rating.
//
// billsCutoff scopes which bills this paycheck must fund; callers derive it
// from the actual pay schedule (the CLI defaults to paycheckDate + 14 days).
func Allocate(profile *model.BudgetProfile, netAmount float64, paycheckDate, billsCutoff time.Time) (model.PaycheckAllocation, error) {
	if netAmount < 0 {
		return model.PaycheckAllocation{}, fmt.Errorf("budget: net amount cannot be negative: %g", netAmount)
	}

	acc := newAccumulator(netAmount)

	stages := []func(){
		func() { fundBills(profile, billsCutoff, acc) },
		func() { fundDebtMinimums(profile, acc) },
		func() { fundSinkingFunds(profile, paycheckDate, acc) },
		func() { fundSavings(profile, netAmount, acc) },
		func() { fundResidual(profile, acc) },
	}
	for _, stage := range stages {
		if acc.exhausted() {
			break
		}
		stage()
	}

	return finalize(profile.Settings, netAmount, paycheckDate, acc), nil
}

// fundBills covers shortfalls for unpaid bills due by the cutoff, earliest
// due date first.
func fundBills(profile *model.BudgetProfile, cutoff time.Time, acc *accumulator) {
	bills := profile.BillsDueBy(cutoff)
	sort.SliceStable(bills, func(i, j int) bool {
		return bills[i].DueDate.Before(bills[j].DueDate)
	})

	for _, bill := range bills {
		if acc.exhausted() {
			return
		}
		envelope, ok := profile.Envelope(bill.EnvelopeID)
		if !ok {
			continue
		}
		shortfall := bill.Amount - envelope.CurrentBalance
		if shortfall <= 0 {
			// Envelope already covers this bill.
			continue
		}
		acc.add(bill.EnvelopeID, shortfall)
	}
}

// fundDebtMinimums covers minimum-payment shortfalls for active debts in
// profile order.
func fundDebtMinimums(profile *model.BudgetProfile, acc *accumulator) {
	for _, debt := range profile.ActiveDebts() {
		if acc.exhausted() {
			return
		}
		envelope, ok := profile.Envelope(debt.EnvelopeID)
		if !ok {
			continue
		}
		shortfall := debt.MinimumPayment - envelope.CurrentBalance
		if shortfall <= 0 {
			continue
		}
		acc.add(debt.EnvelopeID, shortfall)
	}
}

// fundSinkingFunds contributes to underfunded sinking funds due within three
// months, soonest deadline first.
func fundSinkingFunds(profile *model.BudgetProfile, asOf time.Time, acc *accumulator) {
	funds := profile.UrgentSinkingFunds(asOf)
	sort.SliceStable(funds, func(i, j int) bool {
		return funds[i].MonthsRemaining(asOf) < funds[j].MonthsRemaining(asOf)
	})

	for _, sf := range funds {
		if acc.exhausted() {
			return
		}
		if _, ok := profile.Envelope(sf.EnvelopeID); !ok {
			continue
		}
		contribution := sf.RecommendedContribution(asOf)
		if contribution <= 0 {
			continue
		}
		if sf.MonthlyContribution > 0 && contribution > sf.MonthlyContribution {
			contribution = sf.MonthlyContribution
		}
		acc.add(sf.EnvelopeID, contribution)
	}
}

// fundSavings distributes savings_rate x the original net amount across
// savings and investing envelopes, weighted by target amount.
func fundSavings(profile *model.BudgetProfile, netAmount float64, acc *accumulator) {
	savingsAmount := netAmount * profile.Settings.SavingsRate
	if savingsAmount <= 0 {
		return
	}

	var targets []model.Envelope
	var totalTarget float64
	for _, e := range profile.Envelopes {
		if e.Category == model.CategorySavings || e.Category == model.CategoryInvesting {
			targets = append(targets, e)
			totalTarget += e.TargetAmount
		}
	}
	if totalTarget <= 0 {
		return
	}

	for _, e := range targets {
		if acc.exhausted() {
			return
		}
		acc.add(e.ID, savingsAmount*e.TargetAmount/totalTarget)
	}
}

// fundResidual sends the remaining pool to the first debt under the
// configured strategy, capped at what that debt still owes beyond this
// paycheck's contributions, then parks any leftover in the first
// discretionary envelope.
func fundResidual(profile *model.BudgetProfile, acc *accumulator) {
	debts := profile.ActiveDebts()
	if profile.Settings.DebtStrategy == model.Snowball {
		sort.SliceStable(debts, func(i, j int) bool {
			return debts[i].Balance < debts[j].Balance
		})
	} else {
		sort.SliceStable(debts, func(i, j int) bool {
			return debts[i].APR > debts[j].APR
		})
	}

	for _, debt := range debts {
		if _, ok := profile.Envelope(debt.EnvelopeID); !ok {
			continue
		}
		owed := debt.Balance - acc.amounts[debt.EnvelopeID]
		if owed <= 0 {
			continue
		}
		acc.add(debt.EnvelopeID, math.Min(acc.remaining, owed))
		break
	}

	for _, e := range profile.Envelopes {
		if e.Category == model.CategoryDiscretionary {
			acc.add(e.ID, acc.remaining)
			return
		}
	}
}

// finalize rounds allocations, folds the rounding delta into the first
// ordered entry, and restores the sum invariant.
func finalize(settings model.BudgetSettings, netAmount float64, paycheckDate time.Time, acc *accumulator) model.PaycheckAllocation {
	allocations := make([]model.EnvelopeAllocation, 0, len(acc.order))
	for _, id := range acc.order {
		allocations = append(allocations, model.EnvelopeAllocation{EnvelopeID: id, Amount: acc.amounts[id]})
	}

	if nearest := settings.RoundToNearest; nearest > 0 && len(allocations) > 0 {
		var before, after float64
		for i := range allocations {
			before += allocations[i].Amount
			allocations[i].Amount = math.Round(allocations[i].Amount/nearest) * nearest
			after += allocations[i].Amount
		}
		// Rounding must not change the total; the delta lands on the first entry.
		allocations[0].Amount += before - after

		// The fold can push a small entry below zero. Clamp it and move the
		// shortfall onto the next positive entry; any leftover shortfall
		// falls out of the total and resurfaces as remaining.
		for i := range allocations {
			if allocations[i].Amount >= 0 {
				continue
			}
			shortfall := -allocations[i].Amount
			allocations[i].Amount = 0
			for j := i + 1; j < len(allocations); j++ {
				if allocations[j].Amount > 0 {
					allocations[j].Amount -= shortfall
					break
				}
			}
		}
	}

	var total float64
	for _, ea := range allocations {
		total += ea.Amount
	}

	remaining := netAmount - total
	if remaining < 0 {
		// Over-allocated by rounding; scale everything back down.
		scale := netAmount / total
		for i := range allocations {
			allocations[i].Amount *= scale
		}
		remaining = 0
	}

	return model.PaycheckAllocation{
		Date:            paycheckDate,
		NetAmount:       netAmount,
		Allocations:     allocations,
		RemainingAmount: remaining,
	}
}
