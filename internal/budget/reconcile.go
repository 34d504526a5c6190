package budget

import (
	"math"

	"payfold/internal/model"
)

// Reconcile compares each envelope's target against the absolute-value sum of
// actual transactions recorded for it, returning one result per envelope in
// profile order. Pure and idempotent.
//
// The planned amount is the envelope's standing target, not a period-scoped
// allocation total; period scoping is the caller's job when selecting which
// actuals to pass in.
func Reconcile(profile *model.BudgetProfile, actuals []model.ActualTransaction) []model.ReconciliationResult {
	actualByEnvelope := make(map[string]float64)
	for _, tx := range actuals {
		if tx.EnvelopeID == "" || tx.Amount == 0 {
			continue
		}
		actualByEnvelope[tx.EnvelopeID] += tx.Amount
	}

	results := make([]model.ReconciliationResult, 0, len(profile.Envelopes))
	for _, e := range profile.Envelopes {
		planned := e.TargetAmount
		actual := math.Abs(actualByEnvelope[e.ID])
		diff := actual - planned

		overUnder := model.OnBudget
		switch {
		case diff > 0:
			overUnder = model.OverBudget
		case diff < 0:
			overUnder = model.UnderBudget
		}

		var percentage float64
		if planned > 0 {
			percentage = actual / planned * 100
		}

		results = append(results, model.ReconciliationResult{
			EnvelopeID:    e.ID,
			EnvelopeName:  e.Name,
			PlannedAmount: planned,
			ActualAmount:  actual,
			Difference:    math.Abs(diff),
			OverUnder:     overUnder,
			Percentage:    percentage,
		})
	}

	return results
}

// AdjustTargets returns a copy of the profile with envelope targets nudged
// toward observed spending: consistently over-budget envelopes (>110% of
// plan) grow by factor, consistently under-budget ones (<90%) shrink by
// factor, floored at zero. The input profile is untouched.
func AdjustTargets(profile *model.BudgetProfile, results []model.ReconciliationResult, factor float64) model.BudgetProfile {
	updated := profile.Clone()

	byID := make(map[string]int, len(updated.Envelopes))
	for i, e := range updated.Envelopes {
		byID[e.ID] = i
	}

	for _, r := range results {
		i, ok := byID[r.EnvelopeID]
		if !ok {
			continue
		}
		target := updated.Envelopes[i].TargetAmount
		switch {
		case r.OverUnder == model.OverBudget && r.Percentage > 110:
			updated.Envelopes[i].TargetAmount = target + target*factor
		case r.OverUnder == model.UnderBudget && r.Percentage < 90:
			updated.Envelopes[i].TargetAmount = math.Max(0, target-target*factor)
		}
	}

	return updated
}
