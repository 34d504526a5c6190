package budget

import (
	"strings"
	"testing"
	"time"

	"payfold/internal/model"
)

func forecastProfile(t *testing.T) model.BudgetProfile {
	t.Helper()
	return model.BudgetProfile{
		Envelopes: []model.Envelope{
			{ID: "e-bills", Category: model.CategoryBills, Name: "Housing", TargetAmount: 1500,
				CurrentBalance: 1500, Priority: 1},
		},
		Bills: []model.Bill{
			{ID: "b-rent", Name: "Rent", Amount: 1500, EnvelopeID: "e-bills",
				DueDate: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)},
		},
		Settings: model.DefaultSettings(),
	}
}

func TestForecast_QuietWindowHasNoAlerts(t *testing.T) {
	profile := model.BudgetProfile{Settings: model.DefaultSettings()}
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 13)

	forecast := Forecast(&profile, start, end, 800, nil)

	if len(forecast.Alerts) != 0 {
		t.Errorf("alerts = %v, want none", forecast.Alerts)
	}
	if len(forecast.DailyBalances) != 14 {
		t.Errorf("DailyBalances has %d days, want 14", len(forecast.DailyBalances))
	}
	for key, balance := range forecast.DailyBalances {
		if balance != 800 {
			t.Errorf("balance on %s = %.2f, want a constant 800.00", key, balance)
		}
	}
}

func TestForecast_BillPaidFromEnvelope(t *testing.T) {
	profile := forecastProfile(t)
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 29)

	forecast := Forecast(&profile, start, end, 3000, nil)

	if len(forecast.Alerts) != 0 {
		t.Errorf("alerts = %v, want none", forecast.Alerts)
	}
	if len(forecast.Transactions) != 1 {
		t.Fatalf("transactions = %d, want 1", len(forecast.Transactions))
	}
	tx := forecast.Transactions[0]
	if tx.Type != model.TxBillPayment || tx.Amount != -1500 {
		t.Errorf("transaction = %+v, want a -1500.00 bill payment", tx)
	}
	if got := forecast.DailyBalances["2024-06-10"]; got != 1500 {
		t.Errorf("balance on due date = %.2f, want 1500.00", got)
	}
	if got := forecast.DailyBalances["2024-06-09"]; got != 3000 {
		t.Errorf("balance the day before = %.2f, want 3000.00", got)
	}
}

func TestForecast_InsufficientFundsAlertsWithoutDebit(t *testing.T) {
	profile := forecastProfile(t)
	profile.Envelopes[0].CurrentBalance = 100 // cannot cover the 1500 bill
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 29)

	forecast := Forecast(&profile, start, end, 3000, nil)

	if len(forecast.Transactions) != 0 {
		t.Errorf("transactions = %v, want none when the envelope cannot cover the bill", forecast.Transactions)
	}
	found := false
	for _, a := range forecast.Alerts {
		if strings.Contains(a, "Insufficient funds") && strings.Contains(a, "Rent") {
			found = true
		}
	}
	if !found {
		t.Errorf("alerts = %v, want an insufficient-funds alert for Rent", forecast.Alerts)
	}
	if got := forecast.DailyBalances["2024-06-10"]; got != 3000 {
		t.Errorf("balance on due date = %.2f, want an untouched 3000.00", got)
	}
}

func TestForecast_PaycheckCreditsBalance(t *testing.T) {
	profile := model.BudgetProfile{
		Envelopes: []model.Envelope{
			{ID: "e-bills", Category: model.CategoryBills, Name: "Housing", TargetAmount: 1500, Priority: 1},
		},
		Settings: model.DefaultSettings(),
	}
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 6)
	allocations := []model.PaycheckAllocation{
		{
			Date:      start.AddDate(0, 0, 3),
			NetAmount: 2200,
			Allocations: []model.EnvelopeAllocation{
				{EnvelopeID: "e-bills", Amount: 1500},
			},
			RemainingAmount: 700,
		},
	}

	forecast := Forecast(&profile, start, end, 600, allocations)

	if got := forecast.DailyBalances["2024-06-03"]; got != 600 {
		t.Errorf("balance before payday = %.2f, want 600.00", got)
	}
	if got := forecast.DailyBalances["2024-06-04"]; got != 2800 {
		t.Errorf("balance on payday = %.2f, want 2800.00", got)
	}
	if len(forecast.Transactions) != 1 || forecast.Transactions[0].Type != model.TxPaycheck {
		t.Fatalf("transactions = %+v, want one paycheck credit", forecast.Transactions)
	}
}

func TestForecast_BufferAndNegativeAlertsSameDay(t *testing.T) {
	profile := forecastProfile(t)
	profile.Envelopes[0].CurrentBalance = 1500
	start := time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 2)

	// Paying rent on the 10th drives the balance to -500, below zero and the
	// 500 buffer at once.
	forecast := Forecast(&profile, start, end, 1000, nil)

	var low, negative int
	for _, a := range forecast.Alerts {
		if strings.HasPrefix(a, "Low balance warning") {
			low++
		}
		if strings.HasPrefix(a, "Negative balance") {
			negative++
		}
	}
	if low == 0 || negative == 0 {
		t.Errorf("alerts = %v, want both low-balance and negative alerts", forecast.Alerts)
	}
	if got := forecast.MinBalance(); got != -500 {
		t.Errorf("MinBalance = %.2f, want -500.00", got)
	}
}
