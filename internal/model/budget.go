package model

import (
	"fmt"
	"time"
)

// EnvelopeCategory groups envelopes by purpose.
type EnvelopeCategory string

const (
	CategoryBills         EnvelopeCategory = "bills"
	CategoryDebt          EnvelopeCategory = "debt"
	CategorySinking       EnvelopeCategory = "sinking"
	CategorySavings       EnvelopeCategory = "savings"
	CategoryInvesting     EnvelopeCategory = "investing"
	CategoryDiscretionary EnvelopeCategory = "discretionary"
)

// BillType classifies how a bill's amount behaves period to period.
type BillType string

const (
	BillFixed        BillType = "fixed"
	BillVariable     BillType = "variable"
	BillSubscription BillType = "subscription"
)

// Recurrence is a repeat pattern for bills and income.
type Recurrence string

const (
	RecurDaily       Recurrence = "daily"
	RecurWeekly      Recurrence = "weekly"
	RecurBiweekly    Recurrence = "biweekly"
	RecurSemimonthly Recurrence = "semimonthly"
	RecurMonthly     Recurrence = "monthly"
	RecurQuarterly   Recurrence = "quarterly"
	RecurAnnually    Recurrence = "annually"
)

// DebtStrategy is a payoff ordering for extra debt payments.
type DebtStrategy string

const (
	// Avalanche pays the highest-APR debt first.
	Avalanche DebtStrategy = "avalanche"
	// Snowball pays the smallest-balance debt first.
	Snowball DebtStrategy = "snowball"
)

// Envelope is a named bucket holding a balance earmarked for one purpose.
type Envelope struct {
	ID             string           `json:"id"`
	Category       EnvelopeCategory `json:"category"`
	Name           string           `json:"name"`
	TargetAmount   float64          `json:"target_amount"`
	CurrentBalance float64          `json:"current_balance"`
	Priority       int              `json:"priority"` // 1 = highest, 10 = lowest
	DueDate        time.Time        `json:"due_date,omitempty"`
	Recurrence     Recurrence       `json:"recurrence,omitempty"`
	AutoPay        bool             `json:"auto_pay,omitempty"`
}

// Validate rejects negative balances and out-of-range priorities.
func (e Envelope) Validate() error {
	if e.TargetAmount < 0 {
		return fmt.Errorf("envelope %q: target amount cannot be negative", e.Name)
	}
	if e.CurrentBalance < 0 {
		return fmt.Errorf("envelope %q: balance cannot be negative", e.Name)
	}
	if e.Priority < 1 || e.Priority > 10 {
		return fmt.Errorf("envelope %q: priority must be 1-10, got %d", e.Name, e.Priority)
	}
	return nil
}

// Bill is a recurring expense paid from an envelope.
type Bill struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Amount     float64   `json:"amount"`
	Type       BillType  `json:"type"`
	EnvelopeID string    `json:"envelope_id"`
	DueDate    time.Time `json:"due_date"`
	Paid       bool      `json:"paid"`
	PaidDate   time.Time `json:"paid_date,omitempty"`
}

// Validate rejects negative bill amounts.
func (b Bill) Validate() error {
	if b.Amount < 0 {
		return fmt.Errorf("bill %q: amount cannot be negative", b.Name)
	}
	return nil
}

// Debt is an account with an outstanding balance and a minimum payment.
type Debt struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Balance        float64      `json:"balance"`
	APR            float64      `json:"apr"` // 0.0 to 1.0
	MinimumPayment float64      `json:"minimum_payment"`
	DueDate        time.Time    `json:"due_date"`
	EnvelopeID     string       `json:"envelope_id"`
	Strategy       DebtStrategy `json:"strategy"`
	PaidOff        bool         `json:"paid_off"`
}

// Validate rejects negative balances/payments and out-of-range APRs.
func (d Debt) Validate() error {
	if d.Balance < 0 {
		return fmt.Errorf("debt %q: balance cannot be negative", d.Name)
	}
	if d.APR < 0 || d.APR > 1 {
		return fmt.Errorf("debt %q: apr must be between 0 and 1, got %g", d.Name, d.APR)
	}
	if d.MinimumPayment < 0 {
		return fmt.Errorf("debt %q: minimum payment cannot be negative", d.Name)
	}
	return nil
}

// SinkingFund is an envelope-linked savings target with a deadline.
type SinkingFund struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	TargetAmount        float64   `json:"target_amount"`
	CurrentBalance      float64   `json:"current_balance"`
	Deadline            time.Time `json:"deadline"`
	MonthlyContribution float64   `json:"monthly_contribution,omitempty"` // 0 = no cap
	EnvelopeID          string    `json:"envelope_id"`
}

// MonthsRemaining returns whole calendar months between asOf and the deadline,
// never negative.
func (sf SinkingFund) MonthsRemaining(asOf time.Time) int {
	if !sf.Deadline.After(asOf) {
		return 0
	}
	months := (sf.Deadline.Year()-asOf.Year())*12 + int(sf.Deadline.Month()) - int(asOf.Month())
	if months < 0 {
		return 0
	}
	return months
}

// RecommendedContribution is the monthly amount needed to reach the target by
// the deadline. Once the deadline has arrived it is the full remaining shortfall.
func (sf SinkingFund) RecommendedContribution(asOf time.Time) float64 {
	remaining := sf.TargetAmount - sf.CurrentBalance
	if remaining <= 0 {
		return 0
	}
	months := sf.MonthsRemaining(asOf)
	if months == 0 {
		return remaining
	}
	return remaining / float64(months)
}

// SavingsGoal is a long-horizon savings or investing target.
type SavingsGoal struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	TargetAmount        float64   `json:"target_amount"`
	CurrentBalance      float64   `json:"current_balance"`
	TargetDate          time.Time `json:"target_date,omitempty"`
	MonthlyContribution float64   `json:"monthly_contribution"`
	EnvelopeID          string    `json:"envelope_id"`
}

// BudgetSettings holds per-profile allocation policy knobs.
type BudgetSettings struct {
	CheckingBuffer          float64      `json:"checking_buffer"`
	EmergencyFundTarget     float64      `json:"emergency_fund_target"`
	DebtStrategy            DebtStrategy `json:"debt_strategy"`
	SavingsRate             float64      `json:"savings_rate"`             // 0.0 to 1.0
	DiscretionaryPercentage float64      `json:"discretionary_percentage"` // 0.0 to 1.0
	RoundToNearest          float64      `json:"round_to_nearest"`         // 0 = no rounding
}

// DefaultSettings returns the standard allocation policy.
func DefaultSettings() BudgetSettings {
	return BudgetSettings{
		CheckingBuffer:          500,
		DebtStrategy:            Avalanche,
		SavingsRate:             0.2,
		DiscretionaryPercentage: 0.3,
		RoundToNearest:          10,
	}
}

// BudgetProfile is the root aggregate for one person's budget. Engines take
// it read-only and return fresh result values.
type BudgetProfile struct {
	Envelopes    []Envelope     `json:"envelopes"`
	Bills        []Bill         `json:"bills"`
	Debts        []Debt         `json:"debts"`
	SinkingFunds []SinkingFund  `json:"sinking_funds"`
	SavingsGoals []SavingsGoal  `json:"savings_goals"`
	Settings     BudgetSettings `json:"settings"`
}

// Envelope looks up an envelope by ID.
func (p *BudgetProfile) Envelope(id string) (Envelope, bool) {
	for _, e := range p.Envelopes {
		if e.ID == id {
			return e, true
		}
	}
	return Envelope{}, false
}

// BillsDueBy returns unpaid bills due on or before the cutoff, in profile order.
func (p *BudgetProfile) BillsDueBy(cutoff time.Time) []Bill {
	var due []Bill
	for _, b := range p.Bills {
		if !b.Paid && !b.DueDate.After(cutoff) {
			due = append(due, b)
		}
	}
	return due
}

// ActiveDebts returns debts that are not paid off, in profile order.
func (p *BudgetProfile) ActiveDebts() []Debt {
	var active []Debt
	for _, d := range p.Debts {
		if !d.PaidOff {
			active = append(active, d)
		}
	}
	return active
}

// UrgentSinkingFunds returns underfunded sinking funds with three or fewer
// months remaining as of the given date.
func (p *BudgetProfile) UrgentSinkingFunds(asOf time.Time) []SinkingFund {
	var urgent []SinkingFund
	for _, sf := range p.SinkingFunds {
		if sf.MonthsRemaining(asOf) <= 3 && sf.CurrentBalance < sf.TargetAmount {
			urgent = append(urgent, sf)
		}
	}
	return urgent
}

// Clone returns a deep copy of the profile.
func (p BudgetProfile) Clone() BudgetProfile {
	out := p
	out.Envelopes = append([]Envelope(nil), p.Envelopes...)
	out.Bills = append([]Bill(nil), p.Bills...)
	out.Debts = append([]Debt(nil), p.Debts...)
	out.SinkingFunds = append([]SinkingFund(nil), p.SinkingFunds...)
	out.SavingsGoals = append([]SavingsGoal(nil), p.SavingsGoals...)
	return out
}

// Validate checks every record in the profile.
func (p BudgetProfile) Validate() error {
	for _, e := range p.Envelopes {
		if err := e.Validate(); err != nil {
			return err
		}
	}
	for _, b := range p.Bills {
		if err := b.Validate(); err != nil {
			return err
		}
	}
	for _, d := range p.Debts {
		if err := d.Validate(); err != nil {
			return err
		}
	}
	for _, sf := range p.SinkingFunds {
		if sf.TargetAmount < 0 || sf.CurrentBalance < 0 {
			return fmt.Errorf("sinking fund %q: amounts cannot be negative", sf.Name)
		}
	}
	return nil
}
