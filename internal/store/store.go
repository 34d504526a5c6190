// Package store provides SQLite-backed persistence for paycheck allocations
// and recorded actual transactions. The engines never touch it; the CLI uses
// it to keep history between runs.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"payfold/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Store wraps the allocation history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening store db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveAllocation stores an allocation and its envelope splits. A new ID is
// assigned when the allocation doesn't carry one; the stored allocation is
// returned.
func (s *Store) SaveAllocation(a model.PaycheckAllocation) (model.PaycheckAllocation, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return a, err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = tx.Exec(`INSERT OR REPLACE INTO allocations
		(allocation_id, paycheck_date, gross_amount, net_amount, remaining, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, a.Date.Format(model.DateLayout), a.GrossAmount, a.NetAmount, a.RemainingAmount, now,
	)
	if err != nil {
		return a, err
	}

	if _, err = tx.Exec("DELETE FROM allocation_envelopes WHERE allocation_id = ?", a.ID); err != nil {
		return a, err
	}
	for i, ea := range a.Allocations {
		_, err = tx.Exec(`INSERT INTO allocation_envelopes
			(allocation_id, position, envelope_id, amount)
			VALUES (?, ?, ?, ?)`,
			a.ID, i, ea.EnvelopeID, ea.Amount,
		)
		if err != nil {
			return a, err
		}
	}

	return a, tx.Commit()
}

// LoadAllocations reads allocations with paycheck dates on or after since,
// ordered by date ascending. A zero since loads everything.
func (s *Store) LoadAllocations(since time.Time) ([]model.PaycheckAllocation, error) {
	rows, err := s.db.Query(`SELECT allocation_id, paycheck_date, gross_amount, net_amount, remaining
		FROM allocations ORDER BY paycheck_date, allocation_id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var allocations []model.PaycheckAllocation
	for rows.Next() {
		var a model.PaycheckAllocation
		var dateStr string
		if err := rows.Scan(&a.ID, &dateStr, &a.GrossAmount, &a.NetAmount, &a.RemainingAmount); err != nil {
			return nil, err
		}
		a.Date, _ = time.Parse(model.DateLayout, dateStr)
		if !since.IsZero() && a.Date.Before(since) {
			continue
		}
		allocations = append(allocations, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Batch-load envelope splits
	splitRows, err := s.db.Query(`SELECT allocation_id, envelope_id, amount
		FROM allocation_envelopes ORDER BY allocation_id, position`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = splitRows.Close() }()

	idx := make(map[string]int, len(allocations))
	for i, a := range allocations {
		idx[a.ID] = i
	}

	for splitRows.Next() {
		var id, envelopeID string
		var amount float64
		if err := splitRows.Scan(&id, &envelopeID, &amount); err != nil {
			return nil, err
		}
		if i, ok := idx[id]; ok {
			allocations[i].Allocations = append(allocations[i].Allocations,
				model.EnvelopeAllocation{EnvelopeID: envelopeID, Amount: amount})
		}
	}

	return allocations, splitRows.Err()
}

// RecordActual stores one externally observed transaction.
func (s *Store) RecordActual(tx model.ActualTransaction) error {
	dateStr := ""
	if !tx.Date.IsZero() {
		dateStr = tx.Date.Format(model.DateLayout)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(`INSERT INTO actuals
		(actual_id, envelope_id, amount, tx_date, description, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), tx.EnvelopeID, tx.Amount, dateStr, tx.Description, now,
	)
	return err
}

// LoadActuals reads actual transactions dated within [since, until]. Zero
// bounds are open-ended; undated rows are always included.
func (s *Store) LoadActuals(since, until time.Time) ([]model.ActualTransaction, error) {
	rows, err := s.db.Query(`SELECT envelope_id, amount, tx_date, description
		FROM actuals ORDER BY tx_date, actual_id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var actuals []model.ActualTransaction
	for rows.Next() {
		var tx model.ActualTransaction
		var dateStr, desc sql.NullString
		if err := rows.Scan(&tx.EnvelopeID, &tx.Amount, &dateStr, &desc); err != nil {
			return nil, err
		}
		if desc.Valid {
			tx.Description = desc.String
		}
		if dateStr.Valid && dateStr.String != "" {
			tx.Date, _ = time.Parse(model.DateLayout, dateStr.String)
			if !since.IsZero() && tx.Date.Before(since) {
				continue
			}
			if !until.IsZero() && tx.Date.After(until) {
				continue
			}
		}
		actuals = append(actuals, tx)
	}
	return actuals, rows.Err()
}

// AllocationCount returns the number of stored allocations.
func (s *Store) AllocationCount() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM allocations").Scan(&count)
	return count, err
}
