package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS allocations (
    allocation_id   TEXT PRIMARY KEY,
    paycheck_date   TEXT NOT NULL,
    gross_amount    REAL,
    net_amount      REAL NOT NULL,
    remaining       REAL NOT NULL,
    created_at      TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS allocation_envelopes (
    allocation_id   TEXT NOT NULL REFERENCES allocations(allocation_id) ON DELETE CASCADE,
    position        INTEGER NOT NULL,
    envelope_id     TEXT NOT NULL,
    amount          REAL NOT NULL,
    PRIMARY KEY (allocation_id, position)
);

CREATE TABLE IF NOT EXISTS actuals (
    actual_id       TEXT PRIMARY KEY,
    envelope_id     TEXT NOT NULL,
    amount          REAL NOT NULL,
    tx_date         TEXT,
    description     TEXT,
    recorded_at     TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_allocations_date ON allocations(paycheck_date);
CREATE INDEX IF NOT EXISTS idx_actuals_envelope ON actuals(envelope_id);
CREATE INDEX IF NOT EXISTS idx_actuals_date ON actuals(tx_date);
`
