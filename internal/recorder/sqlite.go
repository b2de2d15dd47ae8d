package recorder

import (
	"fmt"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/iwvelando/liquidity-sim/internal/simulation"
)

// SQLiteRecorder persists runs to a SQLite database.
type SQLiteRecorder struct {
	db *sqlx.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs
// migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sqlx.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id                TEXT PRIMARY KEY,
		created           INTEGER NOT NULL,
		scenario          TEXT NOT NULL,
		iterations        INTEGER NOT NULL,
		bank_intervention INTEGER NOT NULL,
		seed              INTEGER NOT NULL,
		total_payments    INTEGER NOT NULL,
		total_delays      INTEGER NOT NULL,
		payment_rate      REAL NOT NULL,
		total_volume      REAL NOT NULL,
		cycles_resolved   INTEGER NOT NULL,
		avg_reputation    REAL NOT NULL,
		avg_suspicion     REAL NOT NULL,
		avg_capital       REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS iteration_results (
		run_id           TEXT NOT NULL REFERENCES runs(id),
		iteration        INTEGER NOT NULL,
		payments_made    INTEGER NOT NULL,
		payments_delayed INTEGER NOT NULL,
		total_amount     REAL NOT NULL,
		cycles_resolved  INTEGER NOT NULL,
		PRIMARY KEY (run_id, iteration)
	);

	CREATE TABLE IF NOT EXISTS company_finals (
		run_id     TEXT NOT NULL REFERENCES runs(id),
		name       TEXT NOT NULL,
		capital    REAL NOT NULL,
		reputation REAL NOT NULL,
		suspicion  REAL NOT NULL,
		PRIMARY KEY (run_id, name)
	);
	`
	_, err := r.db.Exec(schema)
	return err
}

// RecordRun stores the run header, its iteration history, and the final
// company states in one transaction.
func (r *SQLiteRecorder) RecordRun(record *RunRecord, result *simulation.RunResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO runs
		(id, created, scenario, iterations, bank_intervention, seed,
		 total_payments, total_delays, payment_rate, total_volume,
		 cycles_resolved, avg_reputation, avg_suspicion, avg_capital)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID, time.Now().Unix(), record.Scenario, record.Iterations,
		record.BankIntervention, record.Seed,
		result.Summary.TotalPayments, result.Summary.TotalDelays,
		result.Summary.PaymentRate, result.Summary.TotalVolume,
		result.Summary.CyclesResolved, result.Summary.AvgFinalReputation,
		result.Summary.AvgFinalSuspicion, result.Summary.AvgFinalCapital,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, iteration := range result.History {
		_, err = tx.Exec(`INSERT INTO iteration_results
			(run_id, iteration, payments_made, payments_delayed, total_amount, cycles_resolved)
			VALUES (?, ?, ?, ?, ?, ?)`,
			record.ID, iteration.Iteration, iteration.PaymentsMade,
			iteration.PaymentsDelayed, iteration.TotalPaymentAmount, iteration.CyclesResolved,
		)
		if err != nil {
			return fmt.Errorf("insert iteration %d: %w", iteration.Iteration, err)
		}
	}

	for _, company := range result.Companies {
		_, err = tx.Exec(`INSERT INTO company_finals
			(run_id, name, capital, reputation, suspicion)
			VALUES (?, ?, ?, ?, ?)`,
			record.ID, company.Name, company.Capital, company.Reputation, company.Suspicion,
		)
		if err != nil {
			return fmt.Errorf("insert company %s: %w", company.Name, err)
		}
	}

	return tx.Commit()
}

// Close closes the database connection.
func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}
