package journal

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

// RecordRun writes the run summary and its consolidated schedule rows
// in one transaction.
func (j *SQLiteJournal) RecordRun(r RunRecord, entries []EntryRecord) error {
	tx, err := j.db.Begin()
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		INSERT INTO runs
		(run_id, name, time, base_currency, periods, min_dscr, min_llcr, min_plcr, violations, audit_status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Name, r.Time, r.BaseCurrency, r.Periods,
		r.MinDSCR, r.MinLLCR, r.MinPLCR, r.Violations, r.AuditStatus,
	)
	if err != nil {
		tx.Rollback()
		return err
	}

	for _, e := range entries {
		_, err = tx.Exec(`
			INSERT INTO entries
			(run_id, period, interest, principal, service, balance_start, balance_end)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			e.RunID, e.Period, e.Interest, e.Principal, e.Service, e.BalanceStart, e.BalanceEnd,
		)
		if err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

// GetRun loads one run summary by id.
func (j *SQLiteJournal) GetRun(runID string) (RunRecord, error) {
	var r RunRecord
	row := j.db.QueryRow(`
		SELECT run_id, name, time, base_currency, periods, min_dscr, min_llcr, min_plcr, violations, audit_status
		FROM runs WHERE run_id = ?`, runID)
	err := row.Scan(&r.RunID, &r.Name, &r.Time, &r.BaseCurrency, &r.Periods,
		&r.MinDSCR, &r.MinLLCR, &r.MinPLCR, &r.Violations, &r.AuditStatus)
	if err == sql.ErrNoRows {
		return r, fmt.Errorf("run %s not found", runID)
	}
	return r, err
}

// ListRuns returns run summaries, newest first.
func (j *SQLiteJournal) ListRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := j.db.Query(`
		SELECT run_id, name, time, base_currency, periods, min_dscr, min_llcr, min_plcr, violations, audit_status
		FROM runs ORDER BY time DESC, run_id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(&r.RunID, &r.Name, &r.Time, &r.BaseCurrency, &r.Periods,
			&r.MinDSCR, &r.MinLLCR, &r.MinPLCR, &r.Violations, &r.AuditStatus); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ListEntries returns the consolidated schedule rows of a run in
// period order.
func (j *SQLiteJournal) ListEntries(runID string) ([]EntryRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, period, interest, principal, service, balance_start, balance_end
		FROM entries WHERE run_id = ? ORDER BY period`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EntryRecord
	for rows.Next() {
		var e EntryRecord
		if err := rows.Scan(&e.RunID, &e.Period, &e.Interest, &e.Principal, &e.Service,
			&e.BalanceStart, &e.BalanceEnd); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
