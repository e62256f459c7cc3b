// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	time DATETIME NOT NULL,
	base_currency TEXT NOT NULL,
	periods INTEGER NOT NULL,
	min_dscr REAL NOT NULL,
	min_llcr REAL NOT NULL,
	min_plcr REAL NOT NULL,
	violations INTEGER NOT NULL,
	audit_status TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS entries (
	run_id TEXT NOT NULL,
	period INTEGER NOT NULL,
	interest REAL NOT NULL,
	principal REAL NOT NULL,
	service REAL NOT NULL,
	balance_start REAL NOT NULL,
	balance_end REAL NOT NULL,
	PRIMARY KEY (run_id, period)
);

CREATE INDEX IF NOT EXISTS idx_runs_time ON runs(time);
`
