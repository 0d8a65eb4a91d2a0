package store

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    created_at TEXT NOT NULL,
    source TEXT NOT NULL,
    row_count INTEGER NOT NULL,
    scored_count INTEGER NOT NULL,
    cgpa_mean REAL,
    cgpa_median REAL,
    cgpa_mode REAL,
    passion_mean REAL,
    passion_median REAL,
    passion_mode REAL,
    pair_count INTEGER NOT NULL,
    correlation REAL,
    correlation_note TEXT
);

CREATE TABLE IF NOT EXISTS run_majors (
    run_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    major TEXT NOT NULL,
    size INTEGER NOT NULL,
    pair_count INTEGER NOT NULL,
    correlation REAL,
    correlation_note TEXT,
    PRIMARY KEY (run_id, position),
    FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
CREATE INDEX IF NOT EXISTS idx_run_majors_run ON run_majors(run_id);
`
