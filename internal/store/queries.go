package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/blackwell-systems/surveystat/internal/analyzer"
	"github.com/blackwell-systems/surveystat/internal/stats"
)

// NewRun converts an analysis report into a Run ready to be saved.
func NewRun(source string, rep *analyzer.Report) *Run {
	run := &Run{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Source:    source,
		Rows:      rep.Rows,
		Scored:    rep.Scored,
		Pairs:     rep.Overall.Pairs,
	}

	run.CGPAMean, run.CGPAMedian, run.CGPAMode = summaryValues(rep.CGPA)
	run.PassionMean, run.PassionMedian, run.PassionMode = summaryValues(rep.Passion)
	run.Correlation, run.CorrelationNote = correlationValues(rep.Overall)

	for _, g := range rep.ByMajor {
		m := RunMajor{Major: g.Major, Size: g.Size, Pairs: g.Pairs}
		m.Correlation, m.CorrelationNote = correlationValues(g.Correlation)
		run.Majors = append(run.Majors, m)
	}
	return run
}

func summaryValues(s stats.Summary) (mean, median, mode *float64) {
	if s.Err != nil {
		return nil, nil, nil
	}
	mean, median = &s.Mean, &s.Median
	return mean, median, s.Mode
}

func correlationValues(c analyzer.Correlation) (*float64, string) {
	if c.Err != nil {
		return nil, c.Err.Error()
	}
	return c.R, ""
}

// SaveRun inserts a run and its per-major rows in a single transaction.
func (s *Store) SaveRun(run *Run) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO runs
		(id, created_at, source, row_count, scored_count,
		 cgpa_mean, cgpa_median, cgpa_mode, passion_mean, passion_median, passion_mode,
		 pair_count, correlation, correlation_note)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.CreatedAt.UTC().Format(timeLayout),
		run.Source,
		run.Rows,
		run.Scored,
		nullable(run.CGPAMean),
		nullable(run.CGPAMedian),
		nullable(run.CGPAMode),
		nullable(run.PassionMean),
		nullable(run.PassionMedian),
		nullable(run.PassionMode),
		run.Pairs,
		nullable(run.Correlation),
		run.CorrelationNote,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run %s: %w", run.ID, classify(err))
	}

	for i, m := range run.Majors {
		_, err := tx.Exec(`
			INSERT INTO run_majors (run_id, position, major, size, pair_count, correlation, correlation_note)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, run.ID, i, m.Major, m.Size, m.Pairs, nullable(m.Correlation), m.CorrelationNote)
		if err != nil {
			return fmt.Errorf("failed to insert major %q for run %s: %w", m.Major, run.ID, classify(err))
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run %s: %w", run.ID, err)
	}
	return nil
}

// timeLayout is fixed width so created_at sorts correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const runColumns = `
	id, created_at, source, row_count, scored_count,
	cgpa_mean, cgpa_median, cgpa_mode, passion_mean, passion_median, passion_mode,
	pair_count, correlation, correlation_note
`

// ListRuns returns saved runs, newest first. A limit of 0 or less returns all.
func (s *Store) ListRuns(limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := s.db.Query(`SELECT `+runColumns+` FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", classify(err))
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	for _, run := range runs {
		if run.Majors, err = s.getRunMajors(run.ID); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

// GetRun retrieves a run by ID.
func (s *Store) GetRun(id string) (*Run, error) {
	row := s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", id)
	}
	if err != nil {
		return nil, err
	}

	if run.Majors, err = s.getRunMajors(id); err != nil {
		return nil, err
	}
	return run, nil
}

func (s *Store) getRunMajors(runID string) ([]RunMajor, error) {
	rows, err := s.db.Query(`
		SELECT major, size, pair_count, correlation, correlation_note
		FROM run_majors
		WHERE run_id = ?
		ORDER BY position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get majors for run %s: %w", runID, classify(err))
	}
	defer rows.Close()

	var majors []RunMajor
	for rows.Next() {
		var m RunMajor
		var r sql.NullFloat64
		var note sql.NullString
		if err := rows.Scan(&m.Major, &m.Size, &m.Pairs, &r, &note); err != nil {
			return nil, fmt.Errorf("failed to scan major row: %w", err)
		}
		m.Correlation = fromNull(r)
		m.CorrelationNote = note.String
		majors = append(majors, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating majors: %w", err)
	}
	return majors, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var run Run
	var createdAt string
	var cgpaMean, cgpaMedian, cgpaMode sql.NullFloat64
	var passionMean, passionMedian, passionMode sql.NullFloat64
	var r sql.NullFloat64
	var note sql.NullString

	err := row.Scan(
		&run.ID,
		&createdAt,
		&run.Source,
		&run.Rows,
		&run.Scored,
		&cgpaMean,
		&cgpaMedian,
		&cgpaMode,
		&passionMean,
		&passionMedian,
		&passionMode,
		&run.Pairs,
		&r,
		&note,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan run row: %w", classify(err))
	}

	run.CreatedAt, err = time.Parse(timeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at for run %s: %w", run.ID, err)
	}

	run.CGPAMean, run.CGPAMedian, run.CGPAMode = fromNull(cgpaMean), fromNull(cgpaMedian), fromNull(cgpaMode)
	run.PassionMean, run.PassionMedian, run.PassionMode = fromNull(passionMean), fromNull(passionMedian), fromNull(passionMode)
	run.Correlation = fromNull(r)
	run.CorrelationNote = note.String
	return &run, nil
}

func nullable(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func fromNull(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
