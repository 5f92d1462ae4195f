package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/roach88/enigma/internal/breaker"
	"github.com/roach88/enigma/internal/canon"
)

// ErrNotFound is returned when no run matches a lookup.
var ErrNotFound = errors.New("run not found")

// Run is one finished search.
type Run struct {
	// Seq is the insertion order, assigned by the store.
	Seq int64 `json:"seq"`

	ID      string `json:"id"`
	JobHash string `json:"job_hash"`
	Name    string `json:"name,omitempty"`

	// DictionaryHash fingerprints the word list the candidates were scored
	// with. A cached run only answers a search using the same list.
	DictionaryHash string `json:"dictionary_hash"`

	Ciphertext  string              `json:"ciphertext"`
	Cribs       []string            `json:"cribs"`
	Constraints breaker.Constraints `json:"constraints"`

	Result       breaker.Result `json:"result"`
	SettingsHash string         `json:"settings_hash,omitempty"`

	Workers   int           `json:"workers"`
	Duration  time.Duration `json:"duration"`
	CreatedAt time.Time     `json:"created_at"`
}

const runColumns = `seq, id, job_hash, dictionary_hash, name, ciphertext, cribs, constraints,
	found, plaintext, score, tested, matched, settings, settings_hash,
	workers, duration_ms, created_at`

// WriteRun records a finished search. The settings fingerprint is computed
// here when the search found something. Writing a run whose ID already
// exists is a no-op.
func (s *Store) WriteRun(ctx context.Context, run *Run) error {
	if run.ID == "" {
		return fmt.Errorf("write run: empty id")
	}
	if run.JobHash == "" {
		return fmt.Errorf("write run %s: empty job hash", run.ID)
	}
	if run.DictionaryHash == "" {
		return fmt.Errorf("write run %s: empty dictionary hash", run.ID)
	}

	cribs := run.Cribs
	if cribs == nil {
		cribs = []string{}
	}
	cribsJSON, err := canon.Marshal(cribs)
	if err != nil {
		return fmt.Errorf("write run %s: marshal cribs: %w", run.ID, err)
	}
	constraintsJSON, err := canon.Marshal(run.Constraints)
	if err != nil {
		return fmt.Errorf("write run %s: marshal constraints: %w", run.ID, err)
	}
	settingsJSON, err := canon.Marshal(run.Result.Settings)
	if err != nil {
		return fmt.Errorf("write run %s: marshal settings: %w", run.ID, err)
	}

	settingsHash := ""
	if run.Result.Found {
		settingsHash, err = canon.SettingsFingerprint(run.Result.Settings)
		if err != nil {
			return fmt.Errorf("write run %s: %w", run.ID, err)
		}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, job_hash, dictionary_hash, name, ciphertext, cribs,
			constraints, found, plaintext, score, tested, matched, settings,
			settings_hash, workers, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		run.ID, run.JobHash, run.DictionaryHash, run.Name, run.Ciphertext, string(cribsJSON), string(constraintsJSON),
		boolToInt(run.Result.Found), run.Result.Plaintext, run.Result.Score,
		run.Result.Tested, run.Result.Matched, string(settingsJSON), settingsHash,
		run.Workers, run.Duration.Milliseconds(), run.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("write run %s: %w", run.ID, err)
	}

	run.SettingsHash = settingsHash
	return nil
}

// GetRun returns the run with the given ID.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}
	return run, nil
}

// LatestByJobHash returns the most recently written run for a job scored
// with the given dictionary.
func (s *Store) LatestByJobHash(ctx context.Context, jobHash, dictionaryHash string) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE job_hash = ? AND dictionary_hash = ?
		ORDER BY seq DESC LIMIT 1`, jobHash, dictionaryHash)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("job %s with dictionary %s: %w", jobHash, dictionaryHash, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("lookup job %s: %w", jobHash, err)
	}
	return run, nil
}

// ListRuns returns up to limit runs, newest first. A limit of zero or less
// returns every run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY seq DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var run Run
	var cribs, constraints, settings, created string
	var found int
	var durationMS int64
	err := row.Scan(
		&run.Seq, &run.ID, &run.JobHash, &run.DictionaryHash, &run.Name, &run.Ciphertext, &cribs, &constraints,
		&found, &run.Result.Plaintext, &run.Result.Score, &run.Result.Tested, &run.Result.Matched,
		&settings, &run.SettingsHash, &run.Workers, &durationMS, &created,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(cribs), &run.Cribs); err != nil {
		return nil, fmt.Errorf("run %s: decode cribs: %w", run.ID, err)
	}
	if err := json.Unmarshal([]byte(constraints), &run.Constraints); err != nil {
		return nil, fmt.Errorf("run %s: decode constraints: %w", run.ID, err)
	}
	if err := json.Unmarshal([]byte(settings), &run.Result.Settings); err != nil {
		return nil, fmt.Errorf("run %s: decode settings: %w", run.ID, err)
	}
	run.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return nil, fmt.Errorf("run %s: decode created_at: %w", run.ID, err)
	}
	run.Result.Found = found == 1
	run.Duration = time.Duration(durationMS) * time.Millisecond
	return &run, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
