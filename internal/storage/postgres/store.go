package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"conicPool/internal/model"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS pool_runs (
	run_id TEXT PRIMARY KEY,
	scenario TEXT NOT NULL,
	coefficients TEXT[] NOT NULL,
	fee_x NUMERIC NOT NULL,
	fee_y NUMERIC NOT NULL,
	balance_x NUMERIC NOT NULL,
	balance_y NUMERIC NOT NULL,
	total_supply NUMERIC NOT NULL,
	operations BIGINT NOT NULL,
	failures BIGINT NOT NULL,
	started_at TIMESTAMPTZ NOT NULL,
	finished_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS pool_operations (
	run_id TEXT NOT NULL,
	seq BIGINT NOT NULL,
	op TEXT NOT NULL,
	token TEXT NOT NULL,
	amount NUMERIC NOT NULL,
	result NUMERIC,
	utility NUMERIC,
	balance_x NUMERIC NOT NULL,
	balance_y NUMERIC NOT NULL,
	total_supply NUMERIC NOT NULL,
	error TEXT,
	executed_at TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (run_id, seq)
);
`

// Store provides Postgres persistence for pool operation journals.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the journal tables when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// PutOperationBatch inserts or updates operation records.
func (s *Store) PutOperationBatch(ctx context.Context, records []model.OperationRecord) error {
	if len(records) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, r := range records {
		batch.Queue(`
			INSERT INTO pool_operations (
				run_id, seq, op, token, amount, result, utility,
				balance_x, balance_y, total_supply, error, executed_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
			ON CONFLICT (run_id, seq)
			DO UPDATE SET
				op = EXCLUDED.op,
				token = EXCLUDED.token,
				amount = EXCLUDED.amount,
				result = EXCLUDED.result,
				utility = EXCLUDED.utility,
				balance_x = EXCLUDED.balance_x,
				balance_y = EXCLUDED.balance_y,
				total_supply = EXCLUDED.total_supply,
				error = EXCLUDED.error,
				executed_at = EXCLUDED.executed_at
		`,
			r.RunID,
			int64(r.Seq),
			r.Op,
			r.Token,
			r.Amount,
			nullable(r.Result),
			nullable(r.Utility),
			r.BalanceX,
			r.BalanceY,
			r.TotalSupply,
			nullable(r.Error),
			r.ExecutedAt,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range records {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// SaveRun upserts the summary of a scenario replay.
func (s *Store) SaveRun(ctx context.Context, run model.Run) error {
	if run.RunID == "" {
		return fmt.Errorf("run id required")
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO pool_runs (
			run_id, scenario, coefficients, fee_x, fee_y, balance_x, balance_y,
			total_supply, operations, failures, started_at, finished_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,now())
		ON CONFLICT (run_id) DO UPDATE SET
			scenario = EXCLUDED.scenario,
			coefficients = EXCLUDED.coefficients,
			fee_x = EXCLUDED.fee_x,
			fee_y = EXCLUDED.fee_y,
			balance_x = EXCLUDED.balance_x,
			balance_y = EXCLUDED.balance_y,
			total_supply = EXCLUDED.total_supply,
			operations = EXCLUDED.operations,
			failures = EXCLUDED.failures,
			started_at = EXCLUDED.started_at,
			finished_at = EXCLUDED.finished_at,
			updated_at = now()
	`,
		run.RunID,
		run.Scenario,
		run.Coefficients,
		run.FeeX,
		run.FeeY,
		run.BalanceX,
		run.BalanceY,
		run.TotalSupply,
		int64(run.Operations),
		int64(run.Failures),
		run.StartedAt,
		run.FinishedAt,
	)
	return err
}

// LoadRun returns the stored summary for a run id.
func (s *Store) LoadRun(ctx context.Context, runID string) (model.Run, bool, error) {
	if runID == "" {
		return model.Run{}, false, fmt.Errorf("run id required")
	}
	var run model.Run
	var operations, failures int64
	row := s.pool.QueryRow(ctx, `
		SELECT run_id, scenario, coefficients, fee_x::text, fee_y::text, balance_x::text, balance_y::text,
			total_supply::text, operations, failures, started_at, finished_at
		FROM pool_runs WHERE run_id=$1
	`, runID)
	err := row.Scan(
		&run.RunID, &run.Scenario, &run.Coefficients, &run.FeeX, &run.FeeY, &run.BalanceX, &run.BalanceY,
		&run.TotalSupply, &operations, &failures, &run.StartedAt, &run.FinishedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Run{}, false, nil
		}
		return model.Run{}, false, err
	}
	run.Operations = uint64(operations)
	run.Failures = uint64(failures)
	return run, true, nil
}

func nullable(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
