package simulate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"conicPool/internal/model"
	"conicPool/internal/pool"
	"conicPool/internal/storage"
)

// Config controls scenario replay.
type Config struct {
	RunID       string
	BatchSize   int
	StopOnError bool
}

// Summary reports the outcome of a replay.
type Summary struct {
	Operations uint64
	Failures   uint64
	Final      pool.Snapshot
}

// Runner replays scenario operations against a single pool and journals them.
type Runner struct {
	cfg     Config
	pool    *pool.Pool
	storage storage.Storage
	metrics *Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewRunner builds a Runner with its dependencies. storage and metrics may be nil.
func NewRunner(cfg Config, p *pool.Pool, sink storage.Storage, metrics *Metrics, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	return &Runner{
		cfg:     cfg,
		pool:    p,
		storage: sink,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// Run executes every scenario step in order.
func (r *Runner) Run(ctx context.Context, sc model.Scenario) (Summary, error) {
	if r.pool == nil {
		return Summary{}, fmt.Errorf("pool is nil")
	}

	summary := Summary{}
	batch := make([]model.OperationRecord, 0, r.cfg.BatchSize)

	for i, step := range sc.Operations {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		record, err := r.apply(uint64(i+1), step)
		summary.Operations++
		if err != nil {
			summary.Failures++
			r.logger.Warn("operation failed",
				zap.Uint64("seq", record.Seq),
				zap.String("op", record.Op),
				zap.String("token", record.Token),
				zap.String("amount", record.Amount),
				zap.Error(err),
			)
		} else {
			r.logger.Debug("operation applied",
				zap.Uint64("seq", record.Seq),
				zap.String("op", record.Op),
				zap.String("token", record.Token),
				zap.String("amount", record.Amount),
				zap.String("result", record.Result),
			)
		}

		batch = append(batch, record)
		if len(batch) >= r.cfg.BatchSize {
			if err := r.flush(ctx, batch); err != nil {
				return summary, err
			}
			batch = batch[:0]
		}

		if err != nil && r.cfg.StopOnError {
			if flushErr := r.flush(ctx, batch); flushErr != nil {
				return summary, flushErr
			}
			summary.Final = r.pool.Balances()
			return summary, fmt.Errorf("operation %d: %w", record.Seq, err)
		}
	}

	if err := r.flush(ctx, batch); err != nil {
		return summary, err
	}

	summary.Final = r.pool.Balances()
	r.logger.Info("scenario complete",
		zap.String("scenario", sc.Name),
		zap.Uint64("operations", summary.Operations),
		zap.Uint64("failures", summary.Failures),
	)
	return summary, nil
}

func (r *Runner) apply(seq uint64, step model.ScenarioStep) (model.OperationRecord, error) {
	op := strings.ToLower(strings.TrimSpace(step.Op))
	record := model.OperationRecord{
		RunID:  r.cfg.RunID,
		Seq:    seq,
		Op:     op,
		Token:  step.Token,
		Amount: step.Amount,
	}

	result, err := r.execute(op, step)
	bal := r.pool.Balances()
	record.BalanceX = bal.X.String()
	record.BalanceY = bal.Y.String()
	record.TotalSupply = bal.TotalSupply.String()
	record.ExecutedAt = r.now().UTC().Format(time.RFC3339Nano)

	if err != nil {
		record.Error = err.Error()
		r.metrics.observe(op, record.Token, 0, 0, 0, err)
		return record, err
	}

	util, err := r.pool.Utility()
	if err != nil {
		record.Error = err.Error()
		r.metrics.observe(op, record.Token, 0, 0, 0, err)
		return record, err
	}
	record.Result = result.String()
	record.Utility = util.String()
	r.metrics.observe(op, record.Token, result.InexactFloat64(), util.InexactFloat64(), bal.TotalSupply.InexactFloat64(), nil)
	return record, nil
}

func (r *Runner) execute(op string, step model.ScenarioStep) (decimal.Decimal, error) {
	token, err := pool.ParseToken(step.Token)
	if err != nil {
		return decimal.Zero, err
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(step.Amount))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: parse amount %q", pool.ErrInvalidAmount, step.Amount)
	}

	switch op {
	case model.OpDeposit:
		return r.pool.Deposit(amount, token)
	case model.OpWithdraw:
		return r.pool.Withdraw(amount, token)
	case model.OpSwap:
		return r.pool.Swap(amount, token)
	default:
		return decimal.Zero, fmt.Errorf("unknown operation %q", step.Op)
	}
}

func (r *Runner) flush(ctx context.Context, batch []model.OperationRecord) error {
	if r.storage == nil || len(batch) == 0 {
		return nil
	}
	if err := r.storage.PutOperationBatch(ctx, batch); err != nil {
		return fmt.Errorf("store operations: %w", err)
	}
	return nil
}
