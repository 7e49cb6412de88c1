package ingestion

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/freitasmatheusrn/liquid-catalog/internal/catalog"
	"github.com/freitasmatheusrn/liquid-catalog/internal/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultLockTTL = 10 * time.Minute

// Runner executes ingestion runs: fetch, normalize, replace. At most one run
// is active at a time.
type Runner struct {
	cfg        Config
	source     SheetSource
	normalizer *catalog.Normalizer
	replacer   *Replacer
	locker     Locker
	status     RunStatusStore
	metrics    *metrics.Registry
	logger     *zap.Logger

	mu   sync.Mutex
	last atomic.Pointer[RunStatus]
	now  func() time.Time
}

type RunnerOption func(*Runner)

// WithLocker adds a lock shared across processes on top of the in-process one.
func WithLocker(l Locker) RunnerOption {
	return func(r *Runner) { r.locker = l }
}

func WithStatusStore(s RunStatusStore) RunnerOption {
	return func(r *Runner) { r.status = s }
}

func WithMetrics(m *metrics.Registry) RunnerOption {
	return func(r *Runner) { r.metrics = m }
}

func NewRunner(cfg Config, source SheetSource, normalizer *catalog.Normalizer, replacer *Replacer, logger *zap.Logger, opts ...RunnerOption) *Runner {
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = defaultLockTTL
	}
	r := &Runner{
		cfg:        cfg,
		source:     source,
		normalizer: normalizer,
		replacer:   replacer,
		logger:     logger,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run performs one ingestion. A concurrent call returns ErrRunInProgress
// without waiting.
func (r *Runner) Run(ctx context.Context, trigger string) (*RunStatus, error) {
	if !r.mu.TryLock() {
		return nil, ErrRunInProgress
	}
	defer r.mu.Unlock()

	if r.locker != nil {
		token, ok, err := r.locker.Acquire(ctx, r.cfg.LockTTL)
		if err != nil {
			return nil, fmt.Errorf("acquire ingestion lock: %w", err)
		}
		if !ok {
			return nil, ErrRunInProgress
		}
		defer func() {
			releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := r.locker.Release(releaseCtx, token); err != nil {
				r.logger.Warn("failed to release ingestion lock", zap.Error(err))
			}
		}()
	}

	status := RunStatus{
		RunID:     uuid.NewString(),
		Trigger:   trigger,
		StartedAt: r.now().UTC(),
	}
	logger := r.logger.With(zap.String("run_id", status.RunID), zap.String("trigger", trigger))
	logger.Info("ingestion run started")

	err := r.run(ctx, &status)

	status.FinishedAt = r.now().UTC()
	status.Succeeded = err == nil
	if err != nil {
		status.Error = err.Error()
	}
	r.record(status, err, logger)

	if err != nil {
		logger.Error("ingestion run failed", zap.Error(err), zap.Duration("duration", status.Duration()))
		return &status, err
	}
	logger.Info("ingestion run completed",
		zap.String("generation", status.GenerationID),
		zap.Int("rows", status.Report.Rows),
		zap.Int("products", status.Report.Products),
		zap.Int("skipped_rows", status.Report.SkippedRows),
		zap.Int("duplicates", status.Report.Duplicates),
		zap.Int("merged", status.Report.Merged),
		zap.Int("anomalies", status.Report.Anomalies),
		zap.Duration("duration", status.Duration()),
	)
	return &status, nil
}

func (r *Runner) run(ctx context.Context, status *RunStatus) error {
	sheets, coilRows, err := r.fetch(ctx)
	if err != nil {
		return err
	}

	gen, report, err := r.normalizer.Normalize(ctx, sheets, coilRows)
	status.Report = report
	if err != nil {
		return fmt.Errorf("normalize: %w", err)
	}
	status.GenerationID = gen.ID.String()

	dropped, err := r.replacer.Replace(ctx, gen)
	status.Sanitized = dropped
	if err != nil {
		return err
	}
	status.Report.Products = len(gen.Products)
	status.Report.Links = len(gen.Links)
	status.Report.Coils = len(gen.Coils)
	return nil
}

// fetch reads every configured sheet concurrently. Sheets keep their
// configured order.
func (r *Runner) fetch(ctx context.Context) ([]catalog.Sheet, [][]string, error) {
	sheets := make([]catalog.Sheet, len(r.cfg.Sheets))
	var coilRows [][]string

	g, gctx := errgroup.WithContext(ctx)
	for i, spec := range r.cfg.Sheets {
		g.Go(func() error {
			rows, err := r.source.FetchSheet(gctx, spec.Name, spec.Range)
			if err != nil {
				return fmt.Errorf("fetch sheet %q: %w", spec.Name, err)
			}
			sheets[i] = catalog.Sheet{Name: spec.Name, Channel: spec.Channel, Rows: rows}
			return nil
		})
	}
	if r.cfg.CoilsSheet != "" {
		g.Go(func() error {
			rows, err := r.source.FetchSheet(gctx, r.cfg.CoilsSheet, r.cfg.CoilsRange)
			if err != nil {
				return fmt.Errorf("fetch coils sheet %q: %w", r.cfg.CoilsSheet, err)
			}
			coilRows = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return sheets, coilRows, nil
}

func (r *Runner) record(status RunStatus, runErr error, logger *zap.Logger) {
	r.last.Store(&status)

	if r.metrics != nil {
		result := "success"
		var rf *ReplaceFailure
		switch {
		case runErr == nil:
		case errors.As(runErr, &rf):
			result = "replace_failure"
		case errors.Is(runErr, context.DeadlineExceeded), errors.Is(runErr, context.Canceled):
			result = "timeout"
		default:
			result = "failure"
		}
		r.metrics.Runs.WithLabelValues(result).Inc()
		r.metrics.RunDurationSec.Observe(status.Duration().Seconds())
		r.metrics.RowsSkipped.Add(float64(status.Report.SkippedRows))
		r.metrics.Duplicates.Add(float64(status.Report.Duplicates))
		r.metrics.Anomalies.Add(float64(status.Report.Anomalies))
		if status.Succeeded {
			r.metrics.Products.Set(float64(status.Report.Products))
			r.metrics.Links.Set(float64(status.Report.Links))
			r.metrics.Coils.Set(float64(status.Report.Coils))
			r.metrics.LastSuccessUnix.Set(float64(status.FinishedAt.Unix()))
		}
	}

	if r.status == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.status.SaveRun(ctx, status); err != nil {
		logger.Warn("failed to save run status", zap.Error(err))
	}
}

// LastRun returns the most recent recorded run, or nil when none is known.
// The shared store wins over this process's own memory so that every
// instance reports the same run.
func (r *Runner) LastRun(ctx context.Context) (*RunStatus, error) {
	if r.status != nil {
		st, err := r.status.LastRun(ctx)
		if err != nil {
			return nil, err
		}
		if st != nil {
			return st, nil
		}
	}
	return r.last.Load(), nil
}
