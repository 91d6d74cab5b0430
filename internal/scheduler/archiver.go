package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ErlanBelekov/estate-listings/internal/domain"
	ctxlog "github.com/ErlanBelekov/estate-listings/internal/log"
	"github.com/ErlanBelekov/estate-listings/internal/metrics"
	"github.com/ErlanBelekov/estate-listings/internal/repository"
	"github.com/robfig/cron/v3"
)

const archiveBatchSize = 100

// Archiver moves published listings older than maxAge into archived,
// on a standard five-field cron schedule.
type Archiver struct {
	repo     repository.ListingRepository
	logger   *slog.Logger
	schedule cron.Schedule
	maxAge   time.Duration
	now      func() time.Time
}

func NewArchiver(repo repository.ListingRepository, logger *slog.Logger, cronExpr string, maxAge time.Duration) (*Archiver, error) {
	sched, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, fmt.Errorf("parse archive schedule %q: %w", cronExpr, err)
	}
	return &Archiver{
		repo:     repo,
		logger:   logger.With("component", "archiver"),
		schedule: sched,
		maxAge:   maxAge,
		now:      time.Now,
	}, nil
}

// Start blocks until ctx is cancelled. Missed runs are not replayed.
func (a *Archiver) Start(ctx context.Context) {
	a.logger.Info("archiver started", "max_age", a.maxAge)

	for {
		next := a.schedule.Next(a.now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			a.logger.Info("archiver shut down")
			return
		case <-timer.C:
			// failures are logged per batch
			_, _ = a.RunOnce(ctx)
		}
	}
}

// RunOnce archives stale listings in batches until a short batch comes back.
func (a *Archiver) RunOnce(ctx context.Context) (int, error) {
	start := time.Now()
	defer func() { metrics.ArchiverCycleDuration.Observe(time.Since(start).Seconds()) }()

	cutoff := a.now().Add(-a.maxAge)
	ctx = ctxlog.WithAttrs(ctx, slog.Time("cutoff", cutoff))
	total := 0
	for batch := 1; ; batch++ {
		n, err := a.repo.ArchiveStale(ctx, cutoff, archiveBatchSize)
		total += n
		metrics.ArchiverArchivedTotal.Add(float64(n))
		metrics.ListingTransitionsTotal.WithLabelValues(string(domain.ListingArchived), "archiver").Add(float64(n))
		if err != nil {
			metrics.ArchiverRunsTotal.WithLabelValues("error").Inc()
			a.logger.ErrorContext(ctx, "archive batch failed", "batch", batch, "error", err)
			return total, err
		}
		a.logger.DebugContext(ctx, "archive batch", "batch", batch, "count", n)
		if n < archiveBatchSize || ctx.Err() != nil {
			break
		}
	}

	metrics.ArchiverRunsTotal.WithLabelValues("success").Inc()
	if total > 0 {
		a.logger.InfoContext(ctx, "archived stale listings", "count", total)
	}
	return total, nil
}
