package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"parking-booking/internal/infra"

	"github.com/jackc/pgx/v5"
)

type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// JobResult is what a handler decided for one job.
type JobResult struct {
	Status    string
	LastError *string
	NextRunAt time.Time
}

// OutboxStore hands due notification jobs to a handler and records the
// outcome, all inside one transaction so claimed rows stay locked meanwhile.
type OutboxStore struct {
	db txBeginner
}

func NewOutboxStore(db txBeginner) *OutboxStore {
	return &OutboxStore{db: db}
}

func (s *OutboxStore) ProcessDue(ctx context.Context, now time.Time, limit int32, handle func(ctx context.Context, job NotificationJob) JobResult) (int, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to begin outbox transaction", err)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			slog.Warn("outbox rollback failed", "error", rbErr.Error())
		}
	}()

	repo := NewNotificationRepository(tx)
	jobs, err := repo.ClaimDue(ctx, now, limit)
	if err != nil {
		return 0, err
	}

	for _, job := range jobs {
		res := handle(ctx, job)
		if err := repo.UpdateJobStatus(ctx, job.ID, res.Status, res.LastError, res.NextRunAt); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, infra.WrapRepoErr("failed to commit outbox transaction", err)
	}
	return len(jobs), nil
}
