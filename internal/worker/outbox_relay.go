package worker

import (
	"context"
	"log/slog"
	"time"

	"parking-booking/internal/infra/repository"
	"parking-booking/internal/pkg/clock"
)

type EventPublisher interface {
	Publish(ctx context.Context, topic string, body []byte) error
}

type outboxStore interface {
	ProcessDue(ctx context.Context, now time.Time, limit int32, handle func(ctx context.Context, job repository.NotificationJob) repository.JobResult) (int, error)
}

const relayRetryBase = 5 * time.Second

// OutboxRelay publishes queued booking events. A job that keeps failing is
// parked as failed after maxAttempts deliveries.
type OutboxRelay struct {
	store       outboxStore
	publisher   EventPublisher
	clock       clock.Clock
	interval    time.Duration
	batchSize   int32
	maxAttempts int32
	logger      *slog.Logger
}

func NewOutboxRelay(
	store outboxStore,
	publisher EventPublisher,
	clock clock.Clock,
	interval time.Duration,
	batchSize, maxAttempts int32,
	logger *slog.Logger,
) *OutboxRelay {
	return &OutboxRelay{
		store:       store,
		publisher:   publisher,
		clock:       clock,
		interval:    interval,
		batchSize:   batchSize,
		maxAttempts: maxAttempts,
		logger:      logger,
	}
}

func (r *OutboxRelay) Start(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("outbox relay started", "interval", r.interval.String())

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("outbox relay stopped")
			return
		case <-ticker.C:
			if _, err := r.RelayOnce(ctx); err != nil {
				r.logger.Error("failed to relay booking events", "error", err.Error())
			}
		}
	}
}

// RelayOnce processes one batch and returns how many jobs it handled.
func (r *OutboxRelay) RelayOnce(ctx context.Context) (int, error) {
	now := r.clock.Now()
	return r.store.ProcessDue(ctx, now, r.batchSize, func(ctx context.Context, job repository.NotificationJob) repository.JobResult {
		err := r.publisher.Publish(ctx, job.Topic, job.Payload)
		if err == nil {
			return repository.JobResult{Status: repository.JobStatusSent, NextRunAt: now}
		}

		msg := err.Error()
		attempt := job.Attempts + 1
		if attempt >= r.maxAttempts {
			r.logger.Error("booking event parked after repeated failures",
				"job_id", job.ID.String(), "topic", job.Topic, "attempts", attempt, "error", msg)
			return repository.JobResult{Status: repository.JobStatusFailed, LastError: &msg, NextRunAt: now}
		}

		r.logger.Warn("booking event publish failed, will retry",
			"job_id", job.ID.String(), "topic", job.Topic, "attempt", attempt, "error", msg)
		return repository.JobResult{
			Status:    repository.JobStatusQueued,
			LastError: &msg,
			NextRunAt: now.Add(time.Duration(1<<attempt) * relayRetryBase),
		}
	})
}
