package repository

import (
	"context"
	"time"

	"parking-booking/internal/infra"
	"parking-booking/internal/infra/db"
	"parking-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	JobStatusQueued = "queued"
	JobStatusSent   = "sent"
	JobStatusFailed = "failed"
)

type NotificationJob struct {
	ID       uuid.UUID
	Kind     string
	Topic    string
	Payload  []byte
	Attempts int32
}

type NotificationRepository struct {
	db db.DBTX
}

func NewNotificationRepository(db db.DBTX) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	_, err := r.db.Exec(ctx, `
INSERT INTO notification_jobs (kind, topic, payload, run_at, status)
VALUES ($1, $2, $3, $4, $5)`,
		kind, topic, payload, pgtype.Timestamptz{Time: runAt, Valid: true}, JobStatusQueued)
	if err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}
	return nil
}

// ClaimDue locks up to limit queued jobs that are due. Concurrent relays skip
// each other's rows, so a job is handed to one relay at a time.
func (r *NotificationRepository) ClaimDue(ctx context.Context, now time.Time, limit int32) ([]NotificationJob, error) {
	rows, err := r.db.Query(ctx, `
SELECT id, kind, topic, payload, attempts
FROM notification_jobs
WHERE status = $1 AND run_at <= $2
ORDER BY run_at, id
LIMIT $3
FOR UPDATE SKIP LOCKED`, JobStatusQueued, now, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim notification jobs", err)
	}
	defer rows.Close()

	var jobs []NotificationJob
	for rows.Next() {
		var j NotificationJob
		if err := rows.Scan(&j.ID, &j.Kind, &j.Topic, &j.Payload, &j.Attempts); err != nil {
			return nil, infra.WrapRepoErr("failed to scan notification job", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate notification jobs", err)
	}
	return jobs, nil
}

// UpdateJobStatus records a delivery attempt. A queued status with nextRunAt
// schedules a retry.
func (r *NotificationRepository) UpdateJobStatus(ctx context.Context, jobID uuid.UUID, status string, lastError *string, nextRunAt time.Time) error {
	_, err := r.db.Exec(ctx, `
UPDATE notification_jobs
SET status = $2, last_error = $3, attempts = attempts + 1, run_at = $4, updated_at = now()
WHERE id = $1`,
		jobID, status, pgconv.StringPtrToPgtype(lastError), nextRunAt)
	if err != nil {
		return infra.WrapRepoErr("failed to update notification job status", err)
	}
	return nil
}
