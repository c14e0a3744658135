package repository

import (
	"context"
	"time"

	"parking-booking/internal/domain/booking"
	"parking-booking/internal/infra"
	"parking-booking/internal/infra/db"
	"parking-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(db db.DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

const insertBookingSQL = `
INSERT INTO bookings (
    id, user_id, parking_lot_id, slot_id, vehicle_number, vehicle_type,
    start_time, end_time, actual_start_time, estimated_cost_cents, status,
    created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	_, err := r.db.Exec(ctx, insertBookingSQL,
		b.ID(),
		b.UserID(),
		b.LotID(),
		b.SlotID(),
		b.Vehicle().Number(),
		b.Vehicle().Type(),
		b.StartTime(),
		b.EndTime(),
		pgconv.TimePtrToPgtype(b.ActualStart()),
		b.EstimatedCost().Cents(),
		b.Status().String(),
		b.CreatedAt(),
		b.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create booking", err)
	}
	return nil
}

// The status predicate makes settlement at-most-once even without a prior row lock.
const settleBookingSQL = `
UPDATE bookings
SET status = $2, actual_end_time = $3, actual_cost_cents = $4, updated_at = $3
WHERE id = $1 AND status = 'active'`

func (r *BookingRepository) Settle(ctx context.Context, id uuid.UUID, end time.Time, cost booking.Money, status booking.Status) error {
	tag, err := r.db.Exec(ctx, settleBookingSQL, id, status.String(), end, cost.Cents())
	if err != nil {
		return infra.WrapRepoErr("failed to settle booking", err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE id = $1)`, id).Scan(&exists); err != nil {
		return infra.WrapRepoErr("failed to check booking existence", err)
	}
	if !exists {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return infra.WrapRepoErr("booking already final", nil, infra.KindConflict)
}
