package readstore

import (
	"context"
	"time"

	"parking-booking/internal/domain/booking"
	"parking-booking/internal/domain/slot"
	"parking-booking/internal/infra"
	"parking-booking/internal/infra/db"
	"parking-booking/internal/pkg/pgconv"
	"parking-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CommandReads serves the write side. Used through a transaction, the Lock*
// methods hold row locks until commit or rollback.
type CommandReads struct {
	db db.DBTX
}

func NewCommandReads(db db.DBTX) *CommandReads {
	return &CommandReads{db: db}
}

const lotSnapshotSQL = `
SELECT id, name, price_per_hour_cents, deleted_at FROM parking_lots WHERE id = $1`

func (r *CommandReads) LotByID(ctx context.Context, id uuid.UUID) (*shared.LotSnapshot, error) {
	return r.lot(ctx, lotSnapshotSQL+" FOR SHARE", id)
}

func (r *CommandReads) LockLot(ctx context.Context, id uuid.UUID) (*shared.LotSnapshot, error) {
	return r.lot(ctx, lotSnapshotSQL+" FOR UPDATE", id)
}

func (r *CommandReads) lot(ctx context.Context, q string, id uuid.UUID) (*shared.LotSnapshot, error) {
	var s shared.LotSnapshot
	if err := r.db.QueryRow(ctx, q, id).Scan(&s.ID, &s.Name, &s.HourlyRateCents, &s.DeletedAt); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("parking lot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get parking lot", err)
	}
	return &s, nil
}

func (r *CommandReads) LockSlot(ctx context.Context, id uuid.UUID) (*shared.SlotSnapshot, error) {
	var (
		s      shared.SlotSnapshot
		status string
	)
	err := r.db.QueryRow(ctx, `
SELECT id, parking_lot_id, slot_number, status, booking_id, deleted_at, created_at, updated_at
FROM parking_slots WHERE id = $1
FOR UPDATE`, id).
		Scan(&s.ID, &s.LotID, &s.Number, &status, &s.BookingID, &s.DeletedAt, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("slot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock slot", err)
	}
	s.Status = slot.Status(status)
	return &s, nil
}

// LockBooking locks only the booking row; the lot is joined for its current rate.
func (r *CommandReads) LockBooking(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	var (
		s      shared.BookingSnapshot
		status string
	)
	err := r.db.QueryRow(ctx, `
SELECT b.id, b.user_id, b.parking_lot_id, b.slot_id, b.status, b.end_time, b.actual_start_time,
       l.price_per_hour_cents
FROM bookings b
JOIN parking_lots l ON l.id = b.parking_lot_id
WHERE b.id = $1
FOR UPDATE OF b`, id).
		Scan(&s.ID, &s.UserID, &s.LotID, &s.SlotID, &status, &s.EndTime, &s.ActualStart, &s.HourlyRateCents)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock booking", err)
	}
	s.Status = booking.Status(status)
	return &s, nil
}

func (r *CommandReads) ExpiredBookingIDs(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `
SELECT id FROM bookings
WHERE status = 'active' AND end_time <= $1
ORDER BY end_time, id`, now)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list expired bookings", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan expired bookings", err)
	}
	return ids, nil
}

func (r *CommandReads) CountActiveBookingsInLot(ctx context.Context, lotID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx,
		`SELECT count(*) FROM bookings WHERE parking_lot_id = $1 AND status = 'active'`, lotID).Scan(&n)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count active bookings", err)
	}
	return n, nil
}

func (r *CommandReads) HasActiveBookingForSlot(ctx context.Context, slotID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM bookings WHERE slot_id = $1 AND status = 'active')`, slotID).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check active booking", err)
	}
	return exists, nil
}
