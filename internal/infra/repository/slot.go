package repository

import (
	"context"
	"time"

	"parking-booking/internal/domain/slot"
	"parking-booking/internal/infra"
	"parking-booking/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type SlotRepository struct {
	db db.DBTX
}

func NewSlotRepository(db db.DBTX) *SlotRepository {
	return &SlotRepository{db: db}
}

func (r *SlotRepository) CreateBatch(ctx context.Context, slots []*slot.Slot) error {
	if len(slots) == 0 {
		return nil
	}

	const q = `
INSERT INTO parking_slots (id, parking_lot_id, slot_number, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	batch := &pgx.Batch{}
	for _, s := range slots {
		batch.Queue(q, s.ID(), s.LotID(), s.Number(), s.Status().String(), s.CreatedAt(), s.UpdatedAt())
	}
	if err := r.sendBatch(ctx, batch); err != nil {
		return infra.WrapRepoErr("failed to create slots", err)
	}
	return nil
}

func (r *SlotRepository) sendBatch(ctx context.Context, batch *pgx.Batch) error {
	sender, ok := r.db.(interface {
		SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
	})
	if !ok {
		for _, qq := range batch.QueuedQueries {
			if _, err := r.db.Exec(ctx, qq.SQL, qq.Arguments...); err != nil {
				return err
			}
		}
		return nil
	}

	results := sender.SendBatch(ctx, batch)
	for range batch.QueuedQueries {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return err
		}
	}
	return results.Close()
}

const reserveSlotSQL = `
UPDATE parking_slots
SET status = 'booked', booking_id = $2, updated_at = $3
WHERE id = $1 AND status = 'vacant' AND deleted_at IS NULL`

func (r *SlotRepository) Reserve(ctx context.Context, slotID, bookingID uuid.UUID, now time.Time) error {
	tag, err := r.db.Exec(ctx, reserveSlotSQL, slotID, bookingID, now)
	if err != nil {
		return infra.WrapRepoErr("failed to reserve slot", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("slot not available", nil, infra.KindConflict)
	}
	return nil
}

const releaseSlotSQL = `
UPDATE parking_slots
SET status = 'vacant',
    booking_id = NULL,
    updated_at = $3
WHERE id = $1 AND booking_id = $2`

func (r *SlotRepository) Release(ctx context.Context, slotID, bookingID uuid.UUID, now time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, releaseSlotSQL, slotID, bookingID, now)
	if err != nil {
		return false, infra.WrapRepoErr("failed to release slot", err)
	}
	if tag.RowsAffected() == 1 {
		return true, nil
	}
	if err := r.ensureExists(ctx, slotID); err != nil {
		return false, err
	}
	return false, nil
}

const softDeleteSlotSQL = `
UPDATE parking_slots
SET status = 'deleted', deleted_at = $2, updated_at = $2
WHERE id = $1 AND status <> 'booked' AND deleted_at IS NULL`

func (r *SlotRepository) SoftDelete(ctx context.Context, slotID uuid.UUID, now time.Time) error {
	tag, err := r.db.Exec(ctx, softDeleteSlotSQL, slotID, now)
	if err != nil {
		return infra.WrapRepoErr("failed to soft-delete slot", err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}
	if err := r.ensureExists(ctx, slotID); err != nil {
		return err
	}
	return infra.WrapRepoErr("slot is booked or already deleted", nil, infra.KindConflict)
}

const restoreSlotSQL = `
UPDATE parking_slots
SET status = 'vacant', booking_id = NULL, deleted_at = NULL, updated_at = $2
WHERE id = $1 AND deleted_at IS NOT NULL`

func (r *SlotRepository) Restore(ctx context.Context, slotID uuid.UUID, now time.Time) error {
	tag, err := r.db.Exec(ctx, restoreSlotSQL, slotID, now)
	if err != nil {
		return infra.WrapRepoErr("failed to restore slot", err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}
	if err := r.ensureExists(ctx, slotID); err != nil {
		return err
	}
	return infra.WrapRepoErr("slot is not deleted", nil, infra.KindConflict)
}

func (r *SlotRepository) SoftDeleteByLot(ctx context.Context, lotID uuid.UUID, now time.Time) (int64, error) {
	var booked int64
	if err := r.db.QueryRow(ctx,
		`SELECT count(*) FROM parking_slots WHERE parking_lot_id = $1 AND status = 'booked'`, lotID,
	).Scan(&booked); err != nil {
		return 0, infra.WrapRepoErr("failed to count booked slots", err)
	}
	if booked > 0 {
		return 0, infra.WrapRepoErr("lot has booked slots", nil, infra.KindConflict)
	}

	tag, err := r.db.Exec(ctx, `
UPDATE parking_slots
SET status = 'deleted', deleted_at = $2, updated_at = $2
WHERE parking_lot_id = $1 AND deleted_at IS NULL`, lotID, now)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to soft-delete lot slots", err)
	}
	return tag.RowsAffected(), nil
}

func (r *SlotRepository) RestoreByLot(ctx context.Context, lotID uuid.UUID, deletedAt, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `
UPDATE parking_slots
SET status = 'vacant', booking_id = NULL, deleted_at = NULL, updated_at = $3
WHERE parking_lot_id = $1 AND deleted_at = $2`, lotID, deletedAt, now)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to restore lot slots", err)
	}
	return tag.RowsAffected(), nil
}

func (r *SlotRepository) ensureExists(ctx context.Context, slotID uuid.UUID) error {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM parking_slots WHERE id = $1)`, slotID).Scan(&exists); err != nil {
		return infra.WrapRepoErr("failed to check slot existence", err)
	}
	if !exists {
		return infra.WrapRepoErr("slot not found", nil, infra.KindNotFound)
	}
	return nil
}
