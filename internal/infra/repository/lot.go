package repository

import (
	"context"
	"time"

	"parking-booking/internal/domain/lot"
	"parking-booking/internal/infra"
	"parking-booking/internal/infra/db"

	"github.com/google/uuid"
)

type LotRepository struct {
	db db.DBTX
}

func NewLotRepository(db db.DBTX) *LotRepository {
	return &LotRepository{db: db}
}

func (r *LotRepository) Create(ctx context.Context, l *lot.Lot) error {
	_, err := r.db.Exec(ctx, `
INSERT INTO parking_lots (id, name, location, price_per_hour_cents, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)`,
		l.ID(), l.Name(), l.Location(), l.HourlyRate().Cents(), l.CreatedAt(), l.UpdatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to create parking lot", err)
	}
	return nil
}

func (r *LotRepository) SoftDelete(ctx context.Context, id uuid.UUID, now time.Time) error {
	tag, err := r.db.Exec(ctx, `
UPDATE parking_lots SET deleted_at = $2, updated_at = $2
WHERE id = $1 AND deleted_at IS NULL`, id, now)
	if err != nil {
		return infra.WrapRepoErr("failed to soft-delete parking lot", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("parking lot not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *LotRepository) Restore(ctx context.Context, id uuid.UUID, now time.Time) error {
	tag, err := r.db.Exec(ctx, `
UPDATE parking_lots SET deleted_at = NULL, updated_at = $2
WHERE id = $1 AND deleted_at IS NOT NULL`, id, now)
	if err != nil {
		return infra.WrapRepoErr("failed to restore parking lot", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("parking lot is not deleted", nil, infra.KindConflict)
	}
	return nil
}
