package readstore

import (
	"context"
	"strconv"
	"strings"

	"parking-booking/internal/infra"
	"parking-booking/internal/infra/db"
	"parking-booking/internal/pkg/pgconv"
	"parking-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(db db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: db}
}

const bookingViewColumns = `
    b.id, b.user_id, b.parking_lot_id, l.name, l.location, b.slot_id, s.slot_number,
    b.vehicle_number, b.vehicle_type, b.start_time, b.end_time,
    b.actual_start_time, b.actual_end_time, b.estimated_cost_cents, b.actual_cost_cents,
    b.status, b.created_at, b.updated_at
FROM bookings b
JOIN parking_lots l ON l.id = b.parking_lot_id
JOIN parking_slots s ON s.id = b.slot_id`

func (s *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row := s.db.QueryRow(ctx, `SELECT `+bookingViewColumns+` WHERE b.id = $1`, id)
	v, err := scanBookingView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get booking", err)
	}
	return v, nil
}

// List returns bookings newest first. after, when set, excludes everything at
// or before that keyset position.
func (s *BookingReadStore) List(ctx context.Context, filter queries.BookingFilter, after *queries.KeysetPosition, limit int32) ([]*queries.BookingView, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.UserID != nil {
		conds = append(conds, "b.user_id = "+arg(*filter.UserID))
	}
	if filter.Status != nil {
		conds = append(conds, "b.status = "+arg(*filter.Status))
	}
	if after != nil {
		conds = append(conds, "(b.created_at, b.id) < ("+arg(after.CreatedAt)+", "+arg(after.ID)+")")
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(bookingViewColumns)
	if len(conds) > 0 {
		sb.WriteString("\nWHERE ")
		sb.WriteString(strings.Join(conds, " AND "))
	}
	sb.WriteString("\nORDER BY b.created_at DESC, b.id DESC\nLIMIT ")
	sb.WriteString(arg(limit))

	rows, err := s.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}

	views, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.BookingView, error) {
		return scanBookingView(row)
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan bookings", err)
	}
	return views, nil
}

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	var v queries.BookingView
	err := row.Scan(
		&v.ID,
		&v.UserID,
		&v.LotID,
		&v.LotName,
		&v.LotLocation,
		&v.SlotID,
		&v.SlotNumber,
		&v.VehicleNumber,
		&v.VehicleType,
		&v.StartTime,
		&v.EndTime,
		&v.ActualStartTime,
		&v.ActualEndTime,
		&v.EstimatedCostCents,
		&v.ActualCostCents,
		&v.Status,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
