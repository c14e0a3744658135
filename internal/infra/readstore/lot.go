package readstore

import (
	"context"
	"time"

	"parking-booking/internal/infra"
	"parking-booking/internal/infra/db"
	"parking-booking/internal/pkg/pgconv"
	"parking-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type LotReadStore struct {
	db db.DBTX
}

func NewLotReadStore(db db.DBTX) *LotReadStore {
	return &LotReadStore{db: db}
}

func (s *LotReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.LotView, error) {
	var v queries.LotView
	err := s.db.QueryRow(ctx, `
SELECT id, name, location, price_per_hour_cents, deleted_at, created_at
FROM parking_lots WHERE id = $1`, id).
		Scan(&v.ID, &v.Name, &v.Location, &v.PricePerHourCents, &v.DeletedAt, &v.CreatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("parking lot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get parking lot", err)
	}
	return &v, nil
}

const listLotsSQL = `
SELECT l.id, l.name, l.location, l.price_per_hour_cents,
       count(s.id) AS total_slots,
       count(s.id) FILTER (WHERE s.status = 'vacant') AS available_slots,
       count(s.id) FILTER (WHERE s.status = 'booked') AS occupied_slots,
       l.created_at
FROM parking_lots l
LEFT JOIN parking_slots s ON s.parking_lot_id = l.id AND s.deleted_at IS NULL
WHERE l.deleted_at IS NULL
GROUP BY l.id
HAVING NOT $1::boolean OR count(s.id) FILTER (WHERE s.status = 'vacant') > 0
ORDER BY l.created_at, l.id`

func (s *LotReadStore) List(ctx context.Context, onlyWithVacancy bool) ([]*queries.LotListItem, error) {
	rows, err := s.db.Query(ctx, listLotsSQL, onlyWithVacancy)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list parking lots", err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.LotListItem, error) {
		var it queries.LotListItem
		err := row.Scan(&it.ID, &it.Name, &it.Location, &it.PricePerHourCents,
			&it.TotalSlots, &it.AvailableSlots, &it.OccupiedSlots, &it.CreatedAt)
		return &it, err
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan parking lots", err)
	}
	return items, nil
}

func (s *LotReadStore) ListDeleted(ctx context.Context) ([]*queries.DeletedLotItem, error) {
	rows, err := s.db.Query(ctx, `
SELECT l.id, l.name, l.location, l.price_per_hour_cents, count(s.id), l.deleted_at
FROM parking_lots l
LEFT JOIN parking_slots s ON s.parking_lot_id = l.id
WHERE l.deleted_at IS NOT NULL
GROUP BY l.id
ORDER BY l.deleted_at DESC, l.id`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list deleted parking lots", err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.DeletedLotItem, error) {
		var it queries.DeletedLotItem
		err := row.Scan(&it.ID, &it.Name, &it.Location, &it.PricePerHourCents, &it.TotalSlots, &it.DeletedAt)
		return &it, err
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan deleted parking lots", err)
	}
	return items, nil
}

func (s *LotReadStore) ListVacantSlots(ctx context.Context, lotID uuid.UUID) ([]*queries.SlotView, error) {
	rows, err := s.db.Query(ctx, `
SELECT id, parking_lot_id, slot_number, status
FROM parking_slots
WHERE parking_lot_id = $1 AND status = 'vacant' AND deleted_at IS NULL
ORDER BY slot_number`, lotID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list vacant slots", err)
	}

	slots, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.SlotView, error) {
		var v queries.SlotView
		err := row.Scan(&v.ID, &v.LotID, &v.Number, &v.Status)
		return &v, err
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan vacant slots", err)
	}
	return slots, nil
}

const listSlotsWithBookingsSQL = `
SELECT s.id, s.parking_lot_id, s.slot_number, s.status, s.deleted_at,
       b.id, b.user_id, b.vehicle_number, b.vehicle_type, b.start_time, b.end_time
FROM parking_slots s
LEFT JOIN bookings b ON b.slot_id = s.id AND b.status = 'active'
WHERE s.parking_lot_id = $1
ORDER BY s.slot_number`

func (s *LotReadStore) ListSlotsWithBookings(ctx context.Context, lotID uuid.UUID) ([]*queries.AdminSlotView, error) {
	rows, err := s.db.Query(ctx, listSlotsWithBookingsSQL, lotID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list slots", err)
	}

	slots, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.AdminSlotView, error) {
		var (
			v             queries.AdminSlotView
			bookingID     *uuid.UUID
			userID        *uuid.UUID
			vehicleNumber *string
			vehicleType   *string
			startTime     *time.Time
			endTime       *time.Time
		)
		if err := row.Scan(&v.ID, &v.LotID, &v.Number, &v.Status, &v.DeletedAt,
			&bookingID, &userID, &vehicleNumber, &vehicleType, &startTime, &endTime); err != nil {
			return nil, err
		}
		if bookingID != nil {
			v.Booking = &queries.SlotBookingView{
				ID:            *bookingID,
				UserID:        *userID,
				VehicleNumber: *vehicleNumber,
				VehicleType:   *vehicleType,
				StartTime:     *startTime,
				EndTime:       *endTime,
			}
		}
		return &v, nil
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan slots", err)
	}
	return slots, nil
}
