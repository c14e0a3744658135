package queries

import (
	"context"
	"time"

	"parking-booking/internal/infra"
	"parking-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

type LotView struct {
	ID                uuid.UUID  `json:"id"`
	Name              string     `json:"name"`
	Location          string     `json:"location"`
	PricePerHourCents int64      `json:"price_per_hour_cents"`
	DeletedAt         *time.Time `json:"deleted_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

type LotListItem struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Location          string    `json:"location"`
	PricePerHourCents int64     `json:"price_per_hour_cents"`
	TotalSlots        int64     `json:"total_slots"`
	AvailableSlots    int64     `json:"available_slots"`
	OccupiedSlots     int64     `json:"occupied_slots"`
	CreatedAt         time.Time `json:"created_at"`
}

type DeletedLotItem struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Location          string    `json:"location"`
	PricePerHourCents int64     `json:"price_per_hour_cents"`
	TotalSlots        int64     `json:"total_slots"`
	DeletedAt         time.Time `json:"deleted_at"`
}

type SlotView struct {
	ID     uuid.UUID `json:"id"`
	LotID  uuid.UUID `json:"lot_id"`
	Number int       `json:"number"`
	Status string    `json:"status"`
}

type SlotBookingView struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	VehicleNumber string    `json:"vehicle_number"`
	VehicleType   string    `json:"vehicle_type"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
}

// AdminSlotView includes deleted slots and the occupying active booking, if any.
type AdminSlotView struct {
	ID        uuid.UUID        `json:"id"`
	LotID     uuid.UUID        `json:"lot_id"`
	Number    int              `json:"number"`
	Status    string           `json:"status"`
	DeletedAt *time.Time       `json:"deleted_at,omitempty"`
	Booking   *SlotBookingView `json:"booking,omitempty"`
}

type LotReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*LotView, error)
	List(ctx context.Context, onlyWithVacancy bool) ([]*LotListItem, error)
	ListDeleted(ctx context.Context) ([]*DeletedLotItem, error)
	ListVacantSlots(ctx context.Context, lotID uuid.UUID) ([]*SlotView, error)
	ListSlotsWithBookings(ctx context.Context, lotID uuid.UUID) ([]*AdminSlotView, error)
}

type LotQueries interface {
	ListAvailable(ctx context.Context) ([]*LotListItem, error)
	ListAll(ctx context.Context) ([]*LotListItem, error)
	ListDeleted(ctx context.Context) ([]*DeletedLotItem, error)
	ListVacantSlots(ctx context.Context, lotID uuid.UUID) ([]*SlotView, error)
	ListSlotsForAdmin(ctx context.Context, lotID uuid.UUID) ([]*AdminSlotView, error)
}

type lotQueriesImpl struct {
	store LotReadStore
}

func NewLotQueries(store LotReadStore) LotQueries {
	return &lotQueriesImpl{store: store}
}

// ListAvailable returns live lots that have at least one vacant slot.
func (q *lotQueriesImpl) ListAvailable(ctx context.Context) ([]*LotListItem, error) {
	return q.store.List(ctx, true)
}

func (q *lotQueriesImpl) ListAll(ctx context.Context) ([]*LotListItem, error) {
	return q.store.List(ctx, false)
}

func (q *lotQueriesImpl) ListDeleted(ctx context.Context) ([]*DeletedLotItem, error) {
	return q.store.ListDeleted(ctx)
}

func (q *lotQueriesImpl) ListVacantSlots(ctx context.Context, lotID uuid.UUID) ([]*SlotView, error) {
	l, err := q.findLot(ctx, lotID)
	if err != nil {
		return nil, err
	}
	if l.DeletedAt != nil {
		return nil, errs.ErrLotNotFound
	}
	return q.store.ListVacantSlots(ctx, lotID)
}

func (q *lotQueriesImpl) ListSlotsForAdmin(ctx context.Context, lotID uuid.UUID) ([]*AdminSlotView, error) {
	if _, err := q.findLot(ctx, lotID); err != nil {
		return nil, err
	}
	return q.store.ListSlotsWithBookings(ctx, lotID)
}

func (q *lotQueriesImpl) findLot(ctx context.Context, lotID uuid.UUID) (*LotView, error) {
	l, err := q.store.FindByID(ctx, lotID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrLotNotFound
		}
		return nil, err
	}
	return l, nil
}
