package queries

import (
	"context"
	"time"

	"parking-booking/internal/domain/user"
	"parking-booking/internal/infra"
	"parking-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type BookingView struct {
	ID                 uuid.UUID  `json:"id"`
	UserID             uuid.UUID  `json:"user_id"`
	LotID              uuid.UUID  `json:"lot_id"`
	LotName            string     `json:"lot_name"`
	LotLocation        string     `json:"lot_location"`
	SlotID             uuid.UUID  `json:"slot_id"`
	SlotNumber         int        `json:"slot_number"`
	VehicleNumber      string     `json:"vehicle_number"`
	VehicleType        string     `json:"vehicle_type"`
	StartTime          time.Time  `json:"start_time"`
	EndTime            time.Time  `json:"end_time"`
	ActualStartTime    *time.Time `json:"actual_start_time,omitempty"`
	ActualEndTime      *time.Time `json:"actual_end_time,omitempty"`
	EstimatedCostCents int64      `json:"estimated_cost_cents"`
	ActualCostCents    *int64     `json:"actual_cost_cents,omitempty"`
	Status             string     `json:"status"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type BookingFilter struct {
	UserID *uuid.UUID
	Status *string
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	List(ctx context.Context, filter BookingFilter, after *KeysetPosition, limit int32) ([]*BookingView, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, actor user.Actor, id uuid.UUID) (*BookingView, error)
	ListMine(ctx context.Context, actor user.Actor, cursor *Cursor, limit int) ([]*BookingView, *Cursor, error)
	ListAll(ctx context.Context, actor user.Actor, status *string, cursor *Cursor, limit int) ([]*BookingView, *Cursor, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

// GetByID hides bookings of other users behind not-found.
func (q *bookingQueriesImpl) GetByID(ctx context.Context, actor user.Actor, id uuid.UUID) (*BookingView, error) {
	b, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrBookingNotFound
		}
		return nil, err
	}
	if !actor.CanAccess(b.UserID) {
		return nil, errs.ErrBookingNotFound
	}
	return b, nil
}

func (q *bookingQueriesImpl) ListMine(ctx context.Context, actor user.Actor, cursor *Cursor, limit int) ([]*BookingView, *Cursor, error) {
	userID := actor.ID
	return q.list(ctx, BookingFilter{UserID: &userID}, cursor, limit)
}

func (q *bookingQueriesImpl) ListAll(ctx context.Context, actor user.Actor, status *string, cursor *Cursor, limit int) ([]*BookingView, *Cursor, error) {
	if !actor.IsAdmin() {
		return nil, nil, errs.ErrForbidden
	}
	return q.list(ctx, BookingFilter{Status: status}, cursor, limit)
}

func (q *bookingQueriesImpl) list(ctx context.Context, filter BookingFilter, cursor *Cursor, limit int) ([]*BookingView, *Cursor, error) {
	limit = ValidateLimit(limit)
	after, err := decodePosition(cursor)
	if err != nil {
		return nil, nil, err
	}

	rows, err := q.store.List(ctx, filter, after, int32(limit+1))
	if err != nil {
		return nil, nil, err
	}

	page, next := paginate(rows, limit, func(b *BookingView) (time.Time, uuid.UUID) {
		return b.CreatedAt, b.ID
	})
	return page, next, nil
}
