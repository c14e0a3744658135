package shared

import (
	"context"
	"time"

	"parking-booking/internal/domain/booking"
	"parking-booking/internal/domain/lot"
	"parking-booking/internal/domain/slot"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Slots() SlotRepository
	Lots() LotRepository
	Notifications() NotificationRepository
	Reads() CommandReads
}

// CommandReads returns write-side snapshots. The Lock* variants take a row
// lock that is held until the surrounding transaction ends.
type CommandReads interface {
	LotByID(ctx context.Context, id uuid.UUID) (*LotSnapshot, error)
	LockLot(ctx context.Context, id uuid.UUID) (*LotSnapshot, error)
	LockSlot(ctx context.Context, id uuid.UUID) (*SlotSnapshot, error)
	LockBooking(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	ExpiredBookingIDs(ctx context.Context, now time.Time) ([]uuid.UUID, error)
	CountActiveBookingsInLot(ctx context.Context, lotID uuid.UUID) (int64, error)
	HasActiveBookingForSlot(ctx context.Context, slotID uuid.UUID) (bool, error)
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	// Settle finalizes an active booking; KindConflict when it is no longer active.
	Settle(ctx context.Context, id uuid.UUID, end time.Time, cost booking.Money, status booking.Status) error
}

type SlotRepository interface {
	CreateBatch(ctx context.Context, slots []*slot.Slot) error
	// Reserve links a vacant, live slot to bookingID; KindConflict otherwise.
	Reserve(ctx context.Context, slotID, bookingID uuid.UUID, now time.Time) error
	// Release reports false when the slot exists but no longer references bookingID.
	Release(ctx context.Context, slotID, bookingID uuid.UUID, now time.Time) (bool, error)
	SoftDelete(ctx context.Context, slotID uuid.UUID, now time.Time) error
	Restore(ctx context.Context, slotID uuid.UUID, now time.Time) error
	SoftDeleteByLot(ctx context.Context, lotID uuid.UUID, now time.Time) (int64, error)
	// RestoreByLot restores the slots deleted together with the lot at deletedAt.
	RestoreByLot(ctx context.Context, lotID uuid.UUID, deletedAt, now time.Time) (int64, error)
}

type LotRepository interface {
	Create(ctx context.Context, l *lot.Lot) error
	SoftDelete(ctx context.Context, id uuid.UUID, now time.Time) error
	Restore(ctx context.Context, id uuid.UUID, now time.Time) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error
}

// Minimal snapshots for command read operations
type LotSnapshot struct {
	ID              uuid.UUID
	Name            string
	HourlyRateCents int64
	DeletedAt       *time.Time
}

func (s LotSnapshot) IsDeleted() bool { return s.DeletedAt != nil }

type SlotSnapshot struct {
	ID        uuid.UUID
	LotID     uuid.UUID
	Number    int
	Status    slot.Status
	BookingID *uuid.UUID
	DeletedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s SlotSnapshot) ToDomain() *slot.Slot {
	return slot.ReconstructSlot(s.ID, s.LotID, s.Number, s.Status, s.BookingID, s.DeletedAt, s.CreatedAt, s.UpdatedAt)
}

type BookingSnapshot struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	LotID           uuid.UUID
	SlotID          uuid.UUID
	Status          booking.Status
	EndTime         time.Time
	ActualStart     *time.Time
	HourlyRateCents int64
}
