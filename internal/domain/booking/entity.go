package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidDuration = errors.New("booking duration out of range")
	ErrAlreadyFinal    = errors.New("booking is already final")
	ErrInvalidSettle   = errors.New("settlement status must be completed or cancelled")
)

// MaxHours caps a single reservation at 30 days.
const MaxHours = 720

type Booking struct {
	id            uuid.UUID
	userID        uuid.UUID
	lotID         uuid.UUID
	slotID        uuid.UUID
	vehicle       Vehicle
	startTime     time.Time
	endTime       time.Time
	actualStart   *time.Time
	actualEnd     *time.Time
	estimatedCost Money
	actualCost    *Money
	status        Status
	createdAt     time.Time
	updatedAt     time.Time
}

// NewBooking opens an active booking starting at now for the requested hours.
// The vehicle is considered parked from the start of the booking.
func NewBooking(
	calc BillingCalculator,
	userID, lotID, slotID uuid.UUID,
	vehicle Vehicle,
	hours int,
	rate Money,
	now time.Time,
) (*Booking, error) {
	if hours < 1 || hours > MaxHours {
		return nil, ErrInvalidDuration
	}

	start := now
	return &Booking{
		id:            uuid.New(),
		userID:        userID,
		lotID:         lotID,
		slotID:        slotID,
		vehicle:       vehicle,
		startTime:     start,
		endTime:       start.Add(time.Duration(hours) * time.Hour),
		actualStart:   &start,
		estimatedCost: calc.Estimate(rate, hours),
		status:        StatusActive,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

func ReconstructBooking(
	id, userID, lotID, slotID uuid.UUID,
	vehicle Vehicle,
	startTime, endTime time.Time,
	actualStart, actualEnd *time.Time,
	estimatedCost Money,
	actualCost *Money,
	status Status,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:            id,
		userID:        userID,
		lotID:         lotID,
		slotID:        slotID,
		vehicle:       vehicle,
		startTime:     startTime,
		endTime:       endTime,
		actualStart:   actualStart,
		actualEnd:     actualEnd,
		estimatedCost: estimatedCost,
		actualCost:    actualCost,
		status:        status,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// Settle finalizes the booking. A final booking is never overwritten.
func (b *Booking) Settle(end time.Time, cost Money, status Status) error {
	if !status.IsFinal() {
		return ErrInvalidSettle
	}
	if b.status.IsFinal() {
		return ErrAlreadyFinal
	}
	b.actualEnd = &end
	b.actualCost = &cost
	b.status = status
	b.updatedAt = end
	return nil
}

func (b *Booking) IsActive() bool {
	return b.status == StatusActive
}

func (b *Booking) HasExpired(now time.Time) bool {
	return b.IsActive() && !b.endTime.After(now)
}

func (b *Booking) ID() uuid.UUID           { return b.id }
func (b *Booking) UserID() uuid.UUID       { return b.userID }
func (b *Booking) LotID() uuid.UUID        { return b.lotID }
func (b *Booking) SlotID() uuid.UUID       { return b.slotID }
func (b *Booking) Vehicle() Vehicle        { return b.vehicle }
func (b *Booking) StartTime() time.Time    { return b.startTime }
func (b *Booking) EndTime() time.Time      { return b.endTime }
func (b *Booking) ActualStart() *time.Time { return b.actualStart }
func (b *Booking) ActualEnd() *time.Time   { return b.actualEnd }
func (b *Booking) EstimatedCost() Money    { return b.estimatedCost }
func (b *Booking) ActualCost() *Money      { return b.actualCost }
func (b *Booking) Status() Status          { return b.status }
func (b *Booking) CreatedAt() time.Time    { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time    { return b.updatedAt }
