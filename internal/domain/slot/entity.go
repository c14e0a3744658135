package slot

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUnavailable      = errors.New("slot is not vacant")
	ErrHasActiveBooking = errors.New("slot is booked")
	ErrNotDeleted       = errors.New("slot is not deleted")
	ErrInvalidNumber    = errors.New("slot number must be positive")
)

// Slot is one numbered parking space. A booked slot always carries the
// occupying booking ID and a vacant or deleted slot never does.
type Slot struct {
	id        uuid.UUID
	lotID     uuid.UUID
	number    int
	status    Status
	bookingID *uuid.UUID
	deletedAt *time.Time
	createdAt time.Time
	updatedAt time.Time
}

func NewSlot(lotID uuid.UUID, number int, now time.Time) (*Slot, error) {
	if number < 1 {
		return nil, ErrInvalidNumber
	}
	return &Slot{
		id:        uuid.New(),
		lotID:     lotID,
		number:    number,
		status:    StatusVacant,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructSlot(
	id, lotID uuid.UUID,
	number int,
	status Status,
	bookingID *uuid.UUID,
	deletedAt *time.Time,
	createdAt, updatedAt time.Time,
) *Slot {
	return &Slot{
		id:        id,
		lotID:     lotID,
		number:    number,
		status:    status,
		bookingID: bookingID,
		deletedAt: deletedAt,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (s *Slot) Reserve(bookingID uuid.UUID, now time.Time) error {
	if !s.IsAvailable() {
		return ErrUnavailable
	}
	s.status = StatusBooked
	s.bookingID = &bookingID
	s.updatedAt = now
	return nil
}

// Release frees the slot if bookingID still occupies it. It reports false
// when the slot was already detached from that booking.
func (s *Slot) Release(bookingID uuid.UUID, now time.Time) bool {
	if s.bookingID == nil || *s.bookingID != bookingID {
		return false
	}
	s.bookingID = nil
	if s.status == StatusBooked {
		s.status = StatusVacant
	}
	s.updatedAt = now
	return true
}

func (s *Slot) SoftDelete(now time.Time) error {
	if s.status == StatusBooked {
		return ErrHasActiveBooking
	}
	if s.IsDeleted() {
		return nil
	}
	s.status = StatusDeleted
	s.deletedAt = &now
	s.updatedAt = now
	return nil
}

// Restore brings a deleted slot back as vacant.
func (s *Slot) Restore(now time.Time) error {
	if !s.IsDeleted() {
		return ErrNotDeleted
	}
	s.status = StatusVacant
	s.bookingID = nil
	s.deletedAt = nil
	s.updatedAt = now
	return nil
}

func (s *Slot) IsAvailable() bool {
	return s.status == StatusVacant && s.deletedAt == nil
}

func (s *Slot) IsDeleted() bool {
	return s.deletedAt != nil || s.status == StatusDeleted
}

func (s *Slot) ID() uuid.UUID         { return s.id }
func (s *Slot) LotID() uuid.UUID      { return s.lotID }
func (s *Slot) Number() int           { return s.number }
func (s *Slot) Status() Status        { return s.status }
func (s *Slot) BookingID() *uuid.UUID { return s.bookingID }
func (s *Slot) DeletedAt() *time.Time { return s.deletedAt }
func (s *Slot) CreatedAt() time.Time  { return s.createdAt }
func (s *Slot) UpdatedAt() time.Time  { return s.updatedAt }
