package lot

import (
	"errors"
	"strings"
	"time"

	"parking-booking/internal/domain/booking"

	"github.com/google/uuid"
)

var (
	ErrInvalidName      = errors.New("lot name is required")
	ErrInvalidRate      = errors.New("hourly rate must be positive")
	ErrInvalidSlotCount = errors.New("slot count out of range")
	ErrNotDeleted       = errors.New("lot is not deleted")
)

const MaxSlots = 1000

type Lot struct {
	id         uuid.UUID
	name       string
	location   string
	hourlyRate booking.Money
	deletedAt  *time.Time
	createdAt  time.Time
	updatedAt  time.Time
}

func NewLot(name, location string, hourlyRate booking.Money, now time.Time) (*Lot, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	if hourlyRate.Cents() <= 0 {
		return nil, ErrInvalidRate
	}
	return &Lot{
		id:         uuid.New(),
		name:       name,
		location:   strings.TrimSpace(location),
		hourlyRate: hourlyRate,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func ReconstructLot(
	id uuid.UUID,
	name, location string,
	hourlyRate booking.Money,
	deletedAt *time.Time,
	createdAt, updatedAt time.Time,
) *Lot {
	return &Lot{
		id:         id,
		name:       name,
		location:   location,
		hourlyRate: hourlyRate,
		deletedAt:  deletedAt,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func ValidateSlotCount(n int) error {
	if n < 1 || n > MaxSlots {
		return ErrInvalidSlotCount
	}
	return nil
}

func (l *Lot) IsDeleted() bool {
	return l.deletedAt != nil
}

func (l *Lot) ID() uuid.UUID             { return l.id }
func (l *Lot) Name() string              { return l.name }
func (l *Lot) Location() string          { return l.location }
func (l *Lot) HourlyRate() booking.Money { return l.hourlyRate }
func (l *Lot) DeletedAt() *time.Time     { return l.deletedAt }
func (l *Lot) CreatedAt() time.Time      { return l.createdAt }
func (l *Lot) UpdatedAt() time.Time      { return l.updatedAt }
