//go:build unit || e2e

package builder

import (
	"time"

	reqdto "parking-booking/internal/handler/dto/request"
	"parking-booking/internal/usecase/commands"
	"parking-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	LotID              uuid.UUID
	LotName            string
	SlotID             uuid.UUID
	SlotNumber         int
	VehicleNumber      string
	VehicleType        string
	Hours              int
	StartTime          time.Time
	EstimatedCostCents int64
	Status             string
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		ID:                 uuid.New(),
		UserID:             uuid.New(),
		LotID:              uuid.New(),
		LotName:            "Central Lot",
		SlotID:             uuid.New(),
		SlotNumber:         1,
		VehicleNumber:      "ABC-1234",
		VehicleType:        "car",
		Hours:              2,
		StartTime:          now,
		EstimatedCostCents: 1000,
		Status:             "active",
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) WithLot(lotID, slotID uuid.UUID) *BookingBuilder {
	b.LotID = lotID
	b.SlotID = slotID
	return b
}

func (b *BookingBuilder) WithHours(h int) *BookingBuilder {
	b.Hours = h
	return b
}

func (b *BookingBuilder) WithUser(id uuid.UUID) *BookingBuilder {
	b.UserID = id
	return b
}

// Build methods
func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		LotID:         b.LotID,
		SlotID:        b.SlotID,
		VehicleNumber: b.VehicleNumber,
		VehicleType:   b.VehicleType,
		Hours:         b.Hours,
	}
}

func (b *BookingBuilder) BuildInput() commands.CreateBookingInput {
	return b.BuildCreateRequestDTO().ToInput()
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	end := b.StartTime.Add(time.Duration(b.Hours) * time.Hour)
	start := b.StartTime
	return &queries.BookingView{
		ID:                 b.ID,
		UserID:             b.UserID,
		LotID:              b.LotID,
		LotName:            b.LotName,
		SlotID:             b.SlotID,
		SlotNumber:         b.SlotNumber,
		VehicleNumber:      b.VehicleNumber,
		VehicleType:        b.VehicleType,
		StartTime:          b.StartTime,
		EndTime:            end,
		ActualStartTime:    &start,
		EstimatedCostCents: b.EstimatedCostCents,
		Status:             b.Status,
		CreatedAt:          b.StartTime,
		UpdatedAt:          b.StartTime,
	}
}
