package request

import (
	"strings"

	"parking-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	LotID         uuid.UUID `json:"lot_id" binding:"required"`
	SlotID        uuid.UUID `json:"slot_id" binding:"required"`
	VehicleNumber string    `json:"vehicle_number" binding:"required,max=32"`
	VehicleType   string    `json:"vehicle_type" binding:"required,max=32"`
	Hours         int       `json:"hours" binding:"required,min=1,max=720"`
}

func (r CreateBookingRequest) ToInput() commands.CreateBookingInput {
	return commands.CreateBookingInput{
		LotID:         r.LotID,
		SlotID:        r.SlotID,
		VehicleNumber: strings.TrimSpace(r.VehicleNumber),
		VehicleType:   strings.TrimSpace(r.VehicleType),
		Hours:         r.Hours,
	}
}
