package request

import (
	"strings"

	"parking-booking/internal/usecase/commands"
)

type CreateLotRequest struct {
	Name     string `json:"name" binding:"required,max=200"`
	Location string `json:"location" binding:"max=500"`
	// decimal string such as "5.00"
	PricePerHour string `json:"price_per_hour" binding:"required"`
	TotalSlots   int    `json:"total_slots" binding:"required,min=1,max=1000"`
}

func (r CreateLotRequest) ToInput() commands.CreateLotInput {
	return commands.CreateLotInput{
		Name:         strings.TrimSpace(r.Name),
		Location:     strings.TrimSpace(r.Location),
		PricePerHour: strings.TrimSpace(r.PricePerHour),
		TotalSlots:   r.TotalSlots,
	}
}
