//go:build unit || e2e

package builder

import (
	reqdto "parking-booking/internal/handler/dto/request"
)

type LotBuilder struct {
	Name         string
	Location     string
	PricePerHour string
	TotalSlots   int
}

func NewLotBuilder() *LotBuilder {
	return &LotBuilder{
		Name:         "Central Lot",
		Location:     "1 Main St",
		PricePerHour: "5.00",
		TotalSlots:   3,
	}
}

func (l *LotBuilder) With(mutate func(*LotBuilder)) *LotBuilder {
	mutate(l)
	return l
}

func (l *LotBuilder) BuildCreateRequestDTO() reqdto.CreateLotRequest {
	return reqdto.CreateLotRequest{
		Name:         l.Name,
		Location:     l.Location,
		PricePerHour: l.PricePerHour,
		TotalSlots:   l.TotalSlots,
	}
}
