package response

import (
	"time"

	"parking-booking/internal/domain/booking"
	"parking-booking/internal/usecase/commands"
	"parking-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type LotResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Location       string    `json:"location"`
	PricePerHour   string    `json:"price_per_hour"`
	TotalSlots     int64     `json:"total_slots"`
	AvailableSlots int64     `json:"available_slots"`
	OccupiedSlots  int64     `json:"occupied_slots"`
	CreatedAt      time.Time `json:"created_at"`
}

type DeletedLotResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Location     string    `json:"location"`
	PricePerHour string    `json:"price_per_hour"`
	TotalSlots   int64     `json:"total_slots"`
	DeletedAt    time.Time `json:"deleted_at"`
}

type SlotResponse struct {
	ID     uuid.UUID `json:"id"`
	LotID  uuid.UUID `json:"lot_id"`
	Number int       `json:"number"`
	Status string    `json:"status"`
}

type SlotBookingResponse struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	VehicleNumber string    `json:"vehicle_number"`
	VehicleType   string    `json:"vehicle_type"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
}

type AdminSlotResponse struct {
	ID        uuid.UUID            `json:"id"`
	LotID     uuid.UUID            `json:"lot_id"`
	Number    int                  `json:"number"`
	Status    string               `json:"status"`
	DeletedAt *time.Time           `json:"deleted_at,omitempty"`
	Booking   *SlotBookingResponse `json:"booking,omitempty" copier:"-"`
}

type CreateLotResponse struct {
	LotID     uuid.UUID `json:"lot_id"`
	SlotCount int       `json:"slot_count"`
}

type RestoreLotResponse struct {
	LotID         uuid.UUID `json:"lot_id"`
	RestoredSlots int64     `json:"restored_slots"`
}

func FromLotList(items []*queries.LotListItem) []*LotResponse {
	res := make([]*LotResponse, len(items))
	for i, it := range items {
		var r LotResponse
		_ = copier.Copy(&r, it)
		r.PricePerHour = booking.NewMoney(it.PricePerHourCents).String()
		res[i] = &r
	}
	return res
}

func FromDeletedLots(items []*queries.DeletedLotItem) []*DeletedLotResponse {
	res := make([]*DeletedLotResponse, len(items))
	for i, it := range items {
		var r DeletedLotResponse
		_ = copier.Copy(&r, it)
		r.PricePerHour = booking.NewMoney(it.PricePerHourCents).String()
		res[i] = &r
	}
	return res
}

func FromSlots(items []*queries.SlotView) []*SlotResponse {
	res := make([]*SlotResponse, 0, len(items))
	_ = copier.Copy(&res, items)
	return res
}

func FromAdminSlots(items []*queries.AdminSlotView) []*AdminSlotResponse {
	res := make([]*AdminSlotResponse, len(items))
	for i, it := range items {
		var r AdminSlotResponse
		_ = copier.Copy(&r, it)
		if it.Booking != nil {
			b := SlotBookingResponse(*it.Booking)
			r.Booking = &b
		}
		res[i] = &r
	}
	return res
}

func FromCreateLotResult(r *commands.CreateLotResult) *CreateLotResponse {
	return &CreateLotResponse{LotID: r.LotID, SlotCount: r.SlotCount}
}
