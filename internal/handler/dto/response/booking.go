package response

import (
	"time"

	"parking-booking/internal/domain/booking"
	"parking-booking/internal/usecase/commands"
	"parking-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"user_id"`
	LotID           uuid.UUID  `json:"lot_id"`
	LotName         string     `json:"lot_name"`
	LotLocation     string     `json:"lot_location"`
	SlotID          uuid.UUID  `json:"slot_id"`
	SlotNumber      int        `json:"slot_number"`
	VehicleNumber   string     `json:"vehicle_number"`
	VehicleType     string     `json:"vehicle_type"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         time.Time  `json:"end_time"`
	ActualStartTime *time.Time `json:"actual_start_time,omitempty"`
	ActualEndTime   *time.Time `json:"actual_end_time,omitempty"`
	EstimatedCost   string     `json:"estimated_cost"`
	ActualCost      *string    `json:"actual_cost,omitempty"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type BookingListResponse struct {
	Items      []*BookingResponse `json:"items"`
	NextCursor *string            `json:"next_cursor,omitempty"`
}

type CreateBookingResponse struct {
	BookingID     uuid.UUID `json:"booking_id"`
	LotID         uuid.UUID `json:"lot_id"`
	SlotID        uuid.UUID `json:"slot_id"`
	SlotNumber    int       `json:"slot_number"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	EstimatedCost string    `json:"estimated_cost"`
}

type SettleResponse struct {
	BookingID  uuid.UUID `json:"booking_id"`
	Status     string    `json:"status"`
	ActualEnd  time.Time `json:"actual_end_time"`
	ActualCost string    `json:"actual_cost"`
}

// money fields differ in name and type from the view, so copier leaves them to us
func FromBookingView(v *queries.BookingView) *BookingResponse {
	var res BookingResponse
	_ = copier.Copy(&res, v)
	res.EstimatedCost = booking.NewMoney(v.EstimatedCostCents).String()
	if v.ActualCostCents != nil {
		s := booking.NewMoney(*v.ActualCostCents).String()
		res.ActualCost = &s
	}
	return &res
}

func FromBookingPage(items []*queries.BookingView, next *queries.Cursor) *BookingListResponse {
	res := &BookingListResponse{Items: make([]*BookingResponse, len(items))}
	for i, it := range items {
		res.Items[i] = FromBookingView(it)
	}
	if next != nil {
		res.NextCursor = &next.After
	}
	return res
}

func FromCreateBookingResult(r *commands.CreateBookingResult) *CreateBookingResponse {
	return &CreateBookingResponse{
		BookingID:     r.BookingID,
		LotID:         r.LotID,
		SlotID:        r.SlotID,
		SlotNumber:    r.SlotNumber,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		EstimatedCost: r.EstimatedCost.String(),
	}
}

func FromSettleResult(r *commands.SettleResult) *SettleResponse {
	return &SettleResponse{
		BookingID:  r.BookingID,
		Status:     r.Status.String(),
		ActualEnd:  r.ActualEnd,
		ActualCost: r.ActualCost.String(),
	}
}
