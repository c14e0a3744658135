package response

import (
	"parking-booking/internal/domain/booking"
	"parking-booking/internal/usecase/queries"
)

type MonthlyRevenueResponse struct {
	Month   string `json:"month"`
	Revenue string `json:"revenue"`
}

type DashboardStatsResponse struct {
	TotalLots      int64                    `json:"total_lots"`
	TotalSlots     int64                    `json:"total_slots"`
	AvailableSlots int64                    `json:"available_slots"`
	OccupiedSlots  int64                    `json:"occupied_slots"`
	ActiveBookings int64                    `json:"active_bookings"`
	TotalRevenue   string                   `json:"total_revenue"`
	MonthlyRevenue []MonthlyRevenueResponse `json:"monthly_revenue"`
}

func FromDashboardStats(s *queries.DashboardStats) *DashboardStatsResponse {
	res := &DashboardStatsResponse{
		TotalLots:      s.TotalLots,
		TotalSlots:     s.TotalSlots,
		AvailableSlots: s.AvailableSlots,
		OccupiedSlots:  s.OccupiedSlots,
		ActiveBookings: s.ActiveBookings,
		TotalRevenue:   booking.NewMoney(s.TotalRevenueCents).String(),
		MonthlyRevenue: make([]MonthlyRevenueResponse, len(s.MonthlyRevenue)),
	}
	for i, m := range s.MonthlyRevenue {
		res.MonthlyRevenue[i] = MonthlyRevenueResponse{
			Month:   m.Month,
			Revenue: booking.NewMoney(m.RevenueCents).String(),
		}
	}
	return res
}

type SweepResponse struct {
	Settled int `json:"settled"`
}
