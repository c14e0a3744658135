package queries

import (
	"context"
	"time"

	"parking-booking/internal/domain/user"
	"parking-booking/internal/pkg/clock"
	"parking-booking/internal/pkg/errs"
)

const revenueMonths = 6

type MonthlyRevenue struct {
	Month        string `json:"month"` // YYYY-MM
	RevenueCents int64  `json:"revenue_cents"`
}

type DashboardStats struct {
	TotalLots         int64            `json:"total_lots"`
	TotalSlots        int64            `json:"total_slots"`
	AvailableSlots    int64            `json:"available_slots"`
	OccupiedSlots     int64            `json:"occupied_slots"`
	ActiveBookings    int64            `json:"active_bookings"`
	TotalRevenueCents int64            `json:"total_revenue_cents"`
	MonthlyRevenue    []MonthlyRevenue `json:"monthly_revenue"`
}

type StatsReadStore interface {
	// Revenue counts completed bookings only; months are keyed by actual end time.
	DashboardStats(ctx context.Context, revenueSince time.Time) (*DashboardStats, error)
}

type StatsQueries interface {
	Dashboard(ctx context.Context, actor user.Actor) (*DashboardStats, error)
}

type statsQueriesImpl struct {
	store StatsReadStore
	clock clock.Clock
}

func NewStatsQueries(store StatsReadStore, clock clock.Clock) StatsQueries {
	return &statsQueriesImpl{store: store, clock: clock}
}

func (q *statsQueriesImpl) Dashboard(ctx context.Context, actor user.Actor) (*DashboardStats, error) {
	if !actor.IsAdmin() {
		return nil, errs.ErrForbidden
	}
	return q.store.DashboardStats(ctx, RevenueWindowStart(q.clock.Now(), revenueMonths))
}

// RevenueWindowStart is the first instant of the month (months-1) months before now, in UTC.
func RevenueWindowStart(now time.Time, months int) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month()-time.Month(months-1), 1, 0, 0, 0, 0, time.UTC)
}
