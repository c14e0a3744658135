package readstore

import (
	"context"
	"time"

	"parking-booking/internal/infra"
	"parking-booking/internal/infra/db"
	"parking-booking/internal/usecase/queries"

	"github.com/jackc/pgx/v5"
)

type StatsReadStore struct {
	db db.DBTX
}

func NewStatsReadStore(db db.DBTX) *StatsReadStore {
	return &StatsReadStore{db: db}
}

const dashboardCountsSQL = `
SELECT
    (SELECT count(*) FROM parking_lots WHERE deleted_at IS NULL),
    (SELECT count(*) FROM parking_slots WHERE deleted_at IS NULL),
    (SELECT count(*) FROM parking_slots WHERE status = 'vacant'),
    (SELECT count(*) FROM parking_slots WHERE status = 'booked'),
    (SELECT count(*) FROM bookings WHERE status = 'active'),
    (SELECT coalesce(sum(actual_cost_cents), 0)::bigint FROM bookings WHERE status = 'completed')`

const monthlyRevenueSQL = `
SELECT to_char(actual_end_time AT TIME ZONE 'UTC', 'YYYY-MM') AS month,
       sum(actual_cost_cents)::bigint
FROM bookings
WHERE status = 'completed' AND actual_end_time >= $1
GROUP BY month
ORDER BY month`

func (s *StatsReadStore) DashboardStats(ctx context.Context, revenueSince time.Time) (*queries.DashboardStats, error) {
	var st queries.DashboardStats
	err := s.db.QueryRow(ctx, dashboardCountsSQL).Scan(
		&st.TotalLots,
		&st.TotalSlots,
		&st.AvailableSlots,
		&st.OccupiedSlots,
		&st.ActiveBookings,
		&st.TotalRevenueCents,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load dashboard counts", err)
	}

	rows, err := s.db.Query(ctx, monthlyRevenueSQL, revenueSince)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load monthly revenue", err)
	}
	months, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (queries.MonthlyRevenue, error) {
		var m queries.MonthlyRevenue
		err := row.Scan(&m.Month, &m.RevenueCents)
		return m, err
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan monthly revenue", err)
	}
	st.MonthlyRevenue = months
	if st.MonthlyRevenue == nil {
		st.MonthlyRevenue = []queries.MonthlyRevenue{}
	}
	return &st, nil
}
