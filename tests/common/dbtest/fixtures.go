//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

type TestLot struct {
	ID      uuid.UUID
	SlotIDs []uuid.UUID // ordered by slot number
}

// CreateTestLot inserts a live lot with slots numbered 1..slots, all vacant.
func CreateTestLot(t *testing.T, db DBLike, name string, priceCents int64, slots int) TestLot {
	t.Helper()

	ctx := context.Background()
	lot := TestLot{ID: uuid.New()}

	_, err := db.Exec(ctx,
		"INSERT INTO parking_lots (id, name, location, price_per_hour_cents) VALUES ($1, $2, $3, $4)",
		lot.ID, name, "test location", priceCents)
	require.NoError(t, err)

	for n := 1; n <= slots; n++ {
		slotID := uuid.New()
		_, err := db.Exec(ctx,
			"INSERT INTO parking_slots (id, parking_lot_id, slot_number, status) VALUES ($1, $2, $3, 'vacant')",
			slotID, lot.ID, n)
		require.NoError(t, err)
		lot.SlotIDs = append(lot.SlotIDs, slotID)
	}

	return lot
}

// CreateActiveBooking inserts an active booking and links the slot to it,
// bypassing the API so tests can place end times in the past.
func CreateActiveBooking(t *testing.T, db DBLike, lot TestLot, slotID, userID uuid.UUID, start, end time.Time, estimatedCents int64) uuid.UUID {
	t.Helper()

	ctx := context.Background()
	bookingID := uuid.New()

	_, err := db.Exec(ctx, `
		INSERT INTO bookings (id, user_id, parking_lot_id, slot_id, vehicle_number, vehicle_type,
		                      start_time, end_time, actual_start_time, estimated_cost_cents, status)
		VALUES ($1, $2, $3, $4, 'TEST-0001', 'car', $5, $6, $5, $7, 'active')`,
		bookingID, userID, lot.ID, slotID, start, end, estimatedCents)
	require.NoError(t, err)

	_, err = db.Exec(ctx,
		"UPDATE parking_slots SET status = 'booked', booking_id = $2 WHERE id = $1",
		slotID, bookingID)
	require.NoError(t, err)

	return bookingID
}

type BookingRow struct {
	Status          string
	ActualEndTime   *time.Time
	ActualCostCents *int64
}

func GetBooking(t *testing.T, db DBLike, id uuid.UUID) BookingRow {
	t.Helper()

	var row BookingRow
	err := db.QueryRow(context.Background(),
		"SELECT status, actual_end_time, actual_cost_cents FROM bookings WHERE id = $1", id).
		Scan(&row.Status, &row.ActualEndTime, &row.ActualCostCents)
	require.NoError(t, err)
	return row
}

type SlotRow struct {
	Status    string
	BookingID *uuid.UUID
	DeletedAt *time.Time
}

func GetSlot(t *testing.T, db DBLike, id uuid.UUID) SlotRow {
	t.Helper()

	var row SlotRow
	err := db.QueryRow(context.Background(),
		"SELECT status, booking_id, deleted_at FROM parking_slots WHERE id = $1", id).
		Scan(&row.Status, &row.BookingID, &row.DeletedAt)
	require.NoError(t, err)
	return row
}

func CountQueuedJobs(t *testing.T, db DBLike, topic string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM notification_jobs WHERE topic = $1 AND status = 'queued'", topic).Scan(&n)
	require.NoError(t, err)
	return n
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// ResetDB truncates every application table. The goose version table is kept
// so the schema stays at its migrated version.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('goose_db_version')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
