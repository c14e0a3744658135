//go:build unit

package booking_test

import (
	"testing"
	"time"

	"parking-booking/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBillingCalculator_Cost(t *testing.T) {
	calc := booking.NewBillingCalculator()
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	rate := booking.NewMoney(1000)

	testCases := []struct {
		name      string
		elapsed   time.Duration
		wantHours int64
	}{
		{name: "zero length bills the one hour minimum", elapsed: 0, wantHours: 1},
		{name: "seconds only bill one hour", elapsed: 59 * time.Second, wantHours: 1},
		{name: "one minute", elapsed: time.Minute, wantHours: 1},
		{name: "exactly one hour", elapsed: time.Hour, wantHours: 1},
		{name: "61 minutes rounds up", elapsed: 61 * time.Minute, wantHours: 2},
		{name: "partial minute is floored before rounding", elapsed: 60*time.Minute + 59*time.Second, wantHours: 1},
		{name: "exactly three hours", elapsed: 3 * time.Hour, wantHours: 3},
		{name: "a day and a minute", elapsed: 24*time.Hour + time.Minute, wantHours: 25},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			hours, err := calc.BillableHours(start, start.Add(tc.elapsed))
			require.NoError(t, err)
			assert.Equal(t, tc.wantHours, hours)

			cost, err := calc.Cost(rate, start, start.Add(tc.elapsed))
			require.NoError(t, err)
			assert.Equal(t, rate.Cents()*tc.wantHours, cost.Cents())
			assert.GreaterOrEqual(t, cost.Cents(), rate.Cents())
		})
	}

	t.Run("rate 10 over 61 minutes costs 20", func(t *testing.T) {
		cost, err := calc.Cost(booking.NewMoney(10), start, start.Add(61*time.Minute))
		require.NoError(t, err)
		assert.Equal(t, int64(20), cost.Cents())
	})

	t.Run("end before start is an invalid interval", func(t *testing.T) {
		_, err := calc.Cost(rate, start, start.Add(-time.Minute))
		assert.ErrorIs(t, err, booking.ErrInvalidInterval)
	})
}

func TestBillingCalculator_SettlementCost(t *testing.T) {
	calc := booking.NewBillingCalculator()
	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	rate := booking.NewMoney(500)

	t.Run("three hours at 5.00 costs 15.00", func(t *testing.T) {
		cost, err := calc.SettlementCost(rate, &start, start.Add(3*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, "15.00", cost.String())
	})

	t.Run("missing actual start costs nothing", func(t *testing.T) {
		cost, err := calc.SettlementCost(rate, nil, start)
		require.NoError(t, err)
		assert.True(t, cost.IsZero())
	})

	t.Run("clock skew yields zero cost and reports the interval", func(t *testing.T) {
		cost, err := calc.SettlementCost(rate, &start, start.Add(-2*time.Hour))
		assert.ErrorIs(t, err, booking.ErrInvalidInterval)
		assert.True(t, cost.IsZero())
	})
}

func TestBillingCalculator_Estimate(t *testing.T) {
	calc := booking.NewBillingCalculator()
	assert.Equal(t, int64(1000), calc.Estimate(booking.NewMoney(500), 2).Cents())
}
