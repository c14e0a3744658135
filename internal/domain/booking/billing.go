package booking

import (
	"errors"
	"time"
)

var ErrInvalidInterval = errors.New("end time is before start time")

const minutesPerHour = 60

// BillingCalculator prices a parking interval: whole elapsed minutes, rounded
// up to whole hours, never less than one hour.
type BillingCalculator struct{}

func NewBillingCalculator() BillingCalculator {
	return BillingCalculator{}
}

func (BillingCalculator) BillableHours(start, end time.Time) (int64, error) {
	if end.Before(start) {
		return 0, ErrInvalidInterval
	}
	minutes := int64(end.Sub(start) / time.Minute)
	hours := (minutes + minutesPerHour - 1) / minutesPerHour
	if hours < 1 {
		hours = 1
	}
	return hours, nil
}

func (c BillingCalculator) Cost(rate Money, start, end time.Time) (Money, error) {
	hours, err := c.BillableHours(start, end)
	if err != nil {
		return Money{}, err
	}
	return rate.Times(hours), nil
}

// SettlementCost is the amount charged when a booking is finalized at end.
// A booking that never started costs nothing. On clock skew (end before start)
// the cost is zero and ErrInvalidInterval is returned for the caller to log;
// settlement must still proceed.
func (c BillingCalculator) SettlementCost(rate Money, actualStart *time.Time, end time.Time) (Money, error) {
	if actualStart == nil {
		return NewMoney(0), nil
	}
	cost, err := c.Cost(rate, *actualStart, end)
	if err != nil {
		return NewMoney(0), err
	}
	return cost, nil
}

// Estimate is rate × requested hours, with no rounding.
func (BillingCalculator) Estimate(rate Money, hours int) Money {
	return rate.Times(int64(hours))
}
