package commands

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"parking-booking/internal/domain/booking"
	"parking-booking/internal/infra"
	"parking-booking/internal/pkg/errs"
	"parking-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

const notificationKindBookingEvent = "booking_event"

type bookingEvent struct {
	BookingID          uuid.UUID  `json:"booking_id"`
	UserID             uuid.UUID  `json:"user_id"`
	LotID              uuid.UUID  `json:"lot_id"`
	SlotID             uuid.UUID  `json:"slot_id"`
	Status             string     `json:"status"`
	EstimatedCostCents int64      `json:"estimated_cost_cents,omitempty"`
	ActualCostCents    *int64     `json:"actual_cost_cents,omitempty"`
	ActualEndTime      *time.Time `json:"actual_end_time,omitempty"`
	OccurredAt         time.Time  `json:"occurred_at"`
}

// settle finalizes an active booking at end and frees its slot within tx.
// It is shared by cancellation and the expiry sweep so both bill identically.
func settle(
	ctx context.Context,
	tx shared.Tx,
	billing booking.BillingCalculator,
	logger *slog.Logger,
	snap *shared.BookingSnapshot,
	end time.Time,
	status booking.Status,
) (*SettleResult, error) {
	cost, err := billing.SettlementCost(booking.NewMoney(snap.HourlyRateCents), snap.ActualStart, end)
	if errors.Is(err, booking.ErrInvalidInterval) {
		logger.Warn("settlement end precedes actual start; billing zero hours",
			"booking_id", snap.ID,
			"actual_start", snap.ActualStart,
			"end", end)
	}

	if err := tx.Bookings().Settle(ctx, snap.ID, end, cost, status); err != nil {
		switch {
		case infra.IsKind(err, infra.KindConflict):
			return nil, errs.ErrBookingAlreadyFinal
		case infra.IsKind(err, infra.KindNotFound):
			return nil, errs.ErrBookingNotFound
		default:
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
	}

	released, err := tx.Slots().Release(ctx, snap.SlotID, snap.ID, end)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrSlotNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !released {
		logger.Info("slot no longer linked to settled booking",
			"booking_id", snap.ID,
			"slot_id", snap.SlotID)
	}

	cents := cost.Cents()
	if err := enqueueBookingEvent(ctx, tx, booking.SettledTopic(status), bookingEvent{
		BookingID:       snap.ID,
		UserID:          snap.UserID,
		LotID:           snap.LotID,
		SlotID:          snap.SlotID,
		Status:          status.String(),
		ActualCostCents: &cents,
		ActualEndTime:   &end,
		OccurredAt:      end,
	}, end); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return &SettleResult{
		BookingID:  snap.ID,
		Status:     status,
		ActualEnd:  end,
		ActualCost: cost,
	}, nil
}

func enqueueBookingEvent(ctx context.Context, tx shared.Tx, topic string, ev bookingEvent, runAt time.Time) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return tx.Notifications().CreateJob(ctx, notificationKindBookingEvent, topic, payload, runAt)
}
