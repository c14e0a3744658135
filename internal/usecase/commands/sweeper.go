package commands

import (
	"context"
	"log/slog"

	"parking-booking/internal/domain/booking"
	"parking-booking/internal/pkg/clock"
	"parking-booking/internal/pkg/errs"
	"parking-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type ExpirySweeper interface {
	// SweepExpired settles every active booking whose end time has passed and
	// returns how many it settled in this run.
	SweepExpired(ctx context.Context) (int, error)
}

type expirySweeperImpl struct {
	uow     shared.UnitOfWork
	clock   clock.Clock
	billing booking.BillingCalculator
	logger  *slog.Logger
}

func NewExpirySweeper(
	uow shared.UnitOfWork,
	clock clock.Clock,
	billing booking.BillingCalculator,
	logger *slog.Logger,
) ExpirySweeper {
	return &expirySweeperImpl{
		uow:     uow,
		clock:   clock,
		billing: billing,
		logger:  logger,
	}
}

func (s *expirySweeperImpl) SweepExpired(ctx context.Context) (int, error) {
	ids, err := s.uow.CommandReads().ExpiredBookingIDs(ctx, s.clock.Now())
	if err != nil {
		return 0, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	settled, skipped, failed := 0, 0, 0
	for _, id := range ids {
		if ctx.Err() != nil {
			break
		}
		err := s.settleOne(ctx, id)
		switch {
		case err == nil:
			settled++
		case errs.Is(err, errs.ErrBookingAlreadyFinal):
			skipped++
			s.logger.Info("expired booking already settled elsewhere", "booking_id", id)
		default:
			failed++
			s.logger.Error("failed to settle expired booking", "booking_id", id, "error", err.Error())
		}
	}

	s.logger.Info("expiry sweep finished",
		"candidates", len(ids),
		"settled", settled,
		"skipped", skipped,
		"failed", failed)
	return settled, nil
}

// Each booking is settled in its own transaction so one failure does not
// roll back the others.
func (s *expirySweeperImpl) settleOne(ctx context.Context, id uuid.UUID) error {
	return s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().LockBooking(ctx, id)
		if err != nil {
			return mapNotFound(err, errs.ErrBookingNotFound)
		}
		if snap.Status != booking.StatusActive {
			return errs.ErrBookingAlreadyFinal
		}

		_, err = settle(ctx, tx, s.billing, s.logger, snap, s.clock.Now(), booking.StatusCompleted)
		return err
	})
}
