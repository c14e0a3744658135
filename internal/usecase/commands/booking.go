package commands

import (
	"context"
	"log/slog"
	"time"

	"parking-booking/internal/domain/booking"
	"parking-booking/internal/domain/user"
	"parking-booking/internal/infra"
	"parking-booking/internal/pkg/clock"
	"parking-booking/internal/pkg/errs"
	"parking-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateBookingInput struct {
	LotID         uuid.UUID
	SlotID        uuid.UUID
	VehicleNumber string
	VehicleType   string
	Hours         int
}

type CreateBookingResult struct {
	BookingID     uuid.UUID
	LotID         uuid.UUID
	SlotID        uuid.UUID
	SlotNumber    int
	StartTime     time.Time
	EndTime       time.Time
	EstimatedCost booking.Money
}

type SettleResult struct {
	BookingID  uuid.UUID
	Status     booking.Status
	ActualEnd  time.Time
	ActualCost booking.Money
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, actor user.Actor, in CreateBookingInput) (*CreateBookingResult, error)
	CancelBooking(ctx context.Context, actor user.Actor, bookingID uuid.UUID) (*SettleResult, error)
	AdminCancelBooking(ctx context.Context, actor user.Actor, bookingID uuid.UUID) (*SettleResult, error)
}

type bookingCommandsImpl struct {
	uow     shared.UnitOfWork
	clock   clock.Clock
	billing booking.BillingCalculator
	logger  *slog.Logger
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	clock clock.Clock,
	billing booking.BillingCalculator,
	logger *slog.Logger,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:     uow,
		clock:   clock,
		billing: billing,
		logger:  logger,
	}
}

func (c *bookingCommandsImpl) CreateBooking(ctx context.Context, actor user.Actor, in CreateBookingInput) (*CreateBookingResult, error) {
	if in.Hours < 1 || in.Hours > booking.MaxHours {
		return nil, errs.ErrInvalidDuration
	}
	vehicle, err := booking.NewVehicle(in.VehicleNumber, in.VehicleType)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	var result *CreateBookingResult
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		lotSnap, err := tx.Reads().LotByID(ctx, in.LotID)
		if err != nil {
			return mapNotFound(err, errs.ErrLotNotFound)
		}
		if lotSnap.IsDeleted() {
			return errs.ErrLotNotFound
		}

		slotSnap, err := tx.Reads().LockSlot(ctx, in.SlotID)
		if err != nil {
			return mapNotFound(err, errs.ErrSlotNotFound)
		}
		if slotSnap.LotID != in.LotID {
			return errs.ErrSlotNotFound
		}
		if !slotSnap.ToDomain().IsAvailable() {
			return errs.ErrSlotUnavailable
		}

		now := c.clock.Now()
		b, err := booking.NewBooking(c.billing, actor.ID, in.LotID, in.SlotID, vehicle, in.Hours, booking.NewMoney(lotSnap.HourlyRateCents), now)
		if err != nil {
			return errs.Mark(err, errs.ErrInvalidDuration)
		}

		if err := tx.Bookings().Create(ctx, b); err != nil {
			// the partial unique index on active bookings per slot backs up the row lock
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.ErrSlotUnavailable
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if err := tx.Slots().Reserve(ctx, in.SlotID, b.ID(), now); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return errs.ErrSlotUnavailable
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if err := enqueueBookingEvent(ctx, tx, booking.TopicBookingCreated, bookingEvent{
			BookingID:          b.ID(),
			UserID:             b.UserID(),
			LotID:              b.LotID(),
			SlotID:             b.SlotID(),
			Status:             b.Status().String(),
			EstimatedCostCents: b.EstimatedCost().Cents(),
			OccurredAt:         now,
		}, now); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		result = &CreateBookingResult{
			BookingID:     b.ID(),
			LotID:         b.LotID(),
			SlotID:        b.SlotID(),
			SlotNumber:    slotSnap.Number,
			StartTime:     b.StartTime(),
			EndTime:       b.EndTime(),
			EstimatedCost: b.EstimatedCost(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("booking created",
		"booking_id", result.BookingID,
		"user_id", actor.ID,
		"slot_id", result.SlotID,
		"estimated_cost", result.EstimatedCost.String())
	return result, nil
}

// CancelBooking cancels one of the actor's own bookings, or any booking when
// the actor is an admin. A booking owned by someone else is reported as not found.
func (c *bookingCommandsImpl) CancelBooking(ctx context.Context, actor user.Actor, bookingID uuid.UUID) (*SettleResult, error) {
	return c.cancel(ctx, actor, bookingID, func(snap *shared.BookingSnapshot) error {
		if !actor.CanAccess(snap.UserID) {
			return errs.ErrBookingNotFound
		}
		return nil
	})
}

func (c *bookingCommandsImpl) AdminCancelBooking(ctx context.Context, actor user.Actor, bookingID uuid.UUID) (*SettleResult, error) {
	if !actor.IsAdmin() {
		return nil, errs.ErrForbidden
	}
	return c.cancel(ctx, actor, bookingID, func(*shared.BookingSnapshot) error { return nil })
}

func (c *bookingCommandsImpl) cancel(
	ctx context.Context,
	actor user.Actor,
	bookingID uuid.UUID,
	authorize func(snap *shared.BookingSnapshot) error,
) (*SettleResult, error) {
	var result *SettleResult
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().LockBooking(ctx, bookingID)
		if err != nil {
			return mapNotFound(err, errs.ErrBookingNotFound)
		}
		if err := authorize(snap); err != nil {
			return err
		}
		if snap.Status != booking.StatusActive {
			return errs.ErrBookingNotActive
		}

		result, err = settle(ctx, tx, c.billing, c.logger, snap, c.clock.Now(), booking.StatusCancelled)
		if errs.Is(err, errs.ErrBookingAlreadyFinal) {
			return errs.ErrBookingNotActive
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("booking cancelled",
		"booking_id", bookingID,
		"actor_id", actor.ID,
		"actor_role", actor.Role.String(),
		"actual_cost", result.ActualCost.String())
	return result, nil
}

func mapNotFound(err, notFound error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return notFound
	}
	return errs.Mark(err, errs.ErrDatabaseOperationFailed)
}
