package commands

import (
	"context"
	"log/slog"

	"parking-booking/internal/domain/booking"
	"parking-booking/internal/domain/lot"
	"parking-booking/internal/domain/slot"
	"parking-booking/internal/domain/user"
	"parking-booking/internal/infra"
	"parking-booking/internal/pkg/clock"
	"parking-booking/internal/pkg/errs"
	"parking-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateLotInput struct {
	Name         string
	Location     string
	PricePerHour string
	TotalSlots   int
}

type CreateLotResult struct {
	LotID     uuid.UUID
	SlotCount int
}

type LotCommands interface {
	CreateLot(ctx context.Context, actor user.Actor, in CreateLotInput) (*CreateLotResult, error)
	DeleteLot(ctx context.Context, actor user.Actor, lotID uuid.UUID) error
	RestoreLot(ctx context.Context, actor user.Actor, lotID uuid.UUID) (int64, error)
}

type lotCommandsImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	logger *slog.Logger
}

func NewLotCommands(uow shared.UnitOfWork, clock clock.Clock, logger *slog.Logger) LotCommands {
	return &lotCommandsImpl{
		uow:    uow,
		clock:  clock,
		logger: logger,
	}
}

// CreateLot provisions a lot with slots numbered 1..TotalSlots.
func (c *lotCommandsImpl) CreateLot(ctx context.Context, actor user.Actor, in CreateLotInput) (*CreateLotResult, error) {
	if !actor.IsAdmin() {
		return nil, errs.ErrForbidden
	}

	rate, err := booking.ParseMoney(in.PricePerHour)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	if err := lot.ValidateSlotCount(in.TotalSlots); err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	now := c.clock.Now()
	l, err := lot.NewLot(in.Name, in.Location, rate, now)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	slots := make([]*slot.Slot, 0, in.TotalSlots)
	for n := 1; n <= in.TotalSlots; n++ {
		s, err := slot.NewSlot(l.ID(), n, now)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrDomainValidation)
		}
		slots = append(slots, s)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Lots().Create(ctx, l); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := tx.Slots().CreateBatch(ctx, slots); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("parking lot created",
		"lot_id", l.ID(),
		"slots", len(slots),
		"price_per_hour", rate.String(),
		"actor_id", actor.ID)
	return &CreateLotResult{LotID: l.ID(), SlotCount: len(slots)}, nil
}

// DeleteLot soft-deletes a lot and every live slot in it. Any active booking
// in the lot blocks the deletion.
func (c *lotCommandsImpl) DeleteLot(ctx context.Context, actor user.Actor, lotID uuid.UUID) error {
	if !actor.IsAdmin() {
		return errs.ErrForbidden
	}

	var slotsDeleted int64
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().LockLot(ctx, lotID)
		if err != nil {
			return mapNotFound(err, errs.ErrLotNotFound)
		}
		if snap.IsDeleted() {
			return errs.ErrLotNotFound
		}

		active, err := tx.Reads().CountActiveBookingsInLot(ctx, lotID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if active > 0 {
			return errs.ErrLotHasActiveBookings
		}

		now := c.clock.Now()
		if err := tx.Lots().SoftDelete(ctx, lotID, now); err != nil {
			return mapNotFound(err, errs.ErrLotNotFound)
		}
		slotsDeleted, err = tx.Slots().SoftDeleteByLot(ctx, lotID, now)
		if err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return errs.ErrLotHasActiveBookings
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return err
	}

	c.logger.Info("parking lot soft-deleted", "lot_id", lotID, "slots", slotsDeleted, "actor_id", actor.ID)
	return nil
}

// RestoreLot undeletes the lot and the slots that were deleted with it.
// Slots deleted individually beforehand stay deleted.
func (c *lotCommandsImpl) RestoreLot(ctx context.Context, actor user.Actor, lotID uuid.UUID) (int64, error) {
	if !actor.IsAdmin() {
		return 0, errs.ErrForbidden
	}

	var restored int64
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().LockLot(ctx, lotID)
		if err != nil {
			return mapNotFound(err, errs.ErrLotNotFound)
		}
		if !snap.IsDeleted() {
			return errs.ErrLotNotDeleted
		}

		now := c.clock.Now()
		if err := tx.Lots().Restore(ctx, lotID, now); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return errs.ErrLotNotDeleted
			}
			return mapNotFound(err, errs.ErrLotNotFound)
		}
		restored, err = tx.Slots().RestoreByLot(ctx, lotID, *snap.DeletedAt, now)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	c.logger.Info("parking lot restored", "lot_id", lotID, "slots", restored, "actor_id", actor.ID)
	return restored, nil
}
