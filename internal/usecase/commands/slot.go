package commands

import (
	"context"
	"log/slog"

	"parking-booking/internal/domain/slot"
	"parking-booking/internal/domain/user"
	"parking-booking/internal/infra"
	"parking-booking/internal/pkg/clock"
	"parking-booking/internal/pkg/errs"
	"parking-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type SlotCommands interface {
	SoftDeleteSlot(ctx context.Context, actor user.Actor, slotID uuid.UUID) error
	RestoreSlot(ctx context.Context, actor user.Actor, slotID uuid.UUID) error
}

type slotCommandsImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	logger *slog.Logger
}

func NewSlotCommands(uow shared.UnitOfWork, clock clock.Clock, logger *slog.Logger) SlotCommands {
	return &slotCommandsImpl{
		uow:    uow,
		clock:  clock,
		logger: logger,
	}
}

func (c *slotCommandsImpl) SoftDeleteSlot(ctx context.Context, actor user.Actor, slotID uuid.UUID) error {
	if !actor.IsAdmin() {
		return errs.ErrForbidden
	}

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().LockSlot(ctx, slotID)
		if err != nil {
			return mapNotFound(err, errs.ErrSlotNotFound)
		}

		s := snap.ToDomain()
		if s.IsDeleted() {
			return nil
		}
		now := c.clock.Now()
		if err := s.SoftDelete(now); err != nil {
			return errs.ErrSlotHasActiveBooking
		}

		if err := tx.Slots().SoftDelete(ctx, slotID, now); err != nil {
			return mapSlotWriteErr(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	c.logger.Info("slot soft-deleted", "slot_id", slotID, "actor_id", actor.ID)
	return nil
}

// RestoreSlot resets a deleted slot to vacant. It is refused while an active
// booking still references the slot, so a live booking is never orphaned.
func (c *slotCommandsImpl) RestoreSlot(ctx context.Context, actor user.Actor, slotID uuid.UUID) error {
	if !actor.IsAdmin() {
		return errs.ErrForbidden
	}

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().LockSlot(ctx, slotID)
		if err != nil {
			return mapNotFound(err, errs.ErrSlotNotFound)
		}

		now := c.clock.Now()
		if err := snap.ToDomain().Restore(now); err != nil {
			if errs.Is(err, slot.ErrNotDeleted) {
				return errs.ErrSlotNotDeleted
			}
			return errs.Mark(err, errs.ErrDomainValidation)
		}

		active, err := tx.Reads().HasActiveBookingForSlot(ctx, slotID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if active {
			return errs.ErrSlotHasActiveBooking
		}

		if err := tx.Slots().Restore(ctx, slotID, now); err != nil {
			return mapSlotWriteErr(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	c.logger.Info("slot restored", "slot_id", slotID, "actor_id", actor.ID)
	return nil
}

func mapSlotWriteErr(err error) error {
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return errs.ErrSlotNotFound
	case infra.IsKind(err, infra.KindConflict):
		return errs.ErrSlotHasActiveBooking
	default:
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
}
