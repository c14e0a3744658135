//go:build unit

package commands_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"parking-booking/internal/domain/booking"
	"parking-booking/internal/domain/slot"
	"parking-booking/internal/domain/user"
	"parking-booking/internal/pkg/clock"
	"parking-booking/internal/pkg/errs"
	"parking-booking/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var t0 = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type BookingCommandsTestSuite struct {
	suite.Suite
	uow      *memUoW
	clock    *clock.MockClock
	bookings commands.BookingCommands
	sweeper  commands.ExpirySweeper
	owner    user.Actor
	admin    user.Actor
}

func (s *BookingCommandsTestSuite) SetupTest() {
	s.uow = newMemUoW()
	s.clock = clock.NewMockClock(t0)
	calc := booking.NewBillingCalculator()
	s.bookings = commands.NewBookingCommands(s.uow, s.clock, calc, discardLogger())
	s.sweeper = commands.NewExpirySweeper(s.uow, s.clock, calc, discardLogger())
	s.owner = user.NewActor(uuid.New(), user.RoleUser)
	s.admin = user.NewActor(uuid.New(), user.RoleAdmin)
}

func TestBookingCommandsSuite(t *testing.T) {
	suite.Run(t, new(BookingCommandsTestSuite))
}

func input(lotID, slotID uuid.UUID, hours int) commands.CreateBookingInput {
	return commands.CreateBookingInput{
		LotID:         lotID,
		SlotID:        slotID,
		VehicleNumber: "ABC-1234",
		VehicleType:   "car",
		Hours:         hours,
	}
}

// ================================================================================
// CreateBooking
// ================================================================================

func (s *BookingCommandsTestSuite) TestCreateBooking() {
	s.Run("estimate is rate times hours and the slot points at the booking", func() {
		lotID, slots := s.uow.addLot(500, 1)

		res, err := s.bookings.CreateBooking(context.Background(), s.owner, input(lotID, slots[0], 2))
		s.Require().NoError(err)
		s.Equal("10.00", res.EstimatedCost.String())
		s.Equal(1, res.SlotNumber)
		s.True(res.StartTime.Equal(t0))
		s.True(res.EndTime.Equal(t0.Add(2 * time.Hour)))

		sl := s.uow.slot(slots[0])
		s.Equal(slot.StatusBooked, sl.status)
		s.Require().NotNil(sl.bookingID)
		s.Equal(res.BookingID, *sl.bookingID)

		b := s.uow.booking(res.BookingID)
		s.Equal(booking.StatusActive, b.status)
		s.Equal(s.owner.ID, b.userID)
		s.Require().NotNil(b.actualStart)
		s.True(b.actualStart.Equal(t0))

		s.Equal([]string{booking.TopicBookingCreated}, s.uow.topics())
	})

	s.Run("event payload carries the booking identity and estimate", func() {
		lotID, slots := s.uow.addLot(250, 1)
		res, err := s.bookings.CreateBooking(context.Background(), s.owner, input(lotID, slots[0], 3))
		s.Require().NoError(err)

		var ev map[string]any
		s.Require().NoError(json.Unmarshal(s.uow.jobs[len(s.uow.jobs)-1].payload, &ev))
		s.Equal(res.BookingID.String(), ev["booking_id"])
		s.Equal("active", ev["status"])
		s.EqualValues(750, ev["estimated_cost_cents"])
	})

	s.Run("duration outside 1..MaxHours is rejected before any write", func() {
		lotID, slots := s.uow.addLot(500, 1)
		for _, h := range []int{0, -1, booking.MaxHours + 1} {
			_, err := s.bookings.CreateBooking(context.Background(), s.owner, input(lotID, slots[0], h))
			s.ErrorIs(err, errs.ErrInvalidDuration, "hours=%d", h)
		}
		s.Equal(slot.StatusVacant, s.uow.slot(slots[0]).status)
	})

	s.Run("blank vehicle is a validation error", func() {
		lotID, slots := s.uow.addLot(500, 1)
		in := input(lotID, slots[0], 1)
		in.VehicleNumber = ""
		_, err := s.bookings.CreateBooking(context.Background(), s.owner, in)
		s.True(errs.Is(err, errs.ErrDomainValidation))
	})

	s.Run("unknown or deleted lot is not found", func() {
		_, err := s.bookings.CreateBooking(context.Background(), s.owner, input(uuid.New(), uuid.New(), 1))
		s.ErrorIs(err, errs.ErrLotNotFound)

		lotID, slots := s.uow.addLot(500, 1)
		s.Require().NoError(commands.NewLotCommands(s.uow, s.clock, discardLogger()).
			DeleteLot(context.Background(), s.admin, lotID))
		_, err = s.bookings.CreateBooking(context.Background(), s.owner, input(lotID, slots[0], 1))
		s.ErrorIs(err, errs.ErrLotNotFound)
	})

	s.Run("slot from a different lot is not found", func() {
		lotA, _ := s.uow.addLot(500, 1)
		_, slotsB := s.uow.addLot(500, 1)
		_, err := s.bookings.CreateBooking(context.Background(), s.owner, input(lotA, slotsB[0], 1))
		s.ErrorIs(err, errs.ErrSlotNotFound)
	})

	s.Run("booked slot is unavailable and nothing is written", func() {
		lotID, slots := s.uow.addLot(500, 1)
		_, err := s.bookings.CreateBooking(context.Background(), s.owner, input(lotID, slots[0], 1))
		s.Require().NoError(err)
		before := s.uow.bookingCount()

		other := user.NewActor(uuid.New(), user.RoleUser)
		_, err = s.bookings.CreateBooking(context.Background(), other, input(lotID, slots[0], 1))
		s.ErrorIs(err, errs.ErrSlotUnavailable)
		s.Equal(before, s.uow.bookingCount())
	})

	s.Run("failure after the slot is reserved rolls everything back", func() {
		lotID, slots := s.uow.addLot(500, 1)
		before := s.uow.bookingCount()
		s.uow.failJobs = true
		defer func() { s.uow.failJobs = false }()

		_, err := s.bookings.CreateBooking(context.Background(), s.owner, input(lotID, slots[0], 1))
		s.True(errs.Is(err, errs.ErrDatabaseOperationFailed))
		s.Equal(before, s.uow.bookingCount())
		sl := s.uow.slot(slots[0])
		s.Equal(slot.StatusVacant, sl.status)
		s.Nil(sl.bookingID)
	})
}

func TestCreateBooking_ConcurrentRequestsForOneSlot(t *testing.T) {
	uow := newMemUoW()
	clk := clock.NewMockClock(t0)
	cmds := commands.NewBookingCommands(uow, clk, booking.NewBillingCalculator(), discardLogger())
	lotID, slots := uow.addLot(500, 1)

	const n = 32
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded []uuid.UUID
		failures  int
	)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := cmds.CreateBooking(context.Background(), user.NewActor(uuid.New(), user.RoleUser), input(lotID, slots[0], 1))
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				assert.ErrorIs(t, err, errs.ErrSlotUnavailable)
				failures++
				return
			}
			succeeded = append(succeeded, res.BookingID)
		}()
	}
	wg.Wait()

	require.Len(t, succeeded, 1)
	assert.Equal(t, n-1, failures)
	sl := uow.slot(slots[0])
	require.NotNil(t, sl.bookingID)
	assert.Equal(t, succeeded[0], *sl.bookingID)
	assert.Equal(t, 1, uow.bookingCount())
}

// ================================================================================
// CancelBooking / AdminCancelBooking
// ================================================================================

func (s *BookingCommandsTestSuite) TestCancelBooking() {
	s.Run("owner cancel bills elapsed time rounded up and frees the slot", func() {
		lotID, slots := s.uow.addLot(500, 1)
		res, err := s.bookings.CreateBooking(context.Background(), s.owner, input(lotID, slots[0], 4))
		s.Require().NoError(err)

		s.clock.Add(61 * time.Minute)
		settled, err := s.bookings.CancelBooking(context.Background(), s.owner, res.BookingID)
		s.Require().NoError(err)
		s.Equal(booking.StatusCancelled, settled.Status)
		s.Equal("10.00", settled.ActualCost.String())
		s.True(settled.ActualEnd.Equal(s.clock.Now()))

		b := s.uow.booking(res.BookingID)
		s.Equal(booking.StatusCancelled, b.status)
		s.Require().NotNil(b.actualCost)
		s.Equal(int64(1000), *b.actualCost)
		s.Equal(slot.StatusVacant, s.uow.slot(slots[0]).status)
		s.Contains(s.uow.topics(), booking.TopicBookingCancelled)
	})

	s.Run("cancel right after booking bills the one hour minimum", func() {
		lotID, slots := s.uow.addLot(500, 1)
		res, err := s.bookings.CreateBooking(context.Background(), s.owner, input(lotID, slots[0], 2))
		s.Require().NoError(err)

		settled, err := s.bookings.CancelBooking(context.Background(), s.owner, res.BookingID)
		s.Require().NoError(err)
		s.Equal("5.00", settled.ActualCost.String())
	})

	s.Run("second cancel is not active and leaves the first result intact", func() {
		lotID, slots := s.uow.addLot(500, 1)
		res, err := s.bookings.CreateBooking(context.Background(), s.owner, input(lotID, slots[0], 2))
		s.Require().NoError(err)
		_, err = s.bookings.CancelBooking(context.Background(), s.owner, res.BookingID)
		s.Require().NoError(err)

		s.clock.Add(5 * time.Hour)
		_, err = s.bookings.CancelBooking(context.Background(), s.owner, res.BookingID)
		s.ErrorIs(err, errs.ErrBookingNotActive)
		b := s.uow.booking(res.BookingID)
		s.Equal(int64(500), *b.actualCost)
	})

	s.Run("another user's booking is reported as not found", func() {
		lotID, slots := s.uow.addLot(500, 1)
		res, err := s.bookings.CreateBooking(context.Background(), s.owner, input(lotID, slots[0], 2))
		s.Require().NoError(err)

		stranger := user.NewActor(uuid.New(), user.RoleUser)
		_, err = s.bookings.CancelBooking(context.Background(), stranger, res.BookingID)
		s.ErrorIs(err, errs.ErrBookingNotFound)
		s.Equal(booking.StatusActive, s.uow.booking(res.BookingID).status)
	})

	s.Run("admin may cancel another user's booking through the regular path", func() {
		lotID, slots := s.uow.addLot(500, 1)
		res, err := s.bookings.CreateBooking(context.Background(), s.owner, input(lotID, slots[0], 2))
		s.Require().NoError(err)

		settled, err := s.bookings.CancelBooking(context.Background(), s.admin, res.BookingID)
		s.Require().NoError(err)
		s.Equal(booking.StatusCancelled, settled.Status)
		s.Equal(booking.StatusCancelled, s.uow.booking(res.BookingID).status)
		s.Equal(slot.StatusVacant, s.uow.slot(slots[0]).status)
	})

	s.Run("unknown booking is not found", func() {
		_, err := s.bookings.CancelBooking(context.Background(), s.owner, uuid.New())
		s.ErrorIs(err, errs.ErrBookingNotFound)
	})

	s.Run("admin cancels any booking; a regular user may not use the admin path", func() {
		lotID, slots := s.uow.addLot(500, 1)
		res, err := s.bookings.CreateBooking(context.Background(), s.owner, input(lotID, slots[0], 2))
		s.Require().NoError(err)

		_, err = s.bookings.AdminCancelBooking(context.Background(), s.owner, res.BookingID)
		s.ErrorIs(err, errs.ErrForbidden)

		settled, err := s.bookings.AdminCancelBooking(context.Background(), s.admin, res.BookingID)
		s.Require().NoError(err)
		s.Equal(booking.StatusCancelled, settled.Status)
		s.Equal(slot.StatusVacant, s.uow.slot(slots[0]).status)
	})
}

// ================================================================================
// SweepExpired
// ================================================================================

func (s *BookingCommandsTestSuite) TestSweepExpired() {
	s.Run("booking of 2h at 5/h settled after 3h costs 15 and the slot is vacant", func() {
		lotID, slots := s.uow.addLot(500, 1)
		res, err := s.bookings.CreateBooking(context.Background(), s.owner, input(lotID, slots[0], 2))
		s.Require().NoError(err)
		s.Equal("10.00", res.EstimatedCost.String())

		s.clock.Add(3 * time.Hour)
		n, err := s.sweeper.SweepExpired(context.Background())
		s.Require().NoError(err)
		s.Equal(1, n)

		b := s.uow.booking(res.BookingID)
		s.Equal(booking.StatusCompleted, b.status)
		s.Require().NotNil(b.actualCost)
		s.Equal(int64(1500), *b.actualCost)
		s.True(b.actualEnd.Equal(t0.Add(3 * time.Hour)))
		s.Equal(slot.StatusVacant, s.uow.slot(slots[0]).status)

		n, err = s.sweeper.SweepExpired(context.Background())
		s.Require().NoError(err)
		s.Equal(0, n)
		s.Equal(int64(1500), *s.uow.booking(res.BookingID).actualCost)
	})

	s.Run("booking that has not reached its end is left alone", func() {
		lotID, slots := s.uow.addLot(500, 1)
		res, err := s.bookings.CreateBooking(context.Background(), s.owner, input(lotID, slots[0], 2))
		s.Require().NoError(err)

		s.clock.Add(2*time.Hour - time.Second)
		n, err := s.sweeper.SweepExpired(context.Background())
		s.Require().NoError(err)
		s.Equal(0, n)
		s.Equal(booking.StatusActive, s.uow.booking(res.BookingID).status)

		s.clock.Add(time.Second)
		n, err = s.sweeper.SweepExpired(context.Background())
		s.Require().NoError(err)
		s.Equal(1, n)
	})

	s.Run("cancelled bookings are never swept", func() {
		lotID, slots := s.uow.addLot(500, 1)
		res, err := s.bookings.CreateBooking(context.Background(), s.owner, input(lotID, slots[0], 1))
		s.Require().NoError(err)
		_, err = s.bookings.CancelBooking(context.Background(), s.owner, res.BookingID)
		s.Require().NoError(err)

		s.clock.Add(4 * time.Hour)
		n, err := s.sweeper.SweepExpired(context.Background())
		s.Require().NoError(err)
		s.Equal(0, n)
		s.Equal(booking.StatusCancelled, s.uow.booking(res.BookingID).status)
	})

	s.Run("freed slot can be booked again", func() {
		lotID, slots := s.uow.addLot(500, 1)
		_, err := s.bookings.CreateBooking(context.Background(), s.owner, input(lotID, slots[0], 1))
		s.Require().NoError(err)

		s.clock.Add(time.Hour)
		_, err = s.sweeper.SweepExpired(context.Background())
		s.Require().NoError(err)

		_, err = s.bookings.CreateBooking(context.Background(), s.owner, input(lotID, slots[0], 1))
		s.NoError(err)
	})
}

func TestSweepExpired_ConcurrentSweepsSettleOnce(t *testing.T) {
	uow := newMemUoW()
	clk := clock.NewMockClock(t0)
	calc := booking.NewBillingCalculator()
	cmds := commands.NewBookingCommands(uow, clk, calc, discardLogger())
	sweeper := commands.NewExpirySweeper(uow, clk, calc, discardLogger())

	lotID, slots := uow.addLot(500, 5)
	for _, id := range slots {
		_, err := cmds.CreateBooking(context.Background(), user.NewActor(uuid.New(), user.RoleUser), input(lotID, id, 1))
		require.NoError(t, err)
	}
	clk.Add(2 * time.Hour)

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		total int
	)
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := sweeper.SweepExpired(context.Background())
			assert.NoError(t, err)
			mu.Lock()
			total += n
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, len(slots), total)
	completed := 0
	for _, topic := range uow.topics() {
		if topic == booking.TopicBookingCompleted {
			completed++
		}
	}
	assert.Equal(t, len(slots), completed)
}
