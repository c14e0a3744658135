//go:build unit

package commands_test

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"
	"time"

	"parking-booking/internal/domain/booking"
	"parking-booking/internal/domain/lot"
	"parking-booking/internal/domain/slot"
	"parking-booking/internal/infra"
	"parking-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// memUoW is an in-memory shared.UnitOfWork. Transactions are serialized and
// roll back to a snapshot on error, which stands in for the row locks and
// conditional updates of the PostgreSQL implementation.
type memUoW struct {
	mu       sync.Mutex
	lots     map[uuid.UUID]memLot
	slots    map[uuid.UUID]memSlot
	bookings map[uuid.UUID]memBooking
	jobs     []memJob

	failJobs bool
}

type memLot struct {
	id        uuid.UUID
	rateCents int64
	deletedAt *time.Time
}

type memSlot struct {
	id        uuid.UUID
	lotID     uuid.UUID
	number    int
	status    slot.Status
	bookingID *uuid.UUID
	deletedAt *time.Time
}

type memBooking struct {
	id          uuid.UUID
	userID      uuid.UUID
	lotID       uuid.UUID
	slotID      uuid.UUID
	endTime     time.Time
	actualStart *time.Time
	actualEnd   *time.Time
	estimated   int64
	actualCost  *int64
	status      booking.Status
}

type memJob struct {
	topic   string
	payload []byte
}

var errJobStoreDown = errors.New("notification store unavailable")

func newMemUoW() *memUoW {
	return &memUoW{
		lots:     map[uuid.UUID]memLot{},
		slots:    map[uuid.UUID]memSlot{},
		bookings: map[uuid.UUID]memBooking{},
	}
}

func (u *memUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	lots, slots, bookings, jobs := maps.Clone(u.lots), maps.Clone(u.slots), maps.Clone(u.bookings), slices.Clone(u.jobs)
	if err := fn(ctx, memTx{u}); err != nil {
		u.lots, u.slots, u.bookings, u.jobs = lots, slots, bookings, jobs
		return err
	}
	return nil
}

func (u *memUoW) CommandReads() shared.CommandReads {
	return memReads{u: u, lock: true}
}

// test helpers, called outside transactions

func (u *memUoW) addLot(rateCents int64, slots int) (uuid.UUID, []uuid.UUID) {
	u.mu.Lock()
	defer u.mu.Unlock()
	lotID := uuid.New()
	u.lots[lotID] = memLot{id: lotID, rateCents: rateCents}
	ids := make([]uuid.UUID, 0, slots)
	for n := 1; n <= slots; n++ {
		id := uuid.New()
		u.slots[id] = memSlot{id: id, lotID: lotID, number: n, status: slot.StatusVacant}
		ids = append(ids, id)
	}
	return lotID, ids
}

func (u *memUoW) slot(id uuid.UUID) memSlot {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.slots[id]
}

func (u *memUoW) booking(id uuid.UUID) memBooking {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.bookings[id]
}

func (u *memUoW) lot(id uuid.UUID) memLot {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.lots[id]
}

func (u *memUoW) bookingCount() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.bookings)
}

func (u *memUoW) topics() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]string, len(u.jobs))
	for i, j := range u.jobs {
		out[i] = j.topic
	}
	return out
}

func (u *memUoW) slotsOf(lotID uuid.UUID) []memSlot {
	u.mu.Lock()
	defer u.mu.Unlock()
	var out []memSlot
	for _, s := range u.slots {
		if s.lotID == lotID {
			out = append(out, s)
		}
	}
	slices.SortFunc(out, func(a, b memSlot) int { return a.number - b.number })
	return out
}

type memTx struct{ u *memUoW }

func (t memTx) Bookings() shared.BookingRepository           { return memBookings(t) }
func (t memTx) Slots() shared.SlotRepository                 { return memSlots(t) }
func (t memTx) Lots() shared.LotRepository                   { return memLots(t) }
func (t memTx) Notifications() shared.NotificationRepository { return memJobs(t) }
func (t memTx) Reads() shared.CommandReads                   { return memReads{u: t.u} }

func notFound(msg string) error { return infra.WrapRepoErr(msg, nil, infra.KindNotFound) }
func conflict(msg string) error { return infra.WrapRepoErr(msg, nil, infra.KindConflict) }

type memBookings struct{ u *memUoW }

func (r memBookings) Create(_ context.Context, b *booking.Booking) error {
	for _, other := range r.u.bookings {
		if other.slotID == b.SlotID() && other.status == booking.StatusActive {
			return infra.WrapRepoErr("active booking exists for slot", nil, infra.KindDuplicateKey)
		}
	}
	r.u.bookings[b.ID()] = memBooking{
		id:          b.ID(),
		userID:      b.UserID(),
		lotID:       b.LotID(),
		slotID:      b.SlotID(),
		endTime:     b.EndTime(),
		actualStart: b.ActualStart(),
		estimated:   b.EstimatedCost().Cents(),
		status:      b.Status(),
	}
	return nil
}

func (r memBookings) Settle(_ context.Context, id uuid.UUID, end time.Time, cost booking.Money, status booking.Status) error {
	b, ok := r.u.bookings[id]
	if !ok {
		return notFound("booking not found")
	}
	if b.status != booking.StatusActive {
		return conflict("booking not active")
	}
	cents := cost.Cents()
	b.status, b.actualEnd, b.actualCost = status, &end, &cents
	r.u.bookings[id] = b
	return nil
}

type memSlots struct{ u *memUoW }

func (r memSlots) CreateBatch(_ context.Context, slots []*slot.Slot) error {
	for _, s := range slots {
		r.u.slots[s.ID()] = memSlot{id: s.ID(), lotID: s.LotID(), number: s.Number(), status: s.Status()}
	}
	return nil
}

func (r memSlots) Reserve(_ context.Context, slotID, bookingID uuid.UUID, _ time.Time) error {
	s, ok := r.u.slots[slotID]
	if !ok || s.status != slot.StatusVacant || s.deletedAt != nil {
		return conflict("slot not vacant")
	}
	s.status, s.bookingID = slot.StatusBooked, &bookingID
	r.u.slots[slotID] = s
	return nil
}

func (r memSlots) Release(_ context.Context, slotID, bookingID uuid.UUID, _ time.Time) (bool, error) {
	s, ok := r.u.slots[slotID]
	if !ok {
		return false, notFound("slot not found")
	}
	if s.bookingID == nil || *s.bookingID != bookingID {
		return false, nil
	}
	s.status, s.bookingID = slot.StatusVacant, nil
	r.u.slots[slotID] = s
	return true, nil
}

func (r memSlots) SoftDelete(_ context.Context, slotID uuid.UUID, now time.Time) error {
	s, ok := r.u.slots[slotID]
	if !ok {
		return notFound("slot not found")
	}
	if s.status == slot.StatusBooked || s.deletedAt != nil {
		return conflict("slot booked or deleted")
	}
	s.status, s.deletedAt = slot.StatusDeleted, &now
	r.u.slots[slotID] = s
	return nil
}

func (r memSlots) Restore(_ context.Context, slotID uuid.UUID, _ time.Time) error {
	s, ok := r.u.slots[slotID]
	if !ok {
		return notFound("slot not found")
	}
	if s.deletedAt == nil {
		return conflict("slot not deleted")
	}
	s.status, s.deletedAt, s.bookingID = slot.StatusVacant, nil, nil
	r.u.slots[slotID] = s
	return nil
}

func (r memSlots) SoftDeleteByLot(_ context.Context, lotID uuid.UUID, now time.Time) (int64, error) {
	for _, s := range r.u.slots {
		if s.lotID == lotID && s.status == slot.StatusBooked {
			return 0, conflict("lot has booked slots")
		}
	}
	var n int64
	for id, s := range r.u.slots {
		if s.lotID == lotID && s.deletedAt == nil {
			s.status, s.deletedAt = slot.StatusDeleted, &now
			r.u.slots[id] = s
			n++
		}
	}
	return n, nil
}

func (r memSlots) RestoreByLot(_ context.Context, lotID uuid.UUID, deletedAt, _ time.Time) (int64, error) {
	var n int64
	for id, s := range r.u.slots {
		if s.lotID == lotID && s.deletedAt != nil && s.deletedAt.Equal(deletedAt) {
			s.status, s.deletedAt = slot.StatusVacant, nil
			r.u.slots[id] = s
			n++
		}
	}
	return n, nil
}

type memLots struct{ u *memUoW }

func (r memLots) Create(_ context.Context, l *lot.Lot) error {
	r.u.lots[l.ID()] = memLot{id: l.ID(), rateCents: l.HourlyRate().Cents()}
	return nil
}

func (r memLots) SoftDelete(_ context.Context, id uuid.UUID, now time.Time) error {
	l, ok := r.u.lots[id]
	if !ok || l.deletedAt != nil {
		return notFound("lot not found")
	}
	l.deletedAt = &now
	r.u.lots[id] = l
	return nil
}

func (r memLots) Restore(_ context.Context, id uuid.UUID, _ time.Time) error {
	l, ok := r.u.lots[id]
	if !ok {
		return notFound("lot not found")
	}
	if l.deletedAt == nil {
		return conflict("lot not deleted")
	}
	l.deletedAt = nil
	r.u.lots[id] = l
	return nil
}

type memJobs struct{ u *memUoW }

func (r memJobs) CreateJob(_ context.Context, _ string, topic string, payload []byte, _ time.Time) error {
	if r.u.failJobs {
		return infra.WrapRepoErr("failed to enqueue job", errJobStoreDown)
	}
	r.u.jobs = append(r.u.jobs, memJob{topic: topic, payload: payload})
	return nil
}

// memReads takes the store lock itself only when used outside Within.
type memReads struct {
	u    *memUoW
	lock bool
}

func (r memReads) guard() func() {
	if !r.lock {
		return func() {}
	}
	r.u.mu.Lock()
	return r.u.mu.Unlock
}

func (r memReads) LotByID(_ context.Context, id uuid.UUID) (*shared.LotSnapshot, error) {
	defer r.guard()()
	l, ok := r.u.lots[id]
	if !ok {
		return nil, notFound("lot not found")
	}
	return &shared.LotSnapshot{ID: l.id, HourlyRateCents: l.rateCents, DeletedAt: l.deletedAt}, nil
}

func (r memReads) LockLot(ctx context.Context, id uuid.UUID) (*shared.LotSnapshot, error) {
	return r.LotByID(ctx, id)
}

func (r memReads) LockSlot(_ context.Context, id uuid.UUID) (*shared.SlotSnapshot, error) {
	defer r.guard()()
	s, ok := r.u.slots[id]
	if !ok {
		return nil, notFound("slot not found")
	}
	return &shared.SlotSnapshot{
		ID:        s.id,
		LotID:     s.lotID,
		Number:    s.number,
		Status:    s.status,
		BookingID: s.bookingID,
		DeletedAt: s.deletedAt,
	}, nil
}

func (r memReads) LockBooking(_ context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	defer r.guard()()
	b, ok := r.u.bookings[id]
	if !ok {
		return nil, notFound("booking not found")
	}
	return &shared.BookingSnapshot{
		ID:              b.id,
		UserID:          b.userID,
		LotID:           b.lotID,
		SlotID:          b.slotID,
		Status:          b.status,
		EndTime:         b.endTime,
		ActualStart:     b.actualStart,
		HourlyRateCents: r.u.lots[b.lotID].rateCents,
	}, nil
}

func (r memReads) ExpiredBookingIDs(_ context.Context, now time.Time) ([]uuid.UUID, error) {
	defer r.guard()()
	var out []memBooking
	for _, b := range r.u.bookings {
		if b.status == booking.StatusActive && !b.endTime.After(now) {
			out = append(out, b)
		}
	}
	slices.SortFunc(out, func(a, b memBooking) int { return a.endTime.Compare(b.endTime) })
	ids := make([]uuid.UUID, len(out))
	for i, b := range out {
		ids[i] = b.id
	}
	return ids, nil
}

func (r memReads) CountActiveBookingsInLot(_ context.Context, lotID uuid.UUID) (int64, error) {
	defer r.guard()()
	var n int64
	for _, b := range r.u.bookings {
		if b.lotID == lotID && b.status == booking.StatusActive {
			n++
		}
	}
	return n, nil
}

func (r memReads) HasActiveBookingForSlot(_ context.Context, slotID uuid.UUID) (bool, error) {
	defer r.guard()()
	for _, b := range r.u.bookings {
		if b.slotID == slotID && b.status == booking.StatusActive {
			return true, nil
		}
	}
	return false, nil
}
