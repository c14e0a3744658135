//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"parking-booking/internal/domain/user"
	"parking-booking/internal/infra"
	"parking-booking/internal/pkg/errs"
	"parking-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBookingStore struct {
	byID map[uuid.UUID]*queries.BookingView
	rows []*queries.BookingView

	gotFilter queries.BookingFilter
	gotAfter  *queries.KeysetPosition
	gotLimit  int32
}

func (f *fakeBookingStore) FindByID(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return b, nil
}

func (f *fakeBookingStore) List(_ context.Context, filter queries.BookingFilter, after *queries.KeysetPosition, limit int32) ([]*queries.BookingView, error) {
	f.gotFilter, f.gotAfter, f.gotLimit = filter, after, limit
	if int(limit) < len(f.rows) {
		return f.rows[:limit], nil
	}
	return f.rows, nil
}

func viewsNewestFirst(n int, owner uuid.UUID) []*queries.BookingView {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	out := make([]*queries.BookingView, n)
	for i := range out {
		out[i] = &queries.BookingView{ID: uuid.New(), UserID: owner, CreatedAt: base.Add(-time.Duration(i) * time.Minute)}
	}
	return out
}

func TestBookingQueries_GetByID(t *testing.T) {
	owner := uuid.New()
	view := &queries.BookingView{ID: uuid.New(), UserID: owner}
	q := queries.NewBookingQueries(&fakeBookingStore{byID: map[uuid.UUID]*queries.BookingView{view.ID: view}})

	testCases := []struct {
		name  string
		actor user.Actor
		id    uuid.UUID
		errIs error
	}{
		{name: "owner sees booking", actor: user.NewActor(owner, user.RoleUser), id: view.ID},
		{name: "admin sees any booking", actor: user.NewActor(uuid.New(), user.RoleAdmin), id: view.ID},
		{name: "other user gets not found", actor: user.NewActor(uuid.New(), user.RoleUser), id: view.ID, errIs: errs.ErrBookingNotFound},
		{name: "unknown id", actor: user.NewActor(owner, user.RoleUser), id: uuid.New(), errIs: errs.ErrBookingNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := q.GetByID(context.Background(), tc.actor, tc.id)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, view.ID, got.ID)
		})
	}
}

func TestBookingQueries_ListMine(t *testing.T) {
	owner := uuid.New()
	store := &fakeBookingStore{rows: viewsNewestFirst(5, owner)}
	q := queries.NewBookingQueries(store)

	page, next, err := q.ListMine(context.Background(), user.NewActor(owner, user.RoleUser), nil, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.NotNil(t, next)

	require.NotNil(t, store.gotFilter.UserID)
	assert.Equal(t, owner, *store.gotFilter.UserID)
	assert.Nil(t, store.gotFilter.Status)
	assert.Nil(t, store.gotAfter)
	assert.Equal(t, int32(3), store.gotLimit)

	_, _, err = q.ListMine(context.Background(), user.NewActor(owner, user.RoleUser), next, 2)
	require.NoError(t, err)
	require.NotNil(t, store.gotAfter)
	assert.Equal(t, page[1].ID, store.gotAfter.ID)
	assert.True(t, store.gotAfter.CreatedAt.Equal(page[1].CreatedAt))
}

func TestBookingQueries_ListMine_LastPage(t *testing.T) {
	owner := uuid.New()
	q := queries.NewBookingQueries(&fakeBookingStore{rows: viewsNewestFirst(2, owner)})

	page, next, err := q.ListMine(context.Background(), user.NewActor(owner, user.RoleUser), nil, 2)
	require.NoError(t, err)
	assert.Len(t, page, 2)
	assert.Nil(t, next)
}

func TestBookingQueries_ListMine_InvalidCursor(t *testing.T) {
	q := queries.NewBookingQueries(&fakeBookingStore{})

	_, _, err := q.ListMine(context.Background(), user.NewActor(uuid.New(), user.RoleUser), &queries.Cursor{After: "%%%"}, 10)
	assert.True(t, errs.Is(err, queries.ErrInvalidCursor))
}

func TestBookingQueries_ListAll(t *testing.T) {
	store := &fakeBookingStore{rows: viewsNewestFirst(1, uuid.New())}
	q := queries.NewBookingQueries(store)
	status := "active"

	_, _, err := q.ListAll(context.Background(), user.NewActor(uuid.New(), user.RoleUser), &status, nil, 10)
	assert.ErrorIs(t, err, errs.ErrForbidden)

	page, next, err := q.ListAll(context.Background(), user.NewActor(uuid.New(), user.RoleAdmin), &status, nil, 0)
	require.NoError(t, err)
	assert.Len(t, page, 1)
	assert.Nil(t, next)
	assert.Nil(t, store.gotFilter.UserID)
	require.NotNil(t, store.gotFilter.Status)
	assert.Equal(t, "active", *store.gotFilter.Status)
	assert.Equal(t, int32(queries.DefaultListLimit+1), store.gotLimit)
}
