//go:build unit

package lot_test

import (
	"testing"
	"time"

	"parking-booking/internal/domain/booking"
	"parking-booking/internal/domain/lot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLot(t *testing.T) {
	now := time.Now()

	l, err := lot.NewLot("  Central  ", "Main St", booking.NewMoney(500), now)
	require.NoError(t, err)
	assert.Equal(t, "Central", l.Name())
	assert.False(t, l.IsDeleted())

	_, err = lot.NewLot("", "x", booking.NewMoney(500), now)
	assert.ErrorIs(t, err, lot.ErrInvalidName)

	_, err = lot.NewLot("A", "x", booking.NewMoney(0), now)
	assert.ErrorIs(t, err, lot.ErrInvalidRate)
}

func TestValidateSlotCount(t *testing.T) {
	assert.NoError(t, lot.ValidateSlotCount(1))
	assert.NoError(t, lot.ValidateSlotCount(lot.MaxSlots))
	assert.ErrorIs(t, lot.ValidateSlotCount(0), lot.ErrInvalidSlotCount)
	assert.ErrorIs(t, lot.ValidateSlotCount(lot.MaxSlots+1), lot.ErrInvalidSlotCount)
}
