//go:build unit

package booking_test

import (
	"testing"

	"parking-booking/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		wantCents int64
		wantErr   bool
	}{
		{name: "integer amount", input: "5", wantCents: 500},
		{name: "two decimals", input: "12.50", wantCents: 1250},
		{name: "one decimal", input: "0.1", wantCents: 10},
		{name: "trailing zeros beyond cents are fine", input: "3.000", wantCents: 300},
		{name: "sub-cent precision is rejected", input: "0.005", wantErr: true},
		{name: "negative is rejected", input: "-1", wantErr: true},
		{name: "garbage is rejected", input: "abc", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := booking.ParseMoney(tc.input)
			if tc.wantErr {
				require.ErrorIs(t, err, booking.ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantCents, m.Cents())
		})
	}
}

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "0.00", booking.NewMoney(0).String())
	assert.Equal(t, "15.00", booking.NewMoney(1500).String())
	assert.Equal(t, "1234.05", booking.NewMoney(123405).String())
	assert.Equal(t, "30.00", booking.NewMoney(1000).Add(booking.NewMoney(500)).Times(2).String())
}
