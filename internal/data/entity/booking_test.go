package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatus_Transitions(t *testing.T) {
	testCases := []struct {
		from, to BookingStatus
		allowed  bool
	}{
		{BookingStatusPendingPayment, BookingStatusConfirmed, true},
		{BookingStatusPendingPayment, BookingStatusCancelled, true},
		{BookingStatusConfirmed, BookingStatusCancelled, true},
		{BookingStatusConfirmed, BookingStatusPendingPayment, false},
		{BookingStatusCancelled, BookingStatusConfirmed, false},
		{BookingStatusCancelled, BookingStatusPendingPayment, false},
		{BookingStatusCancelled, BookingStatusCancelled, false},
		{BookingStatusPendingPayment, BookingStatusPendingPayment, false},
	}

	for _, tc := range testCases {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestBookingStatus_Terminal(t *testing.T) {
	assert.True(t, BookingStatusCancelled.IsTerminal())
	assert.False(t, BookingStatusConfirmed.IsTerminal())
	assert.False(t, BookingStatusPendingPayment.IsTerminal())
	assert.False(t, BookingStatus("expired").IsValid())
}
