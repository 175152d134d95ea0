package handler

import (
	"testing"

	"github.com/iliyamo/rental-marketplace/internal/model"
)

func TestHostTransitionAllowed(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{model.BookingPending, model.BookingConfirmed, true},
		{model.BookingPending, model.BookingCancelled, true},
		{model.BookingPending, model.BookingCompleted, false},
		{model.BookingConfirmed, model.BookingCancelled, true},
		{model.BookingConfirmed, model.BookingCompleted, true},
		{model.BookingConfirmed, model.BookingConfirmed, false},
		// Terminal states stay terminal.
		{model.BookingCancelled, model.BookingConfirmed, false},
		{model.BookingCancelled, model.BookingCompleted, false},
		{model.BookingCompleted, model.BookingCancelled, false},
	}
	for _, tc := range cases {
		if got := hostTransitionAllowed(tc.from, tc.to); got != tc.want {
			t.Errorf("hostTransitionAllowed(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}
