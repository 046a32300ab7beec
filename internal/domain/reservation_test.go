package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReservationStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name   string
		from   ReservationStatus
		to     ReservationStatus
		wantOk bool
	}{
		{"reserved to paid", ReservationStatusReserved, ReservationStatusPaid, true},
		{"reserved to cancelled", ReservationStatusReserved, ReservationStatusCancelled, true},
		{"paid to cancelled", ReservationStatusPaid, ReservationStatusCancelled, true},
		{"paid to paid is idempotent", ReservationStatusPaid, ReservationStatusPaid, true},
		{"paid to reserved", ReservationStatusPaid, ReservationStatusReserved, false},
		{"cancelled to paid", ReservationStatusCancelled, ReservationStatusPaid, false},
		{"cancelled to reserved", ReservationStatusCancelled, ReservationStatusReserved, false},
		{"cancelled to cancelled", ReservationStatusCancelled, ReservationStatusCancelled, false},
		{"unknown status", ReservationStatus("bogus"), ReservationStatusPaid, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantOk, tt.from.CanTransitionTo(tt.to))
		})
	}
}
