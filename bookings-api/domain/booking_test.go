package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo(t *testing.T) {
	cases := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusRejected, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusRejected, false},
		{StatusConfirmed, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusPending, false},
		{StatusRejected, StatusConfirmed, false},
		{StatusRejected, StatusCancelled, false},
		// Repeating the current status is a no-op success.
		{StatusPending, StatusPending, true},
		{StatusConfirmed, StatusConfirmed, true},
		{StatusCancelled, StatusCancelled, true},
		{StatusRejected, StatusRejected, true},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestParseStatus(t *testing.T) {
	status, ok := ParseStatus("confirmed")
	assert.True(t, ok)
	assert.Equal(t, StatusConfirmed, status)

	_, ok = ParseStatus("DELETED")
	assert.False(t, ok)
}

func TestOverlaps_InclusiveBounds(t *testing.T) {
	day := func(d string) time.Time {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			t.Fatal(err)
		}
		return parsed
	}

	booking := &Booking{StartDate: day("2025-06-01"), EndDate: day("2025-06-10")}

	// Touching the boundary counts as overlap on both sides.
	assert.True(t, booking.Overlaps(day("2025-06-10"), day("2025-06-15")))
	assert.True(t, booking.Overlaps(day("2025-05-20"), day("2025-06-01")))
	assert.True(t, booking.Overlaps(day("2025-06-03"), day("2025-06-05")))
	assert.True(t, booking.Overlaps(day("2025-05-01"), day("2025-07-01")))

	assert.False(t, booking.Overlaps(day("2025-06-11"), day("2025-06-15")))
	assert.False(t, booking.Overlaps(day("2025-05-01"), day("2025-05-31")))
}
