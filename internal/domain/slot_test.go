package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlotState_CanTransitionTo(t *testing.T) {
	testCases := []struct {
		name string
		from SlotState
		to   SlotState
		want bool
	}{
		{name: "requested to confirmed", from: SlotStateRequested, to: SlotStateConfirmed, want: true},
		{name: "confirmed to authorized", from: SlotStateConfirmed, to: SlotStateAuthorized, want: true},
		{name: "authorized to completed", from: SlotStateAuthorized, to: SlotStateCompleted, want: true},
		{name: "requested to cancelled", from: SlotStateRequested, to: SlotStateCancelled, want: true},
		{name: "confirmed to cancelled", from: SlotStateConfirmed, to: SlotStateCancelled, want: true},
		{name: "authorized to cancelled", from: SlotStateAuthorized, to: SlotStateCancelled, want: true},
		{name: "requested to completed skips states", from: SlotStateRequested, to: SlotStateCompleted, want: false},
		{name: "requested to authorized skips states", from: SlotStateRequested, to: SlotStateAuthorized, want: false},
		{name: "confirmed back to requested", from: SlotStateConfirmed, to: SlotStateRequested, want: false},
		{name: "completed is terminal", from: SlotStateCompleted, to: SlotStateCancelled, want: false},
		{name: "cancelled is terminal", from: SlotStateCancelled, to: SlotStateRequested, want: false},
		{name: "same state is a no-op", from: SlotStateConfirmed, to: SlotStateConfirmed, want: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestSlotState_Terminal(t *testing.T) {
	assert.True(t, SlotStateCompleted.Terminal())
	assert.True(t, SlotStateCancelled.Terminal())
	assert.False(t, SlotStateRequested.Terminal())
	assert.False(t, SlotStateConfirmed.Terminal())
	assert.False(t, SlotStateAuthorized.Terminal())
}

func TestSlot_Window(t *testing.T) {
	plannedStart := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	plannedEnd := plannedStart.Add(2 * time.Hour)
	slot := Slot{PlannedStart: plannedStart, PlannedEnd: plannedEnd}

	start, end := slot.Window()
	assert.Equal(t, plannedStart, start)
	assert.Equal(t, plannedEnd, end)

	actualStart := plannedStart.Add(30 * time.Minute)
	actualEnd := plannedEnd.Add(time.Hour)
	slot.ActualStart = &actualStart

	// A single recorded bound is not enough to switch to the actual window.
	start, end = slot.Window()
	assert.Equal(t, plannedStart, start)

	slot.ActualEnd = &actualEnd
	start, end = slot.Window()
	assert.Equal(t, actualStart, start)
	assert.Equal(t, actualEnd, end)
}
