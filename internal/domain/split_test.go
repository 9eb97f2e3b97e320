package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ADS-SchedulingService/pkg/types"
)

func makeSlot() *AvailabilitySlot {
	slotDate := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	return &AvailabilitySlot{
		ID:           10,
		InstructorID: 7,
		SlotDate:     &slotDate,
		StartTime:    "09:00",
		EndTime:      "12:00",
		LicenseTypes: []string{"B", "BE"},
	}
}

func TestSplitSlot_LessonAtEnd(t *testing.T) {
	slot := makeSlot()

	residuals := SplitSlot(slot, "11:00", "12:00")
	require.Len(t, residuals, 1)

	assert.Equal(t, types.TimeString("09:00"), residuals[0].StartTime)
	assert.Equal(t, types.TimeString("11:00"), residuals[0].EndTime)
	assert.Equal(t, slot.InstructorID, residuals[0].InstructorID)
	assert.Equal(t, slot.SlotDate, residuals[0].SlotDate)
	assert.False(t, residuals[0].IsBooked)
	assert.False(t, residuals[0].IsRecurring)
}

func TestSplitSlot_LessonAtStart(t *testing.T) {
	slot := makeSlot()

	residuals := SplitSlot(slot, "09:00", "10:00")
	require.Len(t, residuals, 1)

	assert.Equal(t, types.TimeString("10:00"), residuals[0].StartTime)
	assert.Equal(t, types.TimeString("12:00"), residuals[0].EndTime)
}

func TestSplitSlot_LessonInMiddle(t *testing.T) {
	slot := makeSlot()

	residuals := SplitSlot(slot, "10:00", "11:00")
	require.Len(t, residuals, 2)

	assert.Equal(t, types.TimeString("09:00"), residuals[0].StartTime)
	assert.Equal(t, types.TimeString("10:00"), residuals[0].EndTime)
	assert.Equal(t, types.TimeString("11:00"), residuals[1].StartTime)
	assert.Equal(t, types.TimeString("12:00"), residuals[1].EndTime)
}

func TestSplitSlot_LessonFillsSlot(t *testing.T) {
	slot := makeSlot()

	residuals := SplitSlot(slot, "09:00", "12:00")
	assert.Empty(t, residuals)
}

func TestSplitSlot_CopiesLicenseTypes(t *testing.T) {
	slot := makeSlot()

	residuals := SplitSlot(slot, "11:00", "12:00")
	require.Len(t, residuals, 1)

	residuals[0].LicenseTypes[0] = "C"
	assert.Equal(t, "B", slot.LicenseTypes[0])
}
