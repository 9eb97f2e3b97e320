package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeString(t *testing.T) {
	ts := NewTimeString(time.Date(2026, 10, 15, 9, 5, 30, 0, time.UTC))
	assert.Equal(t, TimeString("09:05"), ts)
}

func TestNewTimeStringFromString_Valid(t *testing.T) {
	ts, err := NewTimeStringFromString("11:30")
	require.NoError(t, err)
	assert.Equal(t, "11:30", ts.String())
}

func TestNewTimeStringFromString_Invalid(t *testing.T) {
	cases := []string{"", "9:00", "25:00", "11:60", "11-30", "abcde"}
	for _, input := range cases {
		_, err := NewTimeStringFromString(input)
		assert.ErrorIs(t, err, ErrInvalidFormat, "input %q", input)
	}
}

func TestTimeString_Minutes(t *testing.T) {
	minutes, err := TimeString("11:30").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 690, minutes)

	minutes, err = TimeString("00:00").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 0, minutes)
}

func TestTimeString_AddMinutes(t *testing.T) {
	result, err := TimeString("09:00").AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:30"), result)

	result, err = TimeString("10:30").AddMinutes(-30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:00"), result)
}

func TestTimeString_AddMinutes_OutOfRange(t *testing.T) {
	_, err := TimeString("23:30").AddMinutes(60)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = TimeString("00:30").AddMinutes(-60)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestTimeString_MinutesUntil(t *testing.T) {
	delta, err := TimeString("09:00").MinutesUntil("12:00")
	require.NoError(t, err)
	assert.Equal(t, 180, delta)

	delta, err = TimeString("12:00").MinutesUntil("09:00")
	require.NoError(t, err)
	assert.Equal(t, -180, delta)
}

func TestTimeString_Comparison(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("10:30").IsAfter("10:00"))
	assert.False(t, TimeString("10:00").IsAfter("10:00"))
}

func TestTimeString_ToTime(t *testing.T) {
	date := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)

	result, err := TimeString("11:30").ToTime(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 15, 11, 30, 0, 0, time.UTC), result)
}
