package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseClockTime(t *testing.T) {
	cases := []struct {
		raw     string
		minutes int
		ok      bool
	}{
		{"00:00", 0, true},
		{"09:30", 570, true},
		{"23:59", 1439, true},
		{"24:00", 0, false},
		{"12:60", 0, false},
		{"9:30", 0, false},
		{"09:3", 0, false},
		{"0930", 0, false},
		{"aa:bb", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		minutes, ok := parseClockTime(tc.raw)
		require.Equal(t, tc.ok, ok, "input %q", tc.raw)
		if tc.ok {
			require.Equal(t, tc.minutes, minutes, "input %q", tc.raw)
		}
	}
}

func TestComputeTeachingHours(t *testing.T) {
	hours := ComputeTeachingHours("2026-03-02", "09:00", "11:30")
	require.NotNil(t, hours)
	require.Equal(t, 2.5, *hours)
}

func TestComputeTeachingHoursRounding(t *testing.T) {
	// 50 minutes is 0.8333... hours, rounded to two decimals
	hours := ComputeTeachingHours("2026-03-02", "09:00", "09:50")
	require.NotNil(t, hours)
	require.Equal(t, 0.83, *hours)

	// 40 minutes rounds up
	hours = ComputeTeachingHours("2026-03-02", "09:00", "09:40")
	require.NotNil(t, hours)
	require.Equal(t, 0.67, *hours)
}

func TestComputeTeachingHoursInvalidInputs(t *testing.T) {
	require.Nil(t, ComputeTeachingHours("bad-date", "09:00", "11:00"))
	require.Nil(t, ComputeTeachingHours("2026-03-02", "9am", "11:00"))
	require.Nil(t, ComputeTeachingHours("2026-03-02", "09:00", "25:00"))
}

func TestComputeTeachingHoursEndNotAfterStart(t *testing.T) {
	require.Nil(t, ComputeTeachingHours("2026-03-02", "11:00", "09:00"))
	require.Nil(t, ComputeTeachingHours("2026-03-02", "11:00", "11:00"))
}
