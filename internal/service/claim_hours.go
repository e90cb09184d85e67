package service

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// parseClockTime parses a strict HH:MM (00-23:00-59) time of day and returns
// it as minutes since midnight.
func parseClockTime(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	parts := strings.Split(raw, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}

// ComputeTeachingHours derives the teaching contact hours from the session
// date and its HH:MM start/end times, rounded to two decimal places. It
// returns nil when any input fails to parse or when the end does not fall
// strictly after the start. The function is pure: callers re-invoke it on
// every relevant input change instead of caching the result.
func ComputeTeachingHours(date, start, end string) *float64 {
	if _, err := time.Parse(claimDateLayout, strings.TrimSpace(date)); err != nil {
		return nil
	}
	startMin, ok := parseClockTime(start)
	if !ok {
		return nil
	}
	endMin, ok := parseClockTime(end)
	if !ok {
		return nil
	}
	if endMin <= startMin {
		return nil
	}
	hours := math.Round(float64(endMin-startMin)/60.0*100) / 100
	return &hours
}
