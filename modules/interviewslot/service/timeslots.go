package service

import (
	"fmt"

	"campus-recruit/core/errors"
)

// parseClock converts "HH:MM" into minutes since midnight.
func parseClock(v string) (int, bool) {
	var h, m int
	if _, err := fmt.Sscanf(v, "%d:%d", &h, &m); err != nil {
		return 0, false
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// GenerateSlots carves the window [startTime, endTime) into consecutive
// fixed-length intervals formatted as "HH:MM-HH:MM". A trailing remainder
// shorter than the duration is dropped. Invalid inputs yield an empty grid.
func GenerateSlots(startTime, endTime string, durationMinutes int) []string {
	start, okS := parseClock(startTime)
	end, okE := parseClock(endTime)
	if !okS || !okE || durationMinutes <= 0 || start >= end {
		return nil
	}

	var slots []string
	for cur := start; cur+durationMinutes <= end; cur += durationMinutes {
		slots = append(slots, fmt.Sprintf("%s-%s", formatClock(cur), formatClock(cur+durationMinutes)))
	}
	return slots
}

// SlotCount is the number of grid intervals the window can hold.
func SlotCount(startTime, endTime string, durationMinutes int) int {
	return len(GenerateSlots(startTime, endTime, durationMinutes))
}

// NextAvailable scans the grid in order and returns the first interval not in
// used. The second return is false when the grid is exhausted; callers that
// validated capacity against SlotCount at creation never see that while seats
// remain.
func NextAvailable(startTime, endTime string, durationMinutes int, used map[string]struct{}) (string, bool) {
	for _, slot := range GenerateSlots(startTime, endTime, durationMinutes) {
		if _, taken := used[slot]; !taken {
			return slot, true
		}
	}
	return "", false
}

// ValidateWindow checks that the window admits at least one interval and that
// the requested capacity fits on the grid.
func ValidateWindow(startTime, endTime string, durationMinutes, totalCapacity int) *errors.AppError {
	if _, ok := parseClock(startTime); !ok {
		return errors.NewAppError(errors.ErrInvalidWindow, fmt.Sprintf("invalid start time %q", startTime), nil)
	}
	if _, ok := parseClock(endTime); !ok {
		return errors.NewAppError(errors.ErrInvalidWindow, fmt.Sprintf("invalid end time %q", endTime), nil)
	}
	if totalCapacity < 0 {
		return errors.NewAppError(errors.ErrInvalidWindow, "total capacity cannot be negative", nil)
	}

	n := SlotCount(startTime, endTime, durationMinutes)
	if n == 0 {
		return errors.NewAppError(errors.ErrInvalidWindow,
			fmt.Sprintf("window %s-%s does not fit a single %d minute interview", startTime, endTime, durationMinutes), nil)
	}
	if totalCapacity > n {
		return errors.NewAppError(errors.ErrInvalidWindow,
			fmt.Sprintf("capacity %d exceeds the %d intervals the window holds", totalCapacity, n), nil)
	}
	return nil
}
