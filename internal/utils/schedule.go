package utils

import (
	"fmt"
	"time"
)

const scheduleLayout = "2006-01-02 3:04 PM"

// ParseScheduleAt combines a booking date and time slot into a single
// timestamp in the shop's timezone.
func ParseScheduleAt(date, timeSlot string) (time.Time, error) {
	loc, err := time.LoadLocation("Asia/Manila")
	if err != nil {
		loc = time.FixedZone("PHT", 8*60*60)
	}
	t, err := time.ParseInLocation(scheduleLayout, date+" "+timeSlot, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid schedule %q %q: %w", date, timeSlot, err)
	}
	return t, nil
}
