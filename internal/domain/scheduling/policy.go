package scheduling

import (
	"fmt"
	"time"
)

// noticeClockGuard absorbs clock skew between the instant "now" was sampled
// and the comparison below, so a booking exactly at the notice boundary is
// not spuriously rejected.
const noticeClockGuard = 5 * time.Second

// BusinessHours is the clinic's booking policy. It is built once from
// configuration and passed by value; the engine never mutates it.
type BusinessHours struct {
	Location         *time.Location
	OpenHour         int
	CloseHour        int
	CloseHourDisplay int
	AllowWeekends    bool
	NoticeHours      int
}

// ValidateScheduleTime checks a candidate booking window against the clinic's
// policy. Rules run in a fixed order and the first failure wins:
// weekends, notice period, half-hour alignment, then open/close containment.
// All calendar math happens in the clinic's configured zone.
func (b BusinessHours) ValidateScheduleTime(start, end, now time.Time) error {
	localStart := start.In(b.Location)

	if !b.AllowWeekends {
		if wd := localStart.Weekday(); wd == time.Saturday || wd == time.Sunday {
			return newValidationError("bookings cannot be made for weekends")
		}
	}

	guarded := now.Add(noticeClockGuard)
	if int(start.Sub(guarded).Hours()) < b.NoticeHours {
		return newValidationError(fmt.Sprintf(
			"bookings cannot be made within %d hours of the appointment start time", b.NoticeHours))
	}

	if m := localStart.Minute(); m != 0 && m != 30 {
		return newValidationError("appointments start on the hour or half-hour")
	}

	if b.beforeOpening(start) || b.afterClosing(end) {
		return newValidationError(fmt.Sprintf(
			"bookings can only be made for appointments that start and end within the clinic hours (%d am to %d pm)",
			b.OpenHour, b.CloseHourDisplay))
	}

	return nil
}

// beforeOpening compares the minute-truncated local time of day against the
// opening hour, ignoring the date.
func (b BusinessHours) beforeOpening(t time.Time) bool {
	lt := t.In(b.Location)
	return lt.Hour()*60+lt.Minute() < b.OpenHour*60
}

// afterClosing compares the minute-truncated local time of day against the
// closing hour, ignoring the date.
func (b BusinessHours) afterClosing(t time.Time) bool {
	lt := t.In(b.Location)
	return lt.Hour()*60+lt.Minute() > b.CloseHour*60
}
