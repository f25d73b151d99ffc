package scheduling

import "time"

// roundToHalfHour snaps an instant down to the nearest half-hour boundary in
// UTC: minutes below 30 become :00, the rest become :30. Seconds and
// nanoseconds are zeroed.
func roundToHalfHour(t time.Time) time.Time {
	u := t.UTC()
	minute := 0
	if u.Minute() >= 30 {
		minute = 30
	}
	return time.Date(u.Year(), u.Month(), u.Day(), u.Hour(), minute, 0, 0, time.UTC)
}

// GenerateSlots walks the search window on a grid anchored at the rounded
// start, proposing candidate slots of the appointment type's duration and
// emitting those that overlap no busy interval. The cursor advances by the
// full duration whether or not the candidate was accepted, so emitted slots
// can never overlap one another. Busy intervals are tested pairwise as given;
// they are never merged first.
//
// The result is deterministic for identical inputs and always finite: the
// loop ends once the cursor reaches the rounded end of the window. A
// candidate that starts on the last grid position before the end bound is
// still emitted even when its end extends past the bound.
func GenerateSlots(searchStart, searchEnd time.Time, busy []TimeSlot, appointmentType AppointmentType) []TimeSlot {
	cursor := roundToHalfHour(searchStart)
	end := roundToHalfHour(searchEnd)
	duration := appointmentType.Duration()

	var slots []TimeSlot
	for cursor.Before(end) {
		candidate := TimeSlot{Start: cursor, End: cursor.Add(duration)}

		blocked := false
		for _, b := range busy {
			if b.Overlaps(candidate) {
				blocked = true
				break
			}
		}
		if !blocked {
			slots = append(slots, candidate)
		}

		cursor = candidate.End
	}
	return slots
}
