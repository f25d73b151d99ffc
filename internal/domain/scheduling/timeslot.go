package scheduling

import (
	"fmt"
	"strings"
	"time"
)

// TimeSlot is an immutable half-open interval [Start, End).
type TimeSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps reports whether the two half-open intervals share any instant.
func (s TimeSlot) Overlaps(other TimeSlot) bool {
	return other.Start.Before(s.End) && other.End.After(s.Start)
}

// AppointmentType is the closed set of bookable visit kinds. Each type has a
// fixed duration; a slot's end is always start + duration.
type AppointmentType string

const (
	TypeInitial  AppointmentType = "INITIAL"
	TypeStandard AppointmentType = "STANDARD"
	TypeCheckIn  AppointmentType = "CHECK_IN"
)

var typeDurations = map[AppointmentType]time.Duration{
	TypeInitial:  90 * time.Minute,
	TypeStandard: 60 * time.Minute,
	TypeCheckIn:  30 * time.Minute,
}

// Duration returns the fixed length of an appointment of this type.
func (t AppointmentType) Duration() time.Duration {
	return typeDurations[t]
}

// Valid reports whether t is one of the known appointment types.
func (t AppointmentType) Valid() bool {
	_, ok := typeDurations[t]
	return ok
}

// ParseAppointmentType converts a case-insensitive request value into an
// AppointmentType, rejecting anything outside the closed set.
func ParseAppointmentType(value string) (AppointmentType, error) {
	t := AppointmentType(strings.ToUpper(value))
	if !t.Valid() {
		return "", &RequestError{msg: fmt.Sprintf("unknown appointment type: %s", value)}
	}
	return t, nil
}
