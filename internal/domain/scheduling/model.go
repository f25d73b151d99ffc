package scheduling

import (
	"time"

	"github.com/google/uuid"
)

// Appointment maps to the appointment table. The (practitioner_id, start_at,
// end_at) triple carries a uniqueness constraint and is the final arbiter
// against concurrent double-booking; Version backs optimistic concurrency on
// updates.
type Appointment struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	PractitionerID uuid.UUID       `db:"practitioner_id" json:"practitioner_id"`
	PatientID      uuid.UUID       `db:"patient_id" json:"patient_id"`
	Type           AppointmentType `db:"appointment_type" json:"type"`
	StartAt        time.Time       `db:"start_at" json:"start_at"`
	EndAt          time.Time       `db:"end_at" json:"end_at"`
	Comment        *string         `db:"comment" json:"comment,omitempty"`
	Version        int             `db:"version" json:"version"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`
}

// Slot returns the appointment's occupied interval.
func (a *Appointment) Slot() TimeSlot {
	return TimeSlot{Start: a.StartAt, End: a.EndAt}
}

// Unavailability maps to the practitioner_unavailability table: a hard block
// on a practitioner's bookability, unique per (practitioner, start, end).
type Unavailability struct {
	ID             uuid.UUID `db:"id" json:"id"`
	PractitionerID uuid.UUID `db:"practitioner_id" json:"practitioner_id"`
	StartAt        time.Time `db:"start_at" json:"start_at"`
	EndAt          time.Time `db:"end_at" json:"end_at"`
	Reason         *string   `db:"reason" json:"reason,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// Slot returns the blocked interval.
func (u *Unavailability) Slot() TimeSlot {
	return TimeSlot{Start: u.StartAt, End: u.EndAt}
}
