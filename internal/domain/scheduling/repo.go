package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mcezario/clinic-scheduling/internal/domain/practitioner"
)

type AppointmentRepository interface {
	// Create durably inserts the appointment. A violation of the
	// (practitioner_id, start_at, end_at) uniqueness key is returned as
	// ErrSlotTaken; the caller never sees the storage-level error.
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	// UpdateTimes rewrites the appointment window if and only if the stored
	// version still equals expectedVersion, advancing the counter. A version
	// mismatch on an existing row yields ErrStaleVersion.
	UpdateTimes(ctx context.Context, id uuid.UUID, start, end time.Time, expectedVersion int) (*Appointment, error)
	// ExistsAt reports whether any of the practitioner's appointments
	// contains the instant (inclusive of both interval ends).
	ExistsAt(ctx context.Context, practitionerID uuid.UUID, at time.Time) (bool, error)
	// ListByRangeAndType returns all appointments of the given type whose
	// interval lies within [start, end], across practitioners.
	ListByRangeAndType(ctx context.Context, t AppointmentType, start, end time.Time) ([]*Appointment, error)
	// ListByPractitionerAndRange returns the practitioner's appointments
	// intersecting [start, end].
	ListByPractitionerAndRange(ctx context.Context, practitionerID uuid.UUID, start, end time.Time) ([]*Appointment, error)
}

type UnavailabilityRepository interface {
	// Create durably inserts the declaration; a duplicate
	// (practitioner_id, start_at, end_at) is returned as ErrSlotTaken.
	Create(ctx context.Context, u *Unavailability) error
	// ExistsAt reports whether any of the practitioner's unavailability
	// blocks contains the instant (inclusive of both interval ends).
	ExistsAt(ctx context.Context, practitionerID uuid.UUID, at time.Time) (bool, error)
	// ListByRange returns all unavailability records within [start, end],
	// across practitioners.
	ListByRange(ctx context.Context, start, end time.Time) ([]*Unavailability, error)
}

// PractitionerDirectory supplies the practitioners the engine evaluates. It
// is implemented by the practitioner domain service.
type PractitionerDirectory interface {
	ListAll(ctx context.Context) ([]*practitioner.Practitioner, error)
	GetByID(ctx context.Context, id uuid.UUID) (*practitioner.Practitioner, error)
}

// PatientDirectory resolves patient references on booking requests.
type PatientDirectory interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
