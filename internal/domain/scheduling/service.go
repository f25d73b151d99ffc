package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mcezario/clinic-scheduling/internal/domain/practitioner"
)

// PractitionerAvailability is one practitioner's free slots for a search
// window, in grid order.
type PractitionerAvailability struct {
	PractitionerID   uuid.UUID  `json:"practitioner_id"`
	PractitionerName string     `json:"practitioner_name"`
	Slots            []TimeSlot `json:"slots"`
}

// BookingRequest is the service-level input for creating an appointment.
// Times are absolute instants; the handler has already parsed them.
type BookingRequest struct {
	PractitionerID uuid.UUID
	PatientID      uuid.UUID
	Type           AppointmentType
	StartAt        time.Time
	Comment        *string
}

// Service is the booking engine. It owns the availability search, the
// booking decision and the unavailability ledger; storage conflicts from the
// uniqueness key are the final arbiter under concurrency, never the
// in-memory pre-checks.
type Service struct {
	appointments  AppointmentRepository
	unavail       UnavailabilityRepository
	practitioners PractitionerDirectory
	patients      PatientDirectory
	hours         BusinessHours
	logger        zerolog.Logger
	now           func() time.Time
}

func NewService(
	appointments AppointmentRepository,
	unavail UnavailabilityRepository,
	practitioners PractitionerDirectory,
	patients PatientDirectory,
	hours BusinessHours,
	logger zerolog.Logger,
) *Service {
	return &Service{
		appointments:  appointments,
		unavail:       unavail,
		practitioners: practitioners,
		patients:      patients,
		hours:         hours,
		logger:        logger.With().Str("component", "scheduling").Logger(),
		now:           time.Now,
	}
}

// checkPractitioner resolves the directory lookup into the engine's error
// vocabulary. Only a genuinely missing practitioner becomes ErrNotFound;
// storage faults pass through wrapped so they keep their server-error
// classification at the transport layer.
func (s *Service) checkPractitioner(ctx context.Context, id uuid.UUID) error {
	if _, err := s.practitioners.GetByID(ctx, id); err != nil {
		if errors.Is(err, practitioner.ErrNotFound) {
			return fmt.Errorf("practitioner %s: %w", id, ErrNotFound)
		}
		return fmt.Errorf("look up practitioner: %w", err)
	}
	return nil
}

// searchWindow derives the availability window for a requested date in the
// clinic's zone. A date earlier than the clinic's current local date, or a
// window whose bounds coincide exactly, yields a ValidationError. An
// inverted window (same-day queries after the last bookable moment) is not
// an error; the generator simply emits no slots for it.
func (s *Service) searchWindow(date time.Time) (time.Time, time.Time, error) {
	now := s.now().In(s.hours.Location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.hours.Location)
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, s.hours.Location)

	var start, end time.Time
	switch {
	case day.Before(today):
		return time.Time{}, time.Time{}, newValidationError("no appointments available for the given date")
	case day.Equal(today):
		start = now.Add(time.Duration(s.hours.NoticeHours) * time.Hour)
		end = time.Date(now.Year(), now.Month(), now.Day(),
			s.hours.CloseHour, now.Minute(), now.Second(), now.Nanosecond(), s.hours.Location)
	default:
		start = time.Date(day.Year(), day.Month(), day.Day(), s.hours.OpenHour, 0, 0, 0, s.hours.Location)
		end = time.Date(day.Year(), day.Month(), day.Day(), s.hours.CloseHour, 0, 0, 0, s.hours.Location)
	}

	if start.Equal(end) {
		return time.Time{}, time.Time{}, newValidationError("no appointments available for the given date")
	}
	return start, end, nil
}

// GetAvailability returns every practitioner's open slots of the given type
// on the given date. Only appointments of the same type block slots; the
// grid positions of other types are disjoint, so cross-type conflicts are
// left to the booking-time checks. Unavailability blocks regardless of type.
func (s *Service) GetAvailability(ctx context.Context, t AppointmentType, date time.Time) ([]PractitionerAvailability, error) {
	start, end, err := s.searchWindow(date)
	if err != nil {
		return nil, err
	}

	appts, err := s.appointments.ListByRangeAndType(ctx, t, start, end)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	blocks, err := s.unavail.ListByRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("list unavailability: %w", err)
	}

	busyBy := make(map[uuid.UUID][]TimeSlot)
	for _, a := range appts {
		busyBy[a.PractitionerID] = append(busyBy[a.PractitionerID], a.Slot())
	}
	for _, u := range blocks {
		busyBy[u.PractitionerID] = append(busyBy[u.PractitionerID], u.Slot())
	}

	practitioners, err := s.practitioners.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list practitioners: %w", err)
	}

	result := make([]PractitionerAvailability, 0, len(practitioners))
	for _, p := range practitioners {
		result = append(result, PractitionerAvailability{
			PractitionerID:   p.ID,
			PractitionerName: p.FullName(),
			Slots:            GenerateSlots(start, end, busyBy[p.ID], t),
		})
	}

	s.logger.Debug().
		Str("type", string(t)).
		Time("window_start", start).
		Time("window_end", end).
		Int("practitioners", len(result)).
		Msg("availability computed")
	return result, nil
}

// Book creates an appointment. The policy check and the availability
// pre-checks reject most bad requests up front; a race that slips past them
// is caught by the storage uniqueness key and surfaces as ErrSlotTaken.
func (s *Service) Book(ctx context.Context, req BookingRequest) (*Appointment, error) {
	if !req.Type.Valid() {
		return nil, &RequestError{msg: fmt.Sprintf("unknown appointment type: %s", req.Type)}
	}
	start := req.StartAt.Truncate(time.Minute)
	end := start.Add(req.Type.Duration())

	if err := s.hours.ValidateScheduleTime(start, end, s.now()); err != nil {
		return nil, err
	}

	if err := s.checkPractitioner(ctx, req.PractitionerID); err != nil {
		return nil, err
	}
	ok, err := s.patients.Exists(ctx, req.PatientID)
	if err != nil {
		return nil, fmt.Errorf("check patient: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("patient %s: %w", req.PatientID, ErrNotFound)
	}

	booked, err := s.appointments.ExistsAt(ctx, req.PractitionerID, start)
	if err != nil {
		return nil, fmt.Errorf("check appointments: %w", err)
	}
	if !booked {
		booked, err = s.unavail.ExistsAt(ctx, req.PractitionerID, start)
		if err != nil {
			return nil, fmt.Errorf("check unavailability: %w", err)
		}
	}
	if booked {
		return nil, ErrSlotTaken
	}

	appt := &Appointment{
		PractitionerID: req.PractitionerID,
		PatientID:      req.PatientID,
		Type:           req.Type,
		StartAt:        start,
		EndAt:          end,
		Comment:        req.Comment,
		Version:        1,
	}
	if err := s.appointments.Create(ctx, appt); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("appointment_id", appt.ID.String()).
		Str("practitioner_id", appt.PractitionerID.String()).
		Time("start_at", appt.StartAt).
		Str("type", string(appt.Type)).
		Msg("appointment booked")
	return appt, nil
}

// Reschedule moves an existing appointment to a new start, keeping its type
// and duration. expectedVersion implements optimistic concurrency: a
// mismatch returns ErrStaleVersion and changes nothing. Conflicts at the new
// time are left entirely to the uniqueness key so that a move within the
// appointment's own window is never rejected against itself.
func (s *Service) Reschedule(ctx context.Context, id uuid.UUID, newStart time.Time, expectedVersion int) (*Appointment, error) {
	current, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	start := newStart.Truncate(time.Minute)
	end := start.Add(current.Type.Duration())
	if err := s.hours.ValidateScheduleTime(start, end, s.now()); err != nil {
		return nil, err
	}

	updated, err := s.appointments.UpdateTimes(ctx, id, start, end, expectedVersion)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("appointment_id", id.String()).
		Time("start_at", updated.StartAt).
		Int("version", updated.Version).
		Msg("appointment rescheduled")
	return updated, nil
}

// DeclareUnavailability records a hard block on the practitioner's calendar.
// Blocks are not policy-checked: clinics mark time off outside bookable
// hours too. Duplicate declarations surface as ErrSlotTaken.
func (s *Service) DeclareUnavailability(ctx context.Context, practitionerID uuid.UUID, start, end time.Time, reason *string) (*Unavailability, error) {
	if !end.After(start) {
		return nil, &RequestError{msg: "end must be after start"}
	}
	if err := s.checkPractitioner(ctx, practitionerID); err != nil {
		return nil, err
	}

	u := &Unavailability{
		PractitionerID: practitionerID,
		StartAt:        start.Truncate(time.Minute),
		EndAt:          end.Truncate(time.Minute),
		Reason:         reason,
	}
	if err := s.unavail.Create(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("practitioner_id", practitionerID.String()).
		Time("start_at", u.StartAt).
		Time("end_at", u.EndAt).
		Msg("unavailability declared")
	return u, nil
}

// DayAppointments returns a practitioner's appointments for the UTC day
// containing the given date.
func (s *Service) DayAppointments(ctx context.Context, practitionerID uuid.UUID, date time.Time) ([]*Appointment, error) {
	if err := s.checkPractitioner(ctx, practitionerID); err != nil {
		return nil, err
	}
	u := date.UTC()
	dayStart := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return s.appointments.ListByPractitionerAndRange(ctx, practitionerID, dayStart, dayStart.Add(24*time.Hour))
}
