package scheduling

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type appointmentRepoPG struct{ pool *pgxpool.Pool }

func NewAppointmentRepoPG(pool *pgxpool.Pool) AppointmentRepository {
	return &appointmentRepoPG{pool: pool}
}

const apptCols = `id, practitioner_id, patient_id, appointment_type,
	start_at, end_at, comment, version, created_at, updated_at`

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.PractitionerID, &a.PatientID, &a.Type,
		&a.StartAt, &a.EndAt, &a.Comment, &a.Version, &a.CreatedAt, &a.UpdatedAt)
	return &a, err
}

func (r *appointmentRepoPG) Create(ctx context.Context, a *Appointment) error {
	a.ID = uuid.New()
	err := r.pool.QueryRow(ctx, `
		INSERT INTO appointment (id, practitioner_id, patient_id, appointment_type,
			start_at, end_at, comment, version)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at, updated_at`,
		a.ID, a.PractitionerID, a.PatientID, a.Type,
		a.StartAt, a.EndAt, a.Comment, a.Version,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrSlotTaken
	}
	return err
}

func (r *appointmentRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	a, err := scanAppointment(r.pool.QueryRow(ctx,
		`SELECT `+apptCols+` FROM appointment WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return a, err
}

func (r *appointmentRepoPG) UpdateTimes(ctx context.Context, id uuid.UUID, start, end time.Time, expectedVersion int) (*Appointment, error) {
	a, err := scanAppointment(r.pool.QueryRow(ctx, `
		UPDATE appointment
		SET start_at = $2, end_at = $3, version = version + 1, updated_at = now()
		WHERE id = $1 AND version = $4
		RETURNING `+apptCols,
		id, start, end, expectedVersion))
	if isUniqueViolation(err) {
		return nil, ErrSlotTaken
	}
	if errors.Is(err, pgx.ErrNoRows) {
		// Either the row is gone or the version moved on. One more read
		// tells the two apart.
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, ErrStaleVersion
	}
	return a, err
}

func (r *appointmentRepoPG) ExistsAt(ctx context.Context, practitionerID uuid.UUID, at time.Time) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM appointment
			WHERE practitioner_id = $1 AND $2 BETWEEN start_at AND end_at
		)`, practitionerID, at).Scan(&exists)
	return exists, err
}

func (r *appointmentRepoPG) ListByRangeAndType(ctx context.Context, t AppointmentType, start, end time.Time) ([]*Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+apptCols+` FROM appointment
		WHERE appointment_type = $1 AND start_at >= $2 AND end_at <= $3
		ORDER BY start_at`, t, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAppointments(rows)
}

func (r *appointmentRepoPG) ListByPractitionerAndRange(ctx context.Context, practitionerID uuid.UUID, start, end time.Time) ([]*Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+apptCols+` FROM appointment
		WHERE practitioner_id = $1 AND start_at < $3 AND end_at > $2
		ORDER BY start_at`, practitionerID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAppointments(rows)
}

func collectAppointments(rows pgx.Rows) ([]*Appointment, error) {
	var items []*Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

type unavailabilityRepoPG struct{ pool *pgxpool.Pool }

func NewUnavailabilityRepoPG(pool *pgxpool.Pool) UnavailabilityRepository {
	return &unavailabilityRepoPG{pool: pool}
}

func (r *unavailabilityRepoPG) Create(ctx context.Context, u *Unavailability) error {
	u.ID = uuid.New()
	err := r.pool.QueryRow(ctx, `
		INSERT INTO practitioner_unavailability (id, practitioner_id, start_at, end_at, reason)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at`,
		u.ID, u.PractitionerID, u.StartAt, u.EndAt, u.Reason,
	).Scan(&u.CreatedAt)
	if isUniqueViolation(err) {
		return ErrSlotTaken
	}
	return err
}

func (r *unavailabilityRepoPG) ExistsAt(ctx context.Context, practitionerID uuid.UUID, at time.Time) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM practitioner_unavailability
			WHERE practitioner_id = $1 AND $2 BETWEEN start_at AND end_at
		)`, practitionerID, at).Scan(&exists)
	return exists, err
}

func (r *unavailabilityRepoPG) ListByRange(ctx context.Context, start, end time.Time) ([]*Unavailability, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, practitioner_id, start_at, end_at, reason, created_at
		FROM practitioner_unavailability
		WHERE start_at >= $1 AND end_at <= $2
		ORDER BY start_at`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Unavailability
	for rows.Next() {
		var u Unavailability
		if err := rows.Scan(&u.ID, &u.PractitionerID, &u.StartAt, &u.EndAt, &u.Reason, &u.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &u)
	}
	return items, rows.Err()
}
