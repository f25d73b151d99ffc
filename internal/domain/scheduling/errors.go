package scheduling

import "errors"

// Errors surfaced by the booking engine. Handlers map these to HTTP statuses;
// the engine itself never retries.
var (
	// ErrSlotTaken is returned when the requested time is already occupied,
	// whether detected by the availability pre-check or by the storage
	// uniqueness key. The message is deliberately generic so callers cannot
	// tell an existing appointment from a declared unavailability.
	ErrSlotTaken = errors.New("the requested time is not available")

	// ErrStaleVersion is returned when an update carries a version counter
	// that the store has since advanced past.
	ErrStaleVersion = errors.New("the appointment was modified by another request")

	// ErrNotFound is wrapped with the missing entity, e.g.
	// fmt.Errorf("patient %s: %w", id, ErrNotFound).
	ErrNotFound = errors.New("not found")
)

// ValidationError marks a request that violates a booking rule (weekends,
// notice period, alignment, clinic hours, unusable search window). The
// message identifies the rule that failed.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func newValidationError(msg string) *ValidationError {
	return &ValidationError{msg: msg}
}

// RequestError marks input that could not be interpreted at all (bad instant
// string, unknown appointment type). Distinct from ValidationError so the
// transport layer can tell malformed requests from well-formed but
// disallowed ones.
type RequestError struct {
	msg string
}

func (e *RequestError) Error() string { return e.msg }
