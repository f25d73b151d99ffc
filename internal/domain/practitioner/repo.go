package practitioner

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no practitioner matches the given id.
var ErrNotFound = errors.New("practitioner not found")

// ErrInvalid wraps create requests rejected for missing required fields.
var ErrInvalid = errors.New("invalid practitioner")

type Repository interface {
	Create(ctx context.Context, p *Practitioner) error
	GetByID(ctx context.Context, id uuid.UUID) (*Practitioner, error)
	List(ctx context.Context, limit, offset int) ([]*Practitioner, int, error)
	ListAll(ctx context.Context) ([]*Practitioner, error)
}
