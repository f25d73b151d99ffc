package practitioner

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, p *Practitioner) error {
	if strings.TrimSpace(p.FirstName) == "" {
		return fmt.Errorf("%w: first_name is required", ErrInvalid)
	}
	if strings.TrimSpace(p.LastName) == "" {
		return fmt.Errorf("%w: last_name is required", ErrInvalid)
	}
	if strings.TrimSpace(p.Email) == "" {
		return fmt.Errorf("%w: email is required", ErrInvalid)
	}
	if strings.TrimSpace(p.Phone) == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalid)
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Practitioner, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Practitioner, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// ListAll returns the full directory, used by the availability engine to
// evaluate every practitioner for a search window.
func (s *Service) ListAll(ctx context.Context) ([]*Practitioner, error) {
	return s.repo.ListAll(ctx)
}
