package practitioner

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Practitioner maps to the practitioner table.
type Practitioner struct {
	ID        uuid.UUID `db:"id" json:"id"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"phone" json:"phone"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// FullName returns the practitioner's display name.
func (p *Practitioner) FullName() string {
	return fmt.Sprintf("%s %s", p.FirstName, p.LastName)
}
