package domain

import (
	"time"

	"github.com/google/uuid"
)

// JobRequisition is an open hiring position in a tenant's recruitment
// area.
type JobRequisition struct {
	ID         uuid.UUID
	Title      string
	Department string
	Status     string
	OpenedAt   time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
