package port

//go:generate mockgen -source=recruitment_port.go -destination=../mocks/mock_recruitment_port.go -package=mocks

import (
	"context"

	"hrms-auth/app/domain"
)

// RequisitionRepository reads the recruitment area of the resolved
// tenant's backing database.
type RequisitionRepository interface {
	ListOpen(ctx context.Context) ([]*domain.JobRequisition, error)
}
