package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"hrms-auth/app/domain"
	"hrms-auth/app/port"
)

// RequisitionRepository implements port.RequisitionRepository over the
// per-tenant job_requisitions table.
type RequisitionRepository struct {
	stores TenantStoreSource
	logger *slog.Logger
}

// NewRequisitionRepository creates a new per-tenant requisition repository
func NewRequisitionRepository(stores TenantStoreSource, logger *slog.Logger) port.RequisitionRepository {
	return &RequisitionRepository{
		stores: stores,
		logger: logger.With("component", "requisition_repository"),
	}
}

// ListOpen returns open requisitions, newest first
func (r *RequisitionRepository) ListOpen(ctx context.Context) ([]*domain.JobRequisition, error) {
	db, err := r.stores.Executor(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, title, department, status, opened_at, created_at, updated_at
		FROM job_requisitions
		WHERE status = 'open'
		ORDER BY opened_at DESC`

	rows, err := db.Query(ctx, query)
	if err != nil {
		r.logger.Error("failed to list requisitions", "error", err)
		return nil, fmt.Errorf("failed to list requisitions: %w", err)
	}
	defer rows.Close()

	var requisitions []*domain.JobRequisition
	for rows.Next() {
		var req domain.JobRequisition
		if err := rows.Scan(
			&req.ID,
			&req.Title,
			&req.Department,
			&req.Status,
			&req.OpenedAt,
			&req.CreatedAt,
			&req.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan requisition: %w", err)
		}
		requisitions = append(requisitions, &req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read requisitions: %w", err)
	}

	return requisitions, nil
}
