package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"hrms-auth/app/domain"
	"hrms-auth/app/port"
)

// RecruitmentHandler serves the recruitment route group. Requests
// reach it only after the feature's schema has been reconciled.
type RecruitmentHandler struct {
	requisitions port.RequisitionRepository
	logger       *slog.Logger
}

// NewRecruitmentHandler creates a new recruitment handler
func NewRecruitmentHandler(requisitions port.RequisitionRepository, logger *slog.Logger) *RecruitmentHandler {
	return &RecruitmentHandler{
		requisitions: requisitions,
		logger:       logger,
	}
}

// RequisitionResponse is the public view of a job requisition
type RequisitionResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Department string    `json:"department"`
	Status     string    `json:"status"`
	OpenedAt   time.Time `json:"opened_at"`
}

// ListRequisitions returns the tenant's open requisitions
// @Summary List open job requisitions
// @Tags recruitment
// @Produce json
// @Success 200 {array} RequisitionResponse
// @Failure 500 {object} ErrorResponse
// @Router /v1/recruitment/requisitions [get]
func (h *RecruitmentHandler) ListRequisitions(c echo.Context) error {
	requisitions, err := h.requisitions.ListOpen(c.Request().Context())
	if err != nil {
		h.logger.Error("failed to list requisitions", "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}

	response := make([]RequisitionResponse, 0, len(requisitions))
	for _, req := range requisitions {
		response = append(response, toRequisitionResponse(req))
	}

	return c.JSON(http.StatusOK, response)
}

func toRequisitionResponse(r *domain.JobRequisition) RequisitionResponse {
	return RequisitionResponse{
		ID:         r.ID.String(),
		Title:      r.Title,
		Department: r.Department,
		Status:     r.Status,
		OpenedAt:   r.OpenedAt,
	}
}
