package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"hrms-auth/app/domain"
	"hrms-auth/app/port"
)

// TenantHandler exposes read access to the tenant directory for
// platform administrators.
type TenantHandler struct {
	directory port.TenantDirectory
	logger    *slog.Logger
}

// NewTenantHandler creates a new tenant handler
func NewTenantHandler(directory port.TenantDirectory, logger *slog.Logger) *TenantHandler {
	return &TenantHandler{
		directory: directory,
		logger:    logger,
	}
}

// TenantResponse is the admin view of a directory record
type TenantResponse struct {
	ID           string    `json:"id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	DatabaseName string    `json:"database_name"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ListTenants returns all non-deleted directory records
// @Summary List tenants
// @Tags tenants
// @Produce json
// @Success 200 {array} TenantResponse
// @Failure 500 {object} ErrorResponse
// @Router /v1/tenants [get]
func (h *TenantHandler) ListTenants(c echo.Context) error {
	tenants, err := h.directory.List(c.Request().Context())
	if err != nil {
		h.logger.Error("failed to list tenants", "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}

	response := make([]TenantResponse, 0, len(tenants))
	for _, t := range tenants {
		response = append(response, toTenantResponse(t))
	}

	return c.JSON(http.StatusOK, response)
}

// GetTenant looks up one active tenant by code
// @Summary Get a tenant by code
// @Tags tenants
// @Produce json
// @Param code path string true "Tenant code"
// @Success 200 {object} TenantResponse
// @Failure 404 {object} ErrorResponse
// @Router /v1/tenants/{code} [get]
func (h *TenantHandler) GetTenant(c echo.Context) error {
	code := c.Param("code")

	tenant, err := h.directory.Lookup(c.Request().Context(), code)
	if err != nil {
		if errors.Is(err, domain.ErrTenantNotFound) {
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: "tenant not found"})
		}
		h.logger.Error("failed to get tenant", "code", code, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}

	return c.JSON(http.StatusOK, toTenantResponse(tenant))
}

func toTenantResponse(t *domain.Tenant) TenantResponse {
	return TenantResponse{
		ID:           t.ID.String(),
		Code:         t.Code,
		Name:         t.Name,
		DatabaseName: t.DatabaseName,
		Status:       string(t.Status),
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}
