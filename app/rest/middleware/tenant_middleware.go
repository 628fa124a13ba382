package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"hrms-auth/app/domain"
	"hrms-auth/app/port"
	apperrors "hrms-auth/app/utils/errors"
)

// exemptSegments are path segments that mark a request as
// infrastructure introspection. Those requests carry no tenant and
// never touch a tenant store.
var exemptSegments = map[string]bool{
	"health": true,
	"ready":  true,
	"live":   true,
}

// featurePrefixes maps route prefixes to the feature patch set that
// must exist before their handlers run.
var featurePrefixes = map[string]string{
	"/v1/recruitment": "recruitment",
}

// TenantResolver resolves the acting tenant for every request and
// prepares its backing store before any handler runs. Resolution
// precedence is fixed: login body field, then X-Tenant-Code header,
// then the tenantCode claim of a verified bearer token.
type TenantResolver struct {
	directory  port.TenantDirectory
	catalog    port.StoreCatalog
	reconciler port.SchemaReconciler
	verifier   port.TokenIssuer
	dbName     func(string) string
	logger     *slog.Logger
}

// NewTenantResolver creates the tenant resolution middleware. dbName
// maps a directory record's database name to the physical database
// name (deployment pattern applied).
func NewTenantResolver(
	directory port.TenantDirectory,
	catalog port.StoreCatalog,
	reconciler port.SchemaReconciler,
	verifier port.TokenIssuer,
	dbName func(string) string,
	logger *slog.Logger,
) *TenantResolver {
	return &TenantResolver{
		directory:  directory,
		catalog:    catalog,
		reconciler: reconciler,
		verifier:   verifier,
		dbName:     dbName,
		logger:     logger.With("component", "tenant_resolver"),
	}
}

// Middleware runs the full per-request pipeline: resolve code, look up
// the directory record, check the physical store exists, reconcile its
// schema, and attach the tenant to the request context.
func (r *TenantResolver) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			if isExempt(req) {
				return next(c)
			}

			code := r.resolveCode(c)
			if code == "" {
				return apperrors.New(apperrors.ErrCodeMissingTenant,
					"tenant code is required: provide it in the login body, the X-Tenant-Code header, or an access token")
			}

			ctx := req.Context()

			tenant, err := r.directory.Lookup(ctx, code)
			if err != nil {
				if errors.Is(err, domain.ErrTenantNotFound) {
					r.logger.Info("tenant resolution failed", "code", code, "path", req.URL.Path)
					return apperrors.NewTenantNotFound(code)
				}
				r.logger.Error("tenant directory lookup failed", "code", code, "error", err)
				return apperrors.NewDatabaseError(err)
			}

			databaseName := r.dbName(tenant.DatabaseName)

			exists, err := r.catalog.StoreExists(ctx, databaseName)
			if err != nil {
				r.logger.Error("store existence check failed", "tenant", code, "error", err)
				return apperrors.NewDatabaseError(err)
			}
			if !exists {
				r.logger.Error("directory record has no backing store",
					"tenant", code, "database", databaseName)
				return apperrors.New(apperrors.ErrCodeStoreInconsistent,
					"tenant store is unavailable")
			}

			// The tenant travels only inside the request context.
			ctx = domain.WithTenant(ctx, domain.TenantContext{
				Code:         code,
				DatabaseName: databaseName,
			})
			c.SetRequest(req.WithContext(ctx))

			if err := r.reconciler.ApplyBaseline(ctx); err != nil {
				r.logger.Error("baseline reconciliation failed fatally",
					"tenant", code, "error", err)
				return apperrors.New(apperrors.ErrCodeSchemaFatal,
					"tenant store is unavailable")
			}

			if feature := featureFor(req.URL.Path); feature != "" {
				if err := r.reconciler.EnsureFeature(ctx, feature); err != nil {
					r.logger.Error("feature reconciliation failed fatally",
						"tenant", code, "feature", feature, "error", err)
					return apperrors.New(apperrors.ErrCodeSchemaFatal,
						"tenant store is unavailable")
				}
			}

			return next(c)
		}
	}
}

// resolveCode applies the three tenant sources in precedence order
func (r *TenantResolver) resolveCode(c echo.Context) string {
	if code := r.codeFromLoginBody(c); code != "" {
		return code
	}

	if code := strings.TrimSpace(c.Request().Header.Get("X-Tenant-Code")); code != "" {
		return code
	}

	return r.codeFromAccessToken(c)
}

// codeFromLoginBody peeks at the JSON body of login requests for a
// tenantCode field. The body is restored afterwards so the handler can
// bind it again. A malformed or field-less body falls through to the
// next source without failing the request; body validation is the
// handler's job.
func (r *TenantResolver) codeFromLoginBody(c echo.Context) string {
	req := c.Request()
	if req.Method != http.MethodPost || !strings.HasSuffix(req.URL.Path, "/login") {
		return ""
	}
	if req.Body == nil {
		return ""
	}

	body, err := io.ReadAll(req.Body)
	req.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	// JSON field matching is case-insensitive, so one field covers
	// both the tenantCode and TenantCode spellings.
	var peek struct {
		TenantCode string `json:"tenantCode"`
	}
	if err := json.Unmarshal(body, &peek); err != nil {
		return ""
	}

	return strings.TrimSpace(peek.TenantCode)
}

// codeFromAccessToken uses the tenant claim of a bearer token, but
// only after signature verification. An unverified token contributes
// nothing.
func (r *TenantResolver) codeFromAccessToken(c echo.Context) string {
	tokenStr := extractBearerToken(c)
	if tokenStr == "" {
		return ""
	}

	claims, err := r.verifier.Verify(tokenStr)
	if err != nil {
		r.logger.Debug("bearer token unusable as tenant source", "error", err)
		return ""
	}

	return claims.TenantCode
}

func isExempt(req *http.Request) bool {
	if req.Method == http.MethodOptions {
		return true
	}
	for _, segment := range strings.Split(req.URL.Path, "/") {
		if exemptSegments[segment] {
			return true
		}
	}
	return false
}

func featureFor(path string) string {
	for prefix, feature := range featurePrefixes {
		if strings.HasPrefix(path, prefix) {
			return feature
		}
	}
	return ""
}
