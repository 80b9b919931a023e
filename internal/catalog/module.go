// Package catalog provides the pricing-catalog domain module: cost items,
// their bills of materials, and the labor-rate setting.
package catalog

import (
	"homewire_backend/internal/catalog/handler"
	"homewire_backend/internal/catalog/repository"
	"homewire_backend/internal/catalog/service"
	apphttp "homewire_backend/internal/http"
	"homewire_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the catalog domain module.
type Module struct {
	handler *handler.Handler
	Service *service.Service
}

// NewModule creates a new catalog module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		Service: svc,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "catalog"
}

// RegisterRoutes mounts the admin catalog routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterAdminRoutes(ctx.Admin.Group("/catalog"))
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
