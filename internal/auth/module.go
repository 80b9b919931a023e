// Package auth provides the admin authentication module.
package auth

import (
	"context"

	"homewire_backend/internal/auth/handler"
	"homewire_backend/internal/auth/repository"
	"homewire_backend/internal/auth/service"
	apphttp "homewire_backend/internal/http"
	"homewire_backend/platform/config"
	"homewire_backend/platform/logger"
	"homewire_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the auth domain module.
type Module struct {
	handler *handler.Handler
	Service *service.Service
}

// NewModule creates a new auth module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, cfg config.AuthServiceConfig, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		Service: svc,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "auth"
}

// EnsureAdmin seeds the initial admin account on an empty database.
func (m *Module) EnsureAdmin(ctx context.Context) error {
	return m.Service.EnsureAdmin(ctx)
}

// RegisterRoutes mounts the auth routes under /api/v1/auth behind the
// stricter auth rate limiter.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	auth := ctx.V1.Group("/auth")
	if ctx.AuthRateLimiter != nil {
		auth.Use(ctx.AuthRateLimiter.RateLimit())
	}
	m.handler.RegisterRoutes(auth)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
