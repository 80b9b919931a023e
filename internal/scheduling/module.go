// Package scheduling provides the installation-calendar domain module.
package scheduling

import (
	apphttp "homewire_backend/internal/http"
	"homewire_backend/internal/scheduler"
	"homewire_backend/internal/scheduling/handler"
	"homewire_backend/internal/scheduling/repository"
	"homewire_backend/internal/scheduling/service"
	"homewire_backend/platform/events"
	"homewire_backend/platform/logger"
	"homewire_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the scheduling domain module.
type Module struct {
	handler *handler.Handler
	Service *service.Service
}

// NewModule creates a new scheduling module with all dependencies wired.
// reminders may be nil when no task queue is configured.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, rates service.RateBookLoader, bus events.Bus, reminders scheduler.ReminderScheduler, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, rates, bus, reminders, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		Service: svc,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "scheduling"
}

// RegisterRoutes mounts the public booking surface and the admin calendar.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterPublicRoutes(ctx.Public.Group("/schedule"))
	m.handler.RegisterAdminRoutes(ctx.Admin.Group("/schedule"))
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
