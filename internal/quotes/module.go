// Package quotes provides the quote wizard domain module: pricing previews,
// quote submission, attachments and invoices.
package quotes

import (
	"homewire_backend/internal/adapters/storage"
	apphttp "homewire_backend/internal/http"
	"homewire_backend/internal/quotes/handler"
	"homewire_backend/internal/quotes/repository"
	"homewire_backend/internal/quotes/service"
	"homewire_backend/platform/events"
	"homewire_backend/platform/logger"
	"homewire_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the quotes domain module.
type Module struct {
	public  *handler.PublicHandler
	admin   *handler.AdminHandler
	Service *service.Service
}

// NewModule creates a new quotes module with all dependencies wired.
// store may be nil when object storage is not configured.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, rates service.RateBookLoader, store storage.Service, bucket string, bus events.Bus, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, rates, store, bucket, bus, log)

	return &Module{
		public:  handler.NewPublic(svc, val),
		admin:   handler.NewAdmin(svc, val),
		Service: svc,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "quotes"
}

// RegisterRoutes mounts the public wizard surface and the admin back office.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.public.RegisterRoutes(ctx.Public.Group("/quotes"))
	m.admin.RegisterQuoteRoutes(ctx.Admin.Group("/quotes"))
	m.admin.RegisterInvoiceRoutes(ctx.Admin.Group("/invoices"))
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
