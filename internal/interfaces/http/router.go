package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Gimnasio-api/internal/application/billing"
	"github.com/jhoicas/Gimnasio-api/internal/application/classes"
	"github.com/jhoicas/Gimnasio-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	RegisterAttendee *classes.RegisterAttendeeUseCase
	IssueInvoice     *billing.IssueInvoiceUseCase
	InvoicePDF       *billing.PDFUseCase
}

// NewApp crea la app Fiber con recover, log de requests y el manejador de errores JSON.
func NewApp(appName string, log *logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      appName,
		ErrorHandler: ErrorHandler,
		ReadTimeout:  10 * time.Second,
		// la emisión espera al proveedor de forma síncrona
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	})
	app.Use(recover.New())
	app.Use(RequestLogger(log.Named("http")))
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	registrations := api.Group("/class-registrations")
	registrationHandler := NewClassRegistrationHandler(deps.RegisterAttendee)
	registrations.Post("/", registrationHandler.Create)
	registrations.Get("/", registrationHandler.List)

	invoices := api.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.IssueInvoice, deps.InvoicePDF)
	invoices.Post("/", invoiceHandler.Issue)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
}
