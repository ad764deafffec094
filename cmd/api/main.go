// @title        Gimnasio API
// @version      1.0
// @description  Back office de gimnasios: inscripción a clases y facturación electrónica (CFE).
// @BasePath     /
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/contrib/swagger"
	"github.com/prometheus/client_golang/prometheus"

	_ "github.com/jhoicas/Gimnasio-api/docs"
	"github.com/jhoicas/Gimnasio-api/internal/application/billing"
	"github.com/jhoicas/Gimnasio-api/internal/application/classes"
	infracfe "github.com/jhoicas/Gimnasio-api/internal/infrastructure/cfe"
	"github.com/jhoicas/Gimnasio-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Gimnasio-api/internal/interfaces/http"
	"github.com/jhoicas/Gimnasio-api/internal/metrics"
	"github.com/jhoicas/Gimnasio-api/pkg/config"
	"github.com/jhoicas/Gimnasio-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	loc := cfg.App.Location()
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("timezone", loc.String()).
		Msg("iniciando aplicación")

	if cfg.Invoice.APIURL == "" {
		log.Warn().Msg("INVOICE_API_URL no configurado: la emisión de facturas fallará")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	metrics.Register(prometheus.DefaultRegisterer)

	gymRepo := postgres.NewGymRepository(pool)
	registrationRepo := postgres.NewClassRegistrationRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	cfeClient := infracfe.NewClient(cfg.Invoice.APIURL, nil)

	registerAttendeeUC := classes.NewRegisterAttendeeUseCase(txRunner, registrationRepo, loc, log)
	issueInvoiceUC := billing.NewIssueInvoiceUseCase(gymRepo, invoiceRepo, cfeClient, providerDefaults(cfg.Invoice), loc, log)
	invoicePDFUC := billing.NewPDFUseCase(invoiceRepo, cfeClient, log)

	app := httpRouter.NewApp(cfg.App.Name, log)

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Gimnasio API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		RegisterAttendee: registerAttendeeUC,
		IssueInvoice:     issueInvoiceUC,
		InvoicePDF:       invoicePDFUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func providerDefaults(c config.InvoiceConfig) billing.ProviderDefaults {
	return billing.ProviderDefaults{
		UserID:       c.UserID,
		CompanyID:    c.CompanyID,
		BranchCode:   c.BranchCode,
		BranchID:     c.BranchID,
		Password:     c.Password,
		Environment:  c.Environment,
		CustomerID:   c.CustomerID,
		Series:       c.Series,
		Currency:     c.Currency,
		Cotizacion:   c.Cotizacion,
		DocumentType: c.DocumentType,
		TransferType: c.TransferType,
		Rutneg:       c.Rutneg,
	}
}
