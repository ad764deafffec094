package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/Gimnasio-api/internal/domain"
)

var (
	RegistrationAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "class_registration_attempts_total",
			Help: "Intentos de inscripción a clases por resultado",
		},
		[]string{"result"},
	)

	InvoiceIssuances = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "invoice_issuances_total",
			Help: "Emisiones de CFE por resultado",
		},
		[]string{"result"},
	)

	InvoiceProviderDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "invoice_provider_request_seconds",
			Help:    "Duración de la llamada al proveedor de facturación",
			Buckets: prometheus.DefBuckets,
		},
	)

	InvoicePdfDownloads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "invoice_pdf_downloads_total",
			Help: "Descargas de PDF de facturas por resultado",
		},
		[]string{"result"},
	)
)

// Register registra los colectores en el registerer indicado (prometheus.DefaultRegisterer en main).
func Register(r prometheus.Registerer) {
	r.MustRegister(RegistrationAttempts, InvoiceIssuances, InvoiceProviderDuration, InvoicePdfDownloads)
}

// Result etiqueta de baja cardinalidad para el resultado de una operación.
func Result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrClassStarted):
		return "class_started"
	case errors.Is(err, domain.ErrSessionFull):
		return "session_full"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrPartialSuccess):
		return "partial_success"
	case errors.Is(err, domain.ErrUpstream):
		return "upstream_error"
	case errors.Is(err, domain.ErrDependency):
		return "store_error"
	default:
		return "error"
	}
}
