package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/Gimnasio-api/internal/domain"
	"github.com/jhoicas/Gimnasio-api/internal/domain/cfe"
	"github.com/jhoicas/Gimnasio-api/internal/domain/repository"
	"github.com/jhoicas/Gimnasio-api/internal/metrics"
	"github.com/jhoicas/Gimnasio-api/pkg/logger"
)

// ErrPdfNotReady la respuesta guardada del proveedor todavía no trae el PDF.
var ErrPdfNotReady = fmt.Errorf("%w: PDF aún no disponible", domain.ErrNotFound)

// PDFUseCase entrega el PDF de una factura a partir de la respuesta guardada del proveedor.
// El PDF nunca se genera localmente: viene en base64 dentro de la respuesta o se descarga.
type PDFUseCase struct {
	invoiceRepo repository.InvoiceRepository
	fetcher     PdfFetcher
	log         *logger.Logger
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(invoiceRepo repository.InvoiceRepository, fetcher PdfFetcher, log *logger.Logger) *PDFUseCase {
	return &PDFUseCase{
		invoiceRepo: invoiceRepo,
		fetcher:     fetcher,
		log:         log.Named("invoice_pdf"),
	}
}

// Download ubica el PDF en response_payload, lo decodifica o descarga y arma el nombre del archivo.
//
// Retorna:
//   - domain.ErrInvalidInput  si id está vacío.
//   - domain.ErrNotFound      si la factura no existe o aún no tiene PDF (ErrPdfNotReady).
//   - domain.ErrDependency    si falla la lectura de la factura.
//   - *domain.UpstreamError   si la fuente no se pudo decodificar ni descargar.
func (uc *PDFUseCase) Download(ctx context.Context, invoiceID string) (pdf []byte, filename string, err error) {
	pdf, filename, err = uc.download(ctx, invoiceID)
	metrics.InvoicePdfDownloads.WithLabelValues(metrics.Result(err)).Inc()
	if err != nil {
		ev := uc.log.Warn()
		if errors.Is(err, domain.ErrDependency) || errors.Is(err, domain.ErrUpstream) {
			ev = uc.log.Error()
		}
		ev.Err(err).Str("invoice_id", invoiceID).Msg("descarga de PDF fallida")
	}
	return pdf, filename, err
}

func (uc *PDFUseCase) download(ctx context.Context, invoiceID string) ([]byte, string, error) {
	invoiceID = strings.TrimSpace(invoiceID)
	if invoiceID == "" {
		return nil, "", fmt.Errorf("%w: id requerido", domain.ErrInvalidInput)
	}

	inv, err := uc.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("%w: obtener factura: %w", domain.ErrDependency, err)
	}
	if inv == nil {
		return nil, "", fmt.Errorf("%w: factura %s", domain.ErrNotFound, invoiceID)
	}

	src, ok := cfe.FindInvoicePdfSource(inv.ResponsePayload)
	if !ok {
		return nil, "", ErrPdfNotReady
	}

	var (
		pdf    []byte
		source string
	)
	switch cfe.ClassifyPdfSource(src) {
	case cfe.SourceInline:
		source = "inline"
		pdf = cfe.DecodeInlinePdf(src)
	default:
		source = "remote"
		pdf = uc.fetcher.Fetch(ctx, strings.TrimSpace(src))
	}
	uc.log.Debug().
		Str("invoice_id", inv.ID).
		Str("source", source).
		Int("bytes", len(pdf)).
		Msg("fuente de PDF resuelta")
	if len(pdf) == 0 {
		return nil, "", &domain.UpstreamError{Err: errors.New("no se pudo obtener el PDF")}
	}

	return pdf, cfe.InvoiceFileName(deref(inv.InvoiceSeries), deref(inv.InvoiceNumber), inv.ID), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
