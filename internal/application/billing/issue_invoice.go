package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
	"github.com/jhoicas/Gimnasio-api/internal/domain"
	"github.com/jhoicas/Gimnasio-api/internal/domain/cfe"
	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
	"github.com/jhoicas/Gimnasio-api/internal/domain/repository"
	"github.com/jhoicas/Gimnasio-api/internal/metrics"
	"github.com/jhoicas/Gimnasio-api/pkg/logger"
)

// IssueInvoiceUseCase emite un CFE para un pago contra el proveedor y lo registra.
// La llamada al proveedor es síncrona y sin reintentos.
type IssueInvoiceUseCase struct {
	gymRepo     repository.GymRepository
	invoiceRepo repository.InvoiceRepository
	provider    InvoiceProvider
	defaults    ProviderDefaults
	loc         *time.Location
	now         func() time.Time
	log         *logger.Logger
}

// NewIssueInvoiceUseCase construye el caso de uso. loc es la zona en la que se calcula
// la fecha de emisión por defecto.
func NewIssueInvoiceUseCase(
	gymRepo repository.GymRepository,
	invoiceRepo repository.InvoiceRepository,
	provider InvoiceProvider,
	defaults ProviderDefaults,
	loc *time.Location,
	log *logger.Logger,
) *IssueInvoiceUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &IssueInvoiceUseCase{
		gymRepo:     gymRepo,
		invoiceRepo: invoiceRepo,
		provider:    provider,
		defaults:    defaults,
		loc:         loc,
		now:         time.Now,
		log:         log.Named("billing"),
	}
}

// Issue valida el pedido, resuelve credenciales, arma el formulario, llama al proveedor y
// guarda la factura.
//
// Retorna:
//   - domain.ErrInvalidInput         si faltan datos o "lineas" está vacío (antes de cualquier llamada).
//   - *domain.MissingCredentialsError si faltan credenciales obligatorias.
//   - domain.ErrNotFound             si el gimnasio no existe.
//   - *domain.UpstreamError          si el proveedor falla o responde no 2xx.
//   - *domain.PartialSuccessError    si el proveedor emitió pero no se pudo guardar.
func (uc *IssueInvoiceUseCase) Issue(ctx context.Context, in dto.IssueInvoiceRequest) (*dto.IssueInvoiceResponse, error) {
	out, err := uc.issue(ctx, in)
	metrics.InvoiceIssuances.WithLabelValues(metrics.Result(err)).Inc()
	if err != nil {
		ev := uc.log.Warn()
		if errors.Is(err, domain.ErrPartialSuccess) || errors.Is(err, domain.ErrUpstream) || errors.Is(err, domain.ErrDependency) {
			ev = uc.log.Error()
		}
		ev = ev.Err(err).
			Str("gym_id", in.GymID).
			Str("payment_id", in.PaymentID)
		var partial *domain.PartialSuccessError
		if errors.As(err, &partial) {
			ev = ev.Str("invoice_id", partial.InvoiceID).
				Str("invoice_number", partial.InvoiceNumber).
				Str("external_id", partial.ExternalID)
		}
		ev.Msg("emisión de factura fallida")
		return nil, err
	}
	uc.log.Info().
		Str("invoice_id", out.Invoice.ID).
		Str("gym_id", out.Invoice.GymID).
		Str("payment_id", out.Invoice.PaymentID).
		Str("status", out.Invoice.Status).
		Msg("factura emitida")
	return out, nil
}

func (uc *IssueInvoiceUseCase) issue(ctx context.Context, in dto.IssueInvoiceRequest) (*dto.IssueInvoiceResponse, error) {
	gymID := strings.TrimSpace(in.GymID)
	paymentID := strings.TrimSpace(in.PaymentID)
	if gymID == "" || paymentID == "" || in.Amount == nil || in.Invoice == nil {
		return nil, fmt.Errorf("%w: gym_id, payment_id, amount e invoice son requeridos", domain.ErrInvalidInput)
	}
	if Lineas(in.Invoice) == "" {
		return nil, fmt.Errorf("%w: invoice.lineas es requerido", domain.ErrInvalidInput)
	}

	gym, err := uc.gymRepo.GetByID(ctx, gymID)
	if err != nil {
		return nil, fmt.Errorf("%w: obtener gimnasio: %w", domain.ErrDependency, err)
	}
	if gym == nil {
		return nil, fmt.Errorf("%w: gimnasio %s", domain.ErrNotFound, gymID)
	}

	cred, err := ResolveCredentials(gym.Billing, uc.defaults)
	if err != nil {
		return nil, err
	}

	today := uc.now().In(uc.loc)
	form := BuildPayload(in.Invoice, cred, PayloadInput{
		PaymentID:  paymentID,
		MemberName: in.MemberName,
		Today:      today,
	})

	started := time.Now()
	reply, err := uc.provider.Submit(ctx, form)
	metrics.InvoiceProviderDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		return nil, &domain.UpstreamError{Err: err}
	}
	if reply.StatusCode < 200 || reply.StatusCode > 299 {
		return nil, &domain.UpstreamError{StatusCode: reply.StatusCode, Body: string(reply.Body)}
	}

	var providerJSON json.RawMessage
	if len(reply.Body) > 0 && gjson.ValidBytes(reply.Body) {
		providerJSON = json.RawMessage(reply.Body)
	}
	fields := cfe.ExtractProviderFields(reply.Body)

	inv := &entity.Invoice{
		ID:              uuid.NewString(),
		GymID:           gymID,
		PaymentID:       paymentID,
		MemberID:        trimmedOrNil(in.MemberID),
		MemberName:      trimmedOrNil(in.MemberName),
		Total:           *in.Amount,
		Currency:        form["moneda"],
		Status:          firstNonEmpty(fields.Status, entity.InvoiceStatusProcessed),
		InvoiceNumber:   nonEmptyOrNil(fields.Number),
		InvoiceSeries:   nonEmptyOrNil(firstNonEmpty(fields.Series, form["serie"])),
		ExternalID:      nonEmptyOrNil(fields.ExternalID),
		Environment:     cred.Environment,
		DocumentType:    documentTypeOf(form["tipo_comprobante"]),
		IssueDate:       uc.parseDate(form["fecha_emision"], today),
		DueDate:         uc.dueDate(in.Invoice),
		RequestPayload:  form,
		ResponsePayload: storedResponse(providerJSON, reply.Body),
	}

	if err := uc.invoiceRepo.Create(ctx, inv); err != nil {
		return nil, &domain.PartialSuccessError{
			InvoiceID:        inv.ID,
			InvoiceNumber:    fields.Number,
			ExternalID:       fields.ExternalID,
			ProviderResponse: providerJSON,
			RawResponse:      string(reply.Body),
			Err:              err,
		}
	}

	return &dto.IssueInvoiceResponse{
		Invoice:          *toInvoiceResponse(inv),
		ProviderResponse: providerJSON,
		RawResponse:      string(reply.Body),
	}, nil
}

// Get devuelve una factura por id.
func (uc *IssueInvoiceUseCase) Get(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: id requerido", domain.ErrInvalidInput)
	}
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: obtener factura: %w", domain.ErrDependency, err)
	}
	if inv == nil {
		return nil, fmt.Errorf("%w: factura %s", domain.ErrNotFound, id)
	}
	return toInvoiceResponse(inv), nil
}

// ListByPayment devuelve las facturas emitidas para un pago, la más reciente primero.
func (uc *IssueInvoiceUseCase) ListByPayment(ctx context.Context, gymID, paymentID string) (*dto.InvoiceListResponse, error) {
	gymID = strings.TrimSpace(gymID)
	paymentID = strings.TrimSpace(paymentID)
	if gymID == "" || paymentID == "" {
		return nil, fmt.Errorf("%w: gym_id y payment_id son requeridos", domain.ErrInvalidInput)
	}
	list, err := uc.invoiceRepo.ListByPayment(ctx, gymID, paymentID)
	if err != nil {
		return nil, fmt.Errorf("%w: listar facturas: %w", domain.ErrDependency, err)
	}
	out := &dto.InvoiceListResponse{Items: make([]dto.InvoiceResponse, 0, len(list))}
	for _, inv := range list {
		out.Items = append(out.Items, *toInvoiceResponse(inv))
	}
	out.Total = len(out.Items)
	return out, nil
}

func (uc *IssueInvoiceUseCase) parseDate(s string, fallback time.Time) time.Time {
	t, err := time.ParseInLocation(issueDateLayout, strings.TrimSpace(s), uc.loc)
	if err != nil {
		y, m, d := fallback.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, uc.loc)
	}
	return t
}

func (uc *IssueInvoiceUseCase) dueDate(invoice map[string]any) *time.Time {
	s, ok := invoice["fecha_vencimiento"].(string)
	if !ok {
		return nil
	}
	t, err := time.ParseInLocation(issueDateLayout, strings.TrimSpace(s), uc.loc)
	if err != nil {
		return nil
	}
	return &t
}

// storedResponse es lo que se guarda en response_payload: el JSON del proveedor o
// {"raw": texto} si no era JSON.
func storedResponse(providerJSON json.RawMessage, raw []byte) json.RawMessage {
	if providerJSON != nil {
		return providerJSON
	}
	b, _ := json.Marshal(map[string]string{"raw": string(raw)})
	return b
}

func documentTypeOf(s string) int {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return defaultDocumentType
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func nonEmptyOrNil(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	return nonEmptyOrNil(strings.TrimSpace(*s))
}

func toInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	out := &dto.InvoiceResponse{
		ID:              inv.ID,
		GymID:           inv.GymID,
		PaymentID:       inv.PaymentID,
		MemberID:        inv.MemberID,
		MemberName:      inv.MemberName,
		Total:           inv.Total,
		Currency:        inv.Currency,
		Status:          inv.Status,
		InvoiceNumber:   inv.InvoiceNumber,
		InvoiceSeries:   inv.InvoiceSeries,
		ExternalID:      inv.ExternalID,
		Environment:     inv.Environment,
		DocumentType:    inv.DocumentType,
		IssueDate:       inv.IssueDate.Format(issueDateLayout),
		RequestPayload:  inv.RequestPayload,
		ResponsePayload: inv.ResponsePayload,
		CreatedAt:       inv.CreatedAt,
		UpdatedAt:       inv.UpdatedAt,
	}
	if inv.DueDate != nil {
		s := inv.DueDate.Format(issueDateLayout)
		out.DueDate = &s
	}
	return out
}
