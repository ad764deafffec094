package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
	"github.com/jhoicas/Gimnasio-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador.
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `
		id, gym_id, payment_id, member_id, member_name, total, currency, status,
		invoice_number, invoice_series, external_id, environment, document_type,
		issue_date, due_date, request_payload::text, response_payload::text,
		created_at, updated_at`

// Create persiste la factura con los payloads de request y response.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	request, err := json.Marshal(inv.RequestPayload)
	if err != nil {
		return fmt.Errorf("encode request payload: %w", err)
	}
	response := string(inv.ResponsePayload)
	if response == "" {
		response = "null"
	}

	query := `
		INSERT INTO invoices (id, gym_id, payment_id, member_id, member_name, total, currency, status,
		                      invoice_number, invoice_series, external_id, environment, document_type,
		                      issue_date, due_date, request_payload, response_payload)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16::jsonb, $17::json)
		RETURNING created_at, updated_at`
	err = r.q.QueryRow(ctx, query,
		inv.ID, inv.GymID, inv.PaymentID, nullString(inv.MemberID), nullString(inv.MemberName),
		inv.Total, inv.Currency, inv.Status,
		nullString(inv.InvoiceNumber), nullString(inv.InvoiceSeries), nullString(inv.ExternalID),
		nullString(inv.Environment), inv.DocumentType,
		inv.IssueDate, nullTime(inv.DueDate), string(request), response,
	).Scan(&inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("insert invoice: gimnasio inexistente: %w", err)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// GetByID retorna (nil, nil) si no existe.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	row := r.q.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)
	inv, err := scanInvoice(row)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// ListByPayment lista las facturas de un pago, la más reciente primero.
func (r *InvoiceRepo) ListByPayment(ctx context.Context, gymID, paymentID string) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + `
		FROM invoices WHERE gym_id = $1 AND payment_id = $2
		ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, gymID, paymentID)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInvoice(s rowScanner) (*entity.Invoice, error) {
	var (
		inv      entity.Invoice
		request  *string
		response *string
	)
	err := s.Scan(
		&inv.ID, &inv.GymID, &inv.PaymentID, &inv.MemberID, &inv.MemberName, &inv.Total, &inv.Currency, &inv.Status,
		&inv.InvoiceNumber, &inv.InvoiceSeries, &inv.ExternalID, &inv.Environment, &inv.DocumentType,
		&inv.IssueDate, &inv.DueDate, &request, &response,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if request != nil {
		if err := json.Unmarshal([]byte(*request), &inv.RequestPayload); err != nil {
			return nil, fmt.Errorf("decode request payload: %w", err)
		}
	}
	if response != nil {
		inv.ResponsePayload = json.RawMessage(*response)
	}
	return &inv, nil
}
