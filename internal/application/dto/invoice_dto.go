package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// IssueInvoiceRequest body para POST /api/invoices.
// Invoice son los campos CFE que manda el back office; "lineas" es obligatorio.
type IssueInvoiceRequest struct {
	GymID      string           `json:"gym_id"`
	PaymentID  string           `json:"payment_id"`
	MemberID   *string          `json:"member_id,omitempty"`
	MemberName *string          `json:"member_name,omitempty"`
	Amount     *decimal.Decimal `json:"amount"`
	Invoice    map[string]any   `json:"invoice"`
}

// InvoiceResponse factura guardada.
type InvoiceResponse struct {
	ID              string            `json:"id"`
	GymID           string            `json:"gym_id"`
	PaymentID       string            `json:"payment_id"`
	MemberID        *string           `json:"member_id"`
	MemberName      *string           `json:"member_name"`
	Total           decimal.Decimal   `json:"total"`
	Currency        string            `json:"currency"`
	Status          string            `json:"status"`
	InvoiceNumber   *string           `json:"invoice_number"`
	InvoiceSeries   *string           `json:"invoice_series"`
	ExternalID      *string           `json:"external_id"`
	Environment     *string           `json:"environment"`
	DocumentType    int               `json:"document_type"`
	IssueDate       string            `json:"issue_date"`
	DueDate         *string           `json:"due_date"`
	RequestPayload  map[string]string `json:"request_payload"`
	ResponsePayload json.RawMessage   `json:"response_payload"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// IssueInvoiceResponse resultado de la emisión: factura guardada más la respuesta
// del proveedor (parseada si era JSON, null si no) y su texto crudo.
type IssueInvoiceResponse struct {
	Invoice          InvoiceResponse `json:"invoice"`
	ProviderResponse json.RawMessage `json:"provider_response"`
	RawResponse      string          `json:"raw_response"`
}

// InvoiceListResponse facturas de un pago.
type InvoiceListResponse struct {
	Items []InvoiceResponse `json:"items"`
	Total int               `json:"total"`
}
