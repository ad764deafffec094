package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Estado por defecto cuando el proveedor no informa uno.
const InvoiceStatusProcessed = "procesado"

// Ambientes del proveedor CFE.
const (
	InvoiceEnvTest = "TEST"
	InvoiceEnvProd = "PROD"
)

// Invoice comprobante fiscal electrónico emitido para un pago.
// RequestPayload y ResponsePayload se guardan tal cual para auditoría.
type Invoice struct {
	ID              string
	GymID           string
	PaymentID       string
	MemberID        *string
	MemberName      *string
	Total           decimal.Decimal
	Currency        string
	Status          string
	InvoiceNumber   *string
	InvoiceSeries   *string
	ExternalID      *string
	Environment     *string
	DocumentType    int
	IssueDate       time.Time
	DueDate         *time.Time
	RequestPayload  map[string]string
	ResponsePayload json.RawMessage
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
