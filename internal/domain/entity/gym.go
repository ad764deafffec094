package entity

import "github.com/shopspring/decimal"

// Gym representa un gimnasio (tenant). Solo se modelan los campos que usa la
// facturación electrónica; el resto del registro lo administra el back office.
type Gym struct {
	ID      string
	Name    string
	Billing GymBillingSettings
}

// GymBillingSettings credenciales y parámetros CFE propios del gimnasio.
// nil = el gimnasio no lo define y se usa el valor por defecto del proceso.
type GymBillingSettings struct {
	UserID       *string
	CompanyID    *string
	BranchCode   *string
	BranchID     *string
	Password     *string
	Environment  *string
	CustomerID   *string
	Series       *string
	Currency     *string
	Cotizacion   decimal.NullDecimal
	DocumentType *int
	TransferType *int
	Rutneg       *string
}
