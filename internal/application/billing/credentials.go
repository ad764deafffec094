package billing

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gimnasio-api/internal/domain"
	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
)

// ProviderDefaults valores de facturación del proceso, usados cuando el gimnasio no
// define los suyos. Vienen de la configuración (INVOICE_*), por eso son texto.
type ProviderDefaults struct {
	UserID       string
	CompanyID    string
	BranchCode   string
	BranchID     string
	Password     string
	Environment  string
	CustomerID   string
	Series       string
	Currency     string
	Cotizacion   string
	DocumentType string
	TransferType string
	Rutneg       string
}

// Credentials credenciales y parámetros CFE ya resueltos para un gimnasio.
// Los punteros nil significan "no definido en ninguna capa".
type Credentials struct {
	UserID       string
	CompanyID    string
	BranchCode   string
	BranchID     string
	Password     string
	Environment  *string
	CustomerID   string
	Series       string
	Currency     string
	Cotizacion   *decimal.Decimal
	DocumentType *int
	TransferType *int
	Rutneg       string
}

// firstValid recorre las capas en orden y devuelve el primer valor presente y válido.
func firstValid[T any](valid func(T) bool, layers ...*T) (T, bool) {
	for _, v := range layers {
		if v != nil && valid(*v) {
			return *v, true
		}
	}
	var zero T
	return zero, false
}

func nonBlank(s string) bool { return strings.TrimSpace(s) != "" }

func positiveCode(n int) bool { return n > 0 }

func anyDecimal(decimal.Decimal) bool { return true }

func resolveString(layers ...*string) string {
	v, _ := firstValid(nonBlank, layers...)
	return strings.TrimSpace(v)
}

func resolveCode(layers ...*int) *int {
	if v, ok := firstValid(positiveCode, layers...); ok {
		return &v
	}
	return nil
}

func resolveDecimal(layers ...*decimal.Decimal) *decimal.Decimal {
	if v, ok := firstValid(anyDecimal, layers...); ok {
		return &v
	}
	return nil
}

func textLayer(s string) *string { return &s }

func intLayer(s string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &n
}

func decimalLayer(s string) *decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &d
}

func nullDecimalLayer(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	return &d.Decimal
}

// NormalizeEnvironment acepta solo TEST o PROD (sin distinguir mayúsculas).
func NormalizeEnvironment(s string) *string {
	switch v := strings.ToUpper(strings.TrimSpace(s)); v {
	case entity.InvoiceEnvTest, entity.InvoiceEnvProd:
		return &v
	}
	return nil
}

// ResolveCredentials combina la configuración del gimnasio con los valores del proceso:
// por campo gana el primero presente y válido. Si después de eso falta alguna credencial
// obligatoria retorna *domain.MissingCredentialsError con sus etiquetas.
func ResolveCredentials(gym entity.GymBillingSettings, def ProviderDefaults) (Credentials, error) {
	c := Credentials{
		UserID:       resolveString(gym.UserID, textLayer(def.UserID)),
		CompanyID:    resolveString(gym.CompanyID, textLayer(def.CompanyID)),
		BranchCode:   resolveString(gym.BranchCode, textLayer(def.BranchCode)),
		BranchID:     resolveString(gym.BranchID, textLayer(def.BranchID)),
		Password:     resolveString(gym.Password, textLayer(def.Password)),
		Environment:  NormalizeEnvironment(resolveString(gym.Environment, textLayer(def.Environment))),
		CustomerID:   resolveString(gym.CustomerID, textLayer(def.CustomerID)),
		Series:       resolveString(gym.Series, textLayer(def.Series)),
		Currency:     resolveString(gym.Currency, textLayer(def.Currency)),
		Cotizacion:   resolveDecimal(nullDecimalLayer(gym.Cotizacion), decimalLayer(def.Cotizacion)),
		DocumentType: resolveCode(gym.DocumentType, intLayer(def.DocumentType)),
		TransferType: resolveCode(gym.TransferType, intLayer(def.TransferType)),
		Rutneg:       resolveString(gym.Rutneg, textLayer(def.Rutneg)),
	}

	var missing []string
	for _, f := range []struct {
		label string
		value string
	}{
		{"user_id", c.UserID},
		{"company_id", c.CompanyID},
		{"branch_code", c.BranchCode},
		{"branch_id", c.BranchID},
		{"password", c.Password},
	} {
		if f.value == "" {
			missing = append(missing, f.label)
		}
	}
	if len(missing) > 0 {
		return c, &domain.MissingCredentialsError{Fields: missing}
	}
	return c, nil
}
