package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound       = errors.New("recurso no encontrado")
	ErrInvalidInput   = errors.New("entrada inválida")
	ErrConflict       = errors.New("conflicto con el estado actual")
	ErrDependency     = errors.New("error en el almacenamiento")
	ErrUpstream       = errors.New("error del proveedor externo")
	ErrPartialSuccess = errors.New("operación externa completada pero no registrada")
)

// Conflictos de admisión a clases. Mensajes distintos para que el operador
// distinga una clase llena de una clase ya iniciada.
var (
	ErrClassStarted = fmt.Errorf("%w: la clase ya comenzó", ErrConflict)
	ErrSessionFull  = fmt.Errorf("%w: sesión llena", ErrConflict)
)

// MissingCredentialsError indica qué credenciales de facturación obligatorias
// quedaron vacías después de aplicar los valores por defecto.
type MissingCredentialsError struct {
	Fields []string
}

func (e *MissingCredentialsError) Error() string {
	return "faltan credenciales de facturación: " + strings.Join(e.Fields, ", ")
}

func (e *MissingCredentialsError) Unwrap() error { return ErrInvalidInput }

// UpstreamError respuesta no exitosa del proveedor (o fallo de red al contactarlo).
// StatusCode es 0 cuando no hubo respuesta HTTP.
type UpstreamError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("proveedor de facturación: %v", e.Err)
	}
	return fmt.Sprintf("proveedor de facturación respondió %d", e.StatusCode)
}

func (e *UpstreamError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrUpstream, e.Err}
	}
	return []error{ErrUpstream}
}

// PartialSuccessError el comprobante fue emitido por el proveedor pero no se pudo
// guardar localmente. Lleva el id local asignado, los identificadores del proveedor
// y su respuesta para conciliar a mano.
type PartialSuccessError struct {
	InvoiceID        string
	InvoiceNumber    string
	ExternalID       string
	ProviderResponse any
	RawResponse      string
	Err              error
}

func (e *PartialSuccessError) Error() string {
	return fmt.Sprintf("factura %s emitida pero no registrada: %v", e.InvoiceID, e.Err)
}

func (e *PartialSuccessError) Unwrap() []error {
	return []error{ErrPartialSuccess, e.Err}
}
