package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
	"github.com/jhoicas/Gimnasio-api/internal/domain"
)

// respondError traduce errores de dominio a status HTTP y cuerpo dto.ErrorResponse.
func respondError(c *fiber.Ctx, err error) error {
	var (
		missing *domain.MissingCredentialsError
		partial *domain.PartialSuccessError
		up      *domain.UpstreamError
	)
	switch {
	case errors.As(err, &missing):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "MISSING_CREDENTIALS",
			Message: err.Error(),
			Details: map[string]any{"fields": missing.Fields},
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrClassStarted):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CLASS_STARTED", Message: err.Error()})
	case errors.Is(err, domain.ErrSessionFull):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SESSION_FULL", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.As(err, &partial):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code:    "PARTIAL_SUCCESS",
			Message: "la factura fue emitida por el proveedor pero no se pudo registrar",
			Details: map[string]any{
				"invoice_id":        partial.InvoiceID,
				"invoice_number":    partial.InvoiceNumber,
				"external_id":       partial.ExternalID,
				"provider_response": partial.ProviderResponse,
				"raw_response":      partial.RawResponse,
			},
		})
	case errors.As(err, &up):
		resp := dto.ErrorResponse{Code: "UPSTREAM_ERROR", Message: err.Error()}
		if up.StatusCode != 0 {
			resp.Details = map[string]any{"status": up.StatusCode, "body": up.Body}
		}
		return c.Status(fiber.StatusBadGateway).JSON(resp)
	case errors.Is(err, domain.ErrDependency):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "STORE_ERROR", Message: "error al acceder a los datos"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}

// ErrorHandler para fiber.Config: errores no manejados por los handlers (404 de ruta, panics recuperados).
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: fe.Message})
	}
	return respondError(c, err)
}
