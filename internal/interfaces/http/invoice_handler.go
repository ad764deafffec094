package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Gimnasio-api/internal/application/billing"
	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
)

// InvoiceHandler emisión y consulta de facturas electrónicas.
type InvoiceHandler struct {
	issueUC *billing.IssueInvoiceUseCase
	pdfUC   *billing.PDFUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(issueUC *billing.IssueInvoiceUseCase, pdfUC *billing.PDFUseCase) *InvoiceHandler {
	return &InvoiceHandler{issueUC: issueUC, pdfUC: pdfUC}
}

// Issue emite el CFE de un pago.
// @Summary      Emitir factura electrónica
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IssueInvoiceRequest  true  "gym_id, payment_id, amount, invoice (lineas obligatorio)"
// @Success      200   {object}  dto.IssueInvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse  "VALIDATION o MISSING_CREDENTIALS"
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse  "PARTIAL_SUCCESS o STORE_ERROR"
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Issue(c *fiber.Ctx) error {
	var in dto.IssueInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.issueUC.Issue(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(out)
}

// List godoc
// @Summary      Facturas de un pago
// @Tags         invoices
// @Produce      json
// @Param        gym_id      query  string  true  "ID del gimnasio"
// @Param        payment_id  query  string  true  "ID del pago"
// @Success      200  {object}  dto.InvoiceListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	out, err := h.issueUC.ListByPayment(c.Context(), c.Query("gym_id"), c.Query("payment_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener factura
// @Tags         invoices
// @Produce      json
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.issueUC.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DownloadPDF devuelve el PDF del comprobante como adjunto.
// @Summary      Descargar PDF de la factura
// @Tags         invoices
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse  "factura inexistente o PDF aún no disponible"
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/pdf [get]
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	pdf, filename, err := h.pdfUC.Download(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Status(fiber.StatusOK).Send(pdf)
}
