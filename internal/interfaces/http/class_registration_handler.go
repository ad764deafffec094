package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Gimnasio-api/internal/application/classes"
	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
)

// ClassRegistrationHandler inscripciones a clases.
type ClassRegistrationHandler struct {
	uc *classes.RegisterAttendeeUseCase
}

// NewClassRegistrationHandler construye el handler.
func NewClassRegistrationHandler(uc *classes.RegisterAttendeeUseCase) *ClassRegistrationHandler {
	return &ClassRegistrationHandler{uc: uc}
}

// Create inscribe a una persona en una clase si no empezó y hay cupo.
// @Summary      Inscribir a una clase
// @Tags         classes
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateClassRegistrationRequest  true  "gym_id, session_id, full_name, email, phone"
// @Success      200   {object}  dto.ClassRegistrationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "CLASS_STARTED o SESSION_FULL"
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/class-registrations [post]
func (h *ClassRegistrationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateClassRegistrationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Register(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(out)
}

// List godoc
// @Summary      Inscripciones de una clase
// @Tags         classes
// @Produce      json
// @Param        gym_id      query  string  true  "ID del gimnasio"
// @Param        session_id  query  string  true  "ID de la clase"
// @Success      200  {object}  dto.ClassRegistrationListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/class-registrations [get]
func (h *ClassRegistrationHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), c.Query("gym_id"), c.Query("session_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
