package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/EspacioDatos-api/internal/application/dto"
	"github.com/jhoicas/EspacioDatos-api/internal/application/lifecycle"
)

// IntakeHandler cuestionario de alta de la empresa cliente.
type IntakeHandler struct {
	uc *lifecycle.LifecycleUseCase
}

// NewIntakeHandler construye el handler.
func NewIntakeHandler(uc *lifecycle.LifecycleUseCase) *IntakeHandler {
	return &IntakeHandler{uc: uc}
}

// Get godoc
// @Summary      Cuestionario de la empresa
// @Tags         intake
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.IntakeResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/intake [get]
func (h *IntakeHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetIntake(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Save godoc
// @Summary      Guardar el cuestionario (el cliente solo mientras no esté enviado)
// @Tags         intake
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string             true  "ID de la empresa"
// @Param        body  body  dto.IntakeRequest  true  "Contenido del cuestionario"
// @Success      200   {object}  dto.IntakeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/intake [post]
func (h *IntakeHandler) Save(c *fiber.Ctx) error {
	var in dto.IntakeRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.SaveIntake(c.UserContext(), GetUser(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Submit godoc
// @Summary      Enviar el cuestionario
// @Tags         intake
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.IntakeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/intake/submit [post]
func (h *IntakeHandler) Submit(c *fiber.Ctx) error {
	out, err := h.uc.SubmitIntake(c.UserContext(), GetUser(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Reset godoc
// @Summary      Reabrir un cuestionario enviado
// @Tags         intake
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.IntakeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/intake/reset [post]
func (h *IntakeHandler) Reset(c *fiber.Ctx) error {
	out, err := h.uc.ResetIntake(c.UserContext(), GetUser(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
