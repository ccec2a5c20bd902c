package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/EspacioDatos-api/internal/application/dto"
	"github.com/jhoicas/EspacioDatos-api/internal/application/lifecycle"
)

// DiagnosticHandler diagnóstico y decisión de una empresa (personal interno).
type DiagnosticHandler struct {
	uc *lifecycle.LifecycleUseCase
}

// NewDiagnosticHandler construye el handler.
func NewDiagnosticHandler(uc *lifecycle.LifecycleUseCase) *DiagnosticHandler {
	return &DiagnosticHandler{uc: uc}
}

// Get godoc
// @Summary      Diagnóstico de la empresa
// @Tags         diagnostic
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.DiagnosticResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/diagnostic [get]
func (h *DiagnosticHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetDiagnostic(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar criterios del diagnóstico (solo mientras esté pendiente)
// @Tags         diagnostic
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                       true  "ID de la empresa"
// @Param        body  body  dto.UpdateDiagnosticRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.DiagnosticResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/diagnostic [put]
func (h *DiagnosticHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateDiagnosticRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.UpdateDiagnostic(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Decide godoc
// @Summary      Decidir el diagnóstico (apta crea el proyecto de incorporación)
// @Tags         diagnostic
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string             true  "ID de la empresa"
// @Param        body  body  dto.DecideRequest  true  "apta | no_apta"
// @Success      200   {object}  dto.DecideResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/diagnostic/decide [post]
func (h *DiagnosticHandler) Decide(c *fiber.Ctx) error {
	var in dto.DecideRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Decide(c.UserContext(), GetUser(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
