package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/EspacioDatos-api/internal/application/dashboard"
)

// DashboardHandler panel del cliente.
type DashboardHandler struct {
	uc *dashboard.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *dashboard.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Client devuelve el estado de la empresa del cliente autenticado.
// GET /api/client/dashboard
//
// Sin empresa vinculada responde status "sin_empresa"; si no, en_evaluacion, apta o
// no_apta con el resumen de la empresa y, si existen, el intake y el proyecto.
//
// @Summary      Panel del cliente
// @Tags         client
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ClientDashboardResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/client/dashboard [get]
func (h *DashboardHandler) Client(c *fiber.Ctx) error {
	out, err := h.uc.ClientDashboard(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
