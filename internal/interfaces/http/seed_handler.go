package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/EspacioDatos-api/internal/application/seed"
)

// SeedHandler endpoints de demostración (solo si SEED_ENABLED).
type SeedHandler struct {
	uc *seed.SeedUseCase
}

// NewSeedHandler construye el handler.
func NewSeedHandler(uc *seed.SeedUseCase) *SeedHandler {
	return &SeedHandler{uc: uc}
}

// Users godoc
// @Summary      Crear usuarios demo (admin, asesor, cliente)
// @Tags         seed
// @Produce      json
// @Success      200  {object}  dto.SeedResponse
// @Router       /api/seed-demo-users [post]
func (h *SeedHandler) Users(c *fiber.Ctx) error {
	out, err := h.uc.SeedUsers(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Companies godoc
// @Summary      Crear empresas demo (lead, apta, descartada) con sus clientes
// @Tags         seed
// @Produce      json
// @Success      200  {object}  dto.SeedResponse
// @Router       /api/seed-demo-companies [post]
func (h *SeedHandler) Companies(c *fiber.Ctx) error {
	out, err := h.uc.SeedCompanies(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
