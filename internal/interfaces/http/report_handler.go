package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/EspacioDatos-api/internal/application/report"
)

// ReportHandler descarga del informe PDF de incorporación.
type ReportHandler struct {
	uc *report.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Company godoc
// @Summary      Informe PDF de la empresa
// @Tags         companies
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/report [get]
func (h *ReportHandler) Company(c *fiber.Ctx) error {
	rep, err := h.uc.CompanyReport(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", rep.Filename))
	return c.Send(rep.Content)
}
