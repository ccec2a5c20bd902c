package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/EspacioDatos-api/internal/application/dto"
	"github.com/jhoicas/EspacioDatos-api/internal/application/usecase"
	"github.com/jhoicas/EspacioDatos-api/internal/infrastructure/leadimport"
)

// LeadImportHandler alta masiva de leads desde CSV.
type LeadImportHandler struct {
	uc *usecase.LeadImportUseCase
}

// NewLeadImportHandler construye el handler.
func NewLeadImportHandler(uc *usecase.LeadImportUseCase) *LeadImportHandler {
	return &LeadImportHandler{uc: uc}
}

// LeadImportResult respuesta del endpoint: altas más filas descartadas por el lector.
type LeadImportResult struct {
	dto.LeadImportResponse
	Rejected []string `json:"rejected"`
}

// Import godoc
// @Summary      Importar leads desde CSV (coma o punto y coma)
// @Tags         companies
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        file      formData  file    true   "CSV con cabecera: nombre, nif, sector, tamaño, país, contacto, cargo, teléfono, email"
// @Param        encoding  query     string  false  "utf-8 (defecto) | iso-8859-1"
// @Success      200  {object}  LeadImportResult
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/companies/import [post]
func (h *LeadImportHandler) Import(c *fiber.Ctx) error {
	enc := leadimport.Encoding(c.Query("encoding", string(leadimport.UTF8)))
	if enc != leadimport.UTF8 && enc != leadimport.Latin1 {
		return writeError(c, &requestError{code: "INVALID_QUERY", msg: "encoding debe ser utf-8 o iso-8859-1"})
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return writeError(c, &requestError{code: "INVALID_BODY", msg: "falta el fichero CSV (campo file)"})
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, err)
	}
	defer f.Close()

	rows, rejected, err := leadimport.Read(f, enc)
	if err != nil {
		return writeError(c, &requestError{code: "INVALID_BODY", msg: err.Error()})
	}
	reqs := make([]dto.CreateCompanyRequest, 0, len(rows))
	for _, r := range rows {
		reqs = append(reqs, r.Request)
	}
	out, err := h.uc.Import(c.UserContext(), GetUser(c), reqs)
	if err != nil {
		return writeError(c, err)
	}
	res := LeadImportResult{LeadImportResponse: *out, Rejected: make([]string, 0, len(rejected))}
	for _, r := range rejected {
		res.Rejected = append(res.Rejected, r.Error())
	}
	return c.JSON(res)
}
