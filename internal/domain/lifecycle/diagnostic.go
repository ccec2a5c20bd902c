// Package lifecycle contiene las reglas puras de la máquina de estados
// Empresa → Diagnóstico → Proyecto/Intake. No conoce persistencia ni HTTP:
// recibe entidades cargadas, las muta en memoria y devuelve errores de dominio.
package lifecycle

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/EspacioDatos-api/internal/domain"
	"github.com/jhoicas/EspacioDatos-api/internal/domain/entity"
)

// DiagnosticPatch campos editables del diagnóstico (nil = sin cambio).
type DiagnosticPatch struct {
	EligibilityOK   *bool
	SpaceIdentified *bool
	DataPotential   *bool
	LegalRisk       *string
	Notes           *string
}

// NewDiagnostic diagnóstico inicial que acompaña a toda empresa recién creada.
func NewDiagnostic(companyID string, now time.Time) *entity.Diagnostic {
	return &entity.Diagnostic{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Result:    entity.DiagnosticPendiente,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ApplyDiagnosticPatch aplica una actualización parcial. Solo se permite mientras el
// resultado sea pendiente; un diagnóstico decidido queda congelado.
func ApplyDiagnosticPatch(d *entity.Diagnostic, p DiagnosticPatch, now time.Time) error {
	if d.IsDecided() {
		return fmt.Errorf("%w: el diagnóstico ya fue decidido", domain.ErrInvalidState)
	}
	if p.LegalRisk != nil && *p.LegalRisk != "" && !entity.ValidRisk(*p.LegalRisk) {
		return fmt.Errorf("%w: legal_risk debe ser bajo, medio o alto", domain.ErrInvalidInput)
	}
	if p.EligibilityOK != nil {
		d.EligibilityOK = *p.EligibilityOK
	}
	if p.SpaceIdentified != nil {
		d.SpaceIdentified = *p.SpaceIdentified
	}
	if p.DataPotential != nil {
		d.DataPotential = *p.DataPotential
	}
	if p.LegalRisk != nil {
		d.LegalRisk = *p.LegalRisk
	}
	if p.Notes != nil {
		d.Notes = *p.Notes
	}
	d.UpdatedAt = now
	return nil
}

// Decide registra la decisión sobre el diagnóstico y mueve la empresa a su estado terminal.
// Para "apta" devuelve el proyecto de incorporación que debe persistirse junto con la
// decisión; para "no_apta" devuelve nil. Un segundo intento falla con ErrInvalidState.
func Decide(d *entity.Diagnostic, c *entity.Company, result, actorID string, now time.Time) (*entity.Project, error) {
	if result != entity.DiagnosticApta && result != entity.DiagnosticNoApta {
		return nil, fmt.Errorf("%w: result debe ser apta o no_apta", domain.ErrInvalidInput)
	}
	if d.IsDecided() {
		return nil, fmt.Errorf("%w: el diagnóstico ya fue decidido", domain.ErrInvalidState)
	}
	if d.CompanyID != c.ID {
		return nil, fmt.Errorf("lifecycle: diagnóstico %s no pertenece a la empresa %s", d.ID, c.ID)
	}

	decidedAt := now
	d.Result = result
	d.DecidedBy = actorID
	d.DecidedAt = &decidedAt
	d.UpdatedAt = now
	c.UpdatedAt = now

	if result == entity.DiagnosticNoApta {
		c.Status = entity.CompanyStatusDescartada
		return nil, nil
	}
	c.Status = entity.CompanyStatusApta
	return NewIncorporationProject(c, now), nil
}

// NewIncorporationProject proyecto de fase 2 con el checklist vacío.
func NewIncorporationProject(c *entity.Company, now time.Time) *entity.Project {
	return &entity.Project{
		ID:                  uuid.New().String(),
		CompanyID:           c.ID,
		Title:               "Incorporación " + c.Name,
		Phase:               entity.ProjectPhaseIncorporation,
		Status:              entity.ProjectStatusIniciado,
		IncorporationStatus: entity.IncorporationPendiente,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}
