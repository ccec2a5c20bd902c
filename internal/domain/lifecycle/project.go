package lifecycle

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/EspacioDatos-api/internal/domain"
	"github.com/jhoicas/EspacioDatos-api/internal/domain/entity"
)

// ErrChecklistIncomplete detalle de ErrPreconditionFailed al intentar completar la incorporación.
var ErrChecklistIncomplete = fmt.Errorf("%w: completa todos los pasos del checklist antes de marcar la incorporación como completada", domain.ErrPreconditionFailed)

// ProjectPatch campos editables del proyecto (nil = sin cambio).
type ProjectPatch struct {
	TargetRole          *string
	SpaceName           *string
	UseCase             *string
	RGPDChecked         *bool
	IncorporationStatus *string
}

// ApplyProjectPatch aplica la actualización y deriva el checklist: cada campo informado
// fuerza su paso a true si queda con valor (tras trim) y a false si queda vacío; los
// pasos de campos no informados se conservan. Un proyecto solo puede quedar en
// "completada" con los cuatro pasos cumplidos. Si devuelve error, p puede haber sido
// modificado y no debe persistirse.
func ApplyProjectPatch(p *entity.Project, patch ProjectPatch, now time.Time) error {
	if patch.TargetRole != nil {
		switch role := strings.TrimSpace(*patch.TargetRole); role {
		case "", entity.TargetRoleParticipante, entity.TargetRoleProveedor:
		default:
			return fmt.Errorf("%w: target_role debe ser participante o proveedor", domain.ErrInvalidInput)
		}
	}
	if patch.IncorporationStatus != nil {
		switch *patch.IncorporationStatus {
		case entity.IncorporationPendiente, entity.IncorporationEnProgreso, entity.IncorporationCompletada:
		default:
			return fmt.Errorf("%w: incorporation_status no reconocido", domain.ErrInvalidInput)
		}
	}

	if patch.TargetRole != nil {
		p.TargetRole = strings.TrimSpace(*patch.TargetRole)
		p.Checklist.RolDefinido = p.TargetRole != ""
	}
	if patch.SpaceName != nil {
		p.SpaceName = strings.TrimSpace(*patch.SpaceName)
		p.Checklist.EspacioSeleccionado = p.SpaceName != ""
	}
	if patch.UseCase != nil {
		p.UseCase = strings.TrimSpace(*patch.UseCase)
		p.Checklist.CasoUsoDefinido = p.UseCase != ""
	}
	if patch.RGPDChecked != nil {
		p.RGPDChecked = *patch.RGPDChecked
		p.Checklist.ValidacionRGPD = p.RGPDChecked
	}
	if patch.IncorporationStatus != nil {
		p.IncorporationStatus = *patch.IncorporationStatus
	}

	if p.IncorporationStatus == entity.IncorporationCompletada && !p.Checklist.Complete() {
		return ErrChecklistIncomplete
	}
	p.UpdatedAt = now
	return nil
}
