package lifecycle

import (
	"context"
	"fmt"

	"github.com/jhoicas/EspacioDatos-api/internal/application/dto"
	"github.com/jhoicas/EspacioDatos-api/internal/domain"
	"github.com/jhoicas/EspacioDatos-api/internal/domain/entity"
	rules "github.com/jhoicas/EspacioDatos-api/internal/domain/lifecycle"
)

// GetDiagnostic diagnóstico de la empresa.
func (uc *LifecycleUseCase) GetDiagnostic(ctx context.Context, companyID string) (*dto.DiagnosticResponse, error) {
	if _, err := uc.loadCompany(ctx, uc.repos, companyID); err != nil {
		return nil, err
	}
	d, err := uc.repos.Diagnostics.GetByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, fmt.Errorf("%w: diagnóstico no encontrado", domain.ErrNotFound)
	}
	return dto.DiagnosticFromEntity(d), nil
}

// UpdateDiagnostic edita el diagnóstico mientras siga pendiente. La fila se bloquea para
// no pisar una decisión concurrente.
func (uc *LifecycleUseCase) UpdateDiagnostic(ctx context.Context, companyID string, in dto.UpdateDiagnosticRequest) (*dto.DiagnosticResponse, error) {
	var out *entity.Diagnostic
	err := uc.tx.RunLifecycle(ctx, func(r Repos) error {
		if _, err := uc.loadCompany(ctx, r, companyID); err != nil {
			return err
		}
		d, err := loadDiagnosticForUpdate(ctx, r, companyID)
		if err != nil {
			return err
		}
		patch := rules.DiagnosticPatch{
			EligibilityOK:   in.EligibilityOK,
			SpaceIdentified: in.SpaceIdentified,
			DataPotential:   in.DataPotential,
			LegalRisk:       in.LegalRisk,
			Notes:           in.Notes,
		}
		if err := rules.ApplyDiagnosticPatch(d, patch, uc.now()); err != nil {
			return err
		}
		out = d
		return r.Diagnostics.Update(ctx, d)
	})
	if err != nil {
		return nil, err
	}
	return dto.DiagnosticFromEntity(out), nil
}

// Decide registra la decisión final. En una sola transacción bloquea el diagnóstico,
// comprueba que sigue pendiente, mueve la empresa a apta/descartada y, si es apta, crea
// el proyecto de incorporación. Una segunda decisión devuelve domain.ErrInvalidState.
func (uc *LifecycleUseCase) Decide(ctx context.Context, actor *entity.User, companyID string, in dto.DecideRequest) (*dto.DecideResponse, error) {
	var (
		company    *entity.Company
		diagnostic *entity.Diagnostic
		project    *entity.Project
	)
	err := uc.tx.RunLifecycle(ctx, func(r Repos) error {
		c, err := uc.loadCompany(ctx, r, companyID)
		if err != nil {
			return err
		}
		d, err := loadDiagnosticForUpdate(ctx, r, companyID)
		if err != nil {
			return err
		}
		p, err := rules.Decide(d, c, in.Result, actor.ID, uc.now())
		if err != nil {
			return err
		}
		if err := r.Diagnostics.Update(ctx, d); err != nil {
			return err
		}
		if err := r.Companies.Update(ctx, c); err != nil {
			return err
		}
		if p != nil {
			if err := r.Projects.Create(ctx, p); err != nil {
				return err
			}
		}
		company, diagnostic, project = c, d, p
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("company_id", companyID).
		Str("result", diagnostic.Result).
		Str("decided_by", actor.ID).
		Msg("diagnóstico decidido")
	uc.publish(ctx, EventDiagnosticDecided, companyID, actor, map[string]string{"result": diagnostic.Result})

	out := &dto.DecideResponse{
		Diagnostic: *dto.DiagnosticFromEntity(diagnostic),
		Company:    *dto.CompanyFromEntity(company),
		Project:    dto.ProjectFromEntity(project),
	}
	return out, nil
}

func loadDiagnosticForUpdate(ctx context.Context, r Repos, companyID string) (*entity.Diagnostic, error) {
	d, err := r.Diagnostics.GetByCompanyForUpdate(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, fmt.Errorf("%w: diagnóstico no encontrado", domain.ErrNotFound)
	}
	return d, nil
}
