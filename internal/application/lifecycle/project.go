package lifecycle

import (
	"context"
	"fmt"

	"github.com/jhoicas/EspacioDatos-api/internal/application/dto"
	"github.com/jhoicas/EspacioDatos-api/internal/domain"
	"github.com/jhoicas/EspacioDatos-api/internal/domain/entity"
	rules "github.com/jhoicas/EspacioDatos-api/internal/domain/lifecycle"
)

// GetProject proyecto de incorporación de la empresa; domain.ErrNotFound si aún no existe.
func (uc *LifecycleUseCase) GetProject(ctx context.Context, companyID string) (*dto.ProjectResponse, error) {
	c, err := uc.loadCompany(ctx, uc.repos, companyID)
	if err != nil {
		return nil, err
	}
	p, err := uc.loadProject(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := dto.ProjectFromEntity(p)
	out.CompanyName = c.Name
	return out, nil
}

// UpdateProject aplica los cambios y recalcula el checklist. Marcar la incorporación como
// completada exige los cuatro pasos cumplidos (domain.ErrPreconditionFailed si no).
func (uc *LifecycleUseCase) UpdateProject(ctx context.Context, actor *entity.User, companyID string, in dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	c, err := uc.loadCompany(ctx, uc.repos, companyID)
	if err != nil {
		return nil, err
	}
	p, err := uc.loadProject(ctx, companyID)
	if err != nil {
		return nil, err
	}
	wasCompleted := p.IncorporationStatus == entity.IncorporationCompletada

	patch := rules.ProjectPatch{
		TargetRole:          in.TargetRole,
		SpaceName:           in.SpaceName,
		UseCase:             in.UseCase,
		RGPDChecked:         in.RGPDChecked,
		IncorporationStatus: in.IncorporationStatus,
	}
	if err := rules.ApplyProjectPatch(p, patch, uc.now()); err != nil {
		return nil, err
	}
	if err := uc.repos.Projects.Update(ctx, p); err != nil {
		return nil, err
	}

	if !wasCompleted && p.IncorporationStatus == entity.IncorporationCompletada {
		uc.log.Info().Str("company_id", companyID).Str("project_id", p.ID).Msg("incorporación completada")
		uc.publish(ctx, EventProjectCompleted, companyID, actor, map[string]string{"project_id": p.ID})
	}
	out := dto.ProjectFromEntity(p)
	out.CompanyName = c.Name
	return out, nil
}

// ListProjects el personal interno ve todos los proyectos; un cliente solo el de su empresa.
func (uc *LifecycleUseCase) ListProjects(ctx context.Context, actor *entity.User) ([]dto.ProjectResponse, error) {
	out := make([]dto.ProjectResponse, 0)
	companyID := ""
	if !actor.IsStaff() {
		if actor.CompanyID == "" {
			return out, nil
		}
		companyID = actor.CompanyID
	}
	list, err := uc.repos.Projects.List(ctx, companyID)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string)
	for _, p := range list {
		item := dto.ProjectFromEntity(p)
		name, ok := names[p.CompanyID]
		if !ok {
			c, err := uc.repos.Companies.GetByID(ctx, p.CompanyID)
			if err != nil {
				return nil, err
			}
			if c != nil {
				name = c.Name
			}
			names[p.CompanyID] = name
		}
		item.CompanyName = name
		out = append(out, *item)
	}
	return out, nil
}

func (uc *LifecycleUseCase) loadProject(ctx context.Context, companyID string) (*entity.Project, error) {
	p, err := uc.repos.Projects.GetByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: proyecto no encontrado", domain.ErrNotFound)
	}
	return p, nil
}
