// Package dashboard compone el panel de solo lectura que ve el usuario cliente.
package dashboard

import (
	"context"

	"github.com/jhoicas/EspacioDatos-api/internal/application/dto"
	"github.com/jhoicas/EspacioDatos-api/internal/domain"
	"github.com/jhoicas/EspacioDatos-api/internal/domain/entity"
	"github.com/jhoicas/EspacioDatos-api/internal/domain/repository"
)

// Estados del panel del cliente.
const (
	StatusSinEmpresa   = "sin_empresa"
	StatusEnEvaluacion = "en_evaluacion"
	StatusApta         = "apta"
	StatusNoApta       = "no_apta"
)

type panelText struct{ title, message string }

var texts = map[string]panelText{
	StatusSinEmpresa: {
		"Sin empresa asignada",
		"Tu cuenta todavía no está vinculada a ninguna empresa. Contacta con tu asesor para completar el alta.",
	},
	StatusEnEvaluacion: {
		"Tu empresa está en evaluación",
		"Nuestro equipo está analizando el encaje de tu empresa en el espacio de datos. Completa el cuestionario para agilizar el diagnóstico.",
	},
	StatusApta: {
		"Tu empresa es apta",
		"Tu empresa ha sido aprobada para incorporarse al espacio de datos. Aquí puedes seguir el progreso de la incorporación.",
	},
	StatusNoApta: {
		"Tu empresa no es apta por ahora",
		"Tras el diagnóstico, tu empresa no cumple en este momento los requisitos de incorporación. Tu asesor se pondrá en contacto contigo.",
	},
}

var statusByCompany = map[string]string{
	entity.CompanyStatusLead:       StatusEnEvaluacion,
	entity.CompanyStatusApta:       StatusApta,
	entity.CompanyStatusDescartada: StatusNoApta,
}

// DashboardUseCase compone el panel a partir del estado persistido. No escribe nada.
type DashboardUseCase struct {
	users     repository.UserRepository
	companies repository.CompanyRepository
	intakes   repository.IntakeRepository
	projects  repository.ProjectRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	users repository.UserRepository,
	companies repository.CompanyRepository,
	intakes repository.IntakeRepository,
	projects repository.ProjectRepository,
) *DashboardUseCase {
	return &DashboardUseCase{users: users, companies: companies, intakes: intakes, projects: projects}
}

// ClientDashboard panel del usuario. Sin empresa vinculada devuelve solo el estado
// sin_empresa; en otro caso incluye el resumen de la empresa y, cuando existen, el
// cuestionario y el proyecto.
func (uc *DashboardUseCase) ClientDashboard(ctx context.Context, userID string) (*dto.ClientDashboardResponse, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.CompanyID == "" {
		return withTexts(StatusSinEmpresa), nil
	}
	company, err := uc.companies.GetByID(ctx, user.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return withTexts(StatusSinEmpresa), nil
	}

	status, ok := statusByCompany[company.Status]
	if !ok {
		status = StatusEnEvaluacion
	}
	out := withTexts(status)
	out.Company = &dto.DashboardCompanySummary{
		ID:           company.ID,
		Name:         company.Name,
		NIF:          company.NIF,
		Sector:       company.Sector,
		Status:       company.Status,
		IntakeStatus: company.IntakeStatus,
	}

	intake, err := uc.intakes.GetByCompany(ctx, company.ID)
	if err != nil {
		return nil, err
	}
	out.Intake = dto.IntakeFromEntity(intake)

	project, err := uc.projects.GetByCompany(ctx, company.ID)
	if err != nil {
		return nil, err
	}
	if project != nil {
		out.Project = dto.ProjectFromEntity(project)
		out.Project.CompanyName = company.Name
	}
	return out, nil
}

func withTexts(status string) *dto.ClientDashboardResponse {
	t := texts[status]
	return &dto.ClientDashboardResponse{Status: status, Title: t.title, Message: t.message}
}
