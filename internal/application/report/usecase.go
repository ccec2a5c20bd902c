// Package report arma el informe PDF de incorporación de una empresa.
package report

import (
	"context"
	"fmt"

	"github.com/jhoicas/EspacioDatos-api/internal/domain"
	"github.com/jhoicas/EspacioDatos-api/internal/domain/entity"
	"github.com/jhoicas/EspacioDatos-api/internal/domain/repository"
)

// Generator puerto de salida que renderiza el informe (implementado en infrastructure/pdf).
type Generator interface {
	GenerateCompanyReport(
		ctx context.Context,
		company *entity.Company,
		diag *entity.Diagnostic,
		project *entity.Project,
		intake *entity.ClientIntake,
	) ([]byte, error)
}

// Report documento listo para descargar.
type Report struct {
	Filename string
	Content  []byte
}

// ReportUseCase reúne el expediente de la empresa y delega el render.
type ReportUseCase struct {
	companies   repository.CompanyRepository
	diagnostics repository.DiagnosticRepository
	projects    repository.ProjectRepository
	intakes     repository.IntakeRepository
	gen         Generator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	companies repository.CompanyRepository,
	diagnostics repository.DiagnosticRepository,
	projects repository.ProjectRepository,
	intakes repository.IntakeRepository,
	gen Generator,
) *ReportUseCase {
	return &ReportUseCase{companies: companies, diagnostics: diagnostics, projects: projects, intakes: intakes, gen: gen}
}

// CompanyReport genera el informe de companyID. ErrNotFound si la empresa no existe.
func (uc *ReportUseCase) CompanyReport(ctx context.Context, companyID string) (*Report, error) {
	company, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	diag, err := uc.diagnostics.GetByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	project, err := uc.projects.GetByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	intake, err := uc.intakes.GetByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	content, err := uc.gen.GenerateCompanyReport(ctx, company, diag, project, intake)
	if err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	return &Report{Filename: fmt.Sprintf("informe-%s.pdf", company.NIF), Content: content}, nil
}
