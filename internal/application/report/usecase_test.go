package report_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/EspacioDatos-api/internal/application/report"
	"github.com/jhoicas/EspacioDatos-api/internal/domain"
	"github.com/jhoicas/EspacioDatos-api/internal/domain/entity"
	"github.com/jhoicas/EspacioDatos-api/internal/infrastructure/memory"
)

// captureGenerator registra lo que recibe en lugar de renderizar.
type captureGenerator struct {
	company *entity.Company
	diag    *entity.Diagnostic
	project *entity.Project
	intake  *entity.ClientIntake
	err     error
}

func (g *captureGenerator) GenerateCompanyReport(_ context.Context, c *entity.Company, d *entity.Diagnostic, p *entity.Project, in *entity.ClientIntake) ([]byte, error) {
	g.company, g.diag, g.project, g.intake = c, d, p, in
	if g.err != nil {
		return nil, g.err
	}
	return []byte("%PDF-fake"), nil
}

func seed(t *testing.T, store *memory.Store) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()
	require.NoError(t, store.Companies().Create(ctx, &entity.Company{
		ID: "c-1", Name: "Acme", NIF: "B12345678",
		Status: entity.CompanyStatusLead, IntakeStatus: entity.IntakeStatusPendiente,
		CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, store.Diagnostics().Create(ctx, &entity.Diagnostic{
		ID: "d-1", CompanyID: "c-1", Result: entity.DiagnosticPendiente, CreatedAt: now, UpdatedAt: now,
	}))
}

func TestCompanyReport_ReuneExpediente(t *testing.T) {
	store := memory.NewStore()
	seed(t, store)
	gen := &captureGenerator{}
	uc := report.NewReportUseCase(store.Companies(), store.Diagnostics(), store.Projects(), store.Intakes(), gen)

	rep, err := uc.CompanyReport(context.Background(), "c-1")
	require.NoError(t, err)
	assert.Equal(t, "informe-B12345678.pdf", rep.Filename)
	assert.Equal(t, []byte("%PDF-fake"), rep.Content)

	require.NotNil(t, gen.company)
	assert.Equal(t, "Acme", gen.company.Name)
	require.NotNil(t, gen.diag)
	assert.Equal(t, entity.DiagnosticPendiente, gen.diag.Result)
	assert.Nil(t, gen.project, "una empresa en evaluación no tiene proyecto")
	assert.Nil(t, gen.intake)
}

func TestCompanyReport_EmpresaInexistente(t *testing.T) {
	store := memory.NewStore()
	uc := report.NewReportUseCase(store.Companies(), store.Diagnostics(), store.Projects(), store.Intakes(), &captureGenerator{})

	_, err := uc.CompanyReport(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompanyReport_FalloDelGenerador(t *testing.T) {
	store := memory.NewStore()
	seed(t, store)
	boom := errors.New("sin fuentes")
	uc := report.NewReportUseCase(store.Companies(), store.Diagnostics(), store.Projects(), store.Intakes(), &captureGenerator{err: boom})

	_, err := uc.CompanyReport(context.Background(), "c-1")
	assert.ErrorIs(t, err, boom)
}
