package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/EspacioDatos-api/internal/domain/entity"
	"github.com/jhoicas/EspacioDatos-api/internal/infrastructure/pdf"
)

func TestGenerateCompanyReport_Completo(t *testing.T) {
	decided := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	company := &entity.Company{
		ID: "c-1", Name: "Acme Logística", NIF: "B12345678", Sector: "Logística",
		Status: entity.CompanyStatusApta, IntakeStatus: entity.IntakeStatusRecibida,
	}
	diag := &entity.Diagnostic{
		CompanyID: "c-1", EligibilityOK: true, SpaceIdentified: true, DataPotential: true,
		LegalRisk: entity.RiskBajo, Result: entity.DiagnosticApta, DecidedBy: "u-1", DecidedAt: &decided,
	}
	project := &entity.Project{
		CompanyID: "c-1", Title: "Incorporación Acme Logística", Phase: 2, Status: entity.ProjectStatusIniciado,
		TargetRole: entity.TargetRoleProveedor, SpaceName: "Espacio de Datos Industrial",
		IncorporationStatus: entity.IncorporationEnProgreso,
		Checklist:           entity.IncorporationChecklist{EspacioSeleccionado: true, RolDefinido: true},
	}
	intake := &entity.ClientIntake{
		CompanyID: "c-1", DataTypes: []string{"operacionales"}, Interests: []string{"trazabilidad"},
		Submitted: true, SubmittedAt: &decided,
	}

	out, err := pdf.NewMarotoReportGenerator().GenerateCompanyReport(context.Background(), company, diag, project, intake)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "la salida debe ser un PDF")
}

func TestGenerateCompanyReport_SoloEmpresa(t *testing.T) {
	company := &entity.Company{ID: "c-2", Name: "Beta", NIF: "B2", Status: entity.CompanyStatusLead}

	out, err := pdf.NewMarotoReportGenerator().GenerateCompanyReport(context.Background(), company, nil, nil, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestGenerateCompanyReport_SinEmpresa(t *testing.T) {
	_, err := pdf.NewMarotoReportGenerator().GenerateCompanyReport(context.Background(), nil, nil, nil, nil)
	assert.Error(t, err)
}
