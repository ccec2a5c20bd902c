package lifecycle_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/EspacioDatos-api/internal/domain"
	"github.com/jhoicas/EspacioDatos-api/internal/domain/entity"
	"github.com/jhoicas/EspacioDatos-api/internal/domain/lifecycle"
)

var now = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func newLead() (*entity.Company, *entity.Diagnostic) {
	c := &entity.Company{
		ID: "c-1", Name: "Acme", NIF: "B1",
		Status: entity.CompanyStatusLead, IntakeStatus: entity.IntakeStatusPendiente,
	}
	return c, lifecycle.NewDiagnostic(c.ID, now)
}

// ──────────────────────────────────────────────────────────────────────────────
// Decisión del diagnóstico
// ──────────────────────────────────────────────────────────────────────────────

func TestDecide_AptaCreaProyectoFase2(t *testing.T) {
	c, d := newLead()

	p, err := lifecycle.Decide(d, c, entity.DiagnosticApta, "u-asesor", now)
	require.NoError(t, err)
	require.NotNil(t, p, "apta debe generar el proyecto de incorporación")

	assert.Equal(t, entity.DiagnosticApta, d.Result)
	assert.Equal(t, "u-asesor", d.DecidedBy)
	require.NotNil(t, d.DecidedAt)
	assert.Equal(t, entity.CompanyStatusApta, c.Status)

	assert.Equal(t, c.ID, p.CompanyID)
	assert.Equal(t, 2, p.Phase)
	assert.Equal(t, entity.ProjectStatusIniciado, p.Status)
	assert.Equal(t, entity.IncorporationPendiente, p.IncorporationStatus)
	assert.Equal(t, "Incorporación Acme", p.Title)
	assert.Equal(t, entity.IncorporationChecklist{}, p.Checklist, "el checklist arranca vacío")
	assert.NotEmpty(t, p.ID)
}

func TestDecide_NoAptaDescartaSinProyecto(t *testing.T) {
	c, d := newLead()

	p, err := lifecycle.Decide(d, c, entity.DiagnosticNoApta, "u-asesor", now)
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.Equal(t, entity.CompanyStatusDescartada, c.Status)
	assert.Equal(t, entity.DiagnosticNoApta, d.Result)
}

func TestDecide_SegundaDecisionFalla(t *testing.T) {
	c, d := newLead()
	_, err := lifecycle.Decide(d, c, entity.DiagnosticApta, "u-1", now)
	require.NoError(t, err)

	for _, result := range []string{entity.DiagnosticApta, entity.DiagnosticNoApta} {
		p, err := lifecycle.Decide(d, c, result, "u-2", now.Add(time.Hour))
		assert.ErrorIs(t, err, domain.ErrInvalidState)
		assert.Nil(t, p, "una decisión repetida no debe generar otro proyecto")
	}
	assert.Equal(t, "u-1", d.DecidedBy, "la primera decisión no se sobrescribe")
	assert.Equal(t, entity.CompanyStatusApta, c.Status)
}

func TestDecide_ResultadoInvalido(t *testing.T) {
	c, d := newLead()
	for _, result := range []string{"", "pendiente", "APTA"} {
		_, err := lifecycle.Decide(d, c, result, "u-1", now)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "result=%q", result)
	}
	assert.Equal(t, entity.DiagnosticPendiente, d.Result)
	assert.Equal(t, entity.CompanyStatusLead, c.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Edición del diagnóstico
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyDiagnosticPatch_Parcial(t *testing.T) {
	_, d := newLead()
	d.Notes = "previas"

	err := lifecycle.ApplyDiagnosticPatch(d, lifecycle.DiagnosticPatch{
		EligibilityOK: ptr(true),
		LegalRisk:     ptr(entity.RiskMedio),
	}, now)
	require.NoError(t, err)

	assert.True(t, d.EligibilityOK)
	assert.False(t, d.SpaceIdentified, "los campos no informados no cambian")
	assert.Equal(t, entity.RiskMedio, d.LegalRisk)
	assert.Equal(t, "previas", d.Notes)
}

func TestApplyDiagnosticPatch_CongeladoTrasDecidir(t *testing.T) {
	c, d := newLead()
	_, err := lifecycle.Decide(d, c, entity.DiagnosticNoApta, "u-1", now)
	require.NoError(t, err)

	err = lifecycle.ApplyDiagnosticPatch(d, lifecycle.DiagnosticPatch{Notes: ptr("cambio")}, now)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Empty(t, d.Notes)
}

func TestApplyDiagnosticPatch_RiesgoInvalido(t *testing.T) {
	_, d := newLead()
	err := lifecycle.ApplyDiagnosticPatch(d, lifecycle.DiagnosticPatch{LegalRisk: ptr("extremo")}, now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Checklist derivado del proyecto
// ──────────────────────────────────────────────────────────────────────────────

func newProject() *entity.Project {
	c, _ := newLead()
	return lifecycle.NewIncorporationProject(c, now)
}

func TestApplyProjectPatch_EspacioEnBlancoNoCuenta(t *testing.T) {
	p := newProject()

	require.NoError(t, lifecycle.ApplyProjectPatch(p, lifecycle.ProjectPatch{SpaceName: ptr(" ")}, now))
	assert.False(t, p.Checklist.EspacioSeleccionado)

	require.NoError(t, lifecycle.ApplyProjectPatch(p, lifecycle.ProjectPatch{SpaceName: ptr("Espacio A")}, now))
	assert.True(t, p.Checklist.EspacioSeleccionado)
	assert.Equal(t, "Espacio A", p.SpaceName)
}

func TestApplyProjectPatch_VaciarCampoDesmarcaPaso(t *testing.T) {
	p := newProject()
	require.NoError(t, lifecycle.ApplyProjectPatch(p, lifecycle.ProjectPatch{UseCase: ptr("Trazabilidad")}, now))
	require.True(t, p.Checklist.CasoUsoDefinido)

	require.NoError(t, lifecycle.ApplyProjectPatch(p, lifecycle.ProjectPatch{UseCase: ptr("")}, now))
	assert.False(t, p.Checklist.CasoUsoDefinido)
}

func TestApplyProjectPatch_ChecklistSeConservaEntreCambios(t *testing.T) {
	p := newProject()
	require.NoError(t, lifecycle.ApplyProjectPatch(p, lifecycle.ProjectPatch{
		TargetRole: ptr(entity.TargetRoleProveedor),
		SpaceName:  ptr("Espacio de Datos Industrial"),
	}, now))

	require.NoError(t, lifecycle.ApplyProjectPatch(p, lifecycle.ProjectPatch{
		IncorporationStatus: ptr(entity.IncorporationEnProgreso),
	}, now))

	assert.True(t, p.Checklist.RolDefinido)
	assert.True(t, p.Checklist.EspacioSeleccionado)
	assert.Equal(t, entity.IncorporationEnProgreso, p.IncorporationStatus)
}

func TestApplyProjectPatch_CompletarRequiereChecklist(t *testing.T) {
	p := newProject()
	require.NoError(t, lifecycle.ApplyProjectPatch(p, lifecycle.ProjectPatch{
		TargetRole: ptr(entity.TargetRoleParticipante),
	}, now))

	err := lifecycle.ApplyProjectPatch(p, lifecycle.ProjectPatch{
		IncorporationStatus: ptr(entity.IncorporationCompletada),
	}, now)
	assert.ErrorIs(t, err, domain.ErrPreconditionFailed)
}

func TestApplyProjectPatch_CompletarConChecklistCompleto(t *testing.T) {
	p := newProject()
	err := lifecycle.ApplyProjectPatch(p, lifecycle.ProjectPatch{
		TargetRole:          ptr(entity.TargetRoleParticipante),
		SpaceName:           ptr("Espacio de Datos Salud"),
		UseCase:             ptr("Compartir historiales anonimizados"),
		RGPDChecked:         ptr(true),
		IncorporationStatus: ptr(entity.IncorporationCompletada),
	}, now)
	require.NoError(t, err)
	assert.True(t, p.Checklist.Complete())
	assert.Equal(t, entity.IncorporationCompletada, p.IncorporationStatus)
}

func TestApplyProjectPatch_ValoresInvalidos(t *testing.T) {
	cases := map[string]lifecycle.ProjectPatch{
		"rol desconocido":    {TargetRole: ptr("observador")},
		"estado desconocido": {IncorporationStatus: ptr("cerrada")},
	}
	for name, patch := range cases {
		t.Run(name, func(t *testing.T) {
			p := newProject()
			err := lifecycle.ApplyProjectPatch(p, patch, now)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Equal(t, entity.IncorporationChecklist{}, p.Checklist)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Intake
// ──────────────────────────────────────────────────────────────────────────────

func TestIntake_EnviarYReabrir(t *testing.T) {
	c, _ := newLead()
	in := &entity.ClientIntake{CompanyID: c.ID}
	cliente := &entity.User{Role: entity.RoleCliente, CompanyID: c.ID}
	asesor := &entity.User{Role: entity.RoleAsesor}

	require.NoError(t, lifecycle.CanEditIntake(nil, cliente), "el cliente puede crear el intake")
	require.NoError(t, lifecycle.SubmitIntake(in, c, now))
	assert.True(t, in.Submitted)
	require.NotNil(t, in.SubmittedAt)
	assert.Equal(t, entity.IntakeStatusRecibida, c.IntakeStatus)

	assert.ErrorIs(t, lifecycle.CanEditIntake(in, cliente), domain.ErrInvalidState)
	assert.NoError(t, lifecycle.CanEditIntake(in, asesor), "el personal interno puede editar siempre")
	assert.ErrorIs(t, lifecycle.SubmitIntake(in, c, now), domain.ErrInvalidState)

	lifecycle.ResetIntake(in, c, now)
	assert.False(t, in.Submitted)
	assert.Nil(t, in.SubmittedAt)
	assert.Equal(t, entity.IntakeStatusPendiente, c.IntakeStatus)
	assert.NoError(t, lifecycle.CanEditIntake(in, cliente))
}
