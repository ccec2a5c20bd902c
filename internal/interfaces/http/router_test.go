package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/EspacioDatos-api/internal/application/auth"
	"github.com/jhoicas/EspacioDatos-api/internal/application/dashboard"
	"github.com/jhoicas/EspacioDatos-api/internal/application/lifecycle"
	"github.com/jhoicas/EspacioDatos-api/internal/application/report"
	"github.com/jhoicas/EspacioDatos-api/internal/application/seed"
	"github.com/jhoicas/EspacioDatos-api/internal/application/usecase"
	"github.com/jhoicas/EspacioDatos-api/internal/domain/access"
	"github.com/jhoicas/EspacioDatos-api/internal/infrastructure/memory"
	"github.com/jhoicas/EspacioDatos-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/EspacioDatos-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Servidor de prueba sobre el almacén en memoria
// ──────────────────────────────────────────────────────────────────────────────

type testServer struct {
	app   *fiber.App
	store *memory.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := memory.NewStore()
	lc := lifecycle.NewLifecycleUseCase(store.Repos(), store, nil, nil)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:        auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		UserUC:        usecase.NewUserUseCase(store.Users(), store.Companies()),
		CompanyUserUC: usecase.NewCompanyUserUseCase(store.Companies(), store.Users()),
		LeadImportUC:  usecase.NewLeadImportUseCase(lc),
		LifecycleUC:   lc,
		DashboardUC:   dashboard.NewDashboardUseCase(store.Users(), store.Companies(), store.Intakes(), store.Projects()),
		ReportUC:      report.NewReportUseCase(store.Companies(), store.Diagnostics(), store.Projects(), store.Intakes(), pdf.NewMarotoReportGenerator()),
		SeedUC:        seed.NewSeedUseCase(store.Users(), store.Companies(), lc, nil),
		Users:         store.Users(),
		Policy:        access.DefaultPolicy(),
		JWTSecret:     testJWTSecret,
	})

	s := &testServer{app: app, store: store}
	resp, _ := s.call(t, http.MethodPost, "/api/seed-demo-users", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return s
}

// call lanza la petición y decodifica el cuerpo JSON (si lo hay) en un mapa.
func (s *testServer) call(t *testing.T, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp, out
}

func (s *testServer) login(t *testing.T, email, password string) string {
	t.Helper()
	resp, body := s.call(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	return body["token"].(string)
}

func (s *testServer) staff(t *testing.T) (admin, asesor string) {
	t.Helper()
	return s.login(t, "admin@espaciodatos.com", "admin123"), s.login(t, "asesor@espaciodatos.com", "asesor123")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	resp, body := s.call(t, http.MethodGet, "/api/", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "Espacio de Datos API", body["message"])
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	s := newTestServer(t)
	resp, body := s.call(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "admin@espaciodatos.com", "password": "incorrecta",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", body["code"])
}

func TestEscenarioAcme_PorHTTP(t *testing.T) {
	s := newTestServer(t)
	admin, asesor := s.staff(t)

	// Alta de empresa y de su usuario cliente.
	resp, company := s.call(t, http.MethodPost, "/api/companies", asesor, map[string]string{
		"name": "Acme", "nif": "B12345678", "sector": "Industria",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, company)
	assert.Equal(t, "lead", company["status"])
	id := company["id"].(string)

	resp, _ = s.call(t, http.MethodPost, "/api/companies/"+id+"/user", admin, map[string]string{
		"email": "cliente@acme.es", "password": "acme1234", "name": "Cliente Acme",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	cliente := s.login(t, "CLIENTE@acme.es", "acme1234")

	// Alcance del cliente.
	resp, _ = s.call(t, http.MethodGet, "/api/companies/"+id, cliente, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = s.call(t, http.MethodGet, "/api/companies", cliente, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = s.call(t, http.MethodGet, "/api/companies/00000000-0000-0000-0000-000000000999", cliente, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = s.call(t, http.MethodGet, "/api/companies/"+id+"/diagnostic", cliente, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "el diagnóstico es interno")

	// Intake del cliente.
	resp, _ = s.call(t, http.MethodPost, "/api/companies/"+id+"/intake", cliente, map[string]any{
		"data_types": []string{"sensores"}, "usage_pattern": "diario", "sensitivity_level": "medio",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, intake := s.call(t, http.MethodPost, "/api/companies/"+id+"/intake/submit", cliente, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, intake["submitted"])
	resp, _ = s.call(t, http.MethodPost, "/api/companies/"+id+"/intake/submit", cliente, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, dash := s.call(t, http.MethodGet, "/api/client/dashboard", cliente, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "en_evaluacion", dash["status"])
	assert.NotNil(t, dash["intake"])
	assert.Nil(t, dash["project"])

	// Sin decisión no hay proyecto.
	resp, _ = s.call(t, http.MethodGet, "/api/companies/"+id+"/project", asesor, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Decisión.
	resp, _ = s.call(t, http.MethodPost, "/api/companies/"+id+"/diagnostic/decide", cliente, map[string]string{"result": "apta"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, decided := s.call(t, http.MethodPost, "/api/companies/"+id+"/diagnostic/decide", asesor, map[string]string{"result": "apta"})
	require.Equal(t, http.StatusOK, resp.StatusCode, decided)
	assert.Equal(t, "apta", decided["company"].(map[string]any)["status"])
	require.NotNil(t, decided["project"])

	resp, body := s.call(t, http.MethodPost, "/api/companies/"+id+"/diagnostic/decide", asesor, map[string]string{"result": "no_apta"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INVALID_STATE", body["code"])

	// Checklist y cierre.
	resp, body = s.call(t, http.MethodPut, "/api/companies/"+id+"/project", asesor, map[string]string{
		"target_role": "proveedor", "incorporation_status": "completada",
	})
	assert.Equal(t, http.StatusPreconditionFailed, resp.StatusCode)
	assert.Equal(t, "PRECONDITION_FAILED", body["code"])

	resp, project := s.call(t, http.MethodPut, "/api/companies/"+id+"/project", asesor, map[string]any{
		"target_role": "proveedor", "space_name": "Espacio de Datos Industrial",
		"use_case": "Mantenimiento predictivo", "rgpd_checked": true, "incorporation_status": "completada",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, project)
	assert.Equal(t, "completada", project["incorporation_status"])
	checklist := project["incorporation_checklist"].(map[string]any)
	for _, step := range []string{"espacio_seleccionado", "rol_definido", "caso_uso_definido", "validacion_rgpd"} {
		assert.Equal(t, true, checklist[step], step)
	}

	resp, dash = s.call(t, http.MethodGet, "/api/client/dashboard", cliente, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "apta", dash["status"])
	assert.NotNil(t, dash["project"])

	// El cliente ve su proyecto y solo el suyo.
	resp, _ = s.call(t, http.MethodGet, "/api/companies/"+id+"/project", cliente, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUsers_AdminNoPuedeBorrarse(t *testing.T) {
	s := newTestServer(t)
	admin, asesor := s.staff(t)

	resp, me := s.call(t, http.MethodGet, "/api/auth/me", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := s.call(t, http.MethodDelete, "/api/users/"+me["id"].(string), admin, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "SELF_DELETE", body["code"])

	resp, _ = s.call(t, http.MethodGet, "/api/users", asesor, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "el asesor no gestiona usuarios")
}

func TestRegister_SinRolNoAccedeANada(t *testing.T) {
	s := newTestServer(t)
	resp, reg := s.call(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "nuevo@empresa.es", "password": "secreto1", "name": "Nuevo",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, reg)
	token := reg["token"].(string)

	resp, me := s.call(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Nil(t, me["role"])

	resp, body := s.call(t, http.MethodGet, "/api/companies", token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "MISSING_ROLE", body["code"])

	resp, _ = s.call(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "NUEVO@empresa.es", "password": "secreto1", "name": "Otro",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestValidacion_400(t *testing.T) {
	s := newTestServer(t)
	_, asesor := s.staff(t)

	resp, body := s.call(t, http.MethodPost, "/api/companies", asesor, map[string]string{"name": "Sin NIF"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body["code"])

	resp, company := s.call(t, http.MethodPost, "/api/companies", asesor, map[string]string{"name": "Beta", "nif": "B2"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := company["id"].(string)

	resp, _ = s.call(t, http.MethodPost, "/api/companies/"+id+"/diagnostic/decide", asesor, map[string]string{"result": "quizas"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = s.call(t, http.MethodPost, "/api/companies", asesor, map[string]string{"name": "Beta bis", "nif": "B2"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = s.call(t, http.MethodGet, "/api/companies?status=cerrada", asesor, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateUser_VaciosDesasignanRolYEmpresa(t *testing.T) {
	s := newTestServer(t)
	admin, asesor := s.staff(t)

	resp, company := s.call(t, http.MethodPost, "/api/companies", asesor, map[string]string{"name": "Omega", "nif": "B9"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	companyID := company["id"].(string)

	resp, user := s.call(t, http.MethodPost, "/api/users", admin, map[string]string{
		"email": "ana@omega.es", "password": "secreto1", "name": "Ana", "role": "cliente",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, user)
	path := "/api/users/" + user["id"].(string)

	resp, body := s.call(t, http.MethodPut, path, admin, map[string]string{"company_id": companyID})
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Equal(t, companyID, body["company_id"])

	resp, body = s.call(t, http.MethodPut, path, admin, map[string]string{"role": "", "company_id": ""})
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Nil(t, body["role"])
	assert.Nil(t, body["company_id"])

	resp, body = s.call(t, http.MethodPut, path, admin, map[string]string{"role": "jefe"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body["code"])
}

func TestUpdateDiagnostic_RiesgoVacioLoBorra(t *testing.T) {
	s := newTestServer(t)
	_, asesor := s.staff(t)

	resp, company := s.call(t, http.MethodPost, "/api/companies", asesor, map[string]string{"name": "Sigma", "nif": "B8"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	path := "/api/companies/" + company["id"].(string) + "/diagnostic"

	resp, body := s.call(t, http.MethodPut, path, asesor, map[string]string{"legal_risk": "alto"})
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Equal(t, "alto", body["legal_risk"])

	resp, body = s.call(t, http.MethodPut, path, asesor, map[string]string{"legal_risk": ""})
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Equal(t, "", body["legal_risk"])

	resp, body = s.call(t, http.MethodPut, path, asesor, map[string]string{"legal_risk": "extremo"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body["code"])
}

func TestSaveIntake_DescartaElementosVacios(t *testing.T) {
	s := newTestServer(t)
	_, asesor := s.staff(t)

	resp, company := s.call(t, http.MethodPost, "/api/companies", asesor, map[string]string{"name": "Tau", "nif": "B7"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := s.call(t, http.MethodPost, "/api/companies/"+company["id"].(string)+"/intake", asesor, map[string]any{
		"data_types": []string{" "}, "interests": []string{"", " compartir "},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Equal(t, []any{}, body["data_types"])
	assert.Equal(t, []any{"compartir"}, body["interests"])
}

func TestDeleteCompany_SoloAdmin(t *testing.T) {
	s := newTestServer(t)
	admin, asesor := s.staff(t)

	resp, company := s.call(t, http.MethodPost, "/api/companies", asesor, map[string]string{"name": "Gamma", "nif": "B3"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := company["id"].(string)

	resp, _ = s.call(t, http.MethodDelete, "/api/companies/"+id, asesor, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = s.call(t, http.MethodDelete, "/api/companies/"+id, admin, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = s.call(t, http.MethodGet, "/api/companies/"+id, admin, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestReport_PDF(t *testing.T) {
	s := newTestServer(t)
	_, asesor := s.staff(t)

	resp, company := s.call(t, http.MethodPost, "/api/companies", asesor, map[string]string{"name": "Delta", "nif": "B4"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = s.call(t, http.MethodGet, "/api/companies/"+company["id"].(string)+"/report", asesor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "informe-B4.pdf")
}

func TestSeedCompanies_DashboardPorEstado(t *testing.T) {
	s := newTestServer(t)
	resp, _ := s.call(t, http.MethodPost, "/api/seed-demo-companies", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cases := map[string]string{
		"cliente.lead@espaciodatos.com":       "en_evaluacion",
		"cliente.apta@espaciodatos.com":       "apta",
		"cliente.descartada@espaciodatos.com": "no_apta",
		"cliente@espaciodatos.com":            "sin_empresa",
	}
	for email, want := range cases {
		tok := s.login(t, email, "cliente123")
		resp, dash := s.call(t, http.MethodGet, "/api/client/dashboard", tok, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, want, dash["status"], email)
	}
}

func TestImportLeads_CSV(t *testing.T) {
	s := newTestServer(t)
	_, asesor := s.staff(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "leads.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte("nombre;nif;sector\nAcme;B1;TIC\nBeta;B2;Agro\nAcme bis;B1;TIC\n;B9;\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/companies/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+asesor)
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out apphttp.LeadImportResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, []string{"B1", "B2"}, out.Created)
	assert.Equal(t, []string{"B1"}, out.Duplicates)
	assert.Len(t, out.Rejected, 1)

	_, list := s.call(t, http.MethodGet, "/api/companies?status=lead", asesor, nil)
	assert.Len(t, list["items"], 2)
}
