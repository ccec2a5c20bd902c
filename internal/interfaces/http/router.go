package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/EspacioDatos-api/internal/application/auth"
	"github.com/jhoicas/EspacioDatos-api/internal/application/dashboard"
	"github.com/jhoicas/EspacioDatos-api/internal/application/dto"
	"github.com/jhoicas/EspacioDatos-api/internal/application/lifecycle"
	"github.com/jhoicas/EspacioDatos-api/internal/application/report"
	"github.com/jhoicas/EspacioDatos-api/internal/application/seed"
	"github.com/jhoicas/EspacioDatos-api/internal/application/usecase"
	"github.com/jhoicas/EspacioDatos-api/internal/domain/access"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	UserUC        *usecase.UserUseCase
	CompanyUserUC *usecase.CompanyUserUseCase
	LeadImportUC  *usecase.LeadImportUseCase
	LifecycleUC   *lifecycle.LifecycleUseCase
	DashboardUC   *dashboard.DashboardUseCase
	ReportUC      *report.ReportUseCase
	SeedUC        *seed.SeedUseCase // nil = endpoints de demo desactivados
	Users         UserLookup
	Policy        *access.Policy
	JWTSecret     string
}

// Router registra las rutas de la API bajo /api.
func Router(app *fiber.App, deps RouterDeps) {
	policy := deps.Policy
	if policy == nil {
		policy = access.DefaultPolicy()
	}
	can := func(caps ...access.Capability) fiber.Handler { return RequireCapability(policy, caps...) }
	scope := RequireCompanyScope()

	api := app.Group("/api")
	api.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Message: "Espacio de Datos API", Status: "ok"})
	})

	// Auth (público salvo /me)
	authHandler := NewAuthHandler(deps.AuthUC)
	authn := AuthMiddleware(deps.JWTSecret, deps.Users)
	api.Post("/auth/register", authHandler.Register)
	api.Post("/auth/login", authHandler.Login)
	api.Get("/auth/me", authn, authHandler.Me)

	// Demo (público, desactivable)
	if deps.SeedUC != nil {
		seedHandler := NewSeedHandler(deps.SeedUC)
		api.Post("/seed-demo-users", seedHandler.Users)
		api.Post("/seed-demo-companies", seedHandler.Companies)
	}

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", authn)

	// Users (admin)
	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users", can(access.ManageUsers))
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Companies
	companyHandler := NewCompanyHandler(deps.LifecycleUC, deps.CompanyUserUC)
	companies := protected.Group("/companies")
	companies.Post("/", can(access.WriteCompanies), companyHandler.Create)
	if deps.LeadImportUC != nil {
		companies.Post("/import", can(access.WriteCompanies), NewLeadImportHandler(deps.LeadImportUC).Import)
	}
	companies.Get("/", can(access.ReadCompanies), companyHandler.List)
	companies.Get("/:id", can(access.ReadCompanies, access.ReadOwnCompany), scope, companyHandler.GetByID)
	companies.Put("/:id", can(access.WriteCompanies), companyHandler.Update)
	companies.Delete("/:id", can(access.DeleteCompanies), companyHandler.Delete)
	companies.Post("/:id/user", can(access.WriteCompanies), companyHandler.CreateClientUser)
	companies.Get("/:id/user", can(access.ReadCompanies), companyHandler.GetClientUser)

	// Intake (cliente sobre su empresa, personal interno sobre cualquiera)
	intakeHandler := NewIntakeHandler(deps.LifecycleUC)
	companies.Get("/:id/intake", can(access.ReadCompanies, access.ReadOwnCompany), scope, intakeHandler.Get)
	companies.Post("/:id/intake", can(access.WriteOwnIntake), scope, intakeHandler.Save)
	companies.Post("/:id/intake/submit", can(access.WriteOwnIntake), scope, intakeHandler.Submit)
	companies.Post("/:id/intake/reset", can(access.ReviewIntake), intakeHandler.Reset)

	// Diagnóstico (personal interno)
	diagHandler := NewDiagnosticHandler(deps.LifecycleUC)
	companies.Get("/:id/diagnostic", can(access.ReadCompanies), diagHandler.Get)
	companies.Put("/:id/diagnostic", can(access.WriteLifecycle), diagHandler.Update)
	companies.Post("/:id/diagnostic/decide", can(access.WriteLifecycle), diagHandler.Decide)

	// Proyecto
	projectHandler := NewProjectHandler(deps.LifecycleUC)
	companies.Get("/:id/project", can(access.ReadCompanies, access.ReadOwnCompany), scope, projectHandler.Get)
	companies.Put("/:id/project", can(access.WriteLifecycle), projectHandler.Update)
	protected.Get("/projects", can(access.ReadCompanies, access.ReadOwnCompany), projectHandler.List)

	// Informe PDF
	if deps.ReportUC != nil {
		reportHandler := NewReportHandler(deps.ReportUC)
		companies.Get("/:id/report", can(access.GenerateReports), reportHandler.Company)
	}

	// Panel del cliente
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/client/dashboard", can(access.ViewDashboard), dashboardHandler.Client)
}
