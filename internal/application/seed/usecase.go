// Package seed carga los datos de demostración. Todas las operaciones son idempotentes:
// los usuarios se identifican por email y las empresas por NIF.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/EspacioDatos-api/internal/application/dto"
	"github.com/jhoicas/EspacioDatos-api/internal/application/lifecycle"
	"github.com/jhoicas/EspacioDatos-api/internal/application/usecase"
	"github.com/jhoicas/EspacioDatos-api/internal/domain"
	"github.com/jhoicas/EspacioDatos-api/internal/domain/entity"
	"github.com/jhoicas/EspacioDatos-api/internal/domain/repository"
	"github.com/jhoicas/EspacioDatos-api/pkg/logger"
)

type demoUser struct {
	key string
	req dto.CreateUserRequest
}

// demoUsers credenciales fijas del entorno de demostración.
var demoUsers = []demoUser{
	{"admin", dto.CreateUserRequest{Email: "admin@espaciodatos.com", Password: "admin123", Name: "Administrador Demo", Role: entity.RoleAdmin}},
	{"asesor", dto.CreateUserRequest{Email: "asesor@espaciodatos.com", Password: "asesor123", Name: "Asesor Demo", Role: entity.RoleAsesor}},
	{"cliente", dto.CreateUserRequest{Email: "cliente@espaciodatos.com", Password: "cliente123", Name: "Cliente Demo", Role: entity.RoleCliente}},
}

const demoClientPassword = "cliente123"

type demoCompany struct {
	key     string
	company dto.CreateCompanyRequest
	diag    dto.UpdateDiagnosticRequest
	result  string // "" = se queda en lead
	client  dto.CreateCompanyUserRequest
}

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

var demoCompanies = []demoCompany{
	{
		key: "lead",
		company: dto.CreateCompanyRequest{
			Name: "Agroalimentaria del Valle S.L.", NIF: "B10000001", Sector: "Agroalimentario",
			SizeRange: "10-49", Country: "España", ContactName: "Lucía Martín", ContactRole: "Gerente",
			ContactPhone: "+34 600 000 001", ContactEmail: "cliente.lead@espaciodatos.com",
		},
		diag:   dto.UpdateDiagnosticRequest{EligibilityOK: boolPtr(true)},
		client: dto.CreateCompanyUserRequest{Email: "cliente.lead@espaciodatos.com", Password: demoClientPassword, Name: "Cliente Lead"},
	},
	{
		key: "apta",
		company: dto.CreateCompanyRequest{
			Name: "Logística Integral Norte S.A.", NIF: "A10000002", Sector: "Logística",
			SizeRange: "50-249", Country: "España", ContactName: "Jorge Ruiz", ContactRole: "CTO",
			ContactPhone: "+34 600 000 002", ContactEmail: "cliente.apta@espaciodatos.com",
		},
		diag: dto.UpdateDiagnosticRequest{
			EligibilityOK: boolPtr(true), SpaceIdentified: boolPtr(true), DataPotential: boolPtr(true),
			LegalRisk: strPtr(entity.RiskBajo), Notes: strPtr("Candidata a proveedor en el espacio industrial."),
		},
		result: entity.DiagnosticApta,
		client: dto.CreateCompanyUserRequest{Email: "cliente.apta@espaciodatos.com", Password: demoClientPassword, Name: "Cliente Apta"},
	},
	{
		key: "descartada",
		company: dto.CreateCompanyRequest{
			Name: "Consultora Mínima S.L.", NIF: "B10000003", Sector: "Servicios",
			SizeRange: "1-9", Country: "España", ContactName: "Ana Gil", ContactRole: "Socia",
			ContactPhone: "+34 600 000 003", ContactEmail: "cliente.descartada@espaciodatos.com",
		},
		diag: dto.UpdateDiagnosticRequest{
			EligibilityOK: boolPtr(false), LegalRisk: strPtr(entity.RiskAlto),
			Notes: strPtr("Sin volumen de datos compartibles."),
		},
		result: entity.DiagnosticNoApta,
		client: dto.CreateCompanyUserRequest{Email: "cliente.descartada@espaciodatos.com", Password: demoClientPassword, Name: "Cliente Descartada"},
	},
}

// SeedUseCase siembra usuarios y empresas de demostración.
type SeedUseCase struct {
	users        repository.UserRepository
	companies    repository.CompanyRepository
	userUC       *usecase.UserUseCase
	companyUsers *usecase.CompanyUserUseCase
	lifecycle    *lifecycle.LifecycleUseCase
	log          *logger.Logger
}

// NewSeedUseCase construye el caso de uso.
func NewSeedUseCase(
	users repository.UserRepository,
	companies repository.CompanyRepository,
	lc *lifecycle.LifecycleUseCase,
	log *logger.Logger,
) *SeedUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &SeedUseCase{
		users:        users,
		companies:    companies,
		userUC:       usecase.NewUserUseCase(users, companies),
		companyUsers: usecase.NewCompanyUserUseCase(companies, users),
		lifecycle:    lc,
		log:          log.Component("seed"),
	}
}

// SeedUsers crea admin, asesor y cliente de demostración si no existen.
func (uc *SeedUseCase) SeedUsers(ctx context.Context) (*dto.SeedResponse, error) {
	created, err := uc.ensureUsers(ctx)
	if err != nil {
		return nil, err
	}
	creds := make(map[string]dto.Credential, len(demoUsers))
	for _, d := range demoUsers {
		creds[d.key] = dto.Credential{Email: d.req.Email, Password: d.req.Password}
	}
	return &dto.SeedResponse{Message: "Usuarios demo creados", Created: created, Credentials: creds}, nil
}

// SeedCompanies crea una empresa por estado (lead, apta, descartada), cada una con su
// usuario cliente. Las decisiones se toman a nombre del asesor demo, que se crea si falta.
func (uc *SeedUseCase) SeedCompanies(ctx context.Context) (*dto.SeedResponse, error) {
	created, err := uc.ensureUsers(ctx)
	if err != nil {
		return nil, err
	}
	actor, err := uc.users.GetByEmail(ctx, entity.NormalizeEmail(demoUsers[1].req.Email))
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, fmt.Errorf("seed: asesor demo no disponible")
	}

	creds := make(map[string]dto.Credential, len(demoCompanies))
	for _, d := range demoCompanies {
		items, err := uc.ensureCompany(ctx, actor, d)
		if err != nil {
			return nil, fmt.Errorf("seed: empresa %s: %w", d.company.NIF, err)
		}
		created = append(created, items...)
		creds[d.key] = dto.Credential{Email: d.client.Email, Password: d.client.Password}
	}
	return &dto.SeedResponse{Message: "Empresas demo creadas", Created: created, Credentials: creds}, nil
}

func (uc *SeedUseCase) ensureUsers(ctx context.Context) ([]string, error) {
	created := []string{}
	for _, d := range demoUsers {
		existing, err := uc.users.GetByEmail(ctx, entity.NormalizeEmail(d.req.Email))
		if err != nil {
			return nil, err
		}
		if existing != nil {
			continue
		}
		if _, err := uc.userUC.Create(ctx, d.req); err != nil {
			return nil, fmt.Errorf("seed: usuario %s: %w", d.req.Email, err)
		}
		uc.log.Info().Str("email", d.req.Email).Msg("usuario demo creado")
		created = append(created, d.req.Email)
	}
	return created, nil
}

// ensureCompany deja la empresa en el estado deseado. Si ya existe solo completa lo que
// falte: la decisión (si sigue en lead) y el usuario cliente.
func (uc *SeedUseCase) ensureCompany(ctx context.Context, actor *entity.User, d demoCompany) ([]string, error) {
	var created []string
	company, err := uc.companies.GetByNIF(ctx, d.company.NIF)
	if err != nil {
		return nil, err
	}
	if company == nil {
		res, err := uc.lifecycle.CreateCompany(ctx, actor, d.company)
		if err != nil {
			return nil, err
		}
		created = append(created, res.NIF)
		if _, err := uc.lifecycle.UpdateDiagnostic(ctx, res.ID, d.diag); err != nil {
			return nil, err
		}
		if company, err = uc.companies.GetByID(ctx, res.ID); err != nil {
			return nil, err
		}
	}

	if d.result != "" && company.Status == entity.CompanyStatusLead {
		if _, err := uc.lifecycle.Decide(ctx, actor, company.ID, dto.DecideRequest{Result: d.result}); err != nil {
			return nil, err
		}
	}

	_, err = uc.companyUsers.CreateClientUser(ctx, company.ID, d.client)
	switch {
	case err == nil:
		uc.log.Info().Str("email", d.client.Email).Str("company_id", company.ID).Msg("cliente demo creado")
		created = append(created, d.client.Email)
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrEmailAlreadyExists):
		// ya sembrado
	default:
		return nil, err
	}
	return created, nil
}
