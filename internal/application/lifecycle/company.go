package lifecycle

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/EspacioDatos-api/internal/application/dto"
	"github.com/jhoicas/EspacioDatos-api/internal/domain"
	"github.com/jhoicas/EspacioDatos-api/internal/domain/entity"
	rules "github.com/jhoicas/EspacioDatos-api/internal/domain/lifecycle"
)

// CreateCompany crea la empresa en estado lead junto con su diagnóstico pendiente, en la
// misma transacción. Devuelve domain.ErrDuplicate si el NIF ya existe.
func (uc *LifecycleUseCase) CreateCompany(ctx context.Context, actor *entity.User, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	name, nif := strings.TrimSpace(in.Name), strings.TrimSpace(in.NIF)
	if name == "" || nif == "" {
		return nil, fmt.Errorf("%w: name y nif son obligatorios", domain.ErrInvalidInput)
	}
	existing, err := uc.repos.Companies.GetByNIF(ctx, nif)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: ya existe una empresa con ese NIF", domain.ErrDuplicate)
	}

	now := uc.now()
	company := &entity.Company{
		ID:           uuid.New().String(),
		Name:         name,
		NIF:          nif,
		Sector:       strings.TrimSpace(in.Sector),
		SizeRange:    strings.TrimSpace(in.SizeRange),
		Country:      strings.TrimSpace(in.Country),
		ContactName:  strings.TrimSpace(in.ContactName),
		ContactRole:  strings.TrimSpace(in.ContactRole),
		ContactPhone: strings.TrimSpace(in.ContactPhone),
		ContactEmail: strings.TrimSpace(in.ContactEmail),
		Status:       entity.CompanyStatusLead,
		IntakeStatus: entity.IntakeStatusPendiente,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	diagnostic := rules.NewDiagnostic(company.ID, now)

	err = uc.tx.RunLifecycle(ctx, func(r Repos) error {
		if err := r.Companies.Create(ctx, company); err != nil {
			return err
		}
		return r.Diagnostics.Create(ctx, diagnostic)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("company_id", company.ID).Str("nif", company.NIF).Msg("empresa creada")
	uc.publish(ctx, EventCompanyCreated, company.ID, actor, map[string]string{"name": company.Name})
	return dto.CompanyFromEntity(company), nil
}

// GetCompany obtiene una empresa; domain.ErrNotFound si no existe.
func (uc *LifecycleUseCase) GetCompany(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	c, err := uc.loadCompany(ctx, uc.repos, id)
	if err != nil {
		return nil, err
	}
	return dto.CompanyFromEntity(c), nil
}

// ListCompanies lista empresas filtradas por estado y búsqueda, paginado.
func (uc *LifecycleUseCase) ListCompanies(ctx context.Context, in dto.CompanyListRequest) (*dto.CompanyListResponse, error) {
	in.DefaultPage()
	filter := entity.CompanyFilter{
		Status: in.Status,
		Search: strings.TrimSpace(in.Search),
		Limit:  in.Limit,
		Offset: in.Offset,
	}
	list, err := uc.repos.Companies.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := uc.repos.Companies.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *dto.CompanyFromEntity(c))
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// UpdateCompany actualiza datos descriptivos y de contacto. El estado no se toca aquí.
func (uc *LifecycleUseCase) UpdateCompany(ctx context.Context, id string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	c, err := uc.loadCompany(ctx, uc.repos, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name no puede quedar vacío", domain.ErrInvalidInput)
		}
		c.Name = name
	}
	if in.NIF != nil {
		nif := strings.TrimSpace(*in.NIF)
		if nif == "" {
			return nil, fmt.Errorf("%w: nif no puede quedar vacío", domain.ErrInvalidInput)
		}
		if nif != c.NIF {
			other, err := uc.repos.Companies.GetByNIF(ctx, nif)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != c.ID {
				return nil, fmt.Errorf("%w: ya existe una empresa con ese NIF", domain.ErrDuplicate)
			}
		}
		c.NIF = nif
	}
	setTrimmed(&c.Sector, in.Sector)
	setTrimmed(&c.SizeRange, in.SizeRange)
	setTrimmed(&c.Country, in.Country)
	setTrimmed(&c.ContactName, in.ContactName)
	setTrimmed(&c.ContactRole, in.ContactRole)
	setTrimmed(&c.ContactPhone, in.ContactPhone)
	setTrimmed(&c.ContactEmail, in.ContactEmail)
	c.UpdatedAt = uc.now()

	if err := uc.repos.Companies.Update(ctx, c); err != nil {
		return nil, err
	}
	return dto.CompanyFromEntity(c), nil
}

// DeleteCompany borra la empresa y todo lo que cuelga de ella en una transacción. Los
// usuarios vinculados no se borran: quedan sin empresa.
func (uc *LifecycleUseCase) DeleteCompany(ctx context.Context, actor *entity.User, id string) error {
	err := uc.tx.RunLifecycle(ctx, func(r Repos) error {
		if _, err := uc.loadCompany(ctx, r, id); err != nil {
			return err
		}
		if err := r.Intakes.DeleteByCompany(ctx, id); err != nil {
			return err
		}
		if err := r.Projects.DeleteByCompany(ctx, id); err != nil {
			return err
		}
		if err := r.Diagnostics.DeleteByCompany(ctx, id); err != nil {
			return err
		}
		if err := r.Users.UnlinkCompany(ctx, id); err != nil {
			return err
		}
		return r.Companies.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("company_id", id).Msg("empresa eliminada")
	uc.publish(ctx, EventCompanyDeleted, id, actor, nil)
	return nil
}

func (uc *LifecycleUseCase) loadCompany(ctx context.Context, r Repos, id string) (*entity.Company, error) {
	c, err := r.Companies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: empresa no encontrada", domain.ErrNotFound)
	}
	return c, nil
}

func setTrimmed(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
