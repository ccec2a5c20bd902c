package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/EspacioDatos-api/internal/application/auth"
	"github.com/jhoicas/EspacioDatos-api/internal/application/dto"
	"github.com/jhoicas/EspacioDatos-api/internal/domain"
	"github.com/jhoicas/EspacioDatos-api/internal/domain/entity"
	"github.com/jhoicas/EspacioDatos-api/internal/domain/repository"
)

// CompanyUserUseCase alta y consulta del usuario cliente de una empresa (uno por empresa).
type CompanyUserUseCase struct {
	companyRepo repository.CompanyRepository
	userRepo    repository.UserRepository
}

// NewCompanyUserUseCase construye el caso de uso.
func NewCompanyUserUseCase(companyRepo repository.CompanyRepository, userRepo repository.UserRepository) *CompanyUserUseCase {
	return &CompanyUserUseCase{companyRepo: companyRepo, userRepo: userRepo}
}

// CreateClientUser crea el usuario cliente vinculado a la empresa. domain.ErrDuplicate si
// la empresa ya tiene uno; domain.ErrEmailAlreadyExists si el email está en uso.
func (uc *CompanyUserUseCase) CreateClientUser(ctx context.Context, companyID string, in dto.CreateCompanyUserRequest) (*dto.UserResponse, error) {
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, fmt.Errorf("%w: empresa no encontrada", domain.ErrNotFound)
	}
	current, err := uc.userRepo.GetClientByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if current != nil {
		return nil, fmt.Errorf("%w: la empresa ya tiene un usuario cliente", domain.ErrDuplicate)
	}
	email := entity.NormalizeEmail(in.Email)
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         strings.TrimSpace(in.Name),
		PasswordHash: hash,
		Role:         entity.RoleCliente,
		CompanyID:    companyID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return dto.UserFromEntity(user), nil
}

// GetClientUser usuario cliente de la empresa; domain.ErrNotFound si no tiene.
func (uc *CompanyUserUseCase) GetClientUser(ctx context.Context, companyID string) (*dto.UserResponse, error) {
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, fmt.Errorf("%w: empresa no encontrada", domain.ErrNotFound)
	}
	user, err := uc.userRepo.GetClientByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: la empresa no tiene usuario cliente", domain.ErrNotFound)
	}
	return dto.UserFromEntity(user), nil
}
