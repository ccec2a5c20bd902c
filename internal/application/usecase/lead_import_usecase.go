package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/EspacioDatos-api/internal/application/dto"
	"github.com/jhoicas/EspacioDatos-api/internal/domain"
	"github.com/jhoicas/EspacioDatos-api/internal/domain/entity"
)

// CompanyCreator alta de empresa con su diagnóstico (lifecycle.LifecycleUseCase).
type CompanyCreator interface {
	CreateCompany(ctx context.Context, actor *entity.User, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error)
}

// LeadImportUseCase alta masiva de leads. Cada empresa va en su propia transacción:
// un NIF repetido o una fila errónea no detiene el resto.
type LeadImportUseCase struct {
	creator CompanyCreator
}

// NewLeadImportUseCase construye el caso de uso.
func NewLeadImportUseCase(creator CompanyCreator) *LeadImportUseCase {
	return &LeadImportUseCase{creator: creator}
}

// Import da de alta cada fila como lead. Solo devuelve error si se cancela ctx.
func (uc *LeadImportUseCase) Import(ctx context.Context, actor *entity.User, rows []dto.CreateCompanyRequest) (*dto.LeadImportResponse, error) {
	out := &dto.LeadImportResponse{Created: []string{}, Duplicates: []string{}, Failed: []string{}}
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		c, err := uc.creator.CreateCompany(ctx, actor, row)
		switch {
		case err == nil:
			out.Created = append(out.Created, c.NIF)
		case errors.Is(err, domain.ErrDuplicate):
			out.Duplicates = append(out.Duplicates, row.NIF)
		default:
			out.Failed = append(out.Failed, fmt.Sprintf("%s: %v", row.NIF, err))
		}
	}
	return out, nil
}
