package repository

import (
	"context"

	"github.com/jhoicas/EspacioDatos-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	GetByNIF(ctx context.Context, nif string) (*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
	List(ctx context.Context, filter entity.CompanyFilter) ([]*entity.Company, error)
	Count(ctx context.Context, filter entity.CompanyFilter) (int, error)
	Delete(ctx context.Context, id string) error
}
