package repository

import (
	"context"

	"github.com/jhoicas/EspacioDatos-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Las búsquedas devuelven (nil, nil) cuando el registro no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetClientByCompany usuario cliente vinculado a la empresa (como mucho uno).
	GetClientByCompany(ctx context.Context, companyID string) (*entity.User, error)
	List(ctx context.Context, limit, offset int) ([]*entity.User, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id string) error
	// UnlinkCompany deja company_id a NULL en los usuarios de la empresa.
	UnlinkCompany(ctx context.Context, companyID string) error
}
