package repository

import (
	"context"

	"github.com/jhoicas/EspacioDatos-api/internal/domain/entity"
)

// IntakeRepository persistencia del cuestionario del cliente.
type IntakeRepository interface {
	GetByCompany(ctx context.Context, companyID string) (*entity.ClientIntake, error)
	// Save inserta o actualiza el intake de la empresa (clave: company_id).
	Save(ctx context.Context, in *entity.ClientIntake) error
	DeleteByCompany(ctx context.Context, companyID string) error
}
