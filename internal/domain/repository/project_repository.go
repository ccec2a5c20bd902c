package repository

import (
	"context"

	"github.com/jhoicas/EspacioDatos-api/internal/domain/entity"
)

// ProjectRepository persistencia de proyectos de incorporación.
type ProjectRepository interface {
	// Create devuelve domain.ErrDuplicate si la empresa ya tiene proyecto.
	Create(ctx context.Context, p *entity.Project) error
	GetByCompany(ctx context.Context, companyID string) (*entity.Project, error)
	Update(ctx context.Context, p *entity.Project) error
	// List todos los proyectos; companyID != "" restringe a esa empresa.
	List(ctx context.Context, companyID string) ([]*entity.Project, error)
	DeleteByCompany(ctx context.Context, companyID string) error
}
