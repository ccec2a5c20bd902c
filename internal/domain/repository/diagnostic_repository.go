package repository

import (
	"context"

	"github.com/jhoicas/EspacioDatos-api/internal/domain/entity"
)

// DiagnosticRepository persistencia del diagnóstico (uno por empresa).
type DiagnosticRepository interface {
	Create(ctx context.Context, d *entity.Diagnostic) error
	GetByCompany(ctx context.Context, companyID string) (*entity.Diagnostic, error)
	// GetByCompanyForUpdate igual que GetByCompany pero bloquea la fila hasta el fin de la transacción.
	GetByCompanyForUpdate(ctx context.Context, companyID string) (*entity.Diagnostic, error)
	Update(ctx context.Context, d *entity.Diagnostic) error
	DeleteByCompany(ctx context.Context, companyID string) error
}
