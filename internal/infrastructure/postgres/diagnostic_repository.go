package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/EspacioDatos-api/internal/domain"
	"github.com/jhoicas/EspacioDatos-api/internal/domain/entity"
	"github.com/jhoicas/EspacioDatos-api/internal/domain/repository"
)

var _ repository.DiagnosticRepository = (*DiagnosticRepo)(nil)

// DiagnosticRepo diagnósticos sobre PostgreSQL.
type DiagnosticRepo struct {
	db Querier
}

// NewDiagnosticRepository construye el adaptador.
func NewDiagnosticRepository(db Querier) *DiagnosticRepo {
	return &DiagnosticRepo{db: db}
}

// diagnosticColumns lista de lectura: decided_by (UUID) se escanea como texto.
const diagnosticColumns = `id, company_id, eligibility_ok, space_identified, data_potential, legal_risk,
	notes, result, decided_by::text, decided_at, created_at, updated_at`

const diagnosticInsertColumns = `id, company_id, eligibility_ok, space_identified, data_potential, legal_risk,
	notes, result, decided_by, decided_at, created_at, updated_at`

func scanDiagnostic(row pgx.Row) (*entity.Diagnostic, error) {
	var (
		d         entity.Diagnostic
		decidedBy *string
	)
	err := row.Scan(
		&d.ID, &d.CompanyID, &d.EligibilityOK, &d.SpaceIdentified, &d.DataPotential, &d.LegalRisk,
		&d.Notes, &d.Result, &decidedBy, &d.DecidedAt, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	d.DecidedBy = deref(decidedBy)
	return &d, nil
}

// Create inserta el diagnóstico inicial de una empresa.
func (r *DiagnosticRepo) Create(ctx context.Context, d *entity.Diagnostic) error {
	query := `
		INSERT INTO diagnostics (` + diagnosticInsertColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.db.Exec(ctx, query,
		d.ID, d.CompanyID, d.EligibilityOK, d.SpaceIdentified, d.DataPotential, d.LegalRisk,
		d.Notes, d.Result, nullIfEmpty(d.DecidedBy), d.DecidedAt, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: la empresa ya tiene diagnóstico", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert diagnostic: %w", err)
	}
	return nil
}

// GetByCompany diagnóstico de la empresa.
func (r *DiagnosticRepo) GetByCompany(ctx context.Context, companyID string) (*entity.Diagnostic, error) {
	return r.get(ctx, `SELECT `+diagnosticColumns+` FROM diagnostics WHERE company_id = $1`, companyID)
}

// GetByCompanyForUpdate bloquea la fila (solo tiene efecto dentro de una transacción).
func (r *DiagnosticRepo) GetByCompanyForUpdate(ctx context.Context, companyID string) (*entity.Diagnostic, error) {
	return r.get(ctx, `SELECT `+diagnosticColumns+` FROM diagnostics WHERE company_id = $1 FOR UPDATE`, companyID)
}

func (r *DiagnosticRepo) get(ctx context.Context, query, companyID string) (*entity.Diagnostic, error) {
	if !isUUID(companyID) {
		return nil, nil
	}
	d, err := scanDiagnostic(r.db.QueryRow(ctx, query, companyID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get diagnostic: %w", err)
	}
	return d, nil
}

// Update guarda todos los campos editables y la decisión.
func (r *DiagnosticRepo) Update(ctx context.Context, d *entity.Diagnostic) error {
	query := `
		UPDATE diagnostics SET eligibility_ok = $2, space_identified = $3, data_potential = $4,
			legal_risk = $5, notes = $6, result = $7, decided_by = $8, decided_at = $9, updated_at = $10
		WHERE id = $1`
	cmd, err := r.db.Exec(ctx, query,
		d.ID, d.EligibilityOK, d.SpaceIdentified, d.DataPotential, d.LegalRisk, d.Notes,
		d.Result, nullIfEmpty(d.DecidedBy), d.DecidedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update diagnostic: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteByCompany elimina el diagnóstico de la empresa.
func (r *DiagnosticRepo) DeleteByCompany(ctx context.Context, companyID string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM diagnostics WHERE company_id = $1`, companyID); err != nil {
		return fmt.Errorf("delete diagnostic: %w", err)
	}
	return nil
}
