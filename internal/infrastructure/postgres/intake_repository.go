package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/EspacioDatos-api/internal/domain/entity"
	"github.com/jhoicas/EspacioDatos-api/internal/domain/repository"
)

var _ repository.IntakeRepository = (*IntakeRepo)(nil)

// IntakeRepo cuestionarios de cliente sobre PostgreSQL (arrays TEXT[]).
type IntakeRepo struct {
	db Querier
}

// NewIntakeRepository construye el adaptador.
func NewIntakeRepository(db Querier) *IntakeRepo {
	return &IntakeRepo{db: db}
}

const intakeColumns = `id, company_id, data_types, usage_pattern, interests, sensitivity_level, notes,
	submitted, submitted_at, created_at, updated_at`

func scanIntake(row pgx.Row) (*entity.ClientIntake, error) {
	var in entity.ClientIntake
	err := row.Scan(
		&in.ID, &in.CompanyID, &in.DataTypes, &in.UsagePattern, &in.Interests, &in.SensitivityLevel,
		&in.Notes, &in.Submitted, &in.SubmittedAt, &in.CreatedAt, &in.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &in, nil
}

// GetByCompany intake de la empresa.
func (r *IntakeRepo) GetByCompany(ctx context.Context, companyID string) (*entity.ClientIntake, error) {
	if !isUUID(companyID) {
		return nil, nil
	}
	in, err := scanIntake(r.db.QueryRow(ctx, `SELECT `+intakeColumns+` FROM client_intakes WHERE company_id = $1`, companyID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get intake: %w", err)
	}
	return in, nil
}

// Save inserta o actualiza el intake (upsert por company_id). created_at solo se fija al insertar.
func (r *IntakeRepo) Save(ctx context.Context, in *entity.ClientIntake) error {
	dataTypes, interests := in.DataTypes, in.Interests
	if dataTypes == nil {
		dataTypes = []string{}
	}
	if interests == nil {
		interests = []string{}
	}
	query := `
		INSERT INTO client_intakes (` + intakeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (company_id) DO UPDATE SET
			data_types = EXCLUDED.data_types,
			usage_pattern = EXCLUDED.usage_pattern,
			interests = EXCLUDED.interests,
			sensitivity_level = EXCLUDED.sensitivity_level,
			notes = EXCLUDED.notes,
			submitted = EXCLUDED.submitted,
			submitted_at = EXCLUDED.submitted_at,
			updated_at = EXCLUDED.updated_at`
	_, err := r.db.Exec(ctx, query,
		in.ID, in.CompanyID, dataTypes, in.UsagePattern, interests, in.SensitivityLevel, in.Notes,
		in.Submitted, in.SubmittedAt, in.CreatedAt, in.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save intake: %w", err)
	}
	return nil
}

// DeleteByCompany elimina el intake de la empresa si existe.
func (r *IntakeRepo) DeleteByCompany(ctx context.Context, companyID string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM client_intakes WHERE company_id = $1`, companyID); err != nil {
		return fmt.Errorf("delete intake: %w", err)
	}
	return nil
}
