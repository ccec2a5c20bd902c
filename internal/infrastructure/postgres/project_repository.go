package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/EspacioDatos-api/internal/domain"
	"github.com/jhoicas/EspacioDatos-api/internal/domain/entity"
	"github.com/jhoicas/EspacioDatos-api/internal/domain/repository"
)

var _ repository.ProjectRepository = (*ProjectRepo)(nil)

// ProjectRepo proyectos de incorporación sobre PostgreSQL. El checklist se guarda en
// cuatro columnas booleanas.
type ProjectRepo struct {
	db Querier
}

// NewProjectRepository construye el adaptador.
func NewProjectRepository(db Querier) *ProjectRepo {
	return &ProjectRepo{db: db}
}

const projectColumns = `id, company_id, title, phase, status, target_role, space_name, use_case,
	rgpd_checked, incorporation_status, chk_espacio_seleccionado, chk_rol_definido,
	chk_caso_uso_definido, chk_validacion_rgpd, created_at, updated_at`

func scanProject(row pgx.Row) (*entity.Project, error) {
	var p entity.Project
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.Title, &p.Phase, &p.Status, &p.TargetRole, &p.SpaceName, &p.UseCase,
		&p.RGPDChecked, &p.IncorporationStatus, &p.Checklist.EspacioSeleccionado, &p.Checklist.RolDefinido,
		&p.Checklist.CasoUsoDefinido, &p.Checklist.ValidacionRGPD, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserta el proyecto. La unicidad de company_id garantiza un proyecto por empresa.
func (r *ProjectRepo) Create(ctx context.Context, p *entity.Project) error {
	query := `
		INSERT INTO projects (` + projectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.db.Exec(ctx, query,
		p.ID, p.CompanyID, p.Title, p.Phase, p.Status, p.TargetRole, p.SpaceName, p.UseCase,
		p.RGPDChecked, p.IncorporationStatus, p.Checklist.EspacioSeleccionado, p.Checklist.RolDefinido,
		p.Checklist.CasoUsoDefinido, p.Checklist.ValidacionRGPD, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: la empresa ya tiene proyecto", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

// GetByCompany proyecto de la empresa.
func (r *ProjectRepo) GetByCompany(ctx context.Context, companyID string) (*entity.Project, error) {
	if !isUUID(companyID) {
		return nil, nil
	}
	p, err := scanProject(r.db.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE company_id = $1`, companyID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

// Update guarda los campos editables y el checklist derivado.
func (r *ProjectRepo) Update(ctx context.Context, p *entity.Project) error {
	query := `
		UPDATE projects SET target_role = $2, space_name = $3, use_case = $4, rgpd_checked = $5,
			incorporation_status = $6, chk_espacio_seleccionado = $7, chk_rol_definido = $8,
			chk_caso_uso_definido = $9, chk_validacion_rgpd = $10, updated_at = $11
		WHERE id = $1`
	cmd, err := r.db.Exec(ctx, query,
		p.ID, p.TargetRole, p.SpaceName, p.UseCase, p.RGPDChecked, p.IncorporationStatus,
		p.Checklist.EspacioSeleccionado, p.Checklist.RolDefinido, p.Checklist.CasoUsoDefinido,
		p.Checklist.ValidacionRGPD, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List proyectos, más recientes primero; companyID != "" filtra por empresa.
func (r *ProjectRepo) List(ctx context.Context, companyID string) ([]*entity.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects`
	var args []any
	if companyID != "" {
		query += ` WHERE company_id = $1`
		args = append(args, companyID)
	}
	query += ` ORDER BY created_at DESC, id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// DeleteByCompany elimina el proyecto de la empresa si existe.
func (r *ProjectRepo) DeleteByCompany(ctx context.Context, companyID string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM projects WHERE company_id = $1`, companyID); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}
