package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/EspacioDatos-api/internal/domain"
	"github.com/jhoicas/EspacioDatos-api/internal/domain/entity"
	"github.com/jhoicas/EspacioDatos-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
// role y company_id vacíos se guardan como NULL.
type UserRepo struct {
	db Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(db Querier) *UserRepo {
	return &UserRepo{db: db}
}

const userColumns = `id, email, name, password_hash, role, company_id::text, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var (
		u         entity.User
		role      *string
		companyID *string
	)
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &role, &companyID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.Role = deref(role)
	u.CompanyID = deref(companyID)
	return &u, nil
}

// mapUserWriteError traduce las violaciones de unicidad a errores de dominio.
func mapUserWriteError(op string, err error) error {
	if isUniqueViolation(err) {
		if constraintName(err) == "users_one_client_per_company" {
			return fmt.Errorf("%w: la empresa ya tiene un usuario cliente", domain.ErrDuplicate)
		}
		return domain.ErrEmailAlreadyExists
	}
	return fmt.Errorf("%s: %w", op, err)
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO users (id, email, name, password_hash, role, company_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, query,
		u.ID, u.Email, u.Name, u.PasswordHash, nullIfEmpty(u.Role), nullIfEmpty(u.CompanyID),
		u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return mapUserWriteError("insert user", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if !isUUID(id) {
		return nil, nil
	}
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

// GetByEmail obtiene un usuario por email (ya normalizado por el llamador).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1 LIMIT 1`, email))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// GetClientByCompany obtiene el usuario cliente de una empresa.
func (r *UserRepo) GetClientByCompany(ctx context.Context, companyID string) (*entity.User, error) {
	if !isUUID(companyID) {
		return nil, nil
	}
	query := `SELECT ` + userColumns + ` FROM users WHERE company_id = $1 AND role = 'cliente' LIMIT 1`
	u, err := scanUser(r.db.QueryRow(ctx, query, companyID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client user by company: %w", err)
	}
	return u, nil
}

// List lista usuarios con paginación, más recientes primero.
func (r *UserRepo) List(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// Count total de usuarios.
func (r *UserRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

// Update actualiza un usuario.
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	query := `
		UPDATE users SET email = $2, name = $3, password_hash = $4, role = $5, company_id = $6, updated_at = $7
		WHERE id = $1`
	cmd, err := r.db.Exec(ctx, query,
		u.ID, u.Email, u.Name, u.PasswordHash, nullIfEmpty(u.Role), nullIfEmpty(u.CompanyID), u.UpdatedAt,
	)
	if err != nil {
		return mapUserWriteError("update user", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Delete elimina un usuario por ID.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return domain.ErrUserNotFound
	}
	cmd, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// UnlinkCompany desvincula los usuarios de la empresa sin borrarlos.
func (r *UserRepo) UnlinkCompany(ctx context.Context, companyID string) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET company_id = NULL, updated_at = now() WHERE company_id = $1`, companyID)
	if err != nil {
		return fmt.Errorf("unlink users from company: %w", err)
	}
	return nil
}
