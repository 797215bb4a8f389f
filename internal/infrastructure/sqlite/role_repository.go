package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.RoleRepository = (*RoleRepo)(nil)

// RoleRepo implementación del puerto RoleRepository sobre SQLite.
type RoleRepo struct {
	db *sql.DB
}

// NewRoleRepository construye el adaptador de persistencia para roles.
func NewRoleRepository(db *sql.DB) *RoleRepo {
	return &RoleRepo{db: db}
}

const roleColumns = `id, name, description, created_at, updated_at`

// Create persiste un nuevo rol. El nombre tiene UNIQUE COLLATE NOCASE.
func (r *RoleRepo) Create(role *entity.Role) error {
	query := `INSERT INTO roles (` + roleColumns + `) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.Exec(query, role.ID, role.Name, role.Description, role.CreatedAt, role.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert role: %w", err)
	}
	return nil
}

// GetByID obtiene un rol por ID.
func (r *RoleRepo) GetByID(id string) (*entity.Role, error) {
	return r.scanOne(`SELECT `+roleColumns+` FROM roles WHERE id = ?`, id)
}

// GetByName obtiene un rol por nombre (case-insensitive).
func (r *RoleRepo) GetByName(name string) (*entity.Role, error) {
	return r.scanOne(`SELECT `+roleColumns+` FROM roles WHERE name = ? LIMIT 1`, name)
}

func (r *RoleRepo) scanOne(query string, args ...interface{}) (*entity.Role, error) {
	var role entity.Role
	err := r.db.QueryRow(query, args...).Scan(
		&role.ID, &role.Name, &role.Description, &role.CreatedAt, &role.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role: %w", err)
	}
	return &role, nil
}

// Update actualiza un rol existente.
func (r *RoleRepo) Update(role *entity.Role) error {
	query := `UPDATE roles SET name = ?, description = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.Exec(query, role.Name, role.Description, role.UpdatedAt, role.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update role: %w", err)
	}
	return nil
}

// List lista roles con paginación.
func (r *RoleRepo) List(limit, offset int) ([]*entity.Role, error) {
	query := `SELECT ` + roleColumns + ` FROM roles ORDER BY name LIMIT ? OFFSET ?`
	rows, err := r.db.Query(query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	var list []*entity.Role
	for rows.Next() {
		var role entity.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		list = append(list, &role)
	}
	return list, rows.Err()
}

// Count devuelve el total de roles.
func (r *RoleRepo) Count() (int, error) {
	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM roles`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count roles: %w", err)
	}
	return n, nil
}

// Delete elimina un rol por ID. Devuelve si existía la fila. El guard de
// asignaciones activas vive en el caso de uso, no aquí.
func (r *RoleRepo) Delete(id string) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM roles WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete role: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
