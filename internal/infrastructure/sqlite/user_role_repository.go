package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.UserRoleRepository = (*UserRoleRepo)(nil)

// UserRoleRepo implementación del puerto UserRoleRepository sobre SQLite.
type UserRoleRepo struct {
	db *sql.DB
}

// NewUserRoleRepository construye el adaptador de asignaciones user-role.
func NewUserRoleRepository(db *sql.DB) *UserRoleRepo {
	return &UserRoleRepo{db: db}
}

// Create persiste una asignación. UNIQUE(user_id, role_id) respalda el
// pre-chequeo de duplicados del caso de uso.
func (r *UserRoleRepo) Create(ur *entity.UserRole) error {
	query := `
		INSERT INTO user_roles (id, user_id, role_id, assigned_by, assigned_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.Exec(query, ur.ID, ur.UserID, ur.RoleID, ur.AssignedBy, ur.AssignedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert user_role: %w", err)
	}
	return nil
}

// GetByUserAndRole busca la asignación de un par (user, role).
func (r *UserRoleRepo) GetByUserAndRole(userID, roleID string) (*entity.UserRole, error) {
	query := `
		SELECT id, user_id, role_id, assigned_by, assigned_at
		FROM user_roles WHERE user_id = ? AND role_id = ?`
	var ur entity.UserRole
	err := r.db.QueryRow(query, userID, roleID).Scan(
		&ur.ID, &ur.UserID, &ur.RoleID, &ur.AssignedBy, &ur.AssignedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user_role: %w", err)
	}
	return &ur, nil
}

// DeleteByUserAndRole elimina la asignación de un par. Devuelve si existía.
func (r *UserRoleRepo) DeleteByUserAndRole(userID, roleID string) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM user_roles WHERE user_id = ? AND role_id = ?`, userID, roleID)
	if err != nil {
		return false, fmt.Errorf("delete user_role: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// DeleteByUser elimina todas las asignaciones de un usuario.
func (r *UserRoleRepo) DeleteByUser(userID string) error {
	if _, err := r.db.Exec(`DELETE FROM user_roles WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("delete user_roles by user: %w", err)
	}
	return nil
}

// CountByRole cuenta las asignaciones activas de un rol (guard de borrado).
func (r *UserRoleRepo) CountByRole(roleID string) (int, error) {
	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM user_roles WHERE role_id = ?`, roleID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count user_roles: %w", err)
	}
	return n, nil
}

// ListRolesByUser devuelve los roles asignados a un usuario.
func (r *UserRoleRepo) ListRolesByUser(userID string) ([]*entity.Role, error) {
	query := `
		SELECT r.id, r.name, r.description, r.created_at, r.updated_at
		FROM roles r
		INNER JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_id = ?
		ORDER BY r.name`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("list roles by user: %w", err)
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

// ListUsersByRole devuelve los usuarios que tienen un rol.
func (r *UserRoleRepo) ListUsersByRole(roleID string) ([]*entity.User, error) {
	query := `
		SELECT u.id, u.email, u.first_name, u.last_name, u.password_hash, u.is_active, u.last_login, u.created_at, u.updated_at
		FROM users u
		INNER JOIN user_roles ur ON ur.user_id = u.id
		WHERE ur.role_id = ?
		ORDER BY u.created_at DESC`
	rows, err := r.db.Query(query, roleID)
	if err != nil {
		return nil, fmt.Errorf("list users by role: %w", err)
	}
	defer rows.Close()

	var list []*entity.User
	for rows.Next() {
		var u entity.User
		var lastLogin sql.NullTime
		if err := rows.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash,
			&u.IsActive, &lastLogin, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		u.LastLogin = nullTimeToPtr(lastLogin)
		list = append(list, &u)
	}
	return list, rows.Err()
}
