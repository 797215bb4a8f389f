package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre SQLite.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

const userColumns = `id, email, first_name, last_name, password_hash, is_active, last_login, created_at, updated_at`

// Create persiste un nuevo usuario. La columna email tiene UNIQUE COLLATE
// NOCASE: el constraint respalda el pre-chequeo del caso de uso ante carreras.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.Exec(query,
		user.ID, user.Email, user.FirstName, user.LastName, user.PasswordHash,
		user.IsActive, ptrToNullTime(user.LastLogin), user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	return r.scanOne(`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

// GetByEmail obtiene un usuario por email (COLLATE NOCASE en la columna hace
// la comparación case-insensitive).
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	return r.scanOne(`SELECT `+userColumns+` FROM users WHERE email = ? LIMIT 1`, email)
}

func (r *UserRepo) scanOne(query string, args ...interface{}) (*entity.User, error) {
	var u entity.User
	var lastLogin sql.NullTime
	err := r.db.QueryRow(query, args...).Scan(
		&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash,
		&u.IsActive, &lastLogin, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	u.LastLogin = nullTimeToPtr(lastLogin)
	return &u, nil
}

// Update actualiza un usuario existente.
func (r *UserRepo) Update(user *entity.User) error {
	query := `
		UPDATE users
		SET email = ?, first_name = ?, last_name = ?, password_hash = ?, is_active = ?, last_login = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.Exec(query,
		user.Email, user.FirstName, user.LastName, user.PasswordHash,
		user.IsActive, ptrToNullTime(user.LastLogin), user.UpdatedAt, user.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// List lista usuarios con paginación, más recientes primero.
func (r *UserRepo) List(limit, offset int) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC LIMIT ? OFFSET ?`
	rows, err := r.db.Query(query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
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

// Count devuelve el total de usuarios.
func (r *UserRepo) Count() (int, error) {
	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

// Delete elimina un usuario por ID. Devuelve si existía la fila.
func (r *UserRepo) Delete(id string) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
