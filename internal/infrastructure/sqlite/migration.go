package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jhoicas/tienda-api/pkg/logger"
)

// MigrationService aplica migraciones una sola vez, registrándolas en la
// tabla migrations. Correr el proceso dos veces no cambia nada.
type MigrationService struct {
	db  *sql.DB
	log *logger.Logger
}

// NewMigrationService construye el runner de migraciones.
func NewMigrationService(db *sql.DB, log *logger.Logger) *MigrationService {
	return &MigrationService{db: db, log: log}
}

// RunMigrations aplica todas las migraciones pendientes en orden.
func (m *MigrationService) RunMigrations() error {
	if err := m.initMigrationTable(); err != nil {
		return fmt.Errorf("crear tabla de migraciones: %w", err)
	}

	migrations := []struct {
		Name string
		Func func(*sql.DB) error
	}{
		{"create_users_table", createUsersTable},
		{"create_roles_table", createRolesTable},
		{"create_user_roles_table", createUserRolesTable},
		{"create_products_table", createProductsTable},
		{"create_files_table", createFilesTable},
	}

	for _, mig := range migrations {
		if err := m.apply(mig.Name, mig.Func); err != nil {
			return fmt.Errorf("aplicar migración %s: %w", mig.Name, err)
		}
	}
	return nil
}

func (m *MigrationService) initMigrationTable() error {
	_, err := m.db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			applied_at DATETIME NOT NULL
		)`)
	return err
}

func (m *MigrationService) isApplied(name string) (bool, error) {
	var count int
	err := m.db.QueryRow(`SELECT COUNT(*) FROM migrations WHERE name = ?`, name).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (m *MigrationService) apply(name string, fn func(*sql.DB) error) error {
	applied, err := m.isApplied(name)
	if err != nil {
		return err
	}
	if applied {
		m.log.Debug().Str("migration", name).Msg("migración ya aplicada")
		return nil
	}

	m.log.Info().Str("migration", name).Msg("aplicando migración")
	if err := fn(m.db); err != nil {
		return err
	}
	if _, err := m.db.Exec(`INSERT INTO migrations (name, applied_at) VALUES (?, ?)`, name, time.Now().UTC()); err != nil {
		return err
	}
	return nil
}

// Booleanos como INTEGER y fechas como DATETIME: SQLite no tiene tipos
// nativos para ambos; la coerción vive centralizada en este paquete.

func createUsersTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE COLLATE NOCASE,
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL,
			is_active INTEGER NOT NULL DEFAULT 1,
			last_login DATETIME,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`)
	return err
}

func createRolesTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS roles (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE COLLATE NOCASE,
			description TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`)
	return err
}

func createUserRolesTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS user_roles (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id),
			role_id TEXT NOT NULL REFERENCES roles(id),
			assigned_by TEXT NOT NULL,
			assigned_at DATETIME NOT NULL,
			UNIQUE(user_id, role_id)
		)`)
	return err
}

func createProductsTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS products (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price TEXT NOT NULL DEFAULT '0',
			category TEXT NOT NULL DEFAULT '',
			sku TEXT NOT NULL UNIQUE COLLATE NOCASE,
			in_stock INTEGER NOT NULL DEFAULT 0,
			stock_quantity INTEGER NOT NULL DEFAULT 0,
			image_url TEXT,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`)
	return err
}

func createFilesTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS files (
			id TEXT PRIMARY KEY,
			original_name TEXT NOT NULL,
			storage_name TEXT NOT NULL,
			mime_type TEXT NOT NULL DEFAULT 'application/octet-stream',
			size INTEGER NOT NULL DEFAULT 0,
			path TEXT NOT NULL,
			uploaded_by TEXT,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`)
	return err
}
