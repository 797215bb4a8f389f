package sqlite_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, sqlite.NewMigrationService(db, logger.Nop()).RunMigrations())
	return db
}

// ──────────────────────────────────────────────────────────────────────────────
// Round-trip de coerción: bools → INTEGER, fechas → DATETIME, decimal → TEXT
// ──────────────────────────────────────────────────────────────────────────────

func TestUserRepo_RoundTrip_BoolYFechas(t *testing.T) {
	repo := sqlite.NewUserRepository(newTestDB(t))

	lastLogin := time.Date(2026, 8, 15, 10, 30, 0, 0, time.UTC)
	now := time.Now().UTC().Truncate(time.Second)
	in := &entity.User{
		ID:           "u-1",
		Email:        "ana@tienda.local",
		FirstName:    "Ana",
		LastName:     "García",
		PasswordHash: "$2a$04$hash",
		IsActive:     false,
		LastLogin:    &lastLogin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, repo.Create(in))

	out, err := repo.GetByID("u-1")
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, in.Email, out.Email)
	assert.False(t, out.IsActive, "el booleano debe sobrevivir la coerción a INTEGER")
	require.NotNil(t, out.LastLogin)
	assert.True(t, out.LastLogin.Equal(lastLogin), "last_login debe sobrevivir la coerción a DATETIME")
	assert.True(t, out.CreatedAt.Equal(now))
}

func TestUserRepo_LastLoginNulo(t *testing.T) {
	repo := sqlite.NewUserRepository(newTestDB(t))

	now := time.Now().UTC()
	require.NoError(t, repo.Create(&entity.User{
		ID: "u-1", Email: "ana@tienda.local", PasswordHash: "h",
		IsActive: true, CreatedAt: now, UpdatedAt: now,
	}))

	out, err := repo.GetByID("u-1")
	require.NoError(t, err)
	assert.Nil(t, out.LastLogin, "sin login el campo debe quedar nil")
}

func TestUserRepo_ConstraintUnique_RespaldaElPreChequeo(t *testing.T) {
	repo := sqlite.NewUserRepository(newTestDB(t))

	now := time.Now().UTC()
	require.NoError(t, repo.Create(&entity.User{
		ID: "u-1", Email: "ana@tienda.local", PasswordHash: "h",
		IsActive: true, CreatedAt: now, UpdatedAt: now,
	}))

	// Insert directo saltándose el pre-chequeo del caso de uso: el constraint
	// UNIQUE COLLATE NOCASE responde igual.
	err := repo.Create(&entity.User{
		ID: "u-2", Email: "ANA@TIENDA.LOCAL", PasswordHash: "h",
		IsActive: true, CreatedAt: now, UpdatedAt: now,
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestProductRepo_RoundTrip_DecimalSinPerdida(t *testing.T) {
	repo := sqlite.NewProductRepository(newTestDB(t))

	now := time.Now().UTC()
	price := decimal.RequireFromString("1234.56")
	in := &entity.Product{
		ID:            "p-1",
		Name:          "Café de grano 1kg",
		Price:         price,
		Category:      "alimentos",
		SKU:           "CAFE-001",
		InStock:       true,
		StockQuantity: 5,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, repo.Create(in))

	out, err := repo.GetByID("p-1")
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.True(t, out.Price.Equal(price), "el precio TEXT debe volver exacto: %s", out.Price)
	assert.True(t, out.InStock)
	assert.Equal(t, 5, out.StockQuantity)
}

func TestProductRepo_GetBySKU_CaseInsensitive(t *testing.T) {
	repo := sqlite.NewProductRepository(newTestDB(t))

	now := time.Now().UTC()
	require.NoError(t, repo.Create(&entity.Product{
		ID: "p-1", Name: "Café", Price: decimal.New(1, 0), SKU: "CAFE-001",
		CreatedAt: now, UpdatedAt: now,
	}))

	out, err := repo.GetBySKU("cafe-001")
	require.NoError(t, err)
	require.NotNil(t, out, "la búsqueda por SKU debe ser case-insensitive")
	assert.Equal(t, "p-1", out.ID)
}

func TestUserRoleRepo_ParUnico(t *testing.T) {
	db := newTestDB(t)
	userRepo := sqlite.NewUserRepository(db)
	roleRepo := sqlite.NewRoleRepository(db)
	urRepo := sqlite.NewUserRoleRepository(db)

	now := time.Now().UTC()
	require.NoError(t, userRepo.Create(&entity.User{
		ID: "u-1", Email: "ana@tienda.local", PasswordHash: "h",
		IsActive: true, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, roleRepo.Create(&entity.Role{
		ID: "r-1", Name: "editor", CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, urRepo.Create(&entity.UserRole{
		ID: "ur-1", UserID: "u-1", RoleID: "r-1", AssignedBy: "u-1", AssignedAt: now,
	}))

	// El UNIQUE(user_id, role_id) respalda el pre-chequeo del caso de uso.
	err := urRepo.Create(&entity.UserRole{
		ID: "ur-2", UserID: "u-1", RoleID: "r-1", AssignedBy: "u-1", AssignedAt: now,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	count, err := urRepo.CountByRole("r-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMigrations_SonIdempotentes(t *testing.T) {
	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := sqlite.NewMigrationService(db, logger.Nop())
	require.NoError(t, svc.RunMigrations())
	require.NoError(t, svc.RunMigrations(), "el segundo run no debe fallar ni re-aplicar nada")

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM migrations`).Scan(&n))
	assert.Equal(t, 5, n, "cada migración debe registrarse una sola vez")
}
