package usecase_test

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test — base SQLite en memoria con el esquema real
// ──────────────────────────────────────────────────────────────────────────────

// bcrypt.MinCost para que los tests no pierdan tiempo hasheando.
const testBcryptCost = bcrypt.MinCost

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.Open(":memory:")
	require.NoError(t, err, "debe abrirse la base en memoria")
	t.Cleanup(func() { db.Close() })
	require.NoError(t, sqlite.NewMigrationService(db, logger.Nop()).RunMigrations(),
		"deben aplicarse todas las migraciones")
	return db
}

func newUserUseCase(t *testing.T) (*usecase.UserUseCase, *sql.DB) {
	t.Helper()
	db := newTestDB(t)
	uc := usecase.NewUserUseCase(sqlite.NewUserRepository(db), sqlite.NewUserRoleRepository(db), testBcryptCost)
	return uc, db
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
func intPtr(n int) *int       { return &n }

// ──────────────────────────────────────────────────────────────────────────────
// Tests UserUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestUserUseCase_Create_RetornaUsuarioSinHash(t *testing.T) {
	uc, _ := newUserUseCase(t)

	out, err := uc.Create(dto.CreateUserRequest{
		Email:     "ana@tienda.local",
		FirstName: "Ana",
		LastName:  "García",
		Password:  "secreto123",
	})
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.NotEmpty(t, out.ID, "el ID debe generarse")
	assert.Equal(t, "ana@tienda.local", out.Email)
	assert.True(t, out.IsActive, "el usuario nuevo debe quedar activo por defecto")
	assert.Nil(t, out.LastLogin, "sin login todavía")
}

func TestUserUseCase_Create_EmailDuplicadoCaseInsensitive(t *testing.T) {
	uc, _ := newUserUseCase(t)

	_, err := uc.Create(dto.CreateUserRequest{Email: "ana@tienda.local", Password: "secreto123"})
	require.NoError(t, err)

	// Mismo email con otra capitalización: debe rechazarse.
	_, err = uc.Create(dto.CreateUserRequest{Email: "ANA@Tienda.LOCAL", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists,
		"el email duplicado debe detectarse sin importar mayúsculas")
}

func TestUserUseCase_GetByID_Inexistente_RetornaNil(t *testing.T) {
	uc, _ := newUserUseCase(t)

	out, err := uc.GetByID("no-existe")
	require.NoError(t, err)
	assert.Nil(t, out, "usuario inexistente debe ser nil sin error")
}

func TestUserUseCase_Update_CamposParciales(t *testing.T) {
	uc, _ := newUserUseCase(t)

	created, err := uc.Create(dto.CreateUserRequest{
		Email: "ana@tienda.local", FirstName: "Ana", LastName: "García", Password: "secreto123",
	})
	require.NoError(t, err)

	out, err := uc.Update(created.ID, dto.UpdateUserRequest{FirstName: strPtr("Anita")}, false)
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, "Anita", out.FirstName, "el campo presente debe actualizarse")
	assert.Equal(t, "García", out.LastName, "el campo ausente no debe tocarse")
	assert.Equal(t, "ana@tienda.local", out.Email)
}

func TestUserUseCase_Update_ToggleActivoSinPermiso_Forbidden(t *testing.T) {
	uc, _ := newUserUseCase(t)

	created, err := uc.Create(dto.CreateUserRequest{Email: "ana@tienda.local", Password: "secreto123"})
	require.NoError(t, err)

	// Un caller sin privilegio de admin no puede desactivar la cuenta.
	_, err = uc.Update(created.ID, dto.UpdateUserRequest{IsActive: boolPtr(false)}, false)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Con allowActiveToggle la misma operación pasa.
	out, err := uc.Update(created.ID, dto.UpdateUserRequest{IsActive: boolPtr(false)}, true)
	require.NoError(t, err)
	assert.False(t, out.IsActive)
}

func TestUserUseCase_Update_EmailDuplicado(t *testing.T) {
	uc, _ := newUserUseCase(t)

	_, err := uc.Create(dto.CreateUserRequest{Email: "ana@tienda.local", Password: "secreto123"})
	require.NoError(t, err)
	otro, err := uc.Create(dto.CreateUserRequest{Email: "benito@tienda.local", Password: "secreto123"})
	require.NoError(t, err)

	_, err = uc.Update(otro.ID, dto.UpdateUserRequest{Email: strPtr("Ana@tienda.local")}, false)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists,
		"cambiar el email al de otro usuario debe rechazarse")
}

func TestUserUseCase_List_PaginacionConTotal(t *testing.T) {
	uc, _ := newUserUseCase(t)

	for _, email := range []string{"a@t.local", "b@t.local", "c@t.local"} {
		_, err := uc.Create(dto.CreateUserRequest{Email: email, Password: "secreto123"})
		require.NoError(t, err)
	}

	items, total, err := uc.List(dto.PageRequest{Limit: 2, Offset: 0})
	require.NoError(t, err)
	assert.Len(t, items, 2, "la página debe respetar el límite")
	assert.Equal(t, 3, total, "el total debe contar todas las filas")

	items, total, err = uc.List(dto.PageRequest{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, items, 1, "la última página trae el resto")
	assert.Equal(t, 3, total)
}

func TestUserUseCase_Delete_RetornaSiExistia(t *testing.T) {
	uc, _ := newUserUseCase(t)

	created, err := uc.Create(dto.CreateUserRequest{Email: "ana@tienda.local", Password: "secreto123"})
	require.NoError(t, err)

	deleted, err := uc.Delete(created.ID)
	require.NoError(t, err)
	assert.True(t, deleted, "borrar un usuario existente debe reportar true")

	deleted, err = uc.Delete(created.ID)
	require.NoError(t, err)
	assert.False(t, deleted, "borrar dos veces debe reportar false sin error")
}
