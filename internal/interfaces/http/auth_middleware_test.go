package http_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/tienda-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/tienda-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testEmail     = "test@tienda.local"
	testIssuer    = "tienda-api-test"
	testExpMin    = 60
)

// stubVerifier simula el re-chequeo del usuario contra la DB.
type stubVerifier struct {
	err error
}

func (s *stubVerifier) VerifyUser(userID string) error { return s.err }

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar locals
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(verifier apphttp.UserVerifier, allowedRoles ...string) *fiber.App {
	app := fiber.New(fiber.Config{
		// Silenciar errores internos en los tests
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	// Ruta protegida: JWT + RBAC
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret, verifier),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":    true,
				"roles": apphttp.GetRoles(c),
			})
		},
	)
	return app
}

// tokenForRoles genera un JWT con los roles indicados.
func tokenForRoles(t *testing.T, roles ...string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testEmail, roles, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: El usuario tiene el rol requerido → debe pasar (HTTP 200).
func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp(&stubVerifier{}, "admin")
	resp := doRequest(t, app, tokenForRoles(t, "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"admin debe poder acceder a ruta restringida a admin")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"], "la respuesta debe incluir ok:true")
}

// Caso 1b: El usuario tiene uno de los roles permitidos (multi-rol) → HTTP 200.
func TestRequireRole_ModeratorAccedeRutaAdminOModerator(t *testing.T) {
	app := buildTestApp(&stubVerifier{}, "admin", "moderator")
	resp := doRequest(t, app, tokenForRoles(t, "user", "moderator"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"moderator debe poder acceder a ruta que permite admin o moderator")
}

// Caso 1c: La comparación de roles es case-insensitive.
func TestRequireRole_ComparacionCaseInsensitive(t *testing.T) {
	app := buildTestApp(&stubVerifier{}, "admin")
	resp := doRequest(t, app, tokenForRoles(t, "Admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"el rol Admin debe equivaler a admin")
}

// Caso 2: El usuario tiene un rol diferente al requerido → HTTP 403 Forbidden.
func TestRequireRole_UserBloqueadoEnRutaAdmin(t *testing.T) {
	app := buildTestApp(&stubVerifier{}, "admin")
	resp := doRequest(t, app, tokenForRoles(t, "user"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"user no debe poder acceder a ruta restringida a admin")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "rol insuficiente",
		"la respuesta de error debe indicar rol insuficiente")
}

// Caso 3: Token sin roles → HTTP 401.
func TestRequireRole_TokenSinRoles_Retorna401(t *testing.T) {
	app := buildTestApp(&stubVerifier{}, "admin")
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testEmail, nil, testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"token sin roles debe retornar 401")
}

// Caso 4: Sin header Authorization → HTTP 401.
func TestRequireRole_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp(&stubVerifier{}, "admin")
	resp := doRequest(t, app, "") // sin header
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 5: Token inválido / malformado → HTTP 401.
func TestRequireRole_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(&stubVerifier{}, "admin")
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 6: Token válido pero usuario desactivado según el verifier → HTTP 401.
func TestAuthMiddleware_UsuarioDesactivado_Retorna401(t *testing.T) {
	app := buildTestApp(&stubVerifier{err: errors.New("cuenta desactivada")}, "admin")
	resp := doRequest(t, app, tokenForRoles(t, "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"un token de usuario desactivado no debe servir aunque la firma sea válida")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "cuenta inexistente o desactivada")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware — extracción de claims del token
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ExtraeClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret, &stubVerifier{}), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": apphttp.GetUserID(c),
			"email":   apphttp.GetEmail(c),
			"roles":   apphttp.GetRoles(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenForRoles(t, "admin", "user"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		UserID string   `json:"user_id"`
		Email  string   `json:"email"`
		Roles  []string `json:"roles"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body.UserID)
	assert.Equal(t, testEmail, body.Email)
	assert.Equal(t, []string{"admin", "user"}, body.Roles)
}

// El middleware acepta el token sin el prefijo Bearer.
func TestAuthMiddleware_TokenSinPrefijoBearer(t *testing.T) {
	app := buildTestApp(&stubVerifier{}, "admin")
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testEmail, []string{"admin"}, testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, app, tok) // sin "Bearer "
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"el token pelado debe aceptarse igual que con prefijo Bearer")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests JWT pkg — integridad del generate/parse con roles
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse_ConRoles(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testEmail, []string{"user", "moderator"}, testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testUserID, claims.UserID)
	assert.Equal(t, testEmail, claims.Email)
	assert.Equal(t, []string{"user", "moderator"}, claims.Roles)
	assert.Equal(t, testIssuer, claims.Issuer)
}

func TestJWT_TokenExpirado_RetornaErrExpired(t *testing.T) {
	// Token con expiración -1 minuto (ya expirado)
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testEmail, []string{"admin"}, testIssuer, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.ErrorIs(t, err, pkgjwt.ErrExpired, "token expirado debe retornar ErrExpired")
}

func TestJWT_SecretIncorrecto_RetornaErrInvalid(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testEmail, []string{"admin"}, testIssuer, testExpMin)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalid, "secret incorrecto debe invalidar el token")
}
