package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/pkg/jwt"
)

// Locals keys para la identidad verificada en Fiber.
const (
	LocalUserID = "user_id"
	LocalEmail  = "email"
	LocalRoles  = "roles"
)

// UserVerifier re-chequea contra la DB que el usuario del token siga
// existiendo y activo (desactivación efectiva sin esperar la expiración).
type UserVerifier interface {
	VerifyUser(userID string) error
}

// AuthMiddleware valida el token del header Authorization y carga la
// identidad en c.Locals. Acepta "Bearer <token>" o el token crudo.
func AuthMiddleware(jwtSecret string, verifier UserVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := extractToken(c)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail(fiber.StatusUnauthorized, "token requerido"))
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			if errors.Is(err, jwt.ErrExpired) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail(fiber.StatusUnauthorized, "token expirado"))
			}
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail(fiber.StatusUnauthorized, "token inválido"))
		}
		if verifier != nil {
			if err := verifier.VerifyUser(claims.UserID); err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail(fiber.StatusUnauthorized, "cuenta inexistente o desactivada"))
			}
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalEmail, claims.Email)
		c.Locals(LocalRoles, claims.Roles)
		return c.Next()
	}
}

// OptionalAuthMiddleware intenta cargar la identidad si hay token válido y
// nunca rechaza la petición (lo usa /api/auth/register para distinguir si el
// caller es un admin autenticado).
func OptionalAuthMiddleware(jwtSecret string, verifier UserVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := extractToken(c)
		if tokenString == "" {
			return c.Next()
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Next()
		}
		if verifier != nil {
			if err := verifier.VerifyUser(claims.UserID); err != nil {
				return c.Next()
			}
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalEmail, claims.Email)
		c.Locals(LocalRoles, claims.Roles)
		return c.Next()
	}
}

// RequireRole autoriza si la identidad tiene ALGUNO de los roles permitidos
// (comparación case-insensitive). Debe correr después de AuthMiddleware.
func RequireRole(allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roles := GetRoles(c)
		if GetUserID(c) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail(fiber.StatusUnauthorized, "identidad requerida"))
		}
		if len(roles) == 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail(fiber.StatusUnauthorized, "el token no tiene roles"))
		}
		for _, have := range roles {
			for _, want := range allowed {
				if strings.EqualFold(have, want) {
					return c.Next()
				}
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.Fail(fiber.StatusForbidden, "rol insuficiente"))
	}
}

// extractToken lee el header Authorization aceptando el prefijo Bearer o el
// token pelado.
func extractToken(c *fiber.Ctx) string {
	header := strings.TrimSpace(c.Get("Authorization"))
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return header
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	v, _ := c.Locals(LocalUserID).(string)
	return v
}

// GetEmail devuelve el email del contexto.
func GetEmail(c *fiber.Ctx) string {
	v, _ := c.Locals(LocalEmail).(string)
	return v
}

// GetRoles devuelve los roles embebidos en el token.
func GetRoles(c *fiber.Ctx) []string {
	v, _ := c.Locals(LocalRoles).([]string)
	return v
}

// IsAdmin indica si la identidad del contexto tiene el rol admin.
func IsAdmin(c *fiber.Ctx) bool {
	for _, r := range GetRoles(c) {
		if strings.EqualFold(r, entity.RoleAdmin) {
			return true
		}
	}
	return false
}
