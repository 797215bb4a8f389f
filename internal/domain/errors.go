package domain

import "errors"

// Errores de dominio (sin dependencias externas). La capa HTTP los mapea a
// 400/401/403/404; cualquier otro error termina en 500 genérico.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrRoleNotFound       = errors.New("rol no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrRoleInUse          = errors.New("el rol tiene usuarios asignados")
	ErrFileTooLarge       = errors.New("el archivo excede el tamaño máximo")
	ErrExtensionNotAllowed = errors.New("extensión de archivo no permitida")
)
