package dto

import "time"

// CreateRoleRequest entrada para crear un rol.
type CreateRoleRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateRoleRequest entrada para actualizar un rol.
type UpdateRoleRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// RoleResponse salida de un rol.
type RoleResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// AssignRoleRequest entrada para asignar o quitar un rol a un usuario.
type AssignRoleRequest struct {
	UserID string `json:"userId"`
	RoleID string `json:"roleId"`
}

// UserRoleResponse salida de una asignación user-role.
type UserRoleResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	RoleID     string    `json:"roleId"`
	AssignedBy string    `json:"assignedBy"`
	AssignedAt time.Time `json:"assignedAt"`
}
