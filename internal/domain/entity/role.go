package entity

import "time"

// Roles creados por el bootstrap inicial.
const (
	RoleAdmin     = "admin"
	RoleUser      = "user"
	RoleModerator = "moderator"
)

// Role representa un rol de autorización (nombre único, case-insensitive).
type Role struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// UserRole es la asignación de un Role a un User. Única por par (user, role).
type UserRole struct {
	ID         string
	UserID     string
	RoleID     string
	AssignedBy string // id del usuario que hizo la asignación
	AssignedAt time.Time
}
