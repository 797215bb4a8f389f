package entity

import "time"

// User representa una cuenta del sistema. Los roles se modelan con UserRole
// (tabla de unión), no como campo del usuario.
type User struct {
	ID           string
	Email        string // único, comparación case-insensitive
	FirstName    string
	LastName     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	IsActive     bool
	LastLogin    *time.Time // nil hasta el primer login
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName nombre completo para presentación.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
