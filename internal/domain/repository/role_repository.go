package repository

import "github.com/jhoicas/tienda-api/internal/domain/entity"

// RoleRepository define el puerto de persistencia para Role (DIP).
type RoleRepository interface {
	Create(role *entity.Role) error
	GetByID(id string) (*entity.Role, error)
	// GetByName compara el nombre sin distinguir mayúsculas.
	GetByName(name string) (*entity.Role, error)
	Update(role *entity.Role) error
	List(limit, offset int) ([]*entity.Role, error)
	Count() (int, error)
	Delete(id string) (bool, error)
}

// UserRoleRepository define el puerto para asignaciones user-role.
type UserRoleRepository interface {
	Create(ur *entity.UserRole) error
	GetByUserAndRole(userID, roleID string) (*entity.UserRole, error)
	DeleteByUserAndRole(userID, roleID string) (bool, error)
	// DeleteByUser borra todas las asignaciones de un usuario (al eliminarlo).
	DeleteByUser(userID string) error
	CountByRole(roleID string) (int, error)
	// ListRolesByUser devuelve los roles asignados a un usuario (join).
	ListRolesByUser(userID string) ([]*entity.Role, error)
	// ListUsersByRole devuelve los usuarios que tienen un rol (join).
	ListUsersByRole(roleID string) ([]*entity.User, error)
}
