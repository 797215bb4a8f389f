package repository

import "github.com/jhoicas/tienda-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
// Las búsquedas devuelven (nil, nil) cuando no hay fila.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	// GetByEmail compara el email sin distinguir mayúsculas.
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	List(limit, offset int) ([]*entity.User, error)
	Count() (int, error)
	Delete(id string) (bool, error)
}
