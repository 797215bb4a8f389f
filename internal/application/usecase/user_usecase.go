package usecase

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios. El chequeo de email
// duplicado es read-then-write: no es atómico, pero el constraint UNIQUE de la
// tabla respalda el caso de carrera.
type UserUseCase struct {
	repo       repository.UserRepository
	roleRepo   repository.UserRoleRepository
	bcryptCost int
}

// NewUserUseCase construye el caso de uso con los puertos de persistencia.
func NewUserUseCase(repo repository.UserRepository, roleRepo repository.UserRoleRepository, bcryptCost int) *UserUseCase {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserUseCase{repo: repo, roleRepo: roleRepo, bcryptCost: bcryptCost}
}

// Create crea un usuario. Rechaza email duplicado (case-insensitive) y hashea
// el password antes de persistir; el hash nunca sale en la respuesta.
func (uc *UserUseCase) Create(in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.bcryptCost)
	if err != nil {
		return nil, err
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: string(hash),
		IsActive:     active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(user); err != nil {
		return nil, err
	}
	return ToUserResponse(user, nil), nil
}

// GetByID obtiene un usuario con sus roles.
func (uc *UserUseCase) GetByID(id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	roles, err := uc.roleRepo.ListRolesByUser(id)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user, roles), nil
}

// List lista usuarios con paginación y devuelve además el total.
func (uc *UserUseCase) List(page dto.PageRequest) ([]dto.UserResponse, int, error) {
	page.DefaultPage()
	users, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := uc.repo.Count()
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *ToUserResponse(u, nil))
	}
	return out, total, nil
}

// Update modifica los campos presentes. allowActiveToggle controla si el
// caller puede tocar IsActive (solo admin; un usuario no se desactiva a sí mismo).
func (uc *UserUseCase) Update(id string, in dto.UpdateUserRequest, allowActiveToggle bool) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	if in.Email != nil && *in.Email != "" && *in.Email != user.Email {
		other, err := uc.repo.GetByEmail(*in.Email)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != user.ID {
			return nil, domain.ErrEmailAlreadyExists
		}
		user.Email = *in.Email
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), uc.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if in.IsActive != nil {
		if !allowActiveToggle {
			return nil, domain.ErrForbidden
		}
		user.IsActive = *in.IsActive
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	roles, err := uc.roleRepo.ListRolesByUser(id)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user, roles), nil
}

// Delete elimina el usuario y sus asignaciones de rol. Los archivos y
// productos que creó conservan la referencia colgante (sin cascada).
func (uc *UserUseCase) Delete(id string) (bool, error) {
	if err := uc.roleRepo.DeleteByUser(id); err != nil {
		return false, err
	}
	return uc.repo.Delete(id)
}

// ToUserResponse proyección pública: nunca incluye el hash del password.
func ToUserResponse(u *entity.User, roles []*entity.Role) *dto.UserResponse {
	if u == nil {
		return nil
	}
	var names []string
	for _, r := range roles {
		names = append(names, r.Name)
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsActive:  u.IsActive,
		Roles:     names,
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
