package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// RoleUseCase reglas de negocio para roles y asignaciones user-role.
type RoleUseCase struct {
	repo     repository.RoleRepository
	urRepo   repository.UserRoleRepository
	userRepo repository.UserRepository
}

// NewRoleUseCase construye el caso de uso con los puertos de persistencia.
func NewRoleUseCase(repo repository.RoleRepository, urRepo repository.UserRoleRepository, userRepo repository.UserRepository) *RoleUseCase {
	return &RoleUseCase{repo: repo, urRepo: urRepo, userRepo: userRepo}
}

// Create crea un rol. Rechaza nombre duplicado (case-insensitive).
func (uc *RoleUseCase) Create(in dto.CreateRoleRequest) (*dto.RoleResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	role := &entity.Role{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(role); err != nil {
		return nil, err
	}
	return toRoleResponse(role), nil
}

// GetByID obtiene un rol por ID.
func (uc *RoleUseCase) GetByID(id string) (*dto.RoleResponse, error) {
	role, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, nil
	}
	return toRoleResponse(role), nil
}

// List lista roles con paginación y total.
func (uc *RoleUseCase) List(page dto.PageRequest) ([]dto.RoleResponse, int, error) {
	page.DefaultPage()
	roles, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := uc.repo.Count()
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.RoleResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, *toRoleResponse(r))
	}
	return out, total, nil
}

// Update modifica nombre/descripción. El nombre nuevo no puede chocar con otro rol.
func (uc *RoleUseCase) Update(id string, in dto.UpdateRoleRequest) (*dto.RoleResponse, error) {
	role, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, nil
	}
	if in.Name != nil && *in.Name != "" {
		other, err := uc.repo.GetByName(*in.Name)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != role.ID {
			return nil, domain.ErrDuplicate
		}
		role.Name = *in.Name
	}
	if in.Description != nil {
		role.Description = *in.Description
	}
	role.UpdatedAt = time.Now()
	if err := uc.repo.Update(role); err != nil {
		return nil, err
	}
	return toRoleResponse(role), nil
}

// Delete elimina un rol. Se rechaza mientras existan asignaciones activas,
// reportando cuántos usuarios lo bloquean.
func (uc *RoleUseCase) Delete(id string) (bool, error) {
	role, err := uc.repo.GetByID(id)
	if err != nil {
		return false, err
	}
	if role == nil {
		return false, nil
	}
	count, err := uc.urRepo.CountByRole(id)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, fmt.Errorf("%w: %d asignaciones activas", domain.ErrRoleInUse, count)
	}
	return uc.repo.Delete(id)
}

// Assign asigna un rol a un usuario. Usuario, rol y asignador deben existir;
// el par (user, role) no puede repetirse.
func (uc *RoleUseCase) Assign(in dto.AssignRoleRequest, assignedBy string) (*dto.UserRoleResponse, error) {
	if in.UserID == "" || in.RoleID == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByID(in.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	role, err := uc.repo.GetByID(in.RoleID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrRoleNotFound
	}
	assigner, err := uc.userRepo.GetByID(assignedBy)
	if err != nil {
		return nil, err
	}
	if assigner == nil {
		return nil, domain.ErrUserNotFound
	}
	existing, err := uc.urRepo.GetByUserAndRole(in.UserID, in.RoleID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	ur := &entity.UserRole{
		ID:         uuid.New().String(),
		UserID:     in.UserID,
		RoleID:     in.RoleID,
		AssignedBy: assignedBy,
		AssignedAt: time.Now(),
	}
	if err := uc.urRepo.Create(ur); err != nil {
		return nil, err
	}
	return &dto.UserRoleResponse{
		ID:         ur.ID,
		UserID:     ur.UserID,
		RoleID:     ur.RoleID,
		AssignedBy: ur.AssignedBy,
		AssignedAt: ur.AssignedAt,
	}, nil
}

// Remove quita un rol a un usuario. Devuelve ErrNotFound si no estaba asignado.
func (uc *RoleUseCase) Remove(in dto.AssignRoleRequest) error {
	removed, err := uc.urRepo.DeleteByUserAndRole(in.UserID, in.RoleID)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrNotFound
	}
	return nil
}

// RolesByUser devuelve los roles de un usuario.
func (uc *RoleUseCase) RolesByUser(userID string) ([]dto.RoleResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	roles, err := uc.urRepo.ListRolesByUser(userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RoleResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, *toRoleResponse(r))
	}
	return out, nil
}

// UsersByRole devuelve los usuarios que tienen un rol.
func (uc *RoleUseCase) UsersByRole(roleID string) ([]dto.UserResponse, error) {
	role, err := uc.repo.GetByID(roleID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrRoleNotFound
	}
	users, err := uc.urRepo.ListUsersByRole(roleID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *ToUserResponse(u, nil))
	}
	return out, nil
}

func toRoleResponse(r *entity.Role) *dto.RoleResponse {
	if r == nil {
		return nil
	}
	return &dto.RoleResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
