package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

// BootstrapConfig credenciales del admin inicial.
type BootstrapConfig struct {
	AdminEmail     string
	AdminPassword  string
	AdminFirstName string
	AdminLastName  string
	BcryptCost     int
}

// Bootstrap garantiza en el arranque los roles base (admin, user, moderator)
// y un usuario admin con las credenciales configuradas. Cada paso verifica
// antes de crear: correrlo dos veces no duplica nada.
type Bootstrap struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
	urRepo   repository.UserRoleRepository
	cfg      BootstrapConfig
	log      *logger.Logger
}

// NewBootstrap construye el procedimiento de arranque.
func NewBootstrap(userRepo repository.UserRepository, roleRepo repository.RoleRepository, urRepo repository.UserRoleRepository, cfg BootstrapConfig, log *logger.Logger) *Bootstrap {
	return &Bootstrap{userRepo: userRepo, roleRepo: roleRepo, urRepo: urRepo, cfg: cfg, log: log}
}

// Run ejecuta el bootstrap completo.
func (b *Bootstrap) Run() error {
	roles := []struct{ name, description string }{
		{entity.RoleAdmin, "Acceso total al sistema"},
		{entity.RoleUser, "Usuario estándar"},
		{entity.RoleModerator, "Gestión de contenido"},
	}
	for _, r := range roles {
		if err := b.ensureRole(r.name, r.description); err != nil {
			return err
		}
	}
	return b.ensureAdminUser()
}

func (b *Bootstrap) ensureRole(name, description string) error {
	existing, err := b.roleRepo.GetByName(name)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	now := time.Now()
	role := &entity.Role{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := b.roleRepo.Create(role); err != nil {
		return err
	}
	b.log.Info().Str("role", name).Msg("rol base creado")
	return nil
}

func (b *Bootstrap) ensureAdminUser() error {
	if b.cfg.AdminEmail == "" || b.cfg.AdminPassword == "" {
		b.log.Warn().Msg("bootstrap de admin activo pero sin ADMIN_EMAIL/ADMIN_PASSWORD; se omite la cuenta")
		return nil
	}
	admin, err := b.userRepo.GetByEmail(b.cfg.AdminEmail)
	if err != nil {
		return err
	}
	if admin == nil {
		cost := b.cfg.BcryptCost
		if cost == 0 {
			cost = bcrypt.DefaultCost
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(b.cfg.AdminPassword), cost)
		if err != nil {
			return err
		}
		now := time.Now()
		admin = &entity.User{
			ID:           uuid.New().String(),
			Email:        b.cfg.AdminEmail,
			FirstName:    b.cfg.AdminFirstName,
			LastName:     b.cfg.AdminLastName,
			PasswordHash: string(hash),
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := b.userRepo.Create(admin); err != nil {
			return err
		}
		b.log.Info().Str("email", admin.Email).Msg("usuario admin creado")
	}

	adminRole, err := b.roleRepo.GetByName(entity.RoleAdmin)
	if err != nil {
		return err
	}
	if adminRole == nil {
		return nil
	}
	assigned, err := b.urRepo.GetByUserAndRole(admin.ID, adminRole.ID)
	if err != nil {
		return err
	}
	if assigned != nil {
		return nil
	}
	return b.urRepo.Create(&entity.UserRole{
		ID:         uuid.New().String(),
		UserID:     admin.ID,
		RoleID:     adminRole.ID,
		AssignedBy: admin.ID,
		AssignedAt: time.Now(),
	})
}
