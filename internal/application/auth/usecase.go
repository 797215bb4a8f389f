package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login y verificación
// de identidad para el middleware.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	roleRepo    repository.RoleRepository
	urRepo      repository.UserRoleRepository
	jwtCfg      JWTConfig
	defaultRole string
	bcryptCost  int
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, roleRepo repository.RoleRepository, urRepo repository.UserRoleRepository, jwtCfg JWTConfig, defaultRole string, bcryptCost int) *AuthUseCase {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthUseCase{
		userRepo:    userRepo,
		roleRepo:    roleRepo,
		urRepo:      urRepo,
		jwtCfg:      jwtCfg,
		defaultRole: defaultRole,
		bcryptCost:  bcryptCost,
	}
}

// Register crea la cuenta y devuelve usuario + token. Los roles del body solo
// se respetan cuando callerIsAdmin; de lo contrario se asigna el rol por
// defecto configurado. callerID vacío = registro anónimo.
func (uc *AuthUseCase) Register(in dto.RegisterRequest, callerIsAdmin bool, callerID string) (*dto.AuthResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByEmail(in.Email)
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
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: string(hash),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}

	var roleNames []string
	if callerIsAdmin && len(in.Roles) > 0 {
		roleNames = in.Roles
	} else if uc.defaultRole != "" {
		roleNames = []string{uc.defaultRole}
	}
	assigner := callerID
	if assigner == "" {
		assigner = user.ID // auto-asignación del rol por defecto
	}
	var assigned []*entity.Role
	for _, name := range roleNames {
		role, err := uc.roleRepo.GetByName(name)
		if err != nil {
			return nil, err
		}
		if role == nil {
			if callerIsAdmin {
				return nil, domain.ErrRoleNotFound
			}
			continue // rol por defecto sin bootstrap: cuenta queda sin rol
		}
		ur := &entity.UserRole{
			ID:         uuid.New().String(),
			UserID:     user.ID,
			RoleID:     role.ID,
			AssignedBy: assigner,
			AssignedAt: now,
		}
		if err := uc.urRepo.Create(ur); err != nil {
			return nil, err
		}
		assigned = append(assigned, role)
	}

	return uc.buildAuthResponse(user, assigned)
}

// Login verifica credenciales. Usuario inexistente, inactivo o password
// incorrecto producen el mismo ErrUnauthorized; actualiza LastLogin al entrar.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	now := time.Now()
	user.LastLogin = &now
	user.UpdatedAt = now
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}

	roles, err := uc.urRepo.ListRolesByUser(user.ID)
	if err != nil {
		return nil, err
	}
	return uc.buildAuthResponse(user, roles)
}

// VerifyUser re-chequea que el usuario del token siga existiendo y activo.
// Hace efectiva la desactivación ante peticiones nuevas aunque el token no
// haya vencido; los roles embebidos en el token quedan tal como se emitieron.
func (uc *AuthUseCase) VerifyUser(userID string) error {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil || !user.IsActive {
		return domain.ErrUnauthorized
	}
	return nil
}

func (uc *AuthUseCase) buildAuthResponse(user *entity.User, roles []*entity.Role) (*dto.AuthResponse, error) {
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, r.Name)
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, names, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		User:        *usecase.ToUserResponse(user, roles),
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   uc.jwtCfg.ExpMinutes * 60,
	}, nil
}
