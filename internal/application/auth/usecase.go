package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/Rowther/multitenantcrm/internal/application/dto"
	"github.com/Rowther/multitenantcrm/internal/domain"
	"github.com/Rowther/multitenantcrm/internal/domain/repository"
	"github.com/Rowther/multitenantcrm/pkg/config"
	"github.com/Rowther/multitenantcrm/pkg/jwt"
)

// UseCase autenticación: login con email/contraseña y emisión de JWT.
type UseCase struct {
	userRepo repository.UserRepository
	jwtCfg   config.JWTConfig
}

// NewUseCase construye el caso de uso de autenticación.
func NewUseCase(userRepo repository.UserRepository, jwtCfg config.JWTConfig) *UseCase {
	return &UseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login verifica las credenciales y devuelve un token firmado. Credenciales
// incorrectas y cuentas inactivas responden igual para no filtrar cuáles
// emails existen.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrValidation
	}
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.CompanyID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.Expiration)
	if err != nil {
		return nil, err
	}

	_ = uc.userRepo.UpdateLastLogin(user.ID)

	return &dto.LoginResponse{
		Token: token,
		User: dto.UserResponse{
			ID:          user.ID,
			CompanyID:   user.CompanyID,
			Role:        user.Role,
			Email:       user.Email,
			DisplayName: user.DisplayName,
			Phone:       user.Phone,
			IsActive:    user.IsActive,
			CreatedAt:   user.CreatedAt,
			LastLogin:   user.LastLogin,
		},
	}, nil
}
