package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Rowther/multitenantcrm/internal/application/dto"
	"github.com/Rowther/multitenantcrm/internal/domain"
	"github.com/Rowther/multitenantcrm/internal/domain/entity"
	"github.com/Rowther/multitenantcrm/internal/domain/repository"
)

// UserUseCase gestión de cuentas de usuario.
type UserUseCase struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
}

// NewUserUseCase construye el caso de uso de usuarios.
func NewUserUseCase(userRepo repository.UserRepository, companyRepo repository.CompanyRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo, companyRepo: companyRepo}
}

// Create da de alta un usuario. ADMIN solo crea dentro de su empresa y nunca
// otros administradores globales; SUPERADMIN crea en cualquier empresa.
func (uc *UserUseCase) Create(ctx context.Context, actorCompanyID, actorRole string, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	switch actorRole {
	case entity.RoleSuperAdmin:
	case entity.RoleAdmin:
		if in.CompanyID != actorCompanyID || in.Role == entity.RoleSuperAdmin {
			return nil, domain.ErrForbidden
		}
	default:
		return nil, domain.ErrForbidden
	}

	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Email == "" || in.Password == "" || in.DisplayName == "" {
		return nil, domain.ErrValidation
	}
	switch in.Role {
	case entity.RoleSuperAdmin, entity.RoleAdmin, entity.RoleEmployee, entity.RoleClient:
	default:
		return nil, domain.ErrValidation
	}
	if in.Role != entity.RoleSuperAdmin {
		company, err := uc.companyRepo.GetByID(in.CompanyID)
		if err != nil {
			return nil, err
		}
		if company == nil {
			return nil, domain.ErrNotFound
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    in.CompanyID,
		Role:         in.Role,
		Email:        in.Email,
		PasswordHash: string(hash),
		DisplayName:  in.DisplayName,
		Phone:        in.Phone,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// GetByID obtiene un usuario; fuera de SUPERADMIN solo dentro de la empresa.
func (uc *UserUseCase) GetByID(ctx context.Context, actorCompanyID, actorRole, id string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if actorRole != entity.RoleSuperAdmin && user.CompanyID != actorCompanyID {
		return nil, domain.ErrNotFound
	}
	return toUserResponse(user), nil
}

// ListByCompany devuelve los usuarios de una empresa paginados.
func (uc *UserUseCase) ListByCompany(ctx context.Context, companyID string, page dto.PageRequest) ([]dto.UserResponse, error) {
	page.DefaultPage()
	users, err := uc.userRepo.ListByCompany(companyID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *toUserResponse(u))
	}
	return out, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:          u.ID,
		CompanyID:   u.CompanyID,
		Role:        u.Role,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Phone:       u.Phone,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
		LastLogin:   u.LastLogin,
	}
}
