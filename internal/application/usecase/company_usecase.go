package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Rowther/multitenantcrm/internal/application/dto"
	"github.com/Rowther/multitenantcrm/internal/domain"
	"github.com/Rowther/multitenantcrm/internal/domain/entity"
	"github.com/Rowther/multitenantcrm/internal/domain/repository"
)

// CompanyUseCase administración de empresas (solo SUPERADMIN).
type CompanyUseCase struct {
	companyRepo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso de empresas.
func NewCompanyUseCase(companyRepo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{companyRepo: companyRepo}
}

// Create registra una empresa. Una industria desconocida es válida y recibe
// el comportamiento por defecto (equivalente a furniture).
func (uc *CompanyUseCase) Create(ctx context.Context, role string, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if role != entity.RoleSuperAdmin {
		return nil, domain.ErrForbidden
	}
	if in.Name == "" || in.Industry == "" {
		return nil, domain.ErrValidation
	}

	now := time.Now()
	company := &entity.Company{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Industry:     in.Industry,
		Description:  in.Description,
		Address:      in.Address,
		ContactEmail: in.ContactEmail,
		ContactPhone: in.ContactPhone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.companyRepo.Create(company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// GetByID obtiene una empresa por id.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	company, err := uc.companyRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return toCompanyResponse(company), nil
}

// List devuelve las empresas paginadas (solo SUPERADMIN).
func (uc *CompanyUseCase) List(ctx context.Context, role string, page dto.PageRequest) (*dto.CompanyListResponse, error) {
	if role != entity.RoleSuperAdmin {
		return nil, domain.ErrForbidden
	}
	page.DefaultPage()
	companies, err := uc.companyRepo.List(page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	out := make([]dto.CompanyResponse, 0, len(companies))
	for _, c := range companies {
		out = append(out, *toCompanyResponse(c))
	}
	return &dto.CompanyListResponse{
		Companies:  out,
		Pagination: dto.NewPagination(page.Page, page.Limit, len(out)),
	}, nil
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		ID:           c.ID,
		Name:         c.Name,
		Industry:     c.Industry,
		Description:  c.Description,
		Address:      c.Address,
		ContactEmail: c.ContactEmail,
		ContactPhone: c.ContactPhone,
		CreatedAt:    c.CreatedAt,
	}
}
