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

// DirectoryUseCase catálogo de colaboradores de la empresa: clientes
// finales, técnicos y vehículos (estos últimos solo en automotive).
type DirectoryUseCase struct {
	clientRepo   repository.ClientRepository
	employeeRepo repository.EmployeeRepository
	vehicleRepo  repository.VehicleRepository
	userRepo     repository.UserRepository
	companyRepo  repository.CompanyRepository
}

// NewDirectoryUseCase construye el caso de uso de catálogo.
func NewDirectoryUseCase(
	clientRepo repository.ClientRepository,
	employeeRepo repository.EmployeeRepository,
	vehicleRepo repository.VehicleRepository,
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
) *DirectoryUseCase {
	return &DirectoryUseCase{
		clientRepo:   clientRepo,
		employeeRepo: employeeRepo,
		vehicleRepo:  vehicleRepo,
		userRepo:     userRepo,
		companyRepo:  companyRepo,
	}
}

// CreateClient registra un cliente final de la empresa.
func (uc *DirectoryUseCase) CreateClient(ctx context.Context, companyID string, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrValidation
	}
	now := time.Now()
	client := &entity.Client{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		Name:          in.Name,
		Email:         in.Email,
		Phone:         in.Phone,
		Address:       in.Address,
		ContactPerson: in.ContactPerson,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.clientRepo.Create(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// ListClients devuelve los clientes de la empresa paginados.
func (uc *DirectoryUseCase) ListClients(ctx context.Context, companyID string, page dto.PageRequest) ([]dto.ClientResponse, error) {
	page.DefaultPage()
	clients, err := uc.clientRepo.ListByCompany(companyID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, *toClientResponse(c))
	}
	return out, nil
}

// CreateEmployee registra un técnico ligado a una cuenta de usuario de la
// misma empresa.
func (uc *DirectoryUseCase) CreateEmployee(ctx context.Context, companyID string, in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if in.UserID == "" {
		return nil, domain.ErrValidation
	}
	user, err := uc.userRepo.GetByID(in.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	if in.HourlyRate != nil && in.HourlyRate.IsNegative() {
		return nil, domain.ErrValidation
	}

	now := time.Now()
	emp := &entity.Employee{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		UserID:     in.UserID,
		Position:   in.Position,
		Skills:     in.Skills,
		HourlyRate: in.HourlyRate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.employeeRepo.Create(emp); err != nil {
		return nil, err
	}
	return toEmployeeResponse(emp), nil
}

// ListEmployees devuelve los técnicos de la empresa paginados.
func (uc *DirectoryUseCase) ListEmployees(ctx context.Context, companyID string, page dto.PageRequest) ([]dto.EmployeeResponse, error) {
	page.DefaultPage()
	employees, err := uc.employeeRepo.ListByCompany(companyID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		out = append(out, *toEmployeeResponse(e))
	}
	return out, nil
}

// CreateVehicle registra un vehículo. Solo empresas automotive llevan flota.
func (uc *DirectoryUseCase) CreateVehicle(ctx context.Context, companyID string, in dto.CreateVehicleRequest) (*dto.VehicleResponse, error) {
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if company.Industry != entity.IndustryAutomotive {
		return nil, domain.ErrValidation
	}
	if in.PlateNumber == "" {
		return nil, domain.ErrValidation
	}
	if in.OwnerClientID != "" {
		owner, err := uc.clientRepo.GetByID(in.OwnerClientID)
		if err != nil {
			return nil, err
		}
		if owner == nil || owner.CompanyID != companyID {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	vehicle := &entity.Vehicle{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		PlateNumber:   in.PlateNumber,
		Make:          in.Make,
		Model:         in.Model,
		Year:          in.Year,
		VIN:           in.VIN,
		OwnerClientID: in.OwnerClientID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.vehicleRepo.Create(vehicle); err != nil {
		return nil, err
	}
	return toVehicleResponse(vehicle), nil
}

// ListVehicles devuelve los vehículos de la empresa paginados.
func (uc *DirectoryUseCase) ListVehicles(ctx context.Context, companyID string, page dto.PageRequest) ([]dto.VehicleResponse, error) {
	page.DefaultPage()
	vehicles, err := uc.vehicleRepo.ListByCompany(companyID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	out := make([]dto.VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, *toVehicleResponse(v))
	}
	return out, nil
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:            c.ID,
		CompanyID:     c.CompanyID,
		Name:          c.Name,
		Email:         c.Email,
		Phone:         c.Phone,
		Address:       c.Address,
		ContactPerson: c.ContactPerson,
		CreatedAt:     c.CreatedAt,
	}
}

func toEmployeeResponse(e *entity.Employee) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		ID:         e.ID,
		CompanyID:  e.CompanyID,
		UserID:     e.UserID,
		Position:   e.Position,
		Skills:     e.Skills,
		HourlyRate: e.HourlyRate,
		CreatedAt:  e.CreatedAt,
	}
}

func toVehicleResponse(v *entity.Vehicle) *dto.VehicleResponse {
	return &dto.VehicleResponse{
		ID:            v.ID,
		CompanyID:     v.CompanyID,
		PlateNumber:   v.PlateNumber,
		Make:          v.Make,
		Model:         v.Model,
		Year:          v.Year,
		VIN:           v.VIN,
		OwnerClientID: v.OwnerClientID,
		CreatedAt:     v.CreatedAt,
	}
}
