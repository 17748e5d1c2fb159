package repository

import "github.com/Rowther/multitenantcrm/internal/domain/entity"

// VehicleRepository define el puerto de persistencia para Vehicle.
type VehicleRepository interface {
	Create(vehicle *entity.Vehicle) error
	GetByID(id string) (*entity.Vehicle, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Vehicle, error)
}
