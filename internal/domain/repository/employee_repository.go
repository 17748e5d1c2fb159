package repository

import "github.com/Rowther/multitenantcrm/internal/domain/entity"

// EmployeeRepository define el puerto de persistencia para Employee.
type EmployeeRepository interface {
	Create(employee *entity.Employee) error
	GetByID(id string) (*entity.Employee, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Employee, error)
}
