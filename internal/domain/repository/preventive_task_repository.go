package repository

import "github.com/Rowther/multitenantcrm/internal/domain/entity"

// PreventiveTaskRepository define el puerto de persistencia para PreventiveTask.
type PreventiveTaskRepository interface {
	Create(task *entity.PreventiveTask) error
	GetByID(id string) (*entity.PreventiveTask, error)
	Update(task *entity.PreventiveTask) error
	// ListByCompany devuelve la página y el total de tareas de la empresa.
	ListByCompany(companyID string, limit, offset int) ([]*entity.PreventiveTask, int, error)
}
