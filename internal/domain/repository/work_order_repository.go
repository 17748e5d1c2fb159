package repository

import "github.com/Rowther/multitenantcrm/internal/domain/entity"

// WorkOrderFilter filtros del listado de órdenes. Se combinan con AND;
// Search es subcadena case-insensitive sobre título, número y descripción.
type WorkOrderFilter struct {
	CompanyID  string
	Search     string
	Status     string
	Priority   string
	ClientID   string
	AssignedTo string
	Limit      int
	Offset     int
}

// WorkOrderRepository define el puerto de persistencia para WorkOrder.
type WorkOrderRepository interface {
	Create(wo *entity.WorkOrder) error
	GetByID(id string) (*entity.WorkOrder, error)
	// GetByIDForUpdate bloquea la fila (SELECT ... FOR UPDATE). Solo tiene
	// sentido dentro de una transacción: serializa pagos y transiciones de
	// estado concurrentes sobre la misma orden.
	GetByIDForUpdate(id string) (*entity.WorkOrder, error)
	// Update persiste estado, adjuntos, productos, montos y updated_at de
	// forma atómica.
	Update(wo *entity.WorkOrder) error
	// List devuelve la página y el total que satisface los filtros. Una
	// página más allá del final devuelve lista vacía con el mismo total.
	List(filter WorkOrderFilter) ([]*entity.WorkOrder, int, error)
	// NextOrderNumber incrementa y devuelve el consecutivo de órdenes de la
	// empresa. Debe llamarse dentro de la transacción de creación.
	NextOrderNumber(companyID string) (int, error)
}
