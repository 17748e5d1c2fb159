package workorder

import (
	"context"

	"github.com/Rowther/multitenantcrm/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con el repositorio
// de órdenes atado a ella. El callback debe tomar el bloqueo de fila
// (GetByIDForUpdate) antes de mutar: ahí se serializa contra los pagos
// concurrentes sobre la misma orden.
type TxRunner interface {
	RunWorkOrder(ctx context.Context, fn func(woRepo repository.WorkOrderRepository) error) error
}
