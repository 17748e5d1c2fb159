package repository

import "github.com/Rowther/multitenantcrm/internal/domain/entity"

// PaymentRepository define el puerto de persistencia para Payment.
type PaymentRepository interface {
	Create(payment *entity.Payment) error
	ListByWorkOrder(workOrderID string) ([]*entity.Payment, error)
}
