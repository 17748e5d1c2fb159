package repository

import "github.com/Rowther/multitenantcrm/internal/domain/entity"

// InvoiceRepository define el puerto de persistencia para Invoice.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	GetByID(id string) (*entity.Invoice, error)
	Update(invoice *entity.Invoice) error
	// ListByCompany devuelve la página y el total de facturas de la
	// empresa. Una página más allá del final devuelve lista vacía con el
	// mismo total.
	ListByCompany(companyID string, limit, offset int) ([]*entity.Invoice, int, error)
	ListByWorkOrder(workOrderID string) ([]*entity.Invoice, error)
	// NextInvoiceNumber incrementa y devuelve el consecutivo de facturas de
	// la empresa. Debe llamarse dentro de la transacción de emisión.
	NextInvoiceNumber(companyID string) (int, error)
}
