package billing

import (
	"context"

	"github.com/Rowther/multitenantcrm/internal/domain/entity"
	"github.com/Rowther/multitenantcrm/internal/domain/repository"
)

// TxRunner ejecuta la función dentro de una transacción con los repositorios
// ligados a ella. El bloqueo de fila de la orden serializa pagos y
// transiciones de estado concurrentes.
type TxRunner interface {
	RunPayment(ctx context.Context, fn func(woRepo repository.WorkOrderRepository, payRepo repository.PaymentRepository) error) error
	RunInvoice(ctx context.Context, fn func(invRepo repository.InvoiceRepository, woRepo repository.WorkOrderRepository) error) error
}

// InvoicePDFGenerator genera el documento PDF de una factura.
type InvoicePDFGenerator interface {
	Generate(invoice *entity.Invoice, company *entity.Company) ([]byte, error)
}
