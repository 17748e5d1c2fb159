package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Rowther/multitenantcrm/internal/application/billing"
	"github.com/Rowther/multitenantcrm/internal/application/workorder"
	"github.com/Rowther/multitenantcrm/internal/domain/repository"
)

// Ensure TxRunner implements workorder.TxRunner and billing.TxRunner.
var _ workorder.TxRunner = (*TxRunner)(nil)
var _ billing.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunWorkOrder inicia una transacción con el repo de órdenes atado a la tx
// (creación con consecutivo, transiciones de estado bajo bloqueo de fila).
func (r *TxRunner) RunWorkOrder(ctx context.Context, fn func(woRepo repository.WorkOrderRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewWorkOrderRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunPayment inicia una transacción con repos de órdenes y pagos: el abono
// y el incremento de paid_amount se confirman juntos o no se confirman.
func (r *TxRunner) RunPayment(ctx context.Context, fn func(
	woRepo repository.WorkOrderRepository,
	payRepo repository.PaymentRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewWorkOrderRepository(tx), NewPaymentRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunInvoice inicia una transacción con repos de facturas y órdenes (emisión
// con consecutivo monotónico por empresa).
func (r *TxRunner) RunInvoice(ctx context.Context, fn func(
	invRepo repository.InvoiceRepository,
	woRepo repository.WorkOrderRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewInvoiceRepository(tx), NewWorkOrderRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
