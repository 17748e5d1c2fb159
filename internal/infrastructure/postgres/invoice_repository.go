package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Rowther/multitenantcrm/internal/domain"
	"github.com/Rowther/multitenantcrm/internal/domain/entity"
	"github.com/Rowther/multitenantcrm/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación del puerto InvoiceRepository sobre PostgreSQL (usable con pool o tx).
// Items va como JSONB.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador de persistencia para facturas. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, company_id, work_order_id, invoice_number, items, subtotal,
	tax_amount, total_amount, status, issued_date, due_date, created_at, updated_at`

// Create persiste una factura nueva.
func (r *InvoiceRepo) Create(inv *entity.Invoice) error {
	items, err := json.Marshal(inv.Items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err = r.q.Exec(context.Background(), query,
		inv.ID, inv.CompanyID, inv.WorkOrderID, inv.InvoiceNumber, items, inv.Subtotal,
		inv.TaxAmount, inv.TotalAmount, inv.Status, inv.IssuedDate, inv.DueDate, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por ID.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	inv, err := scanInvoice(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// Update persiste items, totales, estado y vencimiento.
func (r *InvoiceRepo) Update(inv *entity.Invoice) error {
	items, err := json.Marshal(inv.Items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}
	query := `
		UPDATE invoices SET items = $2, subtotal = $3, tax_amount = $4, total_amount = $5,
			status = $6, due_date = $7, updated_at = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		inv.ID, items, inv.Subtotal, inv.TaxAmount, inv.TotalAmount,
		inv.Status, inv.DueDate, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCompany lista facturas por empresa con paginación. El total refleja
// todas las facturas de la empresa, no solo la página devuelta.
func (r *InvoiceRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Invoice, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM invoices WHERE company_id = $1`
	if err := r.q.QueryRow(context.Background(), countQuery, companyID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count invoices: %w", err)
	}

	query := `SELECT ` + invoiceColumns + ` FROM invoices
		WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	invoices, err := r.list(query, companyID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return invoices, total, nil
}

// ListByWorkOrder lista las facturas emitidas contra una orden.
func (r *InvoiceRepo) ListByWorkOrder(workOrderID string) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices
		WHERE work_order_id = $1 ORDER BY created_at DESC`
	return r.list(query, workOrderID)
}

// NextInvoiceNumber incrementa y devuelve el consecutivo de facturas de la empresa.
func (r *InvoiceRepo) NextInvoiceNumber(companyID string) (int, error) {
	query := `
		INSERT INTO company_counters (company_id, work_order_seq, invoice_seq)
		VALUES ($1, 0, 1)
		ON CONFLICT (company_id) DO UPDATE SET invoice_seq = company_counters.invoice_seq + 1
		RETURNING invoice_seq`
	var seq int
	if err := r.q.QueryRow(context.Background(), query, companyID).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next invoice number: %w", err)
	}
	return seq, nil
}

func (r *InvoiceRepo) list(query string, args ...any) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invoices: %w", err)
	}
	return invoices, nil
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var items []byte
	err := row.Scan(
		&inv.ID, &inv.CompanyID, &inv.WorkOrderID, &inv.InvoiceNumber, &items, &inv.Subtotal,
		&inv.TaxAmount, &inv.TotalAmount, &inv.Status, &inv.IssuedDate, &inv.DueDate, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &inv.Items); err != nil {
			return nil, fmt.Errorf("unmarshal items: %w", err)
		}
	}
	return &inv, nil
}
