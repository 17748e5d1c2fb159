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

var _ repository.WorkOrderRepository = (*WorkOrderRepo)(nil)

// WorkOrderRepo implementación del puerto WorkOrderRepository sobre PostgreSQL (usable con pool o tx).
// Products va como JSONB; técnicos y adjuntos como text[].
type WorkOrderRepo struct {
	q Querier
}

// NewWorkOrderRepository construye el adaptador de persistencia para órdenes. Pasar pool o tx (Querier).
func NewWorkOrderRepository(q Querier) *WorkOrderRepo {
	return &WorkOrderRepo{q: q}
}

const workOrderColumns = `id, company_id, order_number, title, description, status, priority,
	created_by, requested_by_client_id, vehicle_id, asset_code, asset_category,
	assigned_technicians, products, quoted_price, paid_amount, attachments,
	sla_days, promise_date, created_at, updated_at`

// Create persiste una nueva orden de trabajo.
func (r *WorkOrderRepo) Create(wo *entity.WorkOrder) error {
	products, err := json.Marshal(wo.Products)
	if err != nil {
		return fmt.Errorf("marshal products: %w", err)
	}
	query := `
		INSERT INTO work_orders (` + workOrderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`
	_, err = r.q.Exec(context.Background(), query,
		wo.ID, wo.CompanyID, wo.OrderNumber, wo.Title, wo.Description, wo.Status, wo.Priority,
		wo.CreatedBy, wo.RequestedByClientID, nullIfEmpty(wo.VehicleID), wo.AssetCode, wo.AssetCategory,
		wo.AssignedTechnicians, products, wo.QuotedPrice, wo.PaidAmount, wo.Attachments,
		wo.SLADays, wo.PromiseDate, wo.CreatedAt, wo.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert work order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID.
func (r *WorkOrderRepo) GetByID(id string) (*entity.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + ` FROM work_orders WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByIDForUpdate obtiene una orden bloqueando la fila. Dentro de una tx
// serializa pagos y transiciones de estado concurrentes sobre la misma orden.
func (r *WorkOrderRepo) GetByIDForUpdate(id string) (*entity.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + ` FROM work_orders WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// Update persiste estado, campos de negocio, montos y adjuntos de forma atómica.
func (r *WorkOrderRepo) Update(wo *entity.WorkOrder) error {
	products, err := json.Marshal(wo.Products)
	if err != nil {
		return fmt.Errorf("marshal products: %w", err)
	}
	query := `
		UPDATE work_orders SET
			title = $2, description = $3, status = $4, priority = $5,
			requested_by_client_id = $6, vehicle_id = $7, asset_code = $8, asset_category = $9,
			assigned_technicians = $10, products = $11, quoted_price = $12, paid_amount = $13,
			attachments = $14, sla_days = $15, promise_date = $16, updated_at = $17
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		wo.ID, wo.Title, wo.Description, wo.Status, wo.Priority,
		wo.RequestedByClientID, nullIfEmpty(wo.VehicleID), wo.AssetCode, wo.AssetCategory,
		wo.AssignedTechnicians, products, wo.QuotedPrice, wo.PaidAmount,
		wo.Attachments, wo.SLADays, wo.PromiseDate, wo.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update work order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve la página y el total de órdenes que satisfacen los filtros.
// Search es subcadena case-insensitive sobre título, número y descripción;
// una página más allá del final devuelve lista vacía con el mismo total.
func (r *WorkOrderRepo) List(filter repository.WorkOrderFilter) ([]*entity.WorkOrder, int, error) {
	where := `WHERE company_id = $1`
	args := []any{filter.CompanyID}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(` AND (title ILIKE $%d OR order_number ILIKE $%d OR description ILIKE $%d)`,
			len(args), len(args), len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	if filter.Priority != "" {
		args = append(args, filter.Priority)
		where += fmt.Sprintf(` AND priority = $%d`, len(args))
	}
	if filter.ClientID != "" {
		args = append(args, filter.ClientID)
		where += fmt.Sprintf(` AND requested_by_client_id = $%d`, len(args))
	}
	if filter.AssignedTo != "" {
		args = append(args, filter.AssignedTo)
		where += fmt.Sprintf(` AND $%d = ANY(assigned_technicians)`, len(args))
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM work_orders ` + where
	if err := r.q.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count work orders: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`SELECT `+workOrderColumns+` FROM work_orders %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list work orders: %w", err)
	}
	defer rows.Close()

	var orders []*entity.WorkOrder
	for rows.Next() {
		wo, err := scanWorkOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, wo)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate work orders: %w", err)
	}
	return orders, total, nil
}

// NextOrderNumber incrementa y devuelve el consecutivo de órdenes de la
// empresa. El upsert con RETURNING es atómico bajo la tx en curso.
func (r *WorkOrderRepo) NextOrderNumber(companyID string) (int, error) {
	query := `
		INSERT INTO company_counters (company_id, work_order_seq, invoice_seq)
		VALUES ($1, 1, 0)
		ON CONFLICT (company_id) DO UPDATE SET work_order_seq = company_counters.work_order_seq + 1
		RETURNING work_order_seq`
	var seq int
	if err := r.q.QueryRow(context.Background(), query, companyID).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next work order number: %w", err)
	}
	return seq, nil
}

func (r *WorkOrderRepo) scanOne(row pgx.Row) (*entity.WorkOrder, error) {
	wo, err := scanWorkOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get work order: %w", err)
	}
	return wo, nil
}

func scanWorkOrder(row pgx.Row) (*entity.WorkOrder, error) {
	var wo entity.WorkOrder
	var vehicleID *string
	var products []byte
	err := row.Scan(
		&wo.ID, &wo.CompanyID, &wo.OrderNumber, &wo.Title, &wo.Description, &wo.Status, &wo.Priority,
		&wo.CreatedBy, &wo.RequestedByClientID, &vehicleID, &wo.AssetCode, &wo.AssetCategory,
		&wo.AssignedTechnicians, &products, &wo.QuotedPrice, &wo.PaidAmount, &wo.Attachments,
		&wo.SLADays, &wo.PromiseDate, &wo.CreatedAt, &wo.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if vehicleID != nil {
		wo.VehicleID = *vehicleID
	}
	if len(products) > 0 {
		if err := json.Unmarshal(products, &wo.Products); err != nil {
			return nil, fmt.Errorf("unmarshal products: %w", err)
		}
	}
	return &wo, nil
}
