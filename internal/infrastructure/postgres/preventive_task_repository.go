package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Rowther/multitenantcrm/internal/domain"
	"github.com/Rowther/multitenantcrm/internal/domain/entity"
	"github.com/Rowther/multitenantcrm/internal/domain/repository"
)

var _ repository.PreventiveTaskRepository = (*PreventiveTaskRepo)(nil)

// PreventiveTaskRepo implementación del puerto PreventiveTaskRepository sobre PostgreSQL (usable con pool o tx).
type PreventiveTaskRepo struct {
	q Querier
}

// NewPreventiveTaskRepository construye el adaptador de persistencia para tareas preventivas. Pasar pool o tx (Querier).
func NewPreventiveTaskRepository(q Querier) *PreventiveTaskRepo {
	return &PreventiveTaskRepo{q: q}
}

const preventiveTaskColumns = `id, company_id, title, description, asset_location, frequency,
	assigned_technicians, status, next_due_date, last_completed_date, created_at, updated_at`

// Create persiste una tarea preventiva nueva.
func (r *PreventiveTaskRepo) Create(t *entity.PreventiveTask) error {
	query := `
		INSERT INTO preventive_tasks (` + preventiveTaskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.CompanyID, t.Title, t.Description, t.AssetLocation, t.Frequency,
		t.AssignedTechnicians, t.Status, t.NextDueDate, t.LastCompletedDate, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert preventive task: %w", err)
	}
	return nil
}

// GetByID obtiene una tarea por ID.
func (r *PreventiveTaskRepo) GetByID(id string) (*entity.PreventiveTask, error) {
	query := `SELECT ` + preventiveTaskColumns + ` FROM preventive_tasks WHERE id = $1`
	var t entity.PreventiveTask
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.CompanyID, &t.Title, &t.Description, &t.AssetLocation, &t.Frequency,
		&t.AssignedTechnicians, &t.Status, &t.NextDueDate, &t.LastCompletedDate, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get preventive task: %w", err)
	}
	return &t, nil
}

// Update persiste estado, última ejecución y próximo vencimiento.
func (r *PreventiveTaskRepo) Update(t *entity.PreventiveTask) error {
	query := `
		UPDATE preventive_tasks SET title = $2, description = $3, asset_location = $4,
			assigned_technicians = $5, status = $6, next_due_date = $7,
			last_completed_date = $8, updated_at = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		t.ID, t.Title, t.Description, t.AssetLocation,
		t.AssignedTechnicians, t.Status, t.NextDueDate,
		t.LastCompletedDate, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update preventive task: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCompany lista tareas por empresa ordenadas por próximo vencimiento.
// El total refleja todas las tareas de la empresa, no solo la página.
func (r *PreventiveTaskRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.PreventiveTask, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM preventive_tasks WHERE company_id = $1`
	if err := r.q.QueryRow(context.Background(), countQuery, companyID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count preventive tasks: %w", err)
	}

	query := `SELECT ` + preventiveTaskColumns + ` FROM preventive_tasks
		WHERE company_id = $1 ORDER BY next_due_date ASC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list preventive tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*entity.PreventiveTask
	for rows.Next() {
		var t entity.PreventiveTask
		if err := rows.Scan(&t.ID, &t.CompanyID, &t.Title, &t.Description, &t.AssetLocation,
			&t.Frequency, &t.AssignedTechnicians, &t.Status, &t.NextDueDate,
			&t.LastCompletedDate, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan preventive task: %w", err)
		}
		tasks = append(tasks, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate preventive tasks: %w", err)
	}
	return tasks, total, nil
}
