package entity

import (
	"encoding/json"
	"time"
)

// AuditLog entrada del registro de actividad {usuario, acción, recurso}.
// El core lo escribe en modo best-effort: un fallo del sink nunca aborta la
// operación de negocio.
type AuditLog struct {
	ID         string
	CompanyID  string
	UserID     string
	Action     string // created, updated, status_changed, payment_applied, ...
	Resource   string // work_order, invoice, payment, preventive_task, ...
	ResourceID string
	Details    json.RawMessage
	CreatedAt  time.Time
}
