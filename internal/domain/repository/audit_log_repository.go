package repository

import "github.com/Rowther/multitenantcrm/internal/domain/entity"

// AuditLogRepository define el sink del registro de actividad.
type AuditLogRepository interface {
	Record(log *entity.AuditLog) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.AuditLog, error)
}
