package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Rowther/multitenantcrm/internal/application/dto"
	"github.com/Rowther/multitenantcrm/internal/domain/repository"
)

// AuditEntry entrada del registro de actividad para la respuesta HTTP.
type AuditEntry struct {
	ID         string          `json:"id"`
	UserID     string          `json:"user_id"`
	Action     string          `json:"action"`
	Resource   string          `json:"resource"`
	ResourceID string          `json:"resource_id"`
	Details    json.RawMessage `json:"details,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// AuditUseCase consulta del registro de actividad de la empresa.
type AuditUseCase struct {
	auditRepo repository.AuditLogRepository
}

// NewAuditUseCase construye el caso de uso de auditoría.
func NewAuditUseCase(auditRepo repository.AuditLogRepository) *AuditUseCase {
	return &AuditUseCase{auditRepo: auditRepo}
}

// ListByCompany devuelve el registro de actividad paginado, más reciente primero.
func (uc *AuditUseCase) ListByCompany(ctx context.Context, companyID string, page dto.PageRequest) ([]AuditEntry, error) {
	page.DefaultPage()
	logs, err := uc.auditRepo.ListByCompany(companyID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	out := make([]AuditEntry, 0, len(logs))
	for _, l := range logs {
		out = append(out, AuditEntry{
			ID:         l.ID,
			UserID:     l.UserID,
			Action:     l.Action,
			Resource:   l.Resource,
			ResourceID: l.ResourceID,
			Details:    l.Details,
			CreatedAt:  l.CreatedAt,
		})
	}
	return out, nil
}
