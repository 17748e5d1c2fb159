package usecase

import (
	"context"

	"github.com/Rowther/multitenantcrm/internal/application/dto"
	"github.com/Rowther/multitenantcrm/internal/domain/entity"
	"github.com/Rowther/multitenantcrm/internal/domain/repository"
)

// NotificationUseCase buzón de avisos in-app del usuario.
type NotificationUseCase struct {
	notifRepo repository.NotificationRepository
}

// NewNotificationUseCase construye el caso de uso de notificaciones.
func NewNotificationUseCase(notifRepo repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{notifRepo: notifRepo}
}

// ListByUser devuelve los avisos del usuario, más recientes primero.
func (uc *NotificationUseCase) ListByUser(ctx context.Context, userID string, page dto.PageRequest) ([]dto.NotificationResponse, error) {
	page.DefaultPage()
	notifications, err := uc.notifRepo.ListByUser(userID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	out := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, toNotificationResponse(n))
	}
	return out, nil
}

// MarkRead marca un aviso como leído. El filtro por usuario evita marcar
// avisos ajenos.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, userID, id string) error {
	return uc.notifRepo.MarkRead(id, userID)
}

func toNotificationResponse(n *entity.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Payload:   n.Payload,
		ReadAt:    n.ReadAt,
		SentAt:    n.SentAt,
		CompanyID: n.CompanyID,
	}
}
