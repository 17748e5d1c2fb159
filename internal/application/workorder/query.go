package workorder

import (
	"context"
	"time"

	"github.com/Rowther/multitenantcrm/internal/application/dto"
	"github.com/Rowther/multitenantcrm/internal/domain/repository"
)

// List devuelve órdenes de la empresa con búsqueda y filtros combinados por
// AND. Una página más allá del final devuelve una lista vacía con el total
// real, nunca un error.
func (uc *UseCase) List(ctx context.Context, companyID string, q dto.WorkOrderQuery) (*dto.WorkOrderListResponse, error) {
	q.DefaultPage()

	filter := repository.WorkOrderFilter{
		CompanyID:  companyID,
		Search:     q.Search,
		Status:     q.Status,
		Priority:   q.Priority,
		ClientID:   q.ClientID,
		AssignedTo: q.AssignedTo,
		Limit:      q.Limit,
		Offset:     q.Offset(),
	}

	orders, total, err := uc.woRepo.List(filter)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	items := make([]dto.WorkOrderResponse, 0, len(orders))
	for _, wo := range orders {
		items = append(items, *toWorkOrderResponse(wo, now))
	}

	return &dto.WorkOrderListResponse{
		WorkOrders: items,
		Pagination: dto.NewPagination(q.Page, q.Limit, total),
	}, nil
}
