package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Rowther/multitenantcrm/internal/domain/entity"
)

// ProductLineRequest línea de producto de la orden.
type ProductLineRequest struct {
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateWorkOrderRequest entrada para crear una orden de trabajo.
// Los campos obligatorios por industria los valida el caso de uso contra la
// política del tenant.
type CreateWorkOrderRequest struct {
	Title               string               `json:"title"`
	Description         string               `json:"description"`
	RequestedByClientID string               `json:"requested_by_client_id"`
	VehicleID           string               `json:"vehicle_id"`
	AssetCode           string               `json:"asset_code"`
	AssetCategory       string               `json:"asset_category"`
	AssignedTechnicians []string             `json:"assigned_technicians"`
	Priority            string               `json:"priority"`
	Products            []ProductLineRequest `json:"products"`
	SLADays             *int                 `json:"sla_days"`
}

// UpdateWorkOrderRequest actualización parcial. Un cambio de estado pasa por
// la máquina de estados; el paquete {attachments, status=COMPLETED} debe
// llegar en la misma petición para satisfacer el candado de cierre.
type UpdateWorkOrderRequest struct {
	Title               *string              `json:"title"`
	Description         *string              `json:"description"`
	RequestedByClientID *string              `json:"requested_by_client_id"`
	VehicleID           *string              `json:"vehicle_id"`
	AssetCode           *string              `json:"asset_code"`
	AssetCategory       *string              `json:"asset_category"`
	AssignedTechnicians []string             `json:"assigned_technicians"`
	Status              *string              `json:"status"`
	Priority            *string              `json:"priority"`
	Products            []ProductLineRequest `json:"products"`
	Attachments         []string             `json:"attachments"`
	SLADays             *int                 `json:"sla_days"`
}

// WorkOrderQuery parámetros de listado. Los filtros se combinan con AND.
type WorkOrderQuery struct {
	PageRequest
	Search     string `query:"search"`
	Status     string `query:"status"`
	Priority   string `query:"priority"`
	ClientID   string `query:"client_id"`
	AssignedTo string `query:"assigned_to"`
}

// WorkOrderResponse salida de una orden de trabajo.
type WorkOrderResponse struct {
	ID                  string               `json:"id"`
	CompanyID           string               `json:"company_id"`
	OrderNumber         string               `json:"order_number"`
	Title               string               `json:"title"`
	Description         string               `json:"description"`
	Status              string               `json:"status"`
	Priority            string               `json:"priority"`
	CreatedBy           string               `json:"created_by"`
	RequestedByClientID string               `json:"requested_by_client_id,omitempty"`
	VehicleID           string               `json:"vehicle_id,omitempty"`
	AssetCode           string               `json:"asset_code,omitempty"`
	AssetCategory       string               `json:"asset_category,omitempty"`
	AssignedTechnicians []string             `json:"assigned_technicians"`
	Products            []ProductLineRequest `json:"products"`
	QuotedPrice         decimal.Decimal      `json:"quoted_price"`
	PaidAmount          decimal.Decimal      `json:"paid_amount"`
	RemainingAmount     decimal.Decimal      `json:"remaining_amount"`
	Attachments         []string             `json:"attachments"`
	SLADays             *int                 `json:"sla_days,omitempty"`
	PromiseDate         *time.Time           `json:"promise_date,omitempty"`
	DeadlineApproaching bool                 `json:"deadline_approaching"`
	CreatedAt           time.Time            `json:"created_at"`
	UpdatedAt           time.Time            `json:"updated_at"`
}

// WorkOrderListResponse forma canónica del listado: items + metadatos.
// El adaptador legacy del handler aplana Items cuando el caller lo pide.
type WorkOrderListResponse struct {
	WorkOrders []WorkOrderResponse `json:"work_orders"`
	Pagination Pagination          `json:"pagination"`
}

// ProductLinesToEntity convierte las líneas del request al dominio.
func ProductLinesToEntity(lines []ProductLineRequest) []entity.ProductLine {
	out := make([]entity.ProductLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, entity.ProductLine{
			Name:      l.Name,
			Category:  l.Category,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}
	return out
}

// ProductLinesFromEntity convierte las líneas del dominio a la respuesta.
func ProductLinesFromEntity(lines []entity.ProductLine) []ProductLineRequest {
	out := make([]ProductLineRequest, 0, len(lines))
	for _, l := range lines {
		out = append(out, ProductLineRequest{
			Name:      l.Name,
			Category:  l.Category,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}
	return out
}
