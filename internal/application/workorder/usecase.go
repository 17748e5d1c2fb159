package workorder

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Rowther/multitenantcrm/internal/application/dto"
	"github.com/Rowther/multitenantcrm/internal/domain"
	"github.com/Rowther/multitenantcrm/internal/domain/entity"
	"github.com/Rowther/multitenantcrm/internal/domain/policy"
	"github.com/Rowther/multitenantcrm/internal/domain/repository"
	"github.com/Rowther/multitenantcrm/internal/domain/schedule"
)

// UseCase casos de uso de órdenes de trabajo: creación con reglas por
// industria, máquina de estados con candado de cierre y listado paginado.
type UseCase struct {
	txRunner    TxRunner
	woRepo      repository.WorkOrderRepository
	companyRepo repository.CompanyRepository
	clientRepo  repository.ClientRepository
	vehicleRepo repository.VehicleRepository
	notifRepo   repository.NotificationRepository
	auditRepo   repository.AuditLogRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	woRepo repository.WorkOrderRepository,
	companyRepo repository.CompanyRepository,
	clientRepo repository.ClientRepository,
	vehicleRepo repository.VehicleRepository,
	notifRepo repository.NotificationRepository,
	auditRepo repository.AuditLogRepository,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		woRepo:      woRepo,
		companyRepo: companyRepo,
		clientRepo:  clientRepo,
		vehicleRepo: vehicleRepo,
		notifRepo:   notifRepo,
		auditRepo:   auditRepo,
	}
}

// Create crea una orden de trabajo. El número de orden (WO-%06d) se reserva
// dentro de la transacción de inserción para mantenerlo monotónico por
// empresa.
func (uc *UseCase) Create(ctx context.Context, companyID, userID, role string, in dto.CreateWorkOrderRequest) (*dto.WorkOrderResponse, error) {
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	// Furniture restringe la creación a administradores; en el resto también
	// crean los técnicos. Los clientes nunca crean órdenes.
	switch role {
	case entity.RoleSuperAdmin, entity.RoleAdmin:
	case entity.RoleEmployee:
		if company.Industry == entity.IndustryFurniture {
			return nil, domain.ErrForbidden
		}
	default:
		return nil, domain.ErrForbidden
	}

	if in.Title == "" || in.RequestedByClientID == "" || len(in.AssignedTechnicians) == 0 {
		return nil, domain.ErrValidation
	}
	if in.Priority == "" {
		in.Priority = entity.WOPriorityMedium
	}
	if !entity.ValidWOPriority(in.Priority) {
		return nil, domain.ErrValidation
	}

	client, err := uc.clientRepo.GetByID(in.RequestedByClientID)
	if err != nil {
		return nil, err
	}
	if client == nil || client.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}

	pol := policy.Resolve(company.Industry)
	products := dto.ProductLinesToEntity(in.Products)
	if err := validateIndustryFields(pol, company.Industry, in.VehicleID, in.AssetCode, in.AssetCategory, products); err != nil {
		return nil, err
	}
	if in.VehicleID != "" {
		vehicle, err := uc.vehicleRepo.GetByID(in.VehicleID)
		if err != nil {
			return nil, err
		}
		if vehicle == nil || vehicle.CompanyID != companyID {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	wo := &entity.WorkOrder{
		ID:                  uuid.New().String(),
		CompanyID:           companyID,
		Title:               in.Title,
		Description:         in.Description,
		Status:              entity.WOStatusPending,
		Priority:            in.Priority,
		CreatedBy:           userID,
		RequestedByClientID: in.RequestedByClientID,
		VehicleID:           in.VehicleID,
		AssetCode:           in.AssetCode,
		AssetCategory:       in.AssetCategory,
		AssignedTechnicians: in.AssignedTechnicians,
		Products:            products,
		QuotedPrice:         entity.QuoteFromProducts(products),
		PaidAmount:          decimal.Zero,
		Attachments:         []string{},
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if in.SLADays != nil {
		if !schedule.ValidSLADays(*in.SLADays) {
			return nil, domain.ErrValidation
		}
		promise := schedule.PromiseDate(now, *in.SLADays)
		wo.SLADays = in.SLADays
		wo.PromiseDate = &promise
	}

	err = uc.txRunner.RunWorkOrder(ctx, func(woRepo repository.WorkOrderRepository) error {
		seq, err := woRepo.NextOrderNumber(companyID)
		if err != nil {
			return err
		}
		wo.OrderNumber = fmt.Sprintf("WO-%06d", seq)
		return woRepo.Create(wo)
	})
	if err != nil {
		return nil, err
	}

	uc.notifyTechnicians(wo, entity.NotifWorkOrderAssigned)
	uc.audit(companyID, userID, "created", wo.ID, map[string]any{"order_number": wo.OrderNumber})

	return toWorkOrderResponse(wo, time.Now()), nil
}

// GetByID obtiene una orden verificando pertenencia a la empresa.
func (uc *UseCase) GetByID(ctx context.Context, companyID, id string) (*dto.WorkOrderResponse, error) {
	wo, err := uc.woRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if wo == nil || wo.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return toWorkOrderResponse(wo, time.Now()), nil
}

// validateIndustryFields aplica las reglas de campos por industria según la
// política resuelta: vehículo solo en automotive, asset_code obligatorio en
// industrias sin líneas de producto, categorías dentro del vocabulario.
func validateIndustryFields(pol policy.Policy, industry, vehicleID, assetCode, assetCategory string, products []entity.ProductLine) error {
	if vehicleID != "" && industry != entity.IndustryAutomotive {
		return domain.ErrValidation
	}
	if pol.RequiresAssetCode {
		if assetCode == "" || assetCategory == "" {
			return domain.ErrValidation
		}
		if len(products) > 0 {
			return domain.ErrValidation
		}
		return nil
	}
	for _, p := range products {
		if p.Name == "" || !p.Quantity.IsPositive() || p.UnitPrice.IsNegative() {
			return domain.ErrValidation
		}
		if !pol.AllowsCategory(p.Category) {
			return domain.ErrValidation
		}
	}
	return nil
}

// notifyTechnicians registra una notificación in-app por técnico asignado.
// Best-effort: un fallo del sink no aborta la operación.
func (uc *UseCase) notifyTechnicians(wo *entity.WorkOrder, notifType string) {
	payload, _ := json.Marshal(map[string]string{
		"work_order_id": wo.ID,
		"title":         wo.Title,
		"status":        wo.Status,
	})
	for _, techID := range wo.AssignedTechnicians {
		_ = uc.notifRepo.Create(&entity.Notification{
			ID:        uuid.New().String(),
			UserID:    techID,
			CompanyID: wo.CompanyID,
			Type:      notifType,
			Payload:   payload,
			SentAt:    time.Now(),
		})
	}
}

func (uc *UseCase) audit(companyID, userID, action, resourceID string, details map[string]any) {
	raw, _ := json.Marshal(details)
	_ = uc.auditRepo.Record(&entity.AuditLog{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		UserID:     userID,
		Action:     action,
		Resource:   "work_order",
		ResourceID: resourceID,
		Details:    raw,
		CreatedAt:  time.Now(),
	})
}

func toWorkOrderResponse(wo *entity.WorkOrder, now time.Time) *dto.WorkOrderResponse {
	return &dto.WorkOrderResponse{
		ID:                  wo.ID,
		CompanyID:           wo.CompanyID,
		OrderNumber:         wo.OrderNumber,
		Title:               wo.Title,
		Description:         wo.Description,
		Status:              wo.Status,
		Priority:            wo.Priority,
		CreatedBy:           wo.CreatedBy,
		RequestedByClientID: wo.RequestedByClientID,
		VehicleID:           wo.VehicleID,
		AssetCode:           wo.AssetCode,
		AssetCategory:       wo.AssetCategory,
		AssignedTechnicians: wo.AssignedTechnicians,
		Products:            dto.ProductLinesFromEntity(wo.Products),
		QuotedPrice:         wo.QuotedPrice,
		PaidAmount:          wo.PaidAmount,
		RemainingAmount:     wo.RemainingBalance(),
		Attachments:         wo.Attachments,
		SLADays:             wo.SLADays,
		PromiseDate:         wo.PromiseDate,
		DeadlineApproaching: schedule.DeadlineApproaching(wo.PromiseDate, wo.Status, now),
		CreatedAt:           wo.CreatedAt,
		UpdatedAt:           wo.UpdatedAt,
	}
}
