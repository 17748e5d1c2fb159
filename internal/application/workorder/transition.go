package workorder

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/Rowther/multitenantcrm/internal/application/dto"
	"github.com/Rowther/multitenantcrm/internal/domain"
	"github.com/Rowther/multitenantcrm/internal/domain/entity"
	"github.com/Rowther/multitenantcrm/internal/domain/policy"
	"github.com/Rowther/multitenantcrm/internal/domain/repository"
	"github.com/Rowther/multitenantcrm/internal/domain/schedule"
)

// Update aplica una actualización parcial de la orden. Un cambio de estado
// pasa por la máquina de estados: las transiciones son libres entre los seis
// estados, con dos reglas fijas al pasar a COMPLETED:
//
//  1. Con candado activo (política de la industria), la lista efectiva de
//     adjuntos —los del paquete de la petición, o los actuales si no llegan—
//     debe ser no vacía; si no, ErrAttachmentsRequired sin mutación alguna.
//  2. Sin candado, la transición procede incondicionalmente desde cualquier
//     origen.
//
// Estado, adjuntos y updated_at se persisten de forma atómica bajo bloqueo
// de fila; la fecha promesa solo cambia por edición explícita de sla_days.
func (uc *UseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateWorkOrderRequest) (*dto.WorkOrderResponse, error) {
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	pol := policy.Resolve(company.Industry)

	var updated *entity.WorkOrder
	var statusChanged bool
	var previousStatus string

	err = uc.txRunner.RunWorkOrder(ctx, func(woRepo repository.WorkOrderRepository) error {
		wo, err := woRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if wo == nil || wo.CompanyID != companyID {
			return domain.ErrNotFound
		}

		if err := applyPatch(wo, pol, company.Industry, in); err != nil {
			return err
		}

		if in.Status != nil && *in.Status != wo.Status {
			if !entity.ValidWOStatus(*in.Status) {
				return domain.ErrValidation
			}
			if *in.Status == entity.WOStatusCompleted &&
				pol.CompletionRequiresAttachments && len(wo.Attachments) == 0 {
				return domain.ErrAttachmentsRequired
			}
			previousStatus = wo.Status
			wo.Status = *in.Status
			statusChanged = true
		}

		wo.UpdatedAt = time.Now()
		if err := woRepo.Update(wo); err != nil {
			return err
		}
		updated = wo
		return nil
	})
	if err != nil {
		return nil, err
	}

	if statusChanged {
		uc.notifyStatusChange(updated, previousStatus)
		uc.audit(companyID, updated.CreatedBy, "status_changed", updated.ID, map[string]any{
			"from": previousStatus,
			"to":   updated.Status,
		})
	}

	return toWorkOrderResponse(updated, time.Now()), nil
}

// applyPatch aplica los campos parciales sobre la entidad bloqueada. Los
// adjuntos del request reemplazan la lista completa (el caller combina los
// existentes con los nuevos, igual que el flujo de cierre con imágenes).
func applyPatch(wo *entity.WorkOrder, pol policy.Policy, industry string, in dto.UpdateWorkOrderRequest) error {
	if in.Title != nil {
		if *in.Title == "" {
			return domain.ErrValidation
		}
		wo.Title = *in.Title
	}
	if in.Description != nil {
		wo.Description = *in.Description
	}
	if in.RequestedByClientID != nil {
		wo.RequestedByClientID = *in.RequestedByClientID
	}
	if in.Priority != nil {
		if !entity.ValidWOPriority(*in.Priority) {
			return domain.ErrValidation
		}
		wo.Priority = *in.Priority
	}
	if in.AssignedTechnicians != nil {
		if len(in.AssignedTechnicians) == 0 {
			return domain.ErrValidation
		}
		wo.AssignedTechnicians = in.AssignedTechnicians
	}
	if in.VehicleID != nil {
		if *in.VehicleID != "" && industry != entity.IndustryAutomotive {
			return domain.ErrValidation
		}
		wo.VehicleID = *in.VehicleID
	}
	if in.AssetCode != nil {
		if pol.RequiresAssetCode && *in.AssetCode == "" {
			return domain.ErrValidation
		}
		wo.AssetCode = *in.AssetCode
	}
	if in.AssetCategory != nil {
		if pol.RequiresAssetCode && *in.AssetCategory == "" {
			return domain.ErrValidation
		}
		wo.AssetCategory = *in.AssetCategory
	}
	if in.Products != nil {
		products := dto.ProductLinesToEntity(in.Products)
		if err := validateIndustryFields(pol, industry, "", wo.AssetCode, wo.AssetCategory, products); err != nil {
			return err
		}
		quote := entity.QuoteFromProducts(products)
		// El precio cotizado es derivado; nunca puede caer por debajo de lo
		// ya abonado.
		if quote.LessThan(wo.PaidAmount) {
			return domain.ErrValidation
		}
		wo.Products = products
		wo.QuotedPrice = quote
	}
	if in.Attachments != nil {
		wo.Attachments = in.Attachments
	}
	if in.SLADays != nil {
		if !schedule.ValidSLADays(*in.SLADays) {
			return domain.ErrValidation
		}
		// Edición explícita: re-derivar la promesa reinicia la cuenta
		// regresiva desde el instante de esta llamada.
		promise := schedule.PromiseDate(time.Now(), *in.SLADays)
		wo.SLADays = in.SLADays
		wo.PromiseDate = &promise
	}
	return nil
}

func (uc *UseCase) notifyStatusChange(wo *entity.WorkOrder, previous string) {
	payload, _ := json.Marshal(map[string]string{
		"work_order_id": wo.ID,
		"from":          previous,
		"to":            wo.Status,
	})
	_ = uc.notifRepo.Create(&entity.Notification{
		ID:        uuid.New().String(),
		UserID:    wo.CreatedBy,
		CompanyID: wo.CompanyID,
		Type:      entity.NotifWorkOrderStatusChanged,
		Payload:   payload,
		SentAt:    time.Now(),
	})
}
