package billing

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Rowther/multitenantcrm/internal/application/dto"
	"github.com/Rowther/multitenantcrm/internal/domain"
	"github.com/Rowther/multitenantcrm/internal/domain/entity"
	"github.com/Rowther/multitenantcrm/internal/domain/repository"
)

var hundred = decimal.NewFromInt(100)

// PaymentUseCase libro de pagos contra órdenes de trabajo. Cada abono se
// valida y aplica bajo bloqueo de fila: el saldo nunca queda negativo ni
// inconsistente aunque lleguen pagos concurrentes sobre la misma orden.
type PaymentUseCase struct {
	txRunner  TxRunner
	payRepo   repository.PaymentRepository
	woRepo    repository.WorkOrderRepository
	notifRepo repository.NotificationRepository
}

// NewPaymentUseCase construye el caso de uso de pagos.
func NewPaymentUseCase(
	txRunner TxRunner,
	payRepo repository.PaymentRepository,
	woRepo repository.WorkOrderRepository,
	notifRepo repository.NotificationRepository,
) *PaymentUseCase {
	return &PaymentUseCase{
		txRunner:  txRunner,
		payRepo:   payRepo,
		woRepo:    woRepo,
		notifRepo: notifRepo,
	}
}

// Apply registra un abono contra la orden. Reglas, todas sobre el estado
// bloqueado dentro de la transacción:
//
//   - el monto debe ser estrictamente positivo;
//   - método card exige número de referencia, cash lo ignora;
//   - el monto no puede exceder el saldo pendiente (quoted - paid); el
//     sobrepago se rechaza con ErrOverpayment sin mutación alguna.
//
// La inserción del pago y el incremento de paid_amount se confirman en la
// misma transacción.
func (uc *PaymentUseCase) Apply(ctx context.Context, companyID, userID string, in dto.ApplyPaymentRequest) (*dto.PaymentProgressResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, domain.ErrValidation
	}
	switch in.PaymentMethod {
	case entity.PaymentMethodCash:
	case entity.PaymentMethodCard:
		if in.ReferenceNumber == "" {
			return nil, domain.ErrValidation
		}
	default:
		return nil, domain.ErrValidation
	}

	payment := &entity.Payment{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		WorkOrderID: in.WorkOrderID,
		Amount:      in.Amount,
		Method:      in.PaymentMethod,
		ReceivedBy:  userID,
		CreatedAt:   time.Now(),
	}
	if in.PaymentMethod == entity.PaymentMethodCard {
		payment.ReferenceNumber = in.ReferenceNumber
	}

	var snapshot *entity.WorkOrder
	err := uc.txRunner.RunPayment(ctx, func(woRepo repository.WorkOrderRepository, payRepo repository.PaymentRepository) error {
		wo, err := woRepo.GetByIDForUpdate(in.WorkOrderID)
		if err != nil {
			return err
		}
		if wo == nil || wo.CompanyID != companyID {
			return domain.ErrNotFound
		}
		if in.Amount.GreaterThan(wo.RemainingBalance()) {
			return domain.ErrOverpayment
		}
		if err := payRepo.Create(payment); err != nil {
			return err
		}
		wo.PaidAmount = wo.PaidAmount.Add(in.Amount)
		wo.UpdatedAt = time.Now()
		if err := woRepo.Update(wo); err != nil {
			return err
		}
		snapshot = wo
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notifyPayment(snapshot, payment)

	return &dto.PaymentProgressResponse{
		Payment:         toPaymentResponse(payment),
		QuotedPrice:     snapshot.QuotedPrice,
		PaidAmount:      snapshot.PaidAmount,
		RemainingAmount: snapshot.RemainingBalance(),
		ProgressPercent: progressPercent(snapshot.PaidAmount, snapshot.QuotedPrice),
	}, nil
}

// ListByWorkOrder devuelve los pagos de una orden, verificando pertenencia.
func (uc *PaymentUseCase) ListByWorkOrder(ctx context.Context, companyID, workOrderID string) ([]dto.PaymentResponse, error) {
	wo, err := uc.woRepo.GetByID(workOrderID)
	if err != nil {
		return nil, err
	}
	if wo == nil || wo.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	payments, err := uc.payRepo.ListByWorkOrder(workOrderID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, toPaymentResponse(p))
	}
	return out, nil
}

func progressPercent(paid, quoted decimal.Decimal) decimal.Decimal {
	if quoted.IsZero() {
		return decimal.Zero
	}
	return paid.Div(quoted).Mul(hundred).Round(2)
}

func (uc *PaymentUseCase) notifyPayment(wo *entity.WorkOrder, p *entity.Payment) {
	payload, _ := json.Marshal(map[string]string{
		"work_order_id": wo.ID,
		"amount":        p.Amount.String(),
		"remaining":     wo.RemainingBalance().String(),
	})
	_ = uc.notifRepo.Create(&entity.Notification{
		ID:        uuid.New().String(),
		UserID:    wo.CreatedBy,
		CompanyID: wo.CompanyID,
		Type:      entity.NotifPaymentReceived,
		Payload:   payload,
		SentAt:    time.Now(),
	})
}

func toPaymentResponse(p *entity.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:              p.ID,
		WorkOrderID:     p.WorkOrderID,
		Amount:          p.Amount,
		Method:          p.Method,
		ReferenceNumber: p.ReferenceNumber,
		ReceivedBy:      p.ReceivedBy,
		CreatedAt:       p.CreatedAt,
	}
}
